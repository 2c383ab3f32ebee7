package grpc

import (
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/keepalive"
)

// Option customizes NewClient and DialEndpoint.
type Option func(*options)

type options struct {
	logger         *zap.Logger
	metrics        *Metrics
	keepalive      *keepalive.ClientParameters
	maxMessageSize int
	headers        []string
	extra          []grpc.DialOption
}

func newOptions(opts []Option) *options {
	o := &options{logger: zap.L(), headers: []string{ClientTypeHeader, ClientType}}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger used for connection events and per-RPC debug
// entries. Defaults to the global zap logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics records every RPC in m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithKeepalive enables client keepalive pings every t, waiting timeout for
// the acknowledgement. A zero t leaves keepalive disabled.
func WithKeepalive(t, timeout time.Duration, permitWithoutStream bool) Option {
	return func(o *options) {
		if t <= 0 {
			return
		}
		o.keepalive = &keepalive.ClientParameters{
			Time:                t,
			Timeout:             timeout,
			PermitWithoutStream: permitWithoutStream,
		}
	}
}

// WithMaxMessageSize bounds sent and received messages. Zero keeps the gRPC defaults.
func WithMaxMessageSize(n int) Option {
	return func(o *options) { o.maxMessageSize = n }
}

// WithDialOptions appends raw gRPC dial options (custom dialers, tests).
func WithDialOptions(opts ...grpc.DialOption) Option {
	return func(o *options) { o.extra = append(o.extra, opts...) }
}

// dialOptions renders the collected options; transport credentials are added
// by the caller.
func (o *options) dialOptions() []grpc.DialOption {
	unary := []grpc.UnaryClientInterceptor{
		headersUnaryInterceptor(o.headers),
		loggingUnaryInterceptor(o.logger),
	}
	stream := []grpc.StreamClientInterceptor{
		headersStreamInterceptor(o.headers),
		loggingStreamInterceptor(o.logger),
	}
	if o.metrics != nil {
		unary = append(unary, o.metrics.UnaryClientInterceptor())
		stream = append(stream, o.metrics.StreamClientInterceptor())
	}

	out := []grpc.DialOption{
		grpc.WithChainUnaryInterceptor(unary...),
		grpc.WithChainStreamInterceptor(stream...),
	}
	if o.keepalive != nil {
		out = append(out, grpc.WithKeepaliveParams(*o.keepalive))
	}
	if o.maxMessageSize > 0 {
		out = append(out, grpc.WithDefaultCallOptions(
			grpc.MaxCallRecvMsgSize(o.maxMessageSize),
			grpc.MaxCallSendMsgSize(o.maxMessageSize),
		))
	}
	return append(out, o.extra...)
}
