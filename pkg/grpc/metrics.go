package grpc

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Metrics instruments outgoing RPCs with a call counter and a latency
// histogram, both labelled by service, method and gRPC code.
type Metrics struct {
	calls   *prometheus.CounterVec
	latency *prometheus.HistogramVec
}

// NewMetrics creates the RPC collectors under namespace and registers them
// on reg. Collectors already registered by an earlier client are reused.
func NewMetrics(namespace string, reg prometheus.Registerer) (*Metrics, error) {
	labels := []string{"service", "method", "code"}
	calls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "client",
		Name:      "rpc_total",
		Help:      "Number of RPCs issued to the Senzing gRPC server.",
	}, labels)
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "client",
		Name:      "rpc_duration_seconds",
		Help:      "Latency of RPCs issued to the Senzing gRPC server.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 4, 9),
	}, labels)

	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if err := reg.Register(calls); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}
		calls = are.ExistingCollector.(*prometheus.CounterVec)
	}
	if err := reg.Register(latency); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}
		latency = are.ExistingCollector.(*prometheus.HistogramVec)
	}
	return &Metrics{calls: calls, latency: latency}, nil
}

func (m *Metrics) observe(fullMethod string, code codes.Code, elapsed time.Duration) {
	service, method := splitMethodName(fullMethod)
	if i := strings.LastIndex(service, "."); i >= 0 {
		service = service[i+1:]
	}
	m.calls.WithLabelValues(service, method, code.String()).Inc()
	m.latency.WithLabelValues(service, method, code.String()).Observe(elapsed.Seconds())
}

// UnaryClientInterceptor returns an interceptor recording unary RPCs.
func (m *Metrics) UnaryClientInterceptor() grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		start := time.Now()
		err := invoker(ctx, method, req, reply, cc, opts...)
		m.observe(method, status.Code(err), time.Since(start))
		return err
	}
}

// StreamClientInterceptor returns an interceptor recording server streams
// once they finish (io.EOF counts as OK). A stream the caller abandons is
// recorded when its context ends, with the context's code.
func (m *Metrics) StreamClientInterceptor() grpc.StreamClientInterceptor {
	return func(ctx context.Context, desc *grpc.StreamDesc, cc *grpc.ClientConn, method string, streamer grpc.Streamer, opts ...grpc.CallOption) (grpc.ClientStream, error) {
		start := time.Now()
		cs, err := streamer(ctx, desc, cc, method, opts...)
		if err != nil {
			m.observe(method, status.Code(err), time.Since(start))
			return nil, err
		}
		s := &observedStream{
			ClientStream: cs,
			done:         make(chan struct{}),
			record: func(code codes.Code) {
				m.observe(method, code, time.Since(start))
			},
		}
		go func() {
			select {
			case <-ctx.Done():
				s.end(status.FromContextError(ctx.Err()).Code())
			case <-s.done:
			}
		}()
		return s, nil
	}
}

type observedStream struct {
	grpc.ClientStream
	once   sync.Once
	done   chan struct{}
	record func(codes.Code)
}

func (s *observedStream) end(code codes.Code) {
	s.once.Do(func() {
		s.record(code)
		close(s.done)
	})
}

func (s *observedStream) RecvMsg(msg any) error {
	err := s.ClientStream.RecvMsg(msg)
	switch {
	case err == nil:
	case errors.Is(err, io.EOF):
		s.end(codes.OK)
	default:
		s.end(status.Code(err))
	}
	return err
}
