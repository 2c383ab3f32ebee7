// Package szrpc holds the call plumbing shared by the Senzing client
// packages: per-call deadlines, translation of RPC failures into szerror
// values, and extraction of the "result" field from responses.
package szrpc

import (
	"context"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/pkg/grpc"
	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/pkg/szerror"
	"go.uber.org/zap"
)

const (
	DefaultUnaryTimeout  = 30 * time.Second
	DefaultStreamTimeout = 10 * time.Minute
)

// Option customizes a Caller.
type Option func(*Caller)

// WithTimeouts bounds unary and streaming calls. Zero values keep the
// defaults; a deadline already on the caller's context still applies.
func WithTimeouts(unary, stream time.Duration) Option {
	return func(c *Caller) {
		if unary > 0 {
			c.unaryTimeout = unary
		}
		if stream > 0 {
			c.streamTimeout = stream
		}
	}
}

// WithLogger replaces the global zap logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Caller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithOwnedClient makes Close shut the underlying connection down as well.
func WithOwnedClient() Option {
	return func(c *Caller) { c.owned = true }
}

// Caller invokes the methods of one Senzing service.
type Caller struct {
	client  *grpc.Client
	service string

	unaryTimeout  time.Duration
	streamTimeout time.Duration
	logger        *zap.Logger
	owned         bool
	closed        atomic.Bool
}

// New returns a Caller for service ("SzEngine", "SzConfig", ...).
func New(client *grpc.Client, service string, opts ...Option) *Caller {
	c := &Caller{
		client:        client,
		service:       service,
		unaryTimeout:  DefaultUnaryTimeout,
		streamTimeout: DefaultStreamTimeout,
		logger:        zap.L(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Client returns the connection the Caller uses.
func (c *Caller) Client() *grpc.Client {
	return c.client
}

// Logger returns the Caller's logger.
func (c *Caller) Logger() *zap.Logger {
	return c.logger
}

// Call performs a unary RPC and returns the response map.
func (c *Caller) Call(ctx context.Context, method string, params map[string]any) (map[string]any, error) {
	if err := c.ready(method); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, c.unaryTimeout)
	defer cancel()

	resp, err := c.client.CallWithMap(ctx, c.service+"/"+method, params)
	if err != nil {
		err = szerror.FromGRPC(err)
		c.logger.Debug("senzing call failed",
			zap.String("service", c.service),
			zap.String("method", method),
			zap.Error(err))
		return nil, err
	}
	return resp, nil
}

// Stream performs a server-streaming RPC, calling fn per response. An error
// returned by fn ends the stream and is returned unchanged.
func (c *Caller) Stream(ctx context.Context, method string, params map[string]any, fn func(map[string]any) error) error {
	if err := c.ready(method); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, c.streamTimeout)
	defer cancel()

	var fnErr error
	err := c.client.Stream(ctx, c.service+"/"+method, params, func(m map[string]any) error {
		if err := fn(m); err != nil {
			fnErr = err
			return err
		}
		return nil
	})
	if err == nil {
		return nil
	}
	if fnErr != nil {
		return fnErr
	}
	return szerror.FromGRPC(err)
}

// Close marks the Caller unusable and, when it owns the connection, closes
// it. Closing twice is a no-op.
func (c *Caller) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	if c.owned {
		return c.client.Close()
	}
	return nil
}

// Ready reports SzNotInitializedError for method once the Caller is closed.
// Client methods answered locally use it to honour Destroy.
func (c *Caller) Ready(method string) error {
	return c.ready(method)
}

func (c *Caller) ready(method string) error {
	if c.closed.Load() || c.client == nil {
		return szerror.Newf(szerror.KindNotInitialized, "%s.%s called after Destroy", c.service, method)
	}
	return nil
}

// String returns the string result of resp.
func String(resp map[string]any) string {
	s, _ := resp["result"].(string)
	return s
}

// Field returns a named string field of resp.
func Field(resp map[string]any, name string) string {
	s, _ := resp[name].(string)
	return s
}

// Int64 returns the int64 result of resp, which protojson renders as a
// decimal string.
func Int64(resp map[string]any) (int64, error) {
	switch v := resp["result"].(type) {
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, szerror.Newf(szerror.KindSdk, "invalid int64 result %q", v)
		}
		return n, nil
	case float64:
		return int64(v), nil
	case nil:
		return 0, nil
	default:
		return 0, szerror.Newf(szerror.KindSdk, "unexpected result type %T", v)
	}
}

// Bool returns the boolean result of resp.
func Bool(resp map[string]any) bool {
	b, _ := resp["result"].(bool)
	return b
}

// RequireKey rejects an empty data source code or record id before any RPC.
func RequireKey(dataSourceCode, recordID string) error {
	if dataSourceCode == "" {
		return szerror.Newf(szerror.KindBadInput, "data source code must not be empty")
	}
	if recordID == "" {
		return szerror.Newf(szerror.KindBadInput, "record id must not be empty")
	}
	return nil
}
