package grpc

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
)

// DialEndpoint creates a connection to endpoint and blocks until it is READY,
// the timeout elapses or ctx is done. On failure the connection is closed.
// Transport security follows the same scheme rules as NewClient.
func DialEndpoint(ctx context.Context, endpoint string, timeout time.Duration, opts ...Option) (*grpc.ClientConn, error) {
	o := newOptions(opts)
	addr, creds := grpcCredsFromEndpoint(endpoint)
	conn, err := grpc.NewClient(addr, append([]grpc.DialOption{creds}, o.dialOptions()...)...)
	if err != nil {
		return nil, fmt.Errorf("create grpc client for %s: %w", endpoint, err)
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	conn.Connect()
	for {
		state := conn.GetState()
		if state == connectivity.Ready {
			return conn, nil
		}
		if state == connectivity.Idle {
			conn.Connect()
		}
		if state == connectivity.Shutdown {
			return nil, fmt.Errorf("dial %s: connection shut down", endpoint)
		}
		if !conn.WaitForStateChange(ctx, state) {
			_ = conn.Close()
			o.logger.Debug("dial timed out", zap.String("endpoint", endpoint), zap.String("state", state.String()))
			return nil, fmt.Errorf("dial %s: %w", endpoint, ctx.Err())
		}
	}
}
