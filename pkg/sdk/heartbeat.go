package sdk

import (
	"context"

	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/pkg/szerror"
	"go.uber.org/zap"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// Health runs the standard gRPC health check against the Senzing server,
// bounded by the configured dial timeout. A reachable server that does not
// report SERVING yields a retryable error.
func (c *Core) Health(ctx context.Context) (grpc_health_v1.HealthCheckResponse_ServingStatus, error) {
	c.mu.Lock()
	destroyed := c.destroyed
	c.mu.Unlock()
	if destroyed {
		return grpc_health_v1.HealthCheckResponse_UNKNOWN,
			szerror.Newf(szerror.KindNotInitialized, "Health called after Destroy")
	}

	ctx, cancel := context.WithTimeout(ctx, c.Timeouts.Dial)
	defer cancel()

	st, err := c.client.Health(ctx, "")
	if err != nil {
		return st, szerror.Newf(szerror.KindRetryable, "%v", err)
	}
	if c.Debug {
		c.logger.Debug("health", zap.String("endpoint", c.GRPCURL), zap.Stringer("status", st))
	}
	if st != grpc_health_v1.HealthCheckResponse_SERVING {
		return st, szerror.Newf(szerror.KindRetryable, "server status %s", st)
	}
	return st, nil
}
