package grpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc/health/grpc_health_v1"
)

// Health performs a standard gRPC health check. An empty service name asks
// for the overall server status.
func (c *Client) Health(ctx context.Context, service string) (grpc_health_v1.HealthCheckResponse_ServingStatus, error) {
	client := grpc_health_v1.NewHealthClient(c.GRPC)
	resp, err := client.Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: service})
	if err != nil {
		return grpc_health_v1.HealthCheckResponse_UNKNOWN, fmt.Errorf("grpc health check failed: %w", err)
	}
	return resp.GetStatus(), nil
}
