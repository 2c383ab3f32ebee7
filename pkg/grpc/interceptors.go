package grpc

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// loggingUnaryInterceptor writes one debug entry per unary RPC with the method,
// latency and resulting gRPC code. Engine errors are returned to the caller,
// so failures are not logged above debug level here.
func loggingUnaryInterceptor(logger *zap.Logger) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		start := time.Now()
		err := invoker(ctx, method, req, reply, cc, opts...)
		if ce := logger.Check(zap.DebugLevel, "grpc call"); ce != nil {
			ce.Write(
				zap.String("method", method),
				zap.Duration("elapsed", time.Since(start)),
				zap.String("code", status.Code(err).String()),
				zap.Error(err),
			)
		}
		return err
	}
}

// loggingStreamInterceptor logs stream establishment.
func loggingStreamInterceptor(logger *zap.Logger) grpc.StreamClientInterceptor {
	return func(ctx context.Context, desc *grpc.StreamDesc, cc *grpc.ClientConn, method string, streamer grpc.Streamer, opts ...grpc.CallOption) (grpc.ClientStream, error) {
		cs, err := streamer(ctx, desc, cc, method, opts...)
		logger.Debug("grpc stream opened",
			zap.String("method", method),
			zap.String("code", status.Code(err).String()),
			zap.Error(err),
		)
		return cs, err
	}
}
