package grpc

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

const (
	// ClientTypeHeader identifies the SDK to the Senzing gRPC server and to
	// any proxy in front of it.
	ClientTypeHeader = "senzing-client-type"
	// ClientType is the value sent in ClientTypeHeader.
	ClientType = "sz-sdk-go"
)

// WithHeaders attaches static metadata (authorization for a proxy, tenant
// tags) to every outgoing RPC. Keys are lower-cased as gRPC requires.
func WithHeaders(headers map[string]string) Option {
	return func(o *options) {
		for k, v := range headers {
			o.headers = append(o.headers, strings.ToLower(k), v)
		}
	}
}

func headersUnaryInterceptor(kv []string) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		return invoker(metadata.AppendToOutgoingContext(ctx, kv...), method, req, reply, cc, opts...)
	}
}

func headersStreamInterceptor(kv []string) grpc.StreamClientInterceptor {
	return func(ctx context.Context, desc *grpc.StreamDesc, cc *grpc.ClientConn, method string, streamer grpc.Streamer, opts ...grpc.CallOption) (grpc.ClientStream, error) {
		return streamer(metadata.AppendToOutgoingContext(ctx, kv...), desc, cc, method, opts...)
	}
}
