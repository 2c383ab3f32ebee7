// Package sztest starts an in-memory fake Senzing gRPC server for the client
// package tests.
package sztest

import (
	"context"
	"strconv"
	"testing"

	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/internal/testutil/grpcbuf"
	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/pkg/grpc"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Start serves the embedded Senzing services and returns the fake server
// together with a client connected to it. Both are torn down with t.
func Start(t *testing.T) (*grpcbuf.Server, *grpc.Client) {
	t.Helper()

	files, err := grpc.Compile(grpc.SenzingProtos())
	require.NoError(t, err)

	srv := grpcbuf.Start(files)
	t.Cleanup(srv.Stop)

	client, err := grpc.NewClient(grpcbuf.Target, nil, grpc.WithDialOptions(srv.Dialer()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return srv, client
}

// Result answers a unary method with a fixed result.
func Result(v any) grpcbuf.Handler {
	return func(context.Context, map[string]any) (map[string]any, error) {
		return map[string]any{"result": v}, nil
	}
}

// Empty answers a unary method with an empty response.
func Empty() grpcbuf.Handler {
	return func(context.Context, map[string]any) (map[string]any, error) {
		return map[string]any{}, nil
	}
}

// Fail answers a unary method with an engine error, e.g. "SENZ0033|Unknown record".
func Fail(code codes.Code, message string) grpcbuf.Handler {
	return func(context.Context, map[string]any) (map[string]any, error) {
		return nil, status.Error(code, message)
	}
}

// Int64 reads an int64 request field, which arrives as a decimal string.
func Int64(t *testing.T, req map[string]any, field string) int64 {
	t.Helper()
	s, ok := req[field].(string)
	require.Truef(t, ok, "field %s is %T, not string", field, req[field])
	n, err := strconv.ParseInt(s, 10, 64)
	require.NoError(t, err)
	return n
}

// Str reads a string request field.
func Str(t *testing.T, req map[string]any, field string) string {
	t.Helper()
	s, ok := req[field].(string)
	require.Truef(t, ok, "field %s is %T, not string", field, req[field])
	return s
}
