package grpc

import (
	"context"
	"testing"
	"time"

	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/internal/testutil/grpcbuf"
)

func TestDialEndpoint_Timeout(t *testing.T) {
	// Non-routable IP should hang until timeout; we verify we return quickly.
	ctx := context.Background()
	start := time.Now()
	_, err := DialEndpoint(ctx, "10.255.255.1:65535", 50*time.Millisecond)
	if err == nil {
		t.Fatal("expected error")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("call exceeded 1s: %v", elapsed)
	}
}

func TestDialEndpoint_Ready(t *testing.T) {
	fds, err := getProtoDescriptors(map[string]string{"echo.proto": echoProto})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	srv := grpcbuf.Start(fds)
	defer srv.Stop()

	conn, err := DialEndpoint(context.Background(), grpcbuf.Target, 5*time.Second, WithDialOptions(srv.Dialer()))
	if err != nil {
		t.Fatalf("DialEndpoint: %v", err)
	}
	_ = conn.Close()
}
