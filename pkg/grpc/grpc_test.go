package grpc

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/internal/testutil/grpcbuf"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
)

// echoProto is a minimal proto definition used for testing dynamic gRPC invocation.
const echoProto = `
syntax = "proto3";
package test;
import "google/protobuf/empty.proto";
service Echo {
  rpc Ping(google.protobuf.Empty) returns (google.protobuf.Empty);
  rpc Say(SayRequest) returns (SayReply);
  rpc Count(SayRequest) returns (stream SayReply);
}
message SayRequest { string text = 1; int64 times = 2; }
message SayReply { string text = 1; int64 index = 2; }
`

// startEchoServer starts an in-memory server for echoProto and a client bound to it.
func startEchoServer(t *testing.T) (*grpcbuf.Server, *Client) {
	t.Helper()
	files := map[string]string{"echo.proto": echoProto}
	fds, err := getProtoDescriptors(files)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	srv := grpcbuf.Start(fds)

	srv.Handle("Echo/Ping", func(context.Context, map[string]any) (map[string]any, error) {
		return map[string]any{}, nil
	})
	srv.Handle("Echo/Say", func(_ context.Context, req map[string]any) (map[string]any, error) {
		return map[string]any{"text": req["text"], "index": req["times"]}, nil
	})
	srv.HandleStream("Echo/Count", func(_ context.Context, req map[string]any, send func(map[string]any) error) error {
		for i := 0; i < 3; i++ {
			if err := send(map[string]any{"text": req["text"], "index": i}); err != nil {
				return err
			}
		}
		return nil
	})

	client, err := NewClient(grpcbuf.Target, files, WithDialOptions(srv.Dialer()))
	if err != nil {
		srv.Stop()
		t.Fatalf("NewClient: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Close()
		srv.Stop()
	})
	return srv, client
}

func TestClientCallVariants(t *testing.T) {
	_, client := startEchoServer(t)
	ctx := context.Background()

	t.Run("CallWithJSON", func(t *testing.T) {
		resp, err := client.CallWithJSON(ctx, "Ping", []byte(`{}`))
		if err != nil {
			t.Fatalf("CallWithJSON error: %v", err)
		}
		var m map[string]any
		if err := json.Unmarshal(resp, &m); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
		if len(m) != 0 {
			t.Fatalf("expected empty JSON response, got %v", m)
		}
	})

	t.Run("CallWithMap", func(t *testing.T) {
		resp, err := client.CallWithMap(ctx, "Echo/Say", map[string]any{"text": "hello", "times": 4})
		if err != nil {
			t.Fatalf("CallWithMap error: %v", err)
		}
		if resp["text"] != "hello" {
			t.Fatalf("unexpected text: %v", resp["text"])
		}
		// int64 fields are rendered as JSON strings by protojson.
		if resp["index"] != "4" {
			t.Fatalf("unexpected index: %#v", resp["index"])
		}
	})

	t.Run("CallWithProto", func(t *testing.T) {
		msg, err := client.CallWithProto(ctx, "Ping", &emptypb.Empty{})
		if err != nil {
			t.Fatalf("CallWithProto error: %v", err)
		}
		if !proto.Equal(msg, &emptypb.Empty{}) {
			t.Fatalf("unexpected proto response: %v", msg)
		}
	})
}

func TestClientStream(t *testing.T) {
	_, client := startEchoServer(t)

	var got []string
	err := client.Stream(context.Background(), "Count", map[string]any{"text": "x"}, func(m map[string]any) error {
		got = append(got, m["index"].(string))
		return nil
	})
	if err != nil {
		t.Fatalf("Stream error: %v", err)
	}
	if len(got) != 3 || got[0] != "0" || got[2] != "2" {
		t.Fatalf("unexpected stream messages: %v", got)
	}
}

func TestClientStream_CallbackErrorStops(t *testing.T) {
	_, client := startEchoServer(t)

	stop := errors.New("stop")
	calls := 0
	err := client.Stream(context.Background(), "Count", map[string]any{}, func(map[string]any) error {
		calls++
		return stop
	})
	if !errors.Is(err, stop) {
		t.Fatalf("expected callback error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected one callback, got %d", calls)
	}
}

func TestClientStream_RejectsUnary(t *testing.T) {
	_, client := startEchoServer(t)
	if err := client.Stream(context.Background(), "Say", nil, func(map[string]any) error { return nil }); err == nil {
		t.Fatal("expected error streaming a unary method")
	}
	if _, err := client.CallWithMap(context.Background(), "Count", nil); err == nil {
		t.Fatal("expected error calling a streaming method as unary")
	}
}

func TestClientUnimplemented(t *testing.T) {
	srv, client := startEchoServer(t)
	srv.Handle("Echo/Say", nil)

	_, err := client.CallWithMap(context.Background(), "Say", map[string]any{"text": "x"})
	if status.Code(err) != codes.Unimplemented {
		t.Fatalf("expected Unimplemented, got %v", err)
	}
	if req := srv.LastRequest("Echo/Say"); req == nil || req["text"] != "x" {
		t.Fatalf("request not recorded: %v", req)
	}
}

func TestClientHealth(t *testing.T) {
	srv, client := startEchoServer(t)
	ctx := context.Background()

	st, err := client.Health(ctx, "")
	if err != nil {
		t.Fatalf("Health error: %v", err)
	}
	if st != grpc_health_v1.HealthCheckResponse_SERVING {
		t.Fatalf("unexpected status: %v", st)
	}

	srv.SetServingStatus(grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	st, err = client.Health(ctx, "")
	if err != nil {
		t.Fatalf("Health error: %v", err)
	}
	if st != grpc_health_v1.HealthCheckResponse_NOT_SERVING {
		t.Fatalf("unexpected status: %v", st)
	}
}

func TestNewClient_InvalidProto(t *testing.T) {
	if _, err := NewClient("localhost:1", map[string]string{"bad.proto": "syntax = \"proto3\"; message X {"}); err == nil {
		t.Fatal("expected compilation error")
	}
}

func TestGrpcCredsFromEndpoint(t *testing.T) {
	tests := []struct {
		endpoint string
		addr     string
	}{
		{"https://senzing.example:443", "senzing.example:443"},
		{"grpcs://senzing.example:443", "senzing.example:443"},
		{"http://localhost:8261", "localhost:8261"},
		{"grpc://localhost:8261", "localhost:8261"},
		{"localhost:8261", "localhost:8261"},
	}
	for _, tt := range tests {
		addr, opt := grpcCredsFromEndpoint(tt.endpoint)
		if addr != tt.addr {
			t.Fatalf("%s: addr = %s, want %s", tt.endpoint, addr, tt.addr)
		}
		if opt == nil {
			t.Fatalf("%s: nil dial option", tt.endpoint)
		}
	}
}
