package grpc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/internal/testutil/grpcbuf"
)

func TestMetricsRecordCalls(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics("senzing", reg)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}

	files := map[string]string{"echo.proto": echoProto}
	fds, err := getProtoDescriptors(files)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	srv := grpcbuf.Start(fds)
	defer srv.Stop()
	srv.Handle("Echo/Say", func(context.Context, map[string]any) (map[string]any, error) {
		return map[string]any{"text": "ok"}, nil
	})
	srv.HandleStream("Echo/Count", func(_ context.Context, _ map[string]any, send func(map[string]any) error) error {
		return send(map[string]any{"text": "one"})
	})

	client, err := NewClient(grpcbuf.Target, files, WithDialOptions(srv.Dialer()), WithMetrics(m))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer func() { _ = client.Close() }()

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := client.CallWithMap(ctx, "Say", map[string]any{"text": "x"}); err != nil {
			t.Fatalf("CallWithMap: %v", err)
		}
	}
	if _, err := client.CallWithMap(ctx, "Ping", map[string]any{}); err == nil {
		t.Fatal("expected Unimplemented for Ping")
	}
	if err := client.Stream(ctx, "Count", map[string]any{}, func(map[string]any) error { return nil }); err != nil {
		t.Fatalf("Stream: %v", err)
	}

	if got := testutil.ToFloat64(m.calls.WithLabelValues("Echo", "Say", "OK")); got != 2 {
		t.Fatalf("Say OK count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.calls.WithLabelValues("Echo", "Ping", "Unimplemented")); got != 1 {
		t.Fatalf("Ping Unimplemented count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.calls.WithLabelValues("Echo", "Count", "OK")); got != 1 {
		t.Fatalf("Count OK count = %v, want 1", got)
	}
}

func TestMetricsRecordAbandonedStream(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics("senzing", reg)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}

	files := map[string]string{"echo.proto": echoProto}
	fds, err := getProtoDescriptors(files)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	srv := grpcbuf.Start(fds)
	defer srv.Stop()
	srv.HandleStream("Echo/Count", func(_ context.Context, _ map[string]any, send func(map[string]any) error) error {
		for i := 0; i < 5; i++ {
			if err := send(map[string]any{"text": "line", "index": i}); err != nil {
				return err
			}
		}
		return nil
	})

	client, err := NewClient(grpcbuf.Target, files, WithDialOptions(srv.Dialer()), WithMetrics(m))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer func() { _ = client.Close() }()

	stop := errors.New("stop")
	err = client.Stream(context.Background(), "Count", map[string]any{}, func(map[string]any) error { return stop })
	if !errors.Is(err, stop) {
		t.Fatalf("Stream error = %v, want stop", err)
	}

	// The abandoned stream is recorded asynchronously once its context ends.
	deadline := time.Now().Add(2 * time.Second)
	for testutil.ToFloat64(m.calls.WithLabelValues("Echo", "Count", "Canceled")) != 1 {
		if time.Now().After(deadline) {
			t.Fatalf("abandoned stream not recorded, series = %d", testutil.CollectAndCount(m.calls))
		}
		time.Sleep(5 * time.Millisecond)
	}
	if got := testutil.CollectAndCount(m.calls); got != 1 {
		t.Fatalf("rpc_total series = %d, want 1", got)
	}
}

func TestNewMetrics_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewMetrics("senzing", reg)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	second, err := NewMetrics("senzing", reg)
	if err != nil {
		t.Fatalf("second NewMetrics: %v", err)
	}
	if first.calls != second.calls {
		t.Fatal("expected the existing counter to be reused")
	}
}
