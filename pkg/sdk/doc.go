// Package sdk provides the high-level entry point for talking to a Senzing
// gRPC server.
//
// The SDK hands out typed clients for the five Senzing services (engine,
// config manager, diagnostic, product and, through the config manager,
// config) over one shared, dynamically described gRPC connection. Engine
// failures come back as *szerror.Error values that can be matched with
// errors.Is against the szerror sentinels.
//
// # Quick Start
//
//	import (
//		"github.com/senzing-garage/sz-sdk-python-grpc-sub000/pkg/config"
//		"github.com/senzing-garage/sz-sdk-python-grpc-sub000/pkg/sdk"
//		"github.com/senzing-garage/sz-sdk-python-grpc-sub000/pkg/senzing"
//	)
//
//	func main() {
//		ctx := context.Background()
//		core, err := sdk.NewSDK(&config.Config{GRPCURL: "grpc://localhost:8261"})
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer core.Destroy(ctx)
//
//		engine, err := core.CreateEngine(ctx)
//		if err != nil {
//			log.Fatal(err)
//		}
//		info, err := engine.AddRecord(ctx, "CUSTOMERS", "1001",
//			`{"NAME_FULL":"Robert Smith"}`, senzing.SzWithInfo)
//		if errors.Is(err, szerror.ErrSzBadInput) {
//			// fix the record and retry
//		}
//		fmt.Println(info)
//	}
//
// # Configuration
//
// Required configuration fields:
//   - GRPCURL: server endpoint; "grpcs://" or "https://" selects TLS
//
// Optional fields:
//   - Debug: verbose logging
//   - MaxMessageSize: gRPC message limit (64 MiB by default)
//   - Keepalive: client keepalive pings
//   - Metrics: Prometheus RPC counters and latency histograms
//   - Timeouts: dial, unary, stream and redo poll timeouts
//
// The SENZING_TOOLS_GRPC_URL environment variable overrides GRPCURL.
//
// # Resource Management
//
// Destroy releases every client the factory created and closes the shared
// connection. Calls on a destroyed client, and Create calls on a destroyed
// factory, return an error matching szerror.ErrSzNotInitialized.
//
// # Thread Safety
//
// Core and the clients it creates are safe for concurrent use. SzConfig
// holds a configuration document client-side and serializes its updates.
//
// # See Also
//
//   - examples/quick-start: add a record and fetch the entity
//   - examples/healthcheck: check that the server is serving
//   - examples/proto-files: list the embedded service definitions
//   - cmd/szload: bulk load JSON lines and drain the redo queue
package sdk
