// Package grpc provides the dynamic gRPC client used to reach a Senzing gRPC server.
//
// This package enables runtime gRPC invocation without generated stubs by compiling
// the Senzing .proto definitions on-the-fly and using protocol buffer reflection
// for method resolution.
//
// # Features
//
//   - Embedded Senzing service definitions (SenzingProtos)
//   - Runtime protocol buffer compilation via protocompile
//   - Multiple invocation styles: Proto messages, JSON, or Go maps
//   - Server streaming for entity export reports
//   - Automatic transport security detection (TLS/insecure)
//   - zap debug logging and optional Prometheus metrics per RPC
//   - Connection lifecycle management
//
// # Client Creation
//
// A nil proto map selects the embedded Senzing definitions:
//
//	client, err := grpc.NewClient("grpc://localhost:8261", nil,
//		grpc.WithKeepalive(30*time.Second, 10*time.Second, true),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
// # Invocation Methods
//
// Method names are "Service/Method", or a bare method name when only one
// service declares it:
//
//	resp, err := client.CallWithMap(ctx, "SzProduct/GetVersion", map[string]any{})
//	version := resp["result"].(string)
//
// Call with JSON:
//
//	out, err := client.CallWithJSON(ctx, "SzEngine/GetRecord",
//		[]byte(`{"data_source_code":"TEST","record_id":"1","flags":"65536"}`))
//
// Server streaming:
//
//	err := client.Stream(ctx, "SzEngine/StreamExportJsonEntityReport",
//		map[string]any{"flags": flags},
//		func(m map[string]any) error {
//			fmt.Println(m["result"])
//			return nil
//		})
//
// Responses use proto field names and always contain every field. int64
// fields are rendered as decimal strings, as protojson does.
//
// # Transport Security
//
// Transport is determined by endpoint scheme:
//
//	"https://host:443", "grpcs://host:443" → TLS with system certificates
//	"http://host:8261", "grpc://host:8261" → Insecure plaintext
//	"host:8261"                            → Insecure plaintext (no scheme)
//
// # Error Handling
//
// RPC failures are returned as gRPC status errors; the Senzing client
// packages translate them with szerror.FromGRPC. Local failures (unknown or
// ambiguous method, invalid request JSON) are plain errors.
//
// # Thread Safety
//
// Client instances are safe for concurrent use. Multiple goroutines can
// make parallel calls through the same client.
package grpc
