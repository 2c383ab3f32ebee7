// Package config provides configuration management for the Senzing gRPC SDK.
//
// This package defines the Config structure that controls how the SDK reaches
// a Senzing gRPC server: the endpoint, transport tuning, instrumentation and
// per-operation timeouts.
//
// # Basic Configuration
//
// The minimum required configuration is the server endpoint:
//
//	cfg := &config.Config{
//		GRPCURL: "grpc://localhost:8261",
//	}
//	if err := cfg.Validate(); err != nil {
//		log.Fatal(err)
//	}
//
// The SENZING_TOOLS_GRPC_URL environment variable, when set, replaces GRPCURL
// during Validate.
//
// # Transport Security
//
// The endpoint scheme selects the credentials:
//
//	"grpcs://host:8261" or "https://host:8261" → TLS with system certificates
//	"grpc://host:8261" or "http://host:8261"   → plaintext
//	"host:8261"                                → plaintext
//
// # Configuration Files
//
// Load reads TOML, YAML or JSON files, chosen by extension:
//
//	# senzing.toml
//	grpc_url = "grpc://localhost:8261"
//	debug = true
//
//	[timeouts]
//	unary = "45s"
//	stream = "30m"
//
//	[metrics]
//	enabled = true
//
// Durations are Go duration strings in TOML and YAML and nanosecond integers
// in JSON.
//
// # Timeouts
//
// Zero timeouts are replaced by WithDefaults:
//
//	Dial:     5s   connection establishment
//	Unary:    30s  a single request/response RPC
//	Stream:   10m  an entity export stream
//	RedoPoll: 5s   idle wait of redo.Processor.Run; Drain never waits
package config
