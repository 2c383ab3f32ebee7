// Package config defines the runtime configuration for the SDK: the Senzing
// gRPC server endpoint, debug mode, transport tuning, metrics and operation
// timeouts. It also provides validation, defaulting and file loading helpers.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// EnvGRPCURL names the environment variable that overrides Config.GRPCURL.
const EnvGRPCURL = "SENZING_TOOLS_GRPC_URL"

// DefaultMaxMessageSize is the gRPC send/receive limit applied when
// MaxMessageSize is zero. Entity exports and network documents can be large.
const DefaultMaxMessageSize = 64 * 1024 * 1024

var validate = validator.New()

// Config holds all SDK settings required to reach a Senzing gRPC server.
// Use Validate to fill implicit defaults and to check for required fields.
type Config struct {
	// GRPCURL is the Senzing gRPC server endpoint (required). The scheme
	// selects transport security: "https://" or "grpcs://" for TLS,
	// "http://", "grpc://" or no scheme for plaintext.
	GRPCURL string `json:"grpc_url" yaml:"grpc_url" toml:"grpc_url" validate:"required"`
	// Debug enables verbose logging.
	Debug bool `json:"debug" yaml:"debug" toml:"debug"`
	// MaxMessageSize bounds a single gRPC message in bytes.
	MaxMessageSize int `json:"max_message_size" yaml:"max_message_size" toml:"max_message_size" validate:"gte=0"`
	// Headers are sent as gRPC metadata on every call, e.g. authorization
	// for a proxy in front of the server.
	Headers map[string]string `json:"headers" yaml:"headers" toml:"headers"`
	// Keepalive configures client-side HTTP/2 pings.
	Keepalive Keepalive `json:"keepalive" yaml:"keepalive" toml:"keepalive"`
	// Metrics toggles Prometheus RPC instrumentation.
	Metrics Metrics `json:"metrics" yaml:"metrics" toml:"metrics"`
	// Timeouts configures per-operation timeouts. See Timeouts.WithDefaults for defaults.
	Timeouts Timeouts `json:"timeouts" yaml:"timeouts" toml:"timeouts"`
}

// Keepalive mirrors grpc keepalive.ClientParameters. A zero Time disables pings.
type Keepalive struct {
	Time                time.Duration `json:"time" yaml:"time" toml:"time" validate:"gte=0"`
	Timeout             time.Duration `json:"timeout" yaml:"timeout" toml:"timeout" validate:"gte=0"`
	PermitWithoutStream bool          `json:"permit_without_stream" yaml:"permit_without_stream" toml:"permit_without_stream"`
}

// Metrics controls Prometheus instrumentation of outgoing RPCs.
type Metrics struct {
	Enabled   bool   `json:"enabled" yaml:"enabled" toml:"enabled"`
	Namespace string `json:"namespace" yaml:"namespace" toml:"namespace"`
}

// Timeouts controls SDK operation deadlines.
// Zero values will be replaced by defaults in WithDefaults.
type Timeouts struct {
	Dial     time.Duration `json:"dial" yaml:"dial" toml:"dial"`                // connect
	Unary    time.Duration `json:"unary" yaml:"unary" toml:"unary"`             // single RPC
	Stream   time.Duration `json:"stream" yaml:"stream" toml:"stream"`          // export streams
	RedoPoll time.Duration `json:"redo_poll" yaml:"redo_poll" toml:"redo_poll"` // idle wait of redo.Processor.Run (szload -follow)
}

// Validate normalizes the configuration by applying the environment override
// for GRPCURL and implicit defaults for MaxMessageSize, metrics namespace and
// timeouts, then checks the struct tags. Returns an error when GRPCURL is empty.
func (c *Config) Validate() error {
	if v := strings.TrimSpace(os.Getenv(EnvGRPCURL)); v != "" {
		c.GRPCURL = v
	}

	if c.MaxMessageSize == 0 {
		c.MaxMessageSize = DefaultMaxMessageSize
	}

	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = "senzing"
	}

	c.Timeouts = c.Timeouts.WithDefaults()

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// WithDefaults returns a copy of t with zero values replaced by defaults:
//
//	Dial:     5s
//	Unary:    30s
//	Stream:   10m
//	RedoPoll: 5s
func (t Timeouts) WithDefaults() Timeouts {
	tt := t
	if tt.Dial == 0 {
		tt.Dial = 5 * time.Second
	}
	if tt.Unary == 0 {
		tt.Unary = 30 * time.Second
	}
	if tt.Stream == 0 {
		tt.Stream = 10 * time.Minute
	}
	if tt.RedoPoll == 0 {
		tt.RedoPoll = 5 * time.Second
	}
	return tt
}

// Load reads a configuration file. The format is chosen by extension:
// .toml, .yaml/.yml or .json. The result is validated before it is returned.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("config parse failed (%s): %w", path, err)
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config load failed (%s): %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config parse failed (%s): %w", path, err)
		}
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config load failed (%s): %w", path, err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config parse failed (%s): %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
