package sdk

import (
	"context"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/pkg/config"
	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/pkg/grpc"
	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/pkg/senzing"
	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/pkg/szconfigmanager"
	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/pkg/szdiagnostic"
	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/pkg/szengine"
	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/pkg/szerror"
	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/pkg/szproduct"
	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/pkg/szrpc"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var _ senzing.SzAbstractFactory = (*Core)(nil)

// init configures a default global zap logger for the SDK. Applications may
// replace it with zap.ReplaceGlobals(...) if they need custom logging.
func init() {
	c := zap.Config{
		Level:            zap.NewAtomicLevelAt(zap.InfoLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := c.Build()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)
}

// Option customizes NewSDK.
type Option func(*Core)

// WithGRPCOptions passes extra options to the underlying grpc.NewClient.
func WithGRPCOptions(opts ...grpc.Option) Option {
	return func(c *Core) { c.grpcOpts = append(c.grpcOpts, opts...) }
}

// WithRegisterer registers RPC metrics on reg instead of the default
// Prometheus registerer. Only used when cfg.Metrics.Enabled is set.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(c *Core) { c.registerer = reg }
}

// destroyer is implemented by every service client.
type destroyer interface {
	Destroy(ctx context.Context) error
}

// Core is the concrete SzAbstractFactory. All clients it creates share one
// gRPC connection, which Destroy closes.
type Core struct {
	*config.Config

	client     *grpc.Client
	callerOpts []szrpc.Option
	grpcOpts   []grpc.Option
	registerer prometheus.Registerer
	logger     *zap.Logger

	mu        sync.Mutex
	created   []destroyer
	destroyed bool
}

// NewSDK validates cfg and opens the shared connection to the Senzing gRPC
// server. The connection is established lazily, so an unreachable server
// surfaces on the first call (or on Health).
func NewSDK(cfg *config.Config, opts ...Option) (*Core, error) {
	if cfg == nil {
		return nil, szerror.Newf(szerror.KindBadInput, "nil config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, szerror.Newf(szerror.KindConfiguration, "%v", err)
	}

	c := &Core{
		Config:     cfg,
		registerer: prometheus.DefaultRegisterer,
		logger:     zap.L(),
	}
	for _, opt := range opts {
		opt(c)
	}

	grpcOpts := []grpc.Option{
		grpc.WithLogger(c.logger),
		grpc.WithMaxMessageSize(cfg.MaxMessageSize),
		grpc.WithKeepalive(cfg.Keepalive.Time, cfg.Keepalive.Timeout, cfg.Keepalive.PermitWithoutStream),
		grpc.WithHeaders(cfg.Headers),
	}
	if cfg.Metrics.Enabled {
		m, err := grpc.NewMetrics(cfg.Metrics.Namespace, c.registerer)
		if err != nil {
			return nil, fmt.Errorf("register rpc metrics: %w", err)
		}
		grpcOpts = append(grpcOpts, grpc.WithMetrics(m))
	}

	client, err := grpc.NewClient(cfg.GRPCURL, nil, append(grpcOpts, c.grpcOpts...)...)
	if err != nil {
		return nil, szerror.Newf(szerror.KindUnrecoverable, "connect %s: %v", cfg.GRPCURL, err)
	}
	c.client = client
	c.callerOpts = []szrpc.Option{
		szrpc.WithTimeouts(cfg.Timeouts.Unary, cfg.Timeouts.Stream),
		szrpc.WithLogger(c.logger),
	}

	if cfg.Debug {
		c.logger.Debug("senzing sdk ready",
			zap.String("endpoint", cfg.GRPCURL),
			zap.Bool("metrics", cfg.Metrics.Enabled),
			zap.Duration("unary_timeout", cfg.Timeouts.Unary))
	}
	return c, nil
}

// Client returns the shared gRPC client.
func (c *Core) Client() *grpc.Client {
	return c.client
}

// track registers a created client so Destroy can release it. It fails once
// the factory is destroyed.
func (c *Core) track(kind string, d destroyer) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed {
		return szerror.Newf(szerror.KindNotInitialized, "Create%s called after Destroy", kind)
	}
	c.created = append(c.created, d)
	return nil
}

// CreateConfigManager returns a config manager client on the shared connection.
func (c *Core) CreateConfigManager(_ context.Context) (senzing.SzConfigManager, error) {
	m := szconfigmanager.New(c.client, c.callerOpts...)
	if err := c.track("ConfigManager", m); err != nil {
		return nil, err
	}
	return m, nil
}

// CreateDiagnostic returns a diagnostic client on the shared connection.
func (c *Core) CreateDiagnostic(_ context.Context) (senzing.SzDiagnostic, error) {
	d := szdiagnostic.New(c.client, c.callerOpts...)
	if err := c.track("Diagnostic", d); err != nil {
		return nil, err
	}
	return d, nil
}

// CreateEngine returns an engine client on the shared connection.
func (c *Core) CreateEngine(_ context.Context) (senzing.SzEngine, error) {
	e := szengine.New(c.client, c.callerOpts...)
	if err := c.track("Engine", e); err != nil {
		return nil, err
	}
	return e, nil
}

// CreateProduct returns a product client on the shared connection.
func (c *Core) CreateProduct(_ context.Context) (senzing.SzProduct, error) {
	p := szproduct.New(c.client, c.callerOpts...)
	if err := c.track("Product", p); err != nil {
		return nil, err
	}
	return p, nil
}

// Reinitialize points the server-side diagnostic and engine at configID,
// diagnostic first.
func (c *Core) Reinitialize(ctx context.Context, configID int64) error {
	c.mu.Lock()
	destroyed := c.destroyed
	c.mu.Unlock()
	if destroyed {
		return szerror.Newf(szerror.KindNotInitialized, "Reinitialize called after Destroy")
	}

	if err := szdiagnostic.New(c.client, c.callerOpts...).Reinitialize(ctx, configID); err != nil {
		return err
	}
	return szengine.New(c.client, c.callerOpts...).Reinitialize(ctx, configID)
}

// Destroy releases every client created by the factory and closes the shared
// connection. It is idempotent.
func (c *Core) Destroy(ctx context.Context) error {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return nil
	}
	c.destroyed = true
	created := c.created
	c.created = nil
	c.mu.Unlock()

	var err error
	for _, d := range created {
		err = multierr.Append(err, d.Destroy(ctx))
	}
	err = multierr.Append(err, c.client.Close())
	if err != nil {
		c.logger.Error("senzing sdk destroy", zap.Error(err))
	}
	return err
}
