// Package szconfigmanager stores Senzing configurations in the repository and
// manages which one is the default.
package szconfigmanager

import (
	"context"
	"sync"

	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/pkg/grpc"
	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/pkg/senzing"
	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/pkg/szconfig"
	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/pkg/szerror"
	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/pkg/szrpc"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const service = "SzConfigManager"

// Szconfigmanager implements senzing.SzConfigManager over gRPC.
type Szconfigmanager struct {
	caller *szrpc.Caller
	client *grpc.Client
	opts   []szrpc.Option

	mu      sync.Mutex
	configs []*szconfig.Szconfig
}

var _ senzing.SzConfigManager = (*Szconfigmanager)(nil)

// New returns a config manager client. Configs it creates share client and
// opts.
func New(client *grpc.Client, opts ...szrpc.Option) *Szconfigmanager {
	return &Szconfigmanager{
		caller: szrpc.New(client, service, opts...),
		client: client,
		opts:   opts,
	}
}

// CreateConfigFromConfigID loads a registered configuration for editing.
func (m *Szconfigmanager) CreateConfigFromConfigID(ctx context.Context, configID int64) (senzing.SzConfig, error) {
	resp, err := m.caller.Call(ctx, "GetConfig", map[string]any{"config_id": configID})
	if err != nil {
		return nil, err
	}
	return m.newConfig(szrpc.String(resp)), nil
}

// CreateConfigFromString wraps configDefinition for editing.
func (m *Szconfigmanager) CreateConfigFromString(_ context.Context, configDefinition string) (senzing.SzConfig, error) {
	if err := m.caller.Ready("CreateConfigFromString"); err != nil {
		return nil, err
	}
	if configDefinition == "" {
		return nil, szerror.Newf(szerror.KindBadInput, "config definition must not be empty")
	}
	return m.newConfig(configDefinition), nil
}

// CreateConfigFromTemplate starts from the server's template configuration.
func (m *Szconfigmanager) CreateConfigFromTemplate(ctx context.Context) (senzing.SzConfig, error) {
	resp, err := m.caller.Call(ctx, "GetTemplateConfig", map[string]any{})
	if err != nil {
		return nil, err
	}
	return m.newConfig(szrpc.String(resp)), nil
}

// newConfig builds a config client that Destroy releases with the manager.
func (m *Szconfigmanager) newConfig(definition string) *szconfig.Szconfig {
	c := szconfig.New(m.client, definition, m.opts...)
	m.mu.Lock()
	m.configs = append(m.configs, c)
	m.mu.Unlock()
	return c
}

// GetConfigRegistry returns the registry of stored configurations.
func (m *Szconfigmanager) GetConfigRegistry(ctx context.Context) (string, error) {
	resp, err := m.caller.Call(ctx, "GetConfigRegistry", map[string]any{})
	if err != nil {
		return "", err
	}
	return szrpc.String(resp), nil
}

// GetDefaultConfigID returns the id of the default configuration.
func (m *Szconfigmanager) GetDefaultConfigID(ctx context.Context) (int64, error) {
	resp, err := m.caller.Call(ctx, "GetDefaultConfigId", map[string]any{})
	if err != nil {
		return 0, err
	}
	return szrpc.Int64(resp)
}

// RegisterConfig stores configDefinition and returns its id.
func (m *Szconfigmanager) RegisterConfig(ctx context.Context, configDefinition, configComment string) (int64, error) {
	resp, err := m.caller.Call(ctx, "RegisterConfig", map[string]any{
		"config_definition": configDefinition,
		"config_comment":    configComment,
	})
	if err != nil {
		return 0, err
	}
	id, err := szrpc.Int64(resp)
	if err == nil {
		m.caller.Logger().Info("config registered", zap.Int64("config_id", id), zap.String("comment", configComment))
	}
	return id, err
}

// ReplaceDefaultConfigID moves the default from currentDefaultConfigID to
// newDefaultConfigID. The server refuses with SzReplaceConflictError when the
// default changed in the meantime.
func (m *Szconfigmanager) ReplaceDefaultConfigID(ctx context.Context, currentDefaultConfigID, newDefaultConfigID int64) error {
	_, err := m.caller.Call(ctx, "ReplaceDefaultConfigId", map[string]any{
		"current_default_config_id": currentDefaultConfigID,
		"new_default_config_id":     newDefaultConfigID,
	})
	return err
}

// SetDefaultConfig registers configDefinition and makes it the default.
func (m *Szconfigmanager) SetDefaultConfig(ctx context.Context, configDefinition, configComment string) (int64, error) {
	resp, err := m.caller.Call(ctx, "SetDefaultConfig", map[string]any{
		"config_definition": configDefinition,
		"config_comment":    configComment,
	})
	if err != nil {
		return 0, err
	}
	return szrpc.Int64(resp)
}

// SetDefaultConfigID makes configID the default configuration.
func (m *Szconfigmanager) SetDefaultConfigID(ctx context.Context, configID int64) error {
	_, err := m.caller.Call(ctx, "SetDefaultConfigId", map[string]any{"config_id": configID})
	return err
}

// Destroy releases the client and every config it created.
func (m *Szconfigmanager) Destroy(ctx context.Context) error {
	m.mu.Lock()
	configs := m.configs
	m.configs = nil
	m.mu.Unlock()

	var err error
	for _, c := range configs {
		err = multierr.Append(err, c.Destroy(ctx))
	}
	return multierr.Append(err, m.caller.Close())
}
