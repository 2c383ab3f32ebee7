// Package szconfig edits a Senzing configuration document through the
// SzConfig gRPC service.
//
// The service is stateless: each call carries the whole document and the
// mutating calls answer with the updated one. Szconfig keeps the current
// document on the client and swaps it for the returned version.
package szconfig

import (
	"context"
	"sync"

	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/pkg/grpc"
	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/pkg/senzing"
	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/pkg/szerror"
	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/pkg/szrpc"
	"go.uber.org/zap"
)

const service = "SzConfig"

// Szconfig implements senzing.SzConfig over gRPC.
type Szconfig struct {
	caller *szrpc.Caller

	mu         sync.Mutex
	definition string
}

var _ senzing.SzConfig = (*Szconfig)(nil)

// New returns a config client holding definition.
func New(client *grpc.Client, definition string, opts ...szrpc.Option) *Szconfig {
	return &Szconfig{
		caller:     szrpc.New(client, service, opts...),
		definition: definition,
	}
}

// Export returns the configuration document currently held.
func (c *Szconfig) Export(_ context.Context) (string, error) {
	if err := c.caller.Ready("Export"); err != nil {
		return "", err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.definition, nil
}

// Import replaces the held document.
func (c *Szconfig) Import(_ context.Context, configDefinition string) error {
	if err := c.caller.Ready("Import"); err != nil {
		return err
	}
	if configDefinition == "" {
		return szerror.Newf(szerror.KindBadInput, "config definition must not be empty")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.definition = configDefinition
	return nil
}

// GetDataSourceRegistry lists the data sources of the held document.
func (c *Szconfig) GetDataSourceRegistry(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	resp, err := c.caller.Call(ctx, "GetDataSourceRegistry", map[string]any{
		"config_definition": c.definition,
	})
	if err != nil {
		return "", err
	}
	return szrpc.String(resp), nil
}

// RegisterDataSource adds dataSourceCode to the held document.
func (c *Szconfig) RegisterDataSource(ctx context.Context, dataSourceCode string) (string, error) {
	return c.update(ctx, "RegisterDataSource", dataSourceCode)
}

// UnregisterDataSource removes dataSourceCode from the held document.
func (c *Szconfig) UnregisterDataSource(ctx context.Context, dataSourceCode string) (string, error) {
	return c.update(ctx, "UnregisterDataSource", dataSourceCode)
}

// VerifyConfig asks the server whether configDefinition is usable. The held
// document is left alone.
func (c *Szconfig) VerifyConfig(ctx context.Context, configDefinition string) (bool, error) {
	resp, err := c.caller.Call(ctx, "VerifyConfig", map[string]any{
		"config_definition": configDefinition,
	})
	if err != nil {
		return false, err
	}
	return szrpc.Bool(resp), nil
}

// Destroy releases the client.
func (c *Szconfig) Destroy(_ context.Context) error {
	return c.caller.Close()
}

func (c *Szconfig) update(ctx context.Context, method, dataSourceCode string) (string, error) {
	if dataSourceCode == "" {
		return "", szerror.Newf(szerror.KindBadInput, "data source code must not be empty")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	resp, err := c.caller.Call(ctx, method, map[string]any{
		"config_definition": c.definition,
		"data_source_code":  dataSourceCode,
	})
	if err != nil {
		return "", err
	}
	if updated := szrpc.Field(resp, "config_definition"); updated != "" {
		c.definition = updated
	}
	c.caller.Logger().Debug("config updated",
		zap.String("method", method),
		zap.String("data_source_code", dataSourceCode))
	return szrpc.String(resp), nil
}
