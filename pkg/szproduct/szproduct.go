// Package szproduct reports the version and license of the Senzing engine
// behind a gRPC server.
package szproduct

import (
	"context"

	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/pkg/grpc"
	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/pkg/senzing"
	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/pkg/szrpc"
)

const service = "SzProduct"

// Szproduct implements senzing.SzProduct over gRPC.
type Szproduct struct {
	caller *szrpc.Caller
}

var _ senzing.SzProduct = (*Szproduct)(nil)

// New returns a product client using client.
func New(client *grpc.Client, opts ...szrpc.Option) *Szproduct {
	return &Szproduct{caller: szrpc.New(client, service, opts...)}
}

// GetLicense returns the license document as JSON.
func (p *Szproduct) GetLicense(ctx context.Context) (string, error) {
	resp, err := p.caller.Call(ctx, "GetLicense", map[string]any{})
	if err != nil {
		return "", err
	}
	return szrpc.String(resp), nil
}

// GetVersion returns the engine version document as JSON.
func (p *Szproduct) GetVersion(ctx context.Context) (string, error) {
	resp, err := p.caller.Call(ctx, "GetVersion", map[string]any{})
	if err != nil {
		return "", err
	}
	return szrpc.String(resp), nil
}

// Destroy releases the client.
func (p *Szproduct) Destroy(_ context.Context) error {
	return p.caller.Close()
}
