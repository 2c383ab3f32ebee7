// Package szdiagnostic inspects and maintains the repository behind a
// Senzing gRPC server.
package szdiagnostic

import (
	"context"

	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/pkg/grpc"
	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/pkg/senzing"
	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/pkg/szerror"
	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/pkg/szrpc"
	"go.uber.org/zap"
)

const service = "SzDiagnostic"

// Szdiagnostic implements senzing.SzDiagnostic over gRPC.
type Szdiagnostic struct {
	caller *szrpc.Caller
}

var _ senzing.SzDiagnostic = (*Szdiagnostic)(nil)

// New returns a diagnostic client using client.
func New(client *grpc.Client, opts ...szrpc.Option) *Szdiagnostic {
	return &Szdiagnostic{caller: szrpc.New(client, service, opts...)}
}

// CheckRepositoryPerformance runs the insert benchmark for secondsToRun
// seconds and returns the report.
func (d *Szdiagnostic) CheckRepositoryPerformance(ctx context.Context, secondsToRun int) (string, error) {
	if secondsToRun < 0 {
		return "", szerror.Newf(szerror.KindBadInput, "secondsToRun must not be negative, got %d", secondsToRun)
	}
	resp, err := d.caller.Call(ctx, "CheckRepositoryPerformance", map[string]any{
		"seconds_to_run": secondsToRun,
	})
	if err != nil {
		return "", err
	}
	return szrpc.String(resp), nil
}

// GetFeature returns the stored feature for featureID.
func (d *Szdiagnostic) GetFeature(ctx context.Context, featureID int64) (string, error) {
	resp, err := d.caller.Call(ctx, "GetFeature", map[string]any{"feature_id": featureID})
	if err != nil {
		return "", err
	}
	return szrpc.String(resp), nil
}

// GetRepositoryInfo returns the data store layout of the repository.
func (d *Szdiagnostic) GetRepositoryInfo(ctx context.Context) (string, error) {
	resp, err := d.caller.Call(ctx, "GetRepositoryInfo", map[string]any{})
	if err != nil {
		return "", err
	}
	return szrpc.String(resp), nil
}

// PurgeRepository deletes every record and entity in the repository.
func (d *Szdiagnostic) PurgeRepository(ctx context.Context) error {
	d.caller.Logger().Warn("purging senzing repository")
	_, err := d.caller.Call(ctx, "PurgeRepository", map[string]any{})
	return err
}

// Reinitialize switches the diagnostic service to configID.
func (d *Szdiagnostic) Reinitialize(ctx context.Context, configID int64) error {
	_, err := d.caller.Call(ctx, "Reinitialize", map[string]any{"config_id": configID})
	if err == nil {
		d.caller.Logger().Info("diagnostic reinitialized", zap.Int64("config_id", configID))
	}
	return err
}

// Destroy releases the client.
func (d *Szdiagnostic) Destroy(_ context.Context) error {
	return d.caller.Close()
}
