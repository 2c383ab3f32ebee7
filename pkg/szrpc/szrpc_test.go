package szrpc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/internal/testutil/sztest"
	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/pkg/szerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/connectivity"
)

func TestCallUnwrapsResult(t *testing.T) {
	srv, client := sztest.Start(t)
	srv.Handle("SzProduct/GetVersion", sztest.Result(`{"VERSION":"4.0.0"}`))

	c := New(client, "SzProduct")
	resp, err := c.Call(context.Background(), "GetVersion", map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, `{"VERSION":"4.0.0"}`, String(resp))
}

func TestCallTranslatesErrors(t *testing.T) {
	srv, client := sztest.Start(t)
	srv.Handle("SzProduct/GetLicense", sztest.Fail(codes.Unknown, "SENZ9000|License expired"))

	_, err := New(client, "SzProduct").Call(context.Background(), "GetLicense", map[string]any{})
	assert.ErrorIs(t, err, szerror.ErrSzLicense)
	assert.Equal(t, 9000, szerror.Code(err))
}

func TestCallTimeout(t *testing.T) {
	srv, client := sztest.Start(t)
	srv.Handle("SzProduct/GetVersion", func(ctx context.Context, _ map[string]any) (map[string]any, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	c := New(client, "SzProduct", WithTimeouts(50*time.Millisecond, 0))
	_, err := c.Call(context.Background(), "GetVersion", map[string]any{})
	assert.ErrorIs(t, err, szerror.ErrSzRetryTimeoutExceeded)
	assert.ErrorIs(t, err, szerror.ErrSzRetryable)
}

func TestStreamCallbackError(t *testing.T) {
	srv, client := sztest.Start(t)
	srv.HandleStream("SzEngine/StreamExportJsonEntityReport",
		func(_ context.Context, _ map[string]any, send func(map[string]any) error) error {
			for i := 0; i < 3; i++ {
				if err := send(map[string]any{"result": "line"}); err != nil {
					return err
				}
			}
			return nil
		})

	stop := errors.New("stop")
	err := New(client, "SzEngine").Stream(context.Background(), "StreamExportJsonEntityReport",
		map[string]any{"flags": 0}, func(map[string]any) error { return stop })
	assert.Same(t, stop, err)
}

func TestCloseMarksDestroyed(t *testing.T) {
	srv, client := sztest.Start(t)
	srv.Handle("SzProduct/GetVersion", sztest.Result("{}"))

	c := New(client, "SzProduct")
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	_, err := c.Call(context.Background(), "GetVersion", map[string]any{})
	assert.ErrorIs(t, err, szerror.ErrSzNotInitialized)
	err = c.Stream(context.Background(), "GetVersion", nil, func(map[string]any) error { return nil })
	assert.ErrorIs(t, err, szerror.ErrSzNotInitialized)
	assert.NotEqual(t, connectivity.Shutdown, client.GRPC.GetState())
}

func TestCloseOwnedClient(t *testing.T) {
	_, client := sztest.Start(t)

	c := New(client, "SzProduct", WithOwnedClient())
	require.NoError(t, c.Close())
	assert.Equal(t, connectivity.Shutdown, client.GRPC.GetState())
}

func TestInt64(t *testing.T) {
	tests := []struct {
		name    string
		resp    map[string]any
		want    int64
		wantErr bool
	}{
		{name: "string", resp: map[string]any{"result": "9007199254740993"}, want: 9007199254740993},
		{name: "number", resp: map[string]any{"result": float64(42)}, want: 42},
		{name: "missing", resp: map[string]any{}, want: 0},
		{name: "garbage", resp: map[string]any{"result": "x"}, wantErr: true},
		{name: "wrong type", resp: map[string]any{"result": true}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Int64(tt.resp)
			if tt.wantErr {
				assert.ErrorIs(t, err, szerror.ErrSzSdk)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResultHelpers(t *testing.T) {
	assert.True(t, Bool(map[string]any{"result": true}))
	assert.False(t, Bool(map[string]any{}))
	assert.Equal(t, "cfg", Field(map[string]any{"config_definition": "cfg"}, "config_definition"))
	assert.Empty(t, String(map[string]any{"result": 1.0}))
}

func TestRequireKey(t *testing.T) {
	assert.NoError(t, RequireKey("CUSTOMERS", "1001"))
	assert.ErrorIs(t, RequireKey("", "1001"), szerror.ErrSzBadInput)
	assert.ErrorIs(t, RequireKey("CUSTOMERS", ""), szerror.ErrSzBadInput)
}
