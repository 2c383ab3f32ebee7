package szproduct

import (
	"context"
	"testing"

	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/internal/testutil/sztest"
	"github.com/senzing-garage/sz-sdk-python-grpc-sub000/pkg/szerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
)

const versionJSON = `{"PRODUCT_NAME":"Senzing SDK","VERSION":"4.0.0","BUILD_VERSION":"4.0.0.25001"}`

func TestGetVersion(t *testing.T) {
	srv, client := sztest.Start(t)
	srv.Handle("SzProduct/GetVersion", sztest.Result(versionJSON))

	got, err := New(client).GetVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, versionJSON, got)
}

func TestGetLicense(t *testing.T) {
	srv, client := sztest.Start(t)
	srv.Handle("SzProduct/GetLicense", sztest.Result(`{"customer":"Senzing Public Test License"}`))

	got, err := New(client).GetLicense(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"customer":"Senzing Public Test License"}`, got)
}

func TestGetLicenseError(t *testing.T) {
	srv, client := sztest.Start(t)
	srv.Handle("SzProduct/GetLicense", sztest.Fail(codes.Unknown, "SENZ9000|License has expired"))

	_, err := New(client).GetLicense(context.Background())
	assert.ErrorIs(t, err, szerror.ErrSzLicense)
	assert.ErrorIs(t, err, szerror.ErrSzUnrecoverable)
	assert.Equal(t, 9000, szerror.Code(err))
}

func TestDestroy(t *testing.T) {
	srv, client := sztest.Start(t)
	srv.Handle("SzProduct/GetVersion", sztest.Result(versionJSON))

	p := New(client)
	require.NoError(t, p.Destroy(context.Background()))
	require.NoError(t, p.Destroy(context.Background()))

	_, err := p.GetVersion(context.Background())
	assert.ErrorIs(t, err, szerror.ErrSzNotInitialized)
	assert.Empty(t, srv.Calls())
}
