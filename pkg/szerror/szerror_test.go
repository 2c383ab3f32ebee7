package szerror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestKindForCode(t *testing.T) {
	tests := []struct {
		code int
		want Kind
	}{
		{2, KindBadInput},
		{33, KindNotFound},
		{30110, KindNotFound},
		{2207, KindUnknownDataSource},
		{7245, KindReplaceConflict},
		{10, KindRetryTimeoutExceeded},
		{1007, KindDatabaseConnectionLost},
		{1008, KindDatabaseTransient},
		{1001, KindDatabase},
		{999, KindLicense},
		{48, KindNotInitialized},
		{51, KindUnhandled},
		{63, KindUnrecoverable},
		{47, KindGeneral},
		{7220, KindConfiguration},
		{123456, KindSz},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, KindForCode(tt.code))
		})
	}
}

func TestErrorIsWalksHierarchy(t *testing.T) {
	notFound := New(33, "Unknown record")
	assert.ErrorIs(t, notFound, ErrSzNotFound)
	assert.ErrorIs(t, notFound, ErrSzBadInput)
	assert.ErrorIs(t, notFound, ErrSz)
	assert.NotErrorIs(t, notFound, ErrSzUnknownDataSource)
	assert.NotErrorIs(t, notFound, ErrSzRetryable)

	lost := New(1007, "connection lost")
	assert.ErrorIs(t, lost, ErrSzDatabaseConnectionLost)
	assert.ErrorIs(t, lost, ErrSzRetryable)
	assert.NotErrorIs(t, lost, ErrSzUnrecoverable)
	assert.True(t, IsRetryable(lost))

	license := New(9000, "license expired")
	assert.ErrorIs(t, license, ErrSzUnrecoverable)
	assert.False(t, IsRetryable(license))

	wrapped := fmt.Errorf("loading record: %w", notFound)
	assert.ErrorIs(t, wrapped, ErrSzBadInput)
	assert.Equal(t, 33, Code(wrapped))
}

func TestEveryKindReachesRoot(t *testing.T) {
	for k := KindSz; k <= KindSdk; k++ {
		err := &Error{Kind: k}
		assert.ErrorIs(t, err, ErrSz, k.String())
		assert.ErrorIs(t, err, k.Sentinel(), k.String())
	}
}

func TestKindStringAndParent(t *testing.T) {
	assert.Equal(t, "SzNotFoundError", KindNotFound.String())
	assert.Equal(t, KindBadInput, KindNotFound.Parent())
	assert.Equal(t, KindSz, KindSz.Parent())
	assert.Equal(t, "Kind(99)", Kind(99).String())
	assert.Equal(t, ErrSz, Kind(-1).Sentinel())
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "SzNotFoundError: SENZ0033|Unknown record", New(33, "Unknown record").Error())
	assert.Equal(t, "SzSdkError: bad handle", Newf(KindSdk, "bad %s", "handle").Error())
}

func TestFromGRPC(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		kind     Kind
		code     int
		message  string
		grpcCode codes.Code
	}{
		{
			name:     "plain engine text",
			err:      status.Error(codes.Unknown, "SENZ0033|Unknown record: dsrc[CUSTOMERS], record[1001]"),
			kind:     KindNotFound,
			code:     33,
			message:  "Unknown record: dsrc[CUSTOMERS], record[1001]",
			grpcCode: codes.Unknown,
		},
		{
			name:     "code inside text",
			err:      status.Error(codes.Internal, "engine failed: SENZ2207|Data source code [BOB] does not exist."),
			kind:     KindUnknownDataSource,
			code:     2207,
			message:  "Data source code [BOB] does not exist.",
			grpcCode: codes.Internal,
		},
		{
			name:     "first code wins",
			err:      status.Error(codes.Unknown, "SENZ7245|conflict; SENZ0033|Unknown record"),
			kind:     KindReplaceConflict,
			code:     7245,
			message:  "conflict; SENZ0033|Unknown record",
			grpcCode: codes.Unknown,
		},
		{
			name:     "json envelope reason",
			err:      status.Error(codes.Unknown, `{"id":"senzing-60044001","reason":"SENZ1007|Database connection lost"}`),
			kind:     KindDatabaseConnectionLost,
			code:     1007,
			message:  "Database connection lost",
			grpcCode: codes.Unknown,
		},
		{
			name:     "json envelope text",
			err:      status.Error(codes.Unknown, `{"text":"SENZ0048|Not initialized"}`),
			kind:     KindNotInitialized,
			code:     48,
			message:  "Not initialized",
			grpcCode: codes.Unknown,
		},
		{
			name:     "json without known member",
			err:      status.Error(codes.Unknown, `{"detail":"SENZ0002|Invalid"}`),
			kind:     KindBadInput,
			code:     2,
			message:  `{"detail":"SENZ0002|Invalid"}`,
			grpcCode: codes.Unknown,
		},
		{
			name:     "unknown code",
			err:      status.Error(codes.Unknown, "SENZ4242|something new"),
			kind:     KindSz,
			code:     4242,
			message:  "something new",
			grpcCode: codes.Unknown,
		},
		{
			name:     "no code, unavailable",
			err:      status.Error(codes.Unavailable, "connection refused"),
			kind:     KindRetryable,
			message:  "connection refused",
			grpcCode: codes.Unavailable,
		},
		{
			name:     "no code, deadline",
			err:      status.Error(codes.DeadlineExceeded, "context deadline exceeded"),
			kind:     KindRetryTimeoutExceeded,
			message:  "context deadline exceeded",
			grpcCode: codes.DeadlineExceeded,
		},
		{
			name:     "no code, unimplemented",
			err:      status.Error(codes.Unimplemented, "method not implemented"),
			kind:     KindSdk,
			message:  "method not implemented",
			grpcCode: codes.Unimplemented,
		},
		{
			name:     "no code, invalid argument",
			err:      status.Error(codes.InvalidArgument, "bad json"),
			kind:     KindBadInput,
			message:  "bad json",
			grpcCode: codes.InvalidArgument,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromGRPC(tt.err)
			require.Error(t, err)

			var szErr *Error
			require.ErrorAs(t, err, &szErr)
			assert.Equal(t, tt.kind, szErr.Kind)
			assert.Equal(t, tt.code, szErr.Code)
			assert.Equal(t, tt.message, szErr.Message)
			assert.Equal(t, tt.grpcCode, szErr.GRPCCode)
			assert.Equal(t, tt.err, errors.Unwrap(err))
		})
	}
}

func TestFromGRPCPassThrough(t *testing.T) {
	assert.NoError(t, FromGRPC(nil))

	original := New(33, "Unknown record")
	assert.Same(t, original, FromGRPC(original))

	plain := errors.New("dial tcp: refused")
	err := FromGRPC(plain)
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindSdk, kind)
	assert.ErrorIs(t, err, plain)
}

func TestKindOfNonSzError(t *testing.T) {
	kind, ok := KindOf(errors.New("x"))
	assert.False(t, ok)
	assert.Equal(t, KindSz, kind)
	assert.Equal(t, 0, Code(errors.New("x")))
	assert.False(t, IsRetryable(nil))
}
