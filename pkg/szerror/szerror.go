// Package szerror translates Senzing engine error codes into a typed error
// hierarchy. Every error returned by the client packages is a *Error whose
// Kind places it in the tree below; errors.Is matches a kind and all of its
// ancestors, so a not-found error is also a bad-input error and an SzError.
//
//	SzError
//	├── SzBadInputError
//	│   ├── SzNotFoundError
//	│   └── SzUnknownDataSourceError
//	├── SzConfigurationError
//	├── SzGeneralError
//	├── SzReplaceConflictError
//	├── SzRetryableError
//	│   ├── SzDatabaseConnectionLostError
//	│   ├── SzDatabaseTransientError
//	│   └── SzRetryTimeoutExceededError
//	├── SzUnrecoverableError
//	│   ├── SzDatabaseError
//	│   ├── SzLicenseError
//	│   ├── SzNotInitializedError
//	│   └── SzUnhandledError
//	└── SzSdkError
package szerror

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Kind identifies a node of the error hierarchy.
type Kind int

const (
	KindSz Kind = iota
	KindBadInput
	KindNotFound
	KindUnknownDataSource
	KindConfiguration
	KindGeneral
	KindReplaceConflict
	KindRetryable
	KindDatabaseConnectionLost
	KindDatabaseTransient
	KindRetryTimeoutExceeded
	KindUnrecoverable
	KindDatabase
	KindLicense
	KindNotInitialized
	KindUnhandled
	KindSdk
)

// Sentinels for errors.Is. Each matches errors of its kind and of every
// descendant kind.
var (
	ErrSz                       = errors.New("SzError")
	ErrSzBadInput               = errors.New("SzBadInputError")
	ErrSzNotFound               = errors.New("SzNotFoundError")
	ErrSzUnknownDataSource      = errors.New("SzUnknownDataSourceError")
	ErrSzConfiguration          = errors.New("SzConfigurationError")
	ErrSzGeneral                = errors.New("SzGeneralError")
	ErrSzReplaceConflict        = errors.New("SzReplaceConflictError")
	ErrSzRetryable              = errors.New("SzRetryableError")
	ErrSzDatabaseConnectionLost = errors.New("SzDatabaseConnectionLostError")
	ErrSzDatabaseTransient      = errors.New("SzDatabaseTransientError")
	ErrSzRetryTimeoutExceeded   = errors.New("SzRetryTimeoutExceededError")
	ErrSzUnrecoverable          = errors.New("SzUnrecoverableError")
	ErrSzDatabase               = errors.New("SzDatabaseError")
	ErrSzLicense                = errors.New("SzLicenseError")
	ErrSzNotInitialized         = errors.New("SzNotInitializedError")
	ErrSzUnhandled              = errors.New("SzUnhandledError")
	ErrSzSdk                    = errors.New("SzSdkError")
)

var kinds = [...]struct {
	parent   Kind
	sentinel error
}{
	KindSz:                     {KindSz, ErrSz},
	KindBadInput:               {KindSz, ErrSzBadInput},
	KindNotFound:               {KindBadInput, ErrSzNotFound},
	KindUnknownDataSource:      {KindBadInput, ErrSzUnknownDataSource},
	KindConfiguration:          {KindSz, ErrSzConfiguration},
	KindGeneral:                {KindSz, ErrSzGeneral},
	KindReplaceConflict:        {KindSz, ErrSzReplaceConflict},
	KindRetryable:              {KindSz, ErrSzRetryable},
	KindDatabaseConnectionLost: {KindRetryable, ErrSzDatabaseConnectionLost},
	KindDatabaseTransient:      {KindRetryable, ErrSzDatabaseTransient},
	KindRetryTimeoutExceeded:   {KindRetryable, ErrSzRetryTimeoutExceeded},
	KindUnrecoverable:          {KindSz, ErrSzUnrecoverable},
	KindDatabase:               {KindUnrecoverable, ErrSzDatabase},
	KindLicense:                {KindUnrecoverable, ErrSzLicense},
	KindNotInitialized:         {KindUnrecoverable, ErrSzNotInitialized},
	KindUnhandled:              {KindUnrecoverable, ErrSzUnhandled},
	KindSdk:                    {KindSz, ErrSzSdk},
}

// String returns the class name of the kind, e.g. "SzNotFoundError".
func (k Kind) String() string {
	if !k.valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kinds[k].sentinel.Error()
}

// Parent returns the kind one level up; KindSz is its own parent.
func (k Kind) Parent() Kind {
	if !k.valid() {
		return KindSz
	}
	return kinds[k].parent
}

// Sentinel returns the errors.Is target for the kind.
func (k Kind) Sentinel() error {
	if !k.valid() {
		return ErrSz
	}
	return kinds[k].sentinel
}

func (k Kind) valid() bool {
	return k >= 0 && int(k) < len(kinds)
}

// Error is an engine or SDK failure classified by Kind.
type Error struct {
	Kind Kind
	// Code is the Senzing error code (the number in "SENZnnnn"), 0 when the
	// failure carried none.
	Code int
	// Message is the engine text without the "SENZnnnn|" prefix.
	Message string
	// GRPCCode is the status code of the RPC that failed, codes.OK for
	// errors raised on the client side.
	GRPCCode codes.Code
	// Err is the underlying cause, usually the gRPC status error.
	Err error
}

func (e *Error) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s: SENZ%04d|%s", e.Kind, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel of e's kind or of any ancestor.
func (e *Error) Is(target error) bool {
	for k := e.Kind; ; k = k.Parent() {
		if k.Sentinel() == target {
			return true
		}
		if k == KindSz {
			return false
		}
	}
}

// New classifies an engine code and message using the static table.
func New(code int, message string) *Error {
	return &Error{Kind: KindForCode(code), Code: code, Message: message}
}

// Newf builds a client-side error of the given kind.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindForCode looks a Senzing code up in the table; unknown codes are KindSz.
func KindForCode(code int) Kind {
	if k, ok := codeKinds[code]; ok {
		return k
	}
	return KindSz
}

// FromGRPC converts an RPC error into an *Error. The first "SENZnnnn" code in
// the status message decides the kind; without one, the gRPC status code is
// used. nil stays nil and an *Error is returned unchanged.
func FromGRPC(err error) error {
	if err == nil {
		return nil
	}
	var szErr *Error
	if errors.As(err, &szErr) {
		return err
	}

	st, ok := status.FromError(err)
	if !ok {
		return &Error{Kind: KindSdk, Message: err.Error(), Err: err}
	}

	code, message := parseMessage(st.Message())
	kind := KindForCode(code)
	if code == 0 {
		kind = kindForStatus(st.Code())
	}
	return &Error{
		Kind:     kind,
		Code:     code,
		Message:  message,
		GRPCCode: st.Code(),
		Err:      err,
	}
}

var senzCode = regexp.MustCompile(`SENZ(\d+)`)

// parseMessage extracts the first Senzing code and its text. Servers send
// either the bare engine text ("SENZ0033|Unknown record ...") or a JSON
// envelope whose "reason" or "text" member holds it.
func parseMessage(msg string) (int, string) {
	text, enveloped := msg, false
	if strings.HasPrefix(strings.TrimSpace(msg), "{") {
		var envelope struct {
			Reason string `json:"reason"`
			Text   string `json:"text"`
		}
		if json.Unmarshal([]byte(msg), &envelope) == nil {
			switch {
			case envelope.Reason != "":
				text, enveloped = envelope.Reason, true
			case envelope.Text != "":
				text, enveloped = envelope.Text, true
			}
		}
	}

	loc := senzCode.FindStringSubmatchIndex(text)
	if loc == nil {
		return 0, text
	}
	code, err := strconv.Atoi(text[loc[2]:loc[3]])
	if err != nil {
		return 0, text
	}
	if !enveloped && strings.HasPrefix(strings.TrimSpace(msg), "{") {
		// JSON without a reason or text member: keep the whole document.
		return code, msg
	}
	rest := strings.TrimSpace(strings.TrimPrefix(text[loc[1]:], "|"))
	if rest == "" {
		rest = text
	}
	return code, rest
}

func kindForStatus(c codes.Code) Kind {
	switch c {
	case codes.InvalidArgument, codes.OutOfRange, codes.AlreadyExists:
		return KindBadInput
	case codes.NotFound:
		return KindNotFound
	case codes.Unavailable, codes.Aborted, codes.ResourceExhausted:
		return KindRetryable
	case codes.DeadlineExceeded:
		return KindRetryTimeoutExceeded
	case codes.FailedPrecondition:
		return KindNotInitialized
	case codes.Unimplemented:
		return KindSdk
	default:
		return KindSz
	}
}

// Code returns the Senzing code carried by err, or 0.
func Code(err error) int {
	var szErr *Error
	if errors.As(err, &szErr) {
		return szErr.Code
	}
	return 0
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var szErr *Error
	if errors.As(err, &szErr) {
		return szErr.Kind, true
	}
	return KindSz, false
}

// IsRetryable reports whether err is an SzRetryableError or a descendant.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrSzRetryable)
}
