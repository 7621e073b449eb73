package errors

import (
	"errors"
	"fmt"

	"github.com/fiji-flo/basket/types"
)

const (
	STAGE_BEFORE_REQUEST = "before-request"
	STAGE_REQUEST        = "request"
	STAGE_AFTER_REQUEST  = "after-request"

	TYPE_UNKNOWN       = "unknown"
	TYPE_INVALID_TOKEN = "invalid-token"
	TYPE_JSON_PARSE    = "json"
	TYPE_REQUEST_PREP  = "request-prep"
	TYPE_IO            = "io"
	TYPE_STATUS_ERROR  = "status-error"
)

// Error codes basket puts in the "code" field of "error" envelopes.
const (
	BASKET_NETWORK_FAILURE             = 1
	BASKET_INVALID_EMAIL               = 2
	BASKET_UNKNOWN_EMAIL               = 3
	BASKET_UNKNOWN_TOKEN               = 4
	BASKET_USAGE_ERROR                 = 5
	BASKET_EMAIL_PROVIDER_AUTH_FAILURE = 6
	BASKET_AUTH_ERROR                  = 7
	BASKET_SSL_REQUIRED                = 8
	BASKET_INVALID_NEWSLETTER          = 9
	BASKET_INVALID_LANGUAGE            = 10
	BASKET_EMAIL_NOT_CHANGED           = 11
	BASKET_CHANGE_REQUEST_NOT_FOUND    = 12
	BASKET_MOCK_FAILURE                = 13
	BASKET_NOT_FOUND                   = 14
	BASKET_UNKNOWN_ERROR               = 99
)

// ApiError is the single failure type every basket operation returns.
// Type tells the kinds apart:
//   - TYPE_INVALID_TOKEN, TYPE_REQUEST_PREP: nothing was sent
//   - TYPE_IO: the transport failed or the body could not be read
//   - TYPE_JSON_PARSE: the body is not a valid {status, ...} envelope
//   - TYPE_STATUS_ERROR: basket answered with status "error"; see Envelope
type ApiError struct {
	Stage          string
	Type           string
	SourceErr      error
	Body           []byte
	HttpStatusCode int

	Envelope *types.Envelope
}

var _ error = &ApiError{}

func (e *ApiError) Error() string {
	if e.Type == TYPE_STATUS_ERROR && e.Envelope != nil {
		return e.Envelope.String()
	}

	var err string
	if e.SourceErr != nil {
		err = e.SourceErr.Error()
	} else {
		err = string(e.Body)
	}
	return fmt.Sprintf(
		"http request to basket failed during '%s' stage with error type '%s', httpStatus: '%d'; original err: %v",
		e.Stage, e.Type, e.HttpStatusCode, err,
	)
}

func (e *ApiError) Unwrap() error {
	return e.SourceErr
}

// Is method is required by errors.Is() to properly distinguish between
// different types -vs- same pointer to the same type.
// Without it, errors.Is(err, &ApiError{}) returns false:
// ok := errors.Is(errors.Join(&basket_errors.ApiError{}), &basket_errors.ApiError{})
// ^ would be false
func (e *ApiError) Is(other error) bool {
	var err *ApiError
	return errors.As(other, &err) && err != nil
}

// Code returns the basket error code of a TYPE_STATUS_ERROR failure,
// or 0 when the service did not send one.
func (e *ApiError) Code() int {
	return e.Envelope.Code()
}

// AsApiError returns the first ApiError in err's chain.
func AsApiError(err error) (*ApiError, bool) {
	var apiErr *ApiError
	if errors.As(err, &apiErr) && apiErr != nil {
		return apiErr, true
	}
	return nil, false
}

// TypeOf returns the ApiError type found in err's chain,
// or TYPE_UNKNOWN if err is not an ApiError.
func TypeOf(err error) string {
	if apiErr, ok := AsApiError(err); ok {
		return apiErr.Type
	}
	return TYPE_UNKNOWN
}
