package provision

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
)

var (
	ErrStackNotFound       = errors.New("stack not found")
	ErrTableNotFound       = errors.New("table not found")
	ErrZoneNotFound        = errors.New("hosted zone not found")
	ErrInvalidTTL          = errors.New("invalid TTL")
	ErrStoreUnavailable    = errors.New("record store unavailable")
	ErrVerificationTimeout = errors.New("timed out verifying record")

	ErrEmptySecret    = errors.New("shared secret must not be empty")
	ErrInvalidInput   = errors.New("invalid input")
	ErrRecordNotFound = errors.New("record not found")
	ErrCorruptRecord  = errors.New("stored record data is not valid")
)

// StepError reports which workflow stage failed and for which identifier
// (stack name, logical id, zone name or hostname).
type StepError struct {
	Stage      Stage
	Identifier string
	Err        error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s failed for %q: %v", e.Stage.Step(), e.Identifier, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// apiErrorCode returns the service error code carried by err, or "" when the
// failure did not come back from an AWS API.
func apiErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

// describeAPIError keeps the service code and message of an AWS failure
// without the request metadata the SDK wraps around it.
func describeAPIError(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if msg := apiErr.ErrorMessage(); msg != "" {
			return apiErr.ErrorCode() + ": " + msg
		}
		return apiErr.ErrorCode()
	}
	return err.Error()
}
