package errors

import (
	goerrors "errors"
	"fmt"
)

type Error interface {
	error
	New(args ...any) BaseError
}

type BaseError struct {
	Code    int    `json:"code"`
	Name    string `json:"name"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`

	messageFormat string
}

func (e BaseError) Error() string {
	return e.Message
}

// New returns a copy of the catalogue entry with its message formatted from args.
func (e BaseError) New(args ...any) BaseError {

	e.Message = fmt.Sprintf(e.messageFormat, args...)
	return e
}

func (e BaseError) WithDetails(details any) BaseError {

	e.Details = details
	return e
}

func TryAssertError(err error) (BaseError, bool) {

	var asserted BaseError
	ok := goerrors.As(err, &asserted)
	return asserted, ok
}

func IsError(err error, expectedError BaseError) bool {

	asserted, ok := TryAssertError(err)
	if !ok {
		return false
	}

	return asserted.Code == expectedError.Code && asserted.Message == expectedError.Message
}

// HasCode reports whether err is a BaseError carrying code, whatever its message.
func HasCode(err error, code int) bool {

	asserted, ok := TryAssertError(err)
	return ok && asserted.Code == code
}

func new(errorCode int, name string, messageFormat string) Error {

	return BaseError{Code: errorCode, Name: name, messageFormat: messageFormat}
}
