package errors

const (
	UnknownErrorCode    = 100_001
	ValidationErrorCode = 100_002
)

var UnknownError = new(UnknownErrorCode, "UnknownError", "unexpected error: %v")

// ValidationError indicates the request body, query or path could not be bound to the expected schema
var ValidationError = new(ValidationErrorCode, "ValidationError", "Request validation failed: %v")
