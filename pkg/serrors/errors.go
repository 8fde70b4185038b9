package serrors

import "fmt"

// BaseError is a coded error: Code is a stable machine-readable identifier,
// Message is the default human-readable text.
type BaseError struct {
	Code    string
	Message string
}

func (e *BaseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewError(code, message string) *BaseError {
	return &BaseError{Code: code, Message: message}
}

// NewFieldRequiredError reports a missing required field on an inbound
// payload. The field name is carried in the message so API consumers can
// match it without parsing metadata.
func NewFieldRequiredError(field string) *BaseError {
	return &BaseError{
		Code:    "FIELD_REQUIRED",
		Message: fmt.Sprintf("field %q is required", field),
	}
}

func NewNotFoundError(resource string) *BaseError {
	return &BaseError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s not found", resource),
	}
}
