// Package apperror holds the error taxonomy shared by every catalog domain.
// Services return *Error values; the HTTP layer maps them to status codes.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Kind classifies an error for the transport layer.
type Kind string

const (
	KindValidation Kind = "VALIDATION_ERROR"
	KindNotFound   Kind = "NOT_FOUND"
	KindForbidden  Kind = "FORBIDDEN"
	KindInternal   Kind = "INTERNAL_SERVER_ERROR"
)

// Error codes carried alongside the kind.
const (
	CodeInvalidInput     = "INVALID_INPUT"
	CodeInvalidReference = "INVALID_REFERENCE"
	CodeDuplicateTitle   = "DUPLICATE_TITLE"
	CodeFutureYear       = "FUTURE_PUBLICATION_YEAR"
	CodeEmptyTitle       = "EMPTY_TITLE"
	CodeNotFound         = "NOT_FOUND"
	CodeForbidden        = "FORBIDDEN"
	CodeInvalidLogin     = "INVALID_CREDENTIALS"
)

// Error is the application error returned across service boundaries.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Fields  map[string]string // field name -> message
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status returns the HTTP status for the error kind.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Validation builds a ValidationError with optional field details.
func Validation(code, message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: message, Fields: fields}
}

// Field builds a ValidationError about a single field.
func Field(field, code, message string) *Error {
	return Validation(code, message, map[string]string{field: message})
}

// Reference reports an unresolvable reference. It is a ValidationError subtype.
func Reference(field, value string) *Error {
	msg := fmt.Sprintf("Invalid pk %q - object does not exist.", value)
	return Field(field, CodeInvalidReference, msg)
}

// NotFound reports a missing resource.
func NotFound(resource, id string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s %s not found", resource, id),
	}
}

// Forbidden reports a write attempted without authentication.
func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Code: CodeForbidden, Message: message}
}

// Internal wraps an unexpected failure.
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Code: string(KindInternal), Message: message, Err: err}
}

// FromValidation converts ozzo-validation errors into a ValidationError.
// Any other error is returned unchanged.
func FromValidation(err error) error {
	if err == nil {
		return nil
	}
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	code := CodeInvalidInput
	for name, ferr := range verrs {
		fields[name] = ferr.Error()
		var coded validation.Error
		if errors.As(ferr, &coded) && len(verrs) == 1 && !strings.HasPrefix(coded.Code(), "validation_") {
			code = coded.Code()
		}
	}
	return Validation(code, "Invalid input", fields)
}

// As unwraps err into an *Error.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == kind
}
