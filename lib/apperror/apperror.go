package apperror

import (
	stderrors "errors"
	"fmt"
	"strings"

	"hiring-platform-backend/models"
)

type Code string

const (
	CodeAuthRequired         Code = "AUTH_REQUIRED"
	CodeForbidden            Code = "FORBIDDEN"
	CodeUnauthorized         Code = "UNAUTHORIZED"
	CodeNotFound             Code = "NOT_FOUND"
	CodeInvalidStatus        Code = "INVALID_STATUS"
	CodeValidation           Code = "VALIDATION_ERROR"
	CodeDuplicateApplication Code = "DUPLICATE_APPLICATION"
	CodeUnavailable          Code = "UNAVAILABLE"
	CodeInternal             Code = "INTERNAL_ERROR"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Error struct {
	Code    Code         `json:"code"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Newf(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

func Forbidden(message string) *Error {
	return New(CodeForbidden, message)
}

func Unauthorized(message string) *Error {
	return New(CodeUnauthorized, message)
}

// InvalidStatus names the status(es) the transition requires.
func InvalidStatus(operation string, required ...models.JobStatus) *Error {
	names := make([]string, 0, len(required))
	for _, s := range required {
		names = append(names, string(s))
	}
	return Newf(CodeInvalidStatus, "%s requires job status %s", operation, strings.Join(names, " or "))
}

func Validation(details []FieldError) *Error {
	return &Error{
		Code:    CodeValidation,
		Message: "validation failed",
		Details: details,
	}
}

func DuplicateApplication() *Error {
	return New(CodeDuplicateApplication, "candidate already applied to this job")
}

func Unavailable(message string) *Error {
	return New(CodeUnavailable, message)
}

// As unwraps err (including pkg/errors wrapping) down to an *Error.
func As(err error) (*Error, bool) {
	var appErr *Error
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func IsCode(err error, code Code) bool {
	if appErr, ok := As(err); ok {
		return appErr.Code == code
	}
	return false
}
