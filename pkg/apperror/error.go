package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an AppError independently of its HTTP status.
type Kind string

const (
	KindValidation           Kind = "validation"
	KindNotApplicable        Kind = "not_applicable"
	KindDuplicateApplication Kind = "duplicate_application"
	KindConflict             Kind = "conflict"
	KindNotFound             Kind = "not_found"
	KindUnauthorized         Kind = "unauthorized"
	KindForbidden            Kind = "forbidden"
	KindStorage              Kind = "storage"
)

type AppError struct {
	Code    int    `json:"code"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, kind Kind, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, KindValidation, message, nil)
}

// Validation wraps a validator failure; the original error stays available for logging.
func Validation(message string, err error) *AppError {
	return New(http.StatusBadRequest, KindValidation, message, err)
}

func NotApplicable(message string) *AppError {
	return New(http.StatusUnprocessableEntity, KindNotApplicable, message, nil)
}

func DuplicateApplication(message string) *AppError {
	return New(http.StatusConflict, KindDuplicateApplication, message, nil)
}

func Conflict(message string) *AppError {
	return New(http.StatusConflict, KindConflict, message, nil)
}

func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, KindUnauthorized, message, nil)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, KindForbidden, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, KindNotFound, message, nil)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, KindStorage, "Internal Server Error", err)
}

// KindOf reports the kind of the first AppError in err's chain.
// Errors that are not AppErrors are treated as storage failures.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStorage
}

// Cause returns the error an AppError wraps, for logs and operator output.
// Anything else is returned unchanged.
func Cause(err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Err != nil {
		return appErr.Err
	}
	return err
}
