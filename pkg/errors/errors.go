package errors

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	CodeMissingField     = "MISSING_FIELD"
	CodeMissingParameter = "MISSING_PARAMETER"
	CodeInvalidRange     = "INVALID_RANGE"
	CodeTooShort         = "DURATION_TOO_SHORT"
	CodeTooLong          = "DURATION_TOO_LONG"
	CodeConflict         = "CONFLICT"
	CodeNotFound         = "NOT_FOUND"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeInternal         = "SERVER_ERROR"
)

type AppError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) StatusCode() int {
	return e.HTTPStatus
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

func Wrap(err error, code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

func (e *AppError) WithDetails(details map[string]any) *AppError {
	e.Details = details
	return e
}

// MissingFields reports required request body fields that were absent.
func MissingFields(fields ...string) *AppError {
	return &AppError{
		Code:       CodeMissingField,
		Message:    "All fields are required.",
		HTTPStatus: http.StatusBadRequest,
		Details: map[string]any{
			"missing": strings.Join(fields, ", "),
		},
	}
}

// MissingParameter reports required query parameters that were absent.
func MissingParameter(params ...string) *AppError {
	return &AppError{
		Code:       CodeMissingParameter,
		Message:    fmt.Sprintf("%s query parameters are required", strings.Join(params, " and ")),
		HTTPStatus: http.StatusBadRequest,
	}
}

func InvalidRange() *AppError {
	return &AppError{
		Code:       CodeInvalidRange,
		Message:    "Start time must be before end time",
		HTTPStatus: http.StatusBadRequest,
	}
}

func TooShort(minMinutes int) *AppError {
	return &AppError{
		Code:       CodeTooShort,
		Message:    fmt.Sprintf("Booking must be at least %d minutes long", minMinutes),
		HTTPStatus: http.StatusBadRequest,
	}
}

func TooLong(maxMinutes int) *AppError {
	return &AppError{
		Code:       CodeTooLong,
		Message:    fmt.Sprintf("Booking cannot exceed %d minutes", maxMinutes),
		HTTPStatus: http.StatusBadRequest,
	}
}

// Conflict reports an overlap with an existing booking, including its interval.
func Conflict(start, end time.Time) *AppError {
	return &AppError{
		Code: CodeConflict,
		Message: fmt.Sprintf("Booking conflict with an existing booking (%s - %s)",
			start.UTC().Format(time.RFC3339),
			end.UTC().Format(time.RFC3339),
		),
		HTTPStatus: http.StatusBadRequest,
	}
}

// ConflictMessage is for conflicts that are not tied to a stored interval,
// such as a concurrent create racing on the same resource lock.
func ConflictMessage(message string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

func NotFoundWithID(resource, id string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusBadRequest,
		Details: map[string]any{
			"resource": resource,
			"id":       id,
		},
	}
}

func InvalidInput(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidInput,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

func AsAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return Internal("An unexpected error occurred", err)
}
