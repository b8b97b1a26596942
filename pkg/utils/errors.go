// Package utils provides shared helpers for the BragBoard API.
package utils

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Common error values covering the failure kinds the API surfaces.
var (
	ErrBadRequest          = NewError(fiber.StatusBadRequest, "Invalid request")
	ErrUnauthorized        = NewError(fiber.StatusUnauthorized, "Unauthorized")
	ErrForbidden           = NewError(fiber.StatusForbidden, "Forbidden")
	ErrNotFound            = NewError(fiber.StatusNotFound, "Resource not found")
	ErrConflict            = NewError(fiber.StatusConflict, "Conflict")
	ErrInternalServerError = NewError(fiber.StatusInternalServerError, "Internal server error")
)

// CustomError is a structured error carrying the HTTP status code it maps to.
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// NewError creates a CustomError with a status code, message, and optional details.
func NewError(code int, message string, details ...string) *CustomError {
	e := &CustomError{
		Code:    code,
		Message: message,
	}
	if len(details) > 0 {
		e.Details = details[0]
	}
	return e
}

// Error implements the error interface.
func (e *CustomError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Code, e.Message)
}

// WithCause returns a copy of the error carrying the underlying cause as
// details. The receiver is left untouched, so the shared sentinels stay clean.
func (e *CustomError) WithCause(err error) *CustomError {
	if err == nil {
		return e
	}
	return NewError(e.Code, e.Message, err.Error())
}

// WrapError wraps an existing error with a status code and message.
func WrapError(err error, code int, message string) *CustomError {
	return NewError(code, message, err.Error())
}

// As unwraps err into a *CustomError when possible.
func As(err error, target **CustomError) bool {
	if err == nil {
		return false
	}
	if e, ok := err.(*CustomError); ok {
		*target = e
		return true
	}
	return false
}

// IsStatus reports whether err is a CustomError carrying the given status code.
func IsStatus(err error, code int) bool {
	var appErr *CustomError
	return As(err, &appErr) && appErr.Code == code
}
