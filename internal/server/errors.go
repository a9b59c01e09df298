// Package server provides the HTTP API for resume matching.
package server

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrInvalidBody indicates a request body that is not a JSON object
type ErrInvalidBody struct {
	Cause error
}

func (e *ErrInvalidBody) Error() string {
	if e.Cause == nil {
		return "invalid request body"
	}
	return fmt.Sprintf("invalid request body: %v", e.Cause)
}

func (e *ErrInvalidBody) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr  *ErrValidation
		invalidBodyErr *ErrInvalidBody
		maxBytesErr    *http.MaxBytesError
	)
	switch {
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &validationErr), errors.As(err, &invalidBodyErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
