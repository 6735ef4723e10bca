// Package middleware provides reusable hooks for factory chains: request
// logging, JWT authentication, rate limiting and payload validation.
package middleware

import (
	"errors"
	"fmt"
	"net/http"
)

// HookError is returned by hooks that reject an invocation
type HookError struct {
	Status  int    // HTTP status the rejection maps to
	Code    string // Short machine-readable reason
	Message string
	Err     error
}

func (e *HookError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *HookError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status for err, 500 unless a hook rejected it
func StatusCode(err error) int {
	var hookErr *HookError
	if errors.As(err, &hookErr) && hookErr.Status != 0 {
		return hookErr.Status
	}
	return http.StatusInternalServerError
}

func unauthorized(message string, err error) *HookError {
	return &HookError{Status: http.StatusUnauthorized, Code: "unauthorized", Message: message, Err: err}
}
