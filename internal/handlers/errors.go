package handlers

import (
	"errors"
	"net/http"

	"lambda-handler-factory/internal/middleware"
	"lambda-handler-factory/pkg/factory"
	"lambda-handler-factory/pkg/handler"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// statusForError maps a chain failure to an HTTP status
func statusForError(err error) int {
	var unimplemented *handler.UnimplementedOperationError
	var hookErr *middleware.HookError

	switch {
	case errors.As(err, &hookErr):
		return middleware.StatusCode(err)
	case errors.Is(err, factory.ErrUnknownHandler):
		return http.StatusNotFound
	case errors.As(err, &unimplemented):
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

// errorCode returns a short reason for the error response
func errorCode(err error) string {
	var hookErr *middleware.HookError
	if errors.As(err, &hookErr) && hookErr.Code != "" {
		return hookErr.Code
	}

	switch statusForError(err) {
	case http.StatusNotFound:
		return "not_found"
	case http.StatusMethodNotAllowed:
		return "not_implemented"
	default:
		return "handler_failed"
	}
}
