package handler

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testHandler struct {
	Base
}

func (h *testHandler) Handle(previous any) (any, error) {
	return "epic", nil
}

func TestBase(t *testing.T) {
	ctx := context.Background()
	event := json.RawMessage(`"event"`)

	t.Run("Constructor", func(t *testing.T) {
		b := NewBase(ctx, event)
		assert.Equal(t, event, b.Event)
		assert.Equal(t, ctx, b.Context)
	})

	t.Run("HandleIsUnimplemented", func(t *testing.T) {
		b := NewBase(ctx, event)
		_, err := b.Handle(nil)
		require.Error(t, err)
		assert.EqualError(t, err, "Handler does not implement handle")

		var unimplemented *UnimplementedOperationError
		require.True(t, errors.As(err, &unimplemented))
		assert.Equal(t, "handle", unimplemented.Operation)
	})

	t.Run("ImplementedHandle", func(t *testing.T) {
		var h Handler = &testHandler{Base: NewBase(ctx, event)}
		result, err := h.Handle(nil)
		require.NoError(t, err)
		assert.Equal(t, "epic", result)
	})

	t.Run("Decode", func(t *testing.T) {
		b := NewBase(ctx, json.RawMessage(`{"name":"bread"}`))
		var payload struct {
			Name string `json:"name"`
		}
		require.NoError(t, b.Decode(&payload))
		assert.Equal(t, "bread", payload.Name)

		empty := NewBase(ctx, nil)
		assert.Error(t, empty.Decode(&payload))
	})
}

func TestHTTPEventHandler(t *testing.T) {
	ctx := context.Background()
	methods := map[string]MethodFunc{
		"POST":  func(h *HTTPEventHandler, previous any) (any, error) { return "posted", nil },
		"get":   func(h *HTTPEventHandler, previous any) (any, error) { return "get got", nil },
		"Patch": func(h *HTTPEventHandler, previous any) (any, error) { return "patch town", nil },
	}

	t.Run("Constructor", func(t *testing.T) {
		event := json.RawMessage(`{"httpMethod":"POST"}`)
		h := NewHTTPEventHandler(ctx, event, nil)
		assert.Equal(t, event, h.Event)
		assert.Equal(t, ctx, h.Context)
	})

	t.Run("UnimplementedMethod", func(t *testing.T) {
		h := NewHTTPEventHandler(ctx, json.RawMessage(`{"httpMethod":"POST"}`), nil)
		_, err := h.Handle(nil)
		assert.EqualError(t, err, "HTTPEventHandler does not implement post")
	})

	t.Run("DispatchesByMethod", func(t *testing.T) {
		tests := []struct {
			event string
			want  string
		}{
			{`{"httpMethod":"POST"}`, "posted"},
			{`{"httpMethod":"GET"}`, "get got"},
			{`{"httpMethod":"PATCH"}`, "patch town"},
			{`{"requestContext":{"http":{"method":"GET"}}}`, "get got"},
		}

		for _, tt := range tests {
			h := HTTPMethods(methods)(ctx, json.RawMessage(tt.event))
			result, err := h.Handle(nil)
			require.NoError(t, err, tt.event)
			assert.Equal(t, tt.want, result)
		}
	})

	t.Run("MissingMethod", func(t *testing.T) {
		h := HTTPMethods(methods)(ctx, json.RawMessage(`{}`))
		_, err := h.Handle(nil)
		assert.EqualError(t, err, "HTTPEventHandler does not implement ")
	})

	t.Run("Request", func(t *testing.T) {
		event := json.RawMessage(`{"httpMethod":"GET","path":"/orders","headers":{"X-Request-Id":"abc"}}`)
		h := NewHTTPEventHandler(ctx, event, nil)

		req, err := h.Request()
		require.NoError(t, err)
		assert.Equal(t, "GET", req.HTTPMethod)
		assert.Equal(t, "/orders", req.Path)
		assert.Equal(t, "abc", h.Header("x-request-id"))
		assert.Empty(t, h.Header("authorization"))
	})
}
