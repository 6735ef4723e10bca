package handler

import (
	"context"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/tidwall/gjson"
)

// MethodFunc serves one HTTP method of an HTTPEventHandler
type MethodFunc func(h *HTTPEventHandler, previous any) (any, error)

// HTTPEventHandler routes API Gateway events by their HTTP method.
// Methods is keyed by lower-case method name ("get", "post", ...).
type HTTPEventHandler struct {
	Base
	Methods    map[string]MethodFunc
	HTTPMethod string

	request *events.APIGatewayProxyRequest
}

// NewHTTPEventHandler creates an HTTPEventHandler for one invocation
func NewHTTPEventHandler(ctx context.Context, event Event, methods map[string]MethodFunc) *HTTPEventHandler {
	h := &HTTPEventHandler{
		Base:    NewBase(ctx, event),
		Methods: make(map[string]MethodFunc, len(methods)),
	}
	h.Name = "HTTPEventHandler"
	for method, fn := range methods {
		h.Methods[strings.ToLower(method)] = fn
	}
	return h
}

// HTTPMethods returns a constructor building an HTTPEventHandler per invocation
func HTTPMethods(methods map[string]MethodFunc) func(ctx context.Context, event Event) Handler {
	return func(ctx context.Context, event Event) Handler {
		return NewHTTPEventHandler(ctx, event, methods)
	}
}

// Handle dispatches to the method table entry matching the event's HTTP method
func (h *HTTPEventHandler) Handle(previous any) (any, error) {
	h.HTTPMethod = strings.ToLower(eventMethod(h.Event))

	fn, ok := h.Methods[h.HTTPMethod]
	if !ok || fn == nil {
		return nil, h.Unimplemented(h.HTTPMethod)
	}

	return fn(h, previous)
}

// Request decodes the event as an API Gateway proxy request. The result is cached.
func (h *HTTPEventHandler) Request() (*events.APIGatewayProxyRequest, error) {
	if h.request != nil {
		return h.request, nil
	}

	var req events.APIGatewayProxyRequest
	if err := h.Decode(&req); err != nil {
		return nil, err
	}

	h.request = &req
	return h.request, nil
}

// Header looks up a request header, ignoring case
func (h *HTTPEventHandler) Header(name string) string {
	return EventHeader(h.Event, name)
}

// EventHeader looks up a header of a raw HTTP event, ignoring case
func EventHeader(event Event, name string) string {
	var value string
	gjson.GetBytes(event, "headers").ForEach(func(key, v gjson.Result) bool {
		if strings.EqualFold(key.String(), name) {
			value = v.String()
			return false
		}
		return true
	})
	return value
}

// eventMethod reads the method of a REST (v1) or HTTP API (v2) payload
func eventMethod(event Event) string {
	if method := gjson.GetBytes(event, "httpMethod"); method.Exists() {
		return method.String()
	}
	return gjson.GetBytes(event, "requestContext.http.method").String()
}
