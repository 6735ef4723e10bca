package middleware

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"lambda-handler-factory/pkg/factory"
)

var validate = validator.New()

// RateLimiter returns a before hook shared by every handler it is attached to
func RateLimiter(requestsPerSecond float64, burstSize int, logger logrus.FieldLogger) factory.Func {
	limiter := rate.NewLimiter(rate.Limit(requestsPerSecond), burstSize)

	return func(ctx context.Context, event factory.Event, previous any) (any, error) {
		if !limiter.Allow() {
			logger.WithField("request_id", factory.RequestID(ctx)).Warn("Rate limit exceeded")
			return nil, &HookError{
				Status:  http.StatusTooManyRequests,
				Code:    "rate_limited",
				Message: fmt.Sprintf("Too many requests. Limit: %.1f requests per second", requestsPerSecond),
			}
		}
		return previous, nil
	}
}

// eventPayload returns the request body of an HTTP event, base64-decoded when
// the gateway flags it, or the whole event otherwise
func eventPayload(event factory.Event) ([]byte, error) {
	body := gjson.GetBytes(event, "body")
	if !body.Exists() || !gjson.GetBytes(event, "httpMethod").Exists() {
		return []byte(event), nil
	}
	if gjson.GetBytes(event, "isBase64Encoded").Bool() {
		return base64.StdEncoding.DecodeString(body.String())
	}
	return []byte(body.String()), nil
}

// ValidatePayload returns a before hook that decodes the payload into a new T
// and checks its validate tags. For HTTP events the body is decoded, otherwise
// the whole event. The decoded *T becomes the step result.
func ValidatePayload[T any]() factory.Func {
	return func(ctx context.Context, event factory.Event, previous any) (any, error) {
		payload, err := eventPayload(event)
		if err != nil {
			return nil, &HookError{Status: http.StatusBadRequest, Code: "invalid_payload", Message: "Invalid request encoding", Err: err}
		}

		v := new(T)
		if err := json.Unmarshal(payload, v); err != nil {
			return nil, &HookError{Status: http.StatusBadRequest, Code: "invalid_payload", Message: "Invalid request format", Err: err}
		}

		if err := validate.Struct(v); err != nil {
			return nil, &HookError{Status: http.StatusBadRequest, Code: "validation_failed", Message: "Validation failed", Err: err}
		}

		return v, nil
	}
}
