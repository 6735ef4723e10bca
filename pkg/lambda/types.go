package lambda

import (
	"context"
	"encoding/json"

	"lambda-handler-factory/pkg/factory"
)

// HandlerFunc is the signature handed to the aws-lambda-go runtime
type HandlerFunc func(ctx context.Context, event json.RawMessage) (any, error)

// Invoke adapts a callback-style dispatcher to a return-style Lambda handler
func Invoke(d factory.Dispatcher) HandlerFunc {
	return func(ctx context.Context, event json.RawMessage) (any, error) {
		type outcome struct {
			result any
			err    error
		}

		done := make(chan outcome, 1)
		d(ctx, event, func(err error, result any) {
			select {
			case done <- outcome{result: result, err: err}:
			default:
			}
		})

		select {
		case out := <-done:
			return out.result, out.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
