package factory

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Callback receives the outcome of one invocation, err first
type Callback func(err error, result any)

// Dispatcher is an exported, invocation-ready entry point
type Dispatcher func(ctx context.Context, event Event, cb Callback)

// Invocation describes one finished dispatch
type Invocation struct {
	Handler   string
	RequestID string
	Steps     int
	Duration  time.Duration
	Err       error
}

// Observer is notified after every dispatch
type Observer interface {
	Observe(inv Invocation)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(inv Invocation)

func (fn ObserverFunc) Observe(inv Invocation) { fn(inv) }

// Wrap returns the dispatcher for name. The chain is resolved on every call,
// so hooks added after Wrap still apply.
func (f *Factory) Wrap(name string) Dispatcher {
	return func(ctx context.Context, event Event, cb Callback) {
		if ctx == nil {
			ctx = context.Background()
		}
		start := time.Now()

		requestID := RequestID(ctx)
		if requestID == "" {
			requestID = uuid.New().String()
			ctx = WithRequestID(ctx, requestID)
		}

		chain := f.Resolve(name)
		out := f.Execute(ctx, chain, event)

		inv := Invocation{
			Handler:   name,
			RequestID: requestID,
			Steps:     chain.Len(),
			Duration:  time.Since(start),
			Err:       out.Err,
		}
		f.report(inv)

		if cb == nil {
			return
		}
		if out.Err != nil {
			cb(out.Err, nil)
			return
		}
		cb(nil, out.Value)
	}
}

// Exports returns one dispatcher per currently registered handler name
func (f *Factory) Exports() map[string]Dispatcher {
	names := f.Names()

	exports := make(map[string]Dispatcher, len(names))
	for _, name := range names {
		exports[name] = f.Wrap(name)
	}
	return exports
}

func (f *Factory) report(inv Invocation) {
	fields := logrus.Fields{
		"handler":     inv.Handler,
		"request_id":  inv.RequestID,
		"steps":       inv.Steps,
		"duration_ms": float64(inv.Duration.Nanoseconds()) / 1000000,
	}

	if inv.Err != nil {
		f.logger.WithFields(fields).WithError(inv.Err).Error("Handler failed")
	} else {
		f.logger.WithFields(fields).Info("Handler completed")
	}

	for _, o := range f.observers {
		f.notify(o, inv)
	}
}

// notify runs one observer; a panicking observer is logged and skipped
func (f *Factory) notify(o Observer, inv Invocation) {
	defer func() {
		if r := recover(); r != nil {
			f.logger.WithFields(logrus.Fields{
				"observer": fmt.Sprintf("%T", o),
				"handler":  inv.Handler,
			}).Errorf("Observer panicked: %v", r)
		}
	}()
	o.Observe(inv)
}

type requestIDKey struct{}

// WithRequestID stores a request id on ctx
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the AWS request id or an id stored with WithRequestID.
// Dispatchers store a generated UUID when the runtime provides none.
func RequestID(ctx context.Context) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return id
	}
	return ""
}
