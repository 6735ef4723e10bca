// Package factory registers serverless handlers with before/after hooks and
// exports them as callback-style entry points. Every invocation resolves the
// chain [global before, named before, handler, named after, global after]
// and runs it step by step, feeding each result into the next step.
package factory

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Factory owns a handler registry and a hook store
type Factory struct {
	mu       sync.RWMutex
	handlers map[string]*step
	hooks    map[Order]map[string][]*step

	logger    logrus.FieldLogger
	observers []Observer
}

// Option configures a Factory
type Option func(*Factory)

// WithLogger sets the logger used for registration and invocation logs
func WithLogger(logger logrus.FieldLogger) Option {
	return func(f *Factory) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithObserver adds an observer notified after every invocation
func WithObserver(o Observer) Option {
	return func(f *Factory) {
		if o != nil {
			f.observers = append(f.observers, o)
		}
	}
}

// New creates an empty Factory
func New(opts ...Option) *Factory {
	f := &Factory{logger: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(f)
	}
	f.Reset()
	return f
}

// Reset clears all handlers and hooks
func (f *Factory) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.handlers = make(map[string]*step)
	f.hooks = map[Order]map[string][]*step{
		OrderBefore: {},
		OrderAfter:  {},
	}
}
