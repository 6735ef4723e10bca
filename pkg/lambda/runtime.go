package lambda

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"

	"lambda-handler-factory/pkg/factory"
)

// SetupFunc registers handlers and hooks on a fresh factory
type SetupFunc func(f *factory.Factory) error

// Runtime performs registration once per cold start and serves the exports
type Runtime struct {
	factory     *factory.Factory
	setup       SetupFunc
	logger      logrus.FieldLogger
	exports     map[string]factory.Dispatcher
	lastUsed    time.Time
	mu          sync.RWMutex
	initialized bool
	initErr     error
}

// NewRuntime creates a Runtime around f; setup runs on first use
func NewRuntime(f *factory.Factory, setup SetupFunc, logger logrus.FieldLogger) *Runtime {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Runtime{factory: f, setup: setup, logger: logger}
}

// Initialize runs setup once per cold start and snapshots the exports.
// A failed setup is reported on every call until Cleanup.
func (r *Runtime) Initialize() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.initialized || r.initErr != nil {
		return r.initErr
	}

	start := time.Now()
	if r.setup != nil {
		if err := r.setup(r.factory); err != nil {
			r.initErr = fmt.Errorf("failed to register handlers: %w", err)
			return r.initErr
		}
	}

	r.exports = r.factory.Exports()
	r.lastUsed = time.Now()
	r.initialized = true

	r.logger.WithFields(logrus.Fields{
		"handlers":    len(r.exports),
		"duration_ms": float64(time.Since(start).Nanoseconds()) / 1000000,
	}).Info("Handlers initialized")

	return nil
}

// Dispatcher returns the exported dispatcher for name
func (r *Runtime) Dispatcher(name string) (factory.Dispatcher, error) {
	if err := r.Initialize(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.exports[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", factory.ErrUnknownHandler, name)
	}
	r.lastUsed = time.Now()
	return d, nil
}

// Handler returns the Lambda handler for name
func (r *Runtime) Handler(name string) (HandlerFunc, error) {
	d, err := r.Dispatcher(name)
	if err != nil {
		return nil, err
	}
	return Invoke(d), nil
}

// Names lists the exported handler names
func (r *Runtime) Names() []string {
	if err := r.Initialize(); err != nil {
		return nil
	}
	return r.factory.Names()
}

// Start hands the named handler to the Lambda runtime. It does not return.
func (r *Runtime) Start(name string) error {
	h, err := r.Handler(name)
	if err != nil {
		return err
	}

	r.logger.WithField("handler", name).Info("Starting Lambda handler")
	awslambda.Start(func(ctx context.Context, event json.RawMessage) (any, error) {
		return h(ctx, event)
	})
	return nil
}

// IsHealthy reports whether setup succeeded and the runtime was used recently
func (r *Runtime) IsHealthy() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.initialized {
		return false
	}
	return time.Since(r.lastUsed) < 5*time.Minute
}

// Cleanup clears every registration held by the factory. The next use
// runs setup again on the emptied factory.
func (r *Runtime) Cleanup() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.factory.Reset()
	r.exports = nil
	r.initialized = false
	r.initErr = nil
}
