package server

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"lambda-handler-factory/internal/config"
	"lambda-handler-factory/internal/metrics"
	"lambda-handler-factory/internal/middleware"
	"lambda-handler-factory/pkg/factory"
	"lambda-handler-factory/pkg/lambda"
)

// RegisterFunc registers the application's handlers on the container's factory
type RegisterFunc func(c *Container) error

// Container holds all application dependencies
type Container struct {
	Config   *config.Config
	Logger   *logrus.Logger
	Factory  *factory.Factory
	Runtime  *lambda.Runtime
	Registry *prometheus.Registry
	Metrics  *metrics.Collector

	// Auth is nil when no JWT secret is configured
	Auth *middleware.AuthService
}

// NewContainer creates a new dependency injection container. Registration
// is deferred to the first Runtime use so it happens once per cold start.
func NewContainer(cfg *config.Config, register RegisterFunc) (*Container, error) {
	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	registry := prometheus.NewRegistry()
	collector, err := metrics.NewCollector(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	container := &Container{
		Config:   cfg,
		Logger:   logger,
		Registry: registry,
		Metrics:  collector,
		Factory:  factory.New(factory.WithLogger(logger), factory.WithObserver(collector)),
	}

	if cfg.Auth.JWTSecret != "" {
		container.Auth = middleware.NewAuthService(&middleware.AuthConfig{
			JWTSecret:     cfg.Auth.JWTSecret,
			Issuer:        cfg.Auth.Issuer,
			TokenDuration: 24 * time.Hour,
		})
	}

	container.Runtime = lambda.NewRuntime(container.Factory, func(f *factory.Factory) error {
		if err := container.registerGlobalHooks(); err != nil {
			return err
		}
		if register == nil {
			return nil
		}
		return register(container)
	}, logger)

	return container, nil
}

// registerGlobalHooks attaches the hooks every handler runs with
func (c *Container) registerGlobalHooks() error {
	before := []factory.Func{middleware.RequestLogger(c.Logger)}
	if rl := c.Config.RateLimit; rl.RequestsPerSecond > 0 {
		burst := rl.Burst
		if burst == 0 {
			burst = 1
		}
		before = append(before, middleware.RateLimiter(rl.RequestsPerSecond, burst, c.Logger))
	}

	if err := c.Factory.Before(before); err != nil {
		return fmt.Errorf("failed to add global before hooks: %w", err)
	}
	if err := c.Factory.After(middleware.ResultLogger(c.Logger)); err != nil {
		return fmt.Errorf("failed to add global after hooks: %w", err)
	}
	return nil
}

// Close cleans up all resources
func (c *Container) Close() error {
	if c.Runtime != nil {
		c.Runtime.Cleanup()
	}
	return nil
}
