// FILE: krail-config/config.go
package config

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Config is the layered configuration. The merged view is materialized on
// first access and after every Clear.
type Config struct {
	service *Service
	logger  *zap.Logger
	view    atomic.Pointer[View] // nil until materialized
	mutex   sync.Mutex           // Guards check-load-commit and clear
}

// New creates a Config over registry, resolving files against locator.
func New(registry *Registry, locator PathLocator) *Config {
	return NewWithService(NewService(registry, NewLoader(locator, nil), nil), nil)
}

// NewWithService creates a Config that materializes through svc.
// Stopping svc clears the returned Config.
func NewWithService(svc *Service, logger *zap.Logger) *Config {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Config{
		service: svc,
		logger:  logger,
	}
	svc.attach(c)
	return c
}

// Service returns the service that loads this configuration.
func (c *Config) Service() *Service {
	return c.service
}

// Load materializes the merged view if it is not already loaded.
// A failed load leaves the configuration unloaded so the next access retries.
func (c *Config) Load() error {
	_, err := c.snapshot()
	return err
}

// snapshot returns the committed view, materializing it first if needed.
// The returned view is immutable and safe to read without the lock.
func (c *Config) snapshot() (*View, error) {
	if view := c.view.Load(); view != nil {
		return view, nil
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if view := c.view.Load(); view != nil {
		return view, nil
	}

	view, err := c.service.Load()
	if err != nil {
		c.logger.Warn("Failed to materialize configuration", zap.Error(err))
		return nil, err
	}

	c.view.Store(view)
	c.logger.Info("Configuration materialized", zap.Int("layers", view.Len()))
	return view, nil
}

// Clear discards the merged view. The next access reloads every source.
func (c *Config) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.view.Store(nil)
	c.logger.Debug("Configuration cleared")
}

// Loaded reports whether the merged view is currently materialized.
func (c *Config) Loaded() bool {
	return c.view.Load() != nil
}

// Clone returns a Config sharing this one's service but with no materialized
// view, so it reads the source files again on first access.
// Stopping the service clears both. The service does not keep the clone
// alive; it is collected once the caller drops it.
func (c *Config) Clone() *Config {
	return NewWithService(c.service, c.logger)
}
