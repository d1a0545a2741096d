// FILE: krail-config/service.go
package config

import (
	"sync"
	"weak"

	"go.uber.org/zap"
)

// State is the lifecycle state of a Service
type State int

const (
	StateInitial State = iota
	StateStarted
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateInitial:
		return "initial"
	case StateStarted:
		return "started"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Service owns the source registry and materializes views on demand.
// Stopping the service invalidates every configuration that uses it.
// Configurations are held weakly: a Config or clone that is no longer
// referenced elsewhere is collected and dropped from the service.
type Service struct {
	registry *Registry
	loader   *Loader
	logger   *zap.Logger
	targets  []weak.Pointer[Config]
	state    State
	mutex    sync.Mutex
}

// NewService creates a service over registry and loader.
func NewService(registry *Registry, loader *Loader, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		registry: registry,
		loader:   loader,
		logger:   logger,
		state:    StateInitial,
	}
}

// Start marks the service started and seals the registry.
// Calling Start on a started service is a no-op.
func (s *Service) Start() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.state == StateStarted {
		return
	}
	s.registry.Seal()
	s.state = StateStarted
	s.logger.Debug("Configuration service started", zap.Int("sources", s.registry.Len()))
}

// Stop marks the service stopped and clears the attached configurations.
func (s *Service) Stop() {
	s.mutex.Lock()
	s.pruneLocked()
	targets := make([]*Config, 0, len(s.targets))
	for _, ref := range s.targets {
		if c := ref.Value(); c != nil {
			targets = append(targets, c)
		}
	}
	s.state = StateStopped
	s.mutex.Unlock()

	for _, target := range targets {
		target.Clear()
	}
	s.logger.Debug("Configuration service stopped")
}

// State returns the current lifecycle state.
func (s *Service) State() State {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.state
}

// Load starts the service if needed and loads every registered source into a
// new View, least authoritative first.
func (s *Service) Load() (*View, error) {
	s.Start()
	return s.loader.LoadAll(s.registry.Descriptors())
}

func (s *Service) attach(c *Config) {
	s.mutex.Lock()
	s.pruneLocked()
	s.targets = append(s.targets, weak.Make(c))
	s.mutex.Unlock()
}

// pruneLocked drops references to collected configurations.
func (s *Service) pruneLocked() {
	live := s.targets[:0]
	for _, ref := range s.targets {
		if ref.Value() != nil {
			live = append(live, ref)
		}
	}
	clear(s.targets[len(live):])
	s.targets = live
}
