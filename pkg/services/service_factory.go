package services

import (
	"sync"

	"github.com/hfsreader/hfsreader/internal/interfaces"
)

// ServiceFactory lazily builds and caches the Orchestrator (C10) the CLI
// commands (cmd/) share for the lifetime of a process.
type ServiceFactory struct {
	mu           sync.RWMutex
	orchestrator interfaces.Orchestrator
	initialized  bool
}

// NewServiceFactory creates a new, uninitialized service factory.
func NewServiceFactory() *ServiceFactory {
	return &ServiceFactory{}
}

// Initialize builds the Orchestrator if it hasn't been already.
func (sf *ServiceFactory) Initialize() error {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	if sf.initialized {
		return nil
	}
	sf.orchestrator = NewOrchestrator()
	sf.initialized = true
	return nil
}

// Orchestrator returns the shared Orchestrator instance, initializing it on
// first use.
func (sf *ServiceFactory) Orchestrator() (interfaces.Orchestrator, error) {
	sf.mu.RLock()
	if sf.initialized {
		o := sf.orchestrator
		sf.mu.RUnlock()
		return o, nil
	}
	sf.mu.RUnlock()

	if err := sf.Initialize(); err != nil {
		return nil, err
	}
	sf.mu.RLock()
	defer sf.mu.RUnlock()
	return sf.orchestrator, nil
}

// IsInitialized returns whether the factory has built its Orchestrator.
func (sf *ServiceFactory) IsInitialized() bool {
	sf.mu.RLock()
	defer sf.mu.RUnlock()
	return sf.initialized
}

// DefaultServiceFactory is the process-wide factory instance cmd/ uses.
var DefaultServiceFactory = NewServiceFactory()

// GetOrchestrator returns the Orchestrator built by the default factory.
func GetOrchestrator() (interfaces.Orchestrator, error) {
	return DefaultServiceFactory.Orchestrator()
}
