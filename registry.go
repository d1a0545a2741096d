// FILE: krail-config/registry.go
package config

import (
	"fmt"
	"sort"
	"sync"
)

// Descriptor declares one configuration file and its place in the override order.
// A lower Index overrides a higher one.
type Descriptor struct {
	Index    int
	Filename string
	FileType FileType
	Optional bool
}

func (d Descriptor) String() string {
	kind := "required"
	if d.Optional {
		kind = "optional"
	}
	return fmt.Sprintf("%d:%s (%s, %s)", d.Index, d.Filename, d.FileType, kind)
}

// Registry holds the declared sources keyed by priority index.
// It is sealed when the owning service starts.
type Registry struct {
	sources map[int]Descriptor
	sealed  bool
	mutex   sync.RWMutex
}

// NewRegistry creates an empty source registry.
func NewRegistry() *Registry {
	return &Registry{
		sources: make(map[int]Descriptor),
	}
}

// Register adds a source descriptor.
// The index must not already be in use and the registry must not be sealed.
func (r *Registry) Register(d Descriptor) error {
	if d.Filename == "" {
		return fmt.Errorf("source filename cannot be empty (index %d)", d.Index)
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.sealed {
		return fmt.Errorf("%w: cannot register %s", ErrRegistrySealed, d)
	}
	if existing, exists := r.sources[d.Index]; exists {
		return fmt.Errorf("%w: index %d already holds %s", ErrDuplicateIndex, d.Index, existing.Filename)
	}

	r.sources[d.Index] = d
	return nil
}

// MustRegister is like Register but panics on error
func (r *Registry) MustRegister(d Descriptor) {
	if err := r.Register(d); err != nil {
		panic(fmt.Sprintf("config source registration failed: %v", err))
	}
}

// Descriptors returns the registered sources sorted by descending index,
// i.e. from least to most authoritative.
func (r *Registry) Descriptors() []Descriptor {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := make([]Descriptor, 0, len(r.sources))
	for _, d := range r.sources {
		result = append(result, d)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Index > result[j].Index
	})
	return result
}

// Len returns the number of registered sources.
func (r *Registry) Len() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.sources)
}

// Seal prevents further registration.
func (r *Registry) Seal() {
	r.mutex.Lock()
	r.sealed = true
	r.mutex.Unlock()
}

// Sealed reports whether the registry accepts new sources.
func (r *Registry) Sealed() bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.sealed
}
