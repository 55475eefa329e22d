package instrumentation

import (
	"fmt"
	"slices"
	"sync"
)

// Registry maps libraries to their adapters.
type Registry struct {
	mu            sync.RWMutex
	instrumentors map[Library]Instrumentor
}

func NewRegistry() *Registry {
	return &Registry{instrumentors: make(map[Library]Instrumentor)}
}

// Register adds inst under inst.Library().
func (r *Registry) Register(inst Instrumentor) error {
	if inst == nil {
		return ErrNilInstrumentor
	}
	lib := inst.Library()

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.instrumentors[lib]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, lib)
	}
	r.instrumentors[lib] = inst
	return nil
}

// Lookup returns the adapter registered for lib.
func (r *Registry) Lookup(lib Library) (Instrumentor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	inst, ok := r.instrumentors[lib]
	return inst, ok
}

// Libraries returns the registered libraries in sorted order.
func (r *Registry) Libraries() []Library {
	r.mu.RLock()
	defer r.mu.RUnlock()
	libs := make([]Library, 0, len(r.instrumentors))
	for lib := range r.instrumentors {
		libs = append(libs, lib)
	}
	slices.Sort(libs)
	return libs
}

var defaultRegistry = NewRegistry()

// DefaultRegistry is populated by the adapter packages on import.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Register adds inst to the default registry. Adapter packages call it from init,
// so a nil or duplicate adapter is a programming error and panics.
func Register(inst Instrumentor) {
	if err := defaultRegistry.Register(inst); err != nil {
		panic(err)
	}
}
