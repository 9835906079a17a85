// Package optdep is the registration shim for optional dependencies.
//
// Code that wants a define enabled while some type is loaded registers the
// pair at init time, with no reference to ccu itself:
//
//	func init() {
//	    optdep.MustRegister("Vendor.Analytics.Client", "USE_ANALYTICS")
//	}
//
// Registered declarations are strongly typed, so they need none of the shape
// validation applied to attribute-based marker types. The package has no
// dependencies beyond the standard library.
package optdep

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrInvalidDeclaration is returned for declarations with an empty field.
var ErrInvalidDeclaration = errors.New("invalid optional dependency declaration")

// Declaration states that Define should be active while DependentClass resolves.
type Declaration struct {
	DependentClass string
	Define         string
}

// Registry collects declarations in registration order. The first
// declaration for a dependent class wins; later ones are ignored.
type Registry struct {
	mu      sync.RWMutex
	entries []Declaration
	index   map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Register records a declaration. It reports ErrInvalidDeclaration when
// either value is blank. A duplicate dependent class is not an error.
func (r *Registry) Register(dependentClass, define string) error {
	dependentClass = strings.TrimSpace(dependentClass)
	define = strings.TrimSpace(define)
	if dependentClass == "" || define == "" {
		return fmt.Errorf("%w: dependentClass=%q define=%q", ErrInvalidDeclaration, dependentClass, define)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.index == nil {
		r.index = make(map[string]int)
	}
	if _, exists := r.index[dependentClass]; exists {
		return nil
	}
	r.index[dependentClass] = len(r.entries)
	r.entries = append(r.entries, Declaration{DependentClass: dependentClass, Define: define})
	return nil
}

// Entries returns a snapshot in registration order.
func (r *Registry) Entries() []Declaration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Declaration, len(r.entries))
	copy(out, r.entries)
	return out
}

// Count returns the number of registered declarations.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Reset clears all declarations.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
	r.index = make(map[string]int)
}

var global = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry {
	return global
}

// Register records a declaration in the process-wide registry.
func Register(dependentClass, define string) error {
	return global.Register(dependentClass, define)
}

// MustRegister is Register for init functions; it panics on invalid input.
func MustRegister(dependentClass, define string) {
	if err := Register(dependentClass, define); err != nil {
		panic(err)
	}
}
