// Package inclusion answers whether a catalog page type is compiled into the host build.
// Hosts register the page types they ship, directly or through a YAML manifest, and hand
// the Registry to the catalog store as its InclusionChecker.
package inclusion

import (
	"sort"
	"sync"

	"k8s.io/apimachinery/pkg/util/sets"
)

// Registry records page type names per module. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]sets.Set[string]
}

func NewRegistry() *Registry {
	return &Registry{modules: map[string]sets.Set[string]{}}
}

// Register marks typeNames as compiled into module. Registering a module with no types
// makes the module known without including any page.
func (r *Registry) Register(module string, typeNames ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	types, ok := r.modules[module]
	if !ok {
		types = sets.New[string]()
		r.modules[module] = types
	}
	types.Insert(typeNames...)
}

// IsCompiledIn never fails; an unknown module reports false.
func (r *Registry) IsCompiledIn(module, typeName string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types, ok := r.modules[module]
	if !ok {
		return false
	}
	return types.Has(typeName)
}

// Modules returns the registered module names, sorted.
func (r *Registry) Modules() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.modules))
	for name := range r.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Types returns the type names registered for module, sorted.
func (r *Registry) Types(module string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return sets.List(r.modules[module])
}
