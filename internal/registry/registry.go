// Package registry implements ObjectQL's extensible function registry
// (spec.md §4.4): a name→callable mapping seeded with the required
// built-in library, extensible at runtime by the host. The shape — a
// Kind+Message error type per misuse, a small interface-free map keyed by
// string — follows the teacher's internal/query.Reducer registry-by-
// dispatch convention (internal/query/reducer.go), adapted from a fixed
// reducer set to an open, host-extensible map.
package registry

import (
	"fmt"
	"sort"

	"github.com/ritamzico/objectql/internal/value"
)

// Func is a registered callable. It receives already-evaluated argument
// Values and is responsible for its own arity and type checks (spec.md
// §4.4).
type Func func(args []value.Value) (value.Value, error)

// Registry is a name→Func mapping (spec.md invariant 5: re-registration
// replaces). The zero value is not usable; construct with New.
type Registry struct {
	fns map[string]Func
}

// New returns a Registry seeded with the required built-in library.
func New() *Registry {
	r := &Registry{fns: make(map[string]Func)}
	registerBuiltins(r)
	return r
}

// Register adds or replaces the callable bound to name. It validates a
// non-empty name and a non-nil callable (spec.md §4.4).
func (r *Registry) Register(name string, fn Func) error {
	if name == "" {
		return InvalidRegistration("function name must not be empty")
	}
	if fn == nil {
		return InvalidRegistration(fmt.Sprintf("function %q must not be nil", name))
	}
	r.fns[name] = fn
	return nil
}

// Names returns the registered function names in sorted order, used by the
// CLI's `functions` subcommand and the REPL's `functions` command.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.fns))
	for name := range r.fns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call invokes the named function, wrapping an unknown name or a callable
// failure (including a recovered panic, since host-registered callables
// are not required to be panic-free) per spec.md §4.5's "wrap any
// exception as a Function execution failed error".
func (r *Registry) Call(name string, args []value.Value) (result value.Value, err error) {
	fn, ok := r.fns[name]
	if !ok {
		return value.Value{}, UnknownFunction(name)
	}

	defer func() {
		if rec := recover(); rec != nil {
			result = value.Value{}
			err = ExecutionFailed(name, fmt.Errorf("%v", rec))
		}
	}()

	v, callErr := fn(args)
	if callErr != nil {
		return value.Value{}, ExecutionFailed(name, callErr)
	}
	return v, nil
}
