package opts

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-options-menu/internal/textutil"
)

// Function represents a callable exposed to rule expressions.
type Function func(args ...any) (any, error)

// FunctionRegistry stores custom functions keyed by name.
type FunctionRegistry struct {
	mu        sync.RWMutex
	functions map[string]Function
}

// NewFunctionRegistry constructs an empty registry.
func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{
		functions: make(map[string]Function),
	}
}

// Register stores fn under name guarding against duplicates.
func (r *FunctionRegistry) Register(name string, fn Function) error {
	if fn == nil {
		return fmt.Errorf("opts: function %q is nil", name)
	}
	if name == "" {
		return fmt.Errorf("opts: function name must not be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.functions == nil {
		r.functions = make(map[string]Function)
	}
	key := strings.ToLower(name)
	if _, exists := r.functions[key]; exists {
		return fmt.Errorf("opts: function %q already registered", name)
	}
	r.functions[key] = fn
	return nil
}

// Clone returns a shallow copy of the registry.
func (r *FunctionRegistry) Clone() *FunctionRegistry {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	clone := &FunctionRegistry{
		functions: make(map[string]Function, len(r.functions)),
	}
	for name, fn := range r.functions {
		clone.functions[name] = fn
	}
	return clone
}

// Call executes the function registered for name.
func (r *FunctionRegistry) Call(name string, args ...any) (any, error) {
	if r == nil {
		return nil, fmt.Errorf("opts: function registry is nil")
	}
	r.mu.RLock()
	fn := r.functions[strings.ToLower(name)]
	r.mu.RUnlock()
	if fn == nil {
		return nil, fmt.Errorf("opts: function %q not registered", name)
	}
	return fn(args...)
}

// Names returns registered function names sorted alphabetically.
func (r *FunctionRegistry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.functions))
	for name := range r.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultFunctions returns a registry holding the builtin rule helpers:
//
//	clamp(v, a, b)    limits v to the range a..b (either order)
//	wrap(i, delta, n) returns (i + delta) modulo n
func DefaultFunctions() *FunctionRegistry {
	r := NewFunctionRegistry()
	_ = r.Register("clamp", func(args ...any) (any, error) {
		ints, err := intArgs("clamp", 3, args)
		if err != nil {
			return nil, err
		}
		return textutil.Clamp(ints[0], ints[1], ints[2]), nil
	})
	_ = r.Register("wrap", func(args ...any) (any, error) {
		ints, err := intArgs("wrap", 3, args)
		if err != nil {
			return nil, err
		}
		return textutil.Wrap(ints[0], ints[1], ints[2]), nil
	})
	return r
}

func intArgs(name string, want int, args []any) ([]int, error) {
	if len(args) != want {
		return nil, fmt.Errorf("opts: %s expects %d arguments, got %d", name, want, len(args))
	}
	out := make([]int, len(args))
	for i, arg := range args {
		v, ok := toInt(arg)
		if !ok {
			return nil, fmt.Errorf("opts: %s argument %d is %T, not an integer", name, i, arg)
		}
		out[i] = v
	}
	return out, nil
}
