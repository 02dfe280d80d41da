package typeref

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
)

// anyType is the top of the subtype order: every type is a subtype of Any
var anyType = reflect.TypeOf((*interface{})(nil)).Elem()

// Types is a reflection-backed Universe. Type and function names are
// registered at any time, typically during package initialization;
// lookups on names that were never registered simply miss.
type Types struct {
	mu    sync.RWMutex
	types map[string]reflect.Type
	funcs map[string]FuncID
}

// NewTypes creates a Universe pre-populated with the builtin type names
func NewTypes() *Types {
	t := &Types{
		types: make(map[string]reflect.Type),
		funcs: make(map[string]FuncID),
	}

	t.types["Any"] = anyType
	t.types["Int"] = reflect.TypeOf(int(0))
	t.types["Int64"] = reflect.TypeOf(int64(0))
	t.types["Float64"] = reflect.TypeOf(float64(0))
	t.types["String"] = reflect.TypeOf("")
	t.types["Bool"] = reflect.TypeOf(false)
	t.types["Symbol"] = reflect.TypeOf(Symbol(""))

	return t
}

// RegisterType registers a named type. Re-registering a name replaces the
// previous binding; signatures referencing the name observe the new type
// on their next match.
func (t *Types) RegisterType(name string, rt reflect.Type) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.types[name] = rt
}

// RegisterTypeOf registers a named type from an example value
func (t *Types) RegisterTypeOf(name string, v interface{}) {
	t.RegisterType(name, reflect.TypeOf(v))
}

// RegisterFunc registers a named function. The identity is derived from
// the function value itself, so the same func registered under two names
// resolves to the same FuncID.
func (t *Types) RegisterFunc(name string, fn interface{}) (FuncID, error) {
	id, err := IDOf(fn)
	if err != nil {
		return 0, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.funcs[name] = id
	return id, nil
}

// EnsureFunc resolves a function name, minting a synthetic identity if
// the name was never registered against a real function value. Used by
// tooling that matches patterns against textual call descriptors where
// no live function exists.
func (t *Types) EnsureFunc(name string) FuncID {
	t.mu.Lock()
	defer t.mu.Unlock()

	if id, ok := t.funcs[name]; ok {
		return id
	}
	id := FuncID(atomic.AddUintptr(&syntheticID, 1))
	t.funcs[name] = id
	return id
}

// syntheticID is the counter behind EnsureFunc. Synthetic identities and
// function-pointer identities live in the same space; collisions are not
// a concern because a universe only holds one kind per name.
var syntheticID uintptr

// LookupType implements Universe
func (t *Types) LookupType(name string) (reflect.Type, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	rt, ok := t.types[name]
	return rt, ok
}

// LookupFunc implements Universe
func (t *Types) LookupFunc(name string) (FuncID, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	id, ok := t.funcs[name]
	return id, ok
}

// IsSubtype implements Universe. A type is a subtype of itself, of Any,
// and of every interface it implements.
func (t *Types) IsSubtype(a, b reflect.Type) bool {
	if a == nil || b == nil {
		return false
	}
	if a == b || b == anyType {
		return true
	}
	if b.Kind() == reflect.Interface {
		return a.Implements(b)
	}
	return false
}

// IsInstance implements Universe. An untyped nil is only acceptable where
// an interface type is required.
func (t *Types) IsInstance(v interface{}, rt reflect.Type) bool {
	if rt == nil {
		return false
	}
	if v == nil {
		return rt.Kind() == reflect.Interface
	}
	return t.IsSubtype(reflect.TypeOf(v), rt)
}

// IDOf derives the FuncID of a function value. Hosts use this to tag
// invocation descriptors with the identity of the function that failed.
func IDOf(fn interface{}) (FuncID, error) {
	if fn == nil {
		return 0, fmt.Errorf("cannot derive identity of nil")
	}
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return 0, fmt.Errorf("cannot derive function identity of %s", v.Kind())
	}
	return FuncID(v.Pointer()), nil
}

// Global universe instance
var defaultUniverse = NewTypes()

// Default returns the process-wide universe
func Default() *Types {
	return defaultUniverse
}

// RegisterType registers a named type in the default universe
func RegisterType(name string, rt reflect.Type) {
	defaultUniverse.RegisterType(name, rt)
}

// RegisterTypeOf registers a named type in the default universe from an
// example value
func RegisterTypeOf(name string, v interface{}) {
	defaultUniverse.RegisterTypeOf(name, v)
}

// RegisterFunc registers a named function in the default universe
func RegisterFunc(name string, fn interface{}) (FuncID, error) {
	return defaultUniverse.RegisterFunc(name, fn)
}
