// Package typeref provides lazily resolved references into a host type
// system. A Ref names a type that may or may not exist yet; resolution
// happens at match time so that signatures can be registered against
// forward references or names that never materialize. Comparisons against
// an unresolved reference answer false, never error.
package typeref

import "reflect"

// FuncID is an opaque identity for a function in the host universe.
// Two FuncIDs are equal iff they denote the same function.
type FuncID uintptr

// Symbol is the runtime type used for :name literals in call descriptors
type Symbol string

// Universe is the capability surface the matcher needs from a host type
// system: name resolution plus the two dynamic comparisons
type Universe interface {
	// LookupType resolves a type name. The second result is false when
	// the name does not currently denote a type.
	LookupType(name string) (reflect.Type, bool)

	// LookupFunc resolves a function name. The second result is false
	// when the name does not currently denote a function.
	LookupFunc(name string) (FuncID, bool)

	// IsSubtype reports whether a value of type a is acceptable where
	// type b is required
	IsSubtype(a, b reflect.Type) bool

	// IsInstance reports whether the concrete value v is acceptable
	// where type t is required
	IsInstance(v interface{}, t reflect.Type) bool
}

// Ref is a lazily resolved reference to a named type in a Universe.
// The zero Ref is unconstrained: it accepts every type.
type Ref struct {
	name     string
	universe Universe
}

// Named creates a reference to a type name in the given universe.
// The name is not resolved here; it need not exist yet.
func Named(name string, u Universe) Ref {
	return Ref{name: name, universe: u}
}

// Name returns the referenced type name, empty for the unconstrained Ref
func (r Ref) Name() string {
	return r.name
}

// IsAny returns true for the unconstrained reference
func (r Ref) IsAny() bool {
	return r.name == ""
}

// Resolve resolves the reference against its universe. It returns false
// for the unconstrained Ref and for names the universe does not know.
func (r Ref) Resolve() (reflect.Type, bool) {
	if r.name == "" || r.universe == nil {
		return nil, false
	}
	return r.universe.LookupType(r.name)
}

// Accepts reports whether an argument of type t satisfies this reference
// as a constraint. Unconstrained accepts everything; an unresolved name
// or an unknown argument type accepts nothing.
func (r Ref) Accepts(t reflect.Type) bool {
	if r.IsAny() {
		return true
	}
	rt, ok := r.Resolve()
	if !ok || t == nil {
		return false
	}
	return r.universe.IsSubtype(t, rt)
}

// AcceptsValue reports whether the concrete value v satisfies this
// reference as a constraint, using the universe's instance check
func (r Ref) AcceptsValue(v interface{}) bool {
	if r.IsAny() {
		return true
	}
	rt, ok := r.Resolve()
	if !ok {
		return false
	}
	return r.universe.IsInstance(v, rt)
}

// FuncRef is a lazily resolved reference to a named function in a Universe
type FuncRef struct {
	name     string
	universe Universe
}

// Func creates a reference to a function name in the given universe
func Func(name string, u Universe) FuncRef {
	return FuncRef{name: name, universe: u}
}

// Name returns the referenced function name
func (r FuncRef) Name() string {
	return r.name
}

// Resolve resolves the function reference against its universe
func (r FuncRef) Resolve() (FuncID, bool) {
	if r.name == "" || r.universe == nil {
		return 0, false
	}
	return r.universe.LookupFunc(r.name)
}
