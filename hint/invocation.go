// Package hint matches failed invocations against registered call
// signatures and fires the renderers of every signature that matches.
package hint

import (
	"reflect"

	"github.com/callhint/callhint/typeref"
)

// KeywordArg is one keyword entry of a failed invocation. Depending on
// the host's capability it carries the argument's runtime type, its
// concrete value, or both; the registry's keyword strategy decides which
// side is consulted.
type KeywordArg struct {
	Name  string
	Type  reflect.Type
	Value interface{}
}

// Invocation describes one actual failed call: the identity of the
// function plus the runtime types of its positional arguments and the
// names of its keyword arguments. Hosts produce one of these on every
// dispatch failure for a tracked function.
type Invocation struct {
	Func       typeref.FuncID
	Positional []reflect.Type
	Keywords   []KeywordArg
}

// TypesOf derives the positional type list from concrete argument values
func TypesOf(args ...interface{}) []reflect.Type {
	types := make([]reflect.Type, len(args))
	for i, a := range args {
		types[i] = reflect.TypeOf(a) // nil for an untyped nil argument
	}
	return types
}

// KeywordValue builds a keyword entry from a concrete value, carrying
// both the value and its runtime type so either strategy can check it
func KeywordValue(name string, v interface{}) KeywordArg {
	return KeywordArg{
		Name:  name,
		Type:  reflect.TypeOf(v),
		Value: v,
	}
}

// KeywordType builds a keyword entry from a runtime type only, for hosts
// that cannot recover argument values from their failure representation
func KeywordType(name string, t reflect.Type) KeywordArg {
	return KeywordArg{
		Name: name,
		Type: t,
	}
}

// Failed builds an invocation descriptor from a live function value and
// the concrete arguments of the failed call
func Failed(fn interface{}, args []interface{}, keywords ...KeywordArg) Invocation {
	id, err := typeref.IDOf(fn)
	if err != nil {
		// A non-function identity can never match any signature
		id = 0
	}
	return Invocation{
		Func:       id,
		Positional: TypesOf(args...),
		Keywords:   keywords,
	}
}
