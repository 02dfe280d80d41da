// Package sig defines the validated signature model hints are registered
// against. A Signature is compiled from a parsed call pattern, bound to a
// type universe, and treated as immutable from then on.
package sig

import "github.com/callhint/callhint/typeref"

// PositionalParam describes one fixed positional parameter. A zero
// Constraint accepts any type.
type PositionalParam struct {
	Name       string // Display only; empty for anonymous ::T parameters
	Constraint typeref.Ref
}

// VariadicPositional describes a trailing variable-arity positional
// group. Every trailing argument is checked against ElementConstraint.
type VariadicPositional struct {
	Name              string
	ElementConstraint typeref.Ref
}

// KeywordParam describes one declared keyword parameter. Required is true
// iff the declaration supplied no default value.
type KeywordParam struct {
	Name       string
	Constraint typeref.Ref
	Required   bool
}

// Signature is the structured description of a call shape. Once compiled
// it is never mutated; the registry and matcher only read it.
type Signature struct {
	fn               typeref.FuncRef
	positionals      []PositionalParam
	variadic         *VariadicPositional
	keywords         []KeywordParam
	variadicKeywords bool
	pattern          string
}

// FuncName returns the function name the signature is registered against
func (s *Signature) FuncName() string {
	return s.fn.Name()
}

// Func returns the lazily resolved function identity reference
func (s *Signature) Func() typeref.FuncRef {
	return s.fn
}

// Positionals returns the fixed positional parameters in order
func (s *Signature) Positionals() []PositionalParam {
	return s.positionals
}

// Variadic returns the trailing variadic positional group, nil if absent
func (s *Signature) Variadic() *VariadicPositional {
	return s.variadic
}

// Keywords returns the declared keyword parameters
func (s *Signature) Keywords() []KeywordParam {
	return s.keywords
}

// Keyword finds a declared keyword parameter by name
func (s *Signature) Keyword(name string) (KeywordParam, bool) {
	for _, kw := range s.keywords {
		if kw.Name == name {
			return kw, true
		}
	}
	return KeywordParam{}, false
}

// VariadicKeywords reports whether undeclared keyword names are tolerated
func (s *Signature) VariadicKeywords() bool {
	return s.variadicKeywords
}

// Pattern returns the surface syntax the signature was compiled from
func (s *Signature) Pattern() string {
	return s.pattern
}

// String implements fmt.Stringer
func (s *Signature) String() string {
	return s.pattern
}
