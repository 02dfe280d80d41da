package hint

import "github.com/callhint/callhint/typeref"

// KeywordStrategy decides how a keyword entry is checked against a
// declared constraint. Hosts supply keyword entries either as types or
// as values depending on platform capability, so the comparison is
// selected once per registry at construction time, never per call.
type KeywordStrategy interface {
	// Accepts reports whether the keyword entry satisfies the constraint
	Accepts(arg KeywordArg, constraint typeref.Ref) bool

	// Name identifies the strategy for configuration and diagnostics
	Name() string
}

// TypeStrategy checks keyword entries by runtime type (is-subtype-of)
var TypeStrategy KeywordStrategy = typeStrategy{}

// ValueStrategy checks keyword entries by concrete value (is-instance-of)
var ValueStrategy KeywordStrategy = valueStrategy{}

type typeStrategy struct{}

func (typeStrategy) Accepts(arg KeywordArg, constraint typeref.Ref) bool {
	return constraint.Accepts(arg.Type)
}

func (typeStrategy) Name() string { return "types" }

type valueStrategy struct{}

func (valueStrategy) Accepts(arg KeywordArg, constraint typeref.Ref) bool {
	return constraint.AcceptsValue(arg.Value)
}

func (valueStrategy) Name() string { return "values" }

// StrategyByName resolves a configured strategy name; unknown names fall
// back to the type strategy
func StrategyByName(name string) KeywordStrategy {
	if name == ValueStrategy.Name() {
		return ValueStrategy
	}
	return TypeStrategy
}
