package hint

import "github.com/callhint/callhint/sig"

// Matches reports whether a failed invocation fits a registered
// signature. It is total and side-effect free: an unresolved function
// identity or type constraint makes the relevant check false instead of
// failing, so a broken or forward-declared signature degrades to "never
// matches" rather than crashing the failure-reporting path.
func Matches(s *sig.Signature, inv Invocation, ks KeywordStrategy) bool {
	if s == nil || ks == nil {
		return false
	}

	// Identity: a signature registered against a name that does not
	// exist matches nothing
	id, ok := s.Func().Resolve()
	if !ok || id != inv.Func {
		return false
	}

	// Positional arity
	fixed := s.Positionals()
	k := len(fixed)
	variadic := s.Variadic()
	if variadic == nil {
		if len(inv.Positional) != k {
			return false
		}
	} else if len(inv.Positional) < k {
		return false
	}

	// Fixed positional types
	for i, param := range fixed {
		if !param.Constraint.Accepts(inv.Positional[i]) {
			return false
		}
	}

	// Variadic positional element types
	if variadic != nil {
		for _, t := range inv.Positional[k:] {
			if !variadic.ElementConstraint.Accepts(t) {
				return false
			}
		}
	}

	// Mandatory keywords must all be present at the call site
	for _, kw := range s.Keywords() {
		if kw.Required && !hasKeyword(inv.Keywords, kw.Name) {
			return false
		}
	}

	// Keyword closure: every supplied entry is either declared and
	// satisfies its constraint, or tolerated by a variadic keyword group
	for _, arg := range inv.Keywords {
		kw, declared := s.Keyword(arg.Name)
		if !declared {
			if !s.VariadicKeywords() {
				return false
			}
			continue
		}
		if !ks.Accepts(arg, kw.Constraint) {
			return false
		}
	}

	return true
}

// hasKeyword checks for a keyword entry by name
func hasKeyword(args []KeywordArg, name string) bool {
	for _, a := range args {
		if a.Name == name {
			return true
		}
	}
	return false
}
