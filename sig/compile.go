package sig

import (
	"fmt"

	"github.com/callhint/callhint/pattern/parser"
	"github.com/callhint/callhint/typeref"
)

// SignatureError is the registration-time error domain: a pattern that
// could not be parsed or compiled into a valid Signature. Registration
// either fully succeeds or has no effect.
type SignatureError struct {
	Pattern string
	Message string
	Err     error // Underlying parse errors, if any
}

// Error implements the error interface
func (e *SignatureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid signature pattern %q: %s: %v", e.Pattern, e.Message, e.Err)
	}
	return fmt.Sprintf("invalid signature pattern %q: %s", e.Pattern, e.Message)
}

// Unwrap exposes the underlying parse errors
func (e *SignatureError) Unwrap() error {
	return e.Err
}

// Parse parses pattern text and compiles it against a universe in one
// step. This is the registration front door.
func Parse(source string, u typeref.Universe) (*Signature, error) {
	pattern, err := parser.Parse(source)
	if err != nil {
		return nil, &SignatureError{
			Pattern: source,
			Message: "syntax error",
			Err:     err,
		}
	}
	return Compile(pattern, u)
}

// Compile validates a parsed call pattern and produces the immutable
// Signature bound to the given universe. Type names are captured as lazy
// references; they need not resolve here.
func Compile(pattern *parser.CallPattern, u typeref.Universe) (*Signature, error) {
	if pattern == nil {
		return nil, &SignatureError{Message: "empty pattern"}
	}

	s := &Signature{
		fn:      typeref.Func(pattern.Name, u),
		pattern: pattern.String(),
	}

	for i, p := range pattern.Positionals {
		if p.Variadic {
			// The parser already enforces final placement; this guards
			// hand-built ASTs
			if i != len(pattern.Positionals)-1 {
				return nil, &SignatureError{
					Pattern: s.pattern,
					Message: "variadic marker must be the final positional parameter",
				}
			}
			s.variadic = &VariadicPositional{
				Name:              p.Name,
				ElementConstraint: constraintRef(p.Type, u),
			}
			continue
		}

		s.positionals = append(s.positionals, PositionalParam{
			Name:       p.Name,
			Constraint: constraintRef(p.Type, u),
		})
	}

	seen := make(map[string]bool, len(pattern.Keywords))
	for i, p := range pattern.Keywords {
		if p.Variadic {
			if i != len(pattern.Keywords)-1 {
				return nil, &SignatureError{
					Pattern: s.pattern,
					Message: "variadic marker must be the final keyword parameter",
				}
			}
			s.variadicKeywords = true
			continue
		}

		if p.Name == "" {
			return nil, &SignatureError{
				Pattern: s.pattern,
				Message: "keyword parameters must be named",
			}
		}
		if seen[p.Name] {
			return nil, &SignatureError{
				Pattern: s.pattern,
				Message: fmt.Sprintf("duplicate keyword parameter %q", p.Name),
			}
		}
		seen[p.Name] = true

		s.keywords = append(s.keywords, KeywordParam{
			Name:       p.Name,
			Constraint: constraintRef(p.Type, u),
			// A declaration with no default is mandatory at the call site
			Required: !p.HasDefault(),
		})
	}

	return s, nil
}

// constraintRef converts an optional type annotation into a lazy
// reference; a missing annotation is the unconstrained zero Ref
func constraintRef(t *parser.TypeExprNode, u typeref.Universe) typeref.Ref {
	if t == nil {
		return typeref.Ref{}
	}
	return typeref.Named(t.Name, u)
}
