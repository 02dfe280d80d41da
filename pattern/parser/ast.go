package parser

import (
	"fmt"
	"strings"

	"github.com/callhint/callhint/pattern/lexer"
)

// SourceLocation represents a location in pattern text
type SourceLocation struct {
	Line   int
	Column int
}

// CallPattern is the root node of a parsed signature pattern.
// It mirrors ordinary function-definition syntax: a function name applied
// to a positional parameter group and an optional keyword parameter group.
type CallPattern struct {
	Name        string // Dot-qualified function name
	Positionals []*ParamNode
	Keywords    []*ParamNode
	Location    SourceLocation
}

// ParamNode represents one parameter descriptor in either group
type ParamNode struct {
	Name     string        // Empty for anonymous ::T positionals
	Type     *TypeExprNode // nil when unconstrained
	Default  *LiteralNode  // nil when no default value
	Variadic bool
	Location SourceLocation
}

// TypeExprNode represents a type annotation. The name is captured
// textually and resolved lazily at match time, never at parse time.
type TypeExprNode struct {
	Name     string // Dot-qualified type name
	Location SourceLocation
}

// LiteralNode represents a default value in a keyword descriptor.
// Only its presence affects matching semantics; the value is kept for
// display purposes.
type LiteralNode struct {
	Value    interface{}
	Location SourceLocation
}

// NewCallPattern creates a new CallPattern node
func NewCallPattern(name string, loc SourceLocation) *CallPattern {
	return &CallPattern{
		Name:        name,
		Positionals: []*ParamNode{},
		Keywords:    []*ParamNode{},
		Location:    loc,
	}
}

// AddPositional adds a positional parameter descriptor
func (c *CallPattern) AddPositional(p *ParamNode) {
	c.Positionals = append(c.Positionals, p)
}

// AddKeyword adds a keyword parameter descriptor
func (c *CallPattern) AddKeyword(p *ParamNode) {
	c.Keywords = append(c.Keywords, p)
}

// HasConstraint returns true if the parameter carries a type annotation
func (p *ParamNode) HasConstraint() bool {
	return p.Type != nil
}

// HasDefault returns true if the parameter carries a default value
func (p *ParamNode) HasDefault() bool {
	return p.Default != nil
}

// String renders the pattern back into its surface syntax
func (c *CallPattern) String() string {
	var sb strings.Builder
	sb.WriteString(c.Name)
	sb.WriteString("(")

	for i, p := range c.Positionals {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}

	if len(c.Keywords) > 0 {
		sb.WriteString("; ")
		for i, p := range c.Keywords {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(p.String())
		}
	}

	sb.WriteString(")")
	return sb.String()
}

// String renders a parameter descriptor back into its surface syntax
func (p *ParamNode) String() string {
	var sb strings.Builder
	sb.WriteString(p.Name)
	if p.Type != nil {
		sb.WriteString("::")
		sb.WriteString(p.Type.Name)
	}
	if p.Variadic {
		sb.WriteString("...")
	}
	if p.Default != nil {
		sb.WriteString(" = ")
		sb.WriteString(formatLiteral(p.Default.Value))
	}
	return sb.String()
}

// formatLiteral renders a default value for display
func formatLiteral(v interface{}) string {
	switch val := v.(type) {
	case string:
		return `"` + val + `"`
	case symbolValue:
		return ":" + string(val)
	case nil:
		return "nil"
	default:
		return fmt.Sprintf("%v", val)
	}
}

// symbolValue marks a :name literal so it round-trips distinctly from strings
type symbolValue string

// Symbol wraps a name as a symbol literal value
func Symbol(name string) interface{} {
	return symbolValue(name)
}

// TokenToLocation converts a token to a SourceLocation
func TokenToLocation(token lexer.Token) SourceLocation {
	return SourceLocation{
		Line:   token.Line,
		Column: token.Column,
	}
}
