package hint

import (
	"fmt"
	"reflect"

	"github.com/callhint/callhint/pattern/lexer"
	"github.com/callhint/callhint/typeref"
)

// ParseCall parses a textual invocation descriptor into an Invocation.
// The surface mirrors the pattern grammar with arguments instead of
// parameters: positional entries and keyword values are either type
// names resolved against the universe or literal values:
//
//	f(Int, Float64; x=Int, y="hello")
//
// A type name the universe does not know yields an entry with no type,
// which then fails closed at match time. This descriptor form exists for
// tooling and tests; hosts construct Invocations directly.
func ParseCall(source string, u typeref.Universe) (Invocation, error) {
	l := lexer.New(source)
	tokens, lexErrors := l.ScanTokens()
	if len(lexErrors) > 0 {
		return Invocation{}, fmt.Errorf("invalid call descriptor %q: %s", source, lexErrors[0].Error())
	}

	p := &callParser{tokens: tokens, source: source, universe: u}
	return p.parse()
}

// callParser walks the token stream of a call descriptor
type callParser struct {
	tokens   []lexer.Token
	current  int
	source   string
	universe typeref.Universe
}

func (p *callParser) parse() (Invocation, error) {
	name, err := p.qualifiedName()
	if err != nil {
		return Invocation{}, err
	}

	if _, err := p.expect(lexer.TOKEN_LPAREN, "expected '(' after function name"); err != nil {
		return Invocation{}, err
	}

	inv := Invocation{Func: p.funcIdentity(name)}

	// Positional arguments
	if !p.check(lexer.TOKEN_RPAREN) && !p.check(lexer.TOKEN_SEMICOLON) {
		for {
			t, _, err := p.argument()
			if err != nil {
				return Invocation{}, err
			}
			inv.Positional = append(inv.Positional, t)
			if !p.match(lexer.TOKEN_COMMA) {
				break
			}
		}
	}

	// Keyword arguments
	if p.match(lexer.TOKEN_SEMICOLON) {
		for !p.check(lexer.TOKEN_RPAREN) && !p.isAtEnd() {
			kwName, err := p.identifier("expected keyword argument name")
			if err != nil {
				return Invocation{}, err
			}
			if _, err := p.expect(lexer.TOKEN_EQUAL, "expected '=' after keyword argument name"); err != nil {
				return Invocation{}, err
			}
			t, v, err := p.argument()
			if err != nil {
				return Invocation{}, err
			}
			inv.Keywords = append(inv.Keywords, KeywordArg{Name: kwName, Type: t, Value: v})
			if !p.match(lexer.TOKEN_COMMA) {
				break
			}
		}
	}

	if _, err := p.expect(lexer.TOKEN_RPAREN, "expected ')' to close the call"); err != nil {
		return Invocation{}, err
	}
	if !p.isAtEnd() {
		return Invocation{}, p.errorf("unexpected token after call: %s", p.peek().Lexeme)
	}

	return inv, nil
}

// argument parses one argument: a type name or a literal value. Returns
// the runtime type (nil when unresolvable) and the value when literal.
func (p *callParser) argument() (reflect.Type, interface{}, error) {
	token := p.peek()

	switch token.Type {
	case lexer.TOKEN_IDENTIFIER:
		name, err := p.qualifiedName()
		if err != nil {
			return nil, nil, err
		}
		if t, ok := p.universe.LookupType(name); ok {
			return t, nil, nil
		}
		// Unknown type name: fail closed downstream
		return nil, nil, nil
	case lexer.TOKEN_INT_LITERAL:
		p.advance()
		v := int(token.Literal.(int64))
		return reflect.TypeOf(v), v, nil
	case lexer.TOKEN_FLOAT_LITERAL:
		p.advance()
		v := token.Literal.(float64)
		return reflect.TypeOf(v), v, nil
	case lexer.TOKEN_STRING_LITERAL:
		p.advance()
		v := token.Literal.(string)
		return reflect.TypeOf(v), v, nil
	case lexer.TOKEN_SYMBOL_LITERAL:
		p.advance()
		v := typeref.Symbol(token.Literal.(string))
		return reflect.TypeOf(v), v, nil
	case lexer.TOKEN_TRUE:
		p.advance()
		return reflect.TypeOf(true), true, nil
	case lexer.TOKEN_FALSE:
		p.advance()
		return reflect.TypeOf(false), false, nil
	case lexer.TOKEN_NIL:
		p.advance()
		return nil, nil, nil
	default:
		return nil, nil, p.errorf("expected an argument, got '%s'", token.Lexeme)
	}
}

// funcIdentity resolves the called function's identity, minting a
// synthetic one when the universe supports it so descriptors can be
// matched without a live function value
func (p *callParser) funcIdentity(name string) typeref.FuncID {
	if id, ok := p.universe.LookupFunc(name); ok {
		return id
	}
	if ensurer, ok := p.universe.(interface {
		EnsureFunc(string) typeref.FuncID
	}); ok {
		return ensurer.EnsureFunc(name)
	}
	return 0
}

func (p *callParser) qualifiedName() (string, error) {
	name, err := p.identifier("expected identifier")
	if err != nil {
		return "", err
	}
	for p.match(lexer.TOKEN_DOT) {
		part, err := p.identifier("expected identifier after '.'")
		if err != nil {
			return "", err
		}
		name = name + "." + part
	}
	return name, nil
}

func (p *callParser) identifier(message string) (string, error) {
	token, err := p.expect(lexer.TOKEN_IDENTIFIER, message)
	if err != nil {
		return "", err
	}
	return token.Lexeme, nil
}

func (p *callParser) expect(tokenType lexer.TokenType, message string) (lexer.Token, error) {
	if p.check(tokenType) {
		return p.advance(), nil
	}
	return lexer.Token{}, p.errorf("%s", message)
}

func (p *callParser) errorf(format string, args ...interface{}) error {
	loc := p.peek()
	return fmt.Errorf("invalid call descriptor %q: %d:%d: %s",
		p.source, loc.Line, loc.Column, fmt.Sprintf(format, args...))
}

func (p *callParser) isAtEnd() bool {
	return p.current >= len(p.tokens) || p.tokens[p.current].Type == lexer.TOKEN_EOF
}

func (p *callParser) peek() lexer.Token {
	if p.current >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.current]
}

func (p *callParser) advance() lexer.Token {
	token := p.peek()
	if !p.isAtEnd() {
		p.current++
	}
	return token
}

func (p *callParser) check(tokenType lexer.TokenType) bool {
	return !p.isAtEnd() && p.peek().Type == tokenType
}

func (p *callParser) match(tokenType lexer.TokenType) bool {
	if p.check(tokenType) {
		p.advance()
		return true
	}
	return false
}
