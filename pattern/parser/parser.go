package parser

import (
	"fmt"

	"github.com/callhint/callhint/pattern/lexer"
)

// Parser transforms a token stream into a CallPattern AST
type Parser struct {
	tokens  []lexer.Token
	current int
	errors  []ParseError
}

// New creates a new Parser from a token stream
func New(tokens []lexer.Token) *Parser {
	return &Parser{
		tokens:  tokens,
		current: 0,
		errors:  []ParseError{},
	}
}

// Parse is a convenience entry point: it lexes and parses pattern text in
// one step, returning a ParseErrorList when anything went wrong.
func Parse(source string) (*CallPattern, error) {
	l := lexer.New(source)
	tokens, lexErrors := l.ScanTokens()

	if len(lexErrors) > 0 {
		errs := make(ParseErrorList, len(lexErrors))
		for i, le := range lexErrors {
			errs[i] = ParseError{
				Message:  le.Message,
				Location: SourceLocation{Line: le.Line, Column: le.Column},
			}
		}
		return nil, errs
	}

	p := New(tokens)
	pattern, parseErrors := p.Parse()
	if len(parseErrors) > 0 {
		return nil, ParseErrorList(parseErrors)
	}
	return pattern, nil
}

// Parse parses the token stream and returns the AST and any errors
func (p *Parser) Parse() (*CallPattern, []ParseError) {
	pattern := p.parsePattern()
	return pattern, p.errors
}

// parsePattern parses a full call-shaped pattern:
//
//	name(p1, p2::T2, rest...; k1, k2::T2 = default, kwrest...)
func (p *Parser) parsePattern() *CallPattern {
	startToken := p.peek()

	name, ok := p.parseQualifiedName("Pattern must start with a function name")
	if !ok {
		return nil
	}

	pattern := NewCallPattern(name, TokenToLocation(startToken))

	if _, ok := p.consume(lexer.TOKEN_LPAREN, "Pattern must be call-shaped: expected '(' after function name"); !ok {
		return nil
	}

	// Positional parameter group
	if !p.check(lexer.TOKEN_RPAREN) && !p.check(lexer.TOKEN_SEMICOLON) {
		for {
			if param := p.parsePositionalParam(); param != nil {
				pattern.AddPositional(param)
			}
			if !p.match(lexer.TOKEN_COMMA) {
				break
			}
		}
	}

	// Keyword parameter group
	if p.match(lexer.TOKEN_SEMICOLON) {
		if !p.check(lexer.TOKEN_RPAREN) {
			for {
				if param := p.parseKeywordParam(); param != nil {
					pattern.AddKeyword(param)
				}
				if !p.match(lexer.TOKEN_COMMA) {
					break
				}
			}
		}
	}

	p.consume(lexer.TOKEN_RPAREN, "Expected ')' to close the pattern")

	if p.check(lexer.TOKEN_WHERE) {
		p.addError(ParseError{
			Message:  "Parametric type variables ('where' clauses) are not supported",
			Location: TokenToLocation(p.peek()),
		})
		return pattern
	}

	if !p.isAtEnd() {
		p.addError(ParseError{
			Message:  fmt.Sprintf("Unexpected token after pattern: %s", p.peek().Lexeme),
			Location: TokenToLocation(p.peek()),
		})
	}

	p.checkVariadicPlacement(pattern.Positionals, "positional")
	p.checkVariadicPlacement(pattern.Keywords, "keyword")

	return pattern
}

// parsePositionalParam parses one positional parameter descriptor:
// a bare name, name::T, anonymous ::T, or a variadic form of any of those
func (p *Parser) parsePositionalParam() *ParamNode {
	startToken := p.peek()
	param := &ParamNode{Location: TokenToLocation(startToken)}

	switch {
	case p.check(lexer.TOKEN_COLONCOLON):
		// Anonymous: ::T or ::T...
		p.advance()
		param.Type = p.parseTypeExpr()
		if param.Type == nil {
			p.synchronize()
			return nil
		}
		param.Variadic = p.match(lexer.TOKEN_ELLIPSIS)

	case p.check(lexer.TOKEN_ELLIPSIS):
		// Prefix variadic form: ...rest
		p.advance()
		name, ok := p.parseIdentifier("Expected parameter name after '...'")
		if !ok {
			p.synchronize()
			return nil
		}
		param.Name = name
		param.Variadic = true
		if p.match(lexer.TOKEN_COLONCOLON) {
			param.Type = p.parseTypeExpr()
		}

	default:
		name, ok := p.parseIdentifier("Expected a parameter descriptor")
		if !ok {
			p.synchronize()
			return nil
		}
		param.Name = name
		if p.match(lexer.TOKEN_COLONCOLON) {
			param.Type = p.parseTypeExpr()
			if param.Type == nil {
				p.synchronize()
				return nil
			}
		}
		param.Variadic = p.match(lexer.TOKEN_ELLIPSIS)
	}

	if p.check(lexer.TOKEN_EQUAL) {
		p.addError(ParseError{
			Message:  "Default values are only allowed in the keyword group (after ';')",
			Location: TokenToLocation(p.peek()),
		})
		p.synchronize()
		return nil
	}

	return param
}

// parseKeywordParam parses one keyword parameter descriptor. The only
// accepted shapes are: a bare name, name::T, name = default,
// name::T = default, and the variadic marker (kwrest... or ...kwrest)
func (p *Parser) parseKeywordParam() *ParamNode {
	startToken := p.peek()
	param := &ParamNode{Location: TokenToLocation(startToken)}

	if p.check(lexer.TOKEN_ELLIPSIS) {
		// Prefix variadic form: ...kwrest
		p.advance()
		name, ok := p.parseIdentifier("Expected parameter name after '...'")
		if !ok {
			p.synchronize()
			return nil
		}
		param.Name = name
		param.Variadic = true
		return param
	}

	name, ok := p.parseIdentifier("Malformed keyword parameter descriptor")
	if !ok {
		p.synchronize()
		return nil
	}
	param.Name = name

	if p.match(lexer.TOKEN_COLONCOLON) {
		param.Type = p.parseTypeExpr()
		if param.Type == nil {
			p.synchronize()
			return nil
		}
	}

	if p.match(lexer.TOKEN_ELLIPSIS) {
		param.Variadic = true
		if param.Type != nil {
			p.addError(ParseError{
				Message:  "A variadic keyword marker cannot carry a type annotation",
				Location: TokenToLocation(startToken),
			})
			return nil
		}
		if p.check(lexer.TOKEN_EQUAL) {
			p.addError(ParseError{
				Message:  "A variadic keyword marker cannot have a default value",
				Location: TokenToLocation(p.peek()),
			})
			p.synchronize()
			return nil
		}
		return param
	}

	if p.match(lexer.TOKEN_EQUAL) {
		lit := p.parseLiteral()
		if lit == nil {
			p.synchronize()
			return nil
		}
		param.Default = lit
	}

	return param
}

// parseTypeExpr parses a dot-qualified type name. The name is captured
// textually; resolution happens at match time
func (p *Parser) parseTypeExpr() *TypeExprNode {
	startToken := p.peek()

	name, ok := p.parseQualifiedName("Expected type name after '::'")
	if !ok {
		return nil
	}

	if p.check(lexer.TOKEN_LBRACE) {
		p.addError(ParseError{
			Message:  fmt.Sprintf("Parametric type annotation on '%s' is not supported", name),
			Location: TokenToLocation(p.peek()),
		})
		return nil
	}

	return &TypeExprNode{
		Name:     name,
		Location: TokenToLocation(startToken),
	}
}

// parseLiteral parses a default value literal
func (p *Parser) parseLiteral() *LiteralNode {
	token := p.peek()
	loc := TokenToLocation(token)

	switch token.Type {
	case lexer.TOKEN_INT_LITERAL, lexer.TOKEN_FLOAT_LITERAL, lexer.TOKEN_STRING_LITERAL:
		p.advance()
		return &LiteralNode{Value: token.Literal, Location: loc}
	case lexer.TOKEN_SYMBOL_LITERAL:
		p.advance()
		return &LiteralNode{Value: Symbol(token.Literal.(string)), Location: loc}
	case lexer.TOKEN_TRUE:
		p.advance()
		return &LiteralNode{Value: true, Location: loc}
	case lexer.TOKEN_FALSE:
		p.advance()
		return &LiteralNode{Value: false, Location: loc}
	case lexer.TOKEN_NIL:
		p.advance()
		return &LiteralNode{Value: nil, Location: loc}
	case lexer.TOKEN_IDENTIFIER:
		// A named constant used as a default; captured opaquely
		p.advance()
		return &LiteralNode{Value: token.Lexeme, Location: loc}
	default:
		p.addError(ParseError{
			Message:  fmt.Sprintf("Expected a default value, got '%s'", token.Lexeme),
			Location: loc,
		})
		return nil
	}
}

// parseQualifiedName parses IDENT ('.' IDENT)* and joins the parts
func (p *Parser) parseQualifiedName(message string) (string, bool) {
	name, ok := p.parseIdentifier(message)
	if !ok {
		return "", false
	}

	for p.match(lexer.TOKEN_DOT) {
		part, ok := p.parseIdentifier("Expected identifier after '.'")
		if !ok {
			return "", false
		}
		name = name + "." + part
	}

	return name, true
}

// checkVariadicPlacement verifies that at most one variadic descriptor
// exists in a group and that it is the final element
func (p *Parser) checkVariadicPlacement(params []*ParamNode, group string) {
	for i, param := range params {
		if param != nil && param.Variadic && i != len(params)-1 {
			p.addError(ParseError{
				Message:  fmt.Sprintf("Variadic marker must be the final %s parameter", group),
				Location: param.Location,
			})
		}
	}
}

// Helper methods for token manipulation

// isAtEnd checks if we're at the end of the token stream
func (p *Parser) isAtEnd() bool {
	if p.current >= len(p.tokens) {
		return true
	}
	return p.tokens[p.current].Type == lexer.TOKEN_EOF
}

// peek returns the current token without consuming it
func (p *Parser) peek() lexer.Token {
	if p.current >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // Return EOF
	}
	return p.tokens[p.current]
}

// previous returns the previous token
func (p *Parser) previous() lexer.Token {
	if p.current > 0 {
		return p.tokens[p.current-1]
	}
	return p.tokens[0]
}

// advance consumes and returns the current token
func (p *Parser) advance() lexer.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

// check checks if the current token is of the given type
func (p *Parser) check(tokenType lexer.TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == tokenType
}

// match checks if the current token matches any of the given types.
// If it matches, consumes the token and returns true
func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, tokenType := range types {
		if p.check(tokenType) {
			p.advance()
			return true
		}
	}
	return false
}

// consume consumes a token of the given type or adds an error
func (p *Parser) consume(tokenType lexer.TokenType, message string) (lexer.Token, bool) {
	if p.check(tokenType) {
		return p.advance(), true
	}

	p.addError(ParseError{
		Message:  message,
		Location: TokenToLocation(p.peek()),
	})
	return lexer.Token{}, false
}

// parseIdentifier parses an identifier token
func (p *Parser) parseIdentifier(message string) (string, bool) {
	if p.check(lexer.TOKEN_IDENTIFIER) {
		token := p.advance()
		return token.Lexeme, true
	}

	p.addError(ParseError{
		Message:  message,
		Location: TokenToLocation(p.peek()),
	})
	return "", false
}

// addError adds a parse error to the error list
func (p *Parser) addError(err ParseError) {
	p.errors = append(p.errors, err)
}

// synchronize skips tokens until the next parameter boundary
func (p *Parser) synchronize() {
	for !p.isAtEnd() {
		switch p.peek().Type {
		case lexer.TOKEN_COMMA, lexer.TOKEN_SEMICOLON, lexer.TOKEN_RPAREN:
			return
		}
		p.advance()
	}
}
