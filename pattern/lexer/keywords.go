package lexer

// keywords maps reserved words to their token types
var keywords = map[string]TokenType{
	"where": TOKEN_WHERE,
	"true":  TOKEN_TRUE,
	"false": TOKEN_FALSE,
	"nil":   TOKEN_NIL,
}

// lookupKeyword returns the token type for a keyword, or false if the
// lexeme is an ordinary identifier
func lookupKeyword(lexeme string) (TokenType, bool) {
	tokenType, ok := keywords[lexeme]
	return tokenType, ok
}
