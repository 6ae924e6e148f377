package lexer

import "fmt"

// TokenType represents lexical tokens of the formula language
type TokenType int

const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Keywords
	IF   // if
	ELSE // else

	// Structure
	AT     // @ (formula reference sigil)
	COMMA  // ,
	LPAREN // (
	RPAREN // )
	LBRACE // {
	RBRACE // }

	// Arithmetic
	PLUS     // +
	MINUS    // -
	MULTIPLY // *
	DIVIDE   // /

	// Comparison (conditions only)
	EQ_EQ  // ==
	NOT_EQ // !=
	LT     // <
	LT_EQ  // <=
	GT     // >
	GT_EQ  // >=

	// Logical (conditions only)
	AND_AND // &&
	OR_OR   // ||
	NOT     // !

	// Literals
	IDENTIFIER // primitives, functions, directions, bases, reference names
	NUMBER     // 16.1, 72
	DURATION   // 72min, 1hr, 1h
	STRING     // "summer"

	// Comments
	COMMENT // line or block comment
)

var tokenNames = map[TokenType]string{
	EOF:        "EOF",
	ILLEGAL:    "ILLEGAL",
	IF:         "IF",
	ELSE:       "ELSE",
	AT:         "AT",
	COMMA:      "COMMA",
	LPAREN:     "LPAREN",
	RPAREN:     "RPAREN",
	LBRACE:     "LBRACE",
	RBRACE:     "RBRACE",
	PLUS:       "PLUS",
	MINUS:      "MINUS",
	MULTIPLY:   "MULTIPLY",
	DIVIDE:     "DIVIDE",
	EQ_EQ:      "EQ_EQ",
	NOT_EQ:     "NOT_EQ",
	LT:         "LT",
	LT_EQ:      "LT_EQ",
	GT:         "GT",
	GT_EQ:      "GT_EQ",
	AND_AND:    "AND_AND",
	OR_OR:      "OR_OR",
	NOT:        "NOT",
	IDENTIFIER: "IDENTIFIER",
	NUMBER:     "NUMBER",
	DURATION:   "DURATION",
	STRING:     "STRING",
	COMMENT:    "COMMENT",
}

// String returns a string representation of the token type
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Position represents a position in the source text
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Offset int // 0-based byte offset
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token represents a lexical token
type Token struct {
	Type           TokenType
	Text           string
	Position       Position
	HasSpaceBefore bool // True if whitespace preceded this token
}

// String returns the token text
func (t Token) String() string {
	return t.Text
}

// Is reports whether the token is an identifier spelled name
func (t Token) Is(name string) bool {
	return t.Type == IDENTIFIER && t.Text == name
}

// SplitDuration separates a DURATION token's text into its magnitude and
// unit, e.g. "72min" into "72" and "min".
func SplitDuration(text string) (magnitude, unit string) {
	i := 0
	for i < len(text) && (isDigit(text[i]) || text[i] == '.') {
		i++
	}
	return text[:i], text[i:]
}
