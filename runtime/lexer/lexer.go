// Package lexer tokenizes formula text.
//
// The lexer is total: any byte sequence produces a token stream ending in EOF.
// Bytes that cannot start a token become ILLEGAL tokens so that later stages
// can classify the formula instead of failing on it.
package lexer

import (
	"time"
	"unicode/utf8"

	"github.com/aledsdavies/zmandsl/core/invariant"
	"github.com/aledsdavies/zmandsl/core/vocab"
)

// LexerOpt represents a lexer configuration option
type LexerOpt func(*LexerConfig)

// TelemetryMode controls telemetry collection (production-safe)
type TelemetryMode int

const (
	TelemetryOff    TelemetryMode = iota // Zero overhead (default)
	TelemetryBasic                       // Token counts only
	TelemetryTiming                      // Token counts + total lexing time
)

// LexerConfig holds lexer configuration
type LexerConfig struct {
	telemetry TelemetryMode
}

// WithTelemetryBasic enables token counting
func WithTelemetryBasic() LexerOpt {
	return func(c *LexerConfig) {
		c.telemetry = TelemetryBasic
	}
}

// WithTelemetryTiming enables token counting and timing
func WithTelemetryTiming() LexerOpt {
	return func(c *LexerConfig) {
		c.telemetry = TelemetryTiming
	}
}

// Telemetry holds lexing metrics (production-safe)
type Telemetry struct {
	Counts   map[TokenType]int
	Duration time.Duration
}

// Lexer scans formula text into tokens
type Lexer struct {
	input    []byte
	position int
	line     int
	column   int

	telemetryMode TelemetryMode
	telemetry     *Telemetry // nil when disabled
}

// NewLexer creates a new lexer instance with optional configuration
func NewLexer(input string, opts ...LexerOpt) *Lexer {
	config := &LexerConfig{}
	for _, opt := range opts {
		opt(config)
	}

	l := &Lexer{telemetryMode: config.telemetry}
	l.Init([]byte(input))
	return l
}

// Init resets the lexer with new input (following Go scanner pattern)
func (l *Lexer) Init(input []byte) {
	l.input = input
	l.position = 0
	l.line = 1
	l.column = 1

	if l.telemetryMode > TelemetryOff {
		l.telemetry = &Telemetry{Counts: make(map[TokenType]int)}
	}
}

// Tokenize lexes input with default options
func Tokenize(input string) []Token {
	return NewLexer(input).GetTokens()
}

// GetTelemetry returns lexing metrics, or nil when telemetry is off
func (l *Lexer) GetTelemetry() *Telemetry {
	if l.telemetry == nil {
		return nil
	}
	out := &Telemetry{Counts: make(map[TokenType]int, len(l.telemetry.Counts)), Duration: l.telemetry.Duration}
	for k, v := range l.telemetry.Counts {
		out.Counts[k] = v
	}
	return out
}

// GetTokens returns the remaining tokens, always ending with EOF
func (l *Lexer) GetTokens() []Token {
	var start time.Time
	if l.telemetryMode == TelemetryTiming {
		start = time.Now()
	}

	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			break
		}
	}

	if l.telemetryMode == TelemetryTiming {
		l.telemetry.Duration += time.Since(start)
	}
	return tokens
}

// NextToken returns the next token
func (l *Lexer) NextToken() Token {
	hasSpace := l.skipWhitespace()
	tok := l.lexToken()
	tok.HasSpaceBefore = hasSpace

	if l.telemetry != nil {
		l.telemetry.Counts[tok.Type]++
	}
	return tok
}

func (l *Lexer) lexToken() Token {
	start := l.pos()
	if l.position >= len(l.input) {
		return Token{Type: EOF, Position: start}
	}

	ch := l.input[l.position]
	switch {
	case isLetter(ch):
		return l.lexIdentifier(start)
	case isDigit(ch):
		return l.lexNumber(start)
	case ch == '"':
		return l.lexString(start)
	case ch == '/' && l.peek(1) == '/':
		return l.lexLineComment(start)
	case ch == '/' && l.peek(1) == '*':
		return l.lexBlockComment(start)
	}

	if tt, ok := twoCharOperators[string(l.input[l.position:min(l.position+2, len(l.input))])]; ok {
		l.advance(2)
		return Token{Type: tt, Text: string(l.input[start.Offset:l.position]), Position: start}
	}
	if tt, ok := oneCharOperators[ch]; ok {
		l.advance(1)
		return Token{Type: tt, Text: string(ch), Position: start}
	}

	// Unknown byte or non-ASCII rune: consume the whole rune
	_, size := utf8.DecodeRune(l.input[l.position:])
	l.advance(size)
	return Token{Type: ILLEGAL, Text: string(l.input[start.Offset:l.position]), Position: start}
}

var twoCharOperators = map[string]TokenType{
	"==": EQ_EQ,
	"!=": NOT_EQ,
	"<=": LT_EQ,
	">=": GT_EQ,
	"&&": AND_AND,
	"||": OR_OR,
}

var oneCharOperators = map[byte]TokenType{
	'@': AT,
	',': COMMA,
	'(': LPAREN,
	')': RPAREN,
	'{': LBRACE,
	'}': RBRACE,
	'+': PLUS,
	'-': MINUS,
	'*': MULTIPLY,
	'/': DIVIDE,
	'<': LT,
	'>': GT,
	'!': NOT,
}

func (l *Lexer) lexIdentifier(start Position) Token {
	for l.position < len(l.input) && (isLetter(l.input[l.position]) || isDigit(l.input[l.position])) {
		l.advance(1)
	}
	text := string(l.input[start.Offset:l.position])

	tt := IDENTIFIER
	switch text {
	case vocab.KeywordIf:
		tt = IF
	case vocab.KeywordElse:
		tt = ELSE
	}
	return Token{Type: tt, Text: text, Position: start}
}

// lexNumber scans digits with an optional fraction. A unit glued to the
// number ("72min") makes it a DURATION.
func (l *Lexer) lexNumber(start Position) Token {
	l.skipDigits()
	if l.peek(0) == '.' && isDigit(l.peek(1)) {
		l.advance(1)
		l.skipDigits()
	}

	tt := NUMBER
	if l.position < len(l.input) && isLetter(l.input[l.position]) {
		tt = DURATION
		for l.position < len(l.input) && isLetter(l.input[l.position]) {
			l.advance(1)
		}
	}
	return Token{Type: tt, Text: string(l.input[start.Offset:l.position]), Position: start}
}

// lexString scans a double-quoted string. An unterminated string runs to
// the end of input and is ILLEGAL.
func (l *Lexer) lexString(start Position) Token {
	l.advance(1)
	for l.position < len(l.input) {
		ch := l.input[l.position]
		l.advance(1)
		if ch == '"' {
			return Token{Type: STRING, Text: string(l.input[start.Offset:l.position]), Position: start}
		}
	}
	return Token{Type: ILLEGAL, Text: string(l.input[start.Offset:l.position]), Position: start}
}

func (l *Lexer) lexLineComment(start Position) Token {
	for l.position < len(l.input) && l.input[l.position] != '\n' {
		l.advance(1)
	}
	return Token{Type: COMMENT, Text: string(l.input[start.Offset:l.position]), Position: start}
}

func (l *Lexer) lexBlockComment(start Position) Token {
	l.advance(2)
	for l.position < len(l.input) {
		if l.input[l.position] == '*' && l.peek(1) == '/' {
			l.advance(2)
			return Token{Type: COMMENT, Text: string(l.input[start.Offset:l.position]), Position: start}
		}
		l.advance(1)
	}
	return Token{Type: ILLEGAL, Text: string(l.input[start.Offset:l.position]), Position: start}
}

func (l *Lexer) skipWhitespace() bool {
	skipped := false
	for l.position < len(l.input) && isWhitespace(l.input[l.position]) {
		l.advance(1)
		skipped = true
	}
	return skipped
}

func (l *Lexer) skipDigits() {
	for l.position < len(l.input) && isDigit(l.input[l.position]) {
		l.advance(1)
	}
}

// advance moves forward n bytes, tracking line and column
func (l *Lexer) advance(n int) {
	invariant.Precondition(n > 0, "advance must move forward, got %d", n)
	for i := 0; i < n && l.position < len(l.input); i++ {
		if l.input[l.position] == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
		l.position++
	}
}

func (l *Lexer) peek(ahead int) byte {
	if l.position+ahead < len(l.input) {
		return l.input[l.position+ahead]
	}
	return 0
}

func (l *Lexer) pos() Position {
	return Position{Line: l.line, Column: l.column, Offset: l.position}
}

func isLetter(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}
