package lexer

import "testing"

func TestKeywordVsIdentifier(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected TokenType
	}{
		// Keywords should be recognized as keywords
		{name: "if keyword", input: "if", expected: IF},
		{name: "else keyword", input: "else", expected: ELSE},

		// Keywords as prefix, suffix or infix are identifiers
		{name: "ifx identifier", input: "ifx", expected: IDENTIFIER},
		{name: "elsewhere identifier", input: "elsewhere", expected: IDENTIFIER},
		{name: "what_if identifier", input: "what_if", expected: IDENTIFIER},
		{name: "check_if_true identifier", input: "check_if_true", expected: IDENTIFIER},
		{name: "leading underscore", input: "_if", expected: IDENTIFIER},

		// Keywords are case-sensitive
		{name: "If identifier", input: "If", expected: IDENTIFIER},
		{name: "ELSE identifier", input: "ELSE", expected: IDENTIFIER},

		// Vocabulary names are plain identifiers
		{name: "function name", input: "proportional_hours", expected: IDENTIFIER},
		{name: "base with digits", input: "mga_19_8", expected: IDENTIFIER},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := NewLexer(tt.input).NextToken()

			if token.Type != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, token.Type)
			}
			if token.String() != tt.input {
				t.Errorf("Expected text %q, got %q", tt.input, token.String())
			}
		})
	}
}

func TestKeywordBoundaries(t *testing.T) {
	assertTokens(t, "keyword glued to paren", "if(x)", []tokenExpectation{
		{IF, "if", 1, 1},
		{LPAREN, "(", 1, 3},
		{IDENTIFIER, "x", 1, 4},
		{RPAREN, ")", 1, 5},
		{EOF, "", 1, 6},
	})
	assertTokens(t, "keyword after brace", "}else{", []tokenExpectation{
		{RBRACE, "}", 1, 1},
		{ELSE, "else", 1, 2},
		{LBRACE, "{", 1, 6},
		{EOF, "", 1, 7},
	})
}

func TestCommentEdgeCases(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []tokenExpectation
	}{
		{
			name:  "single slash not comment",
			input: "/",
			expected: []tokenExpectation{
				{DIVIDE, "/", 1, 1},
				{EOF, "", 1, 2},
			},
		},
		{
			name:  "single star not comment",
			input: "*",
			expected: []tokenExpectation{
				{MULTIPLY, "*", 1, 1},
				{EOF, "", 1, 2},
			},
		},
		{
			name:  "star inside block comment",
			input: "/* a * b */x",
			expected: []tokenExpectation{
				{COMMENT, "/* a * b */", 1, 1},
				{IDENTIFIER, "x", 1, 12},
				{EOF, "", 1, 13},
			},
		},
		{
			name:  "line comment at EOF",
			input: "sunset //",
			expected: []tokenExpectation{
				{IDENTIFIER, "sunset", 1, 1},
				{COMMENT, "//", 1, 8},
				{EOF, "", 1, 10},
			},
		},
		{
			name:  "line comment stops at newline",
			input: "// note\nsunset",
			expected: []tokenExpectation{
				{COMMENT, "// note", 1, 1},
				{IDENTIFIER, "sunset", 2, 1},
				{EOF, "", 2, 7},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertTokens(t, tt.name, tt.input, tt.expected)
		})
	}
}
