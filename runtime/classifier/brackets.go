package classifier

import (
	"fmt"

	"github.com/aledsdavies/zmandsl/runtime/lexer"
)

// bracketTracker tracks opening brackets so an unbalanced formula can be
// reported at the bracket that broke it
type bracketTracker struct {
	stack []lexer.Token
}

func (bt *bracketTracker) push(tok lexer.Token) {
	bt.stack = append(bt.stack, tok)
}

// pop closes the innermost bracket, returning a description on mismatch
func (bt *bracketTracker) pop(closing lexer.Token) string {
	if len(bt.stack) == 0 {
		return fmt.Sprintf("unexpected %q at %s with no matching opening bracket", closing.Text, closing.Position)
	}

	top := bt.stack[len(bt.stack)-1]
	bt.stack = bt.stack[:len(bt.stack)-1]

	if !isMatchingBracket(top.Type, closing.Type) {
		return fmt.Sprintf("mismatched brackets: %q opened at %s but %q found at %s",
			top.Text, top.Position, closing.Text, closing.Position)
	}
	return ""
}

func isMatchingBracket(opening, closing lexer.TokenType) bool {
	switch opening {
	case lexer.LPAREN:
		return closing == lexer.RPAREN
	case lexer.LBRACE:
		return closing == lexer.RBRACE
	default:
		return false
	}
}

// unbalancedBrackets describes the first bracket problem in tokens, or
// returns "" when every bracket is closed in order
func unbalancedBrackets(tokens []lexer.Token) string {
	var bt bracketTracker
	for _, tok := range tokens {
		switch tok.Type {
		case lexer.LPAREN, lexer.LBRACE:
			bt.push(tok)
		case lexer.RPAREN, lexer.RBRACE:
			if msg := bt.pop(tok); msg != "" {
				return msg
			}
		}
	}
	if len(bt.stack) > 0 {
		open := bt.stack[len(bt.stack)-1]
		return fmt.Sprintf("unclosed %q opened at %s", open.Text, open.Position)
	}
	return ""
}
