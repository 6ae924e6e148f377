package classifier

import (
	"fmt"
	"strings"

	"github.com/aledsdavies/zmandsl/core/types"
	"github.com/aledsdavies/zmandsl/core/vocab"
	"github.com/aledsdavies/zmandsl/runtime/lexer"
)

// describeUnknownSyntax builds the catch-all classification. The reason is
// always unknown_syntax; the detail points at the first thing worth fixing.
func describeUnknownSyntax(tokens []lexer.Token) *types.ComplexityError {
	ce := &types.ComplexityError{Reason: types.ReasonUnknownSyntax}

	if msg := unbalancedBrackets(tokens); msg != "" {
		ce.Detail = msg
		return ce
	}

	for i, tok := range tokens {
		switch tok.Type {
		case lexer.ILLEGAL:
			ce.Detail = fmt.Sprintf("unexpected %q at %s", tok.Text, tok.Position)
			return ce

		case lexer.COMMENT:
			ce.Detail = "comments are not kept by the visual editor"
			return ce

		case lexer.IDENTIFIER:
			if isReference(tokens, i) {
				continue
			}
			if d, ok := vocab.LookupDirection(tok.Text); ok {
				if d.Editor == "" {
					ce.Detail = fmt.Sprintf("solar direction %s is valid but can only be edited in advanced mode", tok.Text)
					ce.Name = tok.Text
					return ce
				}
				continue
			}
			if isKnownName(tok.Text) {
				continue
			}
			ce.Name = tok.Text
			switch secondArgumentOf(tokens, i) {
			case vocab.FuncSolar:
				ce.Detail = fmt.Sprintf("unknown solar direction %s", tok.Text)
				ce.Suggestions = vocab.Suggest(tok.Text, vocab.CategoryDirection)
			case vocab.FuncProportionalHours:
				ce.Detail = fmt.Sprintf("unknown proportional hours base %s", tok.Text)
				ce.Suggestions = vocab.Suggest(tok.Text, vocab.CategoryBase)
			default:
				ce.Detail = fmt.Sprintf("unknown identifier %s; formula references need the @ prefix", tok.Text)
				ce.Suggestions = vocab.Suggest(tok.Text, vocab.CategoryPrimitive)
			}
			return ce

		case lexer.DURATION:
			magnitude, unit := lexer.SplitDuration(tok.Text)
			if unit != vocab.MinuteUnit {
				ce.Detail = fmt.Sprintf("duration %s uses unit %q; the visual editor writes whole minutes", tok.Text, unit)
				return ce
			}
			if strings.Contains(magnitude, ".") {
				ce.Detail = fmt.Sprintf("fractional offset %s; the visual editor writes whole minutes", tok.Text)
				return ce
			}
		}
	}

	ce.Detail = "formula cannot be represented in the visual editor"
	return ce
}

// secondArgumentOf returns the function name when tokens[i] sits in the
// shape name(NUMBER, tokens[i]
func secondArgumentOf(tokens []lexer.Token, i int) string {
	if i < 4 ||
		tokens[i-1].Type != lexer.COMMA ||
		tokens[i-2].Type != lexer.NUMBER ||
		tokens[i-3].Type != lexer.LPAREN ||
		tokens[i-4].Type != lexer.IDENTIFIER {
		return ""
	}
	return tokens[i-4].Text
}

// isKnownName reports whether name is defined anywhere in the vocabulary
func isKnownName(name string) bool {
	if vocab.IsPrimitive(name) || vocab.IsFunction(name) {
		return true
	}
	_, ok := vocab.LookupBase(name)
	return ok
}
