// Package classifier explains why formula text falls outside the visual
// editor.
//
// Rules are checked in a fixed order and the first that matches wins:
//
//  1. if/else anywhere                    → conditional
//  2. a midpoint(...) call                → midpoint
//  3. two or more ±Nmin operators          → chained_operations
//  4. a call to a function outside the known set → unknown_function
//  5. anything else                       → unknown_syntax
//
// The chained rule only counts minute offsets, so one offset applied to a
// solar or proportional call is not reported as chained; it lands in
// unknown_syntax instead.
package classifier

import (
	"fmt"

	"github.com/aledsdavies/zmandsl/core/types"
	"github.com/aledsdavies/zmandsl/core/vocab"
	"github.com/aledsdavies/zmandsl/runtime/lexer"
)

// Classify tokenizes text and classifies it
func Classify(text string) *types.ComplexityError {
	return ClassifyTokens(lexer.Tokenize(text))
}

// ClassifyTokens classifies an already tokenized formula. tokens must end
// with EOF, as lexer output does.
func ClassifyTokens(tokens []lexer.Token) *types.ComplexityError {
	if len(tokens) == 0 || tokens[0].Type == lexer.EOF {
		return Empty()
	}

	for _, tok := range tokens {
		if tok.Type == lexer.IF || tok.Type == lexer.ELSE {
			return &types.ComplexityError{
				Reason: types.ReasonConditional,
				Detail: "conditional logic (if/else) can only be edited in advanced mode",
			}
		}
	}

	for i, tok := range tokens {
		if tok.Is(vocab.FuncMidpoint) && isCall(tokens, i) {
			return &types.ComplexityError{
				Reason: types.ReasonMidpoint,
				Detail: "midpoint between two times can only be edited in advanced mode",
				Name:   vocab.FuncMidpoint,
			}
		}
	}

	if n := countMinuteOffsets(tokens); n >= 2 {
		return &types.ComplexityError{
			Reason: types.ReasonChainedOperations,
			Detail: fmt.Sprintf("%d chained minute offsets; the visual editor supports a single offset", n),
		}
	}

	for i, tok := range tokens {
		if tok.Type != lexer.IDENTIFIER || !isCall(tokens, i) || isReference(tokens, i) {
			continue
		}
		if !vocab.IsKnownFunction(tok.Text) {
			return UnsupportedFunction(tok.Text)
		}
	}

	return describeUnknownSyntax(tokens)
}

// Empty is the classification of blank input
func Empty() *types.ComplexityError {
	return &types.ComplexityError{
		Reason: types.ReasonEmptyFormula,
		Detail: "formula is empty",
	}
}

// UnsupportedFunction reports a call the visual editor cannot build. Names
// the DSL defines get no suggestions: they are valid, just advanced.
func UnsupportedFunction(name string) *types.ComplexityError {
	ce := &types.ComplexityError{
		Reason: types.ReasonUnknownFunction,
		Name:   name,
	}
	if vocab.IsFunction(name) {
		ce.Detail = fmt.Sprintf("%s() is valid but can only be edited in advanced mode", name)
	} else {
		ce.Detail = fmt.Sprintf("unknown function %s()", name)
		ce.Suggestions = vocab.Suggest(name, vocab.CategoryFunction)
	}
	return ce
}

// AdvancedBase reports a proportional_hours base outside the editor's set
func AdvancedBase(name string) *types.ComplexityError {
	return &types.ComplexityError{
		Reason: types.ReasonUnknownSyntax,
		Detail: fmt.Sprintf("proportional hours base %s is valid but can only be edited in advanced mode", name),
		Name:   name,
	}
}

// isCall reports whether tokens[i] is immediately applied to arguments
func isCall(tokens []lexer.Token, i int) bool {
	return i+1 < len(tokens) && tokens[i+1].Type == lexer.LPAREN
}

// isReference reports whether tokens[i] is the name half of @name
func isReference(tokens []lexer.Token, i int) bool {
	return i > 0 && tokens[i-1].Type == lexer.AT && !tokens[i].HasSpaceBefore
}

// countMinuteOffsets counts "+ Nmin" and "- Nmin" pairs
func countMinuteOffsets(tokens []lexer.Token) int {
	n := 0
	for i := 0; i+1 < len(tokens); i++ {
		if tokens[i].Type != lexer.PLUS && tokens[i].Type != lexer.MINUS {
			continue
		}
		next := tokens[i+1]
		if next.Type != lexer.DURATION {
			continue
		}
		if _, unit := lexer.SplitDuration(next.Text); unit == vocab.MinuteUnit {
			n++
		}
	}
	return n
}
