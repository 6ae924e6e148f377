// Package parser recovers builder state from formula text.
//
// Productions are tried in a fixed order and the first to match wins; the
// order resolves overlaps such as an advanced proportional base versus a
// generic unknown function. Each production must consume the whole token
// stream. When none matches, the classifier explains why.
package parser

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aledsdavies/zmandsl/core/types"
	"github.com/aledsdavies/zmandsl/core/vocab"
	"github.com/aledsdavies/zmandsl/runtime/classifier"
	"github.com/aledsdavies/zmandsl/runtime/lexer"
)

// production tries one grammar shape from token 0. matched reports whether
// the shape claimed the formula; a claimed formula either yields a method or
// a classification.
type production struct {
	name  string
	match func(p *parser) (m types.Method, ce *types.ComplexityError, matched bool)
}

var productions = []production{
	{"solar", (*parser).solar},
	{"proportional_hours", (*parser).proportionalHours},
	{"advanced_base", (*parser).advancedBase},
	{"custom_bounds", (*parser).customBounds},
	{"proportional_minutes", (*parser).proportionalMinutes},
	{"fixed_offset", (*parser).fixedOffset},
	{"reference", (*parser).reference},
}

// Parse returns the builder state for text, or a *types.ComplexityError
// explaining why the visual editor cannot represent it.
func Parse(text string) (types.State, error) {
	return ParseDetailed(text).Result()
}

// ParseDetailed parses text and returns the full parse tree
func ParseDetailed(text string, opts ...ParserOpt) *ParseTree {
	config := newConfig(opts)

	var startTotal time.Time
	if config.telemetry >= TelemetryTiming {
		startTotal = time.Now()
	}

	source := strings.TrimSpace(text)
	tokens := lexer.Tokenize(source)

	var lexTime time.Duration
	if config.telemetry >= TelemetryTiming {
		lexTime = time.Since(startTotal)
	}

	tree := run(source, tokens, config)
	if config.telemetry >= TelemetryTiming {
		tree.Telemetry.LexTime = lexTime
		tree.Telemetry.TotalTime = time.Since(startTotal)
	}
	return tree
}

// ParseTokens parses pre-lexed tokens (for benchmarking pure matching)
func ParseTokens(source string, tokens []lexer.Token, opts ...ParserOpt) *ParseTree {
	return run(source, tokens, newConfig(opts))
}

func newConfig(opts []ParserOpt) *ParserConfig {
	config := &ParserConfig{}
	for _, opt := range opts {
		opt(config)
	}
	return config
}

func run(source string, tokens []lexer.Token, config *ParserConfig) *ParseTree {
	var telemetry *ParseTelemetry
	var startMatch time.Time
	if config.telemetry >= TelemetryBasic {
		telemetry = &ParseTelemetry{TokenCount: len(tokens)}
		if config.telemetry >= TelemetryTiming {
			startMatch = time.Now()
		}
	}

	p := &parser{tokens: tokens, config: config}
	if config.debug > DebugOff {
		p.debugEvents = make([]DebugEvent, 0, 2*len(productions)+1)
	}

	tree := &ParseTree{Source: source, Tokens: tokens}
	p.formula(tree, telemetry)

	if telemetry != nil && config.telemetry >= TelemetryTiming {
		telemetry.MatchTime = time.Since(startMatch)
		telemetry.TotalTime = telemetry.MatchTime
	}
	tree.Telemetry = telemetry
	tree.DebugEvents = p.debugEvents
	return tree
}

// parser is the internal parser state
type parser struct {
	tokens      []lexer.Token
	pos         int
	config      *ParserConfig
	debugEvents []DebugEvent
}

// recordDebugEvent records debug events when debug tracing is enabled
func (p *parser) recordDebugEvent(event, context string) {
	if p.config.debug == DebugOff || p.debugEvents == nil {
		return
	}

	p.debugEvents = append(p.debugEvents, DebugEvent{
		Timestamp: time.Now(),
		Event:     event,
		TokenPos:  p.pos,
		Context:   context,
	})
}

// formula runs the productions in order and falls back to the classifier
func (p *parser) formula(tree *ParseTree, telemetry *ParseTelemetry) {
	if p.at(lexer.EOF) {
		tree.Err = classifier.Empty()
		tree.Production = "empty"
		p.recordDebugEvent("empty", "")
		if telemetry != nil {
			telemetry.Classified = true
		}
		return
	}

	for _, prod := range productions {
		p.pos = 0
		if telemetry != nil {
			telemetry.Attempts++
		}
		if p.config.debug > DebugOff {
			p.recordDebugEvent("try_"+prod.name, "")
		}

		m, ce, matched := prod.match(p)
		if !matched {
			if p.config.debug >= DebugDetailed {
				p.recordDebugEvent("miss_"+prod.name, fmt.Sprintf("stopped at %s %q", p.current().Type, p.current().Text))
			}
			continue
		}

		tree.Production = prod.name
		if ce != nil {
			p.recordDebugEvent("reject_"+prod.name, ce.Reason.String())
			tree.Err = ce
			if telemetry != nil {
				telemetry.Classified = true
			}
			return
		}
		p.recordDebugEvent("match_"+prod.name, m.Kind().String())
		tree.State = types.State{BaseTime: vocab.DefaultPrimitive, Method: m}
		return
	}

	tree.Err = classifier.ClassifyTokens(p.tokens)
	tree.Production = "classify"
	p.recordDebugEvent("classify", tree.Err.Reason.String())
	if telemetry != nil {
		telemetry.Classified = true
	}
}

// solar: solar(NUMBER, direction) with an editor direction
func (p *parser) solar() (types.Method, *types.ComplexityError, bool) {
	if !p.call(vocab.FuncSolar) {
		return nil, nil, false
	}
	degrees, ok := p.number()
	if !ok || !p.accept(lexer.COMMA) {
		return nil, nil, false
	}
	name, ok := p.ident()
	if !ok || !p.accept(lexer.RPAREN) || !p.done() {
		return nil, nil, false
	}
	d, ok := vocab.LookupDirection(name)
	if !ok || d.Editor == "" {
		return nil, nil, false
	}
	return types.Solar{Degrees: degrees, Direction: types.SolarDirection(d.Editor)}, nil, true
}

// proportionalHours: proportional_hours(NUMBER, base) with an editable
// named base
func (p *parser) proportionalHours() (types.Method, *types.ComplexityError, bool) {
	hours, name, ok := p.namedBase()
	if !ok {
		return nil, nil, false
	}
	b, ok := vocab.LookupBase(name)
	if !ok || !b.Editable || name == vocab.FuncCustom {
		return nil, nil, false
	}
	return types.ProportionalHours{Hours: hours, Base: types.ProportionalBase(name)}, nil, true
}

// advancedBase: proportional_hours(NUMBER, base) with a base the editor
// cannot select. Valid DSL, so it is reported by name rather than left to
// the generic rules.
func (p *parser) advancedBase() (types.Method, *types.ComplexityError, bool) {
	_, name, ok := p.namedBase()
	if !ok {
		return nil, nil, false
	}
	b, ok := vocab.LookupBase(name)
	if !ok || b.Editable {
		return nil, nil, false
	}
	return nil, classifier.AdvancedBase(name), true
}

// customBounds: proportional_hours(NUMBER, custom(@start, @end))
func (p *parser) customBounds() (types.Method, *types.ComplexityError, bool) {
	if !p.call(vocab.FuncProportionalHours) {
		return nil, nil, false
	}
	hours, ok := p.number()
	if !ok || !p.accept(lexer.COMMA) || !p.call(vocab.FuncCustom) {
		return nil, nil, false
	}
	start, ok := p.formulaRef()
	if !ok || !p.accept(lexer.COMMA) {
		return nil, nil, false
	}
	end, ok := p.formulaRef()
	if !ok || !p.accept(lexer.RPAREN) || !p.accept(lexer.RPAREN) || !p.done() {
		return nil, nil, false
	}
	return types.ProportionalHours{
		Hours:  hours,
		Base:   types.BaseCustom,
		Custom: &types.CustomBounds{Start: start, End: end},
	}, nil, true
}

// proportionalMinutes: a whole-formula proportional_minutes(...) call
func (p *parser) proportionalMinutes() (types.Method, *types.ComplexityError, bool) {
	if !p.call(vocab.FuncProportionalMinutes) {
		return nil, nil, false
	}
	depth := 1
	for depth > 0 {
		switch p.current().Type {
		case lexer.EOF:
			return nil, nil, false
		case lexer.LPAREN:
			depth++
		case lexer.RPAREN:
			depth--
		}
		p.advance()
	}
	if !p.done() {
		return nil, nil, false
	}
	return nil, classifier.UnsupportedFunction(vocab.FuncProportionalMinutes), true
}

// fixedOffset: (@ref | primitive) (+|-) Nmin
func (p *parser) fixedOffset() (types.Method, *types.ComplexityError, bool) {
	base, ok := p.base()
	if !ok {
		return nil, nil, false
	}

	var direction types.OffsetDirection
	switch {
	case p.accept(lexer.MINUS):
		direction = types.Before
	case p.accept(lexer.PLUS):
		direction = types.After
	default:
		return nil, nil, false
	}

	tok := p.current()
	if tok.Type != lexer.DURATION {
		return nil, nil, false
	}
	magnitude, unit := lexer.SplitDuration(tok.Text)
	if unit != vocab.MinuteUnit {
		return nil, nil, false
	}
	minutes, err := strconv.Atoi(magnitude)
	if err != nil {
		return nil, nil, false
	}
	p.advance()
	if !p.done() {
		return nil, nil, false
	}
	return types.FixedOffset{Minutes: minutes, Direction: direction, Base: base}, nil, true
}

// reference: a lone @ref or known primitive
func (p *parser) reference() (types.Method, *types.ComplexityError, bool) {
	ref, ok := p.base()
	if !ok || !p.done() {
		return nil, nil, false
	}
	return types.FixedReference{Zman: ref}, nil, true
}

// namedBase reads proportional_hours(NUMBER, IDENT) to EOF
func (p *parser) namedBase() (float64, string, bool) {
	if !p.call(vocab.FuncProportionalHours) {
		return 0, "", false
	}
	hours, ok := p.number()
	if !ok || !p.accept(lexer.COMMA) {
		return 0, "", false
	}
	name, ok := p.ident()
	if !ok || !p.accept(lexer.RPAREN) || !p.done() {
		return 0, "", false
	}
	return hours, name, true
}

// base reads an @reference or a known primitive, keeping the author's
// spelling of aliases
func (p *parser) base() (types.Ref, bool) {
	if p.at(lexer.AT) {
		key, ok := p.formulaRef()
		if !ok {
			return types.Ref{}, false
		}
		return types.FormulaRef(key), true
	}
	name, ok := p.ident()
	if !ok || !vocab.IsPrimitive(name) {
		return types.Ref{}, false
	}
	return types.PrimitiveRef(name), true
}

// formulaRef reads @name with no space after the sigil
func (p *parser) formulaRef() (string, bool) {
	if !p.accept(lexer.AT) {
		return "", false
	}
	tok := p.current()
	if tok.Type != lexer.IDENTIFIER || tok.HasSpaceBefore {
		return "", false
	}
	p.advance()
	return tok.Text, true
}

// call consumes name followed by an opening parenthesis
func (p *parser) call(name string) bool {
	if !p.current().Is(name) || p.peek(1).Type != lexer.LPAREN {
		return false
	}
	p.advance()
	p.advance()
	return true
}

func (p *parser) number() (float64, bool) {
	tok := p.current()
	if tok.Type != lexer.NUMBER {
		return 0, false
	}
	v, err := strconv.ParseFloat(tok.Text, 64)
	if err != nil {
		return 0, false
	}
	p.advance()
	return v, true
}

func (p *parser) ident() (string, bool) {
	tok := p.current()
	if tok.Type != lexer.IDENTIFIER {
		return "", false
	}
	p.advance()
	return tok.Text, true
}

// Helper methods

func (p *parser) current() lexer.Token {
	return p.peek(0)
}

func (p *parser) peek(ahead int) lexer.Token {
	if i := p.pos + ahead; i < len(p.tokens) {
		return p.tokens[i]
	}
	return lexer.Token{Type: lexer.EOF}
}

func (p *parser) at(typ lexer.TokenType) bool {
	return p.current().Type == typ
}

func (p *parser) accept(typ lexer.TokenType) bool {
	if !p.at(typ) {
		return false
	}
	p.advance()
	return true
}

func (p *parser) advance() {
	if p.pos < len(p.tokens) {
		p.pos++
	}
}

func (p *parser) done() bool {
	return p.at(lexer.EOF)
}
