// Package generator writes canonical formula text for a builder state.
//
// Generate is a pure, total function over internally consistent states. Range
// checks (degrees > 0, minutes >= 0, ...) belong to the editor and run before
// Generate is called; a state whose tags are inconsistent, such as a custom
// base without bounds, is a programming error and panics.
package generator

import (
	"strconv"
	"strings"

	"github.com/aledsdavies/zmandsl/core/invariant"
	"github.com/aledsdavies/zmandsl/core/types"
	"github.com/aledsdavies/zmandsl/core/vocab"
)

// Generate returns the canonical DSL text for s
func Generate(s types.State) string {
	var b strings.Builder

	switch m := s.Method.(type) {
	case nil:
		b.WriteString(s.BaseTime)

	case types.Solar:
		direction, ok := vocab.DirectionFor(string(m.Direction))
		invariant.Precondition(ok, "solar direction %q is not an editor direction", m.Direction)
		call(&b, vocab.FuncSolar, FormatNumber(m.Degrees), direction)

	case types.FixedOffset:
		b.WriteString(m.Base.String())
		b.WriteByte(' ')
		b.WriteString(offsetSign(m.Direction))
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(m.Minutes))
		b.WriteString(vocab.MinuteUnit)

	case types.ProportionalHours:
		if m.Base == types.BaseCustom {
			invariant.Precondition(m.Custom != nil, "custom base requires bounds")
			var bounds strings.Builder
			call(&bounds, vocab.FuncCustom,
				types.FormulaRef(m.Custom.Start).String(),
				types.FormulaRef(m.Custom.End).String())
			call(&b, vocab.FuncProportionalHours, FormatNumber(m.Hours), bounds.String())
		} else {
			call(&b, vocab.FuncProportionalHours, FormatNumber(m.Hours), string(m.Base))
		}

	case types.FixedReference:
		b.WriteString(m.Zman.String())

	default:
		invariant.Unreachable("unknown builder method %T", m)
	}

	return b.String()
}

// FormatNumber writes the shortest decimal that parses back to v, with no
// exponent and no trailing zeros: 16.1, 3, 0.5.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func offsetSign(d types.OffsetDirection) string {
	switch d {
	case types.Before:
		return "-"
	case types.After:
		return "+"
	}
	invariant.Unreachable("unknown offset direction %q", d)
	return ""
}

// call writes name(arg, arg, ...) in canonical spacing
func call(b *strings.Builder, name string, args ...string) {
	b.WriteString(name)
	b.WriteByte('(')
	b.WriteString(strings.Join(args, ", "))
	b.WriteByte(')')
}
