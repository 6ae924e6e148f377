package editor

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/aledsdavies/zmandsl/core/types"
	"github.com/aledsdavies/zmandsl/core/vocab"
)

// ValidationError is one problem with a builder field
type ValidationError struct {
	Field   string `json:"field"` // wire field name, e.g. "degrees"
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

var formulaKey = regexp.MustCompile(types.KeyPattern)

// Validate checks a builder state before it is generated. A state with no
// errors is safe to pass to generator.Generate.
func Validate(state types.State) []ValidationError {
	var v validator

	switch m := state.Method.(type) {
	case nil:
		v.primitive("base_time", state.BaseTime)

	case types.Solar:
		if !(m.Degrees > 0 && m.Degrees <= types.MaxDegrees) {
			v.add("degrees", "must be greater than 0 and at most %d, got %g", types.MaxDegrees, m.Degrees)
		}
		if !slices.Contains(types.SolarDirections(), m.Direction) {
			v.add("direction", "unknown solar direction %q", m.Direction)
		}

	case types.FixedOffset:
		if m.Minutes < 0 {
			v.add("minutes", "must not be negative, got %d", m.Minutes)
		}
		if m.Direction != types.Before && m.Direction != types.After {
			v.add("direction", "must be before or after, got %q", m.Direction)
		}
		v.ref("offset_base", m.Base)

	case types.ProportionalHours:
		if !(m.Hours > 0 && m.Hours <= types.MaxHours) {
			v.add("hours", "must be greater than 0 and at most %d, got %g", types.MaxHours, m.Hours)
		}
		if !slices.Contains(types.ProportionalBases(), m.Base) {
			v.add("base", "%q is not available in the visual editor", m.Base)
		}
		if m.Base == types.BaseCustom {
			if m.Custom == nil {
				v.add("custom_start", "custom base requires a start formula")
				v.add("custom_end", "custom base requires an end formula")
			} else {
				v.key("custom_start", m.Custom.Start)
				v.key("custom_end", m.Custom.End)
			}
		}

	case types.FixedReference:
		v.ref("zman_key", m.Zman)
	}

	return v.errs
}

type validator struct {
	errs []ValidationError
}

func (v *validator) add(field, format string, args ...any) {
	v.errs = append(v.errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (v *validator) ref(field string, r types.Ref) {
	if r.IsFormula {
		v.key(field, r.Name)
		return
	}
	v.primitive(field, r.Name)
}

func (v *validator) primitive(field, name string) {
	if !vocab.IsPrimitive(name) {
		v.add(field, "unknown primitive %q; prefix formula references with %s", name, vocab.Sigil)
	}
}

func (v *validator) key(field, name string) {
	switch {
	case !formulaKey.MatchString(name):
		v.add(field, "formula key %q must be lowercase snake_case", name)
	case vocab.IsKeyword(name):
		v.add(field, "formula key %q is a reserved word", name)
	}
}
