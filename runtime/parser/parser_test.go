package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/zmandsl/core/types"
	"github.com/aledsdavies/zmandsl/core/vocab"
	"github.com/aledsdavies/zmandsl/runtime/generator"
)

// state wraps a method the way Parse returns it
func state(m types.Method) types.State {
	return types.State{BaseTime: vocab.DefaultPrimitive, Method: m}
}

// editorStates enumerates states the visual editor can construct
func editorStates() []types.State {
	var out []types.State

	for _, d := range types.SolarDirections() {
		for _, deg := range []float64{0.5, 8.5, 11, 16.1, 19.75, 90} {
			out = append(out, state(types.Solar{Degrees: deg, Direction: d}))
		}
	}

	bases := []types.Ref{
		types.PrimitiveRef("visible_sunrise"),
		types.PrimitiveRef("solar_noon"),
		types.PrimitiveRef("sunset"),
		types.FormulaRef("alos_custom"),
		types.FormulaRef("tzais_72"),
	}
	for _, base := range bases {
		for _, dir := range []types.OffsetDirection{types.Before, types.After} {
			for _, min := range []int{0, 1, 18, 72, 120} {
				out = append(out, state(types.FixedOffset{Minutes: min, Direction: dir, Base: base}))
			}
		}
	}

	for _, b := range types.ProportionalBases() {
		for _, h := range []float64{0.25, 3, 4.5, 10.75} {
			m := types.ProportionalHours{Hours: h, Base: b}
			if b == types.BaseCustom {
				m.Custom = &types.CustomBounds{Start: "alos_16_1", End: "tzais_72"}
			}
			out = append(out, state(m))
		}
	}

	for _, name := range vocab.Primitives() {
		out = append(out, state(types.FixedReference{Zman: types.PrimitiveRef(name)}))
	}
	out = append(out,
		state(types.FixedReference{Zman: types.PrimitiveRef("sunrise")}),
		state(types.FixedReference{Zman: types.FormulaRef("banana")}),
	)
	return out
}

func TestRoundTrip(t *testing.T) {
	for _, s := range editorStates() {
		text := generator.Generate(s)
		t.Run(text, func(t *testing.T) {
			got, err := Parse(text)
			require.NoError(t, err)
			if diff := cmp.Diff(s, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGenerateIsIdempotentThroughParse(t *testing.T) {
	for _, s := range editorStates() {
		text := generator.Generate(s)
		got, err := Parse(text)
		require.NoError(t, err, text)
		assert.Equal(t, text, generator.Generate(got))
	}
}

func TestNoneStateNormalisesToReference(t *testing.T) {
	got, err := Parse(generator.Generate(types.NewState()))
	require.NoError(t, err)
	assert.Equal(t, types.MethodFixedReference, got.Kind())
	assert.Equal(t, vocab.DefaultPrimitive, generator.Generate(got))
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  types.Method
	}{
		{
			name:  "solar",
			input: "solar(16.1, before_visible_sunrise)",
			want:  types.Solar{Degrees: 16.1, Direction: types.BeforeSunrise},
		},
		{
			name:  "solar legacy direction",
			input: "solar(8.5, after_sunset)",
			want:  types.Solar{Degrees: 8.5, Direction: types.AfterSunset},
		},
		{
			name:  "surrounding whitespace",
			input: "  \n solar(12, after_noon)\t ",
			want:  types.Solar{Degrees: 12, Direction: types.AfterNoon},
		},
		{
			name:  "loose spacing",
			input: "proportional_hours( 3 ,gra )",
			want:  types.ProportionalHours{Hours: 3, Base: types.BaseGRA},
		},
		{
			name:  "reference offset",
			input: "@alos_custom - 20min",
			want:  types.FixedOffset{Minutes: 20, Direction: types.Before, Base: types.FormulaRef("alos_custom")},
		},
		{
			name:  "alias offset keeps spelling",
			input: "sunset+18min",
			want:  types.FixedOffset{Minutes: 18, Direction: types.After, Base: types.PrimitiveRef("sunset")},
		},
		{
			name:  "custom bounds",
			input: "proportional_hours(4, custom(@alos_16_1, @tzais_72))",
			want: types.ProportionalHours{
				Hours:  4,
				Base:   types.BaseCustom,
				Custom: &types.CustomBounds{Start: "alos_16_1", End: "tzais_72"},
			},
		},
		{
			name:  "unknown reference",
			input: "@banana",
			want:  types.FixedReference{Zman: types.FormulaRef("banana")},
		},
		{
			name:  "primitive",
			input: "solar_noon",
			want:  types.FixedReference{Zman: types.PrimitiveRef("solar_noon")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			if diff := cmp.Diff(state(tt.want), got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		reason types.ComplexityReason
		ident  string
	}{
		{"empty", "", types.ReasonEmptyFormula, ""},
		{"whitespace", "   ", types.ReasonEmptyFormula, ""},
		{"advanced base", "proportional_hours(3, mga_72)", types.ReasonUnknownSyntax, "mga_72"},
		{"advanced zmanis base", "proportional_hours(3, mga_90_zmanis)", types.ReasonUnknownSyntax, "mga_90_zmanis"},
		{"proportional minutes", "proportional_minutes(72, gra)", types.ReasonUnknownFunction, "proportional_minutes"},
		{"nested proportional minutes", "proportional_minutes(solar(16.1, before_noon), (3))", types.ReasonUnknownFunction, "proportional_minutes"},
		{"chained offsets", "sunrise - 10min + 5min", types.ReasonChainedOperations, ""},
		{"unknown function", "foo(1,2)", types.ReasonUnknownFunction, "foo"},
		{"unknown bare name", "banana", types.ReasonUnknownSyntax, "banana"},
		{"unknown offset base", "banana + 5min", types.ReasonUnknownSyntax, "banana"},
		{"space after sigil", "@ banana", types.ReasonUnknownSyntax, "banana"},
		{"midpoint", "midpoint(sunrise, sunset)", types.ReasonMidpoint, "midpoint"},
		{"conditional", "if (latitude > 60) { sunrise } else { sunset }", types.ReasonConditional, ""},
		{"advanced direction", "solar(16.1, before_geometric_sunrise)", types.ReasonUnknownSyntax, "before_geometric_sunrise"},
		{"fractional minutes", "sunrise + 1.5min", types.ReasonUnknownSyntax, ""},
		{"hours unit", "sunrise + 1hr", types.ReasonUnknownSyntax, ""},
		{"offset on solar", "solar(16.1, before_noon) - 5min", types.ReasonUnknownSyntax, ""},
		{"trailing tokens", "solar(16.1, before_noon) solar", types.ReasonUnknownSyntax, ""},
		{"custom bounds without sigil", "proportional_hours(4, custom(alos, tzais))", types.ReasonUnknownSyntax, "alos"},
		{"comment", "sunrise // dawn", types.ReasonUnknownSyntax, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)

			var ce *types.ComplexityError
			require.True(t, errors.As(err, &ce), "error must be a *types.ComplexityError, got %T", err)
			assert.Equal(t, tt.reason, ce.Reason, "detail: %s", ce.Detail)
			assert.Equal(t, tt.ident, ce.Name)
			assert.NotEmpty(t, ce.Detail)
		})
	}
}

func TestAdvancedBaseIsNeverReadAsEditableBase(t *testing.T) {
	tree := ParseDetailed("proportional_hours(3, mga_72)")
	require.NotNil(t, tree.Err)
	assert.Equal(t, "advanced_base", tree.Production)
	assert.Contains(t, tree.Err.Detail, "mga_72")
	assert.Nil(t, tree.State.Method)
}

func TestReferenceSigilFidelity(t *testing.T) {
	const text = "@alos_custom - 20min"

	got, err := Parse(text)
	require.NoError(t, err)

	offset, ok := got.Method.(types.FixedOffset)
	require.True(t, ok, "want FixedOffset, got %T", got.Method)
	assert.True(t, offset.Base.IsFormula)
	assert.Equal(t, "alos_custom", offset.Base.Name)
	assert.Equal(t, text, generator.Generate(got))
}

func TestBareNamesNeedSigilOrVocabulary(t *testing.T) {
	_, err := Parse("banana")
	assert.Error(t, err)

	got, err := Parse("@banana")
	require.NoError(t, err)
	assert.Equal(t, types.FixedReference{Zman: types.FormulaRef("banana")}, got.Method)
}

func TestParseErrorIsNeverTypedNil(t *testing.T) {
	_, err := Parse("sunrise")
	assert.NoError(t, err)
	assert.True(t, err == nil)
}

func TestTelemetry(t *testing.T) {
	tree := ParseDetailed("sunrise - 10min + 5min", WithTelemetryTiming())
	require.NotNil(t, tree.Telemetry)

	assert.Equal(t, 6, tree.Telemetry.TokenCount)
	assert.Equal(t, len(productions), tree.Telemetry.Attempts)
	assert.True(t, tree.Telemetry.Classified)
	assert.Equal(t, "classify", tree.Production)
	assert.GreaterOrEqual(t, tree.Telemetry.TotalTime, tree.Telemetry.MatchTime)

	tree = ParseDetailed("solar(16.1, before_noon)", WithTelemetryBasic())
	assert.Equal(t, 1, tree.Telemetry.Attempts)
	assert.False(t, tree.Telemetry.Classified)
	assert.Zero(t, tree.Telemetry.TotalTime)

	assert.Nil(t, ParseDetailed("sunrise").Telemetry)
}

func TestDebugEvents(t *testing.T) {
	tree := ParseDetailed("sunrise", WithDebugPaths())

	var events []string
	for _, e := range tree.DebugEvents {
		events = append(events, e.Event)
	}
	want := []string{
		"try_solar",
		"try_proportional_hours",
		"try_advanced_base",
		"try_custom_bounds",
		"try_proportional_minutes",
		"try_fixed_offset",
		"try_reference",
		"match_reference",
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("debug events mismatch (-want +got):\n%s", diff)
	}

	detailed := ParseDetailed("banana", WithDebugDetailed())
	var misses int
	for _, e := range detailed.DebugEvents {
		if strings.HasPrefix(e.Event, "miss_") {
			misses++
		}
	}
	assert.Equal(t, len(productions), misses)
	assert.Equal(t, "classify", detailed.DebugEvents[len(detailed.DebugEvents)-1].Event)

	assert.Nil(t, ParseDetailed("sunrise").DebugEvents)
}

func TestParseTokensMatchesParse(t *testing.T) {
	for _, input := range []string{"sunrise + 5min", "midpoint(a, b)", "@x"} {
		want := ParseDetailed(input)
		got := ParseTokens(want.Source, want.Tokens)
		assert.Equal(t, want.Production, got.Production, input)
		assert.Equal(t, want.Err, got.Err, input)
	}
}
