// Package vocab is the closed vocabulary of the formula language.
//
// Every table here is immutable after package initialisation and is the only
// place identifiers are spelled out: the generator, the parser and the
// classifier all ask this package instead of carrying their own literals.
// Identifiers are case-sensitive lowercase snake_case.
package vocab

import "sort"

// Sigil marks a reference to another published formula.
const Sigil = "@"

// MinuteUnit is the only duration unit the visual editor writes.
const MinuteUnit = "min"

// Keywords of the conditional form. They never name a primitive or function.
const (
	KeywordIf   = "if"
	KeywordElse = "else"
)

// Function names with dedicated grammar productions or classifier rules.
const (
	FuncSolar               = "solar"
	FuncSeasonalSolar       = "seasonal_solar"
	FuncProportionalHours   = "proportional_hours"
	FuncProportionalMinutes = "proportional_minutes"
	FuncCustom              = "custom"
	FuncMidpoint            = "midpoint"
)

// DefaultPrimitive is the base time of a builder state with no method chosen.
const DefaultPrimitive = "visible_sunrise"

var primitives = map[string]bool{
	"visible_sunrise":   true,
	"visible_sunset":    true,
	"geometric_sunrise": true,
	"geometric_sunset":  true,
	"solar_noon":        true,
	"solar_midnight":    true,
	"civil_dawn":        true,
	"civil_dusk":        true,
	"nautical_dawn":     true,
	"nautical_dusk":     true,
	"astronomical_dawn": true,
	"astronomical_dusk": true,
}

// aliases are accepted spellings kept for formulas written before the
// visible/geometric split.
var aliases = map[string]string{
	"sunrise": "visible_sunrise",
	"sunset":  "visible_sunset",
}

// functions maps every function name the DSL defines to whether the
// classifier treats it as known. midpoint and the selection helpers are real
// DSL functions but have no visual representation, so they are reported as
// unknown to the editor.
var functions = map[string]bool{
	FuncSolar:               true,
	FuncSeasonalSolar:       true,
	FuncProportionalHours:   true,
	FuncProportionalMinutes: true,
	FuncCustom:              true,
	FuncMidpoint:            false,
	"first_valid":           false,
	"earlier_of":            false,
	"later_of":              false,
}

// Direction is one solar() direction keyword.
type Direction struct {
	Name   string // DSL spelling
	Editor string // visual editor value, empty when not editable
}

var directions = []Direction{
	{Name: "before_visible_sunrise", Editor: "before_sunrise"},
	{Name: "after_visible_sunrise"},
	{Name: "before_visible_sunset"},
	{Name: "after_visible_sunset", Editor: "after_sunset"},
	{Name: "before_geometric_sunrise"},
	{Name: "after_geometric_sunrise"},
	{Name: "before_geometric_sunset"},
	{Name: "after_geometric_sunset"},
	{Name: "before_noon", Editor: "before_noon"},
	{Name: "after_noon", Editor: "after_noon"},
}

// legacyDirections are older spellings the parser still reads. The generator
// never writes them.
var legacyDirections = map[string]string{
	"before_sunrise": "before_sunrise",
	"after_sunset":   "after_sunset",
}

// Base is one proportional_hours() day definition.
type Base struct {
	Name     string
	Editable bool
}

var bases = []Base{
	{Name: "gra", Editable: true},
	{Name: "mga", Editable: true},
	{Name: "mga_60"},
	{Name: "mga_72"},
	{Name: "mga_90", Editable: true},
	{Name: "mga_96"},
	{Name: "mga_120"},
	{Name: "mga_72_zmanis"},
	{Name: "mga_90_zmanis"},
	{Name: "mga_96_zmanis"},
	{Name: "mga_16_1"},
	{Name: "mga_18"},
	{Name: "mga_19_8"},
	{Name: "mga_26"},
	{Name: "baal_hatanya", Editable: true},
	{Name: "ateret_torah"},
	{Name: FuncCustom, Editable: true},
}

// IsPrimitive reports whether name is a primitive or one of its aliases.
func IsPrimitive(name string) bool {
	if primitives[name] {
		return true
	}
	_, ok := aliases[name]
	return ok
}

// Canonical resolves an alias to the primitive it stands for.
func Canonical(name string) string {
	if c, ok := aliases[name]; ok {
		return c
	}
	return name
}

// IsKeyword reports whether name is reserved by the conditional form.
func IsKeyword(name string) bool {
	return name == KeywordIf || name == KeywordElse
}

// IsFunction reports whether name is any function the DSL defines.
func IsFunction(name string) bool {
	_, ok := functions[name]
	return ok
}

// IsKnownFunction reports whether name belongs to the set the classifier
// treats as known.
func IsKnownFunction(name string) bool {
	return functions[name]
}

// LookupDirection returns the solar direction spelled name, including legacy
// spellings.
func LookupDirection(name string) (Direction, bool) {
	for _, d := range directions {
		if d.Name == name {
			return d, true
		}
	}
	if editor, ok := legacyDirections[name]; ok {
		return Direction{Name: name, Editor: editor}, true
	}
	return Direction{}, false
}

// DirectionFor returns the DSL spelling the generator writes for an editor
// direction value.
func DirectionFor(editor string) (string, bool) {
	for _, d := range directions {
		if d.Editor != "" && d.Editor == editor {
			return d.Name, true
		}
	}
	return "", false
}

// LookupBase returns the proportional base spelled name.
func LookupBase(name string) (Base, bool) {
	for _, b := range bases {
		if b.Name == name {
			return b, true
		}
	}
	return Base{}, false
}

// Primitives returns all canonical primitive names in sorted order.
func Primitives() []string {
	return sortedKeys(primitives)
}

// Aliases returns alias → primitive pairs.
func Aliases() map[string]string {
	out := make(map[string]string, len(aliases))
	for k, v := range aliases {
		out[k] = v
	}
	return out
}

// Functions returns all function names in sorted order.
func Functions() []string {
	names := make([]string, 0, len(functions))
	for name := range functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Directions returns every solar direction in declaration order.
func Directions() []Direction {
	return append([]Direction(nil), directions...)
}

// Bases returns every proportional base in declaration order.
func Bases() []Base {
	return append([]Base(nil), bases...)
}

// EditableBases returns the bases the visual editor can select.
func EditableBases() []string {
	var names []string
	for _, b := range bases {
		if b.Editable {
			names = append(names, b.Name)
		}
	}
	return names
}

func sortedKeys(m map[string]bool) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
