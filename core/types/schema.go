package types

import (
	"github.com/aledsdavies/zmandsl/core/vocab"
)

// JSONSchema represents a JSON Schema Draft 2020-12 document
type JSONSchema map[string]any

// identifierPattern matches a snake_case identifier with an optional sigil.
const identifierPattern = `^@?[a-z][a-z0-9_]*$`

// KeyPattern matches a formula key stored without its sigil.
const KeyPattern = `^[a-z][a-z0-9_]*$`

// Upper bounds the editor accepts for angles and proportional hours.
const (
	MaxDegrees = 90
	MaxHours   = 12
)

// StateSchema returns the JSON Schema for the wire form of State. Enumerations
// come from the vocabulary so the schema cannot drift from the grammar.
func StateSchema() JSONSchema {
	methods := make([]any, 0, len(methodNames))
	for _, k := range []MethodKind{MethodNone, MethodSolar, MethodFixedOffset, MethodProportionalHours, MethodFixedReference} {
		methods = append(methods, k.String())
	}

	solarDirections := make([]any, 0, 4)
	for _, d := range SolarDirections() {
		solarDirections = append(solarDirections, string(d))
	}

	bases := make([]any, 0, 5)
	for _, b := range ProportionalBases() {
		bases = append(bases, string(b))
	}

	primitives := make([]any, 0, 14)
	for _, p := range vocab.Primitives() {
		primitives = append(primitives, p)
	}
	for alias := range vocab.Aliases() {
		primitives = append(primitives, alias)
	}

	return JSONSchema{
		"$schema":              "https://json-schema.org/draft/2020-12/schema",
		"title":                "BuilderState",
		"type":                 "object",
		"additionalProperties": false,
		"required":             []any{"method"},
		"properties": JSONSchema{
			"method":              JSONSchema{"enum": methods},
			"base_time":           JSONSchema{"enum": primitives},
			"degrees":             JSONSchema{"type": "number"},
			"direction":           JSONSchema{"type": "string"},
			"minutes":             JSONSchema{"type": "integer"},
			"offset_base":         formulaKeySchema(),
			"offset_base_is_zman": JSONSchema{"type": "boolean"},
			"hours":               JSONSchema{"type": "number"},
			"base":                JSONSchema{"type": "string"},
			"custom_start":        formulaKeySchema(),
			"custom_end":          formulaKeySchema(),
			"zman_key":            JSONSchema{"type": "string", "pattern": identifierPattern, "not": JSONSchema{"enum": reservedKeys(true)}},
		},
		"allOf": []any{
			whenMethod(MethodSolar, JSONSchema{
				"required": []any{"degrees", "direction"},
				"properties": JSONSchema{
					"degrees":   JSONSchema{"exclusiveMinimum": 0, "maximum": MaxDegrees},
					"direction": JSONSchema{"enum": solarDirections},
				},
			}),
			whenMethod(MethodFixedOffset, JSONSchema{
				"required": []any{"minutes", "direction", "offset_base"},
				"properties": JSONSchema{
					"minutes":   JSONSchema{"minimum": 0},
					"direction": JSONSchema{"enum": []any{string(Before), string(After)}},
				},
			}),
			whenMethod(MethodProportionalHours, JSONSchema{
				"required": []any{"hours", "base"},
				"properties": JSONSchema{
					"hours": JSONSchema{"exclusiveMinimum": 0, "maximum": MaxHours},
					"base":  JSONSchema{"enum": bases},
				},
				"if": JSONSchema{
					"properties": JSONSchema{"base": JSONSchema{"const": string(BaseCustom)}},
				},
				"then": JSONSchema{"required": []any{"custom_start", "custom_end"}},
			}),
			whenMethod(MethodFixedReference, JSONSchema{
				"required": []any{"zman_key"},
			}),
		},
	}
}

// formulaKeySchema matches a sigil-free formula key that is not a keyword
func formulaKeySchema() JSONSchema {
	return JSONSchema{
		"type":    "string",
		"pattern": KeyPattern,
		"not":     JSONSchema{"enum": reservedKeys(false)},
	}
}

// reservedKeys lists the keywords a formula key cannot be, optionally with
// their sigil spellings
func reservedKeys(withSigil bool) []any {
	keys := []any{vocab.KeywordIf, vocab.KeywordElse}
	if withSigil {
		keys = append(keys, vocab.Sigil+vocab.KeywordIf, vocab.Sigil+vocab.KeywordElse)
	}
	return keys
}

func whenMethod(kind MethodKind, then JSONSchema) JSONSchema {
	return JSONSchema{
		"if": JSONSchema{
			"properties": JSONSchema{"method": JSONSchema{"const": kind.String()}},
		},
		"then": then,
	}
}
