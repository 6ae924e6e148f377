package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// schemaURL is the in-memory resource name of the state schema
const schemaURL = "schema://builder-state.json"

var (
	compiledOnce   sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// stateValidator compiles StateSchema once. The schema is a package
// constant, so a compile failure is reported to every caller.
func stateValidator() (*jsonschema.Schema, error) {
	compiledOnce.Do(func() {
		compiledSchema, compileErr = compileSchema(StateSchema())
	})
	return compiledSchema, compileErr
}

func compileSchema(schema JSONSchema) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	// The schema is self-contained; refuse to resolve anything else.
	compiler.LoadURL = func(url string) (io.ReadCloser, error) {
		return nil, fmt.Errorf("$ref not allowed: %s", url)
	}

	schemaJSON, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, err
	}
	return compiler.Compile(schemaURL)
}

// ValidateJSON checks raw builder-state JSON against StateSchema
func ValidateJSON(data []byte) error {
	validator, err := stateValidator()
	if err != nil {
		return fmt.Errorf("state schema compilation failed: %w", err)
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	if err := validator.Validate(doc); err != nil {
		return convertValidationError(err)
	}
	return nil
}

// DecodeJSON validates data against the schema and decodes it
func DecodeJSON(data []byte) (State, error) {
	if err := ValidateJSON(data); err != nil {
		return State{}, err
	}
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return State{}, err
	}
	return s, nil
}

// convertValidationError flattens the schema error tree into one line per
// failing leaf, sorted for stable output.
func convertValidationError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	var leaves []string
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			loc := e.InstanceLocation
			if loc == "" {
				loc = "/"
			}
			leaves = append(leaves, fmt.Sprintf("%s: %s", loc, e.Message))
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(ve)
	sort.Strings(leaves)

	return fmt.Errorf("%w: %s", ErrInvalidState, strings.Join(leaves, "; "))
}
