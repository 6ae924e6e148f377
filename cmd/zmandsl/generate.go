package main

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aledsdavies/zmandsl/core/types"
	"github.com/aledsdavies/zmandsl/runtime/editor"
)

// generateResult is the JSON form of generated text
type generateResult struct {
	Text        string `json:"text"`
	Fingerprint string `json:"fingerprint"`
	Canonical   []byte `json:"canonical"` // CBOR envelope, base64 in JSON
}

func newGenerateCmd(opts *options) *cobra.Command {
	var canonical bool

	cmd := &cobra.Command{
		Use:   "generate [state-json]",
		Short: "Write formula text for a builder state",
		Long: `Validate a builder state given as JSON and print the canonical formula text.

With --canonical the input is the base64 CBOR envelope printed by
'zmandsl generate --json'.

Example:
  zmandsl generate '{"method":"solar","degrees":16.1,"direction":"before_sunrise"}'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := opts.readInput(args)
			if err != nil {
				return err
			}
			return runGenerate(opts, []byte(data), canonical)
		},
	}

	cmd.Flags().BoolVar(&canonical, "canonical", false, "Input is a base64 canonical envelope instead of JSON")
	return cmd
}

func decodeState(data []byte, canonical bool) (types.State, error) {
	if !canonical {
		return types.DecodeJSON(data)
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(data)))
	if err != nil {
		return types.State{}, fmt.Errorf("%w: %v", types.ErrInvalidState, err)
	}
	return types.UnmarshalCanonical(raw)
}

func runGenerate(opts *options, data []byte, canonical bool) error {
	state, err := decodeState(data, canonical)
	if errors.Is(err, types.ErrNewerGrammar) {
		return &CLIError{
			Type:    "state",
			Message: "builder state was written by a newer grammar",
			Details: err.Error(),
			Hint:    "upgrade zmandsl to read this state",
		}
	}
	if err != nil {
		return &CLIError{
			Type:    "state",
			Message: "builder state does not match the schema",
			Details: err.Error(),
			Hint:    "run 'zmandsl parse --json <formula>' to see a valid state",
		}
	}

	ev := editor.Evaluate(state)
	if len(ev.ValidationErrors) > 0 {
		lines := make([]string, len(ev.ValidationErrors))
		for i, e := range ev.ValidationErrors {
			lines[i] = "  " + e.Error()
		}
		return &CLIError{
			Type:    "state",
			Message: "builder state is not valid",
			Details: strings.Join(lines, "\n"),
		}
	}

	if !opts.asJSON {
		_, err := fmt.Fprintln(opts.stdout, ev.GeneratedText)
		return err
	}

	fp, err := types.Fingerprint(state)
	if err != nil {
		return err
	}
	env, err := state.MarshalCanonical()
	if err != nil {
		return err
	}
	enc := json.NewEncoder(opts.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(generateResult{Text: ev.GeneratedText, Fingerprint: fp, Canonical: env})
}
