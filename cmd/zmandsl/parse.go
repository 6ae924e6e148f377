package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aledsdavies/zmandsl/core/types"
	"github.com/aledsdavies/zmandsl/runtime/editor"
	"github.com/aledsdavies/zmandsl/runtime/parser"
)

// parseResult is the JSON form of one parsed formula
type parseResult struct {
	Formula          string                   `json:"formula"`
	Mode             string                   `json:"mode"`
	Visual           bool                     `json:"visual"`
	State            *types.State             `json:"state,omitempty"`
	Generated        string                   `json:"generated,omitempty"`
	Fingerprint      string                   `json:"fingerprint,omitempty"`
	ValidationErrors []editor.ValidationError `json:"validation_errors,omitempty"`
	Classification   *types.ComplexityError   `json:"classification,omitempty"`
}

func newParseCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "parse [formula]",
		Short: "Recover editor state from formula text",
		Long: `Parse a formula and print the builder state the visual editor would show,
or the reason the formula needs advanced mode.

The formula is read from the arguments, --file, or stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := opts.readInput(args)
			if err != nil {
				return err
			}
			return runParse(opts, text)
		},
	}
}

func runParse(opts *options, text string) error {
	if opts.debug {
		writeDebugEvents(opts.stderr, parser.ParseDetailed(text, parser.WithDebugDetailed(), parser.WithTelemetryTiming()))
	}

	mode := opts.editorMode()

	// Parsing nothing is an error in either mode; editor.Load would open a
	// fresh state instead.
	var ce *types.ComplexityError
	if _, err := parser.Parse(text); errors.As(err, &ce) && ce.Reason == types.ReasonEmptyFormula {
		result := parseResult{Formula: text, Mode: mode.String(), Classification: ce}
		if err := writeParse(opts, result); err != nil {
			return err
		}
		return errReported
	}

	sess := editor.Load(text, mode)

	result := parseResult{
		Formula:          text,
		Mode:             sess.Mode.String(),
		Visual:           sess.CanEditVisually(),
		Generated:        sess.GeneratedText,
		ValidationErrors: sess.ValidationErrors,
		Classification:   sess.Reason,
	}
	if sess.CanEditVisually() {
		state := sess.State
		result.State = &state
		fp, err := types.Fingerprint(state)
		if err != nil {
			return err
		}
		result.Fingerprint = fp
	}

	if err := writeParse(opts, result); err != nil {
		return err
	}

	if mode == editor.ModeVisual && (!result.Visual || len(result.ValidationErrors) > 0) {
		return errReported
	}
	return nil
}

func writeParse(opts *options, result parseResult) error {
	if opts.asJSON {
		enc := json.NewEncoder(opts.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	writeParseResult(opts.stdout, result, opts.useColor())
	return nil
}

func writeParseResult(w io.Writer, r parseResult, useColor bool) {
	if r.Classification != nil {
		formatClassification(w, r.Classification, useColor)
		return
	}

	_, _ = fmt.Fprintf(w, "%s %s\n", Colorize("method:     ", ColorBlue, useColor), r.State.Kind())
	_, _ = fmt.Fprintf(w, "%s %s\n", Colorize("state:      ", ColorBlue, useColor), r.State)
	if r.Generated != "" {
		_, _ = fmt.Fprintf(w, "%s %s\n", Colorize("canonical:  ", ColorBlue, useColor), r.Generated)
	}
	_, _ = fmt.Fprintf(w, "%s %s\n", Colorize("fingerprint:", ColorGray, useColor), r.Fingerprint)
	for _, e := range r.ValidationErrors {
		_, _ = fmt.Fprintf(w, "%s %s\n", Colorize("invalid:    ", ColorRed, useColor), e)
	}
}

func writeDebugEvents(w io.Writer, tree *parser.ParseTree) {
	for _, e := range tree.DebugEvents {
		_, _ = fmt.Fprintf(w, "[debug] %-26s pos=%d %s\n", e.Event, e.TokenPos, e.Context)
	}
	if t := tree.Telemetry; t != nil {
		_, _ = fmt.Fprintf(w, "[debug] tokens=%d attempts=%d lex=%s match=%s total=%s\n",
			t.TokenCount, t.Attempts, t.LexTime, t.MatchTime, t.TotalTime)
	}
}
