package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aledsdavies/zmandsl/core/vocab"
)

// vocabEntry is one row of the vocab listing
type vocabEntry struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Syntax  string `json:"syntax,omitempty"`
	Summary string `json:"summary,omitempty"`
	Visual  bool   `json:"visual"`
}

func newVocabCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:       "vocab [primitive|function|base|direction]",
		Short:     "List the names the formula language knows",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"primitive", "function", "base", "direction"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := ""
			if len(args) == 1 {
				kind = args[0]
			}
			return writeVocab(opts, vocabEntries(kind))
		},
	}
}

// vocabEntries returns documented names of kind, or everything when kind is
// empty. Directions have no reference docs and are listed from the registry.
func vocabEntries(kind string) []vocabEntry {
	var out []vocabEntry
	if kind != "direction" {
		for _, d := range vocab.Docs(kind) {
			out = append(out, vocabEntry{
				Name:    d.Name,
				Kind:    d.Kind,
				Syntax:  d.Syntax,
				Summary: d.Summary,
				Visual:  visualName(d),
			})
		}
	}
	if kind == "" || kind == "direction" {
		for _, d := range vocab.Directions() {
			e := vocabEntry{Name: d.Name, Kind: "direction", Visual: d.Editor != ""}
			if d.Editor != "" {
				e.Summary = "editor value " + d.Editor
			}
			out = append(out, e)
		}
	}
	return out
}

// visualName reports whether the visual editor can produce the name
func visualName(d vocab.Doc) bool {
	switch d.Kind {
	case "primitive":
		return true
	case "base":
		b, ok := vocab.LookupBase(d.Name)
		return ok && b.Editable
	case "function":
		return d.Name == vocab.FuncSolar || d.Name == vocab.FuncProportionalHours || d.Name == vocab.FuncCustom
	}
	return false
}

func writeVocab(opts *options, entries []vocabEntry) error {
	if opts.asJSON {
		enc := json.NewEncoder(opts.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	useColor := opts.useColor()
	tw := tabwriter.NewWriter(opts.stdout, 0, 4, 2, ' ', 0)
	for _, e := range entries {
		name := e.Name
		if e.Syntax != "" {
			name = e.Syntax
		}
		mark := " "
		if e.Visual {
			mark = Colorize("*", ColorGreen, useColor)
		}
		_, _ = fmt.Fprintf(tw, "%s %s\t%s\t%s\n", mark, name, e.Kind, e.Summary)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(opts.stdout, "\n* available in the visual editor")
	return err
}
