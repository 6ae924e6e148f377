package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aledsdavies/zmandsl/core/types"
	"github.com/aledsdavies/zmandsl/runtime/editor"
)

// lineResult is the outcome for one formula in a batch
type lineResult struct {
	Line           int                    `json:"line"`
	Formula        string                 `json:"formula"`
	Visual         bool                   `json:"visual"`
	Invalid        bool                   `json:"invalid,omitempty"`
	Classification *types.ComplexityError `json:"classification,omitempty"`
}

// checkReport summarises a batch of formulas
type checkReport struct {
	Total   int            `json:"total"`
	Visual  int            `json:"visual"`
	Invalid int            `json:"invalid"`
	Reasons map[string]int `json:"reasons"`
	Lines   []lineResult   `json:"lines"`
}

// failed reports whether the batch has formulas the mode cannot accept
func (r *checkReport) failed(mode editor.Mode) bool {
	if r.Invalid > 0 {
		return true
	}
	return mode == editor.ModeVisual && r.Visual < r.Total
}

func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Classify every formula in a file, one per line",
		Long: `Check reads one formula per line from --file or stdin and reports which
ones the visual editor can open, with per-reason counts for the rest.

Blank lines are skipped. In visual mode the command fails when any formula
needs advanced mode.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reader, closeFunc, err := opts.inputReader()
			if err != nil {
				return err
			}
			defer func() { _ = closeFunc() }()

			report, err := checkFormulas(reader, opts.editorMode())
			if err != nil {
				return err
			}
			if err := writeReport(opts, report); err != nil {
				return err
			}
			if report.failed(opts.editorMode()) {
				return errReported
			}
			return nil
		},
	}
}

// maxFormulaLine bounds one line of a batch file. bufio's default of 64 KiB
// is too small for generated advanced formulas.
const maxFormulaLine = 4 << 20

// checkFormulas loads every non-blank line in mode
func checkFormulas(r io.Reader, mode editor.Mode) (*checkReport, error) {
	report := &checkReport{Reasons: make(map[string]int)}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxFormulaLine)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		sess := editor.Load(text, mode)
		res := lineResult{
			Line:           lineNo,
			Formula:        text,
			Visual:         sess.CanEditVisually(),
			Invalid:        len(sess.ValidationErrors) > 0,
			Classification: sess.Reason,
		}

		report.Total++
		if res.Visual {
			report.Visual++
		} else {
			report.Reasons[sess.Reason.Reason.String()]++
		}
		if res.Invalid {
			report.Invalid++
		}
		report.Lines = append(report.Lines, res)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading formulas: %w", err)
	}
	return report, nil
}

func writeReport(opts *options, report *checkReport) error {
	if opts.asJSON {
		enc := json.NewEncoder(opts.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	useColor := opts.useColor()
	w := opts.stdout
	for _, l := range report.Lines {
		switch {
		case l.Invalid:
			_, _ = fmt.Fprintf(w, "%4d: %s %s\n", l.Line, Colorize("invalid ", ColorRed, useColor), l.Formula)
		case l.Visual:
			_, _ = fmt.Fprintf(w, "%4d: %s %s\n", l.Line, Colorize("visual  ", ColorGreen, useColor), l.Formula)
		default:
			_, _ = fmt.Fprintf(w, "%4d: %s %s\n", l.Line, Colorize("advanced", ColorYellow, useColor), l.Formula)
			_, _ = fmt.Fprintf(w, "      %s: %s\n", l.Classification.Reason, l.Classification.Detail)
		}
	}

	_, _ = fmt.Fprintf(w, "\n%d formulas: %d visual, %d advanced", report.Total, report.Visual, report.Total-report.Visual)
	if report.Invalid > 0 {
		_, _ = fmt.Fprintf(w, ", %d invalid", report.Invalid)
	}
	_, _ = fmt.Fprintln(w)

	reasons := make([]string, 0, len(report.Reasons))
	for r := range report.Reasons {
		reasons = append(reasons, r)
	}
	sort.Strings(reasons)
	for _, r := range reasons {
		_, _ = fmt.Fprintf(w, "  %-20s %d\n", r, report.Reasons[r])
	}
	return nil
}
