package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aledsdavies/zmandsl/core/types"
)

// CLIError represents a formatted CLI error with context
type CLIError struct {
	Type    string // "input", "state", "watch"
	Message string
	Details string // Additional context
	Hint    string // How to fix it
}

// Error implements the error interface
func (e *CLIError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Details != "" {
		b.WriteString("\n")
		b.WriteString(e.Details)
	}
	if e.Hint != "" {
		b.WriteString("\n")
		b.WriteString(e.Hint)
	}
	return b.String()
}

// FormatError formats an error for CLI output with colors
func FormatError(w io.Writer, err error, useColor bool) {
	if err == nil {
		return
	}

	var cliErr *CLIError
	var ce *types.ComplexityError
	switch {
	case errors.As(err, &cliErr):
		formatCLIError(w, cliErr, useColor)
	case errors.As(err, &ce):
		formatClassification(w, ce, useColor)
	default:
		_, _ = fmt.Fprintf(w, "%s%s\n", Colorize("Error: ", ColorRed, useColor), err.Error())
	}
}

// formatCLIError formats CLI errors
func formatCLIError(w io.Writer, err *CLIError, useColor bool) {
	_, _ = fmt.Fprintf(w, "%s%s\n", Colorize("Error: ", ColorRed, useColor), err.Message)

	if err.Details != "" {
		_, _ = fmt.Fprintf(w, "\n%s\n", err.Details)
	}

	if err.Hint != "" {
		_, _ = fmt.Fprintf(w, "%s%s\n", Colorize("Hint: ", ColorYellow, useColor), err.Hint)
	}
}

// formatClassification explains why a formula needs advanced mode
func formatClassification(w io.Writer, ce *types.ComplexityError, useColor bool) {
	_, _ = fmt.Fprintf(w, "%s %s\n", Colorize("advanced:", ColorYellow, useColor), ce.Reason)
	_, _ = fmt.Fprintf(w, "  %s\n", ce.Detail)
	if len(ce.Suggestions) > 0 {
		_, _ = fmt.Fprintf(w, "  %s%s\n", Colorize("did you mean: ", ColorCyan, useColor), strings.Join(ce.Suggestions, ", "))
	}
}
