package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aledsdavies/zmandsl/runtime/editor"
)

// options holds the persistent flags and the streams commands write to
type options struct {
	file    string
	asJSON  bool
	noColor bool
	debug   bool
	mode    string

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// errReported means the command already printed why it failed
var errReported = errors.New("reported")

func main() {
	opts := &options{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(opts).ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			FormatError(opts.stderr, err, ShouldUseColor(opts.noColor, opts.stderr))
		}
		stop()
		os.Exit(1)
	}
}

func newRootCmd(opts *options) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "zmandsl",
		Short:         "Convert zmanim formulas between DSL text and editor state",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := editor.ParseMode(opts.mode)
			return err
		},
	}
	rootCmd.SetIn(opts.stdin)
	rootCmd.SetOut(opts.stdout)
	rootCmd.SetErr(opts.stderr)

	rootCmd.PersistentFlags().StringVarP(&opts.file, "file", "f", "", "Read input from file (- for stdin)")
	rootCmd.PersistentFlags().BoolVar(&opts.asJSON, "json", false, "Write machine-readable JSON")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Print parser debug events to stderr")
	rootCmd.PersistentFlags().StringVar(&opts.mode, "mode", "visual", "Editor mode: visual or advanced")

	rootCmd.AddCommand(
		newParseCmd(opts),
		newGenerateCmd(opts),
		newCheckCmd(opts),
		newWatchCmd(opts),
		newVocabCmd(opts),
	)
	return rootCmd
}

// editorMode returns the validated --mode value
func (o *options) editorMode() editor.Mode {
	m, _ := editor.ParseMode(o.mode)
	return m
}

func (o *options) useColor() bool {
	return ShouldUseColor(o.noColor, o.stdout)
}

// readInput returns the joined arguments, or the contents of --file, or
// stdin when neither is given
func (o *options) readInput(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	reader, closeFunc, err := o.inputReader()
	if err != nil {
		return "", err
	}
	defer func() { _ = closeFunc() }()

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("error reading input: %w", err)
	}
	return string(data), nil
}

// inputReader handles the 2 modes of input:
// 1. stdin, with -f - or no --file
// 2. file input
func (o *options) inputReader() (io.Reader, func() error, error) {
	if o.file == "" || o.file == "-" {
		return o.stdin, func() error { return nil }, nil
	}

	f, err := os.Open(o.file)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening file %s: %w", o.file, err)
	}
	return f, f.Close, nil
}
