package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// watchDebounce collapses the burst of events one editor save produces
const watchDebounce = 150 * time.Millisecond

func newWatchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Re-check a formula file every time it is saved",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.file == "" || opts.file == "-" {
				return &CLIError{
					Type:    "watch",
					Message: "watch needs a file",
					Hint:    "pass one with --file formulas.txt",
				}
			}
			return watchFile(cmd.Context(), opts.file, watchDebounce, func() error {
				return runCheckFile(opts)
			})
		},
	}
}

// runCheckFile checks --file once. A failing batch is reported, not fatal.
func runCheckFile(opts *options) error {
	f, err := os.Open(opts.file)
	if err != nil {
		return fmt.Errorf("error opening file %s: %w", opts.file, err)
	}
	defer func() { _ = f.Close() }()

	report, err := checkFormulas(f, opts.editorMode())
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(opts.stdout, "%s %s\n", Colorize("==>", ColorCyan, opts.useColor()), opts.file)
	return writeReport(opts, report)
}

// watchFile calls run once, then again after each debounced write to path,
// until ctx is done. The parent directory is watched so editors that save
// by rename are still seen.
func watchFile(ctx context.Context, path string, debounce time.Duration, run func() error) error {
	path = filepath.Clean(path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	if err := run(); err != nil {
		return err
	}

	// nil while idle; each matching event restarts the wait
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			pending = time.After(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch error: %w", err)

		case <-pending:
			pending = nil
			if err := run(); err != nil {
				return err
			}
		}
	}
}
