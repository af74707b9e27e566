package watch

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/deadfile/config"
	"github.com/LegacyCodeHQ/deadfile/deadscan"
	"github.com/LegacyCodeHQ/deadfile/printer"
)

const debounceInterval = 300 * time.Millisecond

var skippedDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".tox":         true,
	".venv":        true,
	"venv":         true,
	"__pycache__":  true,
	".idea":        true,
	".vscode":      true,
	"node_modules": true,
}

type watchOptions struct {
	ignorePatterns []string
}

// Cmd represents the watch command.
var Cmd = NewCommand()

// NewCommand returns a new watch command instance.
func NewCommand() *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Re-run the dead file scan whenever sources change.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, opts, args)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.ignorePatterns, "ignore", "I", nil, "Paths or glob patterns to skip when searching (repeatable)")

	return cmd
}

func runWatch(cmd *cobra.Command, opts *watchOptions, targets []string) error {
	conv, err := config.Load(dirFor(targets[0]))
	if err != nil {
		return err
	}

	scanner := deadscan.NewScanner(conv)
	project, err := scanner.Project(targets[0])
	if err != nil {
		return err
	}

	p := printer.New()
	rescan := func() {
		report, scanErr := scanner.Scan(targets, opts.ignorePatterns)
		if scanErr != nil {
			p.Warning(scanErr.Error())
			return
		}
		p.Report(report)
	}

	rescan()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return watchAndRescan(ctx, project.Root(), conv.SourceSuffix, rescan)
}

func watchAndRescan(ctx context.Context, root, sourceSuffix string, rescan func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := addWatchDirs(watcher, root); err != nil {
		return fmt.Errorf("failed to watch directories: %w", err)
	}

	var debounceTimer *time.Timer
	var debounceC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			// New directories need their own watch before events arrive
			// from inside them.
			if event.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
					if !skippedDirs[filepath.Base(event.Name)] {
						_ = addWatchDirs(watcher, event.Name)
					}
				}
			}

			if !strings.HasSuffix(event.Name, sourceSuffix) {
				continue
			}

			if debounceTimer == nil {
				debounceTimer = time.NewTimer(debounceInterval)
				debounceC = debounceTimer.C
			} else {
				debounceTimer.Reset(debounceInterval)
			}

		case <-debounceC:
			debounceTimer = nil
			debounceC = nil
			rescan()

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Warning: watch error: %v\n", watchErr)
		}
	}
}

// addWatchDirs registers root and all of its non-skipped subdirectories.
func addWatchDirs(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if skippedDirs[d.Name()] {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

// dirFor returns the directory of path when it names a file.
func dirFor(path string) string {
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return filepath.Dir(path)
	}
	return path
}
