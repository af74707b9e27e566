package why

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/deadfile/config"
	"github.com/LegacyCodeHQ/deadfile/deadscan"
)

type whyOptions struct {
	ignorePatterns []string
}

// Cmd represents the why command.
var Cmd = NewCommand()

// NewCommand returns a new why command instance.
func NewCommand() *cobra.Command {
	opts := &whyOptions{}

	cmd := &cobra.Command{
		Use:   "why <path>",
		Short: "List the files whose imports keep a module alive.",
		Long: `List every file in the project whose import statements resolve to the
given module or package. A file with no importers here is what the main scan
reports as dead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWhy(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringSliceVarP(&opts.ignorePatterns, "ignore", "I", nil, "Paths or glob patterns to skip when searching (repeatable)")

	return cmd
}

func runWhy(cmd *cobra.Command, opts *whyOptions, target string) error {
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return fmt.Errorf("failed to resolve path %s: %w", target, err)
	}
	if _, err := os.Stat(absTarget); err != nil {
		return fmt.Errorf("target path does not exist: %s", target)
	}

	conv, err := config.Load(dirFor(absTarget))
	if err != nil {
		return err
	}

	scanner := deadscan.NewScanner(conv)
	project, err := scanner.Project(absTarget)
	if err != nil {
		return err
	}

	// The importer graph always spans the whole project root.
	report, err := scanner.Scan([]string{project.Root()}, opts.ignorePatterns)
	if err != nil {
		return err
	}

	dotted := project.ToDotted(absTarget)
	importers := report.Graph.Importers(dotted, dotted+"."+conv.InitializerModule())
	if len(importers) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No files import %s\n", dotted)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s is imported by:\n", dotted)
	for _, importer := range importers {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", importer)
	}
	return nil
}

// dirFor returns the directory of path when it names a file.
func dirFor(path string) string {
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return filepath.Dir(path)
	}
	return strings.TrimSuffix(path, string(filepath.Separator))
}
