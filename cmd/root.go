package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/deadfile/cmd/watch"
	"github.com/LegacyCodeHQ/deadfile/cmd/why"
	"github.com/LegacyCodeHQ/deadfile/config"
	"github.com/LegacyCodeHQ/deadfile/deadscan"
	"github.com/LegacyCodeHQ/deadfile/printer"
)

// version is set via build-time ldflags
var version = "dev"

// buildDate is set via build-time ldflags
var buildDate = "unknown"

// commit is set via build-time ldflags
var commit = "unknown"

var ignorePatterns []string
var noColor bool

// copyToClipboard is a persistent flag to enable automatic clipboard copying
var copyToClipboard bool

// rootCmd represents the base command; the scan is the primary verb, so it
// runs directly on the root.
var rootCmd = &cobra.Command{
	Use:   "deadfile [paths...]",
	Short: "Find Python files nothing imports and nothing runs",
	Long: `Deadfile scans a Python project for files that are never imported by any
other file and do not act as an entrypoint - dead files that are safe to
delete.

The import graph is built over the whole project root (located by walking up
to setup.py, pyproject.toml or .git), while only the given paths are
evaluated as deletion candidates.

Use 'deadfile --help' to see all available commands, or 'deadfile <command> --help'
for detailed information about a specific command.`,
	Version:       version,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if noColor {
			color.NoColor = true
		}

		conv, err := config.Load(ConfigDirFor(args[0]))
		if err != nil {
			return err
		}

		report, err := deadscan.NewScanner(conv).Scan(args, ignorePatterns)
		if err != nil {
			return err
		}

		p := printer.New()
		p.Report(report)

		// Copy to clipboard if flag is enabled
		if copyToClipboard {
			if err := clipboard.WriteAll(p.Plain(report)); err != nil {
				return fmt.Errorf("failed to copy to clipboard: %w", err)
			}
			fmt.Println("\n✅ Content copied to your clipboard.")
		}

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Register subcommands
	rootCmd.AddCommand(why.Cmd)
	rootCmd.AddCommand(watch.Cmd)

	// Initialize annotations for version template
	if rootCmd.Annotations == nil {
		rootCmd.Annotations = make(map[string]string)
	}
	rootCmd.Annotations["buildDate"] = buildDate
	rootCmd.Annotations["commit"] = commit

	// Update version field dynamically (in case it was set via ldflags)
	rootCmd.Version = version

	// Customize version template to show additional build info
	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
Build date: {{printf "%s" (index .Annotations "buildDate")}}
Commit: {{printf "%s" (index .Annotations "commit")}}
`)

	rootCmd.Flags().StringSliceVarP(&ignorePatterns, "ignore", "I", nil, "Paths or glob patterns to skip when searching (repeatable)")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	// Add persistent clipboard flag
	rootCmd.PersistentFlags().BoolVarP(&copyToClipboard, "clipboard", "b", false, "Automatically copy output to clipboard")
}

// ConfigDirFor returns the directory to search for a .deadfile.yaml, given
// the first target path.
func ConfigDirFor(target string) string {
	if info, err := os.Stat(target); err == nil && !info.IsDir() {
		return filepath.Dir(target)
	}
	return target
}
