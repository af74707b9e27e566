// Package printer renders scan results. Interactive terminals get colored,
// hyperlinked output bracketed by separators plus a summary; everything else
// gets bare paths, one per line, suitable for piping.
package printer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/LegacyCodeHQ/deadfile/deadscan"
)

const defaultSeparatorWidth = 80
const separatorRune = "-"

// OSC 8 terminal hyperlink escape and string terminator.
const osc8 = "\x1b]8"
const st = "\x1b\\"

// Printer writes scan reports to an output stream.
type Printer struct {
	out         io.Writer
	errOut      io.Writer
	interactive bool
	width       int
}

// New returns a printer for stdout/stderr, detecting whether stdout is an
// interactive terminal.
func New() *Printer {
	interactive := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	width := defaultSeparatorWidth
	if interactive {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			width = w
		}
	}

	return NewForWriters(os.Stdout, os.Stderr, interactive, width)
}

// NewForWriters returns a printer with explicit streams and terminal state.
// Tests use it to pin both rendering modes.
func NewForWriters(out, errOut io.Writer, interactive bool, width int) *Printer {
	return &Printer{out: out, errOut: errOut, interactive: interactive, width: width}
}

// Report renders a scan report. Warnings always go to the error stream.
func (p *Printer) Report(report *deadscan.Report) {
	for _, warning := range report.Warnings {
		p.Warning(warning)
	}

	if !p.interactive {
		for _, dead := range report.Dead {
			fmt.Fprintln(p.out, dead)
		}
		return
	}

	p.separator()
	for _, dead := range report.Dead {
		p.deadFile(dead, filepath.Join(report.Root, dead))
	}
	p.separator()
	p.stats(len(report.Dead), report.ScannedFiles, report.Elapsed)
}

// Plain renders the report as bare paths, one per line, regardless of
// terminal state. The clipboard flag uses it.
func (p *Printer) Plain(report *deadscan.Report) string {
	var sb strings.Builder
	for _, dead := range report.Dead {
		sb.WriteString(dead)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Warning writes a diagnostic to the error stream.
func (p *Printer) Warning(msg string) {
	fmt.Fprintf(p.errOut, "Warning: %s\n", msg)
}

func (p *Printer) separator() {
	width := p.width
	if width <= 0 {
		width = defaultSeparatorWidth
	}
	color.New(color.FgCyan).Fprintln(p.out, strings.Repeat(separatorRune, width))
}

func (p *Printer) deadFile(repr, fullPath string) {
	color.New(color.FgGreen).Fprintln(p.out, hyperlink("file://"+fullPath, repr))
}

func (p *Printer) stats(deadFiles, scannedFiles int, elapsed time.Duration) {
	yellow := color.New(color.FgYellow)
	yellow.Fprintln(p.out, fmt.Sprintf("Found %s dead files", humanize.Comma(int64(deadFiles))))
	yellow.Fprintln(p.out, fmt.Sprintf("Scanned %s files in %s", humanize.Comma(int64(scannedFiles)), elapsed.Round(time.Millisecond)))
}

// hyperlink wraps text in an OSC 8 terminal hyperlink to uri.
func hyperlink(uri, text string) string {
	return fmt.Sprintf("%s;;%s%s%s%s;;%s", osc8, uri, st, text, osc8, st)
}
