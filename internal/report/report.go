// Package report renders validation results: an incremental console view
// that mirrors the checks as they run, and JSON/YAML encoders for
// machine-readable output.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/kidoz/zabbix-template-lint-go/internal/validator"
)

const separatorWidth = 70

const (
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiGreen  = "\x1b[32m"
	ansiCyan   = "\x1b[36m"
	ansiReset  = "\x1b[0m"
)

// Console prints the human-readable per-file report. It also implements
// validator.Progress, so check lines appear incrementally while findings
// accumulate.
type Console struct {
	w     io.Writer
	color bool
}

// NewConsole creates a console renderer writing to w.
func NewConsole(w io.Writer, color bool) *Console {
	return &Console{w: w, color: color}
}

// Writer exposes the underlying writer for structured output modes.
func (c *Console) Writer() io.Writer { return c.w }

func (c *Console) paint(color, s string) string {
	if !c.color {
		return s
	}
	return color + s + ansiReset
}

func (c *Console) separator() string {
	return strings.Repeat("=", separatorWidth)
}

// Banner prints the per-file header before validation starts.
func (c *Console) Banner(path string) {
	fmt.Fprintf(c.w, "\n%s\n", c.separator())
	fmt.Fprintf(c.w, "Validating: %s\n", path)
	fmt.Fprintf(c.w, "%s\n\n", c.separator())
}

// Sectionf implements validator.Progress.
func (c *Console) Sectionf(format string, args ...any) {
	fmt.Fprintf(c.w, "\n  "+format+"\n", args...)
}

// Stepf implements validator.Progress.
func (c *Console) Stepf(status validator.Status, format string, args ...any) {
	marker := c.paint(ansiGreen, "✓")
	if status == validator.StatusNote {
		marker = c.paint(ansiCyan, "ℹ")
	}
	fmt.Fprintf(c.w, "    %s "+format+"\n", append([]any{marker}, args...)...)
}

// Results prints the summary section for one file: errors, warnings, info
// (info only when there are no errors) and the PASS/FAIL verdict.
func (c *Console) Results(res *validator.Result) {
	errors := res.Errors()
	warnings := res.Warnings()
	info := res.Info()

	fmt.Fprintf(c.w, "\n%s\n", c.separator())
	fmt.Fprintln(c.w, "Validation Results")
	fmt.Fprintf(c.w, "%s\n\n", c.separator())

	if len(errors) > 0 {
		fmt.Fprintf(c.w, "%s (%d):\n", c.paint(ansiRed, "ERRORS"), len(errors))
		for _, msg := range errors {
			fmt.Fprintf(c.w, "  %s %s\n", c.paint(ansiRed, "✗"), msg)
		}
		fmt.Fprintln(c.w)
	}

	if len(warnings) > 0 {
		fmt.Fprintf(c.w, "%s (%d):\n", c.paint(ansiYellow, "WARNINGS"), len(warnings))
		for _, msg := range warnings {
			fmt.Fprintf(c.w, "  %s %s\n", c.paint(ansiYellow, "⚠"), msg)
		}
		fmt.Fprintln(c.w)
	}

	// Keep failing output focused: info lines only appear on clean runs.
	if len(info) > 0 && len(errors) == 0 {
		fmt.Fprintf(c.w, "%s:\n", c.paint(ansiCyan, "INFO"))
		for _, msg := range info {
			fmt.Fprintf(c.w, "  %s %s\n", c.paint(ansiCyan, "ℹ"), msg)
		}
		fmt.Fprintln(c.w)
	}

	switch {
	case len(errors) > 0:
		fmt.Fprintf(c.w, "%s with %d error(s)\n", c.paint(ansiRed, "Validation FAILED"), len(errors))
	case len(warnings) > 0:
		fmt.Fprintf(c.w, "%s with %d warning(s)\n", c.paint(ansiGreen, "Validation PASSED"), len(warnings))
	default:
		fmt.Fprintf(c.w, "%s - no issues found!\n", c.paint(ansiGreen, "Validation PASSED"))
	}
	fmt.Fprintf(c.w, "%s\n\n", c.separator())
}

// YAMLListing prints discovered YAML template files. They are listed only;
// yamllint owns their rule-checking.
func (c *Console) YAMLListing(paths []string) {
	if len(paths) == 0 {
		return
	}
	fmt.Fprintf(c.w, "\n%s\n", c.separator())
	fmt.Fprintln(c.w, "Found YAML template files (validated by yamllint):")
	fmt.Fprintf(c.w, "%s\n", c.separator())
	for _, p := range paths {
		fmt.Fprintf(c.w, "%s %s\n", c.paint(ansiGreen, "✓"), p)
	}
	fmt.Fprintln(c.w)
}

// Noticef prints a standalone message outside any file report.
func (c *Console) Noticef(format string, args ...any) {
	fmt.Fprintf(c.w, format+"\n", args...)
}
