package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"pixcheck/internal/config"
	"pixcheck/internal/domain"
	"pixcheck/internal/report"
)

// Formatter formats and displays output
type Formatter struct {
	config *config.Config
	out    io.Writer
}

// NewFormatter creates a new Formatter writing to stdout
func NewFormatter(cfg *config.Config) *Formatter {
	return &Formatter{config: cfg, out: os.Stdout}
}

// SetOutput redirects the formatter's output
func (f *Formatter) SetOutput(w io.Writer) {
	f.out = w
}

// PrintExcluded lists the untestable cases dropped from a default run, one per line
func (f *Formatter) PrintExcluded(excluded []string) {
	if len(excluded) == 0 {
		return
	}
	fmt.Fprintln(f.out, "Filtering out untestable cases:")
	for _, name := range excluded {
		fmt.Fprintf(f.out, " - %s\n", name)
	}
	fmt.Fprintln(f.out)
}

// PrintWarning prints a non-blocking warning
func (f *Formatter) PrintWarning(format string, args ...interface{}) {
	fmt.Fprintln(f.out, color.YellowString("WARN: "+format, args...))
}

// PrintInfo prints an informational line
func (f *Formatter) PrintInfo(format string, args ...interface{}) {
	fmt.Fprintln(f.out, color.CyanString(format, args...))
}

// PrintSummary displays the run statistics followed by every non-passing case
func (f *Formatter) PrintSummary(summary report.Summary, meta domain.RunMeta) {
	w := f.out

	fmt.Fprint(w, "\n")
	fmt.Fprintln(w, color.CyanString("╔═══════════════════════════════════════════════════════════════╗"))
	fmt.Fprintln(w, color.CyanString("║                   Image Comparison Statistics                 ║"))
	fmt.Fprintln(w, color.CyanString("╚═══════════════════════════════════════════════════════════════╝"))
	fmt.Fprintln(w)

	rows := []struct {
		label string
		value string
		paint func(format string, a ...interface{}) string
	}{
		{"Total Cases", fmt.Sprintf("%d", summary.Total), color.WhiteString},
		{"Passed", fmt.Sprintf("%d", summary.Passed), color.GreenString},
		{"Failed", fmt.Sprintf("%d", summary.Failed), color.RedString},
		{"Errored", fmt.Sprintf("%d", summary.Errored), color.YellowString},
		{"Duration", fmt.Sprintf("%.2fs", meta.DurationSeconds), color.WhiteString},
		{"Model", meta.Model, color.WhiteString},
		{"Workers", fmt.Sprintf("%d", meta.Workers), color.WhiteString},
		{"Threshold", fmt.Sprintf("%g", meta.Threshold), color.WhiteString},
	}

	fmt.Fprintln(w, "┌─────────────────────────────────┬─────────────────────────────┐")
	for i, row := range rows {
		fmt.Fprintf(w, "│ %-31s │ %s │\n", row.label, row.paint("%-27s", row.value))
		if i < len(rows)-1 {
			fmt.Fprintln(w, "├─────────────────────────────────┼─────────────────────────────┤")
		}
	}
	fmt.Fprintln(w, "└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Fprintln(w)
	if len(summary.NonPassing) == 0 {
		fmt.Fprintln(w, color.GreenString("✓ All %d image(s) match their baselines!", summary.Total))
		return
	}

	fmt.Fprintln(w, color.RedString("✗ %d of %d image(s) did not pass", len(summary.NonPassing), summary.Total))
	fmt.Fprintln(w)
	for i, o := range summary.NonPassing {
		connector := "├── "
		if i == len(summary.NonPassing)-1 {
			connector = "└── "
		}
		if o.Status == domain.StatusFail {
			fmt.Fprintf(w, "%s%s %s\n", connector, color.RedString(o.Name), o.Reason)
		} else {
			fmt.Fprintf(w, "%s%s %s\n", connector, color.YellowString(o.Name), o.Reason)
		}
	}
}

// PrintTestList prints the selected test cases in run order.
// Cases in failed (from the last stored run) are marked with [F] in red.
func (f *Formatter) PrintTestList(set domain.TestSet, failed map[string]struct{}) {
	fmt.Fprintln(f.out, color.GreenString("Selected %d test case(s):\n", len(set)))

	for i, name := range set {
		failMarker := ""
		if _, ok := failed[name]; ok {
			failMarker = " " + color.RedString("[F]")
		}

		connector := "├── "
		if i == len(set)-1 {
			connector = "└── "
		}
		fmt.Fprintf(f.out, "%s%s%s\n", connector, color.CyanString(name), failMarker)
	}
}
