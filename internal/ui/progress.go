package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"pixcheck/internal/domain"
	"pixcheck/internal/execution"
)

// ProgressBar shows batch progress on stderr
type ProgressBar struct {
	bar            *progressbar.ProgressBar
	passed, failed int
}

// NewProgressBar creates a new progress bar
func NewProgressBar(count int) *ProgressBar {
	bar := progressbar.NewOptions(count,
		progressbar.OptionSetDescription(describe(0, 0)),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)

	return &ProgressBar{bar: bar}
}

// Update advances the bar by one finished case
func (p *ProgressBar) Update(o domain.Outcome) {
	if o.Passed() {
		p.passed++
	} else {
		p.failed++
	}
	p.bar.Describe(describe(p.passed, p.failed))
	p.bar.Add(1)
}

// Finish completes the progress bar
func (p *ProgressBar) Finish() {
	p.bar.Finish()
}

func describe(passed, failed int) string {
	return color.CyanString("Comparing images: ") +
		color.GreenString("[pass: %d", passed) +
		" | " +
		color.RedString("fail: %d]", failed)
}

// LineProgress prints one line per finished case
type LineProgress struct {
	w     io.Writer
	total int
	done  int
}

// NewLineProgress creates a LineProgress writing to w
func NewLineProgress(w io.Writer, total int) *LineProgress {
	return &LineProgress{w: w, total: total}
}

// Update prints the outcome of a finished case
func (p *LineProgress) Update(o domain.Outcome) {
	p.done++
	counter := fmt.Sprintf("[%d/%d]", p.done, p.total)
	switch o.Status {
	case domain.StatusPass:
		fmt.Fprintf(p.w, "%s %s %s\n", counter, color.GreenString("✓"), o.Name)
	case domain.StatusFail:
		fmt.Fprintf(p.w, "%s %s %s: %s\n", counter, color.RedString("✗"), o.Name, o.Reason)
	default:
		fmt.Fprintf(p.w, "%s %s %s: %s\n", counter, color.YellowString("!"), o.Name, o.Reason)
	}
}

// Finish is a no-op; every line is already printed
func (p *LineProgress) Finish() {}

// NewProgress picks the bar for interactive batch runs and per-case lines otherwise
func NewProgress(total int, queue bool) execution.Progress {
	if !queue && isatty.IsTerminal(os.Stderr.Fd()) {
		return NewProgressBar(total)
	}
	return NewLineProgress(os.Stdout, total)
}
