package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"pixcheck/internal/config"
	"pixcheck/internal/domain"
	"pixcheck/internal/report"
)

func newTestFormatter() (*Formatter, *bytes.Buffer) {
	color.NoColor = true
	var buf bytes.Buffer
	f := NewFormatter(config.New())
	f.SetOutput(&buf)
	return f, &buf
}

func TestFormatter_PrintSummary(t *testing.T) {
	f, buf := newTestFormatter()

	summary, _ := report.Aggregate([]domain.Outcome{
		domain.Pass("bar_basic", 0),
		domain.Fail("pie_simple", "differs by 5.000 times the threshold", 0.0005),
		domain.Error("missing_case", "baseline image does not exist", nil),
	})
	f.PrintSummary(summary, domain.RunMeta{Model: "batch", Workers: 4, Threshold: 0.0001})

	out := buf.String()
	for _, want := range []string{
		"pie_simple differs by 5.000 times the threshold",
		"missing_case baseline image does not exist",
		"2 of 3 image(s) did not pass",
		"batch",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestFormatter_PrintSummary_AllPass(t *testing.T) {
	f, buf := newTestFormatter()

	summary, _ := report.Aggregate([]domain.Outcome{domain.Pass("bar_basic", 0)})
	f.PrintSummary(summary, domain.RunMeta{})

	if !strings.Contains(buf.String(), "All 1 image(s) match their baselines") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestFormatter_PrintExcluded(t *testing.T) {
	f, buf := newTestFormatter()

	f.PrintExcluded([]string{"font-wishlist", "gl2d_scatter"})

	out := buf.String()
	if !strings.Contains(out, " - font-wishlist\n") || !strings.Contains(out, " - gl2d_scatter\n") {
		t.Errorf("expected one line per exclusion, got:\n%s", out)
	}

	buf.Reset()
	f.PrintExcluded(nil)
	if buf.Len() != 0 {
		t.Errorf("expected no output without exclusions, got %q", buf.String())
	}
}

func TestFormatter_PrintTestList(t *testing.T) {
	f, buf := newTestFormatter()

	f.PrintTestList(domain.TestSet{"bar_basic", "pie_simple"}, map[string]struct{}{"pie_simple": {}})

	out := buf.String()
	if !strings.Contains(out, "├── bar_basic\n") {
		t.Errorf("expected bar_basic unmarked, got:\n%s", out)
	}
	if !strings.Contains(out, "└── pie_simple [F]") {
		t.Errorf("expected pie_simple marked as failed, got:\n%s", out)
	}
}

func TestLineProgress(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	p := NewLineProgress(&buf, 2)

	p.Update(domain.Pass("bar_basic", 0))
	p.Update(domain.Fail("pie_simple", "differs by 5.000 times the threshold", 0.0005))
	p.Finish()

	expected := "[1/2] ✓ bar_basic\n[2/2] ✗ pie_simple: differs by 5.000 times the threshold\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}
