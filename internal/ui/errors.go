package ui

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"pixcheck/internal/domain"
	"pixcheck/internal/storage"
)

// FailureViewer displays the non-passing cases of the last run in an interactive TUI
type FailureViewer struct {
	storage storage.Storage
}

// NewFailureViewer creates a new FailureViewer
func NewFailureViewer(st storage.Storage) *FailureViewer {
	return &FailureViewer{storage: st}
}

// View displays failures; R toggles the resolved mark, which is saved back to the results file
func (fv *FailureViewer) View(results *domain.RunOutput) error {
	// Indexes into results.Outcomes of the non-passing cases
	var failing []int
	for i, o := range results.Outcomes {
		if !o.Passed() {
			failing = append(failing, i)
		}
	}
	if len(failing) == 0 {
		color.Green("✓ No image test failures found!")
		return nil
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	outcomeAt := func(index int) *domain.Outcome {
		return &results.Outcomes[failing[index]]
	}

	updateListItem := func(index int) {
		if index < 0 || index >= list.GetItemCount() {
			return
		}
		list.SetItemText(index, listItemText(*outcomeAt(index), index), "")
	}

	for i := range failing {
		list.AddItem(listItemText(*outcomeAt(i), i), "", 0, nil)
	}

	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan).
		SetSecondaryTextColor(tview.Styles.SecondaryTextColor)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false).
		SetWordWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	// list on left (1/3), details on right (2/3)
	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	updateHeader := func() {
		unresolved := 0
		for i := range failing {
			if !outcomeAt(i).Resolved {
				unresolved++
			}
		}
		headerView.SetText(fmt.Sprintf(" Image Failures (%d total, %d unresolved) | Use ↑↓ to navigate, [yellow]R[white] to mark resolved, → to view details, ← to go back, Ctrl+C to exit ", len(failing), unresolved))
	}
	updateHeader()

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(failing) {
			o := *outcomeAt(index)
			statsView.SetText(formatOutcomeStats(o, results.Meta))
			detailsView.SetText(formatOutcomeDetails(o))
		}
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'r' || event.Rune() == 'R' {
				index := list.GetCurrentItem()
				if index >= 0 && index < len(failing) {
					o := outcomeAt(index)
					o.Resolved = !o.Resolved
					updateListItem(index)
					updateHeader()
					updateDetails()
					// Best effort; the mark is only a reading aid
					_ = fv.storage.Save(results)
				}
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		updateDetails()
	})
	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func listItemText(o domain.Outcome, index int) string {
	mark := "[red]✗"
	if o.Status == domain.StatusError {
		mark = "[yellow]!"
	}
	if o.Resolved {
		return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", index+1, o.Name)
	}
	return fmt.Sprintf("%s [yellow]%d.[white] %s", mark, index+1, o.Name)
}

// formatOutcomeDetails formats an outcome for display using tview color tags
func formatOutcomeDetails(o domain.Outcome) string {
	var builder strings.Builder
	w := tabwriter.NewWriter(&builder, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "[red]✗ Case: %s[white]\n\n", o.Name)
	fmt.Fprintf(w, "[cyan]Status:[white]\t%s\n", o.Status)
	fmt.Fprintf(w, "[cyan]Reason:[white]\t%s\n", o.Reason)
	if o.Status == domain.StatusFail {
		fmt.Fprintf(w, "[cyan]Difference:[white]\t%g\n", o.Difference)
	}
	if o.DiffPath != "" {
		fmt.Fprintf(w, "[cyan]Diff image:[white]\t%s\n", o.DiffPath)
	}
	fmt.Fprintf(w, "[cyan]Duration:[white]\t%s\n", o.Duration)
	if o.MockDigest != "" {
		fmt.Fprintf(w, "[cyan]Mock digest:[white]\t%s\n", o.MockDigest)
	}
	if o.Details != "" {
		fmt.Fprintf(w, "\n[yellow]Details:[white]\n%s\n", tview.Escape(o.Details))
	}

	w.Flush()
	return builder.String()
}

// formatOutcomeStats formats the stats header for an outcome
func formatOutcomeStats(o domain.Outcome, meta domain.RunMeta) string {
	return fmt.Sprintf("[cyan]case:[white] [yellow]%s[white]  [cyan]run:[white] %s  [cyan]threshold:[white] %g\n",
		o.Name, meta.RunID, meta.Threshold)
}
