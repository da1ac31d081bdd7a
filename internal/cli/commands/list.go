package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"pixcheck/internal/storage"
	"pixcheck/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	selector  *Selector
	storage   storage.Storage
	formatter *ui.Formatter
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	selector *Selector,
	st storage.Storage,
	formatter *ui.Formatter,
) *ListCommand {
	return &ListCommand{
		selector:  selector,
		storage:   st,
		formatter: formatter,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	set, err := lc.selector.Select(nil)
	if err != nil {
		return err
	}

	if len(set) == 0 {
		color.Yellow("No test cases found")
		return nil
	}

	lc.formatter.PrintTestList(set, storage.FailedNames(lc.storage))
	return nil
}
