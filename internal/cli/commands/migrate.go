package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"pixcheck/internal/config"
	"pixcheck/internal/storage"
)

// MigrateCommand handles the migrate command
type MigrateCommand struct {
	config *config.Config
}

// NewMigrateCommand creates a new MigrateCommand
func NewMigrateCommand(cfg *config.Config) *MigrateCommand {
	return &MigrateCommand{config: cfg}
}

// Execute runs the command
func (mc *MigrateCommand) Execute(cmd *cobra.Command, args []string) error {
	if mc.config.HistoryDSN == "" {
		return fmt.Errorf("no history database configured: pass --history-dsn or set PIXCHECK_HISTORY_DSN")
	}

	history, err := storage.OpenMySQLHistory(cmd.Context(), mc.config.HistoryDSN)
	if err != nil {
		return err
	}
	defer history.Close()

	color.Green("✓ History table is ready")
	return nil
}
