package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"pixcheck/internal/cli"
	"pixcheck/internal/cli/commands"
	"pixcheck/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:   "pixcheck",
		Short: "Visual regression test runner for rendered chart images",
		Long: `Render test cases from their JSON mocks, compare each image with its committed baseline
and report which ones drifted. Cases run in batch (bounded parallelism) or as a queue.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	rootCmd.SetArgs(cli.NormalizeArgs(os.Args[1:]))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Execute root command
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if errors.Is(err, commands.ErrTestsFailed) {
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
