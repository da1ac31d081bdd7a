package commands

import (
	"errors"

	"pixcheck/internal/cli"
	"pixcheck/internal/config"
	"pixcheck/internal/discovery"
	"pixcheck/internal/storage"
	"pixcheck/internal/ui"

	"github.com/spf13/cobra"
)

// ErrTestsFailed signals a completed run with at least one non-passing case
var ErrTestsFailed = errors.New("image tests failed")

// Commands holds all CLI commands
type Commands struct {
	Run      *RunCommand
	List     *ListCommand
	Migrate  *MigrateCommand
	Failures *FailuresCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	filter := discovery.NewFilter()
	orderer := discovery.NewOrderer()
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(cfg)
	viewer := ui.NewFailureViewer(jsonStorage)
	selector := NewSelector(cfg, filter, orderer, formatter)

	return &Commands{
		Run:      NewRunCommand(cfg, selector, jsonStorage, formatter, viewer),
		List:     NewListCommand(selector, jsonStorage, formatter),
		Migrate:  NewMigrateCommand(cfg),
		Failures: NewFailuresCommand(jsonStorage, viewer),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	// loadConfig rebuilds cfg from file, env and flags once cobra has parsed them
	loadConfig := func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(flags.ToConfigFlags(args, cmd.Flags().Changed))
		if err != nil {
			return err
		}
		*cfg = *loaded
		return cfg.Validate()
	}

	rootCmd.PersistentFlags().StringVar(&flags.ConfigFile, "config", "", "Path to the project config file (default .pixcheck.yaml)")

	// Run command
	runCmd := &cobra.Command{
		Use:   "run [pattern...]",
		Short: "Compare rendered images against their baselines",
		Long: `Render every selected test case, compare it with its baseline image and report pass/fail.

Patterns are globs over test case names; without patterns every testable case runs.
Prefix a pattern with ! to exclude its matches; "!(a|b)" excludes every alternative.

Examples:
  pixcheck run                      run all testable cases in batch
  pixcheck run contour_nolines      run a single case
  pixcheck run "gl3d_*" --queue     run the gl3d family one at a time
  pixcheck run "!gl3d_*" "!pie_*"   run everything except gl3d and pie
  pixcheck run "!(gl3d_*|pie_*)"    same, as one pattern`,
		Args:    cobra.ArbitraryArgs,
		RunE:    c.Run.Execute,
		PreRunE: loadConfig,
	}
	runCmd.Flags().BoolVar(&flags.Queue, "queue", false, "Run cases one at a time instead of in batch (slower, recommended on weak hardware)")
	runCmd.Flags().Float64Var(&flags.Threshold, "threshold", config.DefaultThreshold, "Tolerated fraction of mismatched pixels")
	runCmd.Flags().IntVarP(&flags.ParallelLimit, "parallel-limit", "p", config.DefaultParallelLimit, "Number of cases compared concurrently in batch mode")
	runCmd.Flags().BoolVar(&flags.OnlyFailed, "failed", false, "Run only cases that did not pass in the last run")
	runCmd.Flags().StringVar(&flags.JUnitPath, "junit", "", "Also write a JUnit XML report to this path")
	runCmd.Flags().BoolVar(&flags.OpenFailures, "open-failures", false, "Open the failures viewer when the run finishes with failures")
	runCmd.Flags().StringVar(&flags.HistoryDSN, "history-dsn", "", "MySQL DSN to record outcomes in (e.g. user:pass@tcp(127.0.0.1:3306)/pixcheck)")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:     "list [pattern...]",
		Short:   "List the test cases a run would select",
		Long:    "Resolve patterns against the mocks catalog and print the cases in run order, marking last-run failures with [F]",
		Args:    cobra.ArbitraryArgs,
		RunE:    c.List.Execute,
		PreRunE: loadConfig,
	}
	listCmd.Flags().BoolVar(&flags.Queue, "queue", false, "Order cases as a queue run would")
	rootCmd.AddCommand(listCmd)

	// Migrate command
	migrateCmd := &cobra.Command{
		Use:     "migrate",
		Short:   "Create the run history table",
		Long:    "Connect to the configured MySQL history database and create the outcomes table if it is missing",
		RunE:    c.Migrate.Execute,
		PreRunE: loadConfig,
	}
	migrateCmd.Flags().StringVar(&flags.HistoryDSN, "history-dsn", "", "MySQL DSN of the history database")
	rootCmd.AddCommand(migrateCmd)

	// Failures command
	failuresCmd := &cobra.Command{
		Use:     "failures",
		Short:   "View image test failures interactively",
		Long:    "Display the failing and erroring cases from the last run in an interactive viewer",
		RunE:    c.Failures.Execute,
		PreRunE: loadConfig,
	}
	rootCmd.AddCommand(failuresCmd)
}
