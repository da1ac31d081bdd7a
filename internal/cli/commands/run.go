package commands

import (
	"context"
	"fmt"
	"time"

	"pixcheck/internal/compare"
	"pixcheck/internal/config"
	"pixcheck/internal/domain"
	"pixcheck/internal/execution"
	"pixcheck/internal/render"
	"pixcheck/internal/report"
	"pixcheck/internal/storage"
	"pixcheck/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	selector  *Selector
	storage   storage.Storage
	formatter *ui.Formatter
	viewer    ui.Viewer

	// Collaborators built from the loaded config; replaceable in tests
	newRenderer   func(cfg *config.Config) (render.Renderer, error)
	newComparator func(cfg *config.Config) compare.Comparator
	newProgress   func(total int, queue bool) execution.Progress
	openHistory   func(ctx context.Context, dsn string) (storage.HistoryRecorder, error)
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	selector *Selector,
	st storage.Storage,
	formatter *ui.Formatter,
	viewer ui.Viewer,
) *RunCommand {
	rc := &RunCommand{
		config:    cfg,
		selector:  selector,
		storage:   st,
		formatter: formatter,
		viewer:    viewer,
	}
	rc.newRenderer = render.New
	rc.newComparator = func(cfg *config.Config) compare.Comparator {
		return compare.NewPixelComparator(cfg.ColorSensitivity)
	}
	rc.newProgress = ui.NewProgress
	rc.openHistory = func(ctx context.Context, dsn string) (storage.HistoryRecorder, error) {
		return storage.OpenMySQLHistory(ctx, dsn)
	}
	return rc
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	runCfg, err := execution.NewRunConfig(rc.config)
	if err != nil {
		return err
	}

	var only map[string]struct{}
	if rc.config.Flags.OnlyFailed {
		only = storage.FailedNames(rc.storage)
		if only == nil {
			return fmt.Errorf("--failed needs a previous run in %s", rc.config.GetOutputPath())
		}
	}

	set, err := rc.selector.Select(only)
	if err != nil {
		return err
	}
	if len(set) == 0 {
		color.Yellow("No image tests to run")
		return nil
	}

	// Without a renderer nothing can be evaluated; fail before scheduling
	renderer, err := rc.newRenderer(rc.config)
	if err != nil {
		return err
	}

	pool := execution.NewWorkerPool(execution.NewRunner(rc.config.CasePaths, renderer, rc.newComparator(rc.config)))
	pool.SetProgress(rc.newProgress(len(set), runCfg.Model == execution.ModelQueue))

	outcomes, duration, err := pool.Execute(ctx, set, runCfg)
	if err != nil {
		return err
	}

	summary, success := report.Aggregate(outcomes)
	output := &domain.RunOutput{
		Meta: summary.Meta(domain.RunMeta{
			RunID:           newRunID(),
			Duration:        duration.String(),
			DurationSeconds: duration.Seconds(),
			Model:           runCfg.Model.String(),
			Workers:         runCfg.Workers(),
			Threshold:       runCfg.Threshold,
			Patterns:        runCfg.Patterns,
			Timestamp:       time.Now().Format(time.RFC3339),
		}),
		Outcomes: outcomes,
	}

	if err := rc.storage.Save(output); err != nil {
		return fmt.Errorf("failed to save test results: %w", err)
	}

	if path := rc.config.Flags.JUnitPath; path != "" {
		if err := report.WriteJUnit(path, outcomes, duration); err != nil {
			return fmt.Errorf("failed to write junit report: %w", err)
		}
	}

	if dsn := rc.config.HistoryDSN; dsn != "" {
		if err := rc.recordHistory(ctx, dsn, output); err != nil {
			rc.formatter.PrintWarning("run history not recorded: %v", err)
		}
	}

	rc.formatter.PrintSummary(summary, output.Meta)

	if success {
		return nil
	}
	if rc.config.Flags.OpenFailures && rc.viewer != nil {
		if err := rc.viewer.View(output); err != nil {
			return err
		}
	}
	return ErrTestsFailed
}

func (rc *RunCommand) recordHistory(ctx context.Context, dsn string, output *domain.RunOutput) error {
	history, err := rc.openHistory(ctx, dsn)
	if err != nil {
		return err
	}
	defer history.Close()
	return history.Record(ctx, output)
}

func newRunID() string {
	return time.Now().UTC().Format("20060102T150405.000000000Z")
}
