package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/go-sod/knn/internal/config"
	"github.com/go-sod/knn/internal/crossval"
	"github.com/go-sod/knn/internal/experiment"
	"github.com/go-sod/knn/internal/logging"
	"github.com/go-sod/knn/internal/setup"
)

var experimentsFile string

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [experiment...]",
	Short: "Cross-validate the experiments of an experiments file",
	Long: `Runs every experiment of the experiments file, or only the named ones, and
prints one summary per experiment. A failing experiment is logged and the
remaining ones still run; the command fails if any experiment failed.`,
	RunE: runEvaluate,
}

func init() {
	evaluateCmd.Flags().StringVar(&experimentsFile, "experiments", "",
		"TOML experiments file (default: KNN_EXPERIMENTS_FILE)")
	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	var cfg config.Config
	env, err := setup.Setup(ctx, &cfg)
	if err != nil {
		return fmt.Errorf("setup.Setup: %w", err)
	}
	defer func() {
		if err := env.Close(ctx); err != nil {
			logger.Errorf("closing env: %v", err)
		}
	}()

	path := cfg.ExperimentsFile
	if experimentsFile != "" {
		path = experimentsFile
	}
	experiments, err := experiment.LoadFile(path, env.Defaults())
	if err != nil {
		return err
	}
	experiments, err = selectExperiments(experiments, args)
	if err != nil {
		return err
	}

	if err := crossval.RegisterViews(); err != nil {
		return err
	}
	started := time.Now()
	defer func() {
		if err := crossval.Flush(crossval.NewLogExporter(logger), started); err != nil {
			logger.Errorf("flushing metrics: %v", err)
		}
	}()

	var failed int
	for i, e := range experiments {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("evaluation interrupted: %w", err)
		}
		report, err := env.Runner().Run(ctx, e)
		if err != nil {
			failed++
			logger.Errorw("experiment failed", "experiment", e.Name, "error", err)
			continue
		}
		if i > 0 {
			_, _ = fmt.Fprintln(cmd.OutOrStdout())
		}
		if err := experiment.WriteSummary(cmd.OutOrStdout(), report); err != nil {
			return fmt.Errorf("writing summary: %w", err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d experiments failed", failed, len(experiments))
	}
	return nil
}

func selectExperiments(all []experiment.Experiment, names []string) ([]experiment.Experiment, error) {
	if len(names) == 0 {
		return all, nil
	}
	byName := make(map[string]experiment.Experiment, len(all))
	for _, e := range all {
		byName[e.Name] = e
	}
	selected := make([]experiment.Experiment, 0, len(names))
	for _, name := range names {
		e, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: no experiment named %q", experiment.ErrInvalidExperiment, name)
		}
		selected = append(selected, e)
	}
	return selected, nil
}
