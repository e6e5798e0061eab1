// File: cmd/run.go
package cmd

import (
	"fmt"

	"github.com/cucumber/godog"
	"github.com/cucumber/godog/colors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/stagehand/internal/driver"
	"github.com/xkilldash9x/stagehand/internal/lifecycle"
	"github.com/xkilldash9x/stagehand/internal/observability"
	"github.com/xkilldash9x/stagehand/internal/steps"
)

type runFlags struct {
	features []string
	tags     string
	format   string
	browser  string
	parallel int
	strict   bool
}

func newRunCommand() *cobra.Command {
	flags := &runFlags{}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Execute the feature suite against the configured browser.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuite(cmd, flags)
		},
	}

	runCmd.Flags().StringSliceVarP(&flags.features, "features", "f", []string{"features"},
		"feature files or directories to execute")
	runCmd.Flags().StringVarP(&flags.tags, "tags", "t", "",
		"tag expression filtering scenarios, e.g. @smoke && !@wip")
	runCmd.Flags().StringVar(&flags.format, "format", "pretty",
		"report format: pretty, progress, cucumber, junit")
	runCmd.Flags().StringVarP(&flags.browser, "browser", "b", "",
		"browser override: chrome, firefox, edge, safari")
	runCmd.Flags().IntVarP(&flags.parallel, "parallel", "p", 0,
		"number of scenarios to run concurrently (0 uses thread.count)")
	runCmd.Flags().BoolVar(&flags.strict, "strict", false,
		"fail the run on pending or undefined steps")

	return runCmd
}

func runSuite(cmd *cobra.Command, flags *runFlags) error {
	logger := observability.GetLogger()
	defer observability.Sync()

	// Flag overrides beat the properties file.
	browser := cfg.Browser()
	if flags.browser != "" {
		browser = flags.browser
	}
	concurrency := flags.parallel
	if concurrency <= 0 {
		concurrency = 1
		if cfg.ParallelExecution() {
			concurrency = cfg.ThreadCount()
		}
	}

	// Fail on an unknown browser tag before any scenario spins up a session.
	if err := driver.ValidateBrowser(browser); err != nil {
		return err
	}

	reg := driver.NewRegistry(cfg, driver.NewSession, logger)
	sink := lifecycle.NewDirSink(cfg.ScreenshotsDir(), logger)
	listener := lifecycle.NewListener(cfg, reg, sink, logger)
	suite := steps.NewSuite(cfg, reg, listener, logger)

	logger.Info("Running feature suite.",
		zap.Strings("features", flags.features),
		zap.String("browser", browser),
		zap.String("tags", flags.tags),
		zap.Int("concurrency", concurrency))

	// The step suite reads the browser from the shared config, so push the
	// flag override down before the suite starts.
	cfg.Override("browser", browser)

	opts := &godog.Options{
		Format:      flags.format,
		Paths:       flags.features,
		Tags:        flags.tags,
		Concurrency: concurrency,
		Strict:      flags.strict,
		Output:      colors.Colored(cmd.OutOrStdout()),
	}
	if concurrency > 1 && flags.format == "pretty" {
		// The pretty formatter cannot interleave concurrent scenarios.
		opts.Format = "progress"
	}

	status := (godog.TestSuite{
		Name:                "stagehand",
		ScenarioInitializer: suite.InitializeScenario,
		Options:             opts,
	}).Run()

	if status != 0 {
		return fmt.Errorf("feature suite failed with status %d", status)
	}
	logger.Info("Feature suite passed.")
	return nil
}
