package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"shotpair/pkg/auth"
	"shotpair/pkg/config"
	apperrors "shotpair/pkg/errors"
	"shotpair/pkg/logger"
	"shotpair/pkg/pipeline"
	"shotpair/pkg/ui"
)

var (
	// Run command flags
	leftURL        string
	rightURL       string
	inputFile      string
	recordLog      string
	outputDir      string
	settleDelay    time.Duration
	captureTimeout time.Duration
	pairsPerMinute int
	headless       bool
	chromePath     string
	notify         bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Capture every pending pair in the input file",
	Long: `Capture every page pair listed in the input file that is not yet in
the record log.

Each input line holds a left path and an optional right path. The paths
are resolved against the left and right base URLs, both pages are captured
concurrently in headless Chrome and the two screenshots are written side
by side to the output directory. A capture that fails is replaced by a
placeholder showing the HTTP status, so one broken page never stops a run.

Press Ctrl+C to stop. The pair in progress is not recorded and will be
captured again by the next run.`,
	Example: `  # Compare production with staging
  shotpair run --left https://example.com --right https://staging.example.com

  # Custom files and a slower pace
  shotpair run --input pages.csv --output-dir shots --pairs-per-minute 10

  # Watch the browser work
  shotpair run --headless=false`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&leftURL, "left", "", "base URL of the left environment")
	runCmd.Flags().StringVar(&rightURL, "right", "", "base URL of the right environment")
	runCmd.Flags().StringVarP(&inputFile, "input", "i", "", "input CSV of page paths (default input.csv)")
	runCmd.Flags().StringVar(&recordLog, "record-log", "", "record log of completed pairs (default output.csv)")
	runCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "directory for composite images (default output)")
	runCmd.Flags().DurationVar(&settleDelay, "settle-delay", 0, "wait after scrolling before the screenshot (default 2s)")
	runCmd.Flags().DurationVar(&captureTimeout, "timeout", 0, "per page capture timeout (default 60s)")
	runCmd.Flags().IntVar(&pairsPerMinute, "pairs-per-minute", 0, "maximum pairs started per minute, 0 for no limit")
	runCmd.Flags().BoolVar(&headless, "headless", true, "run Chrome headless")
	runCmd.Flags().StringVar(&chromePath, "chrome-path", "", "path to the Chrome executable")
	runCmd.Flags().BoolVar(&notify, "notify", false, "send a desktop notification when the run ends")
}

func runFlags(cmd *cobra.Command) map[string]interface{} {
	flags := globalFlags()
	strs := map[string]string{
		"left":        leftURL,
		"right":       rightURL,
		"input":       inputFile,
		"record-log":  recordLog,
		"output-dir":  outputDir,
		"chrome-path": chromePath,
	}
	for k, v := range strs {
		if v != "" {
			flags[k] = v
		}
	}
	if cmd.Flags().Changed("settle-delay") {
		flags["settle-delay"] = settleDelay
	}
	if cmd.Flags().Changed("timeout") {
		flags["timeout"] = captureTimeout
	}
	if cmd.Flags().Changed("pairs-per-minute") {
		flags["pairs-per-minute"] = pairsPerMinute
	}
	if cmd.Flags().Changed("headless") {
		flags["headless"] = headless
	}
	return flags
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile, runFlags(cmd))
	if err != nil {
		return apperrors.Config("load configuration", err)
	}
	if err := logger.Initialize(&cfg.Logging); err != nil {
		return apperrors.Config("initialize logging", err)
	}
	log := logger.GetLogger().WithField("version", version)

	ui.PrintBanner()
	ui.PrintInfo("Left", cfg.Environments.Left.BaseURL)
	ui.PrintInfo("Right", cfg.Environments.Right.BaseURL)
	ui.PrintInfo("Output", cfg.Files.OutputDir)

	credentials := auth.NewManager()
	leftHeaders, err := credentials.Headers(cfg.Environments.Left.Name, cfg.Environments.Left.BasicAuthUser)
	if err != nil {
		return apperrors.Config("credentials for "+cfg.Environments.Left.Name, err)
	}
	rightHeaders, err := credentials.Headers(cfg.Environments.Right.Name, cfg.Environments.Right.BasicAuthUser)
	if err != nil {
		return apperrors.Config("credentials for "+cfg.Environments.Right.Name, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p := pipeline.New(cfg,
		pipeline.WithLogger(log),
		pipeline.WithReporter(ui.NewConsoleReporter()),
		pipeline.WithHeaders(leftHeaders, rightHeaders),
	)
	summary, err := p.Run(ctx)

	if notify {
		notifier := ui.NewNotifier()
		if err != nil {
			notifier.SendError("shotpair run stopped", err.Error())
		} else {
			notifier.SendSuccess("shotpair run complete",
				fmt.Sprintf("%d processed, %d skipped, %d failed captures",
					summary.Processed, summary.Skipped, summary.FailedCaptures))
		}
	}

	if err != nil {
		if ctx.Err() != nil {
			ui.PrintWarning("Interrupted", fmt.Sprintf("%d pairs left, run again to resume", summary.Remaining()))
		}
		return err
	}
	ui.PrintSuccess("Run complete")
	return nil
}
