package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/brightside-dev/goodnews/internal/cli"
	"github.com/brightside-dev/goodnews/internal/common"
	"github.com/brightside-dev/goodnews/internal/config"
	"github.com/brightside-dev/goodnews/internal/engine"
	"github.com/brightside-dev/goodnews/internal/fetch"
	"github.com/brightside-dev/goodnews/internal/report"
)

func scanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan all indicators and build the good news feed",
		Long: `Download (or load from cache) every configured indicator dataset,
detect improving trends and recent milestone crossings per country, and
write the ranked story feed to the output file.`,
		RunE: runScan,
	}

	// Flags
	cmd.Flags().Bool("refresh", false, "Force re-download of all datasets")
	cmd.Flags().StringP("output", "o", "", "Output file (default: good_news.json)")
	cmd.Flags().String("data-dir", "", "Cache directory for downloaded datasets (default: data)")

	// Bind to viper
	_ = viper.BindPFlag("scan.refresh", cmd.Flags().Lookup("refresh"))
	_ = viper.BindPFlag("scan.output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("scan.data_dir", cmd.Flags().Lookup("data-dir"))

	return cmd
}

func runScan(cmd *cobra.Command, _ []string) error {
	settings, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	refresh := viper.GetBool("scan.refresh")
	if out := viper.GetString("scan.output"); out != "" {
		settings.OutputFile = out
	}
	if dir := viper.GetString("scan.data_dir"); dir != "" {
		settings.DataDir = dir
	}

	slog.Info(cli.FormatTitle("GOOD NEWS MACHINE"))
	slog.Info("Starting scan",
		"indicators", len(settings.Indicators),
		"refresh", refresh,
		"data_dir", settings.DataDir)

	loader := fetch.NewClient(settings.DataDir)
	eng := engine.New(loader, settings)

	result, err := eng.Run(cmd.Context(), refresh)
	if err != nil {
		return err
	}

	if err := report.WriteFeed(settings.OutputFile, result.Stories); err != nil {
		return common.NewUserError("failed to write story feed", err)
	}
	slog.Info("Feed written",
		"stories", len(result.Stories),
		"output", settings.OutputFile)

	report.PrintSummary(os.Stdout, result.Stories, result.SkipMessages(), settings.TopStories)

	fmt.Println(cli.FormatSuccess(fmt.Sprintf(
		"Done! %d stories saved to %s %s", len(result.Stories), settings.OutputFile, cli.SaveIcon)))
	return nil
}
