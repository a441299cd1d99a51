package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/ternarybob/buildlog/internal/app"
	"github.com/ternarybob/buildlog/internal/common"
	"github.com/ternarybob/buildlog/internal/models"
	"github.com/ternarybob/buildlog/internal/services/export"
	"github.com/ternarybob/buildlog/internal/services/ingest"
	"github.com/ternarybob/buildlog/internal/worker"
)

var parseCmd = &cobra.Command{
	Use:   "parse <log> [log...]",
	Short: "Parse a build log and report its dependency graph",
	Long: `Reads a build log line by line, models every cl/gcc/lib/link/mt/obfuscator
invocation, groups items by directory and resolves producer/consumer links.
Several logs are parsed concurrently and reported as a run list.
Press Ctrl+C to cancel a long parse.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

var (
	parseRoot   string
	parseFormat string
	parseOut    string
	parseSave   bool
	parseJobs   int
)

func init() {
	parseCmd.Flags().StringVar(&parseRoot, "root", "", "Directory to anonymize as the placeholder (overrides config)")
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "", "Report format: text, markdown, html, yaml, json (overrides config)")
	parseCmd.Flags().StringVarP(&parseOut, "out", "o", "", "Write the report to a file instead of stdout")
	parseCmd.Flags().BoolVar(&parseSave, "save", false, "Store the run in the run database")
	parseCmd.Flags().IntVarP(&parseJobs, "jobs", "j", 0, "Logs parsed in parallel when several are given (0 = number of CPUs)")
}

func runParse(cmd *cobra.Command, args []string) error {
	common.ApplyFlagOverrides(config, common.FlagOverrides{
		AnonymizeRoot: parseRoot,
		Format:        parseFormat,
		Output:        parseOut,
	})
	if err := config.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var application *app.App
	if parseSave {
		var err error
		application, err = app.New(config, logger)
		if err != nil {
			return err
		}
		defer application.Close()
	} else {
		application = app.NewParser(config, logger)
	}

	if len(args) > 1 {
		return parseMany(ctx, application, args)
	}

	run, err := application.IngestService.Parse(ctx, ingest.Request{
		Path: args[0],
		Save: parseSave,
	})
	if err != nil {
		return err
	}

	return writeReport(func() ([]byte, error) { return export.Render(run, config.Report.Format) })
}

// parseMany runs every log through the worker pool and reports the run list
func parseMany(ctx context.Context, application *app.App, paths []string) error {
	requests := make([]ingest.Request, len(paths))
	for i, path := range paths {
		requests[i] = ingest.Request{Path: path, Save: parseSave}
	}

	outcomes := worker.NewPool(application.IngestService, logger, parseJobs).Run(ctx, requests)

	var (
		summaries []models.BuildRunSummary
		failed    int
	)
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			failed++
			logger.Error().Err(outcome.Err).Str("path", outcome.Request.Path).Msg("Parse failed")
			continue
		}
		summaries = append(summaries, outcome.Run.Summary())
	}

	if err := writeReport(func() ([]byte, error) { return export.RenderSummaries(summaries, config.Report.Format) }); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d build logs failed to parse", failed, len(paths))
	}
	return nil
}

// writeReport renders and writes to config.Report.Output, or stdout when unset
func writeReport(render func() ([]byte, error)) error {
	out, err := render()
	if err != nil {
		return err
	}

	if config.Report.Output == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	if err := os.WriteFile(config.Report.Output, out, 0644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", config.Report.Output, err)
	}
	logger.Info().Str("path", config.Report.Output).Str("format", config.Report.Format).Msg("Report written")
	return nil
}
