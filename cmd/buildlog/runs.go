package main

import (
	"github.com/spf13/cobra"
	"github.com/ternarybob/buildlog/internal/app"
	"github.com/ternarybob/buildlog/internal/services/export"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect stored parse runs",
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored runs, newest first",
	Args:  cobra.NoArgs,
	RunE:  runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Render a stored run",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

var runsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored run",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsDelete,
}

var (
	runsLimit  int
	runsFormat string
)

func init() {
	runsListCmd.Flags().IntVar(&runsLimit, "limit", 20, "Maximum runs to list (0 = all)")
	runsCmd.PersistentFlags().StringVarP(&runsFormat, "format", "f", "", "Report format: text, markdown, html, yaml, json (overrides config)")

	runsCmd.AddCommand(runsListCmd, runsShowCmd, runsDeleteCmd)
}

func openApp() (*app.App, error) {
	if runsFormat != "" {
		config.Report.Format = runsFormat
		if err := config.Validate(); err != nil {
			return nil, err
		}
	}
	return app.New(config, logger)
}

func runRunsList(cmd *cobra.Command, args []string) error {
	application, err := openApp()
	if err != nil {
		return err
	}
	defer application.Close()

	runs, err := application.RunStorage.ListRuns(cmd.Context(), runsLimit)
	if err != nil {
		return err
	}
	return writeReport(func() ([]byte, error) { return export.RenderSummaries(runs, config.Report.Format) })
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	application, err := openApp()
	if err != nil {
		return err
	}
	defer application.Close()

	run, err := application.RunStorage.GetRun(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return writeReport(func() ([]byte, error) { return export.Render(run, config.Report.Format) })
}

func runRunsDelete(cmd *cobra.Command, args []string) error {
	application, err := openApp()
	if err != nil {
		return err
	}
	defer application.Close()

	if err := application.RunStorage.DeleteRun(cmd.Context(), args[0]); err != nil {
		return err
	}
	logger.Info().Str("run_id", args[0]).Msg("Run deleted")
	return nil
}
