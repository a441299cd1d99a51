package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"
	arbor_models "github.com/ternarybob/arbor/models"
	"github.com/ternarybob/buildlog/internal/app"
	"github.com/ternarybob/buildlog/internal/common"
)

func main() {
	// Load configuration
	configPath := os.Getenv("BUILDLOG_CONFIG")
	if configPath == "" {
		configPath = "buildlog.toml"
	}

	var paths []string
	if _, err := os.Stat(configPath); err == nil {
		paths = append(paths, configPath)
	}

	config, err := common.LoadFromFiles(paths...)
	if err == nil {
		err = config.Validate()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize minimal logger for MCP server (console only, no file output)
	logger := arbor.NewLogger().WithConsoleWriter(arbor_models.WriterConfiguration{
		Type:             arbor_models.LogWriterTypeConsole,
		TimeFormat:       "15:04:05",
		DisableTimestamp: false,
	}).WithLevelFromString("warn") // Minimal logging to avoid cluttering MCP stdio

	application, err := app.New(config, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer application.Close()

	mcpServer := server.NewMCPServer(
		"buildlog",
		common.LoadVersionFromFile(),
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(createParseBuildLogTool(), handleParseBuildLog(application.IngestService, logger))
	mcpServer.AddTool(createListRunsTool(), handleListRuns(application.RunStorage, logger))
	mcpServer.AddTool(createGetRunTool(), handleGetRun(application.RunStorage, logger))
	mcpServer.AddTool(createGetItemTool(), handleGetItem(application.RunStorage, logger))

	// Start server (blocks on stdio)
	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Fatal().Err(err).Msg("MCP server failed")
	}
}
