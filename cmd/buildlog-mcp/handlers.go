package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/buildlog/internal/interfaces"
	"github.com/ternarybob/buildlog/internal/services/export"
	"github.com/ternarybob/buildlog/internal/services/ingest"
)

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(text)},
	}
}

func errorResult(format string, args ...any) *mcp.CallToolResult {
	result := textResult(fmt.Sprintf(format, args...))
	result.IsError = true
	return result
}

// reportFormat picks the requested format, falling back to markdown for chat clients
func reportFormat(request mcp.CallToolRequest) string {
	return request.GetString("format", export.FormatMarkdown)
}

// handleParseBuildLog implements the parse_build_log tool
func handleParseBuildLog(service *ingest.Service, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		req := ingest.Request{
			Path:          request.GetString("path", ""),
			Content:       request.GetString("content", ""),
			AnonymizeRoot: request.GetString("anonymize_root", ""),
			Save:          request.GetBool("save", false),
		}
		if req.Path == "" && req.Content == "" {
			return errorResult("Error: either path or content is required"), nil
		}

		run, err := service.Parse(ctx, req)
		if err != nil {
			logger.Warn().Err(err).Str("path", req.Path).Msg("parse_build_log failed")
			if run != nil && run.Message != "" {
				return errorResult("Error: %s", run.Message), nil
			}
			return errorResult("Error: %v", err), nil
		}

		out, err := export.Render(run, reportFormat(request))
		if err != nil {
			return errorResult("Error: %v", err), nil
		}
		return textResult(formatParseHeader(run, req.Save) + string(out)), nil
	}
}

// handleListRuns implements the list_runs tool
func handleListRuns(runs interfaces.RunStorage, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		limit := request.GetInt("limit", 10)

		summaries, err := runs.ListRuns(ctx, limit)
		if err != nil {
			logger.Error().Err(err).Msg("list_runs failed")
			return errorResult("Error: %v", err), nil
		}

		out, err := export.RenderSummaries(summaries, export.FormatMarkdown)
		if err != nil {
			return errorResult("Error: %v", err), nil
		}
		return textResult(string(out)), nil
	}
}

// handleGetRun implements the get_run tool
func handleGetRun(runs interfaces.RunStorage, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("run_id")
		if err != nil {
			return errorResult("Error: %v", err), nil
		}

		run, err := runs.GetRun(ctx, id)
		if err != nil {
			if !errors.Is(err, interfaces.ErrRunNotFound) {
				logger.Error().Err(err).Str("run_id", id).Msg("get_run failed")
			}
			return errorResult("Error: %v", err), nil
		}

		out, err := export.Render(run, reportFormat(request))
		if err != nil {
			return errorResult("Error: %v", err), nil
		}
		return textResult(string(out)), nil
	}
}

// handleGetItem implements the get_build_item tool
func handleGetItem(runs interfaces.RunStorage, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("run_id")
		if err != nil {
			return errorResult("Error: %v", err), nil
		}
		line := request.GetInt("line", 0)

		run, err := runs.GetRun(ctx, id)
		if err != nil {
			return errorResult("Error: %v", err), nil
		}

		for i := range run.Items {
			if run.Items[i].Line == line {
				return textResult(formatItem(run, &run.Items[i])), nil
			}
		}
		logger.Debug().Str("run_id", id).Int("line", line).Msg("No item on line")
		return errorResult("Error: run %s has no item on line %d", id, line), nil
	}
}
