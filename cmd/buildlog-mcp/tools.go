package main

import "github.com/mark3labs/mcp-go/mcp"

func createParseBuildLogTool() mcp.Tool {
	return mcp.NewTool("parse_build_log",
		mcp.WithDescription("Parse an MSVC/GCC build log into compile, library, link and manifest items with their resolved dependencies. Provide either a log file path or the log content."),
		mcp.WithString("path",
			mcp.Description("Path of the build log file on the server"),
		),
		mcp.WithString("content",
			mcp.Description("Build log text (used instead of path when set)"),
		),
		mcp.WithString("anonymize_root",
			mcp.Description("Directory prefix to replace with the placeholder in all paths"),
		),
		mcp.WithBoolean("save",
			mcp.Description("Store the run so it can be fetched later with get_run (default: false)"),
		),
		mcp.WithString("format",
			mcp.Description("Report format: text, markdown, html, yaml, json (default: markdown)"),
		),
	)
}

func createListRunsTool() mcp.Tool {
	return mcp.NewTool("list_runs",
		mcp.WithDescription("List stored parse runs, newest first"),
		mcp.WithNumber("limit",
			mcp.Description("Maximum runs to return (default: 10)"),
		),
	)
}

func createGetRunTool() mcp.Tool {
	return mcp.NewTool("get_run",
		mcp.WithDescription("Render a stored parse run"),
		mcp.WithString("run_id",
			mcp.Required(),
			mcp.Description("Run ID returned by parse_build_log or list_runs"),
		),
		mcp.WithString("format",
			mcp.Description("Report format: text, markdown, html, yaml, json (default: markdown)"),
		),
	)
}

func createGetItemTool() mcp.Tool {
	return mcp.NewTool("get_build_item",
		mcp.WithDescription("Show one item of a stored run by its log line number, with its options, dependencies and consumer"),
		mcp.WithString("run_id",
			mcp.Required(),
			mcp.Description("Run ID"),
		),
		mcp.WithNumber("line",
			mcp.Required(),
			mcp.Description("1-based log line number of the item"),
		),
	)
}
