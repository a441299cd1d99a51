// -----------------------------------------------------------------------
// Export Service - renders stored build runs as reports
// -----------------------------------------------------------------------

package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ternarybob/buildlog/internal/models"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"gopkg.in/yaml.v3"
)

// Supported report formats
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
	FormatYAML     = "yaml"
	FormatJSON     = "json"
)

// Formats lists every supported report format
var Formats = []string{FormatText, FormatMarkdown, FormatHTML, FormatYAML, FormatJSON}

// Render renders a run in the requested format
func Render(run *models.BuildRun, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatText, "":
		return []byte(renderText(run)), nil
	case FormatMarkdown, "md":
		return []byte(renderMarkdown(run)), nil
	case FormatHTML:
		return markdownToHTML(renderMarkdown(run))
	case FormatYAML, "yml":
		return yaml.Marshal(run)
	case FormatJSON:
		return json.MarshalIndent(run, "", "  ")
	}
	return nil, fmt.Errorf("unsupported report format %q (want one of %s)", format, strings.Join(Formats, ", "))
}

// RenderSummaries renders a run listing in the requested format
func RenderSummaries(runs []models.BuildRunSummary, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatYAML, "yml":
		return yaml.Marshal(runs)
	case FormatJSON:
		return json.MarshalIndent(runs, "", "  ")
	case FormatMarkdown, "md", FormatHTML:
		var sb strings.Builder
		sb.WriteString("| ID | Log | Success | Items | Unhandled | Failed | Warnings | Created |\n")
		sb.WriteString("|---|---|---|---|---|---|---|---|\n")
		for _, r := range runs {
			fmt.Fprintf(&sb, "| %s | %s | %t | %d | %d | %d | %d | %s |\n",
				r.ID, escapeCell(r.LogPath), r.Success, r.Items, r.Unhandled, r.Failed, r.Warnings,
				r.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		if strings.ToLower(format) == FormatHTML {
			return markdownToHTML(sb.String())
		}
		return []byte(sb.String()), nil
	case FormatText, "":
		var sb strings.Builder
		for _, r := range runs {
			fmt.Fprintf(&sb, "%s  %s  %s  items=%d unhandled=%d failed=%d warnings=%d\n",
				r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.LogPath, r.Items, r.Unhandled, r.Failed, r.Warnings)
		}
		return []byte(sb.String()), nil
	}
	return nil, fmt.Errorf("unsupported report format %q (want one of %s)", format, strings.Join(Formats, ", "))
}

func renderText(run *models.BuildRun) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Run %s (%s)\n", run.ID, run.LogPath)
	fmt.Fprintf(&sb, "Success: %t\n", run.Success)
	if run.Message != "" {
		fmt.Fprintf(&sb, "%s\n", run.Message)
	}

	byLine := make(map[int]models.BuildItem, len(run.Items))
	for _, item := range run.Items {
		byLine[item.Line] = item
	}

	for _, dir := range run.Directories {
		name := dir.Path
		if name == "" {
			name = "."
		}
		fmt.Fprintf(&sb, "\n%s\n", name)
		for _, kind := range sortedKinds(dir.Items) {
			for _, line := range dir.Items[kind] {
				item := byLine[line]
				fmt.Fprintf(&sb, "  [%d] %s %s\n", line, kind, item.Target)
				for _, dep := range item.Dependencies {
					fmt.Fprintf(&sb, "      <- [%d] %s\n", dep, byLine[dep].Target)
				}
			}
		}
	}

	if len(run.Diagnostics) > 0 {
		sb.WriteString("\nDiagnostics:\n")
		for _, d := range run.Diagnostics {
			fmt.Fprintf(&sb, "  %s\n", d)
		}
	}
	return sb.String()
}

func renderMarkdown(run *models.BuildRun) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Build run %s\n\n", run.ID)
	fmt.Fprintf(&sb, "- **Log:** `%s`\n", run.LogPath)
	fmt.Fprintf(&sb, "- **Success:** %t\n", run.Success)
	fmt.Fprintf(&sb, "- **Lines:** %d\n", run.Stats.Lines)
	fmt.Fprintf(&sb, "- **Created:** %s\n\n", run.CreatedAt.Format("2006-01-02 15:04:05"))

	sb.WriteString("## Counts\n\n| Kind | Items |\n|---|---|\n")
	for _, kind := range sortedKinds(run.Stats.PerKind) {
		fmt.Fprintf(&sb, "| %s | %d |\n", kind, run.Stats.PerKind[kind])
	}
	fmt.Fprintf(&sb, "\nHelpers %d, moc %d, uic %d, rcc %d, unhandled %d, failed %d, warnings %d.\n\n",
		run.Stats.Helpers, run.Stats.Moc, run.Stats.Uic, run.Stats.Rcc,
		run.Stats.Unhandled, run.Stats.Failed, run.Stats.Warnings)

	sb.WriteString("## Items\n\n| Line | Kind | Directory | Target | Sources | Depends on |\n|---|---|---|---|---|---|\n")
	for _, item := range run.Items {
		deps := make([]string, 0, len(item.Dependencies))
		for _, d := range item.Dependencies {
			deps = append(deps, fmt.Sprintf("%d", d))
		}
		fmt.Fprintf(&sb, "| %d | %s | %s | %s | %s | %s |\n",
			item.Line, item.Kind, escapeCell(item.Directory), escapeCell(item.Target),
			escapeCell(strings.Join(item.Sources, ", ")), strings.Join(deps, ", "))
	}

	if len(run.Usages) > 0 {
		sb.WriteString("\n## Anonymized paths\n\n")
		for _, u := range run.Usages {
			fmt.Fprintf(&sb, "- `%s`\n", u)
		}
	}

	if len(run.Diagnostics) > 0 {
		sb.WriteString("\n## Diagnostics\n\n```\n")
		for _, d := range run.Diagnostics {
			sb.WriteString(d)
			sb.WriteString("\n")
		}
		sb.WriteString("```\n")
	}
	return sb.String()
}

func markdownToHTML(markdown string) ([]byte, error) {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM, // tables for the item listing
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)

	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return nil, fmt.Errorf("failed to convert markdown to HTML: %w", err)
	}
	return buf.Bytes(), nil
}

// escapeCell keeps backslash paths and pipes intact inside a table cell
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "|", `\|`)
}
