package export

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/buildlog/internal/models"
	"gopkg.in/yaml.v3"
)

func sampleRun() *models.BuildRun {
	return &models.BuildRun{
		ID:      "run-1",
		LogPath: "build.log",
		Success: true,
		Message: "Summary: VsCompile=1 Exec=1",
		Stats: models.BuildRunStats{
			Lines:    3,
			PerKind:  map[string]int{"Exec": 1, "VsCompile": 1},
			Warnings: 1,
		},
		Usages:      []string{`C:\ws\src`},
		Diagnostics: []string{"Warning: LineNum: 2 unresolved target 'app.exe'"},
		Directories: []models.BuildDirectory{
			{Path: "bin", Items: map[string][]int{"Exec": {2}}},
			{Path: "src", Items: map[string][]int{"VsCompile": {1}}},
		},
		Items: []models.BuildItem{
			{Line: 1, Kind: "VsCompile", Directory: "src", Target: `obj\a.obj`, Sources: []string{`src\a.cpp`}, TargetRef: 2},
			{Line: 2, Kind: "Exec", Directory: "bin", Target: "bin/app.exe", Sources: []string{`obj\a.obj`}, Dependencies: []int{1}},
		},
		CreatedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRenderText(t *testing.T) {
	out, err := Render(sampleRun(), FormatText)
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "Run run-1 (build.log)")
	assert.Contains(t, text, "  [2] Exec bin/app.exe\n      <- [1] obj\\a.obj")
	assert.Contains(t, text, "Diagnostics:\n  Warning: LineNum: 2")
}

func TestRenderMarkdownAndHTML(t *testing.T) {
	md, err := Render(sampleRun(), FormatMarkdown)
	require.NoError(t, err)
	assert.Contains(t, string(md), "# Build run run-1")
	assert.Contains(t, string(md), "| 2 | Exec | bin | bin/app.exe | obj\\\\a.obj | 1 |")
	assert.Less(t, strings.Index(string(md), "| VsCompile | 1 |"), strings.Index(string(md), "| Exec | 1 |"))

	html, err := Render(sampleRun(), FormatHTML)
	require.NoError(t, err)
	assert.Contains(t, string(html), "<table>")
	assert.Contains(t, string(html), "<h1>Build run run-1</h1>")
	assert.Contains(t, string(html), `obj\a.obj`)
}

func TestRenderStructured(t *testing.T) {
	out, err := Render(sampleRun(), FormatJSON)
	require.NoError(t, err)
	var fromJSON models.BuildRun
	require.NoError(t, json.Unmarshal(out, &fromJSON))
	assert.Equal(t, []int{1}, fromJSON.Items[1].Dependencies)

	out, err = Render(sampleRun(), FormatYAML)
	require.NoError(t, err)
	assert.Contains(t, string(out), "log_path: build.log")
	var fromYAML models.BuildRun
	require.NoError(t, yaml.Unmarshal(out, &fromYAML))
	assert.Equal(t, "run-1", fromYAML.ID)
}

func TestRenderUnknownFormat(t *testing.T) {
	_, err := Render(sampleRun(), "pdf")
	assert.ErrorContains(t, err, "unsupported report format")

	_, err = RenderSummaries(nil, "pdf")
	assert.Error(t, err)
}

func TestRenderSummaries(t *testing.T) {
	summaries := []models.BuildRunSummary{sampleRun().Summary()}

	out, err := RenderSummaries(summaries, FormatText)
	require.NoError(t, err)
	assert.Contains(t, string(out), "run-1  2025-03-01 12:00:00  build.log  items=2")

	out, err = RenderSummaries(summaries, FormatMarkdown)
	require.NoError(t, err)
	assert.Contains(t, string(out), "| run-1 | build.log | true | 2 |")

	out, err = RenderSummaries(summaries, FormatJSON)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"id": "run-1"`)
}
