package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ternarybob/buildlog/internal/models"
)

func TestFormatItem(t *testing.T) {
	run := &models.BuildRun{
		ID: "run-1",
		Items: []models.BuildItem{
			{Line: 1, Kind: "VsCompile", Directory: "src", Target: "obj/a.obj", Sources: []string{"src/a.cpp"}, TargetRef: 2},
			{
				Line:         2,
				Kind:         "Exec",
				Directory:    "bin",
				Target:       "bin/app.exe",
				Sources:      []string{"obj/a.obj"},
				Dependencies: []int{1},
				Options:      []models.BuildOption{{Name: "OUT", Shape: "value", Values: []string{"bin/app.exe"}}, {Name: "DEBUG", Shape: "flag"}},
				Warnings:     []string{"unresolved dependency 'kernel32.lib'"},
			},
		},
	}

	out := formatItem(run, &run.Items[1])
	assert.Contains(t, out, "# Line 2: Exec")
	assert.Contains(t, out, "- line 1: obj/a.obj")
	assert.Contains(t, out, "- `OUT` (value): bin/app.exe")
	assert.Contains(t, out, "- `DEBUG` (flag)\n")
	assert.Contains(t, out, "> Warning: unresolved dependency 'kernel32.lib'")
	assert.NotContains(t, out, "Consumed by")

	out = formatItem(run, &run.Items[0])
	assert.Contains(t, out, "**Consumed by:** line 2")
}

func TestFormatParseHeader(t *testing.T) {
	run := &models.BuildRun{ID: "abc"}
	assert.Equal(t, "**Run ID:** abc\n\n", formatParseHeader(run, false))
	assert.Contains(t, formatParseHeader(run, true), "**Stored:** yes")
}
