package main

import (
	"fmt"
	"strings"

	"github.com/ternarybob/buildlog/internal/models"
)

// formatParseHeader prefixes a parse report with the run identity
func formatParseHeader(run *models.BuildRun, saved bool) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("**Run ID:** %s\n", run.ID))
	if saved {
		sb.WriteString("**Stored:** yes (use get_run to fetch it again)\n")
	}
	sb.WriteString("\n")
	return sb.String()
}

// formatItem formats a single build item as markdown
func formatItem(run *models.BuildRun, item *models.BuildItem) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Line %d: %s\n\n", item.Line, item.Kind))
	sb.WriteString(fmt.Sprintf("**Directory:** %s\n", item.Directory))
	if item.Target != "" {
		sb.WriteString(fmt.Sprintf("**Target:** %s\n", item.Target))
	}
	if item.TargetRef != 0 {
		sb.WriteString(fmt.Sprintf("**Consumed by:** line %d\n", item.TargetRef))
	}

	if len(item.Sources) > 0 {
		sb.WriteString("\n## Sources\n\n")
		for _, source := range item.Sources {
			sb.WriteString(fmt.Sprintf("- %s\n", source))
		}
	}

	if len(item.Dependencies) > 0 {
		sb.WriteString("\n## Dependencies\n\n")
		for _, dep := range item.Dependencies {
			target := ""
			for i := range run.Items {
				if run.Items[i].Line == dep {
					target = run.Items[i].Target
					break
				}
			}
			sb.WriteString(fmt.Sprintf("- line %d: %s\n", dep, target))
		}
	}

	if len(item.Options) > 0 {
		sb.WriteString("\n## Options\n\n")
		for _, opt := range item.Options {
			if len(opt.Values) == 0 {
				sb.WriteString(fmt.Sprintf("- `%s` (%s)\n", opt.Name, opt.Shape))
				continue
			}
			sb.WriteString(fmt.Sprintf("- `%s` (%s): %s\n", opt.Name, opt.Shape, strings.Join(opt.Values, ", ")))
		}
	}

	if len(item.Unrecognized) > 0 {
		sb.WriteString(fmt.Sprintf("\n**Unrecognized:** %s\n", strings.Join(item.Unrecognized, " ")))
	}
	for _, warning := range item.Warnings {
		sb.WriteString(fmt.Sprintf("\n> Warning: %s\n", warning))
	}

	return sb.String()
}
