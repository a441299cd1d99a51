package ingest

import (
	"sort"
	"time"

	"github.com/ternarybob/buildlog/internal/buildlog"
	"github.com/ternarybob/buildlog/internal/models"
)

// Snapshot flattens a parser result into its persisted form
func Snapshot(id, logPath, root string, result *buildlog.Result, started time.Time) *models.BuildRun {
	run := &models.BuildRun{
		ID:            id,
		LogPath:       logPath,
		AnonymizeRoot: root,
		Success:       result.Success,
		Message:       result.Message,
		Stats:         snapshotStats(result.Stats),
		Usages:        result.Usages,
		Diagnostics:   result.Diagnostics,
		CreatedAt:     started,
		DurationMS:    time.Since(started).Milliseconds(),
	}

	for _, dir := range result.Directories() {
		bucket := result.Buckets[dir]
		entry := models.BuildDirectory{Path: dir, Items: make(map[string][]int)}
		for _, kind := range buildlog.AllKinds {
			for _, item := range bucket.Items[kind] {
				entry.Items[kind.String()] = append(entry.Items[kind.String()], item.Line())
			}
		}
		run.Directories = append(run.Directories, entry)
	}

	for _, item := range result.Items() {
		run.Items = append(run.Items, snapshotItem(item))
	}
	return run
}

func snapshotStats(stats buildlog.Stats) models.BuildRunStats {
	perKind := make(map[string]int, len(buildlog.AllKinds))
	for _, kind := range buildlog.AllKinds {
		perKind[kind.String()] = stats.PerKind[kind]
	}
	return models.BuildRunStats{
		Lines:     stats.Lines,
		PerKind:   perKind,
		Helpers:   stats.Helpers,
		Moc:       stats.Moc,
		Uic:       stats.Uic,
		Rcc:       stats.Rcc,
		Unhandled: stats.Unhandled,
		Failed:    stats.Failed,
		Warnings:  stats.Warnings,
		Errors:    stats.Errors,
		Continued: stats.Continued,
	}
}

func snapshotItem(item buildlog.Item) models.BuildItem {
	out := models.BuildItem{
		Line:         item.Line(),
		Kind:         item.Kind().String(),
		Directory:    buildlog.OwnerDirectory(item),
		Target:       item.TargetFile(),
		Sources:      item.AllSources(),
		Unrecognized: item.Unrecognized(),
		Warnings:     item.Warnings(),
		Dependencies: item.Dependencies(),
		TargetRef:    item.TargetRef(),
	}
	sort.Ints(out.Dependencies)

	opts := item.Options()
	for _, name := range opts.Names() {
		value, _ := opts.Get(name)
		out.Options = append(out.Options, models.BuildOption{
			Name:   name,
			Shape:  value.Shape().String(),
			Values: value.Strings(),
		})
	}
	return out
}
