package models

import "time"

// BuildRun is the persisted snapshot of one parsed build log
type BuildRun struct {
	ID            string           `json:"id" yaml:"id"`
	LogPath       string           `json:"log_path" yaml:"log_path"`
	AnonymizeRoot string           `json:"anonymize_root,omitempty" yaml:"anonymize_root,omitempty"`
	Success       bool             `json:"success" yaml:"success"`
	Message       string           `json:"message" yaml:"message"`
	Stats         BuildRunStats    `json:"stats" yaml:"stats"`
	Usages        []string         `json:"usages,omitempty" yaml:"usages,omitempty"`
	Diagnostics   []string         `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
	Directories   []BuildDirectory `json:"directories" yaml:"directories"`
	Items         []BuildItem      `json:"items" yaml:"items"`
	CreatedAt     time.Time        `json:"created_at" yaml:"created_at"`
	DurationMS    int64            `json:"duration_ms" yaml:"duration_ms"`
}

// BuildRunStats mirrors the parser counters with kinds keyed by name
type BuildRunStats struct {
	Lines     int            `json:"lines" yaml:"lines"`
	PerKind   map[string]int `json:"per_kind" yaml:"per_kind"`
	Helpers   int            `json:"helpers" yaml:"helpers"`
	Moc       int            `json:"moc" yaml:"moc"`
	Uic       int            `json:"uic" yaml:"uic"`
	Rcc       int            `json:"rcc" yaml:"rcc"`
	Unhandled int            `json:"unhandled" yaml:"unhandled"`
	Failed    int            `json:"failed" yaml:"failed"`
	Warnings  int            `json:"warnings" yaml:"warnings"`
	Errors    int            `json:"errors" yaml:"errors"`
	Continued int            `json:"continued" yaml:"continued"`
}

// BuildDirectory is one owning directory and the lines of its items per kind
type BuildDirectory struct {
	Path  string           `json:"path" yaml:"path"`
	Items map[string][]int `json:"items" yaml:"items"`
}

// BuildItem is one registered tool invocation
type BuildItem struct {
	Line         int           `json:"line" yaml:"line"`
	Kind         string        `json:"kind" yaml:"kind"`
	Directory    string        `json:"directory" yaml:"directory"`
	Target       string        `json:"target,omitempty" yaml:"target,omitempty"`
	Sources      []string      `json:"sources,omitempty" yaml:"sources,omitempty"`
	Options      []BuildOption `json:"options,omitempty" yaml:"options,omitempty"`
	Unrecognized []string      `json:"unrecognized,omitempty" yaml:"unrecognized,omitempty"`
	Warnings     []string      `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Dependencies []int         `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	TargetRef    int           `json:"target_ref,omitempty" yaml:"target_ref,omitempty"`
}

// BuildOption is a bound switch and its value(s)
type BuildOption struct {
	Name   string   `json:"name" yaml:"name"`
	Shape  string   `json:"shape" yaml:"shape"`
	Values []string `json:"values" yaml:"values"`
}

// BuildRunSummary is the list view of a stored run
type BuildRunSummary struct {
	ID        string    `json:"id" yaml:"id"`
	LogPath   string    `json:"log_path" yaml:"log_path"`
	Success   bool      `json:"success" yaml:"success"`
	Items     int       `json:"items" yaml:"items"`
	Unhandled int       `json:"unhandled" yaml:"unhandled"`
	Failed    int       `json:"failed" yaml:"failed"`
	Warnings  int       `json:"warnings" yaml:"warnings"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Summary returns the list view of the run
func (r *BuildRun) Summary() BuildRunSummary {
	return BuildRunSummary{
		ID:        r.ID,
		LogPath:   r.LogPath,
		Success:   r.Success,
		Items:     len(r.Items),
		Unhandled: r.Stats.Unhandled,
		Failed:    r.Stats.Failed,
		Warnings:  r.Stats.Warnings,
		CreatedAt: r.CreatedAt,
	}
}
