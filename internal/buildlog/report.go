package buildlog

import (
	"fmt"
	"strings"
)

// Stats counts what a run saw.
type Stats struct {
	Lines     int              `json:"lines" yaml:"lines"`
	PerKind   map[ItemKind]int `json:"-" yaml:"-"`
	Helpers   int              `json:"helpers" yaml:"helpers"`
	Moc       int              `json:"moc" yaml:"moc"`
	Uic       int              `json:"uic" yaml:"uic"`
	Rcc       int              `json:"rcc" yaml:"rcc"`
	Unhandled int              `json:"unhandled" yaml:"unhandled"`
	Failed    int              `json:"failed" yaml:"failed"`
	Warnings  int              `json:"warnings" yaml:"warnings"`
	Errors    int              `json:"errors" yaml:"errors"`
	Continued int              `json:"continued" yaml:"continued"`
}

func newStats() Stats {
	return Stats{PerKind: make(map[ItemKind]int, len(AllKinds))}
}

func (s *Stats) countTool(t Tool) {
	switch t {
	case ToolHelperScript:
		s.Helpers++
	case ToolMoc:
		s.Moc++
	case ToolUic:
		s.Uic++
	case ToolRcc:
		s.Rcc++
	}
}

// Items returns the number of registered items across every kind.
func (s Stats) Items() int {
	n := 0
	for _, c := range s.PerKind {
		n += c
	}
	return n
}

// Result is the read-only outcome of one run.
type Result struct {
	Success     bool
	Message     string
	Stats       Stats
	Usages      []string
	Diagnostics []string

	// Buckets maps an owning directory to its items.
	Buckets map[string]*DirectoryBucket
	// TargetIndex maps a normalized target path to the producing item's line.
	TargetIndex map[string]int
	// SourceIndex maps a normalized source path to the consuming items' lines.
	SourceIndex map[string][]int

	agg *Aggregator
}

// Items returns the registered items in line order.
func (r *Result) Items() []Item {
	if r.agg == nil {
		return nil
	}
	return r.agg.Items()
}

// Item returns the registered item at line, the handle used by
// Dependencies and TargetRef.
func (r *Result) Item(line int) (Item, bool) {
	if r.agg == nil {
		return nil, false
	}
	return r.agg.Item(line)
}

// Directories returns the bucket directories in sorted order.
func (r *Result) Directories() []string {
	if r.agg == nil {
		return nil
	}
	return r.agg.Directories()
}

// Summary renders the end-of-run counts and anonymized usage directories.
func (r *Result) Summary() string {
	var sb strings.Builder
	sb.WriteString("Summary:")
	for _, kind := range AllKinds {
		fmt.Fprintf(&sb, " %s=%d", kind, r.Stats.PerKind[kind])
	}
	fmt.Fprintf(&sb, " Helpers=%d Moc=%d Uic=%d Rcc=%d", r.Stats.Helpers, r.Stats.Moc, r.Stats.Uic, r.Stats.Rcc)
	fmt.Fprintf(&sb, " Unhandled=%d Failed=%d Warnings=%d", r.Stats.Unhandled, r.Stats.Failed, r.Stats.Warnings)
	if len(r.Usages) > 0 {
		sb.WriteString("\nAnonymized paths:")
		for _, u := range r.Usages {
			sb.WriteString("\n  ")
			sb.WriteString(u)
		}
	}
	return sb.String()
}

func errorLine(line int, msg string) string {
	return fmt.Sprintf("ERROR: LineNum: %d %s", line, msg)
}

func warningLine(line int, msg string) string {
	return fmt.Sprintf("Warning: LineNum: %d %s", line, msg)
}
