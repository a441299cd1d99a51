// -----------------------------------------------------------------------
// Driver - reads a build log, parses each line and resolves the graph
// -----------------------------------------------------------------------

package buildlog

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// MaxLineSize bounds a single log line.
const MaxLineSize = 10 * 1024 * 1024

// Messages carried by an unsuccessful Result.
const (
	MessageCanceled = "Process Canceled"
	MessageOpen     = "cannot open log file"
)

// ErrCanceled is returned when the context ends before every line is read.
var ErrCanceled = errors.New("process canceled")

// Reporter receives every diagnostic line and the final summary.
type Reporter func(msg string)

// Driver runs the parse. Each Run starts from empty state.
type Driver struct {
	root        string
	placeholder string
	cacheSize   int
	reporter    Reporter
}

// Option configures a Driver.
type Option func(*Driver)

// WithAnonymizeRoot sets the directory rewritten to the placeholder.
func WithAnonymizeRoot(root string) Option {
	return func(d *Driver) { d.root = root }
}

// WithPlaceholder overrides DefaultPlaceholder.
func WithPlaceholder(placeholder string) Option {
	return func(d *Driver) { d.placeholder = placeholder }
}

// WithCacheSize bounds the per-run leaf-source cache.
func WithCacheSize(size int) Option {
	return func(d *Driver) { d.cacheSize = size }
}

// WithReporter installs the diagnostic callback.
func WithReporter(r Reporter) Option {
	return func(d *Driver) { d.reporter = r }
}

// NewDriver creates a Driver.
func NewDriver(opts ...Option) *Driver {
	d := &Driver{
		placeholder: DefaultPlaceholder,
		cacheSize:   DefaultSuffixCacheSize,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run parses the log file at path.
func (d *Driver) Run(ctx context.Context, path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		msg := fmt.Sprintf("%s: %v", MessageOpen, err)
		d.emit(msg)
		return &Result{Success: false, Message: msg}, fmt.Errorf("%s %s: %w", MessageOpen, path, err)
	}
	defer f.Close()

	return d.RunReader(ctx, f)
}

// RunReader parses a log read from r.
func (d *Driver) RunReader(ctx context.Context, r io.Reader) (*Result, error) {
	leaves, err := newLeafCache(d.cacheSize)
	if err != nil {
		return &Result{Success: false, Message: err.Error()}, err
	}

	run := &run{
		driver: d,
		agg:    NewAggregator(),
		anon:   NewAnonymizer(d.root, d.placeholder),
		stats:  newStats(),
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		if err := ctx.Err(); err != nil {
			d.emit(MessageCanceled)
			return &Result{Success: false, Message: MessageCanceled}, fmt.Errorf("%w: %w", ErrCanceled, err)
		}
		run.line(lineNum, strings.Join(strings.Fields(scanner.Text()), " "))
	}
	if err := scanner.Err(); err != nil {
		msg := fmt.Sprintf("failed to read log: %v", err)
		d.emit(msg)
		return &Result{Success: false, Message: msg}, fmt.Errorf("failed to read log: %w", err)
	}
	run.stats.Lines = lineNum

	res := &resolver{agg: run.agg, leaves: leaves, report: run.warn}
	res.resolve()

	result := &Result{
		Success:     true,
		Stats:       run.stats,
		Usages:      run.anon.Usages(),
		Diagnostics: run.diagnostics,
		Buckets:     run.agg.Buckets(),
		TargetIndex: run.agg.targetIndex,
		SourceIndex: run.agg.sourceIndex,
		agg:         run.agg,
	}
	result.Message = result.Summary()
	d.emit(result.Message)
	return result, nil
}

func (d *Driver) emit(msg string) {
	if d.reporter != nil {
		d.reporter(msg)
	}
}

// run holds the mutable state of one pass over a log.
type run struct {
	driver      *Driver
	agg         *Aggregator
	anon        *Anonymizer
	stats       Stats
	diagnostics []string

	// open is the manifest item whose manifest option may continue on the next line.
	open *ManifestItem
}

func (r *run) line(num int, text string) {
	if text == "" {
		return
	}

	tool, args := Classify(text)

	if r.open != nil {
		if tool == ToolNone && isContinuation(text) {
			r.continueManifest(strings.Fields(text))
			return
		}
		r.open = nil
	}

	r.stats.countTool(tool)
	kind, modeled := tool.ItemKind()
	switch {
	case tool == ToolNone:
		r.stats.Unhandled++
		r.error(num, "unhandled line: "+text)
		return
	case tool == ToolHelperScript:
		r.warn(num, "helper script invocation not modeled: %s", text)
		return
	case !modeled:
		return
	}

	item := ParseItem(kind, num, args, r.anon)
	if st := item.Status(); !st.OK() {
		r.stats.Failed++
		r.error(num, st.Message)
		return
	}
	for _, w := range item.Warnings() {
		r.warn(num, "%s", w)
	}

	r.agg.Register(item)
	r.stats.PerKind[kind]++
	if m, ok := item.(*ManifestItem); ok && m.Open() {
		r.open = m
	}
}

func (r *run) continueManifest(frags []string) {
	for i, f := range frags {
		frags[i] = r.anon.Apply(f)
	}
	r.open.appendFragments(frags)
	r.agg.addSources(r.open, frags)
	r.stats.Continued++
}

func (r *run) error(line int, msg string) {
	r.stats.Errors++
	r.report(errorLine(line, msg))
}

func (r *run) warn(line int, format string, args ...any) {
	r.stats.Warnings++
	r.report(warningLine(line, fmt.Sprintf(format, args...)))
}

func (r *run) report(msg string) {
	r.diagnostics = append(r.diagnostics, msg)
	r.driver.emit(msg)
}
