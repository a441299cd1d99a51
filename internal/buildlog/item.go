// -----------------------------------------------------------------------
// Item model - one parsed tool invocation per log line
// -----------------------------------------------------------------------

package buildlog

import "fmt"

// ItemKind is the closed set of modeled tool invocations.
type ItemKind int

const (
	KindVsCompile ItemKind = iota
	KindGccCompile
	KindLibrary
	KindExec
	KindManifest
	KindObfuscated
)

// AllKinds lists every item kind in report order.
var AllKinds = []ItemKind{
	KindVsCompile,
	KindGccCompile,
	KindLibrary,
	KindExec,
	KindManifest,
	KindObfuscated,
}

func (k ItemKind) String() string {
	switch k {
	case KindVsCompile:
		return "VsCompile"
	case KindGccCompile:
		return "GccCompile"
	case KindLibrary:
		return "Library"
	case KindExec:
		return "Exec"
	case KindManifest:
		return "Manifest"
	case KindObfuscated:
		return "Obfuscated"
	default:
		return fmt.Sprintf("ItemKind(%d)", int(k))
	}
}

// IsCompile reports whether the kind compiles raw sources.
func (k ItemKind) IsCompile() bool {
	return k == KindVsCompile || k == KindGccCompile
}

// Status is Ok or Failed(Message).
type Status struct {
	Failed  bool
	Message string
}

// OK reports whether the item parsed without conflict.
func (s Status) OK() bool { return !s.Failed }

func (s Status) String() string {
	if s.Failed {
		return "Failed: " + s.Message
	}
	return "Ok"
}

// Item is one parsed tool invocation. The set of implementations is closed:
// *VsCompileItem, *GccCompileItem, *LibraryItem, *ExecItem, *ManifestItem
// and *ObfuscatedItem.
type Item interface {
	Kind() ItemKind
	Line() int
	Options() *Options
	Unrecognized() []string
	Status() Status
	Warnings() []string

	// TargetFile is the path the item produces, or "".
	TargetFile() string
	// AllSources lists every input path in declaration order.
	AllSources() []string
	// FirstSourceFile is the head of AllSources, or "".
	FirstSourceFile() string

	// Dependencies are the line numbers of items producing this item's sources.
	Dependencies() []int
	// TargetRef is the line number of the item consuming this item's output, or 0.
	TargetRef() int

	base() *itemBase
}

type itemBase struct {
	line         int
	options      *Options
	unrecognized []string
	status       Status
	warnings     []string

	sources []string
	target  string

	dependencies []int
	targetRef    int
}

func newItemBase(line int) itemBase {
	return itemBase{line: line, options: newOptions()}
}

func (b *itemBase) Line() int               { return b.line }
func (b *itemBase) Options() *Options       { return b.options }
func (b *itemBase) Status() Status          { return b.status }
func (b *itemBase) TargetFile() string      { return b.target }
func (b *itemBase) TargetRef() int          { return b.targetRef }
func (b *itemBase) base() *itemBase         { return b }
func (b *itemBase) Unrecognized() []string  { return append([]string(nil), b.unrecognized...) }
func (b *itemBase) Warnings() []string      { return append([]string(nil), b.warnings...) }
func (b *itemBase) AllSources() []string    { return append([]string(nil), b.sources...) }
func (b *itemBase) Dependencies() []int     { return append([]int(nil), b.dependencies...) }

func (b *itemBase) FirstSourceFile() string {
	if len(b.sources) == 0 {
		return ""
	}
	return b.sources[0]
}

func (b *itemBase) fail(err error) {
	b.status = Status{Failed: true, Message: err.Error()}
}

func (b *itemBase) warn(format string, args ...any) {
	b.warnings = append(b.warnings, fmt.Sprintf(format, args...))
}

func (b *itemBase) addDependency(line int) {
	for _, l := range b.dependencies {
		if l == line {
			return
		}
	}
	b.dependencies = append(b.dependencies, line)
}
