package buildlog

import "strings"

const (
	manifestOption       = "manifest"
	outputResourceOption = "outputresource"
)

// itemParser is the per-kind half of the tokenizer contract.
type itemParser interface {
	Item
	schema() *Schema
	// collect receives a positional operand.
	collect(tok string)
	// redirect receives the token following a bare ">"; false means the kind
	// has no use for it.
	redirect(tok string) (bool, error)
	// onSwitch may take over binding of a matched switch.
	onSwitch(spec OptionSpec, remainder string) (bool, error)
	rewritePaths(fn func(string) string)
	// finish derives sources and target once every token is bound.
	finish()
}

func (b *itemBase) redirect(string) (bool, error) { return false, nil }

func (b *itemBase) onSwitch(OptionSpec, string) (bool, error) { return false, nil }

func (b *itemBase) rewritePaths(fn func(string) string) {
	b.options.rewrite(fn)
}

func rewriteAll(list []string, fn func(string) string) {
	for i, s := range list {
		list[i] = fn(s)
	}
}

// VsCompileItem is a cl.exe invocation.
type VsCompileItem struct {
	itemBase
	files []string
}

func (*VsCompileItem) Kind() ItemKind    { return KindVsCompile }
func (*VsCompileItem) schema() *Schema   { return schemas[KindVsCompile] }
func (i *VsCompileItem) collect(t string) { i.files = append(i.files, t) }

// SourceFiles returns the positional source files.
func (i *VsCompileItem) SourceFiles() []string { return append([]string(nil), i.files...) }

func (i *VsCompileItem) redirect(tok string) (bool, error) {
	return true, i.options.bind(textOpt("Fo"), tok)
}

func (i *VsCompileItem) rewritePaths(fn func(string) string) {
	i.itemBase.rewritePaths(fn)
	rewriteAll(i.files, fn)
}

func (i *VsCompileItem) finish() {
	i.sources = append(append([]string(nil), i.files...), i.options.List("Tc")...)
	i.sources = append(i.sources, i.options.List("Tp")...)

	out := i.options.Text("Fo")
	switch {
	case out != "" && !hasTrailingSeparator(out):
		i.target = out
	case len(i.sources) > 0:
		i.target = out + stem(i.sources[0]) + ".obj"
	}
}

// GccCompileItem is a GNU-style compiler driver invocation.
type GccCompileItem struct {
	itemBase
	files []string
}

func (*GccCompileItem) Kind() ItemKind    { return KindGccCompile }
func (*GccCompileItem) schema() *Schema   { return schemas[KindGccCompile] }
func (i *GccCompileItem) collect(t string) { i.files = append(i.files, t) }

// SourceFiles returns the positional source files.
func (i *GccCompileItem) SourceFiles() []string { return append([]string(nil), i.files...) }

func (i *GccCompileItem) redirect(tok string) (bool, error) {
	return true, i.options.bind(textOpt("o").separate(), tok)
}

func (i *GccCompileItem) rewritePaths(fn func(string) string) {
	i.itemBase.rewritePaths(fn)
	rewriteAll(i.files, fn)
}

func (i *GccCompileItem) finish() {
	i.sources = append([]string(nil), i.files...)
	i.target = i.options.Text("o")
	if compileOnly, _ := i.options.Flag("c"); i.target == "" && compileOnly && len(i.sources) > 0 {
		i.target = stem(i.sources[0]) + ".o"
	}
}

// LibraryItem is a lib.exe invocation.
type LibraryItem struct {
	itemBase
	members []string
}

func (*LibraryItem) Kind() ItemKind    { return KindLibrary }
func (*LibraryItem) schema() *Schema   { return schemas[KindLibrary] }
func (i *LibraryItem) collect(t string) { i.members = append(i.members, t) }

// Members returns the positional archive inputs.
func (i *LibraryItem) Members() []string { return append([]string(nil), i.members...) }

func (i *LibraryItem) rewritePaths(fn func(string) string) {
	i.itemBase.rewritePaths(fn)
	rewriteAll(i.members, fn)
}

func (i *LibraryItem) finish() {
	i.sources = append([]string(nil), i.members...)
	if def := i.options.Text("DEF"); def != "" {
		i.sources = append(i.sources, def)
	}
	i.target = i.options.Text("OUT")
	if i.target == "" && len(i.members) > 0 {
		i.target = stem(i.members[0]) + ".lib"
	}
}

// ExecItem is a link.exe invocation.
type ExecItem struct {
	itemBase
	inputs        []string
	responseFiles []string
}

func (*ExecItem) Kind() ItemKind  { return KindExec }
func (*ExecItem) schema() *Schema { return schemas[KindExec] }

// Inputs returns the ordinary link inputs.
func (i *ExecItem) Inputs() []string { return append([]string(nil), i.inputs...) }

// ResponseFiles returns the @file operands without their "@".
func (i *ExecItem) ResponseFiles() []string { return append([]string(nil), i.responseFiles...) }

func (i *ExecItem) collect(tok string) {
	if rsp, ok := strings.CutPrefix(tok, "@"); ok && rsp != "" {
		i.responseFiles = append(i.responseFiles, rsp)
		return
	}
	i.inputs = append(i.inputs, tok)
}

func (i *ExecItem) rewritePaths(fn func(string) string) {
	i.itemBase.rewritePaths(fn)
	rewriteAll(i.inputs, fn)
	rewriteAll(i.responseFiles, fn)
}

func (i *ExecItem) finish() {
	i.sources = append(append([]string(nil), i.inputs...), i.responseFiles...)
	i.target = i.options.Text("OUT")
	if i.target == "" && len(i.inputs) > 0 {
		ext := ".exe"
		if dll, _ := i.options.Flag("DLL"); dll {
			ext = ".dll"
		}
		i.target = stem(i.inputs[0]) + ext
	}
}

// ManifestItem is an mt.exe invocation. Its sources are manifest fragments.
type ManifestItem struct {
	itemBase
	open bool
}

func (*ManifestItem) Kind() ItemKind  { return KindManifest }
func (*ManifestItem) schema() *Schema { return schemas[KindManifest] }

// Manifests returns the manifest fragment paths.
func (i *ManifestItem) Manifests() []string { return i.options.List(manifestOption) }

// OutputResource returns the raw outputresource value, e.g. "app.exe;#1".
func (i *ManifestItem) OutputResource() string { return i.options.Text(outputResourceOption) }

// Open reports whether the manifest option was still collecting at end of line.
func (i *ManifestItem) Open() bool { return i.open }

func (i *ManifestItem) onSwitch(spec OptionSpec, remainder string) (bool, error) {
	if spec.Name != manifestOption {
		i.open = false
		return false, nil
	}
	i.open = true
	if remainder == "" {
		return true, nil
	}
	return true, i.options.bind(spec, remainder)
}

func (i *ManifestItem) collect(tok string) {
	if !i.open {
		i.unrecognized = append(i.unrecognized, tok)
		return
	}
	i.options.add(manifestOption, tok)
}

// appendFragments continues an open manifest option on a following line.
func (i *ManifestItem) appendFragments(frags []string) {
	for _, f := range frags {
		i.options.add(manifestOption, f)
	}
	i.sources = append(i.sources, frags...)
}

func (i *ManifestItem) finish() {
	i.sources = i.options.List(manifestOption)
	res, _, _ := strings.Cut(i.options.Text(outputResourceOption), ";")
	i.target = res
	if i.target == "" {
		i.target = i.options.Text("out")
	}
}

// ObfuscatedItem is an obfuscator invocation: one input, one -o output.
type ObfuscatedItem struct {
	itemBase
	input string
}

func (*ObfuscatedItem) Kind() ItemKind  { return KindObfuscated }
func (*ObfuscatedItem) schema() *Schema { return schemas[KindObfuscated] }

// InputFile returns the sole positional input.
func (i *ObfuscatedItem) InputFile() string { return i.input }

func (i *ObfuscatedItem) collect(tok string) {
	if i.input != "" {
		i.unrecognized = append(i.unrecognized, tok)
		return
	}
	i.input = tok
}

func (i *ObfuscatedItem) rewritePaths(fn func(string) string) {
	i.itemBase.rewritePaths(fn)
	if i.input != "" {
		i.input = fn(i.input)
	}
}

func (i *ObfuscatedItem) finish() {
	i.sources = nil
	if i.input != "" {
		i.sources = []string{i.input}
	}
	i.target = i.options.Text("o")
}

func newItemParser(kind ItemKind, line int) itemParser {
	b := newItemBase(line)
	switch kind {
	case KindVsCompile:
		return &VsCompileItem{itemBase: b}
	case KindGccCompile:
		return &GccCompileItem{itemBase: b}
	case KindLibrary:
		return &LibraryItem{itemBase: b}
	case KindExec:
		return &ExecItem{itemBase: b}
	case KindManifest:
		return &ManifestItem{itemBase: b}
	case KindObfuscated:
		return &ObfuscatedItem{itemBase: b}
	}
	panic("buildlog: unknown item kind " + kind.String())
}
