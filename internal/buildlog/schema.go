package buildlog

import "strings"

// Schema is the option registry of one item kind. It is built once and
// never modified afterwards.
type Schema struct {
	kind          ItemKind
	caseSensitive bool
	prefixes      string
	order         []OptionSpec
	byName        map[string]OptionSpec
}

func newSchema(kind ItemKind, caseSensitive bool, prefixes string, specs ...OptionSpec) *Schema {
	s := &Schema{
		kind:          kind,
		caseSensitive: caseSensitive,
		prefixes:      prefixes,
		order:         specs,
		byName:        make(map[string]OptionSpec, len(specs)),
	}
	for _, spec := range specs {
		s.byName[s.fold(spec.Name)] = spec
	}
	return s
}

func (s *Schema) fold(name string) string {
	if s.caseSensitive {
		return name
	}
	return strings.ToLower(name)
}

// Kind returns the item kind owning this schema.
func (s *Schema) Kind() ItemKind { return s.kind }

// CaseSensitive reports whether option names are compared case-sensitively.
func (s *Schema) CaseSensitive() bool { return s.caseSensitive }

// Specs returns the registered options in registration order.
func (s *Schema) Specs() []OptionSpec {
	return append([]OptionSpec(nil), s.order...)
}

// Lookup finds an option by exact name.
func (s *Schema) Lookup(name string) (OptionSpec, bool) {
	spec, ok := s.byName[s.fold(name)]
	return spec, ok
}

// isSwitch reports whether tok uses one of the schema's switch prefixes.
func (s *Schema) isSwitch(tok string) bool {
	return len(tok) > 1 && strings.IndexByte(s.prefixes, tok[0]) >= 0
}

// isOperandPath reports whether a "/"-prefixed tok is an absolute POSIX
// path such as /tmp/b.o: it holds a further "/" and matches no switch.
func (s *Schema) isOperandPath(tok string) bool {
	if tok[0] != '/' || !strings.Contains(tok[1:], "/") {
		return false
	}
	_, _, ok := s.Match(tok[1:])
	return !ok
}

// Match resolves a switch body (the token without its prefix character).
// An exact match on the part before the first colon wins. Otherwise the
// longest option name that prefixes the body is used; options requiring an
// explicit colon never take part. Ties go to the lexically smallest name.
func (s *Schema) Match(body string) (spec OptionSpec, remainder string, ok bool) {
	name, rem, _ := strings.Cut(body, ":")
	if spec, ok := s.Lookup(name); ok {
		return spec, rem, true
	}

	var best OptionSpec
	found := false
	for _, candidate := range s.order {
		if candidate.RequiresColon {
			continue
		}
		n := len(candidate.Name)
		if n == 0 || len(body) < n || !s.equal(body[:n], candidate.Name) {
			continue
		}
		switch {
		case !found, n > len(best.Name):
			best, found = candidate, true
		case n == len(best.Name) && s.fold(candidate.Name) < s.fold(best.Name):
			best = candidate
		}
	}
	if !found {
		return OptionSpec{}, "", false
	}
	return best, body[len(best.Name):], true
}

func (s *Schema) equal(a, b string) bool {
	if s.caseSensitive {
		return a == b
	}
	return strings.EqualFold(a, b)
}

// SchemaFor returns the registry of a modeled item kind.
func SchemaFor(kind ItemKind) *Schema {
	return schemas[kind]
}

var schemas = map[ItemKind]*Schema{
	KindVsCompile:  newVsCompileSchema(),
	KindGccCompile: newGccCompileSchema(),
	KindLibrary:    newLibrarySchema(),
	KindExec:       newExecSchema(),
	KindManifest:   newManifestSchema(),
	KindObfuscated: newObfuscatedSchema(),
}
