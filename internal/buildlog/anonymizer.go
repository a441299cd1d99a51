package buildlog

import (
	"regexp"
	"sort"
	"strings"
)

// DefaultPlaceholder replaces the anonymization root in captured paths.
const DefaultPlaceholder = "$(ROOT)"

// Anonymizer rewrites paths under a configured root directory into a
// placeholder, case-insensitively and for either separator style.
type Anonymizer struct {
	re          *regexp.Regexp
	placeholder string
	usages      map[string]struct{}
}

// NewAnonymizer builds an anonymizer for root. An empty root disables
// rewriting; Apply then returns its input unchanged.
func NewAnonymizer(root, placeholder string) *Anonymizer {
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}
	a := &Anonymizer{placeholder: placeholder, usages: make(map[string]struct{})}

	trimmed := strings.TrimRight(root, `\/`)
	if trimmed == "" {
		trimmed = root
	}
	if trimmed == "" {
		return a
	}

	var pattern strings.Builder
	pattern.WriteString("(?i)")
	for _, r := range trimmed {
		if r == '\\' || r == '/' {
			pattern.WriteString(`[\\/]`)
			continue
		}
		pattern.WriteString(regexp.QuoteMeta(string(r)))
	}
	pattern.WriteString(`[\\/]?`)
	a.re = regexp.MustCompile(pattern.String())
	return a
}

// Enabled reports whether a root is configured.
func (a *Anonymizer) Enabled() bool {
	return a != nil && a.re != nil
}

// Apply rewrites every occurrence of the root in s. Rewritten inputs are
// recorded by directory for Usages.
func (a *Anonymizer) Apply(s string) string {
	if !a.Enabled() || s == "" {
		return s
	}
	if !a.re.MatchString(s) {
		return s
	}

	dir := dirOf(s)
	if dir == "" {
		dir = s
	}
	a.usages[dir] = struct{}{}

	return a.re.ReplaceAllStringFunc(s, func(match string) string {
		if last := match[len(match)-1]; last == '\\' || last == '/' {
			return a.placeholder + "/"
		}
		return a.placeholder
	})
}

// Usages returns the sorted, de-duplicated directories of rewritten paths.
func (a *Anonymizer) Usages() []string {
	if a == nil {
		return nil
	}
	out := make([]string, 0, len(a.usages))
	for dir := range a.usages {
		out = append(out, dir)
	}
	sort.Strings(out)
	return out
}
