package buildlog

import "strings"

const separators = `\/`

// dirOf returns the directory portion of p, accepting either separator.
// A path without a separator has no directory.
func dirOf(p string) string {
	i := strings.LastIndexAny(p, separators)
	if i < 0 {
		return ""
	}
	if i == 0 {
		return p[:1]
	}
	return p[:i]
}

// baseOf returns the last path element of p.
func baseOf(p string) string {
	return p[strings.LastIndexAny(p, separators)+1:]
}

// stem returns the last path element of p without its extension.
func stem(p string) string {
	base := baseOf(p)
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		return base[:i]
	}
	return base
}

func hasTrailingSeparator(p string) bool {
	return p != "" && strings.ContainsRune(separators, rune(p[len(p)-1]))
}

// pathKey normalizes a path for index lookups: separators unified and case
// folded, matching how the Windows toolchain resolves file names.
func pathKey(p string) string {
	return strings.ToLower(strings.ReplaceAll(p, `\`, "/"))
}

var leafSuffixes = []string{".c", ".cpp", ".cxx", ".h", ".moc"}

// IsLeafSource reports whether p names a raw source file rather than a build
// product: C/C++ sources and headers, and Qt meta-object files.
func IsLeafSource(p string) bool {
	lower := strings.ToLower(p)
	for _, suffix := range leafSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return strings.HasPrefix(baseOf(lower), "moc_")
}
