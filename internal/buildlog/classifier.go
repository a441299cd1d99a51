package buildlog

import "strings"

// Tool identifies the program invoked by a log line.
type Tool int

const (
	ToolNone Tool = iota
	ToolCL
	ToolGCC
	ToolLib
	ToolLink
	ToolMT
	ToolHelperScript
	ToolObfuscator
	ToolMoc
	ToolUic
	ToolRcc
)

func (t Tool) String() string {
	switch t {
	case ToolCL:
		return "cl"
	case ToolGCC:
		return "gcc"
	case ToolLib:
		return "lib"
	case ToolLink:
		return "link"
	case ToolMT:
		return "mt"
	case ToolHelperScript:
		return "helper-script"
	case ToolObfuscator:
		return "obfuscator"
	case ToolMoc:
		return "moc"
	case ToolUic:
		return "uic"
	case ToolRcc:
		return "rcc"
	default:
		return "none"
	}
}

// ItemKind returns the item kind the tool produces. Helper scripts and code
// generators produce no item.
func (t Tool) ItemKind() (ItemKind, bool) {
	switch t {
	case ToolCL:
		return KindVsCompile, true
	case ToolGCC:
		return KindGccCompile, true
	case ToolLib:
		return KindLibrary, true
	case ToolLink:
		return KindExec, true
	case ToolMT:
		return KindManifest, true
	case ToolObfuscator:
		return KindObfuscated, true
	}
	return 0, false
}

// IsCodeGenerator reports whether the tool is a Qt code generator.
func (t Tool) IsCodeGenerator() bool {
	return t == ToolMoc || t == ToolUic || t == ToolRcc
}

var gccNames = map[string]bool{
	"gcc":     true,
	"g++":     true,
	"cc":      true,
	"c++":     true,
	"clang":   true,
	"clang++": true,
}

// toolName reduces the first token of a line to a comparable program name.
func toolName(tok string) string {
	name := strings.ToLower(baseOf(strings.Trim(tok, `"'`)))
	return strings.TrimSuffix(name, ".exe")
}

// Classify identifies the tool invoked by a normalized line and returns the
// remaining argument text. The first matching rule wins.
func Classify(line string) (Tool, string) {
	first, args := splitProgram(line)
	if first == "" {
		return ToolNone, ""
	}

	if tool := toolFor(toolName(first)); tool != ToolNone {
		return tool, args
	}
	if program, rest, ok := spacedProgram(line); ok {
		return toolFor(toolName(program)), rest
	}
	return ToolNone, args
}

// toolFor maps a program name from toolName to its tool.
func toolFor(name string) Tool {
	switch {
	case name == "cl":
		return ToolCL
	case gccNames[name], strings.HasSuffix(name, "-gcc"), strings.HasSuffix(name, "-g++"):
		return ToolGCC
	case name == "lib":
		return ToolLib
	case name == "link":
		return ToolLink
	case name == "mt":
		return ToolMT
	case name == "cmd", strings.HasSuffix(name, ".bat"), strings.HasSuffix(name, ".cmd"):
		return ToolHelperScript
	case name == "obfuscator":
		return ToolObfuscator
	case name == "moc":
		return ToolMoc
	case name == "uic":
		return ToolUic
	case name == "rcc":
		return ToolRcc
	}
	return ToolNone
}

// splitProgram separates the program token from its arguments. A quoted
// program path may contain spaces.
func splitProgram(line string) (string, string) {
	if strings.HasPrefix(line, `"`) {
		if end := strings.IndexByte(line[1:], '"'); end >= 0 {
			return line[:end+2], strings.TrimSpace(line[end+2:])
		}
	}
	first, args, _ := strings.Cut(line, " ")
	return first, args
}

// spacedProgram finds an unquoted program path containing spaces, such as
// C:\Program Files (x86)\...\cl.exe. The line must start with a path and the
// program must end in ".exe"; switch tokens end the search.
func spacedProgram(line string) (string, string, bool) {
	first, _, _ := strings.Cut(line, " ")
	if !strings.ContainsAny(first, separators) && !strings.Contains(first, ":") {
		return "", "", false
	}

	end := len(first)
	for end < len(line) {
		next := strings.IndexByte(line[end+1:], ' ')
		tokEnd := len(line)
		if next >= 0 {
			tokEnd = end + 1 + next
		}
		tok := line[end+1 : tokEnd]
		if tok == "" || tok[0] == '-' || tok[0] == '/' {
			return "", "", false
		}
		end = tokEnd

		program := line[:end]
		if strings.HasSuffix(strings.ToLower(tok), ".exe") && toolFor(toolName(program)) != ToolNone {
			return program, strings.TrimSpace(line[end:]), true
		}
	}
	return "", "", false
}

// isContinuation reports whether line can extend an open manifest option:
// it names no tool and carries no switch tokens.
func isContinuation(line string) bool {
	if tool, _ := Classify(line); tool != ToolNone {
		return false
	}
	for _, tok := range strings.Fields(line) {
		if len(tok) > 1 && (tok[0] == '-' || tok[0] == '/') {
			return false
		}
	}
	return true
}
