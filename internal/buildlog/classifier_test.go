package buildlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		line     string
		wantTool Tool
		wantArgs string
	}{
		{`C:\VC\bin\cl.exe /c a.cpp`, ToolCL, "/c a.cpp"},
		{"CL /c a.cpp", ToolCL, "/c a.cpp"},
		{`"C:\Program Files\VC\bin\cl.exe" /c`, ToolCL, "/c"},
		{`C:\Program Files (x86)\Microsoft Visual Studio\VC\bin\cl.exe /c /Fo a.obj a.cpp`, ToolCL, "/c /Fo a.obj a.cpp"},
		{`C:\Program Files\VC\bin\link.exe /OUT:a.exe a.obj`, ToolLink, "/OUT:a.exe a.obj"},
		{`C:\Program Files\mingw\bin\g++.exe -c a.cpp`, ToolGCC, "-c a.cpp"},
		{`C:\ws\out\app.exe is up to date`, ToolNone, "is up to date"},
		{"gcc -c a.c", ToolGCC, "-c a.c"},
		{"/usr/bin/g++ -c a.cpp", ToolGCC, "-c a.cpp"},
		{"clang++ -c a.cpp", ToolGCC, "-c a.cpp"},
		{"arm-none-eabi-gcc -c a.c", ToolGCC, "-c a.c"},
		{"x86_64-linux-gnu-g++ -c a.cpp", ToolGCC, "-c a.cpp"},
		{"lib.exe /OUT:a.lib", ToolLib, "/OUT:a.lib"},
		{"LINK /OUT:a.exe", ToolLink, "/OUT:a.exe"},
		{"mt.exe -manifest a.manifest", ToolMT, "-manifest a.manifest"},
		{"build.bat x86", ToolHelperScript, "x86"},
		{"prebuild.cmd", ToolHelperScript, ""},
		{"cmd /c copy a b", ToolHelperScript, "/c copy a b"},
		{"obfuscator in.js -o out.js", ToolObfuscator, "in.js -o out.js"},
		{"moc.exe widget.h -o moc_widget.cpp", ToolMoc, "widget.h -o moc_widget.cpp"},
		{"uic form.ui", ToolUic, "form.ui"},
		{"rcc res.qrc", ToolRcc, "res.qrc"},
		{"Compiling...", ToolNone, ""},
		{"clink.exe /x", ToolNone, "/x"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			tool, args := Classify(tt.line)
			assert.Equal(t, tt.wantTool, tool)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestToolItemKind(t *testing.T) {
	kind, ok := ToolLink.ItemKind()
	assert.True(t, ok)
	assert.Equal(t, KindExec, kind)

	for _, tool := range []Tool{ToolNone, ToolHelperScript, ToolMoc, ToolUic, ToolRcc} {
		_, ok := tool.ItemKind()
		assert.False(t, ok, tool.String())
	}
	assert.True(t, ToolUic.IsCodeGenerator())
	assert.False(t, ToolCL.IsCodeGenerator())
}

func TestIsContinuation(t *testing.T) {
	assert.True(t, isContinuation(`res\extra.manifest other.manifest`))
	assert.False(t, isContinuation("-outputresource:a.exe;#1"))
	assert.False(t, isContinuation("link /OUT:a.exe"))
}
