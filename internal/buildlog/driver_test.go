package buildlog

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runLog(t *testing.T, log string, opts ...Option) (*Result, []string) {
	t.Helper()
	var reported []string
	opts = append(opts, WithReporter(func(msg string) { reported = append(reported, msg) }))
	result, err := NewDriver(opts...).RunReader(context.Background(), strings.NewReader(log))
	require.NoError(t, err)
	require.True(t, result.Success)
	return result, reported
}

func TestDriverSingleCompile(t *testing.T) {
	result, _ := runLog(t, `C:\VC\bin\cl.exe /c /Fo a.obj a.cpp`)

	items := result.Items()
	require.Len(t, items, 1)
	item := items[0]
	assert.Equal(t, KindVsCompile, item.Kind())
	assert.Equal(t, 1, item.Line())
	assert.Equal(t, "a.obj", item.TargetFile())
	assert.Equal(t, []string{"a.cpp"}, item.AllSources())
	assert.True(t, item.Status().OK())
	assert.Equal(t, 1, result.Stats.PerKind[KindVsCompile])
}

func TestDriverLinkBeforeCompile(t *testing.T) {
	log := "link.exe /OUT:app.exe a.obj b.obj\n" +
		`C:\VC\bin\cl.exe /c /Fo a.obj a.cpp` + "\n"
	result, _ := runLog(t, log)

	link, ok := result.Item(1)
	require.True(t, ok)
	assert.Equal(t, []int{2}, link.Dependencies())
	assert.Contains(t, result.Diagnostics, "Warning: LineNum: 1 unresolved dependency 'b.obj'")

	compile, ok := result.Item(2)
	require.True(t, ok)
	assert.Equal(t, 1, compile.TargetRef())
}

func TestDriverDependencyIndependentOfLineOrder(t *testing.T) {
	compileLine := "cl /c /Fo a.obj a.cpp"
	linkLine := "link /OUT:app.exe a.obj"

	forward, _ := runLog(t, compileLine+"\n"+linkLine)
	backward, _ := runLog(t, linkLine+"\n"+compileLine)

	linkFwd, _ := forward.Item(2)
	compileFwd, _ := forward.Item(1)
	assert.Equal(t, []int{compileFwd.Line()}, linkFwd.Dependencies())

	linkBwd, _ := backward.Item(1)
	compileBwd, _ := backward.Item(2)
	assert.Equal(t, []int{compileBwd.Line()}, linkBwd.Dependencies())
}

func TestDriverUnhandledLine(t *testing.T) {
	result, reported := runLog(t, "cl /c a.cpp\n\nBuild started at 10:00\n")

	assert.Equal(t, 1, result.Stats.Unhandled)
	var errs []string
	for _, msg := range result.Diagnostics {
		if strings.HasPrefix(msg, "ERROR:") {
			errs = append(errs, msg)
		}
	}
	assert.Equal(t, []string{"ERROR: LineNum: 3 unhandled line: Build started at 10:00"}, errs)
	assert.Equal(t, result.Message, reported[len(reported)-1])
}

func TestDriverDuplicateTarget(t *testing.T) {
	log := "lib /OUT:dup.lib a.obj\n" +
		"lib /OUT:out\\dup.lib b.obj\n" +
		"lib /OUT:DUP.LIB c.obj\n"
	result, _ := runLog(t, log)

	assert.Equal(t, map[string]int{"dup.lib": 1, "out/dup.lib": 2}, result.TargetIndex)
	assert.Len(t, result.Items(), 3)

	root := result.Buckets[""]
	require.NotNil(t, root)
	assert.Len(t, root.Items[KindLibrary], 2)
	assert.Equal(t, 3, root.Items[KindLibrary][1].Line())
}

func TestDriverConflictDiscardsItem(t *testing.T) {
	result, _ := runLog(t, "cl /c /GS /GS- a.cpp\ncl /c b.cpp")

	assert.Equal(t, 1, result.Stats.Failed)
	_, ok := result.Item(1)
	assert.False(t, ok)
	assert.Contains(t, result.Diagnostics, "ERROR: LineNum: 1 conflicting values for option 'GS': 'true' vs 'false'")
	assert.Len(t, result.Items(), 1)
}

func TestDriverNormalizesWhitespace(t *testing.T) {
	result, _ := runLog(t, "   cl    /c\t\t/Fo a.obj   a.cpp   \n")
	require.Len(t, result.Items(), 1)
	assert.Equal(t, "a.obj", result.Items()[0].TargetFile())
}

func TestDriverManifestContinuation(t *testing.T) {
	log := strings.Join([]string{
		"link /OUT:bin\\app.exe main.obj",
		"mt.exe -nologo -outputresource:bin\\app.exe;#1 -manifest app.manifest",
		"extra\\dpi.manifest",
		"app.vcxproj -> bin\\app.exe",
	}, "\n")
	result, _ := runLog(t, log)

	item, ok := result.Item(2)
	require.True(t, ok)
	assert.Equal(t, []string{"app.manifest", `extra\dpi.manifest`}, item.AllSources())
	assert.Equal(t, []int{2}, result.SourceIndex["extra/dpi.manifest"])
	assert.Equal(t, 1, result.Stats.Continued)
	assert.Equal(t, 1, result.Stats.Unhandled)
	_, claimed := result.TargetIndex["bin/app.exe"]
	assert.True(t, claimed)
	assert.Equal(t, 1, result.TargetIndex["bin/app.exe"], "manifest items never claim targets")

	// manifest target resolves to the linker through the target index
	assert.Equal(t, 1, item.TargetRef())
}

func TestDriverCountsHelpersAndGenerators(t *testing.T) {
	log := "build.bat\nmoc widget.h\nuic a.ui\nuic b.ui\nrcc r.qrc"
	result, _ := runLog(t, log)

	assert.Equal(t, 1, result.Stats.Helpers)
	assert.Equal(t, 1, result.Stats.Moc)
	assert.Equal(t, 2, result.Stats.Uic)
	assert.Equal(t, 1, result.Stats.Rcc)
	assert.Equal(t, 0, result.Stats.Unhandled)
	assert.Contains(t, result.Diagnostics, "Warning: LineNum: 1 helper script invocation not modeled: build.bat")
	assert.Contains(t, result.Message, "Helpers=1 Moc=1 Uic=2 Rcc=1")
}

func TestDriverLeafSourcesAreNotDependencies(t *testing.T) {
	log := "link /OUT:app.exe main.cpp moc_widget.obj widget.moc"
	result, _ := runLog(t, log)

	for _, msg := range result.Diagnostics {
		assert.NotContains(t, msg, "main.cpp")
		assert.NotContains(t, msg, "moc_widget.obj")
		assert.NotContains(t, msg, "widget.moc")
	}
}

func TestDriverAnonymizesAndReportsUsages(t *testing.T) {
	log := `cl /c /FoC:\ws\obj\a.obj C:\ws\src\a.cpp` + "\n" +
		`link /OUT:C:\ws\bin\app.exe C:\ws\obj\a.obj`
	result, _ := runLog(t, log, WithAnonymizeRoot(`C:\ws`))

	link, _ := result.Item(2)
	assert.Equal(t, "$(ROOT)/bin\\app.exe", link.TargetFile())
	assert.Equal(t, []int{1}, link.Dependencies())
	assert.Equal(t, []string{`C:\ws\bin`, `C:\ws\obj`, `C:\ws\src`}, result.Usages)
	assert.Contains(t, result.Message, "Anonymized paths:")
	assert.Equal(t, []string{"$(ROOT)/bin", "$(ROOT)/src"}, result.Directories())
}

func TestDriverCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := NewDriver().RunReader(ctx, strings.NewReader("cl /c a.cpp\n"))
	require.ErrorIs(t, err, ErrCanceled)
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, result.Success)
	assert.Equal(t, MessageCanceled, result.Message)
	assert.Empty(t, result.Items())
}

func TestDriverMissingFile(t *testing.T) {
	var reported []string
	d := NewDriver(WithReporter(func(msg string) { reported = append(reported, msg) }))

	result, err := d.Run(context.Background(), filepath.Join(t.TempDir(), "missing.log"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.False(t, result.Success)
	assert.True(t, strings.HasPrefix(result.Message, MessageOpen))
	assert.Len(t, reported, 1)
}

func TestDriverRunFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build.log")
	require.NoError(t, os.WriteFile(path, []byte("cl /c /Fo a.obj a.cpp\r\nlink /OUT:a.exe a.obj\r\n"), 0o644))

	result, err := NewDriver().Run(context.Background(), path)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.Stats.Lines)
	assert.Len(t, result.Items(), 2)
}

func TestDriverRunsAreIndependent(t *testing.T) {
	d := NewDriver()
	first, err := d.RunReader(context.Background(), strings.NewReader("cl /c /Fo a.obj a.cpp"))
	require.NoError(t, err)
	second, err := d.RunReader(context.Background(), strings.NewReader("cl /c /Fo b.obj b.cpp"))
	require.NoError(t, err)

	assert.Len(t, first.Items(), 1)
	assert.Len(t, second.Items(), 1)
	assert.Equal(t, "b.obj", second.Items()[0].TargetFile())
}

func TestDriverToolPathWithSpaces(t *testing.T) {
	result, _ := runLog(t, `C:\Program Files (x86)\Microsoft Visual Studio\VC\bin\cl.exe /c /Fo a.obj a.cpp`)

	require.Len(t, result.Items(), 1)
	item := result.Items()[0]
	assert.Equal(t, KindVsCompile, item.Kind())
	assert.Equal(t, "a.obj", item.TargetFile())
	assert.Equal(t, 1, result.Stats.PerKind[KindVsCompile])
	assert.Equal(t, 0, result.Stats.Unhandled)
}

func TestDriverSiblingProducerIsNotTargetRef(t *testing.T) {
	log := "lib /OUT:dup.lib a.obj\n" +
		"lib /OUT:dup.lib b.obj\n"
	result, _ := runLog(t, log)

	for _, line := range []int{1, 2} {
		item, ok := result.Item(line)
		require.True(t, ok)
		assert.Zero(t, item.TargetRef())
	}
	assert.Contains(t, result.Diagnostics, "Warning: LineNum: 2 unresolved target 'dup.lib'")
}

func TestDriverPosixPathsOnLibraryLine(t *testing.T) {
	log := "gcc -c b.c -o /tmp/b.o\n" +
		"lib /OUT:/tmp/libb.a /tmp/b.o\n"
	result, _ := runLog(t, log)

	lib, ok := result.Item(2)
	require.True(t, ok)
	assert.Equal(t, "/tmp/libb.a", lib.TargetFile())
	assert.Equal(t, []string{"/tmp/b.o"}, lib.AllSources())
	assert.Equal(t, []int{1}, lib.Dependencies())
	assert.Empty(t, lib.Warnings())
}
