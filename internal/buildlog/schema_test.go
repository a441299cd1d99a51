package buildlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaLongestPrefixWins(t *testing.T) {
	s := SchemaFor(KindVsCompile)

	spec, rem, ok := s.Match("Fofoo.obj")
	require.True(t, ok)
	assert.Equal(t, "Fo", spec.Name)
	assert.Equal(t, "foo.obj", rem)

	spec, rem, ok = s.Match(`FoC:\out\a.obj`)
	require.True(t, ok)
	assert.Equal(t, "Fo", spec.Name)
	assert.Equal(t, `C:\out\a.obj`, rem)
}

func TestSchemaExactMatchBeforeColon(t *testing.T) {
	s := SchemaFor(KindExec)

	spec, rem, ok := s.Match("out:app.exe")
	require.True(t, ok)
	assert.Equal(t, "OUT", spec.Name)
	assert.Equal(t, "app.exe", rem)
}

func TestSchemaRequiresColonSkipsPrefixMatch(t *testing.T) {
	s := newSchema(KindExec, false, "/",
		textOpt("OUT").colon(),
		flagOpt("O"),
	)

	spec, rem, ok := s.Match("OUTapp.exe")
	require.True(t, ok)
	assert.Equal(t, "O", spec.Name)
	assert.Equal(t, "UTapp.exe", rem)
}

func TestSchemaTieBreakIsLexical(t *testing.T) {
	s := newSchema(KindLibrary, false, "/",
		flagOpt("Ab"),
		flagOpt("aB"),
	)
	// names equal under folding tie on length
	spec, _, ok := s.Match("ABx")
	require.True(t, ok)
	assert.Equal(t, "Ab", spec.Name)

	s = newSchema(KindVsCompile, true, "/",
		flagOpt("Zb"),
		flagOpt("Za"),
	)
	_, _, ok = s.Match("Zc")
	assert.False(t, ok)
}

func TestSchemaCaseSensitivity(t *testing.T) {
	_, ok := SchemaFor(KindVsCompile).Lookup("gs")
	assert.False(t, ok, "cl switches are case-sensitive")

	_, ok = SchemaFor(KindLibrary).Lookup("out")
	assert.True(t, ok, "lib switches are case-insensitive")
}

func TestSchemaSwitchPrefixes(t *testing.T) {
	assert.True(t, SchemaFor(KindVsCompile).isSwitch("/c"))
	assert.True(t, SchemaFor(KindVsCompile).isSwitch("-c"))
	assert.False(t, SchemaFor(KindVsCompile).isSwitch("/"))
	assert.False(t, SchemaFor(KindGccCompile).isSwitch("/usr/src/a.c"))
	assert.True(t, SchemaFor(KindGccCompile).isSwitch("-c"))
}

func TestEverySchemaRegistered(t *testing.T) {
	for _, kind := range AllKinds {
		t.Run(kind.String(), func(t *testing.T) {
			s := SchemaFor(kind)
			require.NotNil(t, s)
			assert.Equal(t, kind, s.Kind())
			assert.NotEmpty(t, s.Specs())
		})
	}
}
