// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mapfile

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/dotless/internal/dotless"
)

func writeMap(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "map.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParse(t *testing.T) {
	entries, err := Parse(strings.NewReader(`
entries:
  - source: "ٱ"
    replacement: "ا"
    class: hamza
  - source: "ٔ"
    class: diacritic
`))
	require.NoError(t, err)
	assert.Equal(t, []dotless.Entry{
		{Source: "ٱ", Replacement: "ا", Class: dotless.Hamza},
		{Source: "ٔ", Class: dotless.Diacritic},
	}, entries)
}

func TestParseEmpty(t *testing.T) {
	entries, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestParseUnknownField(t *testing.T) {
	_, err := Parse(strings.NewReader("entries:\n  - source: a\n    target: b\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing map file")
}

func TestMerge(t *testing.T) {
	base := []dotless.Entry{
		{Source: "a", Replacement: "a", Class: dotless.Identity},
		{Source: "b", Replacement: "a", Class: dotless.DotVariant},
	}
	got := Merge(base, []dotless.Entry{
		{Source: "b", Replacement: "b", Class: dotless.Identity},
		{Source: "c", Class: dotless.Diacritic},
	})
	assert.Equal(t, []dotless.Entry{
		{Source: "a", Replacement: "a", Class: dotless.Identity},
		{Source: "b", Replacement: "b", Class: dotless.Identity},
		{Source: "c", Class: dotless.Diacritic},
	}, got)
	assert.Equal(t, "a", base[1].Replacement, "base must not be modified")
}

func TestBuild(t *testing.T) {
	m, err := Build("")
	require.NoError(t, err)
	assert.Same(t, dotless.Default(), m)

	path := writeMap(t, "entries:\n  - source: \"ٱ\"\n    replacement: \"ا\"\n    class: hamza\n")
	m, err = Build(path)
	require.NoError(t, err)
	assert.Equal(t, "الله", m.Normalize("ٱللَّه"))
	assert.Equal(t, dotless.Default().Len()+1, m.Len())
}

func TestBuildRejectsChainedOverride(t *testing.T) {
	// heh is the target of teh marbuta; remapping it breaks idempotency.
	path := writeMap(t, "entries:\n  - source: \"ه\"\n    replacement: \"ة\"\n    class: dot_variant\n")
	_, err := Build(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, dotless.ErrNotFixedPoint)
}

func TestBuildMissingFile(t *testing.T) {
	_, err := Build(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading map file")
}

func TestWriteRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, dotless.DefaultEntries()))

	entries, err := Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, dotless.DefaultEntries(), entries)
}
