// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/dotless/internal/batch"
)

// run executes the root command with args and stdin, returning what was
// written to stdout and stderr. Flags are reset first since cobra keeps
// their values between executions.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	out, errOut, err := run(t, "", args...)
	require.NoError(t, err, errOut)
	return out
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func TestRecordCommand(t *testing.T) {
	out := execute(t, "record", "2|255|بِسْمِ ٱللَّهِ", "no pipes here")
	assert.Equal(t, "2|255|ٮسم ٱلله\nno pipes here\n", out)
}

func TestTableCommand(t *testing.T) {
	out := execute(t, "table")
	assert.Contains(t, out, "SOURCE")
	assert.Contains(t, out, "U+0628")
	assert.Contains(t, out, "(deleted)")
	assert.Contains(t, out, "dot_variant")

	out = execute(t, "table", "--format", "yaml")
	assert.True(t, strings.HasPrefix(out, "entries:"), out)
}

func TestCorpusCommands(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "verses.txt")
	require.NoError(t, os.WriteFile(in, []byte("112|1|قُلْ هُوَ ٱللَّهُ أَحَدٌ\n"), 0o644))

	out := execute(t, "corpus", "--corpus-dir", dir, "ingest", in)
	assert.Contains(t, out, "stored: 1, skipped: 0")

	out = execute(t, "corpus", "--corpus-dir", dir, "lookup", "112:1")
	assert.Contains(t, out, "ٯل هو ٱلله احد")

	out = execute(t, "corpus", "--corpus-dir", dir, "search", "أَحَدٌ")
	assert.Contains(t, out, "112:1")
	assert.Contains(t, out, "1 verses")
}

func TestParseVerseRef(t *testing.T) {
	tests := []struct {
		ref     string
		surah   int
		ayah    int
		wantErr bool
	}{
		{ref: "2:255", surah: 2, ayah: 255},
		{ref: "114|6", surah: 114, ayah: 6},
		{ref: "2255", wantErr: true},
		{ref: "a:1", wantErr: true},
		{ref: "1:b", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			surah, ayah, err := parseVerseRef(tt.ref)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.surah, surah)
			assert.Equal(t, tt.ayah, ayah)
		})
	}
}

func TestCodePoints(t *testing.T) {
	assert.Equal(t, "U+0640 U+0654", codePoints("ـٔ"))
	assert.Equal(t, "", codePoints(""))
}

const (
	normalizeInput = "1|1|بِسْمِ\nبَيْت\n"
	normalizeWant  = "1|1|ٮسم\nٮىٮ\n"
)

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNormalizeStreams(t *testing.T) {
	t.Run("file to file", func(t *testing.T) {
		dir := t.TempDir()
		in := writeInput(t, dir, "in.txt", normalizeInput)
		out := filepath.Join(dir, "out.txt")

		stdout, stderr, err := run(t, "", "normalize", "--input", in, "--output", out)
		require.NoError(t, err, stderr)
		assert.Empty(t, stdout)
		assert.Contains(t, stderr, "lines: 2, numbered: 1, unnumbered: 1")

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, normalizeWant, string(data))
	})

	t.Run("file to stdout", func(t *testing.T) {
		in := writeInput(t, t.TempDir(), "in.txt", normalizeInput)

		stdout, stderr, err := run(t, "", "normalize", "-i", in)
		require.NoError(t, err, stderr)
		assert.Equal(t, normalizeWant, stdout)
	})

	t.Run("stdin to file", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "out.txt")

		stdout, stderr, err := run(t, normalizeInput, "normalize", "-o", out)
		require.NoError(t, err, stderr)
		assert.Empty(t, stdout)

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, normalizeWant, string(data))
	})

	t.Run("stdin to stdout", func(t *testing.T) {
		stdout, stderr, err := run(t, normalizeInput, "normalize", "--input", "-", "--output", "-")
		require.NoError(t, err, stderr)
		assert.Equal(t, normalizeWant, stdout)
	})
}

func TestNormalizePaths(t *testing.T) {
	dir := t.TempDir()
	a := writeInput(t, dir, "a.txt", normalizeInput)
	b := writeInput(t, dir, "b.txt", normalizeInput)
	outDir := filepath.Join(dir, "out")

	_, stderr, err := run(t, "", "normalize", "--out-dir", outDir, "--workers", "3", a, b)
	require.NoError(t, err, stderr)
	assert.Contains(t, stderr, "normalized: a.txt (2 lines)")
	assert.Contains(t, stderr, "Batch summary: 2 normalized, 0 failed (total: 2)")

	for _, name := range []string{"a.txt", "b.txt"} {
		data, err := os.ReadFile(filepath.Join(outDir, name))
		require.NoError(t, err)
		assert.Equal(t, normalizeWant, string(data), name)
	}
}

func TestNormalizePathsRequiresOutDir(t *testing.T) {
	in := writeInput(t, t.TempDir(), "a.txt", normalizeInput)

	_, _, err := run(t, "", "normalize", in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--out-dir is required")
}

func TestNormalizeStrict(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "in.txt", "1|1|ب\n\xff\n")
	out := filepath.Join(dir, "out.txt")

	_, _, err := run(t, "", "normalize", "--strict", "-i", in, "-o", out)
	require.Error(t, err)
	assert.ErrorIs(t, err, batch.ErrInvalidUTF8)
	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "no output on failure")

	stdout, stderr, err := run(t, "", "normalize", "-i", in)
	require.NoError(t, err, stderr)
	assert.Equal(t, "1|1|ٮ\n\xff\n", stdout)
}
