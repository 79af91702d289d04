// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mapfile reads and writes substitution tables as YAML so a run can
// extend or override the built-in map without a rebuild.
package mapfile

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/dotless/internal/dotless"
)

// Document is the on-disk layout of a table file.
type Document struct {
	Entries []dotless.Entry `yaml:"entries"`
}

// Parse decodes a table document from r. Unknown fields are rejected.
func Parse(r io.Reader) ([]dotless.Entry, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("parsing map file: %w", err)
	}
	return doc.Entries, nil
}

// Load reads a table document from path.
func Load(path string) ([]dotless.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading map file %s: %w", path, err)
	}
	entries, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// Merge returns base with overrides applied. An override replaces the base
// row with the same source; new sources are appended in override order.
func Merge(base, overrides []dotless.Entry) []dotless.Entry {
	out := make([]dotless.Entry, len(base))
	copy(out, base)

	index := make(map[string]int, len(out))
	for i, e := range out {
		index[e.Source] = i
	}
	for _, e := range overrides {
		if i, ok := index[e.Source]; ok {
			out[i] = e
			continue
		}
		index[e.Source] = len(out)
		out = append(out, e)
	}
	return out
}

// Build returns the built-in map, or the built-in table merged with the
// rows in path when path is set.
func Build(path string) (*dotless.Map, error) {
	if path == "" {
		return dotless.Default(), nil
	}
	overrides, err := Load(path)
	if err != nil {
		return nil, err
	}
	m, err := dotless.NewMap(Merge(dotless.DefaultEntries(), overrides)...)
	if err != nil {
		return nil, fmt.Errorf("building map from %s: %w", path, err)
	}
	return m, nil
}

// Write encodes entries as a table document.
func Write(w io.Writer, entries []dotless.Entry) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Document{Entries: entries}); err != nil {
		return fmt.Errorf("encoding map file: %w", err)
	}
	return enc.Close()
}
