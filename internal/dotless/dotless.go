// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dotless folds dotted, vowelled Arabic text onto its dotless
// skeletal form using a fixed substitution table.
// Implements: character map construction, text and record normalization.
package dotless

import (
	"errors"
	"fmt"
	"sort"
	"unicode/utf8"
)

// Class groups table entries by what the substitution does.
type Class string

const (
	// Identity letters map to themselves.
	Identity Class = "identity"
	// DotVariant letters map to the representative of their skeleton group.
	DotVariant Class = "dot_variant"
	// Diacritic marks are deleted.
	Diacritic Class = "diacritic"
	// Hamza-bearing letters map to their carrier (or vanish when standalone).
	Hamza Class = "hamza"
)

// Valid reports whether c is one of the known classes.
func (c Class) Valid() bool {
	switch c {
	case Identity, DotVariant, Diacritic, Hamza:
		return true
	}
	return false
}

// Entry is one row of the substitution table. Source is a single code point
// or a pair; Replacement is empty (deletion) or a single code point.
type Entry struct {
	Source      string `json:"source" yaml:"source"`
	Replacement string `json:"replacement" yaml:"replacement"`
	Class       Class  `json:"class" yaml:"class"`
}

// maxSourceRunes bounds the length of multi-code-point keys.
const maxSourceRunes = 2

var (
	// ErrInvalidEntry is returned for malformed table rows.
	ErrInvalidEntry = errors.New("invalid map entry")
	// ErrDuplicateSource is returned when two rows share a source.
	ErrDuplicateSource = errors.New("duplicate map source")
	// ErrNotFixedPoint is returned when a replacement would itself be
	// rewritten by the map, which breaks idempotency.
	ErrNotFixedPoint = errors.New("replacement is not a fixed point")
)

type pair [2]rune

// Map is an immutable substitution table. A *Map is safe for concurrent use.
type Map struct {
	entries []Entry
	runes   map[rune]string
	pairs   map[pair]string
	leads   map[rune]bool
	tails   map[rune]bool
}

// NewMap validates entries and builds a Map. Pairs are matched against the
// normalized stream, so both halves of a pair must survive single-code-point
// mapping unchanged.
func NewMap(entries ...Entry) (*Map, error) {
	m := &Map{
		runes: make(map[rune]string, len(entries)),
		pairs: make(map[pair]string),
		leads: make(map[rune]bool),
		tails: make(map[rune]bool),
	}

	for _, e := range entries {
		if err := validateEntry(e); err != nil {
			return nil, err
		}
		src := []rune(e.Source)
		if len(src) == 1 {
			if _, dup := m.runes[src[0]]; dup {
				return nil, fmt.Errorf("%w: %U", ErrDuplicateSource, src[0])
			}
			m.runes[src[0]] = e.Replacement
			continue
		}
		key := pair{src[0], src[1]}
		if _, dup := m.pairs[key]; dup {
			return nil, fmt.Errorf("%w: %U %U", ErrDuplicateSource, src[0], src[1])
		}
		m.pairs[key] = e.Replacement
		m.leads[src[0]] = true
		m.tails[src[1]] = true
	}

	if err := m.checkFixedPoints(entries); err != nil {
		return nil, err
	}

	m.entries = make([]Entry, len(entries))
	copy(m.entries, entries)
	sort.SliceStable(m.entries, func(i, j int) bool {
		return m.entries[i].Source < m.entries[j].Source
	})
	return m, nil
}

// MustNewMap is like NewMap but panics on error. Intended for literal tables.
func MustNewMap(entries ...Entry) *Map {
	m, err := NewMap(entries...)
	if err != nil {
		panic(err)
	}
	return m
}

func validateEntry(e Entry) error {
	if e.Source == "" || !utf8.ValidString(e.Source) {
		return fmt.Errorf("%w: source %q", ErrInvalidEntry, e.Source)
	}
	if n := utf8.RuneCountInString(e.Source); n > maxSourceRunes {
		return fmt.Errorf("%w: source %q has %d code points (max %d)", ErrInvalidEntry, e.Source, n, maxSourceRunes)
	}
	if !utf8.ValidString(e.Replacement) || utf8.RuneCountInString(e.Replacement) > 1 {
		return fmt.Errorf("%w: replacement %q for %q", ErrInvalidEntry, e.Replacement, e.Source)
	}
	if !e.Class.Valid() {
		return fmt.Errorf("%w: class %q for %q", ErrInvalidEntry, e.Class, e.Source)
	}
	if e.Class == Diacritic && e.Replacement != "" {
		return fmt.Errorf("%w: diacritic %q must map to the empty string", ErrInvalidEntry, e.Source)
	}
	return nil
}

func (m *Map) checkFixedPoints(entries []Entry) error {
	for _, e := range entries {
		if e.Replacement == "" {
			continue
		}
		r, _ := utf8.DecodeRuneInString(e.Replacement)
		if got, ok := m.runes[r]; ok && got != e.Replacement {
			return fmt.Errorf("%w: %q -> %q -> %q", ErrNotFixedPoint, e.Source, e.Replacement, got)
		}
		if utf8.RuneCountInString(e.Source) == 2 && (m.leads[r] || m.tails[r]) {
			return fmt.Errorf("%w: pair %q replacement %q can start a new pair", ErrNotFixedPoint, e.Source, e.Replacement)
		}
	}
	for p := range m.pairs {
		for _, r := range p {
			if got, ok := m.runes[r]; ok && got != string(r) {
				return fmt.Errorf("%w: pair member %U is remapped to %q", ErrInvalidEntry, r, got)
			}
		}
	}
	return nil
}

var defaultMap = MustNewMap(defaultTable...)

// Default returns the built-in map.
func Default() *Map {
	return defaultMap
}

// Lookup returns the replacement for a single code point or a pair. The
// boolean distinguishes a deletion (present, empty) from passthrough (absent).
func (m *Map) Lookup(src string) (string, bool) {
	rs := []rune(src)
	switch len(rs) {
	case 1:
		repl, ok := m.runes[rs[0]]
		return repl, ok
	case 2:
		repl, ok := m.pairs[pair{rs[0], rs[1]}]
		return repl, ok
	}
	return "", false
}

// Entries returns the table sorted by source.
func (m *Map) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Len returns the number of table rows.
func (m *Map) Len() int {
	return len(m.entries)
}

// Normalize rewrites text one code point at a time. Mapped code points are
// replaced (possibly by nothing), unmapped ones and invalid bytes are copied
// through. Combining marks are matched on their own, independent of the base
// letter they attach to. Normalize never fails.
func (m *Map) Normalize(text string) string {
	if text == "" {
		return ""
	}
	buf := make([]byte, 0, len(text))
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		raw := text[i : i+size]
		i += size
		if r == utf8.RuneError && size == 1 {
			buf = append(buf, raw...)
			continue
		}
		out, ok := m.runes[r]
		if !ok {
			out = raw
		}
		buf = m.appendJoined(buf, out)
	}
	return string(buf)
}

// appendJoined appends out to buf, collapsing a pair formed by the last
// rune of buf and out.
func (m *Map) appendJoined(buf []byte, out string) []byte {
	if out == "" || len(m.pairs) == 0 {
		return append(buf, out...)
	}
	next, _ := utf8.DecodeRuneInString(out)
	if !m.tails[next] {
		return append(buf, out...)
	}
	prev, n := utf8.DecodeLastRune(buf)
	if n == 0 {
		return append(buf, out...)
	}
	if repl, ok := m.pairs[pair{prev, next}]; ok {
		return append(buf[:len(buf)-n], repl...)
	}
	return append(buf, out...)
}

// Normalize applies the default map to text.
func Normalize(text string) string {
	return defaultMap.Normalize(text)
}
