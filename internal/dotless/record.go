// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dotless

import "strings"

// Separator splits the numbering fields from the verse text.
const Separator = "|"

// Record is one `<surah>|<ayah>|<text>` line. Surah and Ayah are kept as the
// raw field text; they are never parsed or reformatted.
type Record struct {
	Surah string `json:"surah" yaml:"surah"`
	Ayah  string `json:"ayah" yaml:"ayah"`
	Text  string `json:"text" yaml:"text"`
}

// Prefix returns the numbering prefix including the trailing separator.
func (r Record) Prefix() string {
	return r.Surah + Separator + r.Ayah + Separator
}

// String reassembles the record without a line break.
func (r Record) String() string {
	return r.Prefix() + r.Text
}

// TrimLineBreak removes one trailing "\n" or "\r\n". A "\r" that is not
// followed by "\n" belongs to the line.
func TrimLineBreak(line string) string {
	if !strings.HasSuffix(line, "\n") {
		return line
	}
	return strings.TrimSuffix(line[:len(line)-1], "\r")
}

// ParseRecord splits line into numbering and text after removing its line
// break. The text keeps any further separators. ok is false when the line
// has fewer than two separators.
func ParseRecord(line string) (Record, bool) {
	return SplitRecord(TrimLineBreak(line))
}

// SplitRecord is ParseRecord for a line whose break was already removed.
func SplitRecord(line string) (Record, bool) {
	parts := strings.SplitN(line, Separator, 3)
	if len(parts) < 3 {
		return Record{}, false
	}
	return Record{Surah: parts[0], Ayah: parts[1], Text: parts[2]}, true
}

// NormalizeRecord normalizes the text field of a numbered line and copies the
// numbering through verbatim. Lines without numbering are normalized whole.
// The result always ends in exactly one "\n".
func (m *Map) NormalizeRecord(line string) string {
	return m.NormalizeLine(TrimLineBreak(line))
}

// NormalizeLine is NormalizeRecord for a line whose break was already
// removed.
func (m *Map) NormalizeLine(line string) string {
	rec, ok := SplitRecord(line)
	if !ok {
		return m.Normalize(line) + "\n"
	}
	return rec.Prefix() + m.Normalize(rec.Text) + "\n"
}

// NormalizeRecord applies the default map to a single line.
func NormalizeRecord(line string) string {
	return defaultMap.NormalizeRecord(line)
}
