// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Verse is one stored record of the corpus: the original text and its
// dotless form, keyed by surah and ayah.
type Verse struct {
	Surah   int    `json:"surah" yaml:"surah"`
	Ayah    int    `json:"ayah" yaml:"ayah"`
	Text    string `json:"text" yaml:"text"`
	Dotless string `json:"dotless" yaml:"dotless"`
}
