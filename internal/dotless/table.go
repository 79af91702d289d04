// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dotless

// Dotless representatives that do not exist as regular letters.
const (
	dotlessBeh = "\u066E"
	dotlessFeh = "\u06A1"
	dotlessQaf = "\u066F"
)

// defaultTable is the literal substitution table. Skeleton groups collapse
// onto one representative; every representative is a fixed point.
var defaultTable = []Entry{
	// Letters kept as-is.
	{Source: "\u0627", Replacement: "\u0627", Class: Identity}, // alef
	{Source: "\u062D", Replacement: "\u062D", Class: Identity}, // hah
	{Source: "\u062F", Replacement: "\u062F", Class: Identity}, // dal
	{Source: "\u0631", Replacement: "\u0631", Class: Identity}, // reh
	{Source: "\u0633", Replacement: "\u0633", Class: Identity}, // seen
	{Source: "\u0635", Replacement: "\u0635", Class: Identity}, // sad
	{Source: "\u0637", Replacement: "\u0637", Class: Identity}, // tah
	{Source: "\u0639", Replacement: "\u0639", Class: Identity}, // ain
	{Source: "\u0643", Replacement: "\u0643", Class: Identity}, // kaf
	{Source: "\u0644", Replacement: "\u0644", Class: Identity}, // lam
	{Source: "\u0645", Replacement: "\u0645", Class: Identity}, // meem
	{Source: "\u0647", Replacement: "\u0647", Class: Identity}, // heh
	{Source: "\u0648", Replacement: "\u0648", Class: Identity}, // waw
	{Source: "\u0649", Replacement: "\u0649", Class: Identity}, // alef maksura

	// Dotted letters folded onto their skeleton.
	{Source: "\u0628", Replacement: dotlessBeh, Class: DotVariant}, // beh
	{Source: "\u062A", Replacement: dotlessBeh, Class: DotVariant}, // teh
	{Source: "\u062B", Replacement: dotlessBeh, Class: DotVariant}, // theh
	{Source: "\u0646", Replacement: dotlessBeh, Class: DotVariant}, // noon, all positions
	{Source: "\u062C", Replacement: "\u062D", Class: DotVariant},   // jeem
	{Source: "\u062E", Replacement: "\u062D", Class: DotVariant},   // khah
	{Source: "\u0630", Replacement: "\u062F", Class: DotVariant},   // thal
	{Source: "\u0632", Replacement: "\u0631", Class: DotVariant},   // zain
	{Source: "\u0634", Replacement: "\u0633", Class: DotVariant},   // sheen
	{Source: "\u0636", Replacement: "\u0635", Class: DotVariant},   // dad
	{Source: "\u0638", Replacement: "\u0637", Class: DotVariant},   // zah
	{Source: "\u063A", Replacement: "\u0639", Class: DotVariant},   // ghain
	{Source: "\u0641", Replacement: dotlessFeh, Class: DotVariant}, // feh
	{Source: "\u0642", Replacement: dotlessQaf, Class: DotVariant}, // qaf
	{Source: "\u064A", Replacement: "\u0649", Class: DotVariant},   // yeh
	{Source: "\u0629", Replacement: "\u0647", Class: DotVariant},   // teh marbuta

	// Vowel marks and other combining signs.
	{Source: "\u064E", Class: Diacritic}, // fatha
	{Source: "\u064F", Class: Diacritic}, // damma
	{Source: "\u0650", Class: Diacritic}, // kasra
	{Source: "\u064B", Class: Diacritic}, // fathatan
	{Source: "\u064C", Class: Diacritic}, // dammatan
	{Source: "\u064D", Class: Diacritic}, // kasratan
	{Source: "\u0651", Class: Diacritic}, // shadda
	{Source: "\u0652", Class: Diacritic}, // sukun
	{Source: "\u0670", Class: Diacritic}, // superscript alef
	{Source: "\u0653", Class: Diacritic}, // maddah above

	// Hamza forms reduced to the carrier.
	{Source: "\u0621", Class: Hamza},                        // lone hamza
	{Source: "\u0623", Replacement: "\u0627", Class: Hamza}, // alef with hamza above
	{Source: "\u0625", Replacement: "\u0627", Class: Hamza}, // alef with hamza below
	{Source: "\u0624", Replacement: "\u0648", Class: Hamza}, // waw with hamza above
	{Source: "\u0626", Replacement: "\u0649", Class: Hamza}, // yeh with hamza above
	{Source: "\u0640\u0654", Class: Hamza},                  // tatweel carrying a hamza
}

// DefaultEntries returns a copy of the built-in table.
func DefaultEntries() []Entry {
	out := make([]Entry, len(defaultTable))
	copy(out, defaultTable)
	return out
}
