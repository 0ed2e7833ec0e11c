package normalize

// CanonicalWakeTerm is the product wake term every misrecognition entry
// resolves to.
const CanonicalWakeTerm = "GhostQuant"

// DefaultEntries returns the built-in misrecognition table, collected from
// observed transcription failures of the wake term. Order matters: the
// spacing fixes run first so that later entries can assume the joined
// spelling.
func DefaultEntries() []Entry {
	return []Entry{
		// Spacing and near-miss spellings of the full term.
		{Pattern: `ghost\s+quant`, Canonical: CanonicalWakeTerm},
		{Pattern: `ghosts\s+quant`, Canonical: CanonicalWakeTerm},
		{Pattern: `goes\s+quant`, Canonical: CanonicalWakeTerm},
		{Pattern: `coast\s+quant`, Canonical: CanonicalWakeTerm},
		{Pattern: `ghost\s+want`, Canonical: CanonicalWakeTerm},
		{Pattern: `ghost\s+grant`, Canonical: CanonicalWakeTerm},
		{Pattern: `ghost\s+client`, Canonical: CanonicalWakeTerm},
		{Pattern: `ghost\s+kwa?nt?`, Canonical: CanonicalWakeTerm},
		{Pattern: `ghost\s+quad`, Canonical: CanonicalWakeTerm},
		{Pattern: `go\s+squant`, Canonical: CanonicalWakeTerm},
		{Pattern: `goat\s+squant`, Canonical: CanonicalWakeTerm},
		// Joined misspellings.
		{Pattern: `ghostkwant`, Canonical: CanonicalWakeTerm},
		{Pattern: `ghostquand`, Canonical: CanonicalWakeTerm},
		{Pattern: `gostquant`, Canonical: CanonicalWakeTerm},
		// Case-only variants of the joined spelling, so downstream stages
		// can rely on the canonical casing.
		{Pattern: `ghostquant`, Canonical: CanonicalWakeTerm},
	}
}
