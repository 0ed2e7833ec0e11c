// Package wake detects the product wake phrase and its recognised aliases in
// a transcript, rewrites them to the canonical phrase, and extracts the
// residual query text that follows the wake phrase.
//
// Matching runs after the misrecognition and phonetic stages, so the wake
// term usually arrives in canonical spelling already; the alias table still
// tolerates spaced and prefix-family variants ("hey", "ok", "okay") for
// inputs that skipped normalization.
package wake

import (
	"regexp"
	"strings"

	"github.com/antzucaro/matchr"
)

// Alias groups spoken variants that all resolve to one canonical phrase.
type Alias struct {
	Variants  []string `yaml:"variants"`
	Canonical string   `yaml:"canonical"`
}

// DefaultAliases returns the built-in wake-phrase alias table. Variants are
// regular expression fragments matched case-insensitively on word
// boundaries.
func DefaultAliases() []Alias {
	return []Alias{
		{
			Variants: []string{
				`(?:hey|ok|okay)[\s,]+ghost[\s-]*quant`,
				`(?:hey|ok|okay)[\s,]+ghostquant`,
				`ghost[\s-]*quant`,
				`ghostquant`,
			},
			Canonical: "Hey GhostQuant",
		},
	}
}

// Matcher recognises wake-phrase aliases. Read-only after construction;
// safe for concurrent use.
type Matcher struct {
	canonical string
	re        *regexp.Regexp
}

// NewMatcher compiles aliases into a Matcher. The first alias's canonical
// phrase is the phrase [Matcher.Normalize] rewrites to. A nil or empty table
// falls back to [DefaultAliases].
func NewMatcher(aliases []Alias) *Matcher {
	if len(aliases) == 0 {
		aliases = DefaultAliases()
	}
	var parts []string
	for _, a := range aliases {
		parts = append(parts, a.Variants...)
	}
	return &Matcher{
		canonical: aliases[0].Canonical,
		re:        regexp.MustCompile(`(?i)\b(?:` + strings.Join(parts, "|") + `)\b`),
	}
}

// Matches reports whether text contains any recognised wake alias.
func (m *Matcher) Matches(text string) bool {
	return m.re.MatchString(text)
}

// Normalize rewrites every recognised alias in text to the canonical wake
// phrase. Normalize is idempotent: the canonical phrase is itself an alias
// and rewrites to itself.
func (m *Matcher) Normalize(text string) string {
	return m.re.ReplaceAllString(text, m.canonical)
}

// ExtractQuery returns the text following the first wake-phrase occurrence,
// trimmed of surrounding whitespace and leading punctuation. First-match
// semantics: a wake phrase mid-sentence yields everything after its first
// occurrence, never its last. Returns "" when no wake phrase is found or
// nothing follows it.
func (m *Matcher) ExtractQuery(text string) string {
	loc := m.re.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	rest := text[loc[1]:]
	return strings.TrimSpace(strings.TrimLeft(rest, " \t,.:;!?"))
}

// Confidence scores how closely the first matched alias resembles the
// canonical phrase, using Jaro-Winkler similarity on the lowercased strings.
// An exact canonical occurrence scores 1.0; no match scores 0.
func (m *Matcher) Confidence(text string) float64 {
	matched := m.re.FindString(text)
	if matched == "" {
		return 0
	}
	return matchr.JaroWinkler(strings.ToLower(matched), strings.ToLower(m.canonical), false)
}
