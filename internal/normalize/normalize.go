// Package normalize implements dictionary-based correction of known wrong
// transcriptions of the product wake phrase. Speech-to-text engines mishear
// "GhostQuant" in a handful of recurring ways ("ghost quant", "coast quant",
// "ghost grant", ...); this stage rewrites them to the canonical spelling
// before any downstream matching runs.
//
// The correction table is a fixed, ordered list: later entries are applied
// to the output of earlier ones, which allows compound corrections (e.g.
// fixing "ghost quant" spacing before a prefix rule that expects the joined
// spelling). Absence of a match is the common case, not an error.
package normalize

import (
	"fmt"
	"regexp"
	"strings"
)

// Entry is one misrecognition mapping. Pattern is a case-insensitive,
// word-boundary-aware regular expression (plain literals are valid patterns);
// Canonical is the replacement text.
type Entry struct {
	Pattern   string `yaml:"pattern"`
	Canonical string `yaml:"canonical"`
}

// Replacement records one applied table entry for the audit trail.
type Replacement struct {
	// Pattern is the table pattern that matched.
	Pattern string

	// Canonical is the text it was replaced with.
	Canonical string

	// Count is the number of occurrences replaced in this pass.
	Count int
}

// rule is a compiled table entry.
type rule struct {
	re        *regexp.Regexp
	pattern   string
	canonical string
}

// Normalizer applies the misrecognition table in declaration order.
// It is read-only after construction and safe for concurrent use.
type Normalizer struct {
	rules []rule
}

// New compiles entries into a Normalizer. Each pattern is wrapped with
// case-insensitive word-boundary anchors before compilation. Declaration
// order is preserved: substitution is sequential, not simultaneous.
func New(entries []Entry) (*Normalizer, error) {
	rules := make([]rule, 0, len(entries))
	for i, e := range entries {
		if strings.TrimSpace(e.Pattern) == "" {
			return nil, fmt.Errorf("normalize: entry %d has an empty pattern", i)
		}
		re, err := regexp.Compile(`(?i)\b(?:` + e.Pattern + `)\b`)
		if err != nil {
			return nil, fmt.Errorf("normalize: entry %d pattern %q: %w", i, e.Pattern, err)
		}
		rules = append(rules, rule{re: re, pattern: e.Pattern, canonical: e.Canonical})
	}
	return &Normalizer{rules: rules}, nil
}

// Default returns a Normalizer loaded with the built-in wake-phrase
// misrecognition table.
func Default() *Normalizer {
	n, err := New(DefaultEntries())
	if err != nil {
		// The built-in table is compile-time data; a bad pattern is a
		// programming error, not a runtime condition.
		panic(err)
	}
	return n
}

// Normalize applies every matching table entry to text and returns the
// result. Empty input is returned unchanged. Normalize is idempotent:
// canonical text matches no entry, so a second pass is a no-op.
func (n *Normalizer) Normalize(text string) string {
	out, _ := n.Apply(text)
	return out
}

// Apply is Normalize plus the per-entry audit record of what changed.
// The returned slice is nil when nothing matched.
func (n *Normalizer) Apply(text string) (string, []Replacement) {
	if text == "" {
		return text, nil
	}

	out := text
	var applied []Replacement
	for _, r := range n.rules {
		matches := r.re.FindAllStringIndex(out, -1)
		if len(matches) == 0 {
			continue
		}
		out = r.re.ReplaceAllString(out, r.canonical)
		applied = append(applied, Replacement{
			Pattern:   r.pattern,
			Canonical: r.canonical,
			Count:     len(matches),
		})
	}
	return out, applied
}
