// Package intent classifies the residual query (the text left after
// wake-phrase stripping) against a closed intent taxonomy.
//
// Classification is an ordered rule list evaluated short-circuit: the first
// rule with any matching pattern wins. The declaration order is a first-class
// invariant, not an implementation detail — the categories overlap (e.g.
// "what does this analyze" matches both a Functionality pattern and a
// DataQuery pattern) and the earlier rule must win. Reordering the rules
// changes observable behaviour.
package intent

import (
	"regexp"
	"strings"
)

// Kind enumerates the closed intent taxonomy.
type Kind string

const (
	PageInquiry   Kind = "page_inquiry"
	ExplainScreen Kind = "explain_screen"
	Functionality Kind = "functionality"
	Help          Kind = "help"
	Navigation    Kind = "navigation"
	DataQuery     Kind = "data_query"
	Unknown       Kind = "unknown"
)

// Intent is a classified query: the matched kind, the rule's base
// confidence, and any extracted slot parameters (e.g. the navigation
// destination).
type Intent struct {
	Kind       Kind
	Confidence float64
	Params     map[string]string
}

// Rule pairs a pattern set with the intent it produces. When a pattern with
// a capture group matches and Param is set, the first captured group is
// stored under Param (trimmed, trailing punctuation stripped).
type Rule struct {
	Kind       Kind
	Confidence float64
	Patterns   []*regexp.Regexp

	// Param names the slot filled from the first capture group, when any.
	Param string
}

// DefaultRules returns the built-in rule list in priority order:
//
//	PageInquiry > ExplainScreen > Functionality > Help > Navigation > DataQuery
//
// Patterns match against the lowercased, trimmed query.
func DefaultRules() []Rule {
	return []Rule{
		{
			Kind:       PageInquiry,
			Confidence: 0.95,
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`^what(?:'s| is) this(?: page)?\??$`),
				regexp.MustCompile(`\bwhere am i\b`),
				regexp.MustCompile(`\bwhich page\b`),
				regexp.MustCompile(`\bwhat page (?:is this|am i on)\b`),
			},
		},
		{
			Kind:       ExplainScreen,
			Confidence: 0.90,
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`\bexplain (?:this |the )?(?:screen|page|dashboard)\b`),
				regexp.MustCompile(`\bdescribe (?:this |the )?(?:screen|page|dashboard)\b`),
				regexp.MustCompile(`\bwalk me through\b`),
			},
		},
		{
			Kind:       Functionality,
			Confidence: 0.90,
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`\bwhat does (?:this|it)\b`),
				regexp.MustCompile(`\bhow does (?:this|it) work\b`),
				regexp.MustCompile(`\bpurpose of this\b`),
				regexp.MustCompile(`\bwhat(?:'s| is) (?:this|it) for\b`),
			},
		},
		{
			Kind:       Help,
			Confidence: 0.95,
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`^help\b`),
				regexp.MustCompile(`\bwhat can you do\b`),
				regexp.MustCompile(`\bi need help\b`),
			},
		},
		{
			Kind:       Navigation,
			Confidence: 0.85,
			Param:      "destination",
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`\b(?:go|navigate) to (?:the )?(.+)$`),
				regexp.MustCompile(`\btake me to (?:the )?(.+)$`),
				regexp.MustCompile(`\bopen (?:the )?(.+)$`),
				regexp.MustCompile(`\bshow me the (.+?) (?:page|dashboard|screen)$`),
			},
		},
		{
			Kind:       DataQuery,
			Confidence: 0.80,
			Param:      "subject",
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`\b(?:price|value) of (?:the )?(.+)$`),
				regexp.MustCompile(`\bshow (?:me )?((?:whale|market|trading).*)$`),
				regexp.MustCompile(`\b(?:analyze|analyse|track|find|search)(?: for)? (.+)$`),
			},
		},
	}
}

// Classifier evaluates the rule list against a query. Read-only after
// construction; safe for concurrent use.
type Classifier struct {
	rules []Rule
}

// NewClassifier returns a Classifier over rules. A nil or empty rule list
// falls back to [DefaultRules].
func NewClassifier(rules []Rule) *Classifier {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Classifier{rules: rules}
}

// Classify matches query against the rule list and returns the first hit.
// An empty query, or one matching no rule, yields [Unknown] at confidence
// 0.5 with no parameters. Classify never fails.
func (c *Classifier) Classify(query string) Intent {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return Intent{Kind: Unknown, Confidence: 0.5}
	}

	for _, rule := range c.rules {
		for _, re := range rule.Patterns {
			m := re.FindStringSubmatch(q)
			if m == nil {
				continue
			}
			out := Intent{Kind: rule.Kind, Confidence: rule.Confidence}
			if rule.Param != "" && len(m) > 1 {
				if v := cleanSlot(m[1]); v != "" {
					out.Params = map[string]string{rule.Param: v}
				}
			}
			return out
		}
	}
	return Intent{Kind: Unknown, Confidence: 0.5}
}

// cleanSlot trims a captured slot value and strips trailing punctuation.
func cleanSlot(s string) string {
	return strings.TrimRight(strings.TrimSpace(s), " .,!?")
}
