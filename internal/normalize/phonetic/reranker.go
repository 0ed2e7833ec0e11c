package phonetic

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	defaultCollisionToken = "google"
	defaultThreshold      = 0.6
	defaultContextBoost   = 0.3
)

// defaultKeywords is the domain vocabulary that triggers the context boost.
// Membership is a tuning decision, not a contract: override it with
// [WithContextKeywords].
var defaultKeywords = []string{
	"whale", "wallet", "market", "trading", "crypto", "bitcoin",
	"exchange", "liquidation", "portfolio", "token", "price", "chart",
}

// Result is the outcome of one rerank pass.
type Result struct {
	// Text is the (possibly rewritten) transcript.
	Text string

	// Reranked reports whether the collision token was replaced.
	Reranked bool

	// Confidence is the computed score even when below threshold, so
	// callers can log near-misses.
	Confidence float64
}

// Option is a functional option for configuring a [Reranker].
type Option func(*Reranker)

// WithCollisionToken overrides the misheard token the reranker looks for.
// Default: "google".
func WithCollisionToken(token string) Option {
	return func(r *Reranker) { r.collision = strings.ToLower(strings.TrimSpace(token)) }
}

// WithCanonicalTerm overrides the wake term substituted on a positive
// decision. Default: "GhostQuant".
func WithCanonicalTerm(term string) Option {
	return func(r *Reranker) { r.canonical = term }
}

// WithThreshold sets the confidence gate for applying the replacement.
// Default: 0.6.
func WithThreshold(t float64) Option {
	return func(r *Reranker) { r.threshold = t }
}

// WithContextBoost sets the fixed increment added when domain vocabulary or
// a wake-prefix pattern is present. Default: 0.3.
func WithContextBoost(b float64) Option {
	return func(r *Reranker) { r.boost = b }
}

// WithContextKeywords replaces the domain vocabulary list.
func WithContextKeywords(words []string) Option {
	return func(r *Reranker) { r.keywords = words }
}

// Reranker decides whether the collision token in a transcript was actually
// the wake term, and rewrites it when confident. Read-only after
// construction; safe for concurrent use.
type Reranker struct {
	collision string
	canonical string
	threshold float64
	boost     float64
	keywords  []string

	tokenRe   *regexp.Regexp // bare collision token, whole word
	prefixRe  *regexp.Regexp // "hey/ok/okay <collision>"
	keywordRe *regexp.Regexp
}

// New returns a Reranker configured with the supplied options.
func New(opts ...Option) *Reranker {
	r := &Reranker{
		collision: defaultCollisionToken,
		canonical: "GhostQuant",
		threshold: defaultThreshold,
		boost:     defaultContextBoost,
		keywords:  defaultKeywords,
	}
	for _, o := range opts {
		o(r)
	}

	quoted := regexp.QuoteMeta(r.collision)
	r.tokenRe = regexp.MustCompile(`(?i)\b` + quoted + `\b`)
	r.prefixRe = regexp.MustCompile(`(?i)\b(hey|ok|okay)[\s,]+` + quoted + `\b`)

	if len(r.keywords) > 0 {
		parts := make([]string, len(r.keywords))
		for i, k := range r.keywords {
			parts[i] = regexp.QuoteMeta(strings.ToLower(k))
		}
		r.keywordRe = regexp.MustCompile(`(?i)\b(?:` + strings.Join(parts, "|") + `)\b`)
	}
	return r
}

// Rerank inspects text for the collision token and rewrites it to the
// canonical wake term when the phonetic similarity plus context boost clears
// the threshold, or when the context boost fired at all (domain vocabulary
// around the token is treated as decisive even when the phonetic codes are
// far apart).
//
// All whole-word occurrences are replaced uniformly once the decision is
// made. Text without the collision token, including the empty string, is
// returned unmodified with confidence 0.
func (r *Reranker) Rerank(text string) Result {
	if text == "" || !r.tokenRe.MatchString(text) {
		return Result{Text: text}
	}

	similarity := Similarity(Code(r.collision), Code(r.canonical))

	boosted := r.prefixRe.MatchString(text) ||
		(r.keywordRe != nil && r.keywordRe.MatchString(text))

	confidence := similarity
	if boosted {
		confidence += r.boost
		if confidence > 1 {
			confidence = 1
		}
	}

	if confidence < r.threshold && !boosted {
		return Result{Text: text, Confidence: confidence}
	}

	return Result{Text: r.rewrite(text), Reranked: true, Confidence: confidence}
}

// rewrite replaces all whole-word occurrences of the collision token with
// the canonical term. Wake-prefix casing is explicit: "hey" becomes "Hey",
// "ok" becomes "Ok", "okay" becomes "Okay", regardless of how the prefix was
// transcribed.
func (r *Reranker) rewrite(text string) string {
	out := r.prefixRe.ReplaceAllStringFunc(text, func(m string) string {
		sub := r.prefixRe.FindStringSubmatch(m)
		prefix := strings.ToLower(sub[1])
		return fmt.Sprintf("%s%s %s", strings.ToUpper(prefix[:1]), prefix[1:], r.canonical)
	})
	return r.tokenRe.ReplaceAllString(out, r.canonical)
}
