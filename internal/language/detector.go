package language

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// Method records which detection path produced a [DetectionResult].
type Method string

const (
	// MethodPattern means lexical function-word patterns decided the result.
	MethodPattern Method = "pattern"

	// MethodCharacter means a distinguishing Unicode script block decided
	// the result.
	MethodCharacter Method = "character"

	// MethodExternal means an upstream source (e.g. the transcription
	// service's own language hint) supplied the result directly.
	MethodExternal Method = "external"

	// MethodFallback means no language scored confidently and the default
	// was returned.
	MethodFallback Method = "fallback"
)

// Alternative is a runner-up language with its normalised score.
type Alternative struct {
	Language   Code
	Confidence float64
}

// DetectionResult is the outcome of one detection pass over a transcript.
type DetectionResult struct {
	Language     Code
	Confidence   float64
	Alternatives []Alternative
	Method       Method
}

const (
	// characterWeight scales script-block scores so that non-Latin scripts
	// dominate lexical scores once any meaningful density is present.
	characterWeight = 100.0

	// patternIncrement is the score added per lexical pattern occurrence.
	patternIncrement = 10.0

	// minConfidence is the floor below which detection falls back to English.
	minConfidence = 0.3

	// fallbackConfidence is reported on the English fallback path.
	fallbackConfidence = 0.5

	// externalConfidence is reported for externally supplied results.
	externalConfidence = 0.9

	// maxAlternatives bounds the runner-up list.
	maxAlternatives = 3
)

// scriptRange associates a language with its distinguishing Unicode blocks.
type scriptRange struct {
	lang   Code
	tables []*unicode.RangeTable
}

// scriptRanges lists the languages that can be identified from script alone.
// Japanese is keyed on kana only: kanji is counted toward Chinese, so mixed
// Japanese text scores both and the kana fraction decides.
var scriptRanges = []scriptRange{
	{Chinese, []*unicode.RangeTable{unicode.Han}},
	{Japanese, []*unicode.RangeTable{unicode.Hiragana, unicode.Katakana}},
	{Korean, []*unicode.RangeTable{unicode.Hangul}},
	{Arabic, []*unicode.RangeTable{unicode.Arabic}},
	{Hindi, []*unicode.RangeTable{unicode.Devanagari}},
}

// lexicalPattern associates a language with a curated function-word regex.
type lexicalPattern struct {
	lang Code
	re   *regexp.Regexp
}

// lexicalPatterns holds the per-language function-word and greeting patterns
// for Latin-script languages. Every occurrence adds patternIncrement to the
// language's score. The word lists are deliberately small and high-precision:
// articles and question words that rarely appear in the other languages.
var lexicalPatterns = []lexicalPattern{
	{English, regexp.MustCompile(`(?i)\b(the|is|are|what|where|which|how|hello|please|thanks|thank you|show|price)\b`)},
	{Spanish, regexp.MustCompile(`(?i)\b(el|la|los|las|es|está|qué|dónde|cómo|cuál|hola|gracias|por favor|muéstrame|precio)\b`)},
	{French, regexp.MustCompile(`(?i)\b(le|la|les|est|sont|quoi|où|comment|quel|quelle|bonjour|merci|montre|expliquer|prix)\b`)},
	{Portuguese, regexp.MustCompile(`(?i)\b(você|não|são|qual|onde|como|olá|obrigado|obrigada|mostre|preço)\b`)},
	{German, regexp.MustCompile(`(?i)\b(der|die|das|ist|sind|was|wo|wie|welche|hallo|bitte|danke|zeig|preis)\b`)},
	{Italian, regexp.MustCompile(`(?i)\b(il|lo|gli|è|sono|cosa|dove|come|quale|ciao|grazie|mostrami|prezzo)\b`)},
	{Hindi, regexp.MustCompile(`(?i)\b(kya|kaise|kahan|namaste|hai|nahi|dikhao)\b`)},
}

// Detector scores a transcript against every supported language and returns
// the ranked result. It is read-only after construction and safe for
// concurrent use.
type Detector struct {
	scripts  []scriptRange
	patterns []lexicalPattern
}

// NewDetector returns a Detector with the built-in script and lexical tables.
func NewDetector() *Detector {
	return &Detector{
		scripts:  scriptRanges,
		patterns: lexicalPatterns,
	}
}

// Detect identifies the language of text.
//
// Two independent passes are summed per language: script-block character
// counting (weighted by the matched fraction of the text and scaled by
// characterWeight) and lexical pattern occurrence counting. The top-scoring
// language wins with confidence topScore/totalScore. When nothing scores, or
// the winner's confidence is below minConfidence, the English fallback is
// returned instead.
//
// Detect never fails: every input, including the empty string, yields a
// well-formed result.
func (d *Detector) Detect(text string) DetectionResult {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return fallbackResult()
	}

	scores := make(map[Code]float64)
	characterFired := false

	// Pass 1: script-block scoring.
	runes := []rune(trimmed)
	total := len(runes)
	for _, sr := range d.scripts {
		count := 0
		for _, r := range runes {
			for _, tbl := range sr.tables {
				if unicode.Is(tbl, r) {
					count++
					break
				}
			}
		}
		if count > 0 {
			characterFired = true
			scores[sr.lang] += float64(count) / float64(total) * characterWeight
		}
	}

	// Pass 2: lexical pattern scoring.
	for _, lp := range d.patterns {
		if n := len(lp.re.FindAllString(trimmed, -1)); n > 0 {
			scores[lp.lang] += float64(n) * patternIncrement
		}
	}

	if len(scores) == 0 {
		return fallbackResult()
	}

	ranked, totalScore := rank(scores)
	top := ranked[0]
	confidence := top.score / totalScore
	if confidence < minConfidence {
		return fallbackResult()
	}

	method := MethodPattern
	if characterFired {
		method = MethodCharacter
	}

	var alts []Alternative
	for _, e := range ranked[1:] {
		if len(alts) == maxAlternatives {
			break
		}
		alts = append(alts, Alternative{Language: e.lang, Confidence: e.score / totalScore})
	}

	return DetectionResult{
		Language:     top.lang,
		Confidence:   confidence,
		Alternatives: alts,
		Method:       method,
	}
}

// ExternalResult wraps a language hint supplied by an upstream source
// (bypassing text scoring) in a [DetectionResult] with [MethodExternal]
// and a fixed high confidence. Invalid codes fall back to English.
func ExternalResult(lang Code) DetectionResult {
	if !lang.IsValid() {
		return fallbackResult()
	}
	return DetectionResult{
		Language:   lang,
		Confidence: externalConfidence,
		Method:     MethodExternal,
	}
}

func fallbackResult() DetectionResult {
	return DetectionResult{
		Language:   English,
		Confidence: fallbackConfidence,
		Method:     MethodFallback,
	}
}

type rankedEntry struct {
	lang  Code
	score float64
}

// rank orders scores descending. Ties break on the fixed [All] order so that
// identical input always produces an identical ranking.
func rank(scores map[Code]float64) ([]rankedEntry, float64) {
	order := make(map[Code]int, len(scores))
	for i, c := range All() {
		order[c] = i
	}

	entries := make([]rankedEntry, 0, len(scores))
	var total float64
	for lang, score := range scores {
		entries = append(entries, rankedEntry{lang, score})
		total += score
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].score != entries[j].score {
			return entries[i].score > entries[j].score
		}
		return order[entries[i].lang] < order[entries[j].lang]
	})
	return entries, total
}
