// Package phonetic implements the similarity-based second correction stage.
// Where the dictionary table in package normalize covers literal known
// misspellings, this stage catches the systematic single-word collision:
// the wake term being misheard as an unrelated common word (in practice
// almost always "google").
//
// Words are compared by a simplified phonetic code — vowels stripped,
// digraphs collapsed, consecutive duplicates removed — scored with a
// normalised Levenshtein distance over the codes, then boosted when the
// surrounding text carries domain vocabulary or a wake-prefix pattern.
package phonetic

import (
	"strings"

	"github.com/antzucaro/matchr"
)

// digraphs lists the two-letter clusters collapsed before vowel stripping,
// in application order.
var digraphs = []struct{ from, to string }{
	{"ph", "f"},
	{"qu", "kw"},
	{"gh", "g"},
	{"ck", "k"},
	{"wh", "w"},
}

// Code derives the phonetic code for word: lowercase, collapse digraphs,
// strip vowels, then remove consecutive duplicate letters. Non-letter runes
// are dropped. The empty string codes to the empty string.
func Code(word string) string {
	w := strings.ToLower(strings.TrimSpace(word))
	for _, d := range digraphs {
		w = strings.ReplaceAll(w, d.from, d.to)
	}

	var b strings.Builder
	var last rune
	for _, r := range w {
		if r < 'a' || r > 'z' {
			continue
		}
		switch r {
		case 'a', 'e', 'i', 'o', 'u':
			continue
		}
		if r == last {
			continue
		}
		b.WriteRune(r)
		last = r
	}
	return b.String()
}

// Similarity scores two phonetic codes in [0,1] as
// 1 - editDistance/max(len). Identical codes (including two empty codes)
// score exactly 1; fully disjoint codes approach 0.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 1
	}
	d := matchr.Levenshtein(a, b)
	return 1 - float64(d)/float64(longest)
}
