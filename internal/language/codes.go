// Package language implements heuristic language identification for voice
// transcripts. Detection combines Unicode-script scoring (decisive for
// languages with a distinguishing script block) with lexical pattern scoring
// for Latin-script languages. The detector is fully deterministic: identical
// input always produces an identical [DetectionResult].
package language

// Code identifies a supported response language (ISO-639-1 style).
type Code string

const (
	English    Code = "en"
	Spanish    Code = "es"
	French     Code = "fr"
	Chinese    Code = "zh"
	Hindi      Code = "hi"
	Japanese   Code = "ja"
	Korean     Code = "ko"
	Arabic     Code = "ar"
	Portuguese Code = "pt"
	German     Code = "de"
	Italian    Code = "it"
)

// All returns every supported language code in a fixed order. The order is
// significant: it is the tie-break order used when ranking detection scores.
func All() []Code {
	return []Code{English, Spanish, French, Chinese, Hindi, Japanese, Korean, Arabic, Portuguese, German, Italian}
}

// IsValid reports whether c is a recognised language code.
func (c Code) IsValid() bool {
	switch c {
	case English, Spanish, French, Chinese, Hindi, Japanese, Korean, Arabic, Portuguese, German, Italian:
		return true
	}
	return false
}

// Name returns the English display name for c, or "Unknown" for
// unrecognised codes.
func (c Code) Name() string {
	switch c {
	case English:
		return "English"
	case Spanish:
		return "Spanish"
	case French:
		return "French"
	case Chinese:
		return "Chinese"
	case Hindi:
		return "Hindi"
	case Japanese:
		return "Japanese"
	case Korean:
		return "Korean"
	case Arabic:
		return "Arabic"
	case Portuguese:
		return "Portuguese"
	case German:
		return "German"
	case Italian:
		return "Italian"
	}
	return "Unknown"
}

// names maps spoken language names (English and native spellings) to codes.
// Used by the router's switch-command matcher.
var names = map[string]Code{
	"english":    English,
	"spanish":    Spanish,
	"español":    Spanish,
	"espanol":    Spanish,
	"french":     French,
	"français":   French,
	"francais":   French,
	"chinese":    Chinese,
	"mandarin":   Chinese,
	"中文":         Chinese,
	"hindi":      Hindi,
	"japanese":   Japanese,
	"日本語":        Japanese,
	"korean":     Korean,
	"한국어":        Korean,
	"arabic":     Arabic,
	"العربية":    Arabic,
	"portuguese": Portuguese,
	"português":  Portuguese,
	"portugues":  Portuguese,
	"german":     German,
	"deutsch":    German,
	"italian":    Italian,
	"italiano":   Italian,
}

// FromName resolves a spoken language name (e.g. "spanish", "français") to
// its [Code]. The lookup is exact on the lowercased name.
func FromName(name string) (Code, bool) {
	c, ok := names[name]
	return c, ok
}
