// Package translate defines the response translation boundary: given
// response text and a target language code, return translated text. The
// concrete service is an external collaborator (an LLM endpoint or a
// self-hosted translation API); this package owns only the contract, the
// list of product terms that must survive translation untouched, and the
// degrade-to-source fallback behaviour.
package translate

import (
	"context"

	"github.com/ghostquant/voicequery/internal/language"
)

// Translator converts text into the target language. Implementations must
// be safe for concurrent use and must respect ctx cancellation — translation
// is the pipeline's only network call and the only place a user-triggered
// abort matters.
type Translator interface {
	Translate(ctx context.Context, text string, target language.Code) (string, error)
}

// DefaultPreservedTerms lists product proper nouns that must appear
// untranslated in the output, whatever the target language.
func DefaultPreservedTerms() []string {
	return []string{
		"GhostQuant",
		"Whale Intelligence",
		"Market Intelligence",
		"Trading Intelligence",
		"Wallet Profiler",
	}
}
