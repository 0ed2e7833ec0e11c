// Package router maintains session-scoped language routing state and the
// decision procedure over it: explicit switch commands beat a stored user
// preference, which beats confident auto-detection, which beats the sticky
// current language.
package router

import (
	"time"

	"github.com/ghostquant/voicequery/internal/language"
)

// PreferenceAuto is the UserPreference value meaning "follow detection".
// It is never a valid ActiveLanguage.
const PreferenceAuto language.Code = "auto"

// HistoryEntry records one routing decision that changed or confirmed the
// active language.
type HistoryEntry struct {
	Language language.Code
	At       time.Time
}

// State is the per-session routing state. It is not self-synchronising:
// the owning [Manager] serialises access per session.
//
// Invariant: ActiveLanguage is always a concrete language code, never
// PreferenceAuto. UserPreference may be PreferenceAuto, in which case
// ActiveLanguage tracks the most recent confident detection and defaults
// to English.
type State struct {
	UserPreference   language.Code
	DetectedLanguage language.Code
	ActiveLanguage   language.Code
	LastDetection    *language.DetectionResult
	History          []HistoryEntry
}

// NewState returns the initial session state: auto preference, English
// active, empty history.
func NewState() *State {
	return &State{
		UserPreference: PreferenceAuto,
		ActiveLanguage: language.English,
	}
}

// MostUsedLanguage is a read-side aggregation over History: the language
// with the most entries, ties broken by whichever appeared first in the
// history. Returns the active language when the history is empty. Used for
// analytics only, never for routing decisions.
func (s *State) MostUsedLanguage() language.Code {
	if len(s.History) == 0 {
		return s.ActiveLanguage
	}
	counts := make(map[language.Code]int, len(s.History))
	max := 0
	for _, h := range s.History {
		counts[h.Language]++
		if counts[h.Language] > max {
			max = counts[h.Language]
		}
	}
	// First language in history order holding the winning count.
	for _, h := range s.History {
		if counts[h.Language] == max {
			return h.Language
		}
	}
	return s.ActiveLanguage
}
