package router

import (
	"regexp"
	"strings"
	"time"

	"github.com/ghostquant/voicequery/internal/language"
)

// detectionThreshold is the minimum detection confidence that moves the
// active language in auto mode. Lower-confidence detections leave the
// current language untouched (sticky fallback).
const detectionThreshold = 0.6

// Reason explains which transition produced a [Decision].
type Reason string

const (
	// ReasonSwitchCommand means the transcript contained an explicit
	// language switch command. Overrides everything else.
	ReasonSwitchCommand Reason = "switch_command"

	// ReasonPreference means a stored non-auto user preference was applied;
	// no detection ran.
	ReasonPreference Reason = "preference"

	// ReasonDetection means auto mode accepted a confident detection.
	ReasonDetection Reason = "detection"

	// ReasonSticky means detection was unconfident and the current active
	// language was kept.
	ReasonSticky Reason = "sticky"
)

// Decision is the outcome of routing one transcript.
type Decision struct {
	// Language is the routed target response language. Always concrete.
	Language language.Code

	// Reason identifies the transition taken.
	Reason Reason

	// Confidence is 1.0 for switch commands and preferences, otherwise the
	// detection confidence.
	Confidence float64

	// Detection is the detection result when one was run, nil otherwise.
	Detection *language.DetectionResult
}

// switchPatterns matches explicit language switch commands. Each submatch 1
// is a spoken language name resolved through [language.FromName]. The
// families cover English commands plus the French/Spanish imperative forms
// users actually say.
var switchPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:switch|change) (?:to|into) ([\p{L}]+)\b`),
	regexp.MustCompile(`(?i)\b(?:explain|answer|respond|reply|speak) in ([\p{L}]+)\b`),
	regexp.MustCompile(`(?i)\b(?:explique|parle|réponds?) en ([\p{L}]+)\b`),
	regexp.MustCompile(`(?i)\b(?:habla|explica|responde) en ([\p{L}]+)\b`),
}

// Router applies the transition rules to a [State]. Router itself is
// stateless and safe for concurrent use; callers serialise access to each
// State (see [Manager]).
type Router struct {
	detector *language.Detector
	now      func() time.Time
}

// NewRouter returns a Router using detector for auto-mode identification.
// A nil detector gets the built-in one.
func NewRouter(detector *language.Detector) *Router {
	if detector == nil {
		detector = language.NewDetector()
	}
	return &Router{detector: detector, now: time.Now}
}

// Route evaluates text against state and returns the routing decision,
// mutating state according to the transition taken. Transitions in priority
// order:
//
//  1. Switch command → set preference and active language, append history.
//  2. Non-auto preference → return it unchanged; detection is skipped.
//  3. Auto mode, confident detection → adopt it, append history.
//  4. Auto mode otherwise → keep the current active language.
func (r *Router) Route(state *State, text string) Decision {
	return r.route(state, text, func() language.DetectionResult {
		return r.detector.Detect(text)
	})
}

// RouteHinted is [Router.Route] with an upstream language hint (e.g. the
// transcription service's own identification) standing in for text-based
// detection. Switch commands and stored preferences still take priority.
func (r *Router) RouteHinted(state *State, text string, hint language.Code) Decision {
	return r.route(state, text, func() language.DetectionResult {
		return language.ExternalResult(hint)
	})
}

func (r *Router) route(state *State, text string, detect func() language.DetectionResult) Decision {
	if lang, ok := matchSwitchCommand(text); ok {
		state.UserPreference = lang
		state.ActiveLanguage = lang
		state.History = append(state.History, HistoryEntry{Language: lang, At: r.now()})
		return Decision{Language: lang, Reason: ReasonSwitchCommand, Confidence: 1}
	}

	if state.UserPreference != PreferenceAuto {
		return Decision{Language: state.UserPreference, Reason: ReasonPreference, Confidence: 1}
	}

	det := detect()
	state.LastDetection = &det

	if det.Method != language.MethodFallback && det.Confidence >= detectionThreshold {
		state.DetectedLanguage = det.Language
		state.ActiveLanguage = det.Language
		state.History = append(state.History, HistoryEntry{Language: det.Language, At: r.now()})
		return Decision{Language: det.Language, Reason: ReasonDetection, Confidence: det.Confidence, Detection: &det}
	}

	return Decision{Language: state.ActiveLanguage, Reason: ReasonSticky, Confidence: det.Confidence, Detection: &det}
}

// matchSwitchCommand scans text for an explicit switch command and resolves
// the spoken language name. Unrecognised names do not match (the utterance
// falls through to detection).
func matchSwitchCommand(text string) (language.Code, bool) {
	for _, re := range switchPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if lang, ok := language.FromName(strings.ToLower(m[1])); ok {
			return lang, true
		}
	}
	return "", false
}
