// Package mock provides a test double for the translate.Translator
// interface. Set the response fields before use; mutating them during a
// concurrent call is the caller's responsibility.
package mock

import (
	"context"
	"sync"

	"github.com/ghostquant/voicequery/internal/language"
	"github.com/ghostquant/voicequery/pkg/translate"
)

// Compile-time interface check.
var _ translate.Translator = (*Translator)(nil)

// Call records a single Translate invocation.
type Call struct {
	Text   string
	Target language.Code
}

// Translator is a configurable mock. Zero value returns the input text
// unchanged with a nil error.
type Translator struct {
	mu sync.Mutex

	// Response, when non-empty, is returned for every call.
	Response string

	// Err, when non-nil, is returned instead of a translation.
	Err error

	// Fn, when non-nil, overrides Response/Err entirely.
	Fn func(ctx context.Context, text string, target language.Code) (string, error)

	// Calls records every invocation in order.
	Calls []Call
}

// Translate implements translate.Translator.
func (t *Translator) Translate(ctx context.Context, text string, target language.Code) (string, error) {
	t.mu.Lock()
	t.Calls = append(t.Calls, Call{Text: text, Target: target})
	fn, resp, err := t.Fn, t.Response, t.Err
	t.mu.Unlock()

	if fn != nil {
		return fn(ctx, text, target)
	}
	if err != nil {
		return "", err
	}
	if resp != "" {
		return resp, nil
	}
	return text, nil
}

// CallCount returns the number of recorded invocations.
func (t *Translator) CallCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.Calls)
}
