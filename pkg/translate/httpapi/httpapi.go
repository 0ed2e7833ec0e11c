// Package httpapi provides a [translate.Translator] that talks plain JSON
// to a self-hosted translation service.
//
// Request:  POST {url} {"text": "...", "target": "fr", "preserve": [...]}
// Response: 200  {"translated": "..."}
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ghostquant/voicequery/internal/language"
	"github.com/ghostquant/voicequery/pkg/translate"
)

// Compile-time interface check.
var _ translate.Translator = (*Translator)(nil)

// request is the wire format sent to the translation service.
type request struct {
	Text     string   `json:"text"`
	Target   string   `json:"target"`
	Preserve []string `json:"preserve,omitempty"`
}

// response is the expected wire format returned by the service.
type response struct {
	Translated string `json:"translated"`
}

// Translator posts translation requests to a remote JSON endpoint.
// Safe for concurrent use.
type Translator struct {
	url      string
	client   *http.Client
	preserve []string
}

// New creates a Translator for the service at url. A nil client uses
// [http.DefaultClient]; pass a client with a timeout in production.
func New(url string, client *http.Client) (*Translator, error) {
	if url == "" {
		return nil, fmt.Errorf("httpapi translate: url must not be empty")
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Translator{
		url:      url,
		client:   client,
		preserve: translate.DefaultPreservedTerms(),
	}, nil
}

// Translate implements [translate.Translator].
func (t *Translator) Translate(ctx context.Context, text string, target language.Code) (string, error) {
	body, err := json.Marshal(request{
		Text:     text,
		Target:   string(target),
		Preserve: t.preserve,
	})
	if err != nil {
		return "", fmt.Errorf("httpapi translate: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("httpapi translate: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("httpapi translate: post: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("httpapi translate: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("httpapi translate: status %d: %s", resp.StatusCode, data)
	}

	var out response
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("httpapi translate: decode response: %w", err)
	}
	if out.Translated == "" {
		return "", fmt.Errorf("httpapi translate: blank translation in response")
	}
	return out.Translated, nil
}
