// Package openai provides a [translate.Translator] backed by an
// OpenAI-compatible chat completion endpoint.
package openai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/shared"

	"github.com/ghostquant/voicequery/internal/language"
	"github.com/ghostquant/voicequery/pkg/translate"
)

// Compile-time interface check.
var _ translate.Translator = (*Translator)(nil)

// systemPromptTemplate instructs the model to translate and nothing else.
// %s slots: target language name, preserved-terms list.
const systemPromptTemplate = `You are a translation service for a crypto intelligence product.

Translate the user's message into %s.

Rules:
- Output ONLY the translated text, with no preamble, quotes, or markdown.
- Keep the tone and meaning of the original.
- The following product names must appear UNTRANSLATED, exactly as written:
%s`

// config holds optional construction settings.
type config struct {
	baseURL  string
	timeout  time.Duration
	preserve []string
}

// Option is a functional option for [New].
type Option func(*config)

// WithBaseURL overrides the default API base URL (for OpenAI-compatible
// self-hosted endpoints).
func WithBaseURL(url string) Option {
	return func(c *config) { c.baseURL = url }
}

// WithTimeout sets a per-request HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *config) { c.timeout = d }
}

// WithPreservedTerms overrides the list of terms kept untranslated.
// Default: [translate.DefaultPreservedTerms].
func WithPreservedTerms(terms []string) Option {
	return func(c *config) { c.preserve = terms }
}

// Translator implements [translate.Translator] over the OpenAI chat API.
// Safe for concurrent use.
type Translator struct {
	client   oai.Client
	model    string
	preserve []string
}

// New constructs a Translator for the given API key and model.
func New(apiKey, model string, opts ...Option) (*Translator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai translate: apiKey must not be empty")
	}
	if model == "" {
		return nil, fmt.Errorf("openai translate: model must not be empty")
	}

	cfg := &config{preserve: translate.DefaultPreservedTerms()}
	for _, o := range opts {
		o(cfg)
	}

	reqOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if cfg.baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.baseURL))
	}
	if cfg.timeout > 0 {
		reqOpts = append(reqOpts, option.WithHTTPClient(&http.Client{Timeout: cfg.timeout}))
	}

	return &Translator{
		client:   oai.NewClient(reqOpts...),
		model:    model,
		preserve: cfg.preserve,
	}, nil
}

// Translate implements [translate.Translator].
func (t *Translator) Translate(ctx context.Context, text string, target language.Code) (string, error) {
	terms := "  (none)"
	if len(t.preserve) > 0 {
		terms = "  - " + strings.Join(t.preserve, "\n  - ")
	}
	system := fmt.Sprintf(systemPromptTemplate, target.Name(), terms)

	params := oai.ChatCompletionNewParams{
		Model: shared.ChatModel(t.model),
		Messages: []oai.ChatCompletionMessageParamUnion{
			oai.SystemMessage(system),
			oai.UserMessage(text),
		},
		Temperature: param.NewOpt(0.2),
	}

	resp, err := t.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai translate: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai translate: empty choices in response")
	}

	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", fmt.Errorf("openai translate: blank completion")
	}
	return out, nil
}
