package config_test

import (
	"strings"
	"testing"

	"github.com/ghostquant/voicequery/internal/config"
)

func TestLoadFromReader_FullConfig(t *testing.T) {
	t.Parallel()

	const yml = `
server:
  log_level: debug
pipeline:
  misrecognitions:
    - pattern: 'spectre\s+quant'
      canonical: SpectreQuant
  wake_aliases:
    - variants:
        - '(?:hey\s+)?spectrequant'
      canonical: Hey SpectreQuant
  reranker:
    collision_token: alexa
    canonical_term: SpectreQuant
    threshold: 0.7
    context_boost: 0.2
    context_keywords:
      - futures
  pages:
    - path: /custom
      title: Custom
      description: A custom page.
      features:
        - thing
routing:
  preference_store_dsn: postgres://localhost/voicequery
translator:
  name: openai
  api_key: sk-test
  model: gpt-4o-mini
  preserved_terms:
    - SpectreQuant
`
	cfg, err := config.LoadFromReader(strings.NewReader(yml))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}

	if cfg.Server.LogLevel != config.LogDebug {
		t.Errorf("LogLevel = %q, want debug", cfg.Server.LogLevel)
	}
	if len(cfg.Pipeline.Misrecognitions) != 1 || cfg.Pipeline.Misrecognitions[0].Canonical != "SpectreQuant" {
		t.Errorf("Misrecognitions = %+v", cfg.Pipeline.Misrecognitions)
	}
	if len(cfg.Pipeline.WakeAliases) != 1 || cfg.Pipeline.WakeAliases[0].Canonical != "Hey SpectreQuant" {
		t.Errorf("WakeAliases = %+v", cfg.Pipeline.WakeAliases)
	}
	if cfg.Pipeline.Reranker.Threshold != 0.7 {
		t.Errorf("Reranker.Threshold = %f, want 0.7", cfg.Pipeline.Reranker.Threshold)
	}
	if len(cfg.Pipeline.Pages) != 1 || cfg.Pipeline.Pages[0].Path != "/custom" {
		t.Errorf("Pages = %+v", cfg.Pipeline.Pages)
	}
	if cfg.Translator.Name != config.TranslatorOpenAI {
		t.Errorf("Translator.Name = %q, want openai", cfg.Translator.Name)
	}
}

func TestLoadFromReader_EmptyIsAllDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadFromReader(strings.NewReader(""))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if cfg.Server.LogLevel != "" || cfg.Translator.Name != config.TranslatorNone {
		t.Errorf("empty config = %+v, want zero values", cfg)
	}
}

func TestLoadFromReader_RejectsUnknownFields(t *testing.T) {
	t.Parallel()

	_, err := config.LoadFromReader(strings.NewReader("server:\n  log_levle: debug\n"))
	if err == nil {
		t.Fatal("LoadFromReader with a misspelled key: err = nil, want error")
	}
}

func TestLoadFromReader_RejectsMalformedYAML(t *testing.T) {
	t.Parallel()

	_, err := config.LoadFromReader(strings.NewReader("server: ["))
	if err == nil {
		t.Fatal("LoadFromReader with broken YAML: err = nil, want error")
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	cfg.Server.LogLevel = "loud"
	cfg.Pipeline.Reranker.Threshold = 1.5
	cfg.Pipeline.Reranker.ContextBoost = -0.1
	cfg.Translator.Name = "carrier-pigeon"

	err := config.Validate(cfg)
	if err == nil {
		t.Fatal("Validate: err = nil, want joined errors")
	}
	for _, want := range []string{"log_level", "threshold", "context_boost", "translator.name"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate error %q should mention %s", err, want)
		}
	}
}

func TestValidate_BadMisrecognitionPattern(t *testing.T) {
	t.Parallel()

	bad, err := config.LoadFromReader(strings.NewReader(`
pipeline:
  misrecognitions:
    - pattern: 'ghost['
      canonical: GhostQuant
`))
	if err == nil {
		t.Fatalf("LoadFromReader with invalid pattern succeeded: %+v", bad)
	}
	if !strings.Contains(err.Error(), "misrecognitions") {
		t.Errorf("error %q should mention misrecognitions", err)
	}
}

func TestValidate_TranslatorRequirements(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	cfg.Translator.Name = config.TranslatorOpenAI
	err := config.Validate(cfg)
	if err == nil || !strings.Contains(err.Error(), "api_key") {
		t.Errorf("Validate(openai without key) = %v, want api_key error", err)
	}

	cfg = &config.Config{}
	cfg.Translator.Name = config.TranslatorHTTP
	err = config.Validate(cfg)
	if err == nil || !strings.Contains(err.Error(), "base_url") {
		t.Errorf("Validate(http without url) = %v, want base_url error", err)
	}
}

func TestValidate_WakeAliasRequirements(t *testing.T) {
	t.Parallel()

	_, err := config.LoadFromReader(strings.NewReader(`
pipeline:
  wake_aliases:
    - variants: []
      canonical: ""
`))
	if err == nil {
		t.Fatal("LoadFromReader with empty alias: err = nil, want error")
	}
	if !strings.Contains(err.Error(), "wake_aliases[0]") {
		t.Errorf("error %q should name the failing alias", err)
	}
}
