// Package config provides the configuration schema and loader for the voice
// query pipeline. Every tuning knob the pipeline exposes — correction
// tables, reranker thresholds, context keywords, intent behaviour, the
// preference store, the translator backend — is overridable here; zero
// values keep the built-in defaults.
package config

import (
	"github.com/ghostquant/voicequery/internal/normalize"
	"github.com/ghostquant/voicequery/internal/pipeline"
	"github.com/ghostquant/voicequery/internal/wake"
)

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// TranslatorName selects the translation backend.
type TranslatorName string

const (
	// TranslatorNone disables translation; responses stay in English.
	TranslatorNone TranslatorName = ""

	// TranslatorOpenAI uses an OpenAI-compatible chat completion endpoint.
	TranslatorOpenAI TranslatorName = "openai"

	// TranslatorHTTP posts to a self-hosted JSON translation service.
	TranslatorHTTP TranslatorName = "http"
)

// IsValid reports whether n is a recognised translator backend name.
func (n TranslatorName) IsValid() bool {
	switch n {
	case TranslatorNone, TranslatorOpenAI, TranslatorHTTP:
		return true
	}
	return false
}

// Config is the root configuration structure, typically loaded from a YAML
// file using [Load] or [LoadFromReader].
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Pipeline   PipelineConfig   `yaml:"pipeline"`
	Routing    RoutingConfig    `yaml:"routing"`
	Translator TranslatorConfig `yaml:"translator"`
}

// ServerConfig holds process-level settings.
type ServerConfig struct {
	// LogLevel controls verbosity. Default: info.
	LogLevel LogLevel `yaml:"log_level"`
}

// PipelineConfig overrides the correction and classification stages.
// Empty slices and zero values keep the package defaults.
type PipelineConfig struct {
	// Misrecognitions replaces the built-in wake-phrase correction table.
	Misrecognitions []normalize.Entry `yaml:"misrecognitions"`

	// WakeAliases replaces the built-in wake-alias table.
	WakeAliases []wake.Alias `yaml:"wake_aliases"`

	// Reranker tunes the phonetic reranking stage.
	Reranker RerankerConfig `yaml:"reranker"`

	// Pages replaces the built-in page-context route table.
	Pages []pipeline.PageContext `yaml:"pages"`
}

// RerankerConfig tunes the phonetic reranker. The keyword list, boost, and
// threshold are product tuning decisions, deliberately exposed rather than
// hard-coded.
type RerankerConfig struct {
	// CollisionToken is the common word the wake term is misheard as.
	// Default: "google".
	CollisionToken string `yaml:"collision_token"`

	// CanonicalTerm is the wake term substituted on a positive decision.
	// Default: "GhostQuant".
	CanonicalTerm string `yaml:"canonical_term"`

	// Threshold gates the rewrite; range [0,1]. Default: 0.6.
	Threshold float64 `yaml:"threshold"`

	// ContextBoost is added when domain vocabulary or a wake prefix is
	// present; range [0,1]. Default: 0.3.
	ContextBoost float64 `yaml:"context_boost"`

	// ContextKeywords replaces the built-in domain vocabulary list.
	ContextKeywords []string `yaml:"context_keywords"`
}

// RoutingConfig holds language routing settings.
type RoutingConfig struct {
	// PreferenceStoreDSN is the PostgreSQL DSN for durable preference
	// storage. Empty runs with in-memory preferences only.
	PreferenceStoreDSN string `yaml:"preference_store_dsn"`
}

// TranslatorConfig selects and configures the translation backend.
type TranslatorConfig struct {
	// Name selects the backend. Empty disables translation.
	Name TranslatorName `yaml:"name"`

	// APIKey authenticates against the backend, when it needs one.
	APIKey string `yaml:"api_key"`

	// BaseURL overrides the backend's endpoint. Required for the http
	// backend; optional for openai.
	BaseURL string `yaml:"base_url"`

	// Model selects the model for the openai backend (e.g. "gpt-4o-mini").
	Model string `yaml:"model"`

	// PreservedTerms replaces the built-in list of product names kept
	// untranslated.
	PreservedTerms []string `yaml:"preserved_terms"`
}
