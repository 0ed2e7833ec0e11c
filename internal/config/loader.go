package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ghostquant/voicequery/internal/normalize"
)

// Load reads the YAML configuration file at path and returns a validated
// [Config]. It is a convenience wrapper around [LoadFromReader].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r and validates the result.
// Useful in tests where configs are constructed from string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			// An empty file is a valid all-defaults config.
			return cfg, nil
		}
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values. It returns a
// joined error listing all validation failures found; soft issues are
// logged as warnings instead.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Server.LogLevel != "" && !cfg.Server.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("server.log_level %q is invalid; valid values: debug, info, warn, error", cfg.Server.LogLevel))
	}

	// Misrecognition patterns must compile; reuse the stage's own compiler
	// so config errors surface at load time, not first use.
	if len(cfg.Pipeline.Misrecognitions) > 0 {
		if _, err := normalize.New(cfg.Pipeline.Misrecognitions); err != nil {
			errs = append(errs, fmt.Errorf("pipeline.misrecognitions: %w", err))
		}
	}

	for i, a := range cfg.Pipeline.WakeAliases {
		if len(a.Variants) == 0 {
			errs = append(errs, fmt.Errorf("pipeline.wake_aliases[%d] has no variants", i))
		}
		if a.Canonical == "" {
			errs = append(errs, fmt.Errorf("pipeline.wake_aliases[%d].canonical is required", i))
		}
	}

	rr := cfg.Pipeline.Reranker
	if rr.Threshold < 0 || rr.Threshold > 1 {
		errs = append(errs, fmt.Errorf("pipeline.reranker.threshold %.2f is out of range [0, 1]", rr.Threshold))
	}
	if rr.ContextBoost < 0 || rr.ContextBoost > 1 {
		errs = append(errs, fmt.Errorf("pipeline.reranker.context_boost %.2f is out of range [0, 1]", rr.ContextBoost))
	}

	if !cfg.Translator.Name.IsValid() {
		errs = append(errs, fmt.Errorf("translator.name %q is invalid; valid values: openai, http, or empty", cfg.Translator.Name))
	}
	switch cfg.Translator.Name {
	case TranslatorOpenAI:
		if cfg.Translator.APIKey == "" {
			errs = append(errs, errors.New("translator.api_key is required for the openai backend"))
		}
		if cfg.Translator.Model == "" {
			errs = append(errs, errors.New("translator.model is required for the openai backend"))
		}
	case TranslatorHTTP:
		if cfg.Translator.BaseURL == "" {
			errs = append(errs, errors.New("translator.base_url is required for the http backend"))
		}
	}

	if cfg.Routing.PreferenceStoreDSN == "" {
		slog.Warn("routing.preference_store_dsn is empty; language preferences will not survive restarts")
	}

	return errors.Join(errs...)
}
