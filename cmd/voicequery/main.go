// Command voicequery is a development harness for the voice input pipeline:
// it reads transcripts from stdin, runs each through normalization, intent
// classification, and language routing, and prints the results. The
// production surface is the library packages; this binary exists to exercise
// them end to end with real configuration.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ghostquant/voicequery/internal/config"
	"github.com/ghostquant/voicequery/internal/intent"
	"github.com/ghostquant/voicequery/internal/normalize"
	"github.com/ghostquant/voicequery/internal/normalize/phonetic"
	"github.com/ghostquant/voicequery/internal/observe"
	"github.com/ghostquant/voicequery/internal/pipeline"
	"github.com/ghostquant/voicequery/internal/router"
	"github.com/ghostquant/voicequery/internal/wake"
	"github.com/ghostquant/voicequery/pkg/prefstore"
	pgstore "github.com/ghostquant/voicequery/pkg/prefstore/postgres"
	"github.com/ghostquant/voicequery/pkg/translate"
	"github.com/ghostquant/voicequery/pkg/translate/httpapi"
	oaitranslate "github.com/ghostquant/voicequery/pkg/translate/openai"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to the YAML configuration file (optional)")
	path := flag.String("path", "/", "current page path used for context lookup")
	flag.Parse()

	cfg := &config.Config{}
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "voicequery: %v\n", err)
			return 1
		}
		cfg = loaded
	}

	slog.SetDefault(newLogger(cfg.Server.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdown, err := observe.InitProvider(ctx, observe.ProviderConfig{})
	if err != nil {
		slog.Error("failed to init telemetry", "err", err)
		return 1
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			slog.Warn("telemetry shutdown", "err", err)
		}
	}()

	p, err := buildPipeline(cfg)
	if err != nil {
		slog.Error("failed to build pipeline", "err", err)
		return 1
	}

	store, closeStore, err := buildStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to build preference store", "err", err)
		return 1
	}
	defer closeStore()

	translator := buildTranslator(cfg)

	mgr := router.NewManager(router.NewRouter(nil), store, router.WithMetrics(observe.DefaultMetrics()))
	sessionID := mgr.NewSession()
	metrics := observe.DefaultMetrics()
	metrics.ActiveSessions.Add(ctx, 1)
	defer func() {
		mgr.EndSession(sessionID)
		metrics.ActiveSessions.Add(context.Background(), -1)
	}()

	slog.Info("voicequery ready", "session_id", sessionID, "page", *path)

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()

		result := p.ProcessVoiceInput(ctx, line, *path)
		decision := mgr.Route(ctx, sessionID, line)

		printResult(result, decision)

		if translator != nil && result.Intent.Kind != intent.Unknown {
			translated, _ := translator.Translate(ctx, result.Normalized, decision.Language)
			if translated != result.Normalized {
				fmt.Printf("  translated (%s): %s\n", decision.Language, translated)
			}
		}

		if ctx.Err() != nil {
			break
		}
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, os.ErrClosed) {
		slog.Error("stdin read", "err", err)
		return 1
	}

	slog.Info("voicequery stopped", "most_used_language", mgr.MostUsedLanguage(sessionID))
	return 0
}

// buildPipeline assembles the stage chain from config overrides.
func buildPipeline(cfg *config.Config) (*pipeline.Pipeline, error) {
	opts := []pipeline.Option{
		pipeline.WithMetrics(observe.DefaultMetrics()),
	}

	if len(cfg.Pipeline.Misrecognitions) > 0 {
		n, err := normalize.New(cfg.Pipeline.Misrecognitions)
		if err != nil {
			return nil, err
		}
		opts = append(opts, pipeline.WithNormalizer(n))
	}

	var rrOpts []phonetic.Option
	rr := cfg.Pipeline.Reranker
	if rr.CollisionToken != "" {
		rrOpts = append(rrOpts, phonetic.WithCollisionToken(rr.CollisionToken))
	}
	if rr.CanonicalTerm != "" {
		rrOpts = append(rrOpts, phonetic.WithCanonicalTerm(rr.CanonicalTerm))
	}
	if rr.Threshold != 0 {
		rrOpts = append(rrOpts, phonetic.WithThreshold(rr.Threshold))
	}
	if rr.ContextBoost != 0 {
		rrOpts = append(rrOpts, phonetic.WithContextBoost(rr.ContextBoost))
	}
	if len(rr.ContextKeywords) > 0 {
		rrOpts = append(rrOpts, phonetic.WithContextKeywords(rr.ContextKeywords))
	}
	if len(rrOpts) > 0 {
		opts = append(opts, pipeline.WithReranker(phonetic.New(rrOpts...)))
	}

	if len(cfg.Pipeline.WakeAliases) > 0 {
		opts = append(opts, pipeline.WithWakeMatcher(wake.NewMatcher(cfg.Pipeline.WakeAliases)))
	}
	if len(cfg.Pipeline.Pages) > 0 {
		opts = append(opts, pipeline.WithContextLookup(pipeline.NewRouteTable(cfg.Pipeline.Pages)))
	}

	return pipeline.New(opts...), nil
}

// buildStore selects the preference store: Postgres when a DSN is
// configured, in-memory otherwise.
func buildStore(ctx context.Context, cfg *config.Config) (prefstore.Store, func(), error) {
	if cfg.Routing.PreferenceStoreDSN == "" {
		return prefstore.NewMemStore(), func() {}, nil
	}
	pg, err := pgstore.New(ctx, cfg.Routing.PreferenceStoreDSN)
	if err != nil {
		return nil, nil, err
	}
	return pg, pg.Close, nil
}

// buildTranslator constructs the configured translation backend wrapped in
// the degrade-to-source fallback, or nil when translation is disabled.
// A misconfigured backend logs and disables translation rather than
// aborting: translation is an enhancement, not a dependency.
func buildTranslator(cfg *config.Config) translate.Translator {
	var backend translate.Translator
	var err error

	switch cfg.Translator.Name {
	case config.TranslatorOpenAI:
		var oaiOpts []oaitranslate.Option
		if cfg.Translator.BaseURL != "" {
			oaiOpts = append(oaiOpts, oaitranslate.WithBaseURL(cfg.Translator.BaseURL))
		}
		if len(cfg.Translator.PreservedTerms) > 0 {
			oaiOpts = append(oaiOpts, oaitranslate.WithPreservedTerms(cfg.Translator.PreservedTerms))
		}
		backend, err = oaitranslate.New(cfg.Translator.APIKey, cfg.Translator.Model, oaiOpts...)

	case config.TranslatorHTTP:
		backend, err = httpapi.New(cfg.Translator.BaseURL, nil)

	default:
		return nil
	}

	if err != nil {
		slog.Warn("translator disabled", "backend", cfg.Translator.Name, "err", err)
		return nil
	}
	return translate.NewFallback(backend, translate.WithMetrics(observe.DefaultMetrics()))
}

// printResult dumps one processing outcome for interactive inspection.
func printResult(r pipeline.Result, d router.Decision) {
	fmt.Printf("  normalized: %q (modified=%v)\n", r.Normalized, r.WasModified)
	fmt.Printf("  wake: %v", r.HasWakeWord)
	if r.HasWakeWord {
		fmt.Printf(" (confidence %.2f) query=%q", r.WakeConfidence, r.Query)
	}
	fmt.Println()

	params := ""
	if len(r.Intent.Params) > 0 {
		if b, err := json.Marshal(r.Intent.Params); err == nil {
			params = " " + string(b)
		}
	}
	fmt.Printf("  intent: %s (%.2f)%s\n", r.Intent.Kind, r.Intent.Confidence, params)
	fmt.Printf("  language: %s (%s, %.2f)\n", d.Language, d.Reason, d.Confidence)
	if r.Page != nil {
		fmt.Printf("  page: %s\n", r.Page.Title)
	}
}

// newLogger builds the process logger at the configured level.
func newLogger(level config.LogLevel) *slog.Logger {
	var l slog.Level
	switch level {
	case config.LogDebug:
		l = slog.LevelDebug
	case config.LogWarn:
		l = slog.LevelWarn
	case config.LogError:
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}
