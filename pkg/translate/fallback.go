package translate

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/singleflight"

	"github.com/ghostquant/voicequery/internal/language"
	"github.com/ghostquant/voicequery/internal/observe"
	"github.com/ghostquant/voicequery/internal/resilience"
)

const defaultTimeout = 8 * time.Second

// FallbackOption configures a [Fallback].
type FallbackOption func(*Fallback)

// WithTimeout bounds each backend call. Default: 8s.
func WithTimeout(d time.Duration) FallbackOption {
	return func(f *Fallback) { f.timeout = d }
}

// WithBreaker replaces the default circuit breaker.
func WithBreaker(b *resilience.Breaker) FallbackOption {
	return func(f *Fallback) { f.breaker = b }
}

// WithMetrics attaches metric instruments for translation latency and
// fallback counts. When nil (the default), nothing is recorded.
func WithMetrics(m *observe.Metrics) FallbackOption {
	return func(f *Fallback) { f.metrics = m }
}

// Fallback wraps a backend [Translator] with the pipeline's degradation
// contract: any failure — error, timeout, tripped breaker, caller abort, or
// blank response — yields the untranslated source text and a nil error.
// Translation problems are logged, never surfaced to the end user.
//
// Concurrent identical requests are collapsed into one backend call.
// Safe for concurrent use.
type Fallback struct {
	backend Translator
	breaker *resilience.Breaker
	timeout time.Duration
	metrics *observe.Metrics
	group   singleflight.Group
}

// Compile-time interface check.
var _ Translator = (*Fallback)(nil)

// NewFallback wraps backend with the degradation behaviour.
func NewFallback(backend Translator, opts ...FallbackOption) *Fallback {
	f := &Fallback{
		backend: backend,
		timeout: defaultTimeout,
	}
	for _, o := range opts {
		o(f)
	}
	if f.breaker == nil {
		f.breaker = resilience.NewBreaker(resilience.Config{Name: "translate"})
	}
	return f
}

// Translate implements [Translator]. It never returns a non-nil error:
// every failure path degrades to the source text. English targets and blank
// input short-circuit without touching the backend.
func (f *Fallback) Translate(ctx context.Context, text string, target language.Code) (string, error) {
	if strings.TrimSpace(text) == "" || target == language.English || !target.IsValid() {
		return text, nil
	}

	start := time.Now()
	key := string(target) + "\x00" + text
	ch := f.group.DoChan(key, func() (any, error) {
		// The shared call gets its own deadline, detached from any single
		// caller's cancellation, so one aborting caller does not fail the
		// request for the others.
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), f.timeout)
		defer cancel()

		var out string
		err := f.breaker.Do(func() error {
			translated, err := f.backend.Translate(callCtx, text, target)
			if err != nil {
				return err
			}
			out = translated
			return nil
		})
		return out, err
	})

	select {
	case <-ctx.Done():
		// Caller aborted; the shared call keeps running for any other
		// waiters. This caller gets the source text back.
		f.degraded(ctx, target, "caller_abort")
		return text, nil
	case res := <-ch:
		if f.metrics != nil {
			f.metrics.TranslateDuration.Record(ctx, time.Since(start).Seconds(),
				metric.WithAttributes(attribute.String("target", string(target))))
		}
		if res.Err != nil {
			slog.Warn("translate: falling back to source text",
				"target", target, "err", res.Err)
			f.degraded(ctx, target, "backend_error")
			return text, nil
		}
		translated, _ := res.Val.(string)
		if strings.TrimSpace(translated) == "" {
			slog.Warn("translate: blank response, falling back to source text", "target", target)
			f.degraded(ctx, target, "blank_response")
			return text, nil
		}
		return translated, nil
	}
}

// degraded counts one fallback-to-source-text outcome.
func (f *Fallback) degraded(ctx context.Context, target language.Code, cause string) {
	if f.metrics == nil {
		return
	}
	f.metrics.TranslateFallbacks.Add(ctx, 1, metric.WithAttributes(
		attribute.String("target", string(target)),
		attribute.String("cause", cause),
	))
}
