// Package pipeline composes the voice input stages into the entry point the
// chat front-end calls: misrecognition normalization, phonetic reranking,
// wake-alias matching, and intent classification, with an audit trail of
// every stage's output.
//
// The pipeline is synchronous and allocation-light: every stage is a pure
// function over in-memory strings and static tables, so a transcript is
// processed start-to-finish with no suspension points. Language routing runs
// on a parallel track (see internal/router) and translation is the only
// network boundary (see pkg/translate).
package pipeline

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/ghostquant/voicequery/internal/intent"
	"github.com/ghostquant/voicequery/internal/normalize"
	"github.com/ghostquant/voicequery/internal/normalize/phonetic"
	"github.com/ghostquant/voicequery/internal/observe"
	"github.com/ghostquant/voicequery/internal/wake"
)

// Stage names used in audit trails and metrics.
const (
	StageNormalize = "normalize"
	StageRerank    = "rerank"
	StageWake      = "wake"
	StageIntent    = "intent"
)

// StageOutput is one entry of the audit trail: the text as it stood after
// the named stage ran.
type StageOutput struct {
	Stage string
	Text  string
}

// Result is the outcome of processing one transcript. Read-only after
// construction.
type Result struct {
	// Original is the raw transcript as received.
	Original string

	// Normalized is the text after all correction stages.
	Normalized string

	// WasModified reports whether any stage changed the text.
	WasModified bool

	// Stages preserves the full per-stage audit trail, in execution order.
	Stages []StageOutput

	// RerankConfidence is the phonetic reranker's computed confidence,
	// recorded even when below threshold.
	RerankConfidence float64

	// HasWakeWord reports whether a wake phrase (or alias) was recognised.
	HasWakeWord bool

	// WakeConfidence scores the recognised alias against the canonical
	// phrase; 0 without a wake word.
	WakeConfidence float64

	// Query is the residual text after the wake phrase, empty without one.
	Query string

	// Intent is the classification of Query.
	Intent intent.Intent

	// Page is the page context for the caller's current route, nil when the
	// route is unknown.
	Page *PageContext
}

// Option is a functional option for configuring a [Pipeline].
type Option func(*Pipeline)

// WithNormalizer replaces the default misrecognition normalizer.
func WithNormalizer(n *normalize.Normalizer) Option {
	return func(p *Pipeline) { p.normalizer = n }
}

// WithReranker replaces the default phonetic reranker.
func WithReranker(r *phonetic.Reranker) Option {
	return func(p *Pipeline) { p.reranker = r }
}

// WithWakeMatcher replaces the default wake-alias matcher.
func WithWakeMatcher(m *wake.Matcher) Option {
	return func(p *Pipeline) { p.wake = m }
}

// WithClassifier replaces the default intent classifier.
func WithClassifier(c *intent.Classifier) Option {
	return func(p *Pipeline) { p.classifier = c }
}

// WithContextLookup replaces the default route table.
func WithContextLookup(l ContextLookup) Option {
	return func(p *Pipeline) { p.routes = l }
}

// WithMetrics attaches metric instruments. When nil (the default), nothing
// is recorded.
func WithMetrics(m *observe.Metrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// Pipeline chains the correction and classification stages. Read-only after
// construction; safe for concurrent use.
type Pipeline struct {
	normalizer *normalize.Normalizer
	reranker   *phonetic.Reranker
	wake       *wake.Matcher
	classifier *intent.Classifier
	routes     ContextLookup
	metrics    *observe.Metrics
}

// New constructs a Pipeline with default stages; options override
// individual stages.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		normalizer: normalize.Default(),
		reranker:   phonetic.New(),
		wake:       wake.NewMatcher(nil),
		classifier: intent.NewClassifier(nil),
		routes:     NewRouteTable(nil),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// ProcessVoiceInput runs rawText through every stage and returns the
// combined result. currentPath selects the page context; an unknown or
// empty path simply yields a nil Page.
//
// ProcessVoiceInput is total: any input string, including the empty string,
// produces a well-formed Result. An empty transcript passes through every
// stage unchanged and classifies as Unknown.
func (p *Pipeline) ProcessVoiceInput(ctx context.Context, rawText, currentPath string) Result {
	ctx, span := observe.StartSpan(ctx, "pipeline.ProcessVoiceInput")
	defer span.End()

	res := Result{Original: rawText}

	text := p.timed(ctx, StageNormalize, func() string {
		return p.normalizer.Normalize(rawText)
	})
	res.Stages = append(res.Stages, StageOutput{StageNormalize, text})

	var rr phonetic.Result
	p.timed(ctx, StageRerank, func() string {
		rr = p.reranker.Rerank(text)
		return rr.Text
	})
	text = rr.Text
	res.RerankConfidence = rr.Confidence
	res.Stages = append(res.Stages, StageOutput{StageRerank, text})
	if p.metrics != nil {
		p.metrics.RerankerDecisions.Add(ctx, 1,
			metric.WithAttributes(attribute.Bool("applied", rr.Reranked)))
	}

	text = p.timed(ctx, StageWake, func() string {
		return p.wake.Normalize(text)
	})
	res.Stages = append(res.Stages, StageOutput{StageWake, text})

	res.Normalized = text
	res.WasModified = text != rawText
	res.HasWakeWord = p.wake.Matches(text)
	if res.HasWakeWord {
		res.WakeConfidence = p.wake.Confidence(text)
		res.Query = p.wake.ExtractQuery(text)
	}

	p.timed(ctx, StageIntent, func() string {
		res.Intent = p.classifier.Classify(res.Query)
		return ""
	})
	res.Stages = append(res.Stages, StageOutput{StageIntent, res.Query})
	if p.metrics != nil {
		p.metrics.IntentClassified.Add(ctx, 1,
			metric.WithAttributes(attribute.String("kind", string(res.Intent.Kind))))
	}

	if pc, ok := p.routes.Lookup(currentPath); ok {
		res.Page = &pc
	}

	return res
}

// timed runs fn, recording its duration under stage when metrics are
// attached.
func (p *Pipeline) timed(ctx context.Context, stage string, fn func() string) string {
	start := time.Now()
	out := fn()
	if p.metrics != nil {
		p.metrics.RecordStage(ctx, stage, time.Since(start).Seconds())
	}
	return out
}
