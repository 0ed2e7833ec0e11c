// Package resilience provides the circuit breaker guarding the translation
// boundary — the only network call in the pipeline. A tripped breaker lets
// the caller degrade to the untranslated source text immediately instead of
// waiting out a failing remote service.
package resilience

import (
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrOpen is returned by [Breaker.Do] while the breaker is open and the
// cool-down has not yet elapsed.
var ErrOpen = errors.New("circuit breaker open")

// State is the breaker's operating mode.
type State int

const (
	// Closed forwards all calls.
	Closed State = iota

	// Open rejects calls immediately with [ErrOpen] until the cool-down
	// elapses.
	Open

	// HalfOpen allows a limited number of probe calls to test recovery.
	HalfOpen
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case HalfOpen:
		return "half-open"
	}
	return "unknown"
}

// Config tunes a [Breaker]. Zero values take the defaults noted per field.
type Config struct {
	// Name labels the breaker in log messages.
	Name string

	// TripAfter is the number of consecutive failures that opens the
	// breaker. Default: 3.
	TripAfter int

	// CoolDown is how long the breaker stays open before probing.
	// Default: 30s.
	CoolDown time.Duration

	// Probes is how many half-open calls must succeed to close again.
	// Default: 2.
	Probes int
}

// Breaker is a three-state (closed, open, half-open) circuit breaker.
// Safe for concurrent use.
type Breaker struct {
	name      string
	tripAfter int
	coolDown  time.Duration
	probes    int
	now       func() time.Time

	mu         sync.Mutex
	state      State
	failures   int
	openedAt   time.Time
	probesLeft int
}

// NewBreaker creates a Breaker from cfg, filling defaults for zero fields.
func NewBreaker(cfg Config) *Breaker {
	if cfg.TripAfter <= 0 {
		cfg.TripAfter = 3
	}
	if cfg.CoolDown <= 0 {
		cfg.CoolDown = 30 * time.Second
	}
	if cfg.Probes <= 0 {
		cfg.Probes = 2
	}
	return &Breaker{
		name:      cfg.Name,
		tripAfter: cfg.TripAfter,
		coolDown:  cfg.CoolDown,
		probes:    cfg.Probes,
		now:       time.Now,
	}
}

// Do runs fn under the breaker. While open, fn is not invoked and [ErrOpen]
// is returned. Failures are counted by fn's returned error.
func (b *Breaker) Do(fn func() error) error {
	if err := b.admit(); err != nil {
		return err
	}
	err := fn()
	b.record(err == nil)
	return err
}

// State returns the breaker's current state, accounting for an elapsed
// cool-down.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == Open && b.now().Sub(b.openedAt) >= b.coolDown {
		return HalfOpen
	}
	return b.state
}

// admit decides whether a call may proceed, transitioning open → half-open
// when the cool-down has elapsed.
func (b *Breaker) admit() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == Open {
		if b.now().Sub(b.openedAt) < b.coolDown {
			return ErrOpen
		}
		b.state = HalfOpen
		b.probesLeft = b.probes
		slog.Debug("breaker half-open", "name", b.name)
	}
	return nil
}

// record updates breaker state from a call outcome.
func (b *Breaker) record(ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case Closed:
		if ok {
			b.failures = 0
			return
		}
		b.failures++
		if b.failures >= b.tripAfter {
			b.trip()
		}

	case HalfOpen:
		if !ok {
			b.trip()
			return
		}
		b.probesLeft--
		if b.probesLeft <= 0 {
			b.state = Closed
			b.failures = 0
			slog.Info("breaker closed", "name", b.name)
		}
	}
}

// trip opens the breaker. Caller holds the lock.
func (b *Breaker) trip() {
	b.state = Open
	b.openedAt = b.now()
	b.failures = 0
	slog.Warn("breaker opened", "name", b.name, "cool_down", b.coolDown)
}
