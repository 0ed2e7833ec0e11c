package router

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/ghostquant/voicequery/internal/language"
	"github.com/ghostquant/voicequery/internal/observe"
	"github.com/ghostquant/voicequery/pkg/prefstore"
)

// prefKeyPrefix namespaces preference keys in the durable store.
const prefKeyPrefix = "voicequery:lang:"

// session pairs a State with its own lock so that concurrent transcripts for
// the same session are serialised (single writer) while different sessions
// route fully in parallel.
type session struct {
	mu    sync.Mutex
	state *State
}

// Manager owns all per-session routing state. Preference changes are written
// through to the durable store; detection results and history are
// session-memory only and vanish with [Manager.EndSession].
//
// All exported methods are safe for concurrent use.
type Manager struct {
	router  *Router
	store   prefstore.Store
	metrics *observe.Metrics

	mu       sync.Mutex
	sessions map[string]*session
}

// ManagerOption is a functional option for [NewManager].
type ManagerOption func(*Manager)

// WithMetrics attaches metric instruments for detection outcomes. When nil
// (the default), nothing is recorded.
func WithMetrics(m *observe.Metrics) ManagerOption {
	return func(mgr *Manager) { mgr.metrics = m }
}

// NewManager creates a Manager routing with router and persisting
// preferences to store. A nil store disables persistence: the manager keeps
// operating in memory only.
func NewManager(router *Router, store prefstore.Store, opts ...ManagerOption) *Manager {
	if router == nil {
		router = NewRouter(nil)
	}
	m := &Manager{
		router:   router,
		store:    store,
		sessions: make(map[string]*session),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// NewSession mints a fresh session ID. State is created lazily on first
// routing call, so callers may also bring their own externally scoped IDs.
func (m *Manager) NewSession() string {
	return uuid.NewString()
}

// Route routes one transcript for sessionID and returns the full decision.
// The session's state is created on first use, restoring any persisted
// preference.
func (m *Manager) Route(ctx context.Context, sessionID, text string) Decision {
	sess := m.get(ctx, sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	d := m.router.Route(sess.state, text)
	if d.Reason == ReasonSwitchCommand {
		m.persist(ctx, sessionID, d.Language)
	}
	m.observe(ctx, d)
	return d
}

// RouteHinted is [Manager.Route] with an upstream language hint standing in
// for text detection.
func (m *Manager) RouteHinted(ctx context.Context, sessionID, text string, hint language.Code) Decision {
	sess := m.get(ctx, sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	d := m.router.RouteHinted(sess.state, text, hint)
	if d.Reason == ReasonSwitchCommand {
		m.persist(ctx, sessionID, d.Language)
	}
	m.observe(ctx, d)
	return d
}

// Language is the convenience form of [Manager.Route] returning only the
// routed language code.
func (m *Manager) Language(ctx context.Context, sessionID, text string) language.Code {
	return m.Route(ctx, sessionID, text).Language
}

// SetPreference explicitly sets (and persists) the session's language
// preference outside of a spoken switch command, e.g. from a settings UI.
// PreferenceAuto reverts the session to detection-driven routing.
func (m *Manager) SetPreference(ctx context.Context, sessionID string, lang language.Code) {
	sess := m.get(ctx, sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.state.UserPreference = lang
	if lang != PreferenceAuto {
		sess.state.ActiveLanguage = lang
	}
	m.persist(ctx, sessionID, lang)
}

// Snapshot returns a copy of the session's current state for diagnostics.
// ok is false when the session has no state yet.
func (m *Manager) Snapshot(sessionID string) (State, bool) {
	m.mu.Lock()
	sess, ok := m.sessions[sessionID]
	m.mu.Unlock()
	if !ok {
		return State{}, false
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	cp := *sess.state
	cp.History = append([]HistoryEntry(nil), sess.state.History...)
	if sess.state.LastDetection != nil {
		det := *sess.state.LastDetection
		cp.LastDetection = &det
	}
	return cp, true
}

// MostUsedLanguage reports the majority-vote language over the session's
// history. Analytics only.
func (m *Manager) MostUsedLanguage(sessionID string) language.Code {
	st, ok := m.Snapshot(sessionID)
	if !ok {
		return language.English
	}
	return st.MostUsedLanguage()
}

// EndSession tears down the session's in-memory state. The persisted
// preference, if any, survives and is restored on the next Route for the
// same session ID.
func (m *Manager) EndSession(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
}

// get returns the session for id, creating it (and restoring any persisted
// preference) on first use.
func (m *Manager) get(ctx context.Context, id string) *session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sess, ok := m.sessions[id]; ok {
		return sess
	}

	state := NewState()
	if m.store != nil {
		value, ok, err := m.store.Get(ctx, prefKeyPrefix+id)
		switch {
		case err != nil:
			// Persistence failure degrades to in-memory operation.
			slog.Warn("router: preference load failed", "session_id", id, "err", err)
		case ok:
			lang := language.Code(value)
			if lang == PreferenceAuto {
				state.UserPreference = PreferenceAuto
			} else if lang.IsValid() {
				state.UserPreference = lang
				state.ActiveLanguage = lang
			}
		}
	}

	sess := &session{state: state}
	m.sessions[id] = sess
	return sess
}

// observe counts one detection outcome when a detection actually ran.
func (m *Manager) observe(ctx context.Context, d Decision) {
	if m.metrics == nil || d.Detection == nil {
		return
	}
	m.metrics.LanguageDetections.Add(ctx, 1, metric.WithAttributes(
		attribute.String("language", string(d.Detection.Language)),
		attribute.String("method", string(d.Detection.Method)),
	))
}

// persist writes the preference through to the durable store, logging and
// continuing in memory on failure.
func (m *Manager) persist(ctx context.Context, id string, lang language.Code) {
	if m.store == nil {
		return
	}
	if err := m.store.Set(ctx, prefKeyPrefix+id, string(lang)); err != nil {
		slog.Warn("router: preference persist failed", "session_id", id, "language", lang, "err", err)
	}
}
