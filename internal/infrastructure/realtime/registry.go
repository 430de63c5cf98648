package realtime

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/gaurav031/Feelify-sub000/internal/metrics"
	"github.com/gaurav031/Feelify-sub000/internal/pkg/live"
)

// Session is one live channel for one identity. It is an interface so the
// registry and the use cases pushing through it can be tested without
// opening a network socket.
type Session interface {
	SessionID() string
	Identity() string
	Send(payload []byte) error
	Shutdown(code int, reason string)
}

// Registry is the in-memory presence table: identity -> active session.
// One active session per identity; a newer attach replaces and closes the
// previous socket. State is process-lifetime only and lost on restart,
// which is fine because clients re-register on reconnect.
type Registry struct {
	mu        sync.RWMutex
	sessions  map[string]Session // sessionID -> session
	identKeys map[string]string  // identity -> sessionID

	logger zerolog.Logger
}

// NewRegistry constructs an initialized Registry.
func NewRegistry(logger zerolog.Logger) *Registry {
	return &Registry{
		sessions:  make(map[string]Session),
		identKeys: make(map[string]string),
		logger:    logger,
	}
}

// Attach registers a session for its identity and broadcasts the updated
// online set to every connected session. Attaching a session with an empty
// identity is a silent no-op: anonymous sockets are tolerated but never
// tracked. If a previous session exists for the identity it is swapped out
// first and closed after the map update, so there is no window where the
// identity resolves to a dead socket.
func (r *Registry) Attach(s Session) {
	if s == nil || s.Identity() == "" {
		return
	}

	var previous Session

	r.mu.Lock()
	if existingID, ok := r.identKeys[s.Identity()]; ok {
		if existing := r.sessions[existingID]; existing != nil {
			previous = existing
			delete(r.sessions, existingID)
		}
	}
	r.sessions[s.SessionID()] = s
	r.identKeys[s.Identity()] = s.SessionID()
	r.mu.Unlock()

	metrics.OpenSessions.Set(float64(r.count()))
	r.logger.Debug().Str("user_id", s.Identity()).Msg("session attached")

	if previous != nil {
		previous.Shutdown(4001, "session replaced")
	}

	r.broadcastOnline()
}

// Detach removes a session if it is still the tracked one for its identity
// and broadcasts the updated online set. Detaching an already-replaced or
// unknown session is a no-op, which absorbs disconnect races.
func (r *Registry) Detach(s Session) {
	if s == nil {
		return
	}

	r.mu.Lock()
	tracked, ok := r.sessions[s.SessionID()]
	if !ok || tracked != s {
		r.mu.Unlock()
		return
	}
	delete(r.sessions, s.SessionID())
	if current, ok := r.identKeys[s.Identity()]; ok && current == s.SessionID() {
		delete(r.identKeys, s.Identity())
	}
	r.mu.Unlock()

	metrics.OpenSessions.Set(float64(r.count()))
	r.logger.Debug().Str("user_id", s.Identity()).Msg("session detached")

	r.broadcastOnline()
}

// Lookup returns the active session for identity. Absence means offline;
// callers must treat push as best-effort.
func (r *Registry) Lookup(identity string) (Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sessionID, ok := r.identKeys[identity]
	if !ok {
		return nil, false
	}
	s, ok := r.sessions[sessionID]
	return s, ok
}

// PushToIdentity delivers payload to the identity's active session.
// Returns false when the identity is offline or the write fails; neither
// is an error for callers.
func (r *Registry) PushToIdentity(identity string, payload []byte) bool {
	s, ok := r.Lookup(identity)
	if !ok {
		return false
	}
	return s.Send(payload) == nil
}

// OnlineIdentities returns the identities with an active session.
func (r *Registry) OnlineIdentities() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.identKeys))
	for identity := range r.identKeys {
		out = append(out, identity)
	}
	return out
}

// Shutdown terminates all tracked sessions and clears registry state.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	sessions := make([]Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.sessions = make(map[string]Session)
	r.identKeys = make(map[string]string)
	r.mu.Unlock()

	metrics.OpenSessions.Set(0)

	for _, s := range sessions {
		s.Shutdown(1001, "server shutting down")
	}
}

func (r *Registry) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// broadcastOnline sends the current online set to every session. Send
// failures are ignored here; a dying socket detaches itself shortly after.
func (r *Registry) broadcastOnline() {
	payload, err := live.Encode(live.EventOnlineUsers, live.OnlinePayload{UserIDs: r.OnlineIdentities()})
	if err != nil {
		r.logger.Error().Err(err).Msg("encode online_users")
		return
	}

	r.mu.RLock()
	sessions := make([]Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.mu.RUnlock()

	for _, s := range sessions {
		_ = s.Send(payload)
	}
}
