package realtime

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav031/Feelify-sub000/internal/pkg/live"
)

// fakeSession records frames instead of writing to a socket.
type fakeSession struct {
	id       string
	identity string

	mu     sync.Mutex
	frames [][]byte
	closed bool
	reason string
}

func newFakeSession(id, identity string) *fakeSession {
	return &fakeSession{id: id, identity: identity}
}

func (s *fakeSession) SessionID() string { return s.id }
func (s *fakeSession) Identity() string  { return s.identity }

func (s *fakeSession) Send(payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames = append(s.frames, payload)
	return nil
}

func (s *fakeSession) Shutdown(code int, reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.reason = reason
}

func (s *fakeSession) lastOnlineSet(t *testing.T) []string {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.frames) - 1; i >= 0; i-- {
		var env live.Envelope
		require.NoError(t, json.Unmarshal(s.frames[i], &env))
		if env.Type != live.EventOnlineUsers {
			continue
		}
		var p live.OnlinePayload
		require.NoError(t, json.Unmarshal(env.Data, &p))
		return p.UserIDs
	}
	return nil
}

func newTestRegistry() *Registry {
	return NewRegistry(zerolog.Nop())
}

func TestAttachAndLookup(t *testing.T) {
	r := newTestRegistry()
	a := newFakeSession("s1", "alice")

	r.Attach(a)

	got, ok := r.Lookup("alice")
	require.True(t, ok)
	assert.Equal(t, a, got)

	_, ok = r.Lookup("bob")
	assert.False(t, ok)
}

func TestAttachAnonymousIsNoop(t *testing.T) {
	r := newTestRegistry()
	anon := newFakeSession("s1", "")

	r.Attach(anon)

	assert.Empty(t, r.OnlineIdentities())
	_, ok := r.Lookup("")
	assert.False(t, ok)
}

func TestAttachReplacesPreviousSession(t *testing.T) {
	r := newTestRegistry()
	first := newFakeSession("s1", "alice")
	second := newFakeSession("s2", "alice")

	r.Attach(first)
	r.Attach(second)

	got, ok := r.Lookup("alice")
	require.True(t, ok)
	assert.Equal(t, second, got)

	first.mu.Lock()
	assert.True(t, first.closed)
	assert.Equal(t, "session replaced", first.reason)
	first.mu.Unlock()

	// Detaching the replaced session must not evict the live one.
	r.Detach(first)
	_, ok = r.Lookup("alice")
	assert.True(t, ok)
}

func TestDetachRemovesAndBroadcasts(t *testing.T) {
	r := newTestRegistry()
	a := newFakeSession("s1", "alice")
	b := newFakeSession("s2", "bob")

	r.Attach(a)
	r.Attach(b)
	require.ElementsMatch(t, []string{"alice", "bob"}, r.OnlineIdentities())

	r.Detach(b)
	assert.ElementsMatch(t, []string{"alice"}, r.OnlineIdentities())
	assert.ElementsMatch(t, []string{"alice"}, a.lastOnlineSet(t))
}

func TestOnlineBroadcastReachesAllSessions(t *testing.T) {
	r := newTestRegistry()
	a := newFakeSession("s1", "alice")
	b := newFakeSession("s2", "bob")

	r.Attach(a)
	r.Attach(b)

	assert.ElementsMatch(t, []string{"alice", "bob"}, a.lastOnlineSet(t))
	assert.ElementsMatch(t, []string{"alice", "bob"}, b.lastOnlineSet(t))
}

func TestPushToIdentity(t *testing.T) {
	r := newTestRegistry()
	a := newFakeSession("s1", "alice")
	r.Attach(a)

	assert.True(t, r.PushToIdentity("alice", []byte(`{"type":"ping"}`)))
	assert.False(t, r.PushToIdentity("bob", []byte(`{"type":"ping"}`)), "offline identity must report false")
}

func TestShutdownClosesEverything(t *testing.T) {
	r := newTestRegistry()
	a := newFakeSession("s1", "alice")
	b := newFakeSession("s2", "bob")
	r.Attach(a)
	r.Attach(b)

	r.Shutdown()

	assert.Empty(t, r.OnlineIdentities())
	a.mu.Lock()
	assert.True(t, a.closed)
	a.mu.Unlock()
	b.mu.Lock()
	assert.True(t, b.closed)
	b.mu.Unlock()
}
