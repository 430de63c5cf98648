package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	messaging "github.com/gaurav031/Feelify-sub000/internal/pkg/messaging/application/domain"
	repository "github.com/gaurav031/Feelify-sub000/internal/pkg/messaging/persistence/repository/port"
	userport "github.com/gaurav031/Feelify-sub000/internal/repository/port"
)

// fakeMessagingRepo is an in-memory MessagingRepository. It enforces the
// same pair-key uniqueness the database index does, so the conflict path
// is exercisable without Postgres.
type fakeMessagingRepo struct {
	mu     sync.Mutex
	convs  map[string]*messaging.Conversation
	byPair map[string]string
	msgs   map[string][]messaging.Message
	seq    int

	// afterLatest, when set, runs after LatestMessageAt returns. Tests use
	// it to append a message between the snapshot and the bulk flip.
	afterLatest func()
}

func newFakeMessagingRepo() *fakeMessagingRepo {
	return &fakeMessagingRepo{
		convs:  map[string]*messaging.Conversation{},
		byPair: map[string]string{},
		msgs:   map[string][]messaging.Message{},
	}
}

func (r *fakeMessagingRepo) nextID(prefix string) string {
	r.seq++
	return fmt.Sprintf("%s-%d", prefix, r.seq)
}

func (r *fakeMessagingRepo) FindConversationByPair(_ context.Context, pairKey string) (*messaging.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byPair[pairKey]
	if !ok {
		return nil, nil
	}
	c := *r.convs[id]
	return &c, nil
}

func (r *fakeMessagingRepo) CreateConversation(_ context.Context, c messaging.Conversation) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byPair[c.PairKey]; exists {
		return "", repository.ErrConversationExists
	}
	c.ID = r.nextID("conv")
	r.convs[c.ID] = &c
	r.byPair[c.PairKey] = c.ID
	return c.ID, nil
}

func (r *fakeMessagingRepo) GetConversation(_ context.Context, id string) (*messaging.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.convs[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeMessagingRepo) ListConversationsByParticipant(_ context.Context, userID string) ([]messaging.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []messaging.Conversation
	for _, c := range r.convs {
		if c.HasParticipant(userID) {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LastActivityAt.After(out[j].LastActivityAt)
	})
	return out, nil
}

func (r *fakeMessagingRepo) UpdateConversationSummary(_ context.Context, id string, s messaging.Summary, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.convs[id]
	if !ok {
		return fmt.Errorf("conversation %s not found", id)
	}
	c.LastMessage = s
	c.LastActivityAt = at
	return nil
}

func (r *fakeMessagingRepo) MarkConversationSeen(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.convs[id]
	if !ok {
		return fmt.Errorf("conversation %s not found", id)
	}
	c.LastMessage.Seen = true
	return nil
}

func (r *fakeMessagingRepo) SaveMessage(_ context.Context, m messaging.Message) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = r.nextID("msg")
	r.msgs[m.ConversationID] = append(r.msgs[m.ConversationID], m)
	return m.ID, nil
}

func (r *fakeMessagingRepo) ListMessages(_ context.Context, conversationID string) ([]messaging.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := r.msgs[conversationID]
	out := make([]messaging.Message, len(stored))
	copy(out, stored)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *fakeMessagingRepo) LatestMessageAt(_ context.Context, conversationID string) (*time.Time, error) {
	r.mu.Lock()
	var latest *time.Time
	for _, m := range r.msgs[conversationID] {
		m := m
		if latest == nil || m.CreatedAt.After(*latest) {
			latest = &m.CreatedAt
		}
	}
	r.mu.Unlock()
	if r.afterLatest != nil {
		r.afterLatest()
	}
	return latest, nil
}

func (r *fakeMessagingRepo) MarkMessagesSeen(_ context.Context, conversationID, viewerID string, upTo time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	msgs := r.msgs[conversationID]
	for i := range msgs {
		m := &msgs[i]
		if m.SenderID != viewerID && !m.Seen && !m.CreatedAt.After(upTo) {
			m.Seen = true
			n++
		}
	}
	return n, nil
}

// fakeUserDirectory serves profiles from a map; unknown ids resolve to
// (nil, nil) like the real adapter.
type fakeUserDirectory struct {
	profiles map[string]userport.PublicProfile
}

func newFakeUserDirectory(ids ...string) *fakeUserDirectory {
	d := &fakeUserDirectory{profiles: map[string]userport.PublicProfile{}}
	for _, id := range ids {
		d.profiles[id] = userport.PublicProfile{ID: id, Username: "user-" + id}
	}
	return d
}

func (d *fakeUserDirectory) FindByID(_ context.Context, id string) (*userport.PublicProfile, error) {
	p, ok := d.profiles[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// fakeUploader returns a fixed URL, or fails when err is set.
type fakeUploader struct {
	url   string
	err   error
	calls int
}

func (u *fakeUploader) Upload(_ context.Context, _ []byte, _ string) (string, error) {
	u.calls++
	if u.err != nil {
		return "", u.err
	}
	return u.url, nil
}

// fakePusher records pushed frames per identity. Identities not in the
// online set report a skipped push.
type fakePusher struct {
	mu     sync.Mutex
	online map[string]bool
	frames map[string][][]byte
}

func newFakePusher(online ...string) *fakePusher {
	p := &fakePusher{online: map[string]bool{}, frames: map[string][][]byte{}}
	for _, id := range online {
		p.online[id] = true
	}
	return p
}

func (p *fakePusher) PushToIdentity(identity string, payload []byte) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.online[identity] {
		return false
	}
	p.frames[identity] = append(p.frames[identity], payload)
	return true
}

func (p *fakePusher) framesFor(identity string) [][]byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frames[identity]
}
