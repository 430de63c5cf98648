package messaging

import (
	"strings"
	"time"
)

// Summary is the denormalized last-message state kept on the conversation
// so listings never join against the message log. It is overwritten, not
// merged, on every new message.
type Summary struct {
	Text     string `json:"text"`
	SenderID string `json:"sender_id"`
	Seen     bool   `json:"seen"`
}

// Conversation is the unique durable record of a two-party messaging
// relationship. For any unordered pair of identities at most one
// conversation exists; the pair key is normalized so {A,B} and {B,A}
// collide on the same UNIQUE index.
type Conversation struct {
	ID             string    `db:"id"`
	PairKey        string    `db:"pair_key"`
	ParticipantIDs []string  `db:"participant_ids"` // exactly two
	LastMessage    Summary   `db:"last_message"`
	LastActivityAt time.Time `db:"last_activity_at"`
	CreatedAt      time.Time `db:"created_at"`
}

// PairKey normalizes an unordered identity pair into a stable lookup key.
func PairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + ":" + b
}

// NewConversation builds an unsaved conversation for the given pair with
// its initial last-message summary.
func NewConversation(senderID, recipientID string, summary Summary, now time.Time) Conversation {
	return Conversation{
		PairKey:        PairKey(senderID, recipientID),
		ParticipantIDs: []string{senderID, recipientID},
		LastMessage:    summary,
		LastActivityAt: now,
		CreatedAt:      now,
	}
}

// HasParticipant tells whether userID is part of this conversation.
func (c *Conversation) HasParticipant(userID string) bool {
	for _, id := range c.ParticipantIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Counterpart returns the other participant for the given viewer, or ""
// when the viewer is not a participant.
func (c *Conversation) Counterpart(viewerID string) string {
	for _, id := range c.ParticipantIDs {
		if id != viewerID {
			return id
		}
	}
	return ""
}

// SummaryText derives the snippet stored on the conversation: the trimmed
// body when present, a media marker otherwise.
func SummaryText(body *string, mediaURL *string) string {
	if body != nil {
		if t := strings.TrimSpace(*body); t != "" {
			return t
		}
	}
	if mediaURL != nil {
		return "[media]"
	}
	return ""
}
