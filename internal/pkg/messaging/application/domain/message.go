package messaging

import (
	"fmt"
	"strings"
	"time"

	"github.com/gaurav031/Feelify-sub000/internal/apperr"
)

// Message is an immutable log entry in a conversation. Only the seen flag
// ever mutates after creation, and only false -> true.
type Message struct {
	ID             string    `db:"id"`
	ConversationID string    `db:"conversation_id"`
	SenderID       string    `db:"sender_id"`
	Body           *string   `db:"body"`
	MediaURL       *string   `db:"media_url"`
	Seen           bool      `db:"seen"`
	CreatedAt      time.Time `db:"created_at"`
}

// NewMessage validates and normalizes an unsaved message. A message must
// carry a body, a media URL, or both; an empty trimmed body counts as
// absent.
func NewMessage(conversationID, senderID string, body *string, mediaURL *string, now time.Time) (*Message, error) {
	if conversationID == "" || senderID == "" {
		return nil, fmt.Errorf("%w: conversation_id and sender_id are required", apperr.ErrValidation)
	}

	if body != nil {
		trimmed := strings.TrimSpace(*body)
		if trimmed == "" {
			body = nil
		} else {
			body = &trimmed
		}
	}

	if body == nil && mediaURL == nil {
		return nil, fmt.Errorf("%w: message must contain either text or media", apperr.ErrValidation)
	}

	if now.IsZero() {
		now = time.Now().UTC()
	}

	return &Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Body:           body,
		MediaURL:       mediaURL,
		Seen:           false,
		CreatedAt:      now,
	}, nil
}
