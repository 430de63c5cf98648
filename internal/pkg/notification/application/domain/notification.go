package notification

import (
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/gaurav031/Feelify-sub000/internal/apperr"
)

// Kind is the closed enumeration of interaction events that fan out as
// notifications.
type Kind string

const (
	KindLike    Kind = "like"
	KindComment Kind = "comment"
	KindFollow  Kind = "follow"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindLike, KindComment, KindFollow:
		return true
	}
	return false
}

// Notification is a persisted fan-out record addressed to a recipient.
// Immutable after creation except for IsRead, which only transitions
// false -> true. IDs are ULIDs, so lexicographic order is creation order
// and newest-first listings sort on the primary key.
type Notification struct {
	ID            string    `db:"id"`
	RecipientID   string    `db:"recipient_id"`
	SenderID      string    `db:"sender_id"`
	Kind          Kind      `db:"kind"`
	RelatedPostID *string   `db:"related_post_id"`
	Message       string    `db:"message"`
	IsRead        bool      `db:"is_read"`
	CreatedAt     time.Time `db:"created_at"`
}

// NewNotification validates and builds an unsaved notification.
func NewNotification(recipientID, senderID string, kind Kind, relatedPostID *string, message string) (*Notification, error) {
	if recipientID == "" || senderID == "" {
		return nil, fmt.Errorf("%w: recipient and sender are required", apperr.ErrValidation)
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown notification kind %q", apperr.ErrValidation, kind)
	}
	return &Notification{
		ID:            ulid.Make().String(),
		RecipientID:   recipientID,
		SenderID:      senderID,
		Kind:          kind,
		RelatedPostID: relatedPostID,
		Message:       message,
		IsRead:        false,
		CreatedAt:     time.Now().UTC(),
	}, nil
}
