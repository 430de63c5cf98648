package repository

import (
	"context"
	"errors"
	"time"

	messaging "github.com/gaurav031/Feelify-sub000/internal/pkg/messaging/application/domain"
)

// ErrConversationExists is returned by CreateConversation when the UNIQUE
// pair-key constraint fires. Callers treat it as "already created by the
// concurrent counterpart" and re-fetch.
var ErrConversationExists = errors.New("conversation already exists for pair")

// MessagingRepository defines persistence operations for conversations and
// their message logs. Implementations rely on the store's own concurrency
// control; the application never holds a lock across one of these calls.
type MessagingRepository interface {
	// FindConversationByPair returns the conversation for a normalized pair
	// key, or (nil, nil) when absent.
	FindConversationByPair(ctx context.Context, pairKey string) (*messaging.Conversation, error)

	// CreateConversation inserts a new conversation and returns its id.
	// Returns ErrConversationExists on a pair-key conflict.
	CreateConversation(ctx context.Context, c messaging.Conversation) (string, error)

	// GetConversation returns a conversation by id, or (nil, nil) when
	// absent.
	GetConversation(ctx context.Context, id string) (*messaging.Conversation, error)

	// ListConversationsByParticipant returns every conversation the user
	// participates in, last-activity descending.
	ListConversationsByParticipant(ctx context.Context, userID string) ([]messaging.Conversation, error)

	// UpdateConversationSummary overwrites the denormalized last-message
	// summary and activity timestamp.
	UpdateConversationSummary(ctx context.Context, id string, s messaging.Summary, at time.Time) error

	// MarkConversationSeen flips the summary seen flag to true.
	MarkConversationSeen(ctx context.Context, id string) error

	// SaveMessage appends a message and returns its id.
	SaveMessage(ctx context.Context, m messaging.Message) (string, error)

	// ListMessages returns all messages of a conversation, newest first.
	ListMessages(ctx context.Context, conversationID string) ([]messaging.Message, error)

	// LatestMessageAt returns the creation instant of the newest message in
	// the conversation, or nil when the conversation has no messages.
	LatestMessageAt(ctx context.Context, conversationID string) (*time.Time, error)

	// MarkMessagesSeen flips seen to true on every message in the
	// conversation not authored by viewerID and created at or before
	// upTo. Scoping to upTo keeps a message inserted concurrently with the
	// mark from being marked seen before anyone saw it. Returns the number
	// of rows flipped; zero is fine (idempotent re-invocation).
	MarkMessagesSeen(ctx context.Context, conversationID, viewerID string, upTo time.Time) (int64, error)
}
