package repository

import (
	"context"

	notification "github.com/gaurav031/Feelify-sub000/internal/pkg/notification/application/domain"
)

// NotificationRepository defines persistence operations for fan-out
// records.
type NotificationRepository interface {
	// Save inserts a notification row.
	Save(ctx context.Context, n notification.Notification) error

	// ListByRecipient returns all notifications addressed to the recipient,
	// newest first.
	ListByRecipient(ctx context.Context, recipientID string) ([]notification.Notification, error)

	// MarkRead flips is_read to true. Idempotent; returns a wrapped
	// apperr.ErrNotFound when the id does not exist.
	MarkRead(ctx context.Context, id string) error
}
