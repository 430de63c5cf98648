package adapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gaurav031/Feelify-sub000/internal/apperr"
	notification "github.com/gaurav031/Feelify-sub000/internal/pkg/notification/application/domain"
	repository "github.com/gaurav031/Feelify-sub000/internal/pkg/notification/persistence/repository/port"
)

type PgNotificationRepository struct {
	pool *pgxpool.Pool
}

func NewPgNotificationRepository(pool *pgxpool.Pool) *PgNotificationRepository {
	return &PgNotificationRepository{pool: pool}
}

var _ repository.NotificationRepository = (*PgNotificationRepository)(nil)

func (r *PgNotificationRepository) Save(ctx context.Context, n notification.Notification) error {
	if r == nil || r.pool == nil {
		return errors.New("PgNotificationRepository: nil pool")
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO notifications (id, recipient_id, sender_id, kind, related_post_id, message, is_read, created_at)
		VALUES ($1, $2::uuid, $3::uuid, $4, $5, $6, $7, $8)
	`, n.ID, n.RecipientID, n.SenderID, string(n.Kind), n.RelatedPostID, n.Message, n.IsRead, n.CreatedAt)
	return err
}

func (r *PgNotificationRepository) ListByRecipient(ctx context.Context, recipientID string) ([]notification.Notification, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgNotificationRepository: nil pool")
	}
	// ULID ids sort lexicographically by creation time, so ordering on the
	// primary key is newest-first without touching created_at.
	rows, err := r.pool.Query(ctx, `
		SELECT id, recipient_id::text, sender_id::text, kind, related_post_id, message, is_read, created_at
		FROM notifications
		WHERE recipient_id = $1::uuid
		ORDER BY id DESC
	`, recipientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []notification.Notification
	for rows.Next() {
		var (
			n    notification.Notification
			kind string
		)
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.SenderID, &kind, &n.RelatedPostID, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		n.Kind = notification.Kind(kind)
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *PgNotificationRepository) MarkRead(ctx context.Context, id string) error {
	if r == nil || r.pool == nil {
		return errors.New("PgNotificationRepository: nil pool")
	}
	ct, err := r.pool.Exec(ctx, `
		UPDATE notifications SET is_read = TRUE WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: notification %s", apperr.ErrNotFound, id)
	}
	return nil
}
