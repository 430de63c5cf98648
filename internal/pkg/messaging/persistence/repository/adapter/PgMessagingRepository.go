package adapter

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	messaging "github.com/gaurav031/Feelify-sub000/internal/pkg/messaging/application/domain"
	repository "github.com/gaurav031/Feelify-sub000/internal/pkg/messaging/persistence/repository/port"
)

const uniqueViolation = "23505"

type PgMessagingRepository struct {
	pool *pgxpool.Pool
}

func NewPgMessagingRepository(pool *pgxpool.Pool) *PgMessagingRepository {
	return &PgMessagingRepository{pool: pool}
}

var _ repository.MessagingRepository = (*PgMessagingRepository)(nil)

func (r *PgMessagingRepository) FindConversationByPair(ctx context.Context, pairKey string) (*messaging.Conversation, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgMessagingRepository: nil pool")
	}
	row := r.pool.QueryRow(ctx, `
		SELECT id::text, pair_key, participant_a::text, participant_b::text,
		       last_msg_text, COALESCE(last_msg_sender::text, ''), last_msg_seen,
		       last_activity_at, created_at
		FROM conversations
		WHERE pair_key = $1
	`, pairKey)
	return scanConversation(row)
}

func (r *PgMessagingRepository) CreateConversation(ctx context.Context, c messaging.Conversation) (string, error) {
	if r == nil || r.pool == nil {
		return "", errors.New("PgMessagingRepository: nil pool")
	}
	if len(c.ParticipantIDs) != 2 {
		return "", errors.New("PgMessagingRepository: conversation requires exactly two participants")
	}
	a, b := c.ParticipantIDs[0], c.ParticipantIDs[1]
	if a > b {
		a, b = b, a
	}
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO conversations (
			pair_key, participant_a, participant_b,
			last_msg_text, last_msg_sender, last_msg_seen,
			last_activity_at, created_at
		) VALUES ($1, $2::uuid, $3::uuid, $4, NULLIF($5, '')::uuid, $6, $7, $8)
		RETURNING id::text
	`, c.PairKey, a, b,
		c.LastMessage.Text, c.LastMessage.SenderID, c.LastMessage.Seen,
		c.LastActivityAt, c.CreatedAt,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return "", repository.ErrConversationExists
		}
		return "", err
	}
	return id, nil
}

func (r *PgMessagingRepository) GetConversation(ctx context.Context, id string) (*messaging.Conversation, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgMessagingRepository: nil pool")
	}
	row := r.pool.QueryRow(ctx, `
		SELECT id::text, pair_key, participant_a::text, participant_b::text,
		       last_msg_text, COALESCE(last_msg_sender::text, ''), last_msg_seen,
		       last_activity_at, created_at
		FROM conversations
		WHERE id = $1::uuid
	`, id)
	return scanConversation(row)
}

func (r *PgMessagingRepository) ListConversationsByParticipant(ctx context.Context, userID string) ([]messaging.Conversation, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgMessagingRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, pair_key, participant_a::text, participant_b::text,
		       last_msg_text, COALESCE(last_msg_sender::text, ''), last_msg_seen,
		       last_activity_at, created_at
		FROM conversations
		WHERE participant_a = $1::uuid OR participant_b = $1::uuid
		ORDER BY last_activity_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []messaging.Conversation
	for rows.Next() {
		c, err := scanConversationRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *PgMessagingRepository) UpdateConversationSummary(ctx context.Context, id string, s messaging.Summary, at time.Time) error {
	if r == nil || r.pool == nil {
		return errors.New("PgMessagingRepository: nil pool")
	}
	ct, err := r.pool.Exec(ctx, `
		UPDATE conversations
		SET last_msg_text = $2,
		    last_msg_sender = NULLIF($3, '')::uuid,
		    last_msg_seen = $4,
		    last_activity_at = $5
		WHERE id = $1::uuid
	`, id, s.Text, s.SenderID, s.Seen, at)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PgMessagingRepository) MarkConversationSeen(ctx context.Context, id string) error {
	if r == nil || r.pool == nil {
		return errors.New("PgMessagingRepository: nil pool")
	}
	ct, err := r.pool.Exec(ctx, `
		UPDATE conversations SET last_msg_seen = TRUE WHERE id = $1::uuid
	`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PgMessagingRepository) SaveMessage(ctx context.Context, m messaging.Message) (string, error) {
	if r == nil || r.pool == nil {
		return "", errors.New("PgMessagingRepository: nil pool")
	}
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO messages (conversation_id, sender_id, body, media_url, seen, created_at)
		VALUES ($1::uuid, $2::uuid, $3, $4, $5, $6)
		RETURNING id::text
	`, m.ConversationID, m.SenderID, m.Body, m.MediaURL, m.Seen, m.CreatedAt).Scan(&id)
	return id, err
}

func (r *PgMessagingRepository) ListMessages(ctx context.Context, conversationID string) ([]messaging.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgMessagingRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, conversation_id::text, sender_id::text, body, media_url, seen, created_at
		FROM messages
		WHERE conversation_id = $1::uuid
		ORDER BY created_at DESC
	`, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []messaging.Message
	for rows.Next() {
		var m messaging.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Body, &m.MediaURL, &m.Seen, &m.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

func (r *PgMessagingRepository) LatestMessageAt(ctx context.Context, conversationID string) (*time.Time, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgMessagingRepository: nil pool")
	}
	var at *time.Time
	err := r.pool.QueryRow(ctx, `
		SELECT MAX(created_at) FROM messages WHERE conversation_id = $1::uuid
	`, conversationID).Scan(&at)
	if err != nil {
		return nil, err
	}
	return at, nil
}

func (r *PgMessagingRepository) MarkMessagesSeen(ctx context.Context, conversationID, viewerID string, upTo time.Time) (int64, error) {
	if r == nil || r.pool == nil {
		return 0, errors.New("PgMessagingRepository: nil pool")
	}
	ct, err := r.pool.Exec(ctx, `
		UPDATE messages
		SET seen = TRUE
		WHERE conversation_id = $1::uuid
		  AND sender_id <> $2::uuid
		  AND seen = FALSE
		  AND created_at <= $3
	`, conversationID, viewerID, upTo)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanConversation(row pgx.Row) (*messaging.Conversation, error) {
	c, err := scanConversationRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func scanConversationRow(row rowScanner) (*messaging.Conversation, error) {
	var (
		c    messaging.Conversation
		a, b string
	)
	if err := row.Scan(
		&c.ID, &c.PairKey, &a, &b,
		&c.LastMessage.Text, &c.LastMessage.SenderID, &c.LastMessage.Seen,
		&c.LastActivityAt, &c.CreatedAt,
	); err != nil {
		return nil, err
	}
	c.ParticipantIDs = []string{a, b}
	return &c, nil
}
