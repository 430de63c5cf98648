package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	repository "github.com/gaurav031/Feelify-sub000/internal/repository/port"
)

// PgUserDirectory reads public profile fields from the social app's users
// table. The realtime core never writes users; account CRUD lives with the
// rest of the application.
type PgUserDirectory struct {
	pool *pgxpool.Pool
}

func NewPgUserDirectory(pool *pgxpool.Pool) *PgUserDirectory {
	return &PgUserDirectory{pool: pool}
}

var _ repository.UserDirectory = (*PgUserDirectory)(nil)

func (r *PgUserDirectory) FindByID(ctx context.Context, id string) (*repository.PublicProfile, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgUserDirectory: nil pool")
	}
	var p repository.PublicProfile
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, username, COALESCE(profile_pic, '')
		FROM users
		WHERE id = $1::uuid
	`, id).Scan(&p.ID, &p.Username, &p.ProfilePic)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
