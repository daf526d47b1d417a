package share

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) Insert(ctx context.Context, t *ShareToken) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO share_tokens (token, owner_id, issued_at, expires_at)
		VALUES ($1,$2,$3,$4)`,
		t.Token, t.OwnerID, t.IssuedAt, t.ExpiresAt,
	)
	return err
}

func (r *repoPG) GetByToken(ctx context.Context, token string) (*ShareToken, error) {
	var t ShareToken
	err := r.pool.QueryRow(ctx,
		`SELECT token, owner_id, issued_at, expires_at FROM share_tokens WHERE token = $1`, token).
		Scan(&t.Token, &t.OwnerID, &t.IssuedAt, &t.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repoPG) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM share_tokens WHERE expires_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
