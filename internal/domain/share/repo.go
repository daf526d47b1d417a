package share

import (
	"context"
	"time"
)

// Repository persists share tokens keyed by their opaque value. Lookup is
// by the presented token only; the holder is anonymous.
type Repository interface {
	Insert(ctx context.Context, t *ShareToken) error
	GetByToken(ctx context.Context, token string) (*ShareToken, error)
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
