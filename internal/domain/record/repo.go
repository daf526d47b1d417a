package record

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, rec *Record) error
	GetByID(ctx context.Context, id uuid.UUID) (*Record, error)
	Update(ctx context.Context, rec *Record) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*Record, int, error)
	ListAllByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Record, error)
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*Record, error)
}
