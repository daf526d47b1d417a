package vitals

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, m *Measurement) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*Measurement, int, error)
	ListAllByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Measurement, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*Measurement, error)
}
