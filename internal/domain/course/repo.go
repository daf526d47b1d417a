package course

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, tc *TreatmentCourse) error
	GetByID(ctx context.Context, id uuid.UUID) (*TreatmentCourse, error)
	Update(ctx context.Context, tc *TreatmentCourse) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*TreatmentCourse, int, error)
}
