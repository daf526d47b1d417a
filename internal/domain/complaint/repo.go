package complaint

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, cm *Complaint) error
	GetByID(ctx context.Context, id uuid.UUID) (*Complaint, error)
	Update(ctx context.Context, cm *Complaint) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*Complaint, int, error)
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*Complaint, error)
}
