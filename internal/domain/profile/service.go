package profile

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound reports a user with no profile yet.
var ErrNotFound = errors.New("profile not found")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// Save creates or replaces the user's profile.
func (s *Service) Save(ctx context.Context, userID uuid.UUID, p *Profile) error {
	p.UserID = userID
	return s.repo.Upsert(ctx, p)
}
