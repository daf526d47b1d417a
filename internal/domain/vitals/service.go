package vitals

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/healthfolio/healthfolio/internal/platform/clock"
)

var (
	ErrNotFound = errors.New("measurement not found")
	ErrNotOwner = errors.New("measurement not owned by caller")
)

type Service struct {
	repo Repository
	clk  clock.Clock
}

func NewService(repo Repository, clk clock.Clock) *Service {
	return &Service{repo: repo, clk: clk}
}

func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, m *Measurement) error {
	if m.Type == "" {
		return fmt.Errorf("type is required")
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = s.clk.Now()
	}
	m.OwnerID = ownerID
	return s.repo.Create(ctx, m)
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*Measurement, int, error) {
	return s.repo.ListByOwner(ctx, ownerID, limit, offset)
}

// ListAll returns the owner's full vitals history newest-first. Used by the
// share view.
func (s *Service) ListAll(ctx context.Context, ownerID uuid.UUID) ([]*Measurement, error) {
	ms, err := s.repo.ListAllByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if ms == nil {
		ms = []*Measurement{}
	}
	return ms, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.OwnerID != ownerID {
		return ErrNotOwner
	}
	return s.repo.Delete(ctx, id)
}
