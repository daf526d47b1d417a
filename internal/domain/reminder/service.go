package reminder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("reminder not found")
	ErrNotOwner = errors.New("reminder not owned by caller")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func validate(rm *Reminder) error {
	if strings.TrimSpace(rm.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if _, err := time.Parse("15:04", rm.TimeOfDay); err != nil {
		return fmt.Errorf("time_of_day must be HH:MM: %w", err)
	}
	for _, d := range rm.DaysOfWeek {
		if d < 0 || d > 6 {
			return fmt.Errorf("days_of_week entries must be 0..6, got %d", d)
		}
	}
	return nil
}

func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, rm *Reminder) error {
	if err := validate(rm); err != nil {
		return err
	}
	rm.OwnerID = ownerID
	return s.repo.Create(ctx, rm)
}

func (s *Service) Update(ctx context.Context, ownerID uuid.UUID, rm *Reminder) error {
	existing, err := s.repo.GetByID(ctx, rm.ID)
	if err != nil {
		return err
	}
	if existing.OwnerID != ownerID {
		return ErrNotOwner
	}
	if err := validate(rm); err != nil {
		return err
	}
	rm.OwnerID = existing.OwnerID
	rm.CreatedAt = existing.CreatedAt
	return s.repo.Update(ctx, rm)
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

func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]*Reminder, error) {
	rms, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if rms == nil {
		rms = []*Reminder{}
	}
	return rms, nil
}
