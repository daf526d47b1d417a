package record

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrNotFound reports an unknown record id.
	ErrNotFound = errors.New("record not found")
	// ErrNotOwner reports an attempt to operate on another owner's record.
	ErrNotOwner = errors.New("record not owned by caller")
)

// CourseDirectory answers who owns a treatment course. The record service
// uses it to reject course links that cross owner boundaries.
type CourseDirectory interface {
	OwnerOf(ctx context.Context, courseID uuid.UUID) (uuid.UUID, error)
}

type Service struct {
	repo    Repository
	courses CourseDirectory
}

func NewService(repo Repository, courses CourseDirectory) *Service {
	return &Service{repo: repo, courses: courses}
}

// Create validates and stores a new record for ownerID. The declared kind is
// authoritative: fields of the other variant are cleared, not rejected.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, rec *Record) error {
	if ownerID == uuid.Nil {
		return fmt.Errorf("owner_id is required")
	}
	if rec.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	if !rec.Kind.Valid() {
		return fmt.Errorf("invalid kind: %q", rec.Kind)
	}
	rec.OwnerID = ownerID
	rec.Normalize()

	if err := s.checkCourseLink(ctx, ownerID, rec.CourseID); err != nil {
		return err
	}
	return s.repo.Create(ctx, rec)
}

// Get returns one record after verifying ownership.
func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*Record, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.OwnerID != ownerID {
		return nil, ErrNotOwner
	}
	return rec, nil
}

// Update applies new content to an existing record. Kind and owner are
// immutable: whatever the caller supplies, the stored values win.
func (s *Service) Update(ctx context.Context, ownerID uuid.UUID, rec *Record) error {
	existing, err := s.repo.GetByID(ctx, rec.ID)
	if err != nil {
		return err
	}
	if existing.OwnerID != ownerID {
		return ErrNotOwner
	}
	if rec.Date.IsZero() {
		return fmt.Errorf("date is required")
	}

	rec.Kind = existing.Kind
	rec.OwnerID = existing.OwnerID
	rec.CreatedAt = existing.CreatedAt
	rec.Normalize()

	if err := s.checkCourseLink(ctx, ownerID, rec.CourseID); err != nil {
		return err
	}
	return s.repo.Update(ctx, rec)
}

// Delete removes a record permanently after verifying ownership.
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

// List returns the owner's records newest-first with pagination.
func (s *Service) List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*Record, int, error) {
	return s.repo.ListByOwner(ctx, ownerID, limit, offset)
}

// ListAll returns every record of the owner newest-first. Used by the share
// view, which exposes the full timeline.
func (s *Service) ListAll(ctx context.Context, ownerID uuid.UUID) ([]*Record, error) {
	recs, err := s.repo.ListAllByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if recs == nil {
		recs = []*Record{}
	}
	return recs, nil
}

// ListByCourse returns the records linked to a course newest-first.
func (s *Service) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*Record, error) {
	recs, err := s.repo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if recs == nil {
		recs = []*Record{}
	}
	return recs, nil
}

func (s *Service) checkCourseLink(ctx context.Context, ownerID uuid.UUID, courseID *uuid.UUID) error {
	if courseID == nil {
		return nil
	}
	courseOwner, err := s.courses.OwnerOf(ctx, *courseID)
	if err != nil {
		return fmt.Errorf("course lookup: %w", err)
	}
	if courseOwner != ownerID {
		return fmt.Errorf("course %s: %w", courseID, ErrNotOwner)
	}
	return nil
}
