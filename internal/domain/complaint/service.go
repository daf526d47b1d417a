package complaint

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("complaint not found")
	ErrNotOwner = errors.New("complaint not owned by caller")
)

// CourseDirectory answers who owns a treatment course, used to validate
// course links.
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

func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, cm *Complaint) error {
	if strings.TrimSpace(cm.ComplaintText) == "" {
		return fmt.Errorf("complaint_text is required")
	}
	if cm.Status == "" {
		cm.Status = StatusActive
	}
	cm.OwnerID = ownerID
	if err := s.checkCourseLink(ctx, ownerID, cm.CourseID); err != nil {
		return err
	}
	return s.repo.Create(ctx, cm)
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*Complaint, error) {
	cm, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cm.OwnerID != ownerID {
		return nil, ErrNotOwner
	}
	return cm, nil
}

func (s *Service) Update(ctx context.Context, ownerID uuid.UUID, cm *Complaint) error {
	existing, err := s.repo.GetByID(ctx, cm.ID)
	if err != nil {
		return err
	}
	if existing.OwnerID != ownerID {
		return ErrNotOwner
	}
	if strings.TrimSpace(cm.ComplaintText) == "" {
		return fmt.Errorf("complaint_text is required")
	}
	if cm.Status == "" {
		cm.Status = existing.Status
	}
	cm.OwnerID = existing.OwnerID
	cm.CreatedAt = existing.CreatedAt
	if err := s.checkCourseLink(ctx, ownerID, cm.CourseID); err != nil {
		return err
	}
	return s.repo.Update(ctx, cm)
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

func (s *Service) List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*Complaint, int, error) {
	return s.repo.ListByOwner(ctx, ownerID, limit, offset)
}

// ListByCourse returns the complaints linked to a course newest-first.
func (s *Service) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*Complaint, error) {
	cms, err := s.repo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if cms == nil {
		cms = []*Complaint{}
	}
	return cms, nil
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
