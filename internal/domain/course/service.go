package course

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/healthfolio/healthfolio/internal/domain/complaint"
	"github.com/healthfolio/healthfolio/internal/domain/record"
)

var (
	ErrNotFound = errors.New("course not found")
	ErrNotOwner = errors.New("course not owned by caller")
)

// RecordSource supplies the records linked to a course, newest-first.
type RecordSource interface {
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*record.Record, error)
}

// ComplaintSource supplies the complaints linked to a course, newest-first.
type ComplaintSource interface {
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*complaint.Complaint, error)
}

type Service struct {
	repo       Repository
	records    RecordSource
	complaints ComplaintSource
}

func NewService(repo Repository, records RecordSource, complaints ComplaintSource) *Service {
	return &Service{repo: repo, records: records, complaints: complaints}
}

func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, tc *TreatmentCourse) error {
	if strings.TrimSpace(tc.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if tc.Status == "" {
		tc.Status = "active"
	}
	tc.OwnerID = ownerID
	return s.repo.Create(ctx, tc)
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*TreatmentCourse, error) {
	tc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tc.OwnerID != ownerID {
		return nil, ErrNotOwner
	}
	return tc, nil
}

func (s *Service) Update(ctx context.Context, ownerID uuid.UUID, tc *TreatmentCourse) error {
	existing, err := s.repo.GetByID(ctx, tc.ID)
	if err != nil {
		return err
	}
	if existing.OwnerID != ownerID {
		return ErrNotOwner
	}
	if strings.TrimSpace(tc.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if tc.Status == "" {
		tc.Status = existing.Status
	}
	tc.OwnerID = existing.OwnerID
	tc.CreatedAt = existing.CreatedAt
	return s.repo.Update(ctx, tc)
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

func (s *Service) List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*TreatmentCourse, int, error) {
	return s.repo.ListByOwner(ctx, ownerID, limit, offset)
}

// Detail assembles the read-side view of a course: the course plus its
// linked records and complaints. A course with nothing linked yields empty
// lists, not an error. Nothing is mutated.
func (s *Service) Detail(ctx context.Context, ownerID, courseID uuid.UUID) (*Detail, error) {
	tc, err := s.Get(ctx, ownerID, courseID)
	if err != nil {
		return nil, err
	}

	recs, err := s.records.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("list course records: %w", err)
	}
	if recs == nil {
		recs = []*record.Record{}
	}

	cms, err := s.complaints.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("list course complaints: %w", err)
	}
	if cms == nil {
		cms = []*complaint.Complaint{}
	}

	return &Detail{Course: tc, Records: recs, Complaints: cms}, nil
}

// OwnerOf reports the owner of a course. Record and complaint services use
// it to keep course links within one owner's data.
func (s *Service) OwnerOf(ctx context.Context, courseID uuid.UUID) (uuid.UUID, error) {
	tc, err := s.repo.GetByID(ctx, courseID)
	if err != nil {
		return uuid.Nil, err
	}
	return tc.OwnerID, nil
}
