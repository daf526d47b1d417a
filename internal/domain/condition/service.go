package condition

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrNotFound reports a lookup entry that does not exist.
var ErrNotFound = errors.New("condition not found")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListAllergies(ctx context.Context) ([]*Allergy, error) {
	as, err := s.repo.ListAllergies(ctx)
	if err != nil {
		return nil, err
	}
	if as == nil {
		as = []*Allergy{}
	}
	return as, nil
}

func (s *Service) ListDiseases(ctx context.Context) ([]*ChronicDisease, error) {
	ds, err := s.repo.ListDiseases(ctx)
	if err != nil {
		return nil, err
	}
	if ds == nil {
		ds = []*ChronicDisease{}
	}
	return ds, nil
}

// ForUser returns the conditions attached to an account, with never-nil
// slices.
func (s *Service) ForUser(ctx context.Context, userID uuid.UUID) (*UserConditions, error) {
	as, err := s.repo.AllergiesForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load allergies: %w", err)
	}
	ds, err := s.repo.DiseasesForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load chronic diseases: %w", err)
	}
	uc := &UserConditions{Allergies: as, ChronicDiseases: ds}
	if uc.Allergies == nil {
		uc.Allergies = []*Allergy{}
	}
	if uc.ChronicDiseases == nil {
		uc.ChronicDiseases = []*ChronicDisease{}
	}
	return uc, nil
}

// AssignToUser attaches the selected lookup entries to userID. A custom
// name reuses the existing entry of the same name when one exists and
// creates it otherwise, so the lookup table stays free of duplicates.
func (s *Service) AssignToUser(ctx context.Context, userID uuid.UUID, allergyIDs, diseaseIDs []uuid.UUID, customAllergy, customDisease string) error {
	if userID == uuid.Nil {
		return fmt.Errorf("user_id is required")
	}

	if name := strings.TrimSpace(customAllergy); name != "" {
		a, err := s.repo.GetAllergyByName(ctx, name)
		if errors.Is(err, ErrNotFound) {
			a = &Allergy{Name: name}
			if err := s.repo.CreateAllergy(ctx, a); err != nil {
				return fmt.Errorf("create allergy %q: %w", name, err)
			}
		} else if err != nil {
			return err
		}
		allergyIDs = append(allergyIDs, a.ID)
	}

	if name := strings.TrimSpace(customDisease); name != "" {
		d, err := s.repo.GetDiseaseByName(ctx, name)
		if errors.Is(err, ErrNotFound) {
			d = &ChronicDisease{Name: name}
			if err := s.repo.CreateDisease(ctx, d); err != nil {
				return fmt.Errorf("create chronic disease %q: %w", name, err)
			}
		} else if err != nil {
			return err
		}
		diseaseIDs = append(diseaseIDs, d.ID)
	}

	if len(allergyIDs) > 0 {
		if err := s.repo.LinkAllergies(ctx, userID, allergyIDs); err != nil {
			return fmt.Errorf("link allergies: %w", err)
		}
	}
	if len(diseaseIDs) > 0 {
		if err := s.repo.LinkDiseases(ctx, userID, diseaseIDs); err != nil {
			return fmt.Errorf("link chronic diseases: %w", err)
		}
	}
	return nil
}
