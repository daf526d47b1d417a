package condition

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	ListAllergies(ctx context.Context) ([]*Allergy, error)
	ListDiseases(ctx context.Context) ([]*ChronicDisease, error)

	GetAllergyByName(ctx context.Context, name string) (*Allergy, error)
	CreateAllergy(ctx context.Context, a *Allergy) error
	GetDiseaseByName(ctx context.Context, name string) (*ChronicDisease, error)
	CreateDisease(ctx context.Context, d *ChronicDisease) error

	// Link* attach lookup entries to a user; attaching an already linked
	// entry is a no-op.
	LinkAllergies(ctx context.Context, userID uuid.UUID, allergyIDs []uuid.UUID) error
	LinkDiseases(ctx context.Context, userID uuid.UUID, diseaseIDs []uuid.UUID) error

	AllergiesForUser(ctx context.Context, userID uuid.UUID) ([]*Allergy, error)
	DiseasesForUser(ctx context.Context, userID uuid.UUID) ([]*ChronicDisease, error)
}
