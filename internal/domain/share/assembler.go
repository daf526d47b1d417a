package share

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/healthfolio/healthfolio/internal/domain/profile"
	"github.com/healthfolio/healthfolio/internal/domain/record"
	"github.com/healthfolio/healthfolio/internal/domain/vitals"
)

// SharedView is the entire payload a share-token holder can see: profile,
// record timeline and vitals history. Complaints, treatment courses and
// reminders are deliberately absent, and nothing here references a mutation
// path.
type SharedView struct {
	Profile *profile.Profile      `json:"profile"`
	Records []*record.Record      `json:"records"`
	Vitals  []*vitals.Measurement `json:"vitals"`
}

// ProfileSource supplies the owner's profile.
type ProfileSource interface {
	Get(ctx context.Context, userID uuid.UUID) (*profile.Profile, error)
}

// RecordSource supplies the owner's complete record timeline newest-first.
type RecordSource interface {
	ListAll(ctx context.Context, ownerID uuid.UUID) ([]*record.Record, error)
}

// VitalsSource supplies the owner's vitals history newest-first.
type VitalsSource interface {
	ListAll(ctx context.Context, ownerID uuid.UUID) ([]*vitals.Measurement, error)
}

// Assembler builds the read-only snapshot for a validated owner id. It
// knows nothing about tokens: deciding who may look happens upstream, and
// this type only decides what they see.
type Assembler struct {
	profiles ProfileSource
	records  RecordSource
	vitals   VitalsSource
}

func NewAssembler(profiles ProfileSource, records RecordSource, vitals VitalsSource) *Assembler {
	return &Assembler{profiles: profiles, records: records, vitals: vitals}
}

// BuildView assembles the snapshot for ownerID. A missing profile is a
// failure; empty record or vitals lists come back as empty slices so an
// empty view stays distinguishable from a failed one.
func (a *Assembler) BuildView(ctx context.Context, ownerID uuid.UUID) (*SharedView, error) {
	prof, err := a.profiles.Get(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	recs, err := a.records.ListAll(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	if recs == nil {
		recs = []*record.Record{}
	}

	ms, err := a.vitals.ListAll(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load vitals: %w", err)
	}
	if ms == nil {
		ms = []*vitals.Measurement{}
	}

	return &SharedView{Profile: prof, Records: recs, Vitals: ms}, nil
}
