package share

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/healthfolio/healthfolio/internal/domain/profile"
	"github.com/healthfolio/healthfolio/internal/domain/record"
	"github.com/healthfolio/healthfolio/internal/domain/vitals"
)

type stubProfileSource struct {
	profiles map[uuid.UUID]*profile.Profile
}

func (s *stubProfileSource) Get(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	p, ok := s.profiles[userID]
	if !ok {
		return nil, profile.ErrNotFound
	}
	return p, nil
}

type stubRecordSource struct {
	records map[uuid.UUID][]*record.Record
}

func (s *stubRecordSource) ListAll(ctx context.Context, ownerID uuid.UUID) ([]*record.Record, error) {
	return s.records[ownerID], nil
}

type stubVitalsSource struct {
	vitals map[uuid.UUID][]*vitals.Measurement
}

func (s *stubVitalsSource) ListAll(ctx context.Context, ownerID uuid.UUID) ([]*vitals.Measurement, error) {
	return s.vitals[ownerID], nil
}

func TestBuildView(t *testing.T) {
	owner := uuid.New()
	docName := "Dr. Kim"

	prof := &profile.Profile{ID: uuid.New(), UserID: owner}
	recs := []*record.Record{
		{
			ID: uuid.New(), OwnerID: owner, Kind: record.KindEncounter,
			Date:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			Encounter: &record.EncounterDetails{DoctorName: &docName},
		},
	}
	ms := []*vitals.Measurement{
		{ID: uuid.New(), OwnerID: owner, Type: "weight", Value: 71.5, Unit: "kg"},
	}

	a := NewAssembler(
		&stubProfileSource{profiles: map[uuid.UUID]*profile.Profile{owner: prof}},
		&stubRecordSource{records: map[uuid.UUID][]*record.Record{owner: recs}},
		&stubVitalsSource{vitals: map[uuid.UUID][]*vitals.Measurement{owner: ms}},
	)

	view, err := a.BuildView(context.Background(), owner)
	if err != nil {
		t.Fatalf("BuildView failed: %v", err)
	}
	if view.Profile != prof {
		t.Error("expected owner's profile in view")
	}
	if len(view.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(view.Records))
	}
	if len(view.Vitals) != 1 {
		t.Fatalf("expected 1 vitals measurement, got %d", len(view.Vitals))
	}
}

func TestBuildView_MissingProfileFails(t *testing.T) {
	owner := uuid.New()
	a := NewAssembler(
		&stubProfileSource{profiles: map[uuid.UUID]*profile.Profile{}},
		&stubRecordSource{records: map[uuid.UUID][]*record.Record{}},
		&stubVitalsSource{vitals: map[uuid.UUID][]*vitals.Measurement{}},
	)

	_, err := a.BuildView(context.Background(), owner)
	if !errors.Is(err, profile.ErrNotFound) {
		t.Errorf("expected profile.ErrNotFound, got %v", err)
	}
}

func TestBuildView_EmptyIsNotAnError(t *testing.T) {
	owner := uuid.New()
	a := NewAssembler(
		&stubProfileSource{profiles: map[uuid.UUID]*profile.Profile{owner: {ID: uuid.New(), UserID: owner}}},
		&stubRecordSource{records: map[uuid.UUID][]*record.Record{}},
		&stubVitalsSource{vitals: map[uuid.UUID][]*vitals.Measurement{}},
	)

	view, err := a.BuildView(context.Background(), owner)
	if err != nil {
		t.Fatalf("BuildView failed: %v", err)
	}
	if view.Records == nil || len(view.Records) != 0 {
		t.Error("expected empty, non-nil record list")
	}
	if view.Vitals == nil || len(view.Vitals) != 0 {
		t.Error("expected empty, non-nil vitals list")
	}
}

func TestSharedView_NeverExposesOtherData(t *testing.T) {
	owner := uuid.New()
	a := NewAssembler(
		&stubProfileSource{profiles: map[uuid.UUID]*profile.Profile{owner: {ID: uuid.New(), UserID: owner}}},
		&stubRecordSource{records: map[uuid.UUID][]*record.Record{}},
		&stubVitalsSource{vitals: map[uuid.UUID][]*vitals.Measurement{}},
	)

	view, err := a.BuildView(context.Background(), owner)
	if err != nil {
		t.Fatalf("BuildView failed: %v", err)
	}

	body, err := json.Marshal(view)
	if err != nil {
		t.Fatalf("marshal view: %v", err)
	}
	payload := string(body)
	for _, forbidden := range []string{"complaint", "course", "reminder", "password", "email"} {
		if strings.Contains(payload, forbidden) {
			t.Errorf("shared view payload leaks %q: %s", forbidden, payload)
		}
	}
}
