package vitals

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/healthfolio/healthfolio/internal/platform/clock"
)

type mockRepo struct {
	measurements map[uuid.UUID]*Measurement
}

func newMockRepo() *mockRepo {
	return &mockRepo{measurements: map[uuid.UUID]*Measurement{}}
}

func (m *mockRepo) Create(ctx context.Context, ms *Measurement) error {
	ms.ID = uuid.New()
	cp := *ms
	m.measurements[ms.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*Measurement, error) {
	ms, ok := m.measurements[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *ms
	return &cp, nil
}

func (m *mockRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.measurements, id)
	return nil
}

func (m *mockRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*Measurement, int, error) {
	all, _ := m.ListAllByOwner(ctx, ownerID)
	total := len(all)
	if offset >= len(all) {
		return []*Measurement{}, total, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, total, nil
}

func (m *mockRepo) ListAllByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Measurement, error) {
	var out []*Measurement
	for _, ms := range m.measurements {
		if ms.OwnerID == ownerID {
			cp := *ms
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

func TestCreate(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, clock.NewFake(time.Now()))
	owner := uuid.New()

	ms := &Measurement{
		Type:      "blood_pressure_systolic",
		Value:     122,
		Unit:      "mmHg",
		Timestamp: time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC),
	}
	if err := svc.Create(context.Background(), owner, ms); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if ms.OwnerID != owner {
		t.Error("expected owner id assigned")
	}
}

func TestCreate_RequiresType(t *testing.T) {
	svc := NewService(newMockRepo(), clock.NewFake(time.Now()))

	if err := svc.Create(context.Background(), uuid.New(), &Measurement{Value: 70}); err == nil {
		t.Error("expected error for missing type")
	}
}

func TestCreate_DefaultsTimestampToNow(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := NewService(newMockRepo(), clock.NewFake(now))

	ms := &Measurement{Type: "weight", Value: 71.5, Unit: "kg"}
	if err := svc.Create(context.Background(), uuid.New(), ms); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !ms.Timestamp.Equal(now) {
		t.Errorf("expected timestamp defaulted to %v, got %v", now, ms.Timestamp)
	}
}

func TestListAll_NewestFirst(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, clock.NewFake(time.Now()))
	owner := uuid.New()

	for _, ts := range []time.Time{
		time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 2, 8, 0, 0, 0, time.UTC),
	} {
		if err := svc.Create(context.Background(), owner, &Measurement{Type: "weight", Value: 71, Timestamp: ts}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	out, err := svc.ListAll(context.Background(), owner)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 measurements, got %d", len(out))
	}
	for i := 1; i < len(out); i++ {
		if out[i].Timestamp.After(out[i-1].Timestamp) {
			t.Errorf("measurements out of order at %d", i)
		}
	}
}

func TestDelete_Ownership(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, clock.NewFake(time.Now()))
	owner := uuid.New()

	ms := &Measurement{Type: "weight", Value: 71.5, Timestamp: time.Now()}
	if err := svc.Create(context.Background(), owner, ms); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := svc.Delete(context.Background(), uuid.New(), ms.ID); !errors.Is(err, ErrNotOwner) {
		t.Errorf("expected ErrNotOwner, got %v", err)
	}
	if err := svc.Delete(context.Background(), owner, ms.ID); err != nil {
		t.Errorf("owner delete failed: %v", err)
	}
}
