package record

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockRepo struct {
	records map[uuid.UUID]*Record
}

func newMockRepo() *mockRepo {
	return &mockRepo{records: map[uuid.UUID]*Record{}}
}

func (m *mockRepo) Create(ctx context.Context, rec *Record) error {
	rec.ID = uuid.New()
	cp := *rec
	m.records[rec.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*Record, error) {
	rec, ok := m.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (m *mockRepo) Update(ctx context.Context, rec *Record) error {
	if _, ok := m.records[rec.ID]; !ok {
		return ErrNotFound
	}
	cp := *rec
	m.records[rec.ID] = &cp
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.records, id)
	return nil
}

func (m *mockRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*Record, int, error) {
	all, _ := m.ListAllByOwner(ctx, ownerID)
	total := len(all)
	if offset >= len(all) {
		return []*Record{}, total, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, total, nil
}

func (m *mockRepo) ListAllByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Record, error) {
	var recs []*Record
	for _, rec := range m.records {
		if rec.OwnerID == ownerID {
			cp := *rec
			recs = append(recs, &cp)
		}
	}
	SortNewestFirst(recs)
	return recs, nil
}

func (m *mockRepo) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*Record, error) {
	var recs []*Record
	for _, rec := range m.records {
		if rec.CourseID != nil && *rec.CourseID == courseID {
			cp := *rec
			recs = append(recs, &cp)
		}
	}
	SortNewestFirst(recs)
	return recs, nil
}

type mockCourseDirectory struct {
	owners map[uuid.UUID]uuid.UUID
}

func (m *mockCourseDirectory) OwnerOf(ctx context.Context, courseID uuid.UUID) (uuid.UUID, error) {
	owner, ok := m.owners[courseID]
	if !ok {
		return uuid.Nil, errors.New("course not found")
	}
	return owner, nil
}

func newTestService() (*Service, *mockRepo, *mockCourseDirectory) {
	repo := newMockRepo()
	courses := &mockCourseDirectory{owners: map[uuid.UUID]uuid.UUID{}}
	return NewService(repo, courses), repo, courses
}

func TestCreate(t *testing.T) {
	svc, repo, _ := newTestService()
	owner := uuid.New()

	rec := &Record{
		Date:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Kind:      KindEncounter,
		Encounter: &EncounterDetails{DoctorName: strPtr("Dr. Kim")},
	}
	if err := svc.Create(context.Background(), owner, rec); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if rec.ID == uuid.Nil {
		t.Error("expected id assigned")
	}
	if rec.OwnerID != owner {
		t.Error("expected owner id assigned from caller, not payload")
	}
	if len(repo.records) != 1 {
		t.Errorf("expected 1 stored record, got %d", len(repo.records))
	}
}

func TestCreate_Validation(t *testing.T) {
	svc, _, _ := newTestService()
	owner := uuid.New()
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		rec  *Record
	}{
		{"missing date", &Record{Kind: KindEncounter}},
		{"missing kind", &Record{Date: date}},
		{"unknown kind", &Record{Date: date, Kind: "prescription"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := svc.Create(context.Background(), owner, tc.rec); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestCreate_DropsForeignVariantFields(t *testing.T) {
	svc, repo, _ := newTestService()
	owner := uuid.New()

	rec := &Record{
		Date:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Kind:        KindObservation,
		Observation: &ObservationDetails{LabName: strPtr("Invivo")},
		Encounter:   &EncounterDetails{DoctorName: strPtr("Dr. Kim")},
	}
	if err := svc.Create(context.Background(), owner, rec); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	stored := repo.records[rec.ID]
	if stored.Encounter != nil {
		t.Error("observation record must not store encounter fields")
	}
	if stored.Observation == nil || *stored.Observation.LabName != "Invivo" {
		t.Error("observation fields should be stored")
	}
}

func TestCreate_CourseLink(t *testing.T) {
	svc, _, courses := newTestService()
	owner := uuid.New()
	stranger := uuid.New()

	mine := uuid.New()
	theirs := uuid.New()
	courses.owners[mine] = owner
	courses.owners[theirs] = stranger

	ok := &Record{Date: time.Now(), Kind: KindEncounter, CourseID: &mine}
	if err := svc.Create(context.Background(), owner, ok); err != nil {
		t.Errorf("link to own course should succeed: %v", err)
	}

	crossOwner := &Record{Date: time.Now(), Kind: KindEncounter, CourseID: &theirs}
	if err := svc.Create(context.Background(), owner, crossOwner); !errors.Is(err, ErrNotOwner) {
		t.Errorf("expected ErrNotOwner for foreign course, got %v", err)
	}

	missing := uuid.New()
	dangling := &Record{Date: time.Now(), Kind: KindEncounter, CourseID: &missing}
	if err := svc.Create(context.Background(), owner, dangling); err == nil {
		t.Error("expected error for unknown course")
	}
}

func TestGet_Ownership(t *testing.T) {
	svc, _, _ := newTestService()
	owner := uuid.New()
	stranger := uuid.New()

	rec := &Record{Date: time.Now(), Kind: KindEncounter}
	if err := svc.Create(context.Background(), owner, rec); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := svc.Get(context.Background(), owner, rec.ID); err != nil {
		t.Errorf("owner should read own record: %v", err)
	}
	if _, err := svc.Get(context.Background(), stranger, rec.ID); !errors.Is(err, ErrNotOwner) {
		t.Errorf("expected ErrNotOwner, got %v", err)
	}
	if _, err := svc.Get(context.Background(), owner, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdate_KindIsImmutable(t *testing.T) {
	svc, repo, _ := newTestService()
	owner := uuid.New()

	rec := &Record{
		Date:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Kind:      KindEncounter,
		Encounter: &EncounterDetails{DoctorName: strPtr("Dr. Kim")},
	}
	if err := svc.Create(context.Background(), owner, rec); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	upd := &Record{
		ID:          rec.ID,
		Date:        rec.Date,
		Kind:        KindObservation,
		Observation: &ObservationDetails{LabName: strPtr("Invivo")},
	}
	if err := svc.Update(context.Background(), owner, upd); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	stored := repo.records[rec.ID]
	if stored.Kind != KindEncounter {
		t.Errorf("kind must not change on update, got %q", stored.Kind)
	}
	if stored.Observation != nil {
		t.Error("fields of the attempted new kind must be dropped")
	}
}

func TestUpdate_Ownership(t *testing.T) {
	svc, _, _ := newTestService()
	owner := uuid.New()
	stranger := uuid.New()

	rec := &Record{Date: time.Now(), Kind: KindEncounter}
	if err := svc.Create(context.Background(), owner, rec); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	upd := &Record{ID: rec.ID, Date: rec.Date, Kind: KindEncounter}
	if err := svc.Update(context.Background(), stranger, upd); !errors.Is(err, ErrNotOwner) {
		t.Errorf("expected ErrNotOwner, got %v", err)
	}
}

func TestDelete_Ownership(t *testing.T) {
	svc, repo, _ := newTestService()
	owner := uuid.New()
	stranger := uuid.New()

	rec := &Record{Date: time.Now(), Kind: KindEncounter}
	if err := svc.Create(context.Background(), owner, rec); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := svc.Delete(context.Background(), stranger, rec.ID); !errors.Is(err, ErrNotOwner) {
		t.Errorf("expected ErrNotOwner, got %v", err)
	}
	if err := svc.Delete(context.Background(), owner, rec.ID); err != nil {
		t.Errorf("owner delete failed: %v", err)
	}
	if len(repo.records) != 0 {
		t.Error("expected record removed")
	}
}

func TestListAll_EmptyIsNotNil(t *testing.T) {
	svc, _, _ := newTestService()

	recs, err := svc.ListAll(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if recs == nil {
		t.Error("expected empty slice, not nil")
	}
}

func TestListAll_NewestFirst(t *testing.T) {
	svc, _, _ := newTestService()
	owner := uuid.New()

	dates := []time.Time{
		time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC),
	}
	for i, d := range dates {
		kind := KindEncounter
		if i%2 == 1 {
			kind = KindObservation
		}
		if err := svc.Create(context.Background(), owner, &Record{Date: d, Kind: kind}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	recs, err := svc.ListAll(context.Background(), owner)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recs))
	}
	for i := 1; i < len(recs); i++ {
		if recs[i].Date.After(recs[i-1].Date) {
			t.Errorf("records out of order at %d: %v after %v", i, recs[i].Date, recs[i-1].Date)
		}
	}
}
