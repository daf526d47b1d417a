package record

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/healthfolio/healthfolio/internal/platform/auth"
)

func newHandlerFixture() (*Handler, *mockRepo) {
	repo := newMockRepo()
	courses := &mockCourseDirectory{owners: map[uuid.UUID]uuid.UUID{}}
	return NewHandler(NewService(repo, courses)), repo
}

func TestCreateRecordHandler(t *testing.T) {
	h, repo := newHandlerFixture()
	owner := uuid.New()

	e := echo.New()
	body := `{"date":"2024-03-01T00:00:00Z","kind":"encounter","encounter":{"doctor_name":"Dr. Kim"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/records", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	auth.SetOwnerID(c, owner)

	if err := h.CreateRecord(c); err != nil {
		t.Fatalf("CreateRecord failed: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if len(repo.records) != 1 {
		t.Errorf("expected 1 stored record, got %d", len(repo.records))
	}
}

func TestCreateRecordHandler_InvalidKind(t *testing.T) {
	h, _ := newHandlerFixture()

	e := echo.New()
	body := `{"date":"2024-03-01T00:00:00Z","kind":"prescription"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/records", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())
	auth.SetOwnerID(c, uuid.New())

	err := h.CreateRecord(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid kind, got %v", err)
	}
}

// A stranger asking for someone else's record gets the same 404 as for a
// record that does not exist.
func TestGetRecordHandler_ForeignRecordReadsAsNotFound(t *testing.T) {
	h, repo := newHandlerFixture()
	owner := uuid.New()

	stored := &Record{OwnerID: owner, Date: time.Now(), Kind: KindEncounter}
	repo.Create(nil, stored)

	e := echo.New()
	for name, id := range map[string]string{
		"foreign record": stored.ID.String(),
		"unknown record": uuid.NewString(),
	} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/records/"+id, nil)
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetParamNames("id")
		c.SetParamValues(id)
		auth.SetOwnerID(c, uuid.New())

		err := h.GetRecord(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusNotFound {
			t.Errorf("%s: expected 404, got %v", name, err)
		}
	}
}

func TestListRecordsHandler_Pagination(t *testing.T) {
	h, repo := newHandlerFixture()
	owner := uuid.New()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		repo.Create(nil, &Record{OwnerID: owner, Date: base.AddDate(0, 0, i), Kind: KindEncounter})
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/records?limit=2&offset=2", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	auth.SetOwnerID(c, owner)

	if err := h.ListRecords(c); err != nil {
		t.Fatalf("ListRecords failed: %v", err)
	}

	var resp struct {
		Data    []*Record `json:"data"`
		Total   int       `json:"total"`
		HasMore bool      `json:"has_more"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Total != 5 {
		t.Errorf("expected total 5, got %d", resp.Total)
	}
	if len(resp.Data) != 2 {
		t.Errorf("expected 2 records in page, got %d", len(resp.Data))
	}
	if !resp.HasMore {
		t.Error("expected has_more on a middle page")
	}
}
