// internal/handler/run_handler_test.go
package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/unclebandit/automailer-backend/internal/handler"
	"github.com/unclebandit/automailer-backend/internal/model"
)

type mockRunRepo struct {
	runs map[int]*model.BatchRun
}

func (m *mockRunRepo) Create(run *model.BatchRun) error                  { return nil }
func (m *mockRunRepo) GetByID(id int) (*model.BatchRun, error)           { return m.runs[id], nil }
func (m *mockRunRepo) UpdateStatus(id int, status string) error          { return nil }
func (m *mockRunRepo) MarkFailed(id int, lastError string) error         { return nil }
func (m *mockRunRepo) Complete(id int, summary model.RunSummary) error   { return nil }
func (m *mockRunRepo) HasActiveRun(campaignID int) (bool, error)         { return false, nil }
func (m *mockRunRepo) ListByCampaign(id int) ([]model.BatchRun, error)   { return nil, nil }
func (m *mockRunRepo) GetCampaignStats(id int) (map[string]int, error)   { return nil, nil }

type mockOutcomeRepo struct {
	outcomes map[int][]model.Outcome
}

func (m *mockOutcomeRepo) Create(runID int, outcome model.Outcome) error { return nil }
func (m *mockOutcomeRepo) ListByRun(runID int) ([]model.Outcome, error) {
	return m.outcomes[runID], nil
}

func newRouter(h *handler.RunHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/runs/{id}", h.GetRunHandler)
	r.Get("/runs/{id}/outcomes", h.ListRunOutcomesHandler)
	return r
}

func TestGetRunHandler(t *testing.T) {
	h := &handler.RunHandler{
		Runs: &mockRunRepo{runs: map[int]*model.BatchRun{
			3: {ID: 3, CampaignID: 1, Status: model.RunStatusCompleted, Sent: 2, Total: 2},
		}},
	}

	req := httptest.NewRequest("GET", "/runs/3", nil)
	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var run model.BatchRun
	if err := json.NewDecoder(rec.Body).Decode(&run); err != nil {
		t.Fatal(err)
	}
	if run.ID != 3 || run.Status != model.RunStatusCompleted || run.Sent != 2 {
		t.Errorf("unexpected run: %+v", run)
	}
}

func TestGetRunHandlerNotFound(t *testing.T) {
	h := &handler.RunHandler{Runs: &mockRunRepo{runs: map[int]*model.BatchRun{}}}

	req := httptest.NewRequest("GET", "/runs/42", nil)
	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestGetRunHandlerBadID(t *testing.T) {
	h := &handler.RunHandler{Runs: &mockRunRepo{}}

	req := httptest.NewRequest("GET", "/runs/abc", nil)
	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestListRunOutcomesHandler(t *testing.T) {
	h := &handler.RunHandler{
		Runs: &mockRunRepo{runs: map[int]*model.BatchRun{
			5: {ID: 5, Status: model.RunStatusCompleted},
		}},
		Outcomes: &mockOutcomeRepo{outcomes: map[int][]model.Outcome{
			5: {
				{RowIndex: 0, Recipient: "a@x.com", Status: model.OutcomeSent},
				{RowIndex: 1, Recipient: "bad", Status: model.OutcomeFailed, Reason: "connection refused"},
			},
		}},
	}

	req := httptest.NewRequest("GET", "/runs/5/outcomes", nil)
	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		RunID  int             `json:"run_id"`
		Status string          `json:"status"`
		Data   []model.Outcome `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.RunID != 5 || resp.Status != model.RunStatusCompleted {
		t.Errorf("unexpected response envelope: %+v", resp)
	}
	if len(resp.Data) != 2 || resp.Data[1].Reason != "connection refused" {
		t.Errorf("unexpected outcomes: %+v", resp.Data)
	}
}

func TestListRunOutcomesHandlerUnknownRun(t *testing.T) {
	h := &handler.RunHandler{
		Runs:     &mockRunRepo{runs: map[int]*model.BatchRun{}},
		Outcomes: &mockOutcomeRepo{},
	}

	req := httptest.NewRequest("GET", "/runs/9/outcomes", nil)
	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
