// internal/service/run_executor_test.go
package service_test

import (
	"context"
	"errors"
	"testing"

	appErrors "github.com/unclebandit/automailer-backend/internal/errors"
	"github.com/unclebandit/automailer-backend/internal/model"
	"github.com/unclebandit/automailer-backend/internal/service"
)

type mockOutcomeRepo struct {
	outcomes map[int][]model.Outcome
}

func newMockOutcomeRepo() *mockOutcomeRepo {
	return &mockOutcomeRepo{outcomes: map[int][]model.Outcome{}}
}

func (m *mockOutcomeRepo) Create(runID int, outcome model.Outcome) error {
	m.outcomes[runID] = append(m.outcomes[runID], outcome)
	return nil
}

func (m *mockOutcomeRepo) ListByRun(runID int) ([]model.Outcome, error) {
	return m.outcomes[runID], nil
}

type staticSettings struct {
	settings model.TransportSettings
	err      error
}

func (s staticSettings) Load() (model.TransportSettings, error) {
	return s.settings, s.err
}

func executorFixture(t *testing.T, datasetContent string) (*service.RunExecutor, *mockRunRepo, *mockOutcomeRepo, *fakeTransport, int) {
	t.Helper()

	campaigns := newMockCampaignRepo(&model.Campaign{
		ID:              1,
		SubjectTemplate: "Hello {name}",
		BodyTemplate:    "Hi {name}",
		EmailColumn:     "email",
	})
	runs := newMockRunRepo()
	outcomes := newMockOutcomeRepo()
	tr := &fakeTransport{failFor: map[string]bool{"bad": true}}

	run := &model.BatchRun{
		CampaignID:  1,
		DatasetPath: writeDataset(t, datasetContent),
		Status:      model.RunStatusPending,
	}
	if err := runs.Create(run); err != nil {
		t.Fatal(err)
	}

	exec := &service.RunExecutor{
		Campaigns: campaigns,
		Runs:      runs,
		Outcomes:  outcomes,
		Settings:  staticSettings{settings: completeSettings()},
		Transport: tr,
		Sink:      &recordingSink{},
	}
	return exec, runs, outcomes, tr, run.ID
}

func TestExecutePersistsOutcomesAndCompletesRun(t *testing.T) {
	exec, runs, outcomes, tr, runID := executorFixture(t, "email,name\na@x.com,Ann\nbad,Bob\n")

	if err := exec.Execute(context.Background(), runID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if runs.statuses[runID] != model.RunStatusCompleted {
		t.Errorf("expected completed status, got %q", runs.statuses[runID])
	}
	summary := runs.completed[runID]
	if summary.Sent != 1 || summary.Failed != 1 || summary.Total != 2 {
		t.Errorf("unexpected summary: %+v", summary)
	}

	persisted := outcomes.outcomes[runID]
	if len(persisted) != 2 {
		t.Fatalf("expected 2 persisted outcomes, got %d", len(persisted))
	}
	if persisted[0].Recipient != "a@x.com" || persisted[0].Status != model.OutcomeSent {
		t.Errorf("unexpected first outcome: %+v", persisted[0])
	}
	if persisted[1].Recipient != "bad" || persisted[1].Status != model.OutcomeFailed {
		t.Errorf("unexpected second outcome: %+v", persisted[1])
	}

	if len(tr.delivered) != 1 || tr.delivered[0] != "a@x.com" {
		t.Errorf("unexpected deliveries: %v", tr.delivered)
	}
}

func TestExecuteUnknownRun(t *testing.T) {
	exec, _, _, _, _ := executorFixture(t, "email\na@x.com\n")

	err := exec.Execute(context.Background(), 999)
	var notFound *appErrors.ErrRunNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("expected run-not-found, got %v", err)
	}
}

func TestExecuteUnreadableDatasetMarksRunFailed(t *testing.T) {
	exec, runs, outcomes, _, _ := executorFixture(t, "email\na@x.com\n")

	run := &model.BatchRun{CampaignID: 1, DatasetPath: "/does/not/exist.csv"}
	if err := runs.Create(run); err != nil {
		t.Fatal(err)
	}

	if err := exec.Execute(context.Background(), run.ID); err == nil {
		t.Fatal("expected an error for a missing dataset")
	}
	if runs.statuses[run.ID] != model.RunStatusFailed {
		t.Errorf("run must be marked failed, got %q", runs.statuses[run.ID])
	}
	if len(outcomes.outcomes[run.ID]) != 0 {
		t.Error("no outcomes may be recorded for a run that never started")
	}
}

func TestExecuteIncompleteSettingsMarksRunFailed(t *testing.T) {
	exec, runs, _, _, runID := executorFixture(t, "email\na@x.com\n")
	exec.Settings = staticSettings{settings: model.TransportSettings{SenderEmail: "me@x.com"}}

	err := exec.Execute(context.Background(), runID)
	var pre *appErrors.ErrPrecondition
	if !errors.As(err, &pre) {
		t.Fatalf("expected a precondition error, got %v", err)
	}
	if runs.statuses[runID] != model.RunStatusFailed {
		t.Errorf("run must be marked failed, got %q", runs.statuses[runID])
	}
	if runs.failedWith == "" {
		t.Error("the failure reason must be recorded on the run")
	}
}
