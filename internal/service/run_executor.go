// internal/service/run_executor.go
package service

import (
    "context"
    "log"

    "github.com/unclebandit/automailer-backend/internal/dataset"
    appErrors "github.com/unclebandit/automailer-backend/internal/errors"
    "github.com/unclebandit/automailer-backend/internal/model"
    "github.com/unclebandit/automailer-backend/internal/repository"
    "github.com/unclebandit/automailer-backend/internal/sink"
    "github.com/unclebandit/automailer-backend/internal/transport"
    "github.com/unclebandit/automailer-backend/internal/validate"
)

// SettingsSource supplies the transport settings for a run.
type SettingsSource interface {
    Load() (model.TransportSettings, error)
}

// RunExecutor picks a queued run, loads everything it needs and drives the
// orchestrator to completion, persisting outcomes and the final counters.
type RunExecutor struct {
    Campaigns repository.CampaignRepositoryInterface
    Runs      repository.RunRepositoryInterface
    Outcomes  repository.OutcomeRepositoryInterface
    Settings  SettingsSource
    Transport transport.Transport
    Validator validate.Gate
    Sink      sink.Sink
}

// Execute runs one queued batch run to completion. Precondition failures
// mark the run failed without recording any outcome; row failures are
// already absorbed by the orchestrator.
func (e *RunExecutor) Execute(ctx context.Context, runID int) error {
    run, err := e.Runs.GetByID(runID)
    if err != nil {
        return err
    }
    if run == nil {
        return appErrors.NewRunNotFound(runID)
    }

    campaign, err := e.Campaigns.GetByID(run.CampaignID)
    if err != nil {
        return e.fail(runID, err)
    }
    if campaign == nil {
        return e.fail(runID, appErrors.NewCampaignNotFound(run.CampaignID))
    }

    ds, err := dataset.Load(run.DatasetPath)
    if err != nil {
        return e.fail(runID, err)
    }

    settings, err := e.Settings.Load()
    if err != nil {
        return e.fail(runID, err)
    }

    progressSink := e.Sink
    if progressSink == nil {
        progressSink = sink.LogSink{}
    }

    orch := &Orchestrator{
        Transport: e.Transport,
        Validator: e.Validator,
        Sink:      progressSink,
        OnOutcome: func(outcome model.Outcome) {
            if err := e.Outcomes.Create(runID, outcome); err != nil {
                log.Println("⚠️ failed to persist outcome for run", runID, ":", err)
            }
        },
    }

    done, err := orch.Start(ctx, RunConfig{
        Campaign:        campaign,
        Dataset:         ds,
        Settings:        settings,
        VerifyAddresses: run.VerifyAddresses,
        FailClosed:      run.FailClosed,
    })
    if err != nil {
        return e.fail(runID, err)
    }

    if err := e.Runs.UpdateStatus(runID, model.RunStatusRunning); err != nil {
        log.Println("⚠️ failed to mark run running:", err)
    }

    summary := <-done
    if err := e.Runs.Complete(runID, summary); err != nil {
        return err
    }
    return nil
}

func (e *RunExecutor) fail(runID int, cause error) error {
    if err := e.Runs.MarkFailed(runID, cause.Error()); err != nil {
        log.Println("⚠️ failed to mark run failed:", err)
    }
    return cause
}
