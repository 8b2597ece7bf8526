// internal/service/orchestrator.go
package service

import (
    "context"
    "fmt"
    "sync"

    appErrors "github.com/unclebandit/automailer-backend/internal/errors"
    "github.com/unclebandit/automailer-backend/internal/enrich"
    "github.com/unclebandit/automailer-backend/internal/model"
    "github.com/unclebandit/automailer-backend/internal/render"
    "github.com/unclebandit/automailer-backend/internal/sink"
    "github.com/unclebandit/automailer-backend/internal/transport"
    "github.com/unclebandit/automailer-backend/internal/validate"
)

// Orchestrator states.
const (
    StateIdle       = "idle"
    StateValidating = "validating"
    StateRunning    = "running"
    StateCompleted  = "completed"
    StateErrored    = "errored"
)

// RunConfig is the frozen snapshot one run executes against. The campaign
// and settings are read-only once the run starts.
type RunConfig struct {
    Campaign        *model.Campaign
    Dataset         *model.Dataset
    Settings        model.TransportSettings
    VerifyAddresses bool
    // FailClosed decides what happens when the validation gate cannot
    // judge an address: true skips the row, false (the default) sends
    // anyway.
    FailClosed bool
}

// Orchestrator drives one pass over all dataset rows on a background
// goroutine: enrichment, inclusion check, rendering, validation, delivery.
// Failures are isolated per row; exactly one Outcome is recorded per row,
// in dataset order. At most one run may be active at a time.
type Orchestrator struct {
    Transport transport.Transport
    Enricher  enrich.Provider // defaults per campaign when nil
    Validator validate.Gate   // required when VerifyAddresses is set
    Sink      sink.Sink

    // OnOutcome, when set, observes each outcome as it is recorded.
    // It is called from the worker goroutine, in row order.
    OnOutcome func(outcome model.Outcome)

    mu    sync.Mutex
    state string
}

// State returns the current run state.
func (o *Orchestrator) State() string {
    o.mu.Lock()
    defer o.mu.Unlock()
    if o.state == "" {
        return StateIdle
    }
    return o.state
}

// Start validates preconditions and dispatches the run onto a background
// goroutine. The returned channel delivers the run summary once the last
// row has been processed. A precondition violation is reported here and
// no outcome is ever recorded for it.
func (o *Orchestrator) Start(ctx context.Context, cfg RunConfig) (<-chan model.RunSummary, error) {
    o.mu.Lock()
    if o.state == StateValidating || o.state == StateRunning {
        o.mu.Unlock()
        campaignID := 0
        if cfg.Campaign != nil {
            campaignID = cfg.Campaign.ID
        }
        return nil, appErrors.NewRunActive(campaignID)
    }
    o.state = StateValidating
    o.mu.Unlock()

    if err := o.checkPreconditions(cfg); err != nil {
        o.setState(StateErrored)
        return nil, err
    }

    o.setState(StateRunning)
    done := make(chan model.RunSummary, 1)
    go o.run(ctx, cfg, done)
    return done, nil
}

func (o *Orchestrator) setState(state string) {
    o.mu.Lock()
    o.state = state
    o.mu.Unlock()
}

func (o *Orchestrator) checkPreconditions(cfg RunConfig) error {
    if cfg.Campaign == nil {
        return appErrors.NewPrecondition("no campaign configured")
    }
    if cfg.Dataset == nil {
        return appErrors.NewPrecondition("no dataset loaded")
    }
    if !cfg.Dataset.HasColumn(cfg.Campaign.EmailColumn) {
        return appErrors.NewPrecondition(
            fmt.Sprintf("Email column '%s' not found", cfg.Campaign.EmailColumn))
    }
    if missing := cfg.Settings.MissingFields(); len(missing) > 0 {
        return appErrors.NewMissingSettings(missing)
    }
    if cfg.VerifyAddresses && o.Validator == nil {
        return appErrors.NewPrecondition("address verification enabled but no validator configured")
    }
    if o.Transport == nil {
        return appErrors.NewPrecondition("no transport configured")
    }
    return nil
}

func (o *Orchestrator) run(ctx context.Context, cfg RunConfig, done chan<- model.RunSummary) {
    summary := model.RunSummary{Total: len(cfg.Dataset.Rows)}

    for i, row := range cfg.Dataset.Rows {
        if ctx.Err() != nil {
            // cooperative cancellation, checked between rows only
            break
        }

        outcome := o.processRow(ctx, cfg, row)
        outcome.RowIndex = i

        switch outcome.Status {
        case model.OutcomeSent:
            summary.Sent++
            o.write(fmt.Sprintf("✔ Sent to %s", outcome.Recipient))
        case model.OutcomeSkipped:
            summary.Skipped++
            o.write(fmt.Sprintf("→ Skipped %s: %s", outcome.Recipient, outcome.Reason))
        case model.OutcomeFailed:
            summary.Failed++
            o.write(fmt.Sprintf("✖ Failed %s: %s", outcome.Recipient, outcome.Reason))
        }

        if o.OnOutcome != nil {
            o.OnOutcome(outcome)
        }
    }

    o.write(summary.Line())
    o.setState(StateCompleted)
    done <- summary
    close(done)
}

func (o *Orchestrator) write(line string) {
    if o.Sink != nil {
        o.Sink.Write(line)
    }
}

// processRow performs the per-row steps and converts every failure into a
// row-scoped outcome. Nothing here may terminate the run.
func (o *Orchestrator) processRow(ctx context.Context, cfg RunConfig, row model.Row) model.Outcome {
    c := cfg.Campaign
    to := render.Stringify(row[c.EmailColumn])

    merged := row
    if c.EnrichmentEnabled() {
        idVal, ok := row[c.IDColumn]
        if !ok {
            return model.Outcome{
                Recipient: to,
                Status:    model.OutcomeFailed,
                Reason:    fmt.Sprintf("ID column '%s' not found in row", c.IDColumn),
            }
        }

        provider := o.Enricher
        if provider == nil {
            provider = enrich.ForCampaign(c)
        }

        result, err := provider.Enrich(ctx, render.Stringify(idVal), c)
        if err != nil {
            return model.Outcome{Recipient: to, Status: model.OutcomeFailed, Reason: err.Error()}
        }
        if !result.Include {
            return model.Outcome{Recipient: to, Status: model.OutcomeSkipped, Reason: result.Reason}
        }
        merged = row.Merged(result.Fields)
    }

    msg := model.NewRenderedMessage(
        render.Render(c.SubjectTemplate, merged),
        render.Render(c.BodyTemplate, merged),
    )

    if cfg.VerifyAddresses {
        switch o.Validator.Check(ctx, to) {
        case validate.Undeliverable:
            return model.Outcome{Recipient: to, Status: model.OutcomeSkipped, Reason: "address undeliverable"}
        case validate.Indeterminate:
            if cfg.FailClosed {
                return model.Outcome{Recipient: to, Status: model.OutcomeSkipped, Reason: "address could not be verified"}
            }
            // fail open: could not judge, proceed with the send
        }
    }

    if err := o.Transport.Deliver(ctx, cfg.Settings, to, msg); err != nil {
        return model.Outcome{Recipient: to, Status: model.OutcomeFailed, Reason: err.Error()}
    }

    return model.Outcome{Recipient: to, Status: model.OutcomeSent}
}
