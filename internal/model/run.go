// internal/model/run.go
package model

import (
    "fmt"
    "time"
)

// Run lifecycle states.
const (
    RunStatusPending   = "pending"
    RunStatusRunning   = "running"
    RunStatusCompleted = "completed"
    RunStatusFailed    = "failed"
)

// BatchRun is one pass over a dataset for a campaign.
type BatchRun struct {
    ID              int        `db:"id" json:"id"`
    CampaignID      int        `db:"campaign_id" json:"campaign_id"`
    DatasetPath     string     `db:"dataset_path" json:"dataset_path"`
    Status          string     `db:"status" json:"status"` // pending, running, completed, failed
    VerifyAddresses bool       `db:"verify_addresses" json:"verify_addresses"`
    FailClosed      bool       `db:"fail_closed" json:"fail_closed"`
    Sent            int        `db:"sent_count" json:"sent_count"`
    Skipped         int        `db:"skipped_count" json:"skipped_count"`
    Failed          int        `db:"failed_count" json:"failed_count"`
    Total           int        `db:"total_count" json:"total_count"`
    LastError       string     `db:"last_error" json:"last_error,omitempty"`
    CreatedAt       time.Time  `db:"created_at" json:"created_at"`
    FinishedAt      *time.Time `db:"finished_at" json:"finished_at,omitempty"`
}

// Outcome statuses. Exactly one Outcome is recorded per dataset row.
const (
    OutcomeSent    = "sent"
    OutcomeSkipped = "skipped"
    OutcomeFailed  = "failed"
)

// Outcome is the terminal status of one row.
type Outcome struct {
    RowIndex  int    `db:"row_index" json:"row_index"`
    Recipient string `db:"recipient" json:"recipient"`
    Status    string `db:"status" json:"status"`
    Reason    string `db:"reason" json:"reason,omitempty"`
}

// RunSummary aggregates the outcomes of a finished run.
type RunSummary struct {
    Sent    int `json:"sent"`
    Skipped int `json:"skipped"`
    Failed  int `json:"failed"`
    Total   int `json:"total"`
}

// Line formats the summary the way it is written to the progress sink.
func (s RunSummary) Line() string {
    return fmt.Sprintf("Done. Sent: %d | Skipped: %d | Failed: %d | Total rows: %d",
        s.Sent, s.Skipped, s.Failed, s.Total)
}
