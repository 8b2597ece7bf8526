package repository

import (
    "database/sql"
    "time"

    "github.com/unclebandit/automailer-backend/internal/model"
)

type OutcomeRepositoryInterface interface {
    Create(runID int, outcome model.Outcome) error
    ListByRun(runID int) ([]model.Outcome, error)
}

type OutcomeRepository struct {
    DB *sql.DB
}

// Create appends one row outcome. Outcomes are append-only events.
func (r *OutcomeRepository) Create(runID int, outcome model.Outcome) error {
    query := `
        INSERT INTO outcomes (run_id, row_index, recipient, status, reason, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `
    _, err := r.DB.Exec(query, runID, outcome.RowIndex, outcome.Recipient, outcome.Status, outcome.Reason, time.Now())
    return err
}

// ListByRun returns the run's outcomes in dataset row order.
func (r *OutcomeRepository) ListByRun(runID int) ([]model.Outcome, error) {
    query := `
        SELECT row_index, recipient, status, reason
        FROM outcomes
        WHERE run_id=$1
        ORDER BY row_index ASC
    `
    rows, err := r.DB.Query(query, runID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    outcomes := []model.Outcome{}
    for rows.Next() {
        var o model.Outcome
        if err := rows.Scan(&o.RowIndex, &o.Recipient, &o.Status, &o.Reason); err != nil {
            return nil, err
        }
        outcomes = append(outcomes, o)
    }
    return outcomes, nil
}

var _ OutcomeRepositoryInterface = (*OutcomeRepository)(nil)
