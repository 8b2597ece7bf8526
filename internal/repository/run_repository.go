package repository

import (
    "database/sql"
    "time"

    "github.com/unclebandit/automailer-backend/internal/model"
)

type RunRepositoryInterface interface {
    Create(run *model.BatchRun) error
    GetByID(id int) (*model.BatchRun, error)
    UpdateStatus(id int, status string) error
    MarkFailed(id int, lastError string) error
    Complete(id int, summary model.RunSummary) error
    HasActiveRun(campaignID int) (bool, error)
    ListByCampaign(campaignID int) ([]model.BatchRun, error)
    GetCampaignStats(campaignID int) (map[string]int, error)
}

type RunRepository struct {
    DB *sql.DB
}

func (r *RunRepository) Create(run *model.BatchRun) error {
    run.CreatedAt = time.Now()
    if run.Status == "" {
        run.Status = model.RunStatusPending
    }
    query := `
        INSERT INTO runs (campaign_id, dataset_path, status, verify_addresses, fail_closed, total_count, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id
    `
    return r.DB.QueryRow(query, run.CampaignID, run.DatasetPath, run.Status, run.VerifyAddresses, run.FailClosed, run.Total, run.CreatedAt).Scan(&run.ID)
}

func (r *RunRepository) GetByID(id int) (*model.BatchRun, error) {
    query := `
        SELECT id, campaign_id, dataset_path, status, verify_addresses, fail_closed,
               sent_count, skipped_count, failed_count, total_count, last_error, created_at, finished_at
        FROM runs WHERE id=$1
    `
    var run model.BatchRun
    err := r.DB.QueryRow(query, id).Scan(
        &run.ID, &run.CampaignID, &run.DatasetPath, &run.Status,
        &run.VerifyAddresses, &run.FailClosed,
        &run.Sent, &run.Skipped, &run.Failed, &run.Total,
        &run.LastError, &run.CreatedAt, &run.FinishedAt,
    )
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, nil
        }
        return nil, err
    }
    return &run, nil
}

func (r *RunRepository) UpdateStatus(id int, status string) error {
    query := `UPDATE runs SET status=$1 WHERE id=$2`
    _, err := r.DB.Exec(query, status, id)
    return err
}

func (r *RunRepository) MarkFailed(id int, lastError string) error {
    query := `UPDATE runs SET status=$1, last_error=$2, finished_at=NOW() WHERE id=$3`
    _, err := r.DB.Exec(query, model.RunStatusFailed, lastError, id)
    return err
}

func (r *RunRepository) Complete(id int, summary model.RunSummary) error {
    query := `
        UPDATE runs
        SET status=$1, sent_count=$2, skipped_count=$3, failed_count=$4, total_count=$5, finished_at=NOW()
        WHERE id=$6
    `
    _, err := r.DB.Exec(query, model.RunStatusCompleted, summary.Sent, summary.Skipped, summary.Failed, summary.Total, id)
    return err
}

// HasActiveRun reports whether the campaign has a pending or running run.
// Starting a second run while one is active is rejected.
func (r *RunRepository) HasActiveRun(campaignID int) (bool, error) {
    var count int
    err := r.DB.QueryRow(`
        SELECT COUNT(*)
        FROM runs
        WHERE campaign_id = $1 AND status IN ($2, $3)`,
        campaignID, model.RunStatusPending, model.RunStatusRunning).Scan(&count)
    if err != nil {
        return false, err
    }
    return count > 0, nil
}

func (r *RunRepository) ListByCampaign(campaignID int) ([]model.BatchRun, error) {
    query := `
        SELECT id, campaign_id, dataset_path, status, verify_addresses, fail_closed,
               sent_count, skipped_count, failed_count, total_count, last_error, created_at, finished_at
        FROM runs WHERE campaign_id=$1 ORDER BY id DESC
    `
    rows, err := r.DB.Query(query, campaignID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    runs := []model.BatchRun{}
    for rows.Next() {
        var run model.BatchRun
        if err := rows.Scan(
            &run.ID, &run.CampaignID, &run.DatasetPath, &run.Status,
            &run.VerifyAddresses, &run.FailClosed,
            &run.Sent, &run.Skipped, &run.Failed, &run.Total,
            &run.LastError, &run.CreatedAt, &run.FinishedAt,
        ); err != nil {
            return nil, err
        }
        runs = append(runs, run)
    }
    return runs, nil
}

func (r *RunRepository) GetCampaignStats(campaignID int) (map[string]int, error) {
    query := `
        SELECT COALESCE(SUM(sent_count),0), COALESCE(SUM(skipped_count),0),
               COALESCE(SUM(failed_count),0), COALESCE(SUM(total_count),0)
        FROM runs
        WHERE campaign_id=$1 AND status=$2
    `
    stats := map[string]int{"sent": 0, "skipped": 0, "failed": 0, "total": 0}
    var sent, skipped, failed, total int
    err := r.DB.QueryRow(query, campaignID, model.RunStatusCompleted).Scan(&sent, &skipped, &failed, &total)
    if err != nil {
        return nil, err
    }
    stats["sent"] = sent
    stats["skipped"] = skipped
    stats["failed"] = failed
    stats["total"] = total
    return stats, nil
}

var _ RunRepositoryInterface = (*RunRepository)(nil)
