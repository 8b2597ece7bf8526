package repository

import (
    "database/sql"
    "time"

    "github.com/unclebandit/automailer-backend/internal/model"
)

type CampaignRepositoryInterface interface {
    Create(c *model.Campaign) error
    GetByID(id int) (*model.Campaign, error)
    Update(c *model.Campaign) error
    ListCampaigns(offset, limit int) ([]*model.Campaign, int, error)
}

type CampaignRepository struct {
    DB *sql.DB
}

func (r *CampaignRepository) Create(c *model.Campaign) error {
    c.CreatedAt = time.Now()
    query := `
        INSERT INTO campaigns (name, subject_template, body_template, email_column, id_column, enrichment_url, simulate_api, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id
    `
    return r.DB.QueryRow(query, c.Name, c.SubjectTemplate, c.BodyTemplate, c.EmailColumn, c.IDColumn, c.EnrichmentURL, c.SimulateAPI, c.CreatedAt).Scan(&c.ID)
}

func (r *CampaignRepository) Update(c *model.Campaign) error {
    query := `
        UPDATE campaigns
        SET name=$1, subject_template=$2, body_template=$3, email_column=$4, id_column=$5, enrichment_url=$6, simulate_api=$7, updated_at=NOW()
        WHERE id=$8
    `
    _, err := r.DB.Exec(query, c.Name, c.SubjectTemplate, c.BodyTemplate, c.EmailColumn, c.IDColumn, c.EnrichmentURL, c.SimulateAPI, c.ID)
    return err
}

func (r *CampaignRepository) GetByID(id int) (*model.Campaign, error) {
    query := `
        SELECT id, name, subject_template, body_template, email_column, id_column, enrichment_url, simulate_api, created_at, updated_at
        FROM campaigns WHERE id=$1
    `
    var c model.Campaign
    err := r.DB.QueryRow(query, id).Scan(&c.ID, &c.Name, &c.SubjectTemplate, &c.BodyTemplate, &c.EmailColumn, &c.IDColumn, &c.EnrichmentURL, &c.SimulateAPI, &c.CreatedAt, &c.UpdatedAt)
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, nil
        }
        return nil, err
    }
    return &c, nil
}

func (r *CampaignRepository) ListCampaigns(offset, limit int) ([]*model.Campaign, int, error) {
    campaigns := []*model.Campaign{}
    query := `
        SELECT id, name, subject_template, body_template, email_column, id_column, enrichment_url, simulate_api, created_at, updated_at
        FROM campaigns ORDER BY id DESC LIMIT $1 OFFSET $2
    `
    rows, err := r.DB.Query(query, limit, offset)
    if err != nil {
        return nil, 0, err
    }
    defer rows.Close()

    for rows.Next() {
        c := &model.Campaign{}
        if err := rows.Scan(&c.ID, &c.Name, &c.SubjectTemplate, &c.BodyTemplate, &c.EmailColumn, &c.IDColumn, &c.EnrichmentURL, &c.SimulateAPI, &c.CreatedAt, &c.UpdatedAt); err != nil {
            return nil, 0, err
        }
        campaigns = append(campaigns, c)
    }

    var total int
    if err := r.DB.QueryRow(`SELECT COUNT(*) FROM campaigns`).Scan(&total); err != nil {
        return nil, 0, err
    }

    return campaigns, total, nil
}

var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)
