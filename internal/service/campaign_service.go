// internal/service/campaign_service.go
package service

import (
    "fmt"
    "strings"

    "github.com/unclebandit/automailer-backend/internal/dataset"
    appErrors "github.com/unclebandit/automailer-backend/internal/errors"
    "github.com/unclebandit/automailer-backend/internal/model"
    "github.com/unclebandit/automailer-backend/internal/queue"
    "github.com/unclebandit/automailer-backend/internal/render"
    "github.com/unclebandit/automailer-backend/internal/repository"
)

type CampaignService struct {
    CampaignRepo repository.CampaignRepositoryInterface
    RunRepo      repository.RunRepositoryInterface
    Queue        queue.Publisher
}

// CampaignDetails is a campaign plus its aggregated send stats.
type CampaignDetails struct {
    ID              int            `json:"id"`
    Name            string         `json:"name"`
    SubjectTemplate string         `json:"subject_template"`
    BodyTemplate    string         `json:"body_template"`
    EmailColumn     string         `json:"email_column"`
    IDColumn        string         `json:"id_column,omitempty"`
    EnrichmentURL   string         `json:"enrichment_url,omitempty"`
    SimulateAPI     bool           `json:"simulate_api"`
    Stats           map[string]int `json:"stats"`
}

// PreviewEntry is one rendered sample row.
type PreviewEntry struct {
    To      string `json:"to"`
    Subject string `json:"subject"`
    Body    string `json:"body"`
}

func (s *CampaignService) CreateCampaign(name, subjectTpl, bodyTpl, emailColumn, idColumn, enrichmentURL string, simulateAPI bool) (*model.Campaign, error) {
    if strings.TrimSpace(bodyTpl) == "" {
        return nil, fmt.Errorf("template cannot be empty")
    }
    if emailColumn == "" {
        emailColumn = "email"
    }

    c := &model.Campaign{
        Name:            name,
        SubjectTemplate: subjectTpl,
        BodyTemplate:    bodyTpl,
        EmailColumn:     emailColumn,
        IDColumn:        idColumn,
        EnrichmentURL:   enrichmentURL,
        SimulateAPI:     simulateAPI,
    }

    if err := s.CampaignRepo.Create(c); err != nil {
        return nil, err
    }

    return c, nil
}

// ListCampaigns fetches campaigns with pagination
func (s *CampaignService) ListCampaigns(page, pageSize int) ([]model.Campaign, map[string]int, error) {
    if page < 1 {
        page = 1
    }
    if pageSize < 1 {
        pageSize = 20
    }
    if pageSize > 100 {
        pageSize = 100
    }
    offset := (page - 1) * pageSize

    ptrs, total, err := s.CampaignRepo.ListCampaigns(offset, pageSize)
    if err != nil {
        return nil, nil, err
    }

    campaigns := make([]model.Campaign, len(ptrs))
    for i, c := range ptrs {
        campaigns[i] = *c
    }

    totalPages := (total + pageSize - 1) / pageSize
    pagination := map[string]int{
        "page":        page,
        "page_size":   pageSize,
        "total_count": total,
        "total_pages": totalPages,
    }

    return campaigns, pagination, nil
}

func (s *CampaignService) GetCampaignDetailsWithStats(campaignID int) (*CampaignDetails, error) {
    campaign, err := s.CampaignRepo.GetByID(campaignID)
    if err != nil {
        return nil, err
    }
    if campaign == nil {
        return nil, appErrors.NewCampaignNotFound(campaignID)
    }

    stats, err := s.RunRepo.GetCampaignStats(campaignID)
    if err != nil {
        return nil, err
    }

    return &CampaignDetails{
        ID:              campaign.ID,
        Name:            campaign.Name,
        SubjectTemplate: campaign.SubjectTemplate,
        BodyTemplate:    campaign.BodyTemplate,
        EmailColumn:     campaign.EmailColumn,
        IDColumn:        campaign.IDColumn,
        EnrichmentURL:   campaign.EnrichmentURL,
        SimulateAPI:     campaign.SimulateAPI,
        Stats:           stats,
    }, nil
}

// Preview renders the first few rows of a dataset without sending or
// enriching anything, so templates can be checked before a run.
func (s *CampaignService) Preview(campaignID int, datasetPath string, limit int) ([]PreviewEntry, error) {
    campaign, err := s.CampaignRepo.GetByID(campaignID)
    if err != nil {
        return nil, err
    }
    if campaign == nil {
        return nil, appErrors.NewCampaignNotFound(campaignID)
    }

    ds, err := dataset.Load(datasetPath)
    if err != nil {
        return nil, err
    }
    if !ds.HasColumn(campaign.EmailColumn) {
        return nil, appErrors.NewPrecondition(
            fmt.Sprintf("Email column '%s' not found", campaign.EmailColumn))
    }

    if limit < 1 {
        limit = 5
    }
    if limit > len(ds.Rows) {
        limit = len(ds.Rows)
    }

    entries := make([]PreviewEntry, 0, limit)
    for _, row := range ds.Rows[:limit] {
        entries = append(entries, PreviewEntry{
            To:      render.Stringify(row[campaign.EmailColumn]),
            Subject: render.Render(campaign.SubjectTemplate, row),
            Body:    render.Render(campaign.BodyTemplate, row),
        })
    }

    return entries, nil
}

// StartRun creates a pending run for the campaign and queues it for the
// worker. Dataset problems and a still-active run are reported here,
// before anything is queued.
func (s *CampaignService) StartRun(campaignID int, datasetPath string, verifyAddresses, failClosed bool) (*model.BatchRun, error) {
    campaign, err := s.CampaignRepo.GetByID(campaignID)
    if err != nil {
        return nil, err
    }
    if campaign == nil {
        return nil, appErrors.NewCampaignNotFound(campaignID)
    }

    // Surface unreadable or malformed datasets before the run exists.
    ds, err := dataset.Load(datasetPath)
    if err != nil {
        return nil, err
    }
    if !ds.HasColumn(campaign.EmailColumn) {
        return nil, appErrors.NewPrecondition(
            fmt.Sprintf("Email column '%s' not found", campaign.EmailColumn))
    }

    active, err := s.RunRepo.HasActiveRun(campaignID)
    if err != nil {
        return nil, err
    }
    if active {
        return nil, appErrors.NewRunActive(campaignID)
    }

    run := &model.BatchRun{
        CampaignID:      campaignID,
        DatasetPath:     datasetPath,
        Status:          model.RunStatusPending,
        VerifyAddresses: verifyAddresses,
        FailClosed:      failClosed,
        Total:           len(ds.Rows),
    }
    if err := s.RunRepo.Create(run); err != nil {
        return nil, err
    }

    if err := s.Queue.Publish(queue.RunTopic, queue.RunJob{RunID: run.ID}); err != nil {
        _ = s.RunRepo.MarkFailed(run.ID, "failed to enqueue run: "+err.Error())
        return nil, err
    }

    return run, nil
}
