// internal/controller/campaign_controller.go
package controller

import (
    "encoding/json"
    "errors"
    "net/http"
    "strconv"

    "github.com/go-chi/chi/v5"

    appErrors "github.com/unclebandit/automailer-backend/internal/errors"
    "github.com/unclebandit/automailer-backend/internal/service"
)

type CampaignController struct {
    CampaignService *service.CampaignService
}

func (c *CampaignController) CreateCampaign(w http.ResponseWriter, r *http.Request) {
    var body struct {
        Name            string `json:"name"`
        SubjectTemplate string `json:"subject_template"`
        BodyTemplate    string `json:"body_template"`
        EmailColumn     string `json:"email_column"`
        IDColumn        string `json:"id_column"`
        EnrichmentURL   string `json:"enrichment_url"`
        SimulateAPI     bool   `json:"simulate_api"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }

    campaign, err := c.CampaignService.CreateCampaign(
        body.Name, body.SubjectTemplate, body.BodyTemplate,
        body.EmailColumn, body.IDColumn, body.EnrichmentURL, body.SimulateAPI,
    )
    if err != nil {
        http.Error(w, err.Error(), http.StatusInternalServerError)
        return
    }

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(campaign)
}

func (c *CampaignController) ListCampaigns(w http.ResponseWriter, r *http.Request) {
    page, _ := strconv.Atoi(r.URL.Query().Get("page"))
    pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))

    if page < 1 {
        page = 1
    }
    if pageSize < 1 {
        pageSize = 20
    }

    campaigns, pagination, err := c.CampaignService.ListCampaigns(page, pageSize)
    if err != nil {
        http.Error(w, err.Error(), http.StatusInternalServerError)
        return
    }

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(map[string]interface{}{
        "data":       campaigns,
        "pagination": pagination,
    })
}

func (c *CampaignController) GetCampaignDetails(w http.ResponseWriter, r *http.Request) {
    idStr := chi.URLParam(r, "id")
    id, err := strconv.Atoi(idStr)
    if err != nil {
        http.Error(w, "invalid campaign id", http.StatusBadRequest)
        return
    }

    details, err := c.CampaignService.GetCampaignDetailsWithStats(id)
    if err != nil {
        writeServiceError(w, err)
        return
    }

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(details)
}

// PreviewCampaign renders the first rows of a dataset without sending.
func (c *CampaignController) PreviewCampaign(w http.ResponseWriter, r *http.Request) {
    idStr := chi.URLParam(r, "id")
    id, _ := strconv.Atoi(idStr)

    var body struct {
        DatasetPath string `json:"dataset_path"`
        Limit       int    `json:"limit"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }

    entries, err := c.CampaignService.Preview(id, body.DatasetPath, body.Limit)
    if err != nil {
        writeServiceError(w, err)
        return
    }

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(map[string]interface{}{
        "campaign_id": id,
        "previews":    entries,
    })
}

// StartRun queues a batch run for the campaign. The actual sending happens
// on the worker; the caller gets the pending run back immediately.
func (c *CampaignController) StartRun(w http.ResponseWriter, r *http.Request) {
    idStr := chi.URLParam(r, "id")
    id, _ := strconv.Atoi(idStr)

    var body struct {
        DatasetPath     string `json:"dataset_path"`
        VerifyAddresses bool   `json:"verify_addresses"`
        FailClosed      bool   `json:"fail_closed"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }

    run, err := c.CampaignService.StartRun(id, body.DatasetPath, body.VerifyAddresses, body.FailClosed)
    if err != nil {
        writeServiceError(w, err)
        return
    }

    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(http.StatusAccepted)
    json.NewEncoder(w).Encode(map[string]interface{}{
        "run_id":      run.ID,
        "campaign_id": run.CampaignID,
        "status":      run.Status,
        "total_rows":  run.Total,
    })
}

func writeServiceError(w http.ResponseWriter, err error) {
    var notFound *appErrors.ErrCampaignNotFound
    var runActive *appErrors.ErrRunActive
    var precondition *appErrors.ErrPrecondition

    switch {
    case errors.As(err, &notFound):
        http.Error(w, err.Error(), http.StatusNotFound)
    case errors.As(err, &runActive):
        http.Error(w, err.Error(), http.StatusConflict)
    case errors.As(err, &precondition):
        http.Error(w, err.Error(), http.StatusBadRequest)
    default:
        http.Error(w, err.Error(), http.StatusInternalServerError)
    }
}
