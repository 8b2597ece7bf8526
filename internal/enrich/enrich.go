// internal/enrich/enrich.go
package enrich

import (
    "context"
    "encoding/json"
    "fmt"
    "io"
    "net/http"
    "time"

    appErrors "github.com/unclebandit/automailer-backend/internal/errors"
    "github.com/unclebandit/automailer-backend/internal/model"
    "github.com/unclebandit/automailer-backend/internal/render"
)

// Result is the per-row enrichment decision. Include=false carries the
// reason the row was excluded; Fields are merged into the row before
// rendering.
type Result struct {
    Include bool
    Reason  string
    Fields  map[string]any
}

// Provider fetches auxiliary data for one row id and decides whether the
// row should be mailed at all. Failures are row-scoped: the orchestrator
// records them as Failed and moves on.
type Provider interface {
    Enrich(ctx context.Context, id string, campaign *model.Campaign) (Result, error)
}

// ForCampaign picks the provider configured on the campaign.
func ForCampaign(c *model.Campaign) Provider {
    if c.SimulateAPI {
        return &SimulatedProvider{}
    }
    return NewHTTPProvider()
}

// SimulatedProvider is a deterministic stand-in for the live API so flows
// can be demonstrated without network access. Ids whose last character is
// an odd digit are flagged (included) with a fixed synthetic date; even
// digits are excluded. Anything else counts as flagged.
type SimulatedProvider struct{}

const simulatedDate = "2025-08-23"

func (p *SimulatedProvider) Enrich(ctx context.Context, id string, campaign *model.Campaign) (Result, error) {
    n := 1
    if len(id) > 0 {
        last := id[len(id)-1]
        if last >= '0' && last <= '9' {
            n = int(last - '0')
        }
    }
    if n%2 == 0 {
        return Result{Include: false, Reason: "not absent"}, nil
    }
    return Result{
        Include: true,
        Fields:  map[string]any{"date": simulatedDate},
    }, nil
}

// HTTPProvider calls the campaign's URL template with the row id
// substituted in and parses the JSON response. The payload must carry an
// "absent" boolean; every other top-level field is merged into the row.
type HTTPProvider struct {
    Client *http.Client
}

func NewHTTPProvider() *HTTPProvider {
    return &HTTPProvider{
        Client: &http.Client{Timeout: 5 * time.Second},
    }
}

func (p *HTTPProvider) Enrich(ctx context.Context, id string, campaign *model.Campaign) (Result, error) {
    url := render.Render(campaign.EnrichmentURL, model.Row{campaign.IDColumn: id})

    req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
    if err != nil {
        return Result{}, appErrors.NewEnrichment(id, err)
    }

    resp, err := p.Client.Do(req)
    if err != nil {
        return Result{}, appErrors.NewEnrichment(id, err)
    }
    defer resp.Body.Close()

    if resp.StatusCode < 200 || resp.StatusCode > 299 {
        return Result{}, appErrors.NewEnrichment(id, fmt.Errorf("API returned status %d", resp.StatusCode))
    }

    body, err := io.ReadAll(resp.Body)
    if err != nil {
        return Result{}, appErrors.NewEnrichment(id, err)
    }

    var payload map[string]any
    if err := json.Unmarshal(body, &payload); err != nil {
        return Result{}, appErrors.NewEnrichment(id, fmt.Errorf("malformed payload: %v", err))
    }

    absent, _ := payload["absent"].(bool)
    if !absent {
        return Result{Include: false, Reason: "not absent"}, nil
    }

    fields := make(map[string]any, len(payload))
    for k, v := range payload {
        if k == "absent" {
            continue
        }
        fields[k] = v
    }
    return Result{Include: true, Fields: fields}, nil
}
