// internal/validate/validate.go
package validate

import (
    "context"
    "encoding/json"
    "net/http"
    "net/url"
    "time"
)

// Verdict is the gate's answer for one address. Indeterminate is not an
// error: it means the service could not judge (quota exhausted, API error)
// and the run configuration decides whether to proceed or skip.
type Verdict string

const (
    Deliverable   Verdict = "deliverable"
    Undeliverable Verdict = "undeliverable"
    Indeterminate Verdict = "indeterminate"
)

// Gate asks an external verification service whether an address is
// deliverable.
type Gate interface {
    Check(ctx context.Context, email string) Verdict
}

const defaultBaseURL = "https://emailvalidation.abstractapi.com/v1/"

// Client is the abstractapi-style verification client.
type Client struct {
    BaseURL string
    APIKey  string
    HTTP    *http.Client
}

func NewClient(apiKey string) *Client {
    return &Client{
        BaseURL: defaultBaseURL,
        APIKey:  apiKey,
        HTTP:    &http.Client{Timeout: 5 * time.Second},
    }
}

// Check maps the service response onto a Verdict. 200 with
// deliverability "DELIVERABLE" is Deliverable, any other 200 is
// Undeliverable, 422 (quota exceeded) and every other status or request
// failure are Indeterminate. It never fails for a well-formed response.
func (c *Client) Check(ctx context.Context, email string) Verdict {
    endpoint := c.BaseURL + "?api_key=" + url.QueryEscape(c.APIKey) + "&email=" + url.QueryEscape(email)

    req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
    if err != nil {
        return Indeterminate
    }

    resp, err := c.HTTP.Do(req)
    if err != nil {
        return Indeterminate
    }
    defer resp.Body.Close()

    if resp.StatusCode == http.StatusUnprocessableEntity {
        // quota exceeded, skip validation
        return Indeterminate
    }
    if resp.StatusCode != http.StatusOK {
        return Indeterminate
    }

    var payload struct {
        Deliverability string `json:"deliverability"`
    }
    if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
        return Indeterminate
    }

    if payload.Deliverability == "DELIVERABLE" {
        return Deliverable
    }
    return Undeliverable
}
