// internal/model/campaign.go
package model

import "time"

type Campaign struct {
    ID              int        `db:"id" json:"id"`
    Name            string     `db:"name" json:"name"`
    SubjectTemplate string     `db:"subject_template" json:"subject_template"`
    BodyTemplate    string     `db:"body_template" json:"body_template"`
    EmailColumn     string     `db:"email_column" json:"email_column"`
    IDColumn        string     `db:"id_column" json:"id_column,omitempty"`
    EnrichmentURL   string     `db:"enrichment_url" json:"enrichment_url,omitempty"`
    SimulateAPI     bool       `db:"simulate_api" json:"simulate_api"`
    CreatedAt       time.Time  `db:"created_at" json:"created_at"`
    UpdatedAt       *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// EnrichmentEnabled reports whether rows should be enriched before rendering,
// either against the live API or the simulator.
func (c *Campaign) EnrichmentEnabled() bool {
    return c.SimulateAPI || c.EnrichmentURL != ""
}
