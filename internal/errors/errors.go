// internal/errors/errors.go
package appErrors

import (
    "fmt"
    "strings"
)

// ErrPrecondition is reported once before a run starts when the dataset,
// email column or transport settings are not usable. It is fatal to the run;
// no outcomes are recorded.
type ErrPrecondition struct {
    Missing []string
    Message string
}

func (e *ErrPrecondition) Error() string {
    if len(e.Missing) > 0 {
        return fmt.Sprintf("%s. Missing: [%s]", e.Message, strings.Join(e.Missing, ", "))
    }
    return e.Message
}

// Helper constructors
func NewPrecondition(message string) error {
    return &ErrPrecondition{Message: message}
}

func NewMissingSettings(missing []string) error {
    return &ErrPrecondition{Message: "Configure SMTP settings first", Missing: missing}
}

// ErrEnrichment is a row-scoped failure of the enrichment provider
// (unreachable API or malformed payload).
type ErrEnrichment struct {
    ID  string
    Err error
}

func (e *ErrEnrichment) Error() string {
    return fmt.Sprintf("enrichment failed for id %q: %v", e.ID, e.Err)
}

func (e *ErrEnrichment) Unwrap() error { return e.Err }

func NewEnrichment(id string, err error) error {
    return &ErrEnrichment{ID: id, Err: err}
}

// ErrDelivery is a row-scoped transport failure (connection, auth or
// recipient rejection). It never terminates the batch.
type ErrDelivery struct {
    Recipient string
    Err       error
}

func (e *ErrDelivery) Error() string {
    return fmt.Sprintf("delivery to %s failed: %v", e.Recipient, e.Err)
}

func (e *ErrDelivery) Unwrap() error { return e.Err }

func NewDelivery(recipient string, err error) error {
    return &ErrDelivery{Recipient: recipient, Err: err}
}

// ErrRunNotFound is a sentinel error
type ErrRunNotFound struct {
    RunID int
}

func (e *ErrRunNotFound) Error() string {
    return fmt.Sprintf("run with ID %d not found", e.RunID)
}

func NewRunNotFound(id int) error {
    return &ErrRunNotFound{RunID: id}
}

// ErrCampaignNotFound is a sentinel error
type ErrCampaignNotFound struct {
    CampaignID int
}

func (e *ErrCampaignNotFound) Error() string {
    return fmt.Sprintf("campaign with ID %d not found", e.CampaignID)
}

func NewCampaignNotFound(id int) error {
    return &ErrCampaignNotFound{CampaignID: id}
}

// ErrRunActive rejects a second concurrent run for the same campaign.
type ErrRunActive struct {
    CampaignID int
}

func (e *ErrRunActive) Error() string {
    return fmt.Sprintf("campaign %d already has an active run", e.CampaignID)
}

func NewRunActive(campaignID int) error {
    return &ErrRunActive{CampaignID: campaignID}
}
