// internal/errors/errors.go
package appErrors

import "fmt"

// ErrCampaignNotFound is a sentinel error
type ErrCampaignNotFound struct {
    CampaignID string
}

func (e *ErrCampaignNotFound) Error() string {
    return fmt.Sprintf("campaign '%s' not found", e.CampaignID)
}

// Helper constructor
func NewCampaignNotFound(id string) error {
    return &ErrCampaignNotFound{CampaignID: id}
}

// ErrCampaignExists signals a duplicate campaign id on create
type ErrCampaignExists struct {
    CampaignID string
}

func (e *ErrCampaignExists) Error() string {
    return fmt.Sprintf("campaign '%s' already exists", e.CampaignID)
}

func NewCampaignExists(id string) error {
    return &ErrCampaignExists{CampaignID: id}
}
