// internal/model/campaign.go
package model

import "time"

// Campaign lifecycle statuses. A campaign only moves forward:
// created -> importing -> enriching -> ready.
const (
    StatusCreated   = "created"
    StatusImporting = "importing"
    StatusEnriching = "enriching"
    StatusReady     = "ready"
)

type Campaign struct {
    ID        string     `db:"id" json:"id"`
    Name      string     `db:"name" json:"name"`
    Status    string     `db:"status" json:"status"`
    CreatedBy string     `db:"created_by" json:"created_by,omitempty"`
    CreatedAt time.Time  `db:"created_at" json:"created_at"`
    UpdatedAt *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}
