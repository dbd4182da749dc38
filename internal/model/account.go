// internal/model/account.go
package model

// Account import statuses. Write-once: pending -> sent or pending -> failed.
const (
    ImportPending = "pending"
    ImportSent    = "sent"
    ImportFailed  = "failed"
)

type Account struct {
    ID           int64  `db:"id" json:"id"`
    CampaignID   string `db:"campaign_id" json:"campaign_id"`
    AccountName  string `db:"account_name" json:"account_name"`
    Domain       string `db:"domain" json:"domain,omitempty"`
    AccountID    string `db:"account_id" json:"account_id,omitempty"`
    ImportStatus string `db:"import_status" json:"import_status"`
}
