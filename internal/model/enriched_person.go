// internal/model/enriched_person.go
package model

import "time"

// EnrichedPerson is one callback result from the enrichment service.
// Rows are append-only; duplicates and partial updates from the external
// system are stored as-is and never merged.
type EnrichedPerson struct {
    ID              int64     `db:"id" json:"id"`
    CampaignID      string    `db:"campaign_id" json:"campaign_id"`
    AccountName     string    `db:"account_name" json:"account_name,omitempty"`
    AccountID       string    `db:"account_id" json:"account_id,omitempty"`
    FirstName       string    `db:"first_name" json:"first_name,omitempty"`
    LastName        string    `db:"last_name" json:"last_name,omitempty"`
    FullName        string    `db:"full_name" json:"full_name,omitempty"`
    JobTitle        string    `db:"job_title" json:"job_title,omitempty"`
    Persona         string    `db:"persona" json:"persona,omitempty"`
    PersonaScore    string    `db:"persona_score" json:"persona_score,omitempty"`
    CompanyDomain   string    `db:"company_domain" json:"company_domain,omitempty"`
    Domain          string    `db:"domain" json:"domain,omitempty"`
    LinkedinProfile string    `db:"linkedin_profile" json:"linkedin_profile,omitempty"`
    EnrichPerson    string    `db:"enrich_person" json:"enrich_person,omitempty"`
    FinalLocation   string    `db:"final_location" json:"final_location,omitempty"`
    RawPayload      []byte    `db:"raw_payload" json:"-"`
    CreatedAt       time.Time `db:"created_at" json:"created_at"`
}
