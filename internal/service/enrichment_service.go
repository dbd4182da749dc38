// internal/service/enrichment_service.go
package service

import (
    "encoding/json"

    "github.com/signalhouse/pipeline-backend/internal/model"
    "github.com/signalhouse/pipeline-backend/internal/repository"
)

// WebhookPayload is one enrichment callback from the external service.
// Everything except campaign_id is optional; whatever arrives is stored
// verbatim, duplicates included.
type WebhookPayload struct {
    CampaignID      string `json:"campaign_id"`
    AccountName     string `json:"account_name"`
    AccountID       string `json:"account_id"`
    FirstName       string `json:"first_name"`
    LastName        string `json:"last_name"`
    FullName        string `json:"full_name"`
    JobTitle        string `json:"job_title"`
    Persona         string `json:"persona"`
    PersonaScore    string `json:"persona_score"`
    CompanyDomain   string `json:"company_domain"`
    Domain          string `json:"domain"`
    LinkedinProfile string `json:"linkedin_profile"`
    EnrichPerson    string `json:"enrich_person"`
    FinalLocation   string `json:"final_location"`
}

type EnrichmentService struct {
    CampaignRepo repository.CampaignRepositoryInterface
    PersonRepo   repository.PersonRepositoryInterface
}

// Ingest appends one enriched person. Rejects unknown campaigns before
// writing anything; otherwise this is a plain append with no dedup or
// field validation. Moves the campaign to enriching unless it is
// already ready.
func (s *EnrichmentService) Ingest(payload *WebhookPayload) (*model.EnrichedPerson, error) {
    campaign, err := s.CampaignRepo.GetByID(payload.CampaignID)
    if err != nil {
        return nil, err
    }

    raw, err := json.Marshal(payload)
    if err != nil {
        return nil, err
    }

    person := &model.EnrichedPerson{
        CampaignID:      payload.CampaignID,
        AccountName:     payload.AccountName,
        AccountID:       payload.AccountID,
        FirstName:       payload.FirstName,
        LastName:        payload.LastName,
        FullName:        payload.FullName,
        JobTitle:        payload.JobTitle,
        Persona:         payload.Persona,
        PersonaScore:    payload.PersonaScore,
        CompanyDomain:   payload.CompanyDomain,
        Domain:          payload.Domain,
        LinkedinProfile: payload.LinkedinProfile,
        EnrichPerson:    payload.EnrichPerson,
        FinalLocation:   payload.FinalLocation,
        RawPayload:      raw,
    }

    if err := s.PersonRepo.Insert(person); err != nil {
        return nil, err
    }

    if campaign.Status != model.StatusReady {
        if err := s.CampaignRepo.UpdateStatusUnlessReady(payload.CampaignID, model.StatusEnriching); err != nil {
            return nil, err
        }
    }

    return person, nil
}
