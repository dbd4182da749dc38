// internal/service/status_service.go
package service

import (
    "github.com/signalhouse/pipeline-backend/internal/model"
    "github.com/signalhouse/pipeline-backend/internal/repository"
)

// stablePolls is how many consecutive identical people counts mean the
// external service has gone quiet.
const stablePolls = 3

// CampaignStatus is the snapshot returned by every status poll.
type CampaignStatus struct {
    ID                 string `json:"id"`
    Name               string `json:"name"`
    Status             string `json:"status"`
    AccountCount       int    `json:"account_count"`
    AccountsSent       int    `json:"accounts_sent"`
    AccountsWithPeople int    `json:"accounts_with_people"`
    PeopleCount        int    `json:"enriched_people_count"`
    Stable             bool   `json:"stable"`
}

// StatusService infers workflow completion from repeated polls. The
// external enrichment service never says "done", so readiness is the
// combination of a flat people count across recent polls and every
// dispatched account having produced at least one person.
type StatusService struct {
    CampaignRepo  repository.CampaignRepositoryInterface
    AccountRepo   repository.AccountRepositoryInterface
    PersonRepo    repository.PersonRepositoryInterface
    StabilityRepo repository.StabilityRepositoryInterface
}

// EvaluateStatus recomputes counts, records the observation in the
// rolling window, and flips the campaign to ready once stable. Every
// call may mutate campaign status.
func (s *StatusService) EvaluateStatus(campaignID string) (*CampaignStatus, error) {
    campaign, err := s.CampaignRepo.GetByID(campaignID)
    if err != nil {
        return nil, err
    }

    accountCount, err := s.AccountRepo.CountByCampaign(campaignID)
    if err != nil {
        return nil, err
    }
    accountsSent, err := s.AccountRepo.CountByImportStatus(campaignID, model.ImportSent)
    if err != nil {
        return nil, err
    }
    peopleCount, err := s.PersonRepo.CountByCampaign(campaignID)
    if err != nil {
        return nil, err
    }
    accountsWithPeople, err := s.PersonRepo.CountDistinctAccounts(campaignID)
    if err != nil {
        return nil, err
    }

    if err := s.StabilityRepo.RecordObservation(campaignID, peopleCount); err != nil {
        return nil, err
    }
    recent, err := s.StabilityRepo.RecentCounts(campaignID, stablePolls)
    if err != nil {
        return nil, err
    }

    // Count is stable if the last 3 polls are identical and > 0
    countStable := len(recent) >= stablePolls && peopleCount > 0
    for _, c := range recent {
        if c != peopleCount {
            countStable = false
        }
    }

    // Covered: every dispatched account has at least one person
    accountsCovered := accountsSent > 0 && accountsWithPeople >= accountsSent

    stable := countStable && accountsCovered

    status := campaign.Status
    if stable && status == model.StatusEnriching {
        if err := s.CampaignRepo.UpdateStatus(campaignID, model.StatusReady); err != nil {
            return nil, err
        }
        status = model.StatusReady
    }

    return &CampaignStatus{
        ID:                 campaign.ID,
        Name:               campaign.Name,
        Status:             status,
        AccountCount:       accountCount,
        AccountsSent:       accountsSent,
        AccountsWithPeople: accountsWithPeople,
        PeopleCount:        peopleCount,
        Stable:             stable,
    }, nil
}
