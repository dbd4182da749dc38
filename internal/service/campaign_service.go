// internal/service/campaign_service.go
package service

import (
    "regexp"
    "strings"
    "time"

    appErrors "github.com/signalhouse/pipeline-backend/internal/errors"
    "github.com/signalhouse/pipeline-backend/internal/model"
    "github.com/signalhouse/pipeline-backend/internal/repository"
)

type CampaignService struct {
    CampaignRepo repository.CampaignRepositoryInterface
    AccountRepo  repository.AccountRepositoryInterface
}

type AccountInput struct {
    AccountName string `json:"account_name"`
    Domain      string `json:"domain"`
    AccountID   string `json:"account_id"`
}

type CreateCampaignResult struct {
    ID           string `json:"id"`
    Name         string `json:"name"`
    Status       string `json:"status"`
    CreatedBy    string `json:"created_by,omitempty"`
    AccountCount int    `json:"account_count"`
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// CampaignID derives the id from the creation date and a slug of the
// name, e.g. "2026-08-31_acme-expansion".
func CampaignID(name string, on time.Time) string {
    slug := slugPattern.ReplaceAllString(strings.ToLower(name), "-")
    slug = strings.Trim(slug, "-")
    return on.Format("2006-01-02") + "_" + slug
}

// CreateCampaign stores a new campaign and its accounts, all pending.
func (s *CampaignService) CreateCampaign(name, createdBy string, accounts []AccountInput) (*CreateCampaignResult, error) {
    id := CampaignID(name, time.Now())

    exists, err := s.CampaignRepo.Exists(id)
    if err != nil {
        return nil, err
    }
    if exists {
        return nil, appErrors.NewCampaignExists(id)
    }

    campaign := &model.Campaign{
        ID:        id,
        Name:      name,
        Status:    model.StatusCreated,
        CreatedBy: createdBy,
    }
    if err := s.CampaignRepo.Create(campaign); err != nil {
        return nil, err
    }

    rows := make([]model.Account, len(accounts))
    for i, a := range accounts {
        rows[i] = model.Account{
            AccountName: a.AccountName,
            Domain:      a.Domain,
            AccountID:   a.AccountID,
        }
    }
    if err := s.AccountRepo.BulkInsert(id, rows); err != nil {
        return nil, err
    }

    return &CreateCampaignResult{
        ID:           id,
        Name:         name,
        Status:       campaign.Status,
        CreatedBy:    createdBy,
        AccountCount: len(accounts),
    }, nil
}

// ListCampaigns fetches campaigns with pagination
func (s *CampaignService) ListCampaigns(page, pageSize int, status string) ([]model.Campaign, map[string]int, error) {
    if page < 1 {
        page = 1
    }
    if pageSize < 1 {
        pageSize = 20
    }
    if pageSize > 100 {
        pageSize = 100
    }
    offset := (page - 1) * pageSize

    ptrs, total, err := s.CampaignRepo.ListCampaigns(offset, pageSize, status)
    if err != nil {
        return nil, nil, err
    }

    campaigns := make([]model.Campaign, len(ptrs))
    for i, c := range ptrs {
        campaigns[i] = *c
    }

    totalPages := (total + pageSize - 1) / pageSize
    pagination := map[string]int{
        "page":        page,
        "page_size":   pageSize,
        "total_count": total,
        "total_pages": totalPages,
    }

    return campaigns, pagination, nil
}
