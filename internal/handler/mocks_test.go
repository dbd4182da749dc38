package handler_test

import (
	appErrors "github.com/signalhouse/pipeline-backend/internal/errors"
	"github.com/signalhouse/pipeline-backend/internal/model"
)

// Minimal in-memory repositories for wiring real services under
// httptest.

type memCampaignRepo struct {
	campaigns map[string]*model.Campaign
}

func newMemCampaignRepo(ids ...string) *memCampaignRepo {
	r := &memCampaignRepo{campaigns: map[string]*model.Campaign{}}
	for _, id := range ids {
		r.campaigns[id] = &model.Campaign{ID: id, Name: id, Status: model.StatusEnriching}
	}
	return r
}

func (r *memCampaignRepo) Create(c *model.Campaign) error {
	r.campaigns[c.ID] = c
	return nil
}

func (r *memCampaignRepo) GetByID(id string) (*model.Campaign, error) {
	c, ok := r.campaigns[id]
	if !ok {
		return nil, appErrors.NewCampaignNotFound(id)
	}
	cp := *c
	return &cp, nil
}

func (r *memCampaignRepo) Exists(id string) (bool, error) {
	_, ok := r.campaigns[id]
	return ok, nil
}

func (r *memCampaignRepo) UpdateStatus(campaignID, status string) error {
	r.campaigns[campaignID].Status = status
	return nil
}

func (r *memCampaignRepo) UpdateStatusUnlessReady(campaignID, status string) error {
	if r.campaigns[campaignID].Status != model.StatusReady {
		r.campaigns[campaignID].Status = status
	}
	return nil
}

func (r *memCampaignRepo) ListCampaigns(offset, limit int, status string) ([]*model.Campaign, int, error) {
	return nil, 0, nil
}

type memAccountRepo struct {
	accounts []model.Account
}

func (r *memAccountRepo) BulkInsert(campaignID string, accounts []model.Account) error {
	for _, a := range accounts {
		a.CampaignID = campaignID
		r.accounts = append(r.accounts, a)
	}
	return nil
}

func (r *memAccountRepo) ListPending(campaignID string, includeFailed bool) ([]model.Account, error) {
	return nil, nil
}

func (r *memAccountRepo) UpdateImportStatus(id int64, status string) error { return nil }

func (r *memAccountRepo) CountByCampaign(campaignID string) (int, error) {
	return len(r.accounts), nil
}

func (r *memAccountRepo) CountByImportStatus(campaignID, status string) (int, error) {
	n := 0
	for _, a := range r.accounts {
		if a.ImportStatus == status {
			n++
		}
	}
	return n, nil
}

type memPersonRepo struct {
	people []model.EnrichedPerson
}

func (r *memPersonRepo) Insert(p *model.EnrichedPerson) error {
	p.ID = int64(len(r.people) + 1)
	r.people = append(r.people, *p)
	return nil
}

func (r *memPersonRepo) CountByCampaign(campaignID string) (int, error) {
	return len(r.people), nil
}

func (r *memPersonRepo) CountDistinctAccounts(campaignID string) (int, error) {
	names := map[string]bool{}
	for _, p := range r.people {
		names[p.AccountName] = true
	}
	return len(names), nil
}

func (r *memPersonRepo) ListForExport(campaignID string) ([]model.EnrichedPerson, error) {
	return r.people, nil
}

type memStabilityRepo struct {
	windows map[string][]int
}

func newMemStabilityRepo() *memStabilityRepo {
	return &memStabilityRepo{windows: map[string][]int{}}
}

func (r *memStabilityRepo) RecordObservation(campaignID string, peopleCount int) error {
	w := append(r.windows[campaignID], peopleCount)
	if len(w) > 5 {
		w = w[len(w)-5:]
	}
	r.windows[campaignID] = w
	return nil
}

func (r *memStabilityRepo) RecentCounts(campaignID string, limit int) ([]int, error) {
	w := r.windows[campaignID]
	out := []int{}
	for i := len(w) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, w[i])
	}
	return out, nil
}
