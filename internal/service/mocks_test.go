package service_test

import (
	"fmt"
	"sync"

	"github.com/signalhouse/pipeline-backend/internal/clay"
	appErrors "github.com/signalhouse/pipeline-backend/internal/errors"
	"github.com/signalhouse/pipeline-backend/internal/model"
	"github.com/signalhouse/pipeline-backend/internal/repository"
)

// In-memory fakes for the repository interfaces. Stateful so tests can
// run multi-step scenarios (dispatch then poll then ingest).

type fakeCampaignRepo struct {
	mu        sync.Mutex
	campaigns map[string]*model.Campaign
	statusLog map[string][]string
}

func newFakeCampaignRepo() *fakeCampaignRepo {
	return &fakeCampaignRepo{
		campaigns: map[string]*model.Campaign{},
		statusLog: map[string][]string{},
	}
}

func (r *fakeCampaignRepo) add(id, status string) {
	r.campaigns[id] = &model.Campaign{ID: id, Name: id, Status: status}
}

func (r *fakeCampaignRepo) Create(c *model.Campaign) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.campaigns[c.ID] = c
	return nil
}

func (r *fakeCampaignRepo) GetByID(id string) (*model.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.campaigns[id]
	if !ok {
		return nil, appErrors.NewCampaignNotFound(id)
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCampaignRepo) Exists(id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.campaigns[id]
	return ok, nil
}

func (r *fakeCampaignRepo) UpdateStatus(campaignID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.campaigns[campaignID]
	if !ok {
		return appErrors.NewCampaignNotFound(campaignID)
	}
	c.Status = status
	r.statusLog[campaignID] = append(r.statusLog[campaignID], status)
	return nil
}

func (r *fakeCampaignRepo) UpdateStatusUnlessReady(campaignID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.campaigns[campaignID]
	if !ok {
		return appErrors.NewCampaignNotFound(campaignID)
	}
	if c.Status == model.StatusReady {
		return nil
	}
	c.Status = status
	r.statusLog[campaignID] = append(r.statusLog[campaignID], status)
	return nil
}

func (r *fakeCampaignRepo) ListCampaigns(offset, limit int, status string) ([]*model.Campaign, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := []*model.Campaign{}
	for _, c := range r.campaigns {
		if status != "" && c.Status != status {
			continue
		}
		all = append(all, c)
	}
	total := len(all)
	if offset > len(all) {
		offset = len(all)
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

type fakeAccountRepo struct {
	mu       sync.Mutex
	nextID   int64
	accounts []*model.Account
}

func (r *fakeAccountRepo) add(campaignID, name, status string) *model.Account {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	a := &model.Account{
		ID:           r.nextID,
		CampaignID:   campaignID,
		AccountName:  name,
		ImportStatus: status,
	}
	r.accounts = append(r.accounts, a)
	return a
}

func (r *fakeAccountRepo) BulkInsert(campaignID string, accounts []model.Account) error {
	for _, a := range accounts {
		r.add(campaignID, a.AccountName, model.ImportPending)
	}
	return nil
}

func (r *fakeAccountRepo) ListPending(campaignID string, includeFailed bool) ([]model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Account{}
	for _, a := range r.accounts {
		if a.CampaignID != campaignID {
			continue
		}
		if a.ImportStatus == model.ImportPending || (includeFailed && a.ImportStatus == model.ImportFailed) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAccountRepo) UpdateImportStatus(id int64, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.ID == id {
			a.ImportStatus = status
			return nil
		}
	}
	return fmt.Errorf("account %d not found", id)
}

func (r *fakeAccountRepo) CountByCampaign(campaignID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, a := range r.accounts {
		if a.CampaignID == campaignID {
			n++
		}
	}
	return n, nil
}

func (r *fakeAccountRepo) CountByImportStatus(campaignID, status string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, a := range r.accounts {
		if a.CampaignID == campaignID && a.ImportStatus == status {
			n++
		}
	}
	return n, nil
}

type fakePersonRepo struct {
	mu     sync.Mutex
	nextID int64
	people []model.EnrichedPerson
}

func (r *fakePersonRepo) add(campaignID, accountName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.people = append(r.people, model.EnrichedPerson{
		ID:          r.nextID,
		CampaignID:  campaignID,
		AccountName: accountName,
	})
}

func (r *fakePersonRepo) Insert(p *model.EnrichedPerson) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	p.ID = r.nextID
	r.people = append(r.people, *p)
	return nil
}

func (r *fakePersonRepo) CountByCampaign(campaignID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, p := range r.people {
		if p.CampaignID == campaignID {
			n++
		}
	}
	return n, nil
}

func (r *fakePersonRepo) CountDistinctAccounts(campaignID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := map[string]bool{}
	for _, p := range r.people {
		if p.CampaignID == campaignID {
			names[p.AccountName] = true
		}
	}
	return len(names), nil
}

func (r *fakePersonRepo) ListForExport(campaignID string) ([]model.EnrichedPerson, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.EnrichedPerson{}
	for _, p := range r.people {
		if p.CampaignID == campaignID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeStabilityRepo struct {
	mu      sync.Mutex
	windows map[string][]int
}

func newFakeStabilityRepo() *fakeStabilityRepo {
	return &fakeStabilityRepo{windows: map[string][]int{}}
}

func (r *fakeStabilityRepo) RecordObservation(campaignID string, peopleCount int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w := append(r.windows[campaignID], peopleCount)
	if len(w) > 5 {
		w = w[len(w)-5:]
	}
	r.windows[campaignID] = w
	return nil
}

func (r *fakeStabilityRepo) RecentCounts(campaignID string, limit int) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w := r.windows[campaignID]
	out := []int{}
	for i := len(w) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, w[i])
	}
	return out, nil
}

// fakeSender records dispatched payloads and fails configured accounts.
type fakeSender struct {
	mu       sync.Mutex
	sent     []clay.AccountPayload
	failFor  map[string]bool
	started  chan struct{}
	release  chan struct{}
	blockOne bool
}

func (s *fakeSender) Send(payload clay.AccountPayload) error {
	s.mu.Lock()
	block := s.blockOne
	s.blockOne = false
	s.mu.Unlock()

	if block {
		s.started <- struct{}{}
		<-s.release
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failFor[payload.AccountName] {
		return fmt.Errorf("connection refused")
	}
	s.sent = append(s.sent, payload)
	return nil
}

// Compile-time checks that the fakes satisfy the interfaces the
// services consume.
var (
	_ repository.CampaignRepositoryInterface  = (*fakeCampaignRepo)(nil)
	_ repository.AccountRepositoryInterface   = (*fakeAccountRepo)(nil)
	_ repository.PersonRepositoryInterface    = (*fakePersonRepo)(nil)
	_ repository.StabilityRepositoryInterface = (*fakeStabilityRepo)(nil)
	_ clay.Sender                             = (*fakeSender)(nil)
)
