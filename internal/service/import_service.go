// internal/service/import_service.go
package service

import (
    "fmt"
    "log"
    "sync"
    "time"

    "github.com/signalhouse/pipeline-backend/internal/clay"
    "github.com/signalhouse/pipeline-backend/internal/model"
    "github.com/signalhouse/pipeline-backend/internal/ratelimit"
    "github.com/signalhouse/pipeline-backend/internal/repository"
)

const (
    importRatePerSec = 8
    rateInterval     = time.Second
)

// ImportService drains a campaign's pending accounts to the enrichment
// webhook, rate-limited. Failures are terminal per account; the batch
// always runs to completion.
type ImportService struct {
    CampaignRepo repository.CampaignRepositoryInterface
    AccountRepo  repository.AccountRepositoryInterface
    Sender       clay.Sender

    // NewLimiter lets tests swap in a non-sleeping limiter.
    NewLimiter func() *ratelimit.BatchLimiter

    inflight sync.Map // campaign id -> struct{}
}

type ImportResult struct {
    CampaignID string `json:"campaign_id"`
    Sent       int    `json:"sent"`
    Failed     int    `json:"failed"`
}

type ImportOptions struct {
    // RetryFailed re-selects accounts whose previous dispatch failed.
    // Always an explicit opt-in, never the default.
    RetryFailed bool
}

// ErrImportInFlight signals a dispatch already draining this campaign.
var ErrImportInFlight = fmt.Errorf("import already in progress")

func (s *ImportService) limiter() *ratelimit.BatchLimiter {
    if s.NewLimiter != nil {
        return s.NewLimiter()
    }
    return ratelimit.NewBatchLimiter(importRatePerSec, rateInterval)
}

// DispatchPendingAccounts pushes the campaign's pending accounts to the
// webhook one at a time. Zero pending accounts is a no-op that leaves
// campaign status untouched. At most one dispatch runs per campaign at
// a time; a concurrent trigger returns ErrImportInFlight.
func (s *ImportService) DispatchPendingAccounts(campaignID string, opts ImportOptions) (*ImportResult, error) {
    if _, loaded := s.inflight.LoadOrStore(campaignID, struct{}{}); loaded {
        log.Println("⚠️ import already running for campaign", campaignID)
        return nil, ErrImportInFlight
    }
    defer s.inflight.Delete(campaignID)

    accounts, err := s.AccountRepo.ListPending(campaignID, opts.RetryFailed)
    if err != nil {
        return nil, err
    }

    result := &ImportResult{CampaignID: campaignID}
    if len(accounts) == 0 {
        log.Println("No pending accounts for campaign", campaignID)
        return result, nil
    }

    if err := s.CampaignRepo.UpdateStatus(campaignID, model.StatusImporting); err != nil {
        return result, err
    }

    limiter := s.limiter()
    for _, account := range accounts {
        limiter.Wait()

        payload := clay.AccountPayload{
            CampaignID:  campaignID,
            AccountName: account.AccountName,
            Domain:      account.Domain,
            AccountID:   account.AccountID,
        }

        status := model.ImportSent
        if err := s.Sender.Send(payload); err != nil {
            log.Printf("⚠️ failed to send account %s: %v\n", account.AccountName, err)
            status = model.ImportFailed
        }

        if err := s.AccountRepo.UpdateImportStatus(account.ID, status); err != nil {
            return result, err
        }

        if status == model.ImportSent {
            result.Sent++
        } else {
            result.Failed++
        }
    }

    // Enriching regardless of per-account outcomes; callbacks may
    // still arrive for the accounts that went through.
    if err := s.CampaignRepo.UpdateStatus(campaignID, model.StatusEnriching); err != nil {
        return result, err
    }

    return result, nil
}
