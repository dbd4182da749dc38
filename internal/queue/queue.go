package queue

import (
    "fmt"
    "log"
    "sync"
    "time"

    "github.com/signalhouse/pipeline-backend/internal/service"
)

// TopicCampaignImports carries campaign ids whose pending accounts
// should be dispatched to the enrichment webhook.
const TopicCampaignImports = "campaign_imports"

// Queue interface
type Queue interface {
    Publish(topic string, payload any) error
    Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue runs handlers in-process, one goroutine per job, with
// bounded retries.
type InMemoryQueue struct {
    mu       sync.Mutex
    handlers map[string][]func(payload any) error
}

// NewInMemoryQueue creates a new queue
func NewInMemoryQueue() *InMemoryQueue {
    return &InMemoryQueue{
        handlers: make(map[string][]func(payload any) error),
    }
}

// JobPayload wraps a message payload with retry info
type JobPayload struct {
    Payload    any
    RetryCount int
    MaxRetries int
}

// Publish sends a message to all subscribers
func (q *InMemoryQueue) Publish(topic string, payload any) error {
    q.mu.Lock()
    handlers := q.handlers[topic]
    q.mu.Unlock()

    if len(handlers) == 0 {
        return fmt.Errorf("no subscribers for topic %s", topic)
    }

    job := JobPayload{
        Payload:    payload,
        RetryCount: 0,
        MaxRetries: 3,
    }

    for _, handler := range handlers {
        go q.processJob(handler, job)
    }

    return nil
}

// processJob handles retries and errors
func (q *InMemoryQueue) processJob(handler func(payload any) error, job JobPayload) {
    for job.RetryCount <= job.MaxRetries {
        err := handler(job.Payload)
        if err == nil {
            return // ACK
        }

        job.RetryCount++
        log.Printf("Job failed (attempt %d/%d): %+v, error: %v\n", job.RetryCount, job.MaxRetries, job.Payload, err)

        if job.RetryCount > job.MaxRetries {
            log.Printf("Job permanently failed after %d attempts: %+v\n", job.MaxRetries, job.Payload)
            return // No requeue
        }

        // Backoff before retry
        time.Sleep(time.Duration(job.RetryCount*500) * time.Millisecond)
    }
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
    q.mu.Lock()
    defer q.mu.Unlock()

    q.handlers[topic] = append(q.handlers[topic], handler)
    return nil
}

// StartImportSubscriber wires the dispatcher to the import topic. The
// HTTP trigger publishes a campaign id and returns; the drain happens
// here, off the request path.
func StartImportSubscriber(q Queue, importService *service.ImportService) {
    err := q.Subscribe(TopicCampaignImports, func(payload any) error {
        job, ok := payload.(ImportJob)
        if !ok {
            log.Println("⚠️ Invalid payload type, expected ImportJob")
            return nil // no retry for garbage
        }

        log.Println("📩 Starting import for campaign:", job.CampaignID)

        result, err := importService.DispatchPendingAccounts(job.CampaignID, service.ImportOptions{
            RetryFailed: job.RetryFailed,
        })
        if err == service.ErrImportInFlight {
            return nil // already draining, drop the duplicate trigger
        }
        if err != nil {
            log.Println("⚠️ Import failed for campaign", job.CampaignID, ":", err)
            return err // triggers retry; dispatch resumes at pending accounts
        }

        log.Printf("✅ Import done for %s: sent=%d failed=%d\n", job.CampaignID, result.Sent, result.Failed)
        return nil
    })

    if err != nil {
        log.Println("⚠️ Failed to start subscriber for", TopicCampaignImports, ":", err)
    }
}

// ImportJob is the payload on TopicCampaignImports.
type ImportJob struct {
    CampaignID  string `json:"campaign_id"`
    RetryFailed bool   `json:"retry_failed"`
}
