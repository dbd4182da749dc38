// internal/handler/webhook_handler.go
package handler

import (
    "encoding/json"
    "errors"
    "net/http"

    appErrors "github.com/signalhouse/pipeline-backend/internal/errors"
    "github.com/signalhouse/pipeline-backend/internal/service"
)

// WebhookHandler accepts enrichment callbacks from the external
// service. Deliveries are at-least-once and unordered; every accepted
// payload is appended as-is.
type WebhookHandler struct {
    EnrichmentService *service.EnrichmentService
}

func (h *WebhookHandler) ReceiveEnrichment(w http.ResponseWriter, r *http.Request) {
    var payload service.WebhookPayload
    if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
        http.Error(w, "invalid body: "+err.Error(), http.StatusBadRequest)
        return
    }
    if payload.CampaignID == "" {
        http.Error(w, "campaign_id is required", http.StatusBadRequest)
        return
    }

    if _, err := h.EnrichmentService.Ingest(&payload); err != nil {
        var notFound *appErrors.ErrCampaignNotFound
        if errors.As(err, &notFound) {
            http.Error(w, err.Error(), http.StatusNotFound)
            return
        }
        http.Error(w, "failed to store enrichment: "+err.Error(), http.StatusInternalServerError)
        return
    }

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(map[string]string{"status": "received"})
}
