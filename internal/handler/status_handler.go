// internal/handler/status_handler.go
package handler

import (
    "encoding/json"
    "errors"
    "net/http"

    "github.com/go-chi/chi/v5"

    appErrors "github.com/signalhouse/pipeline-backend/internal/errors"
    "github.com/signalhouse/pipeline-backend/internal/service"
)

type StatusHandler struct {
    StatusService *service.StatusService
}

// GetCampaignStatus re-evaluates the campaign on every poll. Polling is
// what drives the stability window forward, so each call may flip the
// campaign to ready as a side effect.
func (h *StatusHandler) GetCampaignStatus(w http.ResponseWriter, r *http.Request) {
    campaignID := chi.URLParam(r, "id")

    status, err := h.StatusService.EvaluateStatus(campaignID)
    if err != nil {
        var notFound *appErrors.ErrCampaignNotFound
        if errors.As(err, &notFound) {
            http.Error(w, err.Error(), http.StatusNotFound)
            return
        }
        http.Error(w, "failed to evaluate status: "+err.Error(), http.StatusInternalServerError)
        return
    }

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(status)
}
