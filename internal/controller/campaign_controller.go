// internal/controller/campaign_controller.go
package controller

import (
    "encoding/json"
    "errors"
    "log"
    "net/http"
    "strconv"

    "github.com/go-chi/chi/v5"

    appErrors "github.com/signalhouse/pipeline-backend/internal/errors"
    "github.com/signalhouse/pipeline-backend/internal/queue"
    "github.com/signalhouse/pipeline-backend/internal/service"
)

type CampaignController struct {
    CampaignService *service.CampaignService
    ExportService   *service.ExportService
    Queue           queue.Queue
}

func (c *CampaignController) CreateCampaign(w http.ResponseWriter, r *http.Request) {
    var body struct {
        Name      string                 `json:"name"`
        CreatedBy string                 `json:"created_by"`
        Accounts  []service.AccountInput `json:"accounts"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }
    if body.Name == "" {
        http.Error(w, "name is required", http.StatusBadRequest)
        return
    }

    result, err := c.CampaignService.CreateCampaign(body.Name, body.CreatedBy, body.Accounts)
    if err != nil {
        var exists *appErrors.ErrCampaignExists
        if errors.As(err, &exists) {
            http.Error(w, err.Error(), http.StatusConflict)
            return
        }
        http.Error(w, err.Error(), http.StatusInternalServerError)
        return
    }

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(result)
}

func (c *CampaignController) ListCampaigns(w http.ResponseWriter, r *http.Request) {
    page, _ := strconv.Atoi(r.URL.Query().Get("page"))
    pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
    status := r.URL.Query().Get("status")

    if page < 1 {
        page = 1
    }
    if pageSize < 1 {
        pageSize = 20
    }

    campaigns, pagination, err := c.CampaignService.ListCampaigns(page, pageSize, status)
    if err != nil {
        http.Error(w, err.Error(), http.StatusInternalServerError)
        return
    }

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(map[string]interface{}{
        "data":       campaigns,
        "pagination": pagination,
    })
}

// TriggerImport validates the campaign and queues the dispatch. The
// drain itself runs off the request path; callers can only poll status.
func (c *CampaignController) TriggerImport(w http.ResponseWriter, r *http.Request) {
    campaignID := chi.URLParam(r, "id")

    var body struct {
        RetryFailed bool `json:"retry_failed"`
    }
    if r.Body != nil && r.ContentLength > 0 {
        if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
            http.Error(w, "invalid body", http.StatusBadRequest)
            return
        }
    }

    if !c.campaignExists(w, campaignID) {
        return
    }

    job := queue.ImportJob{CampaignID: campaignID, RetryFailed: body.RetryFailed}
    if err := c.Queue.Publish(queue.TopicCampaignImports, job); err != nil {
        log.Println("⚠️ failed to queue import for", campaignID, ":", err)
        http.Error(w, "failed to queue import", http.StatusInternalServerError)
        return
    }

    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(http.StatusAccepted)
    json.NewEncoder(w).Encode(map[string]interface{}{
        "message":     "Import started",
        "campaign_id": campaignID,
    })
}

func (c *CampaignController) ExportCampaign(w http.ResponseWriter, r *http.Request) {
    campaignID := chi.URLParam(r, "id")

    content, err := c.ExportService.ExportCSV(campaignID)
    if err != nil {
        var notFound *appErrors.ErrCampaignNotFound
        if errors.As(err, &notFound) {
            http.Error(w, err.Error(), http.StatusNotFound)
            return
        }
        http.Error(w, err.Error(), http.StatusInternalServerError)
        return
    }

    w.Header().Set("Content-Type", "text/csv")
    w.Header().Set("Content-Disposition", `attachment; filename="People List.csv"`)
    w.Write(content)
}

func (c *CampaignController) campaignExists(w http.ResponseWriter, campaignID string) bool {
    exists, err := c.CampaignService.CampaignRepo.Exists(campaignID)
    if err != nil {
        http.Error(w, err.Error(), http.StatusInternalServerError)
        return false
    }
    if !exists {
        http.Error(w, appErrors.NewCampaignNotFound(campaignID).Error(), http.StatusNotFound)
        return false
    }
    return true
}
