// cmd/server/main.go
package main

import (
    "encoding/json"
    "log"
    "net/http"
    "os"

    "github.com/go-chi/chi/v5"
    "github.com/joho/godotenv"

    "github.com/signalhouse/pipeline-backend/internal/clay"
    "github.com/signalhouse/pipeline-backend/internal/controller"
    "github.com/signalhouse/pipeline-backend/internal/db"
    "github.com/signalhouse/pipeline-backend/internal/handler"
    "github.com/signalhouse/pipeline-backend/internal/queue"
    "github.com/signalhouse/pipeline-backend/internal/repository"
    "github.com/signalhouse/pipeline-backend/internal/service"
)

func main() {
    // Load .env
    if err := godotenv.Load(); err != nil {
        log.Println("⚠️ No .env file found, relying on OS environment variables")
    }

    // Init DB
    db.Init()
    if err := db.InitSchema(db.DB); err != nil {
        log.Fatalf("failed to init schema: %v", err)
    }

    campaignRepo := &repository.CampaignRepository{DB: db.DB}
    accountRepo := &repository.AccountRepository{DB: db.DB}
    personRepo := &repository.PersonRepository{DB: db.DB}
    stabilityRepo := &repository.StabilityRepository{DB: db.DB}

    importService := &service.ImportService{
        CampaignRepo: campaignRepo,
        AccountRepo:  accountRepo,
        Sender:       clay.NewClient(os.Getenv("CLAY_WEBHOOK_URL")),
    }
    campaignService := &service.CampaignService{
        CampaignRepo: campaignRepo,
        AccountRepo:  accountRepo,
    }
    enrichmentService := &service.EnrichmentService{
        CampaignRepo: campaignRepo,
        PersonRepo:   personRepo,
    }
    statusService := &service.StatusService{
        CampaignRepo:  campaignRepo,
        AccountRepo:   accountRepo,
        PersonRepo:    personRepo,
        StabilityRepo: stabilityRepo,
    }
    exportService := &service.ExportService{
        CampaignRepo: campaignRepo,
        PersonRepo:   personRepo,
    }

    // With AMQP_URL set, import jobs go to RabbitMQ and cmd/worker runs
    // them. Otherwise they drain in-process off the request path.
    var q queue.Queue
    if amqpURL := os.Getenv("AMQP_URL"); amqpURL != "" {
        aq, err := queue.DialAMQP(amqpURL)
        if err != nil {
            log.Fatalf("failed to connect to RabbitMQ: %v", err)
        }
        defer aq.Close()
        q = aq
        log.Println("✅ Import jobs routed to RabbitMQ")
    } else {
        mq := queue.NewInMemoryQueue()
        queue.StartImportSubscriber(mq, importService)
        q = mq
    }

    campaignController := &controller.CampaignController{
        CampaignService: campaignService,
        ExportService:   exportService,
        Queue:           q,
    }
    webhookHandler := &handler.WebhookHandler{
        EnrichmentService: enrichmentService,
    }
    statusHandler := &handler.StatusHandler{
        StatusService: statusService,
    }

    r := chi.NewRouter()

    r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
        w.Header().Set("Content-Type", "application/json")
        json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
    })

    // Campaign routes
    r.Post("/campaigns", campaignController.CreateCampaign)
    r.Get("/campaigns", campaignController.ListCampaigns)
    r.Post("/campaigns/{id}/import", campaignController.TriggerImport)
    r.Get("/campaigns/{id}/status", statusHandler.GetCampaignStatus)
    r.Get("/campaigns/{id}/export", campaignController.ExportCampaign)

    // Enrichment callbacks
    r.Post("/webhook/enrichment", webhookHandler.ReceiveEnrichment)

    port := os.Getenv("PORT")
    if port == "" {
        port = "8080"
    }

    log.Println("🚀 Server running on :" + port)
    log.Fatal(http.ListenAndServe(":"+port, r))
}
