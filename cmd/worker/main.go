// cmd/worker/main.go
package main

import (
    "log"
    "os"

    "github.com/joho/godotenv"

    "github.com/signalhouse/pipeline-backend/internal/clay"
    "github.com/signalhouse/pipeline-backend/internal/db"
    "github.com/signalhouse/pipeline-backend/internal/queue"
    "github.com/signalhouse/pipeline-backend/internal/repository"
    "github.com/signalhouse/pipeline-backend/internal/service"
)

// The worker consumes import jobs from RabbitMQ and drains campaigns
// against the enrichment webhook. Run it alongside cmd/server when
// AMQP_URL is set; the server then only queues jobs.
func main() {
    if err := godotenv.Load(); err != nil {
        log.Println("⚠️ No .env file found, relying on OS environment variables")
    }

    db.Init()

    campaignRepo := &repository.CampaignRepository{DB: db.DB}
    accountRepo := &repository.AccountRepository{DB: db.DB}

    importService := &service.ImportService{
        CampaignRepo: campaignRepo,
        AccountRepo:  accountRepo,
        Sender:       clay.NewClient(os.Getenv("CLAY_WEBHOOK_URL")),
    }

    amqpURL := os.Getenv("AMQP_URL")
    if amqpURL == "" {
        log.Fatal("AMQP_URL is required for the import worker")
    }

    q, err := queue.DialAMQP(amqpURL)
    if err != nil {
        log.Fatal("Failed to connect to RabbitMQ:", err)
    }
    defer q.Close()

    queue.StartImportSubscriber(q, importService)

    log.Println("Worker running, waiting for import jobs...")
    forever := make(chan bool)
    <-forever
}
