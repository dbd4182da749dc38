// internal/db/db.go
package db

import (
    "database/sql"
    "fmt"
    "log"
    "os"

    _ "github.com/lib/pq"
)

var DB *sql.DB

func Init() {
    dsn := os.Getenv("DATABASE_URL")
    if dsn == "" {
        user := os.Getenv("DB_USER")
        pass := os.Getenv("DB_PASSWORD")
        host := os.Getenv("DB_HOST")
        port := os.Getenv("DB_PORT")
        name := os.Getenv("DB_NAME")

        dsn = fmt.Sprintf(
            "postgres://%s:%s@%s:%s/%s?sslmode=disable",
            user, pass, host, port, name,
        )
    }

    var err error
    DB, err = sql.Open("postgres", dsn)
    if err != nil {
        log.Fatalf("failed to connect to DB: %v", err)
    }

    if err = DB.Ping(); err != nil {
        log.Fatalf("failed to ping DB: %v", err)
    }

    log.Println("✅ Connected to database")
}

// InitSchema creates the pipeline tables if they don't exist yet.
func InitSchema(db *sql.DB) error {
    _, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS campaigns (
            id              TEXT PRIMARY KEY,
            name            TEXT NOT NULL,
            status          TEXT DEFAULT 'created',
            created_by      TEXT,
            created_at      TIMESTAMPTZ DEFAULT NOW(),
            updated_at      TIMESTAMPTZ DEFAULT NOW()
        );

        CREATE TABLE IF NOT EXISTS campaign_accounts (
            id              BIGSERIAL PRIMARY KEY,
            campaign_id     TEXT NOT NULL REFERENCES campaigns(id),
            account_name    TEXT NOT NULL,
            domain          TEXT,
            account_id      TEXT,
            import_status   TEXT DEFAULT 'pending'
        );
        CREATE INDEX IF NOT EXISTS idx_campaign_accounts
            ON campaign_accounts(campaign_id);

        CREATE TABLE IF NOT EXISTS enriched_people (
            id              BIGSERIAL PRIMARY KEY,
            campaign_id     TEXT NOT NULL REFERENCES campaigns(id),
            account_name    TEXT,
            account_id      TEXT,
            first_name      TEXT,
            last_name       TEXT,
            full_name       TEXT,
            job_title       TEXT,
            persona         TEXT,
            persona_score   TEXT,
            company_domain  TEXT,
            domain          TEXT,
            linkedin_profile TEXT,
            enrich_person   TEXT,
            final_location  TEXT,
            raw_payload     JSONB,
            created_at      TIMESTAMPTZ DEFAULT NOW()
        );
        CREATE INDEX IF NOT EXISTS idx_enriched_people
            ON enriched_people(campaign_id);

        CREATE TABLE IF NOT EXISTS stability_observations (
            id              BIGSERIAL PRIMARY KEY,
            campaign_id     TEXT NOT NULL REFERENCES campaigns(id),
            people_count    INT NOT NULL,
            observed_at     TIMESTAMPTZ DEFAULT NOW()
        );
        CREATE INDEX IF NOT EXISTS idx_stability_observations
            ON stability_observations(campaign_id);
    `)
    return err
}
