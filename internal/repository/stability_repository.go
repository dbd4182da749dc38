package repository

import "database/sql"

// StabilityRepositoryInterface persists the per-campaign rolling window
// of people-count observations used for completion inference. Keeping
// the window in the store means a process restart does not reset
// convergence progress.
type StabilityRepositoryInterface interface {
    // RecordObservation appends a people-count observation and trims
    // the window to the newest 5 entries.
    RecordObservation(campaignID string, peopleCount int) error
    // RecentCounts returns up to limit observations, newest first.
    RecentCounts(campaignID string, limit int) ([]int, error)
}

const stabilityWindowSize = 5

type StabilityRepository struct {
    DB *sql.DB
}

func (r *StabilityRepository) RecordObservation(campaignID string, peopleCount int) error {
    _, err := r.DB.Exec(
        `INSERT INTO stability_observations (campaign_id, people_count) VALUES ($1, $2)`,
        campaignID, peopleCount,
    )
    if err != nil {
        return err
    }

    // Evict everything older than the newest 5
    _, err = r.DB.Exec(`
        DELETE FROM stability_observations
        WHERE campaign_id=$1 AND id NOT IN (
            SELECT id FROM stability_observations
            WHERE campaign_id=$1
            ORDER BY id DESC
            LIMIT $2
        )
    `, campaignID, stabilityWindowSize)
    return err
}

func (r *StabilityRepository) RecentCounts(campaignID string, limit int) ([]int, error) {
    rows, err := r.DB.Query(`
        SELECT people_count FROM stability_observations
        WHERE campaign_id=$1
        ORDER BY id DESC
        LIMIT $2
    `, campaignID, limit)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    counts := []int{}
    for rows.Next() {
        var c int
        if err := rows.Scan(&c); err != nil {
            return nil, err
        }
        counts = append(counts, c)
    }
    return counts, rows.Err()
}

var _ StabilityRepositoryInterface = (*StabilityRepository)(nil)
