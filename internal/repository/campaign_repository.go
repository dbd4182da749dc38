package repository

import (
    "database/sql"
    "fmt"
    "time"

    appErrors "github.com/signalhouse/pipeline-backend/internal/errors"
    "github.com/signalhouse/pipeline-backend/internal/model"
)

type CampaignRepositoryInterface interface {
    Create(c *model.Campaign) error
    GetByID(id string) (*model.Campaign, error)
    Exists(id string) (bool, error)
    UpdateStatus(campaignID, status string) error
    // UpdateStatusUnlessReady sets the status only while the campaign
    // has not reached 'ready' — ready is sticky.
    UpdateStatusUnlessReady(campaignID, status string) error
    ListCampaigns(offset, limit int, status string) ([]*model.Campaign, int, error)
}

type CampaignRepository struct {
    DB *sql.DB
}

func (r *CampaignRepository) Create(c *model.Campaign) error {
    c.CreatedAt = time.Now()
    if c.Status == "" {
        c.Status = model.StatusCreated
    }
    query := `
        INSERT INTO campaigns (id, name, status, created_by, created_at)
        VALUES ($1, $2, $3, $4, $5)
    `
    _, err := r.DB.Exec(query, c.ID, c.Name, c.Status, c.CreatedBy, c.CreatedAt)
    return err
}

func (r *CampaignRepository) GetByID(id string) (*model.Campaign, error) {
    query := `
        SELECT id, name, status, created_by, created_at, updated_at
        FROM campaigns WHERE id=$1
    `
    var c model.Campaign
    var createdBy sql.NullString
    err := r.DB.QueryRow(query, id).Scan(&c.ID, &c.Name, &c.Status, &createdBy, &c.CreatedAt, &c.UpdatedAt)
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, appErrors.NewCampaignNotFound(id)
        }
        return nil, err
    }
    c.CreatedBy = createdBy.String
    return &c, nil
}

func (r *CampaignRepository) Exists(id string) (bool, error) {
    var count int
    err := r.DB.QueryRow(`SELECT COUNT(*) FROM campaigns WHERE id=$1`, id).Scan(&count)
    if err != nil {
        return false, err
    }
    return count > 0, nil
}

func (r *CampaignRepository) UpdateStatus(campaignID, status string) error {
    query := `UPDATE campaigns SET status=$1, updated_at=NOW() WHERE id=$2`
    _, err := r.DB.Exec(query, status, campaignID)
    return err
}

func (r *CampaignRepository) UpdateStatusUnlessReady(campaignID, status string) error {
    query := `UPDATE campaigns SET status=$1, updated_at=NOW() WHERE id=$2 AND status != $3`
    _, err := r.DB.Exec(query, status, campaignID, model.StatusReady)
    return err
}

func (r *CampaignRepository) ListCampaigns(offset, limit int, status string) ([]*model.Campaign, int, error) {
    campaigns := []*model.Campaign{}
    query := `SELECT id, name, status, created_by, created_at, updated_at FROM campaigns WHERE 1=1`
    args := []interface{}{}
    argPos := 1

    if status != "" {
        query += fmt.Sprintf(" AND status=$%d", argPos)
        args = append(args, status)
        argPos++
    }

    query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
    args = append(args, limit, offset)

    rows, err := r.DB.Query(query, args...)
    if err != nil {
        return nil, 0, err
    }
    defer rows.Close()

    for rows.Next() {
        c := &model.Campaign{}
        var createdBy sql.NullString
        if err := rows.Scan(&c.ID, &c.Name, &c.Status, &createdBy, &c.CreatedAt, &c.UpdatedAt); err != nil {
            return nil, 0, err
        }
        c.CreatedBy = createdBy.String
        campaigns = append(campaigns, c)
    }

    countQuery := `SELECT COUNT(*) FROM campaigns WHERE 1=1`
    argsCount := []interface{}{}
    if status != "" {
        countQuery += " AND status=$1"
        argsCount = append(argsCount, status)
    }

    var total int
    if err := r.DB.QueryRow(countQuery, argsCount...).Scan(&total); err != nil {
        return nil, 0, err
    }

    return campaigns, total, nil
}

var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)
