package repository

import (
    "database/sql"

    "github.com/signalhouse/pipeline-backend/internal/model"
)

type AccountRepositoryInterface interface {
    BulkInsert(campaignID string, accounts []model.Account) error
    // ListPending returns the campaign's accounts still awaiting
    // dispatch, in insertion order. includeFailed re-selects accounts
    // whose previous dispatch failed (explicit re-dispatch only).
    ListPending(campaignID string, includeFailed bool) ([]model.Account, error)
    UpdateImportStatus(id int64, status string) error
    CountByCampaign(campaignID string) (int, error)
    CountByImportStatus(campaignID, status string) (int, error)
}

type AccountRepository struct {
    DB *sql.DB
}

func (r *AccountRepository) BulkInsert(campaignID string, accounts []model.Account) error {
    query := `
        INSERT INTO campaign_accounts (campaign_id, account_name, domain, account_id, import_status)
        VALUES ($1, $2, $3, $4, 'pending')
    `
    for _, a := range accounts {
        if _, err := r.DB.Exec(query, campaignID, a.AccountName, a.Domain, a.AccountID); err != nil {
            return err
        }
    }
    return nil
}

func (r *AccountRepository) ListPending(campaignID string, includeFailed bool) ([]model.Account, error) {
    query := `
        SELECT id, campaign_id, account_name, domain, account_id, import_status
        FROM campaign_accounts
        WHERE campaign_id=$1 AND import_status='pending'
        ORDER BY id
    `
    if includeFailed {
        query = `
        SELECT id, campaign_id, account_name, domain, account_id, import_status
        FROM campaign_accounts
        WHERE campaign_id=$1 AND import_status IN ('pending', 'failed')
        ORDER BY id
    `
    }

    rows, err := r.DB.Query(query, campaignID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    accounts := []model.Account{}
    for rows.Next() {
        var a model.Account
        var domain, accountID sql.NullString
        if err := rows.Scan(&a.ID, &a.CampaignID, &a.AccountName, &domain, &accountID, &a.ImportStatus); err != nil {
            return nil, err
        }
        a.Domain = domain.String
        a.AccountID = accountID.String
        accounts = append(accounts, a)
    }
    return accounts, rows.Err()
}

func (r *AccountRepository) UpdateImportStatus(id int64, status string) error {
    query := `UPDATE campaign_accounts SET import_status=$1 WHERE id=$2`
    _, err := r.DB.Exec(query, status, id)
    return err
}

func (r *AccountRepository) CountByCampaign(campaignID string) (int, error) {
    var count int
    err := r.DB.QueryRow(
        `SELECT COUNT(*) FROM campaign_accounts WHERE campaign_id=$1`,
        campaignID,
    ).Scan(&count)
    return count, err
}

func (r *AccountRepository) CountByImportStatus(campaignID, status string) (int, error) {
    var count int
    err := r.DB.QueryRow(
        `SELECT COUNT(*) FROM campaign_accounts WHERE campaign_id=$1 AND import_status=$2`,
        campaignID, status,
    ).Scan(&count)
    return count, err
}

var _ AccountRepositoryInterface = (*AccountRepository)(nil)
