package repository

import (
    "database/sql"

    "github.com/signalhouse/pipeline-backend/internal/model"
)

type PersonRepositoryInterface interface {
    Insert(p *model.EnrichedPerson) error
    CountByCampaign(campaignID string) (int, error)
    // CountDistinctAccounts counts the unique account names that have
    // produced at least one enriched person for the campaign.
    CountDistinctAccounts(campaignID string) (int, error)
    ListForExport(campaignID string) ([]model.EnrichedPerson, error)
}

type PersonRepository struct {
    DB *sql.DB
}

func (r *PersonRepository) Insert(p *model.EnrichedPerson) error {
    query := `
        INSERT INTO enriched_people
        (campaign_id, account_name, account_id, first_name, last_name,
         full_name, job_title, persona, persona_score, company_domain, domain,
         linkedin_profile, enrich_person, final_location, raw_payload)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
        RETURNING id, created_at
    `
    return r.DB.QueryRow(
        query,
        p.CampaignID,
        p.AccountName,
        p.AccountID,
        p.FirstName,
        p.LastName,
        p.FullName,
        p.JobTitle,
        p.Persona,
        p.PersonaScore,
        p.CompanyDomain,
        p.Domain,
        p.LinkedinProfile,
        p.EnrichPerson,
        p.FinalLocation,
        string(p.RawPayload), // pq sends []byte as bytea, which jsonb rejects
    ).Scan(&p.ID, &p.CreatedAt)
}

func (r *PersonRepository) CountByCampaign(campaignID string) (int, error) {
    var count int
    err := r.DB.QueryRow(
        `SELECT COUNT(*) FROM enriched_people WHERE campaign_id=$1`,
        campaignID,
    ).Scan(&count)
    return count, err
}

func (r *PersonRepository) CountDistinctAccounts(campaignID string) (int, error) {
    var count int
    err := r.DB.QueryRow(
        `SELECT COUNT(DISTINCT account_name) FROM enriched_people WHERE campaign_id=$1`,
        campaignID,
    ).Scan(&count)
    return count, err
}

func (r *PersonRepository) ListForExport(campaignID string) ([]model.EnrichedPerson, error) {
    query := `
        SELECT account_name, account_id, first_name, last_name,
               full_name, job_title, persona, persona_score, company_domain, domain,
               linkedin_profile, enrich_person, final_location
        FROM enriched_people
        WHERE campaign_id=$1
        ORDER BY account_name, last_name, first_name
    `
    rows, err := r.DB.Query(query, campaignID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    people := []model.EnrichedPerson{}
    for rows.Next() {
        var p model.EnrichedPerson
        cols := make([]sql.NullString, 13)
        dest := make([]interface{}, len(cols))
        for i := range cols {
            dest[i] = &cols[i]
        }
        if err := rows.Scan(dest...); err != nil {
            return nil, err
        }
        p.CampaignID = campaignID
        p.AccountName = cols[0].String
        p.AccountID = cols[1].String
        p.FirstName = cols[2].String
        p.LastName = cols[3].String
        p.FullName = cols[4].String
        p.JobTitle = cols[5].String
        p.Persona = cols[6].String
        p.PersonaScore = cols[7].String
        p.CompanyDomain = cols[8].String
        p.Domain = cols[9].String
        p.LinkedinProfile = cols[10].String
        p.EnrichPerson = cols[11].String
        p.FinalLocation = cols[12].String
        people = append(people, p)
    }
    return people, rows.Err()
}

var _ PersonRepositoryInterface = (*PersonRepository)(nil)
