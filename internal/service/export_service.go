// internal/service/export_service.go
package service

import (
    "bytes"
    "encoding/csv"

    "github.com/signalhouse/pipeline-backend/internal/repository"
)

// csvColumns matches the /mapping sheet format exactly, trailing dot on
// "Full Name." included. The first two columns are always empty.
var csvColumns = []string{
    "Find people",
    "Rows from: Campaign Export",
    "Account Name",
    "Account ID",
    "First Name",
    "Last Name",
    "Full Name.",
    "Job Title",
    "Persona",
    "Persona Score",
    "Company Domain",
    "Domain",
    "LinkedIn Profile",
    "Enrich person",
    "Final Location",
}

type ExportService struct {
    CampaignRepo repository.CampaignRepositoryInterface
    PersonRepo   repository.PersonRepositoryInterface
}

// ExportCSV renders the campaign's enriched people in the /mapping
// column order, sorted by account, then last name, then first name.
func (s *ExportService) ExportCSV(campaignID string) ([]byte, error) {
    if _, err := s.CampaignRepo.GetByID(campaignID); err != nil {
        return nil, err
    }

    people, err := s.PersonRepo.ListForExport(campaignID)
    if err != nil {
        return nil, err
    }

    var buf bytes.Buffer
    w := csv.NewWriter(&buf)
    if err := w.Write(csvColumns); err != nil {
        return nil, err
    }

    for _, p := range people {
        domain := p.Domain
        if domain == "" {
            domain = p.CompanyDomain
        }
        enrichPerson := p.EnrichPerson
        if enrichPerson == "" {
            enrichPerson = p.FullName
        }

        record := []string{
            "", // Find people
            "", // Rows from
            p.AccountName,
            p.AccountID,
            p.FirstName,
            p.LastName,
            p.FullName,
            p.JobTitle,
            p.Persona,
            p.PersonaScore,
            p.CompanyDomain,
            domain,
            p.LinkedinProfile,
            enrichPerson,
            p.FinalLocation,
        }
        if err := w.Write(record); err != nil {
            return nil, err
        }
    }

    w.Flush()
    if err := w.Error(); err != nil {
        return nil, err
    }
    return buf.Bytes(), nil
}
