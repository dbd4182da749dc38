package service_test

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/signalhouse/pipeline-backend/internal/errors"
	"github.com/signalhouse/pipeline-backend/internal/model"
	"github.com/signalhouse/pipeline-backend/internal/service"
)

func TestExportUnknownCampaign(t *testing.T) {
	svc := &service.ExportService{
		CampaignRepo: newFakeCampaignRepo(),
		PersonRepo:   &fakePersonRepo{},
	}

	_, err := svc.ExportCSV("nope")
	var notFound *appErrors.ErrCampaignNotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestExportCSVColumnsAndFallbacks(t *testing.T) {
	campaigns := newFakeCampaignRepo()
	campaigns.add("c1", model.StatusReady)
	people := &fakePersonRepo{}
	people.people = append(people.people, model.EnrichedPerson{
		CampaignID:    "c1",
		AccountName:   "Acme",
		FirstName:     "Ada",
		LastName:      "Lovelace",
		FullName:      "Ada Lovelace",
		JobTitle:      "VP Engineering",
		CompanyDomain: "acme.com",
		// Domain and EnrichPerson empty: export falls back to
		// company_domain and full_name
	})

	svc := &service.ExportService{CampaignRepo: campaigns, PersonRepo: people}
	content, err := svc.ExportCSV("c1")
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(content)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	header := records[0]
	assert.Equal(t, "Find people", header[0])
	assert.Equal(t, "Full Name.", header[6])
	assert.Equal(t, "LinkedIn Profile", header[12])
	assert.Len(t, header, 15)

	row := records[1]
	assert.Equal(t, "", row[0])
	assert.Equal(t, "Acme", row[2])
	assert.Equal(t, "Ada", row[4])
	assert.Equal(t, "acme.com", row[11], "domain falls back to company_domain")
	assert.Equal(t, "Ada Lovelace", row[13], "enrich person falls back to full name")
}

func TestExportEmptyCampaignHasHeaderOnly(t *testing.T) {
	campaigns := newFakeCampaignRepo()
	campaigns.add("c1", model.StatusCreated)

	svc := &service.ExportService{CampaignRepo: campaigns, PersonRepo: &fakePersonRepo{}}
	content, err := svc.ExportCSV("c1")
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(content)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
