package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"maps-lead-scraper/models"
	"maps-lead-scraper/utils"
)

func TestCoverageCountsRealValuesOnly(t *testing.T) {
	a := NewRecordAssembler(utils.NewNopLogger())
	bundle := models.NewContactBundle()
	bundle.Emails = []string{"a@b.fr"}
	bundle.Socials["instagram"] = "https://instagram.com/b"

	records := []models.FinalRecord{
		a.Assemble(models.SearchSpec{}, "r", models.ListingRef{}, models.ListingRecord{
			Website: "http://b.fr", Rating: "4.5", Latitude: "48.1", Longitude: "2.3",
			ClaimStatus: models.ClaimStatusUnclaimed,
		}, &bundle, time.Now()),
		a.Assemble(models.SearchSpec{}, "r", models.ListingRef{Order: 1}, models.ListingRecord{
			Phone: "+33 1 00 00 00 00", OpeningHours: "Mon 9-5",
		}, nil, time.Now()),
	}

	report := NewCoverageService(utils.NewNopLogger()).Generate(records)
	assert.Equal(t, 2, report.TotalRecords)
	assert.Equal(t, 1, report.WithWebsite)
	assert.Equal(t, 1, report.WithPhone)
	assert.Equal(t, 1, report.WithEmail)
	assert.Equal(t, 1, report.WithRating)
	assert.Equal(t, 1, report.WithHours)
	assert.Equal(t, 1, report.WithCoords)
	assert.Equal(t, 1, report.Unclaimed)
	assert.Equal(t, 1, report.Deferred)
	assert.Equal(t, map[string]int{"instagram": 1}, report.SocialCoverage)
}

func TestCoverageOfEmptyRun(t *testing.T) {
	report := NewCoverageService(utils.NewNopLogger()).Generate(nil)
	assert.Zero(t, report.TotalRecords)
	assert.NotNil(t, report.SocialCoverage)
}
