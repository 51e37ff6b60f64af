package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maps-lead-scraper/models"
	"maps-lead-scraper/utils"
)

var finalRecordKeys = []string{
	"nome_empresa", "category", "address", "phone", "website", "rating", "review_count",
	"reviews", "opening_hours", "latitude", "longitude", "claim_status", "plus_code",
	"located_in", "description", "actions", "about", "contact_status", "emails",
	"site_phones", "socials", "contact_pages", "run_id", "query", "map_url", "position",
	"scraped_at",
}

func decode(t *testing.T, rec models.FinalRecord) map[string]interface{} {
	t.Helper()
	raw, err := json.Marshal(rec)
	require.NoError(t, err)
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &m))
	return m
}

func TestAssembleEmptyListingHasEveryKeyWithSentinel(t *testing.T) {
	a := NewRecordAssembler(utils.NewNopLogger())
	ref := models.ListingRef{URL: "https://www.google.com/maps/place/X", Order: 0}
	rec := a.Assemble(models.SearchSpec{Query: "Dentist in Paris, France"}, "run-1", ref,
		models.ListingRecord{}, nil, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))

	m := decode(t, rec)
	for _, key := range finalRecordKeys {
		require.Contains(t, m, key)
	}
	assert.Equal(t, models.Unavailable, m["nome_empresa"])
	assert.Equal(t, models.Unavailable, m["reviews"])
	assert.Equal(t, models.Unavailable, m["emails"])
	assert.Equal(t, models.ContactStatusDeferred, m["contact_status"])
	assert.Equal(t, "https://www.google.com/maps/place/X", m["map_url"])
	assert.Equal(t, float64(1), m["position"])

	socials := m["socials"].(map[string]interface{})
	assert.Len(t, socials, len(models.SocialPlatforms))
	for _, platform := range models.SocialPlatforms {
		assert.Equal(t, models.Unavailable, socials[platform])
	}
}

func TestAssembleMergesContacts(t *testing.T) {
	a := NewRecordAssembler(utils.NewNopLogger())
	bundle := models.NewContactBundle()
	bundle.Emails = []string{"rdv@clinic.fr", " "}
	bundle.Socials["facebook"] = "https://facebook.com/clinic"
	bundle.Visited = []string{"http://clinic.fr"}

	rec := a.Assemble(models.SearchSpec{}, "run-1", models.ListingRef{Order: 4},
		models.ListingRecord{Name: "Clinic", Website: "http://clinic.fr", SourceURL: "https://maps/place/1"},
		&bundle, time.Now())

	assert.Equal(t, models.ContactStatusMined, rec.ContactStatus)
	assert.Equal(t, models.TextList{"rdv@clinic.fr"}, rec.Emails)
	assert.Equal(t, "https://facebook.com/clinic", rec.Socials["facebook"])
	assert.Equal(t, models.Unavailable, rec.Socials["instagram"])
	assert.Equal(t, "https://maps/place/1", rec.MapURL)
	assert.Equal(t, 5, rec.Position)
	assert.Nil(t, rec.SitePhones)
}
