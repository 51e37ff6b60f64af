package services

import (
	"strings"
	"time"

	"maps-lead-scraper/models"
	"maps-lead-scraper/utils"
)

// RecordAssembler merges a listing's detail and contact data into the record
// handed to the enrichment worker. Every unset field becomes models.Unavailable.
type RecordAssembler struct {
	logger *utils.Logger
}

// NewRecordAssembler creates a new RecordAssembler
func NewRecordAssembler(logger *utils.Logger) *RecordAssembler {
	return &RecordAssembler{logger: logger}
}

// Assemble builds the FinalRecord for one listing. A nil contacts bundle means
// contact mining was deferred to the downstream worker.
func (a *RecordAssembler) Assemble(spec models.SearchSpec, runID string, ref models.ListingRef,
	rec models.ListingRecord, contacts *models.ContactBundle, now time.Time) models.FinalRecord {

	mapURL := strings.TrimSpace(rec.SourceURL)
	if mapURL == "" {
		mapURL = ref.URL
	}

	out := models.FinalRecord{
		Name:         orUnavailable(rec.Name),
		Category:     orUnavailable(rec.Category),
		Address:      orUnavailable(rec.Address),
		Phone:        orUnavailable(rec.Phone),
		Website:      orUnavailable(rec.Website),
		Rating:       orUnavailable(rec.Rating),
		ReviewCount:  orUnavailable(rec.ReviewCount),
		Reviews:      cleanList(rec.Reviews),
		OpeningHours: orUnavailable(rec.OpeningHours),
		Latitude:     orUnavailable(rec.Latitude),
		Longitude:    orUnavailable(rec.Longitude),
		ClaimStatus:  orUnavailable(rec.ClaimStatus),
		PlusCode:     orUnavailable(rec.PlusCode),
		LocatedIn:    orUnavailable(rec.LocatedIn),
		Description:  orUnavailable(rec.Description),
		Actions:      cleanList(rec.Actions),
		About:        orUnavailable(rec.About),

		ContactStatus: models.ContactStatusDeferred,
		Socials:       make(map[string]string, len(models.SocialPlatforms)),

		RunID:     runID,
		Query:     orUnavailable(spec.Query),
		MapURL:    orUnavailable(mapURL),
		Position:  ref.Order + 1,
		ScrapedAt: now.UTC(),
	}

	for _, platform := range models.SocialPlatforms {
		out.Socials[platform] = models.Unavailable
	}

	if contacts != nil {
		out.ContactStatus = models.ContactStatusMined
		out.Emails = cleanList(contacts.Emails)
		out.SitePhones = cleanList(contacts.Phones)
		out.ContactPages = cleanList(contacts.Visited)
		for platform, link := range contacts.Socials {
			if _, known := out.Socials[platform]; known {
				out.Socials[platform] = orUnavailable(link)
			}
		}
	}

	if out.Name == models.Unavailable {
		a.logger.Debug("Listing %d has no readable name", out.Position)
	}
	return out
}

func orUnavailable(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return models.Unavailable
	}
	return s
}

// cleanList trims entries and drops empty ones; an empty result marshals to
// the sentinel.
func cleanList(in []string) models.TextList {
	var out models.TextList
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
