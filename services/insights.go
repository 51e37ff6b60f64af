package services

import (
	"maps-lead-scraper/models"
	"maps-lead-scraper/utils"
)

// CoverageService counts how many records carry real values per field
type CoverageService struct {
	logger *utils.Logger
}

// NewCoverageService creates a new CoverageService
func NewCoverageService(logger *utils.Logger) *CoverageService {
	return &CoverageService{logger: logger}
}

// Generate computes the coverage report for a run
func (s *CoverageService) Generate(records []models.FinalRecord) *models.CoverageReport {
	report := &models.CoverageReport{
		SocialCoverage: make(map[string]int),
	}

	if len(records) == 0 {
		s.logger.Warn("No records to report coverage for")
		return report
	}

	for _, r := range records {
		report.TotalRecords++
		if has(r.Website) {
			report.WithWebsite++
		}
		if has(r.Phone) || len(r.SitePhones) > 0 {
			report.WithPhone++
		}
		if len(r.Emails) > 0 {
			report.WithEmail++
		}
		if has(r.Rating) {
			report.WithRating++
		}
		if has(r.OpeningHours) {
			report.WithHours++
		}
		if has(r.Latitude) && has(r.Longitude) {
			report.WithCoords++
		}
		if r.ClaimStatus == models.ClaimStatusUnclaimed {
			report.Unclaimed++
		}
		if r.ContactStatus == models.ContactStatusDeferred {
			report.Deferred++
		}
		for platform, link := range r.Socials {
			if has(link) {
				report.SocialCoverage[platform]++
			}
		}
	}

	return report
}

func has(v string) bool {
	return v != "" && v != models.Unavailable
}
