package storage

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"maps-lead-scraper/models"
	"maps-lead-scraper/utils"
)

// CSVWriter writes a flat spreadsheet copy of the run beside the artifact
type CSVWriter struct {
	filePath string
	logger   *utils.Logger
}

// NewCSVWriter creates a new CSVWriter
func NewCSVWriter(filePath string, logger *utils.Logger) *CSVWriter {
	return &CSVWriter{filePath: filePath, logger: logger}
}

// CSVPathFor returns the CSV path matching a JSONL artifact
func CSVPathFor(artifact string) string {
	return strings.TrimSuffix(artifact, filepath.Ext(artifact)) + ".csv"
}

func (w *CSVWriter) Name() string { return "csv" }

func (w *CSVWriter) Close() error { return nil }

// Save writes records to the CSV file, replacing any previous content
func (w *CSVWriter) Save(_ context.Context, records []models.FinalRecord) error {
	if err := os.MkdirAll(filepath.Dir(w.filePath), 0755); err != nil {
		return eris.Wrap(err, "failed to create output directory")
	}

	file, err := os.Create(w.filePath)
	if err != nil {
		return eris.Wrap(err, "failed to create CSV file")
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	header := []string{
		"position", "name", "category", "address", "phone", "website", "rating",
		"review_count", "opening_hours", "latitude", "longitude", "claim_status",
		"plus_code", "located_in", "actions", "contact_status", "emails", "site_phones",
	}
	header = append(header, models.SocialPlatforms...)
	header = append(header, "map_url", "scraped_at")
	if err := writer.Write(header); err != nil {
		return eris.Wrap(err, "failed to write CSV header")
	}

	for _, r := range records {
		row := []string{
			strconv.Itoa(r.Position),
			r.Name,
			r.Category,
			r.Address,
			r.Phone,
			r.Website,
			r.Rating,
			r.ReviewCount,
			r.OpeningHours,
			r.Latitude,
			r.Longitude,
			r.ClaimStatus,
			r.PlusCode,
			r.LocatedIn,
			joinList(r.Actions),
			r.ContactStatus,
			joinList(r.Emails),
			joinList(r.SitePhones),
		}
		for _, platform := range models.SocialPlatforms {
			row = append(row, r.Socials[platform])
		}
		row = append(row, r.MapURL, r.ScrapedAt.Format(time.RFC3339))
		if err := writer.Write(row); err != nil {
			w.logger.Error("Failed to write CSV row for '%s': %v", r.Name, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return eris.Wrap(err, "failed to flush CSV")
	}
	w.logger.Info("CSV copy written to: %s (%d rows)", w.filePath, len(records))
	return nil
}

func joinList(l models.TextList) string {
	if len(l) == 0 {
		return models.Unavailable
	}
	return strings.Join(l, " | ")
}
