package storage

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maps-lead-scraper/models"
	"maps-lead-scraper/utils"
)

func TestCSVPathFor(t *testing.T) {
	assert.Equal(t, "output/q_1.csv", CSVPathFor("output/q_1.jsonl"))
}

func TestCSVWriterFlattensRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.csv")
	rec := models.FinalRecord{
		Position:  1,
		Name:      "Cabinet A",
		Emails:    models.TextList{"a@a.fr", "b@a.fr"},
		Socials:   map[string]string{"facebook": "https://facebook.com/a"},
		MapURL:    "https://www.google.com/maps/place/A",
		ScrapedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, NewCSVWriter(path, utils.NewNopLogger()).Save(context.Background(), []models.FinalRecord{rec}))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	header, row := rows[0], rows[1]
	require.Equal(t, len(header), len(row))
	col := func(name string) string {
		for i, h := range header {
			if h == name {
				return row[i]
			}
		}
		t.Fatalf("missing column %s", name)
		return ""
	}
	assert.Equal(t, "Cabinet A", col("name"))
	assert.Equal(t, "a@a.fr | b@a.fr", col("emails"))
	assert.Equal(t, models.Unavailable, col("site_phones"))
	assert.Equal(t, "https://facebook.com/a", col("facebook"))
	assert.Equal(t, "2026-01-01T00:00:00Z", col("scraped_at"))
}
