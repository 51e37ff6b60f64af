package storage

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maps-lead-scraper/models"
	"maps-lead-scraper/utils"
)

func openLedger(t *testing.T) *SQLiteLedger {
	t.Helper()
	l, err := NewSQLiteLedger(context.Background(), filepath.Join(t.TempDir(), "db", "leads.db"), utils.NewNopLogger())
	if err != nil && strings.Contains(err.Error(), "CGO_ENABLED=0") {
		t.Skip("go-sqlite3 needs cgo")
	}
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func TestLedgerKeepsFirstRecordPerPlace(t *testing.T) {
	ctx := context.Background()
	l := openLedger(t)
	at := time.Date(2026, 3, 7, 9, 0, 0, 0, time.UTC)

	first := []models.FinalRecord{
		{Name: "Cabinet A", MapURL: "https://www.google.com/maps/place/A", ScrapedAt: at},
		{Name: "Cabinet B", MapURL: "https://www.google.com/maps/place/B", ScrapedAt: at},
	}
	require.NoError(t, l.Save(ctx, first))

	second := []models.FinalRecord{
		{Name: "Cabinet A renamed", MapURL: "https://www.google.com/maps/place/A", ScrapedAt: at},
		{Name: "Cabinet C", MapURL: "https://www.google.com/maps/place/C", ScrapedAt: at},
	}
	require.NoError(t, l.Save(ctx, second))

	n, err := l.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	var name string
	require.NoError(t, l.db.QueryRowContext(ctx, `SELECT name FROM leads WHERE map_url = ?`,
		"https://www.google.com/maps/place/A").Scan(&name))
	assert.Equal(t, "Cabinet A", name)
}
