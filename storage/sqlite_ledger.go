package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"

	"maps-lead-scraper/models"
	"maps-lead-scraper/utils"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteLedger keeps a local file of every lead ever collected. A place seen
// in an earlier run keeps its first record.
type SQLiteLedger struct {
	db     *sql.DB
	logger *utils.Logger
}

// NewSQLiteLedger opens (or creates) the ledger at path
func NewSQLiteLedger(ctx context.Context, path string, logger *utils.Logger) (*SQLiteLedger, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, eris.Wrap(err, "failed to create ledger directory")
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, eris.Wrap(err, "failed to open ledger")
	}
	db.SetMaxOpenConns(1)

	schema := []string{
		`PRAGMA journal_mode = WAL;`,
		`CREATE TABLE IF NOT EXISTS leads (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			map_url        TEXT NOT NULL UNIQUE,
			name           TEXT NOT NULL,
			phone          TEXT,
			website        TEXT,
			emails         TEXT,
			contact_status TEXT,
			query          TEXT,
			run_id         TEXT,
			payload        TEXT NOT NULL,
			scraped_at     TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_leads_website ON leads(website);`,
		`CREATE INDEX IF NOT EXISTS idx_leads_query ON leads(query);`,
	}
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, eris.Wrap(err, "failed to prepare ledger schema")
		}
	}
	return &SQLiteLedger{db: db, logger: logger}, nil
}

func (l *SQLiteLedger) Name() string { return "sqlite" }

// Save inserts records, ignoring places already in the ledger
func (l *SQLiteLedger) Save(ctx context.Context, records []models.FinalRecord) error {
	const stmt = `INSERT OR IGNORE INTO leads
		(map_url, name, phone, website, emails, contact_status, query, run_id, payload, scraped_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

	inserted := 0
	for _, r := range records {
		payload, err := json.Marshal(r)
		if err != nil {
			l.logger.Warn("Skipping '%s': %v", r.Name, err)
			continue
		}
		res, err := l.db.ExecContext(ctx, stmt,
			r.MapURL, r.Name, r.Phone, r.Website, joinList(r.Emails), r.ContactStatus,
			r.Query, r.RunID, string(payload), r.ScrapedAt.Format(time.RFC3339),
		)
		if err != nil {
			return eris.Wrapf(err, "insert %q", r.MapURL)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		}
	}
	total, err := l.Count(ctx)
	if err != nil {
		return err
	}
	l.logger.Info("Ledger: %d new of %d records, %d leads in total", inserted, len(records), total)
	return nil
}

// Count returns the number of leads in the ledger
func (l *SQLiteLedger) Count(ctx context.Context) (int, error) {
	var n int
	if err := l.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM leads`).Scan(&n); err != nil {
		return 0, eris.Wrap(err, "count leads")
	}
	return n, nil
}

func (l *SQLiteLedger) Close() error {
	return l.db.Close()
}
