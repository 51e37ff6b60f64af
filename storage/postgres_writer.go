package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"

	"maps-lead-scraper/models"
	"maps-lead-scraper/utils"

	_ "github.com/lib/pq"
)

// PostgresWriter upserts run records into the leads table
type PostgresWriter struct {
	db     *sql.DB
	logger *utils.Logger
}

// NewPostgresWriter creates a new PostgresWriter and pings the DB
func NewPostgresWriter(ctx context.Context, connStr string, logger *utils.Logger) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, eris.Wrap(err, "failed to open DB")
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Minute * 5)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, eris.Wrap(err, "failed to ping DB")
	}

	logger.Info("Connected to PostgreSQL successfully")
	return &PostgresWriter{db: db, logger: logger}, nil
}

func (w *PostgresWriter) Name() string { return "postgres" }

// CreateTable creates the leads table if it doesn't exist, with indexes
func (w *PostgresWriter) CreateTable(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS leads (
		id             SERIAL PRIMARY KEY,
		map_url        TEXT UNIQUE NOT NULL,
		name           TEXT NOT NULL,
		category       TEXT,
		website        TEXT,
		contact_status VARCHAR(16),
		query          TEXT,
		run_id         VARCHAR(64),
		payload        JSONB NOT NULL,
		scraped_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_leads_query    ON leads (query);
	CREATE INDEX IF NOT EXISTS idx_leads_run      ON leads (run_id);
	CREATE INDEX IF NOT EXISTS idx_leads_category ON leads (category);
	`
	if _, err := w.db.ExecContext(ctx, query); err != nil {
		return eris.Wrap(err, "failed to create table")
	}
	w.logger.Info("Table 'leads' is ready")
	return nil
}

// Save upserts records in a single transaction keyed by map URL
func (w *PostgresWriter) Save(ctx context.Context, records []models.FinalRecord) (err error) {
	if len(records) == 0 {
		return nil
	}
	if err := w.CreateTable(ctx); err != nil {
		return err
	}

	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "failed to begin transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO leads (map_url, name, category, website, contact_status, query, run_id, payload, scraped_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (map_url) DO UPDATE SET
			name = EXCLUDED.name,
			category = EXCLUDED.category,
			website = EXCLUDED.website,
			contact_status = EXCLUDED.contact_status,
			query = EXCLUDED.query,
			run_id = EXCLUDED.run_id,
			payload = EXCLUDED.payload,
			scraped_at = EXCLUDED.scraped_at
	`)
	if err != nil {
		return eris.Wrap(err, "failed to prepare statement")
	}
	defer stmt.Close()

	saved, err := upsertEach(ctx, tx, records, func(r models.FinalRecord) error {
		payload, mErr := json.Marshal(r)
		if mErr != nil {
			return mErr
		}
		_, execErr := stmt.ExecContext(ctx,
			r.MapURL, r.Name, r.Category, r.Website, r.ContactStatus, r.Query, r.RunID, string(payload), r.ScrapedAt,
		)
		return execErr
	}, w.logger)
	if err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return eris.Wrap(err, "failed to commit transaction")
	}

	w.logger.Info("Upserted %d/%d records into PostgreSQL", saved, len(records))
	return nil
}

// rowExecer is the part of *sql.Tx the savepoint loop needs
type rowExecer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// upsertEach runs upsert for every record inside its own savepoint. A failed
// statement aborts a Postgres transaction, so a rejected row is rolled back to
// its savepoint and skipped while the rows around it still commit.
func upsertEach(ctx context.Context, tx rowExecer, records []models.FinalRecord, upsert func(models.FinalRecord) error, logger *utils.Logger) (int, error) {
	saved := 0
	for _, r := range records {
		if _, err := tx.ExecContext(ctx, "SAVEPOINT upsert_row"); err != nil {
			return saved, eris.Wrap(err, "failed to set savepoint")
		}
		if err := upsert(r); err != nil {
			logger.Warn("Skipping upsert for '%s': %v", r.Name, err)
			if _, rbErr := tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT upsert_row"); rbErr != nil {
				return saved, eris.Wrap(rbErr, "failed to roll back row")
			}
			continue
		}
		if _, err := tx.ExecContext(ctx, "RELEASE SAVEPOINT upsert_row"); err != nil {
			return saved, eris.Wrap(err, "failed to release savepoint")
		}
		saved++
	}
	return saved, nil
}

// Close closes the database connection
func (w *PostgresWriter) Close() error {
	if w.db != nil {
		return w.db.Close()
	}
	return nil
}
