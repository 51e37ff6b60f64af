package storage

import (
	"context"

	"maps-lead-scraper/models"
)

// RecordSink stores a finished run's records after the hand-off artifact is
// complete. Sinks are optional and their failures are not fatal.
type RecordSink interface {
	Name() string
	Save(ctx context.Context, records []models.FinalRecord) error
	Close() error
}
