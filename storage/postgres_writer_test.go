package storage

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maps-lead-scraper/models"
	"maps-lead-scraper/utils"
)

// recordingTx logs every statement and fails the ones listed in failOn
type recordingTx struct {
	statements []string
	failOn     map[string]bool
}

func (tx *recordingTx) ExecContext(_ context.Context, query string, _ ...interface{}) (sql.Result, error) {
	tx.statements = append(tx.statements, query)
	if tx.failOn[query] {
		return nil, errors.New("pq: current transaction is aborted")
	}
	return nil, nil
}

func TestUpsertEachRollsBackOnlyTheRejectedRow(t *testing.T) {
	tx := &recordingTx{}
	records := []models.FinalRecord{{Name: "A"}, {Name: "B"}, {Name: "C"}}

	saved, err := upsertEach(context.Background(), tx, records, func(r models.FinalRecord) error {
		if r.Name == "B" {
			return errors.New("pq: value too long for type character varying(16)")
		}
		return nil
	}, utils.NewNopLogger())

	require.NoError(t, err)
	assert.Equal(t, 2, saved)
	assert.Equal(t, []string{
		"SAVEPOINT upsert_row", "RELEASE SAVEPOINT upsert_row",
		"SAVEPOINT upsert_row", "ROLLBACK TO SAVEPOINT upsert_row",
		"SAVEPOINT upsert_row", "RELEASE SAVEPOINT upsert_row",
	}, tx.statements)
}

func TestUpsertEachStopsWhenRollbackFails(t *testing.T) {
	tx := &recordingTx{failOn: map[string]bool{"ROLLBACK TO SAVEPOINT upsert_row": true}}
	records := []models.FinalRecord{{Name: "A"}, {Name: "B"}}

	saved, err := upsertEach(context.Background(), tx, records, func(models.FinalRecord) error {
		return errors.New("rejected")
	}, utils.NewNopLogger())

	require.Error(t, err)
	assert.Equal(t, 0, saved)
	assert.Len(t, tx.statements, 2)
}
