// Package store persists per-patient blocked data sources.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/lib/pq"

	"healthgateway/internal/patient/models"
	txcontext "healthgateway/pkg/platform/tx"
)

// BlockedAccessStore reads and replaces rows in blocked_access. A patient with
// no row has no blocked data sources.
type BlockedAccessStore struct {
	db *sql.DB
}

func NewBlockedAccessStore(db *sql.DB) *BlockedAccessStore {
	return &BlockedAccessStore{db: db}
}

// GetDataSources returns the blocked data sources for hdid, sorted.
func (s *BlockedAccessStore) GetDataSources(ctx context.Context, hdid string) ([]models.DataSource, error) {
	query := `SELECT data_sources FROM blocked_access WHERE hdid = $1`

	var raw []string
	err := txcontext.Use(ctx, s.db).QueryRowContext(ctx, query, hdid).Scan(pq.Array(&raw))
	if errors.Is(err, sql.ErrNoRows) {
		return []models.DataSource{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query blocked access: %w", err)
	}
	sources := make([]models.DataSource, 0, len(raw))
	for _, r := range raw {
		sources = append(sources, models.DataSource(r))
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i] < sources[j] })
	return sources, nil
}

// ReplaceDataSources overwrites the blocked set. An empty set deletes the row.
// It joins the transaction in ctx if any.
func (s *BlockedAccessStore) ReplaceDataSources(ctx context.Context, hdid string, sources []models.DataSource) error {
	exec := txcontext.Use(ctx, s.db)
	if len(sources) == 0 {
		if _, err := exec.ExecContext(ctx, `DELETE FROM blocked_access WHERE hdid = $1`, hdid); err != nil {
			return fmt.Errorf("delete blocked access: %w", err)
		}
		return nil
	}

	raw := make([]string, len(sources))
	for i, ds := range sources {
		raw[i] = string(ds)
	}
	query := `
		INSERT INTO blocked_access (hdid, data_sources, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (hdid) DO UPDATE SET
			data_sources = EXCLUDED.data_sources,
			updated_at = NOW()
	`
	if _, err := exec.ExecContext(ctx, query, hdid, pq.Array(raw)); err != nil {
		return fmt.Errorf("upsert blocked access: %w", err)
	}
	return nil
}
