// Package outbox implements the transactional outbox: events are written in the
// same transaction as the state change and relayed to Kafka afterwards.
package outbox

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"healthgateway/pkg/platform/sentinel"
	txcontext "healthgateway/pkg/platform/tx"
)

// Entry is one outbox row.
type Entry struct {
	ID            uuid.UUID
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       json.RawMessage
	CreatedAt     time.Time
}

// Store persists outbox entries with database/sql.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

func New(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Append marshals payload and inserts it, joining the transaction in ctx if any.
func (s *Store) Append(ctx context.Context, aggregateType, aggregateID, eventType string, payload any) (uuid.UUID, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return uuid.Nil, fmt.Errorf("marshal outbox payload: %w", err)
	}
	entryID := uuid.New()
	query := `
		INSERT INTO outbox (id, aggregate_type, aggregate_id, event_type, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = txcontext.Use(ctx, s.db).ExecContext(ctx, query,
		entryID,
		aggregateType,
		aggregateID,
		eventType,
		payloadBytes,
		s.now(),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert outbox entry: %w", err)
	}
	return entryID, nil
}

// ClaimPending locks up to limit unpublished rows. It must run inside a
// transaction so the row locks are held until MarkPublished commits.
func (s *Store) ClaimPending(ctx context.Context, limit int) ([]Entry, error) {
	query := `
		SELECT id, aggregate_type, aggregate_id, event_type, payload, created_at
		FROM outbox
		WHERE published_at IS NULL
		ORDER BY created_at
		LIMIT $1
		FOR UPDATE SKIP LOCKED
	`
	rows, err := txcontext.Use(ctx, s.db).QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("claim outbox entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry   Entry
			payload []byte
		)
		if err := rows.Scan(&entry.ID, &entry.AggregateType, &entry.AggregateID, &entry.EventType, &payload, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan outbox entry: %w", err)
		}
		entry.Payload = append(json.RawMessage(nil), payload...)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outbox entries: %w", err)
	}
	return entries, nil
}

// MarkPublished stamps an entry as delivered. It returns sentinel.ErrNotFound
// when the entry is missing or was already published.
func (s *Store) MarkPublished(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE outbox SET published_at = $2 WHERE id = $1 AND published_at IS NULL`
	res, err := txcontext.Use(ctx, s.db).ExecContext(ctx, query, id, s.now())
	if err != nil {
		return fmt.Errorf("mark outbox published: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark outbox published: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("mark outbox published %s: %w", id, sentinel.ErrNotFound)
	}
	return nil
}
