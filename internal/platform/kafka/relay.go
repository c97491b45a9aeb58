package kafka

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"healthgateway/pkg/platform/outbox"
	"healthgateway/pkg/platform/sentinel"
)

// Message is a record handed to a Publisher.
type Message struct {
	Topic   string
	Key     []byte
	Value   []byte
	Headers map[string]string
}

type Publisher interface {
	Publish(ctx context.Context, msg Message) error
}

type OutboxStore interface {
	ClaimPending(ctx context.Context, limit int) ([]outbox.Entry, error)
	MarkPublished(ctx context.Context, id uuid.UUID) error
}

type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Relay drains the outbox to Kafka. Each batch is claimed with row locks inside
// one transaction; entries published before a failure are still marked.
type Relay struct {
	store     OutboxStore
	tx        TxRunner
	publisher Publisher
	topic     string
	batchSize int
	interval  time.Duration
	logger    *slog.Logger
}

type RelayOption func(*Relay)

func WithBatchSize(n int) RelayOption {
	return func(r *Relay) {
		if n > 0 {
			r.batchSize = n
		}
	}
}

func WithInterval(d time.Duration) RelayOption {
	return func(r *Relay) {
		if d > 0 {
			r.interval = d
		}
	}
}

func WithLogger(logger *slog.Logger) RelayOption {
	return func(r *Relay) {
		r.logger = logger
	}
}

func NewRelay(store OutboxStore, tx TxRunner, publisher Publisher, topic string, opts ...RelayOption) *Relay {
	r := &Relay{
		store:     store,
		tx:        tx,
		publisher: publisher,
		topic:     topic,
		batchSize: 50,
		interval:  2 * time.Second,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run drains on every tick until ctx is cancelled.
func (r *Relay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := r.Drain(ctx); err != nil && ctx.Err() == nil {
				r.logger.ErrorContext(ctx, "outbox relay failed", "error", err)
			}
		}
	}
}

// Drain publishes one batch and returns how many entries were marked published.
func (r *Relay) Drain(ctx context.Context) (int, error) {
	published := 0
	err := r.tx.RunInTx(ctx, func(ctx context.Context) error {
		entries, err := r.store.ClaimPending(ctx, r.batchSize)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			if err := r.publisher.Publish(ctx, r.message(entry)); err != nil {
				r.logger.WarnContext(ctx, "outbox publish failed",
					"event_id", entry.ID,
					"event_type", entry.EventType,
					"error", err,
				)
				break
			}
			err := r.store.MarkPublished(ctx, entry.ID)
			if errors.Is(err, sentinel.ErrNotFound) {
				r.logger.WarnContext(ctx, "outbox entry already published", "event_id", entry.ID)
				continue
			}
			if err != nil {
				return err
			}
			published++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if published > 0 {
		r.logger.DebugContext(ctx, "outbox relayed", "count", published)
	}
	return published, nil
}

func (r *Relay) message(entry outbox.Entry) Message {
	return Message{
		Topic: r.topic,
		Key:   []byte(entry.AggregateID),
		Value: entry.Payload,
		Headers: map[string]string{
			"event_id":       entry.ID.String(),
			"event_type":     entry.EventType,
			"aggregate_type": entry.AggregateType,
			"created_at":     entry.CreatedAt.UTC().Format(time.RFC3339Nano),
		},
	}
}
