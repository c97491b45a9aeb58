// Package service is the patient repository: identity queries through the
// resolution strategies and per-patient blocked data sources.
package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"healthgateway/internal/audit"
	patientmetrics "healthgateway/internal/patient/metrics"
	"healthgateway/internal/patient/models"
	dErrors "healthgateway/pkg/domain-errors"
	"healthgateway/pkg/platform/cacheprovider"
	"healthgateway/pkg/requestcontext"
)

// EventDataSourcesBlocked is the outbox event type written by BlockAccess.
const EventDataSourcesBlocked = "DataSourcesBlocked"

var tracer = otel.Tracer("healthgateway/patient/service")

type PatientResolver interface {
	GetPatient(ctx context.Context, query models.PatientDetailsQuery) (*models.PatientModel, error)
}

type BlockedAccessStore interface {
	GetDataSources(ctx context.Context, hdid string) ([]models.DataSource, error)
	ReplaceDataSources(ctx context.Context, hdid string, sources []models.DataSource) error
}

type AuditEmitter interface {
	Emit(ctx context.Context, audit audit.AgentAudit) error
}

type OutboxWriter interface {
	Append(ctx context.Context, aggregateType, aggregateID, eventType string, payload any) (uuid.UUID, error)
}

// TxRunner runs fn in one SQL transaction carried through ctx.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// DataSourcesBlocked is the outbox payload for a blocked access change.
type DataSourcesBlocked struct {
	Hdid          string              `json:"hdid"`
	DataSources   []models.DataSource `json:"dataSources"`
	AgentUsername string              `json:"agentUsername"`
	Reason        string              `json:"reason"`
	OccurredAt    time.Time           `json:"occurredAt"`
}

// Repository owns patient queries and blocked access writes.
type Repository struct {
	resolver   PatientResolver
	blocked    BlockedAccessStore
	auditor    AuditEmitter
	outbox     OutboxWriter
	tx         TxRunner
	cache      cacheprovider.Provider
	blockedTTL time.Duration
	metrics    *patientmetrics.Metrics
	logger     *slog.Logger
}

type Option func(*Repository)

// WithCache enables read-through caching of blocked data sources for ttl.
func WithCache(cache cacheprovider.Provider, ttl time.Duration) Option {
	return func(r *Repository) {
		r.cache = cache
		r.blockedTTL = ttl
	}
}

func WithMetrics(m *patientmetrics.Metrics) Option {
	return func(r *Repository) {
		r.metrics = m
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Repository) {
		r.logger = logger
	}
}

func New(resolver PatientResolver, blocked BlockedAccessStore, auditor AuditEmitter, outbox OutboxWriter, tx TxRunner, opts ...Option) *Repository {
	r := &Repository{
		resolver: resolver,
		blocked:  blocked,
		auditor:  auditor,
		outbox:   outbox,
		tx:       tx,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Query resolves one patient. A nil patient yields an empty result.
func (r *Repository) Query(ctx context.Context, query models.PatientDetailsQuery) (*models.PatientQueryResult, error) {
	patient, err := r.resolver.GetPatient(ctx, query)
	if err != nil {
		return nil, err
	}
	result := &models.PatientQueryResult{Items: []models.PatientModel{}}
	if patient != nil {
		result.Items = append(result.Items, *patient)
	}
	return result, nil
}

// GetDataSources returns the data sources blocked for hdid.
func (r *Repository) GetDataSources(ctx context.Context, hdid string) ([]models.DataSource, error) {
	ctx, span := tracer.Start(ctx, "patient.get_data_sources")
	defer span.End()

	key := cacheprovider.BlockedAccessKey(hdid)
	if r.cache != nil {
		var cached []models.DataSource
		found, err := r.cache.GetItem(ctx, key, &cached)
		if err != nil {
			r.logger.WarnContext(ctx, "blocked access cache read failed", "hdid", hdid, "error", err)
		}
		span.SetAttributes(attribute.Bool("cache.hit", found))
		if found {
			r.metrics.IncrementCacheHit(cacheprovider.BlockedAccessDomain)
			return cached, nil
		}
		r.metrics.IncrementCacheMiss(cacheprovider.BlockedAccessDomain)
	}

	sources, err := r.blocked.GetDataSources(ctx, hdid)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load blocked data sources")
	}
	if r.cache != nil && r.blockedTTL > 0 {
		if err := r.cache.AddItem(ctx, key, sources, r.blockedTTL); err != nil {
			r.logger.WarnContext(ctx, "blocked access cache write failed", "hdid", hdid, "error", err)
		}
	}
	return sources, nil
}

// BlockAccess replaces the blocked data sources, audits the change, and
// records an outbox event in one transaction.
func (r *Repository) BlockAccess(ctx context.Context, cmd models.BlockAccessCommand) error {
	ctx, span := tracer.Start(ctx, "patient.block_access")
	defer span.End()

	if err := cmd.Validate(); err != nil {
		return err
	}
	span.SetAttributes(attribute.Int("data_sources", len(cmd.DataSources)))

	err := r.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := r.blocked.ReplaceDataSources(ctx, cmd.Hdid, cmd.DataSources); err != nil {
			return err
		}
		if err := r.auditor.Emit(ctx, audit.AgentAudit{
			Hdid:          cmd.Hdid,
			Reason:        cmd.Reason,
			OperationCode: audit.OperationChangeDataSourceAccess,
			GroupCode:     audit.GroupBlockedAccess,
		}); err != nil {
			return err
		}
		sources := cmd.DataSources
		if sources == nil {
			sources = []models.DataSource{}
		}
		_, err := r.outbox.Append(ctx, "patient", cmd.Hdid, EventDataSourcesBlocked, DataSourcesBlocked{
			Hdid:          cmd.Hdid,
			DataSources:   sources,
			AgentUsername: requestcontext.AgentUsername(ctx),
			Reason:        cmd.Reason,
			OccurredAt:    requestcontext.Now(ctx).UTC(),
		})
		return err
	})
	if err != nil {
		span.RecordError(err)
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to block access")
	}

	r.InvalidateDataSources(ctx, cmd.Hdid)
	return nil
}

// InvalidateDataSources drops the cached blocked data sources for hdid.
func (r *Repository) InvalidateDataSources(ctx context.Context, hdid string) {
	if r.cache == nil {
		return
	}
	if err := r.cache.RemoveItem(ctx, cacheprovider.BlockedAccessKey(hdid)); err != nil {
		r.logger.WarnContext(ctx, "blocked access cache invalidation failed", "hdid", hdid, "error", err)
	}
}
