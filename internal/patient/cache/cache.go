// Package cache is the cache-aside layer for resolved patients.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"healthgateway/internal/patient/metrics"
	"healthgateway/internal/patient/models"
	"healthgateway/pkg/platform/cacheprovider"
)

// Domain prefixes every patient key.
const Domain = "PatientV2"

var tracer = otel.Tracer("healthgateway/patient/cache")

// Key builds the cache key for a patient identifier.
// Format: PatientV2:{HDID|PHN}:{identifier}
func Key(kind models.IdentifierType, identifier string) string {
	return fmt.Sprintf("%s:%s:%s", Domain, kind, identifier)
}

// PatientCache reads and writes resolved patients. A zero TTL disables it.
type PatientCache struct {
	provider cacheprovider.Provider
	ttl      time.Duration
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

type Option func(*PatientCache)

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *PatientCache) {
		c.metrics = m
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *PatientCache) {
		c.logger = logger
	}
}

func New(provider cacheprovider.Provider, ttl time.Duration, opts ...Option) *PatientCache {
	c := &PatientCache{
		provider: provider,
		ttl:      ttl,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Enabled reports whether reads and writes reach the provider.
func (c *PatientCache) Enabled() bool {
	return c != nil && c.provider != nil && c.ttl > 0
}

// Get returns the cached patient or nil. Provider errors count as a miss.
func (c *PatientCache) Get(ctx context.Context, kind models.IdentifierType, identifier string) *models.PatientModel {
	if !c.Enabled() {
		return nil
	}
	ctx, span := tracer.Start(ctx, "patientcache.get")
	defer span.End()
	span.SetAttributes(attribute.String("identifier_type", string(kind)))

	var patient models.PatientModel
	found, err := c.provider.GetItem(ctx, Key(kind, identifier), &patient)
	if err != nil {
		c.logger.WarnContext(ctx, "patient cache read failed",
			"identifier_type", kind,
			"error", err,
		)
		found = false
	}
	span.SetAttributes(attribute.Bool("hit", found))
	if !found {
		c.metrics.IncrementCacheMiss(Domain)
		c.logger.DebugContext(ctx, "patient not found in cache", "identifier_type", kind)
		return nil
	}
	c.metrics.IncrementCacheHit(Domain)
	return &patient
}

// Put stores patient under its HDID and PHN keys. Nothing is cached when the
// patient is nil. A patient read with validation disabled evicts any cached
// copy instead of being stored.
func (c *PatientCache) Put(ctx context.Context, patient *models.PatientModel, disabledValidation bool) {
	if patient == nil || !c.Enabled() {
		return
	}
	if disabledValidation {
		if err := c.Invalidate(ctx, patient); err != nil {
			c.logger.WarnContext(ctx, "patient cache eviction failed", "hdid", patient.Hdid, "error", err)
		}
		return
	}
	ctx, span := tracer.Start(ctx, "patientcache.put")
	defer span.End()

	c.logger.DebugContext(ctx, "caching patient", "hdid", patient.Hdid)
	if patient.Hdid != "" {
		c.add(ctx, Key(models.IdentifierHdid, patient.Hdid), patient)
	}
	if patient.Phn != "" {
		c.add(ctx, Key(models.IdentifierPhn, patient.Phn), patient)
	}
}

func (c *PatientCache) add(ctx context.Context, key string, patient *models.PatientModel) {
	if err := c.provider.AddItem(ctx, key, patient, c.ttl); err != nil {
		c.logger.WarnContext(ctx, "patient cache write failed", "hdid", patient.Hdid, "error", err)
	}
}

// Invalidate removes both keys of patient.
func (c *PatientCache) Invalidate(ctx context.Context, patient *models.PatientModel) error {
	if patient == nil || c == nil || c.provider == nil {
		return nil
	}
	if patient.Hdid != "" {
		if err := c.provider.RemoveItem(ctx, Key(models.IdentifierHdid, patient.Hdid)); err != nil {
			return fmt.Errorf("removing hdid key: %w", err)
		}
	}
	if patient.Phn != "" {
		if err := c.provider.RemoveItem(ctx, Key(models.IdentifierPhn, patient.Phn)); err != nil {
			return fmt.Errorf("removing phn key: %w", err)
		}
	}
	return nil
}
