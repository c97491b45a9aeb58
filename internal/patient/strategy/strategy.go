// Package strategy resolves a patient by walking an ordered chain of identity
// sources chosen by identifier type and source scope.
package strategy

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"healthgateway/internal/patient/cache"
	"healthgateway/internal/patient/metrics"
	"healthgateway/internal/patient/models"
	"healthgateway/internal/patient/providers"
	dErrors "healthgateway/pkg/domain-errors"
	"healthgateway/pkg/platform/circuit"
)

var tracer = otel.Tracer("healthgateway/patient/strategy")

// Request carries one identifier lookup.
type Request struct {
	Identifier         string
	UseCache           bool
	DisabledValidation bool
}

// Strategy resolves a single patient.
type Strategy interface {
	GetPatient(ctx context.Context, req Request) (*models.PatientModel, error)
}

// ProviderChain lists the sources tried in order. Secondary providers are only
// consulted after a not-found or retryable failure.
type ProviderChain struct {
	Primary   providers.Provider
	Secondary []providers.Provider
}

func (c ProviderChain) all() []providers.Provider {
	return append([]providers.Provider{c.Primary}, c.Secondary...)
}

type breakerReporter interface {
	Breaker() *circuit.Breaker
}

// chainStrategy is the single Strategy implementation; instances differ by
// identifier type, chain and whether the PHN is checked first.
type chainStrategy struct {
	name        string
	kind        models.IdentifierType
	validatePhn bool
	chain       ProviderChain
	cache       *cache.PatientCache
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

func (s *chainStrategy) GetPatient(ctx context.Context, req Request) (*models.PatientModel, error) {
	ctx, span := tracer.Start(ctx, "strategy."+s.name)
	defer span.End()
	span.SetAttributes(
		attribute.String("identifier_type", string(s.kind)),
		attribute.Bool("use_cache", req.UseCache),
	)

	if s.validatePhn && !models.IsValidPhn(req.Identifier) {
		s.logger.DebugContext(ctx, "phn failed validation", "strategy", s.name)
		span.SetStatus(codes.Error, "invalid phn")
		return nil, dErrors.New(dErrors.CodeValidation, "Invalid PHN")
	}

	if req.UseCache {
		if patient := s.cache.Get(ctx, s.kind, req.Identifier); patient != nil {
			span.SetAttributes(attribute.Bool("cache_hit", true))
			return patient, nil
		}
	}

	patient, err := s.walk(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "lookup failed")
		return nil, err
	}

	s.cache.Put(ctx, patient, req.DisabledValidation)
	return patient, nil
}

func (s *chainStrategy) walk(ctx context.Context, req Request) (*models.PatientModel, error) {
	lookup := providers.LookupRequest{
		IdentifierType:     s.kind,
		Identifier:         req.Identifier,
		DisabledValidation: req.DisabledValidation,
	}

	var lastErr error
	for _, p := range s.chain.all() {
		patient, err := s.lookupProvider(ctx, p, lookup)
		if err == nil && patient != nil {
			return patient, nil
		}
		if err == nil {
			lastErr = providers.NewProviderError(providers.ErrorNotFound, p.ID(), "no patient returned", nil)
			continue
		}
		lastErr = err
		if !shouldFallback(err) {
			break
		}
		s.logger.DebugContext(ctx, "falling back to next provider",
			"strategy", s.name,
			"provider", p.ID(),
			"category", providers.GetCategory(err),
		)
	}
	return nil, translate(lastErr)
}

func (s *chainStrategy) lookupProvider(ctx context.Context, p providers.Provider, req providers.LookupRequest) (*models.PatientModel, error) {
	start := time.Now()
	patient, err := p.Lookup(ctx, req)
	outcome := "success"
	if err != nil {
		category := providers.GetCategory(err)
		outcome = string(category)
		s.metrics.IncrementLookupError(p.ID(), string(category))
		if category != providers.ErrorNotFound {
			s.logger.WarnContext(ctx, "provider lookup failed",
				"provider", p.ID(),
				"identifier_type", req.IdentifierType,
				"error", err,
			)
		}
	}
	s.metrics.ObserveLookup(p.ID(), outcome, time.Since(start))
	if br, ok := p.(breakerReporter); ok {
		s.metrics.SetBreakerOpen(p.ID(), br.Breaker().IsOpen())
	}
	return patient, err
}

func shouldFallback(err error) bool {
	return providers.GetCategory(err) == providers.ErrorNotFound || providers.IsRetryable(err)
}

// translate maps a provider failure onto the domain error taxonomy.
func translate(err error) error {
	if err == nil {
		return dErrors.New(dErrors.CodeNotFound, "Patient not found")
	}
	var pe *providers.ProviderError
	if !errors.As(err, &pe) {
		return dErrors.Wrap(err, dErrors.CodeInternal, "patient lookup failed")
	}
	return dErrors.Wrap(err, pe.Category.DomainCode(), pe.Message)
}
