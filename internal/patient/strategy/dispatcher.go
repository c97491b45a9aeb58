package strategy

import (
	"context"
	"fmt"
	"log/slog"

	"healthgateway/internal/patient/cache"
	"healthgateway/internal/patient/metrics"
	"healthgateway/internal/patient/models"
	"healthgateway/internal/patient/providers"
	dErrors "healthgateway/pkg/domain-errors"
)

type key struct {
	kind   models.IdentifierType
	source models.Source
}

// Dispatcher picks the Strategy for an (identifier type, source) pair.
type Dispatcher struct {
	strategies map[key]Strategy
	logger     *slog.Logger
}

type Option func(*options)

type options struct {
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// NewDispatcher wires the six resolution strategies from the registry's
// client registry and EMPI providers.
func NewDispatcher(registry *providers.ProviderRegistry, patientCache *cache.PatientCache, opts ...Option) (*Dispatcher, error) {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	clientRegistry, ok := registry.BySource(models.SourceClientRegistry)
	if !ok {
		return nil, fmt.Errorf("no provider registered for %s: %w", models.SourceClientRegistry, providers.ErrProviderNotFound)
	}
	empi, ok := registry.BySource(models.SourceEmpi)
	if !ok {
		return nil, fmt.Errorf("no provider registered for %s: %w", models.SourceEmpi, providers.ErrProviderNotFound)
	}

	newStrategy := func(name string, kind models.IdentifierType, validatePhn bool, chain ProviderChain) Strategy {
		return &chainStrategy{
			name:        name,
			kind:        kind,
			validatePhn: validatePhn,
			chain:       chain,
			cache:       patientCache,
			metrics:     o.metrics,
			logger:      o.logger,
		}
	}
	crThenEmpi := ProviderChain{Primary: clientRegistry, Secondary: []providers.Provider{empi}}

	d := &Dispatcher{
		logger: o.logger,
		strategies: map[key]Strategy{
			{models.IdentifierHdid, models.SourceAll}:            newStrategy("hdid_all", models.IdentifierHdid, false, crThenEmpi),
			{models.IdentifierHdid, models.SourceEmpi}:           newStrategy("hdid_empi", models.IdentifierHdid, false, ProviderChain{Primary: empi}),
			{models.IdentifierHdid, models.SourceClientRegistry}: newStrategy("hdid_client_registry", models.IdentifierHdid, false, ProviderChain{Primary: clientRegistry}),
			{models.IdentifierPhn, models.SourceEmpi}:            newStrategy("phn_empi", models.IdentifierPhn, true, ProviderChain{Primary: empi}),
			{models.IdentifierPhn, models.SourceAll}:             newStrategy("phn_all", models.IdentifierPhn, true, crThenEmpi),
			{models.IdentifierPhn, models.SourceClientRegistry}:  newStrategy("phn_client_registry", models.IdentifierPhn, true, ProviderChain{Primary: clientRegistry}),
		},
	}
	return d, nil
}

// Resolve returns the strategy for kind and source.
func (d *Dispatcher) Resolve(kind models.IdentifierType, source models.Source) (Strategy, error) {
	s, ok := d.strategies[key{kind, source}]
	if !ok {
		return nil, dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf("unsupported patient query: %s by %s", source, kind))
	}
	return s, nil
}

// GetPatient runs query through its strategy.
func (d *Dispatcher) GetPatient(ctx context.Context, query models.PatientDetailsQuery) (*models.PatientModel, error) {
	if (query.Hdid == "") == (query.Phn == "") {
		return nil, dErrors.New(dErrors.CodeBadRequest, "exactly one of hdid or phn must be provided")
	}
	kind, identifier := query.Identifier()
	s, err := d.Resolve(kind, query.Source)
	if err != nil {
		return nil, err
	}
	return s.GetPatient(ctx, Request{
		Identifier:         identifier,
		UseCache:           query.UseCache,
		DisabledValidation: query.DisabledValidation,
	})
}
