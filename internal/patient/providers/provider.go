package providers

//go:generate mockgen -source=provider.go -destination=mocks/mocks.go -package=mocks Provider

import (
	"context"
	"fmt"
	"sort"

	"healthgateway/internal/patient/models"
)

// Protocol defines the supported communication protocols for identity sources
type Protocol string

const (
	ProtocolHTTP Protocol = "http"
	ProtocolSOAP Protocol = "soap"
)

// Capabilities describes what a provider supports
type Capabilities struct {
	Protocol    Protocol
	Source      models.Source
	Identifiers []models.IdentifierType // identifier types the source can be queried by
	Version     string
}

// Supports reports whether the provider accepts lookups by t.
func (c Capabilities) Supports(t models.IdentifierType) bool {
	for _, id := range c.Identifiers {
		if id == t {
			return true
		}
	}
	return false
}

// LookupRequest is a single identity lookup against one source.
type LookupRequest struct {
	IdentifierType     models.IdentifierType
	Identifier         string
	DisabledValidation bool
}

// Provider is the universal interface all identity sources must implement
type Provider interface {
	// ID returns a unique identifier for this provider instance
	ID() string

	// Capabilities returns what this provider supports
	Capabilities() Capabilities

	// Lookup resolves a patient. Failures are returned as *ProviderError.
	Lookup(ctx context.Context, req LookupRequest) (*models.PatientModel, error)

	// Health checks if the provider is available
	Health(ctx context.Context) error
}

// ProviderRegistry maintains all registered providers
type ProviderRegistry struct {
	providers map[string]Provider
}

// NewProviderRegistry creates a new empty registry
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		providers: make(map[string]Provider),
	}
}

// Register adds a provider to the registry
func (r *ProviderRegistry) Register(p Provider) error {
	id := p.ID()
	if _, exists := r.providers[id]; exists {
		return fmt.Errorf("provider %s already registered", id)
	}
	r.providers[id] = p
	return nil
}

// Get retrieves a provider by ID
func (r *ProviderRegistry) Get(id string) (Provider, bool) {
	p, ok := r.providers[id]
	return p, ok
}

// BySource returns the first registered provider backing source, ordered by ID.
func (r *ProviderRegistry) BySource(source models.Source) (Provider, bool) {
	for _, p := range r.All() {
		if p.Capabilities().Source == source {
			return p, true
		}
	}
	return nil, false
}

// All returns all registered providers ordered by ID
func (r *ProviderRegistry) All() []Provider {
	result := make([]Provider, 0, len(r.providers))
	for _, p := range r.providers {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID() < result[j].ID() })
	return result
}

// HealthCheck runs Health on every provider and returns failures keyed by provider ID.
func (r *ProviderRegistry) HealthCheck(ctx context.Context) map[string]error {
	failures := make(map[string]error)
	for _, p := range r.All() {
		if err := p.Health(ctx); err != nil {
			failures[p.ID()] = err
		}
	}
	return failures
}
