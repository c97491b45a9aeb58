package providers

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthgateway/internal/patient/models"
	dErrors "healthgateway/pkg/domain-errors"
)

type fakeProvider struct {
	id     string
	source models.Source
	health error
}

func (f fakeProvider) ID() string { return f.id }
func (f fakeProvider) Capabilities() Capabilities {
	return Capabilities{Source: f.source, Identifiers: []models.IdentifierType{models.IdentifierHdid}}
}
func (f fakeProvider) Lookup(context.Context, LookupRequest) (*models.PatientModel, error) {
	return nil, nil
}
func (f fakeProvider) Health(context.Context) error { return f.health }

func TestProviderRegistry(t *testing.T) {
	r := NewProviderRegistry()
	require.NoError(t, r.Register(fakeProvider{id: "empi", source: models.SourceEmpi}))
	require.NoError(t, r.Register(fakeProvider{id: "client-registry", source: models.SourceClientRegistry, health: errors.New("down")}))
	require.Error(t, r.Register(fakeProvider{id: "empi"}))

	p, ok := r.Get("empi")
	require.True(t, ok)
	assert.Equal(t, "empi", p.ID())

	p, ok = r.BySource(models.SourceClientRegistry)
	require.True(t, ok)
	assert.Equal(t, "client-registry", p.ID())

	_, ok = r.BySource(models.SourceAll)
	assert.False(t, ok)

	all := r.All()
	require.Len(t, all, 2)
	assert.Equal(t, "client-registry", all[0].ID())

	failures := r.HealthCheck(context.Background())
	assert.Len(t, failures, 1)
	assert.Contains(t, failures, "client-registry")

	assert.True(t, p.Capabilities().Supports(models.IdentifierHdid))
	assert.False(t, p.Capabilities().Supports(models.IdentifierPhn))
}

func TestProviderErrorClassification(t *testing.T) {
	tests := []struct {
		category  ErrorCategory
		retryable bool
		code      dErrors.Code
	}{
		{ErrorTimeout, true, dErrors.CodeTimeout},
		{ErrorProviderOutage, true, dErrors.CodeUnavailable},
		{ErrorRateLimited, true, dErrors.CodeUnavailable},
		{ErrorNotFound, false, dErrors.CodeNotFound},
		{ErrorBadData, false, dErrors.CodeValidation},
		{ErrorAuthentication, false, dErrors.CodeUnavailable},
		{ErrorContractMismatch, false, dErrors.CodeUnavailable},
		{ErrorInternal, false, dErrors.CodeInternal},
	}
	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			err := fmt.Errorf("wrapped: %w", NewProviderError(tt.category, "p", "msg", nil))
			assert.Equal(t, tt.retryable, IsRetryable(err))
			assert.Equal(t, tt.category, GetCategory(err))
			assert.Equal(t, tt.code, tt.category.DomainCode())
		})
	}

	assert.Equal(t, ErrorInternal, GetCategory(errors.New("plain")))
	assert.False(t, IsRetryable(errors.New("plain")))
}

func TestTransportError(t *testing.T) {
	assert.Equal(t, ErrorTimeout, TransportError("p", "m", fmt.Errorf("x: %w", context.DeadlineExceeded)).Category)
	pe := TransportError("p", "m", errors.New("connection refused"))
	assert.Equal(t, ErrorProviderOutage, pe.Category)
	assert.Equal(t, "p lookup failed (provider_outage): m: connection refused", pe.Error())
}
