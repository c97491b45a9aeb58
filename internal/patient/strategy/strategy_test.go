package strategy

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"healthgateway/internal/patient/cache"
	"healthgateway/internal/patient/metrics"
	"healthgateway/internal/patient/models"
	"healthgateway/internal/patient/providers"
	"healthgateway/internal/patient/providers/mocks"
	dErrors "healthgateway/pkg/domain-errors"
	"healthgateway/pkg/platform/cacheprovider"
)

const (
	hdid     = "P6FFO433A5WPMVTGM7T4ZVWBKCSVNAYGTWTU3J2LWMGUMERKI72A"
	validPhn = "9735361219"
	badPhn   = "9219735361"
)

type StrategySuite struct {
	suite.Suite
	ctrl           *gomock.Controller
	clientRegistry *mocks.MockProvider
	empi           *mocks.MockProvider
	memory         *cacheprovider.MemoryCache
	metrics        *metrics.Metrics
	dispatcher     *Dispatcher
	ctx            context.Context
}

func TestStrategySuite(t *testing.T) {
	suite.Run(t, new(StrategySuite))
}

func (s *StrategySuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.clientRegistry = newMockProvider(s.ctrl, "client-registry", models.SourceClientRegistry)
	s.empi = newMockProvider(s.ctrl, "empi", models.SourceEmpi)

	registry := providers.NewProviderRegistry()
	s.Require().NoError(registry.Register(s.clientRegistry))
	s.Require().NoError(registry.Register(s.empi))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.memory = cacheprovider.NewMemoryCache()
	s.metrics = metrics.New(prometheus.NewRegistry())
	patientCache := cache.New(s.memory, time.Hour, cache.WithMetrics(s.metrics), cache.WithLogger(logger))

	var err error
	s.dispatcher, err = NewDispatcher(registry, patientCache, WithMetrics(s.metrics), WithLogger(logger))
	s.Require().NoError(err)
	s.ctx = context.Background()
}

func (s *StrategySuite) TearDownTest() {
	s.ctrl.Finish()
}

func newMockProvider(ctrl *gomock.Controller, id string, source models.Source) *mocks.MockProvider {
	m := mocks.NewMockProvider(ctrl)
	m.EXPECT().ID().Return(id).AnyTimes()
	m.EXPECT().Capabilities().Return(providers.Capabilities{Source: source}).AnyTimes()
	return m
}

func patient() *models.PatientModel {
	return &models.PatientModel{Hdid: hdid, Phn: validPhn, CommonName: &models.Name{GivenName: "Ben", Surname: "Tester"}}
}

func lookupReq(kind models.IdentifierType, id string) providers.LookupRequest {
	return providers.LookupRequest{IdentifierType: kind, Identifier: id}
}

// =============================================================================
// Dispatch table
// =============================================================================

func (s *StrategySuite) TestHdidAllUsesClientRegistryFirst() {
	s.clientRegistry.EXPECT().Lookup(gomock.Any(), lookupReq(models.IdentifierHdid, hdid)).Return(patient(), nil)

	got, err := s.dispatcher.GetPatient(s.ctx, models.PatientDetailsQuery{Hdid: hdid, Source: models.SourceAll})
	s.Require().NoError(err)
	s.Equal(hdid, got.Hdid)
}

func (s *StrategySuite) TestHdidAllFallsBackOnNotFound() {
	s.clientRegistry.EXPECT().Lookup(gomock.Any(), gomock.Any()).
		Return(nil, providers.NewProviderError(providers.ErrorNotFound, "client-registry", "Client Registry did not find any records", nil))
	s.empi.EXPECT().Lookup(gomock.Any(), lookupReq(models.IdentifierHdid, hdid)).Return(patient(), nil)

	got, err := s.dispatcher.GetPatient(s.ctx, models.PatientDetailsQuery{Hdid: hdid, Source: models.SourceAll})
	s.Require().NoError(err)
	s.Equal(validPhn, got.Phn)
}

func (s *StrategySuite) TestHdidAllFallsBackOnOutage() {
	s.clientRegistry.EXPECT().Lookup(gomock.Any(), gomock.Any()).
		Return(nil, providers.NewProviderError(providers.ErrorProviderOutage, "client-registry", "down", nil))
	s.empi.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(patient(), nil)

	_, err := s.dispatcher.GetPatient(s.ctx, models.PatientDetailsQuery{Hdid: hdid, Source: models.SourceAll})
	s.Require().NoError(err)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.LookupErrors.WithLabelValues("client-registry", "provider_outage")))
}

func (s *StrategySuite) TestHdidAllStopsOnBadData() {
	s.clientRegistry.EXPECT().Lookup(gomock.Any(), gomock.Any()).
		Return(nil, providers.NewProviderError(providers.ErrorBadData, "client-registry", "PHN is invalid", nil))

	_, err := s.dispatcher.GetPatient(s.ctx, models.PatientDetailsQuery{Hdid: hdid, Source: models.SourceAll})
	s.True(dErrors.Is(err, dErrors.CodeValidation))
}

func (s *StrategySuite) TestHdidAllBothMissingIsNotFound() {
	notFound := providers.NewProviderError(providers.ErrorNotFound, "x", "Client Registry did not return a person", nil)
	s.clientRegistry.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(nil, notFound)
	s.empi.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(nil, notFound)

	_, err := s.dispatcher.GetPatient(s.ctx, models.PatientDetailsQuery{Hdid: hdid, Source: models.SourceAll})
	s.True(dErrors.Is(err, dErrors.CodeNotFound))
}

func (s *StrategySuite) TestSingleSourceStrategies() {
	s.Run("hdid empi", func() {
		s.empi.EXPECT().Lookup(gomock.Any(), lookupReq(models.IdentifierHdid, hdid)).Return(patient(), nil)
		_, err := s.dispatcher.GetPatient(s.ctx, models.PatientDetailsQuery{Hdid: hdid, Source: models.SourceEmpi})
		s.NoError(err)
	})

	s.Run("hdid client registry does not fall back", func() {
		s.clientRegistry.EXPECT().Lookup(gomock.Any(), gomock.Any()).
			Return(nil, providers.NewProviderError(providers.ErrorTimeout, "client-registry", "slow", nil))
		_, err := s.dispatcher.GetPatient(s.ctx, models.PatientDetailsQuery{Hdid: hdid, Source: models.SourceClientRegistry})
		s.True(dErrors.Is(err, dErrors.CodeTimeout))
	})

	s.Run("phn empi", func() {
		s.empi.EXPECT().Lookup(gomock.Any(), lookupReq(models.IdentifierPhn, validPhn)).Return(patient(), nil)
		_, err := s.dispatcher.GetPatient(s.ctx, models.PatientDetailsQuery{Phn: validPhn, Source: models.SourceEmpi})
		s.NoError(err)
	})

	s.Run("phn client registry", func() {
		s.clientRegistry.EXPECT().Lookup(gomock.Any(), lookupReq(models.IdentifierPhn, validPhn)).Return(patient(), nil)
		_, err := s.dispatcher.GetPatient(s.ctx, models.PatientDetailsQuery{Phn: validPhn, Source: models.SourceClientRegistry})
		s.NoError(err)
	})

	s.Run("phn all falls back to empi", func() {
		s.clientRegistry.EXPECT().Lookup(gomock.Any(), gomock.Any()).
			Return(nil, providers.NewProviderError(providers.ErrorRateLimited, "client-registry", "slow down", nil))
		s.empi.EXPECT().Lookup(gomock.Any(), lookupReq(models.IdentifierPhn, validPhn)).Return(patient(), nil)
		_, err := s.dispatcher.GetPatient(s.ctx, models.PatientDetailsQuery{Phn: validPhn, Source: models.SourceAll})
		s.NoError(err)
	})
}

func (s *StrategySuite) TestInvalidPhnNeverReachesProviders() {
	for _, source := range []models.Source{models.SourceAll, models.SourceEmpi, models.SourceClientRegistry} {
		_, err := s.dispatcher.GetPatient(s.ctx, models.PatientDetailsQuery{Phn: badPhn, Source: source})
		s.True(dErrors.Is(err, dErrors.CodeValidation), "source %s", source)
	}
}

func (s *StrategySuite) TestUnknownPairIsBadRequest() {
	_, err := s.dispatcher.GetPatient(s.ctx, models.PatientDetailsQuery{Hdid: hdid, Source: "Pharmanet"})
	s.True(dErrors.Is(err, dErrors.CodeBadRequest))

	_, err = s.dispatcher.GetPatient(s.ctx, models.PatientDetailsQuery{Hdid: hdid, Phn: validPhn, Source: models.SourceAll})
	s.True(dErrors.Is(err, dErrors.CodeBadRequest))
}

func (s *StrategySuite) TestNilPatientWithoutErrorIsNotFound() {
	s.empi.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(nil, nil)
	_, err := s.dispatcher.GetPatient(s.ctx, models.PatientDetailsQuery{Hdid: hdid, Source: models.SourceEmpi})
	s.True(dErrors.Is(err, dErrors.CodeNotFound))
}

// =============================================================================
// Cache interaction
// =============================================================================

func (s *StrategySuite) TestResultIsCachedAndServedFromCache() {
	s.empi.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(patient(), nil).Times(1)

	_, err := s.dispatcher.GetPatient(s.ctx, models.PatientDetailsQuery{Hdid: hdid, Source: models.SourceEmpi, UseCache: true})
	s.Require().NoError(err)

	got, err := s.dispatcher.GetPatient(s.ctx, models.PatientDetailsQuery{Phn: validPhn, Source: models.SourceEmpi, UseCache: true})
	s.Require().NoError(err)
	s.Equal(hdid, got.Hdid)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.CacheHits.WithLabelValues(cache.Domain)))
}

func (s *StrategySuite) TestUseCacheFalseSkipsRead() {
	s.empi.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(patient(), nil).Times(2)

	for range 2 {
		_, err := s.dispatcher.GetPatient(s.ctx, models.PatientDetailsQuery{Hdid: hdid, Source: models.SourceEmpi})
		s.Require().NoError(err)
	}
}

func (s *StrategySuite) TestDisabledValidationIsNotCached() {
	s.empi.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(patient(), nil)
	s.Require().NoError(s.memory.AddItem(s.ctx, cache.Key(models.IdentifierHdid, hdid), patient(), time.Minute))

	_, err := s.dispatcher.GetPatient(s.ctx, models.PatientDetailsQuery{Hdid: hdid, Source: models.SourceEmpi, DisabledValidation: true})
	s.Require().NoError(err)

	found, err := s.memory.GetItem(s.ctx, cache.Key(models.IdentifierHdid, hdid), &models.PatientModel{})
	s.Require().NoError(err)
	s.False(found)
}

func TestNewDispatcherRequiresBothSources(t *testing.T) {
	ctrl := gomock.NewController(t)
	registry := providers.NewProviderRegistry()
	_ = registry.Register(newMockProvider(ctrl, "empi", models.SourceEmpi))

	_, err := NewDispatcher(registry, nil)
	if err == nil {
		t.Fatal("expected error when client registry is missing")
	}
}
