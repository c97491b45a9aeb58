// Package service assembles the support agent views of a patient from identity
// resolution, account data, audits and blocked access.
package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	accountModels "healthgateway/internal/account/models"
	"healthgateway/internal/audit"
	patientModels "healthgateway/internal/patient/models"
	"healthgateway/internal/support/models"
	dErrors "healthgateway/pkg/domain-errors"
	"healthgateway/pkg/platform/cacheprovider"
)

const dependentDelegateLimit = 25

var tracer = otel.Tracer("healthgateway/support/service")

type PatientRepository interface {
	Query(ctx context.Context, query patientModels.PatientDetailsQuery) (*patientModels.PatientQueryResult, error)
	GetDataSources(ctx context.Context, hdid string) ([]patientModels.DataSource, error)
	BlockAccess(ctx context.Context, cmd patientModels.BlockAccessCommand) error
}

type UserProfileStore interface {
	GetUserProfile(ctx context.Context, hdid string) (*accountModels.UserProfile, error)
	GetUserProfiles(ctx context.Context, queryType accountModels.UserQueryType, value string) ([]accountModels.UserProfile, error)
}

type MessagingVerificationStore interface {
	GetUserMessageVerifications(ctx context.Context, hdid string) ([]accountModels.MessagingVerification, error)
}

type ResourceDelegateStore interface {
	Search(ctx context.Context, query accountModels.ResourceDelegateQuery) (accountModels.ResourceDelegateQueryResult, error)
}

type AuditReader interface {
	List(ctx context.Context, query audit.AgentAuditQuery) ([]audit.AgentAudit, error)
}

// Service serves support agent queries.
type Service struct {
	patients      PatientRepository
	profiles      UserProfileStore
	verifications MessagingVerificationStore
	delegates     ResourceDelegateStore
	audits        AuditReader
	cache         cacheprovider.Provider
	location      *time.Location
	concurrency   int
	logger        *slog.Logger
}

type Option func(*Service)

// WithLocation sets the time zone messaging verification times are shown in.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithConcurrency bounds the parallel patient lookups of a profile search.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func New(
	patients PatientRepository,
	profiles UserProfileStore,
	verifications MessagingVerificationStore,
	delegates ResourceDelegateStore,
	audits AuditReader,
	cache cacheprovider.Provider,
	opts ...Option,
) *Service {
	s := &Service{
		patients:      patients,
		profiles:      profiles,
		verifications: verifications,
		delegates:     delegates,
		audits:        audits,
		cache:         cache,
		location:      time.UTC,
		concurrency:   8,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetPatientSupportDetails merges verifications, agent actions and the freshly
// loaded blocked data sources for hdid.
func (s *Service) GetPatientSupportDetails(ctx context.Context, hdid string) (*models.PatientSupportDetails, error) {
	ctx, span := tracer.Start(ctx, "support.get_patient_support_details")
	defer span.End()

	if hdid == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "hdid is required")
	}

	verifications, err := s.verifications.GetUserMessageVerifications(ctx, hdid)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load messaging verifications")
	}
	audits, err := s.audits.List(ctx, audit.AgentAuditQuery{Hdid: hdid})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load agent audits")
	}

	key := cacheprovider.BlockedAccessKey(hdid)
	s.logger.DebugContext(ctx, "removing cached blocked access", "key", key)
	if err := s.cache.RemoveItem(ctx, key); err != nil {
		s.logger.WarnContext(ctx, "failed to remove cached blocked access", "key", key, "error", err)
	}

	dataSources, err := s.patients.GetDataSources(ctx, hdid)
	if err != nil {
		return nil, err
	}

	details := &models.PatientSupportDetails{
		MessagingVerifications: make([]accountModels.MessagingVerification, 0, len(verifications)),
		AgentActions:           make([]models.AgentAction, 0, len(audits)),
		BlockedDataSources:     dataSources,
	}
	for _, v := range verifications {
		details.MessagingVerifications = append(details.MessagingVerifications, v.InLocation(s.location))
	}
	for _, a := range audits {
		details.AgentActions = append(details.AgentActions, models.NewAgentAction(a))
	}
	return details, nil
}

// GetPatients searches patients by identifier, dependent PHN, email or SMS number.
func (s *Service) GetPatients(ctx context.Context, queryType models.PatientQueryType, queryString string) ([]models.PatientSupportResult, error) {
	ctx, span := tracer.Start(ctx, "support.get_patients")
	defer span.End()
	span.SetAttributes(attribute.String("query_type", string(queryType)))

	switch queryType {
	case models.QueryHdid, models.QueryPhn:
		kind := patientModels.IdentifierHdid
		if queryType == models.QueryPhn {
			kind = patientModels.IdentifierPhn
		}
		result, err := s.supportResultByIdentifier(ctx, kind, queryString)
		if err != nil {
			return nil, err
		}
		if result == nil {
			return []models.PatientSupportResult{}, nil
		}
		return []models.PatientSupportResult{*result}, nil
	}

	var (
		profiles []accountModels.UserProfile
		err      error
	)
	switch queryType {
	case models.QueryDependent:
		profiles, err = s.delegateProfiles(ctx, queryString)
	case models.QueryEmail:
		profiles, err = s.profiles.GetUserProfiles(ctx, accountModels.UserQueryEmail, queryString)
	case models.QuerySms:
		profiles, err = s.profiles.GetUserProfiles(ctx, accountModels.UserQuerySms, queryString)
	default:
		return nil, dErrors.New(dErrors.CodeBadRequest, "Unknown queryType")
	}
	if err != nil {
		return nil, err
	}
	return s.supportResultsForProfiles(ctx, profiles)
}

// BlockAccess replaces the data sources blocked for hdid.
func (s *Service) BlockAccess(ctx context.Context, hdid string, dataSources []patientModels.DataSource, reason string) error {
	return s.patients.BlockAccess(ctx, patientModels.BlockAccessCommand{
		Hdid:        hdid,
		DataSources: dataSources,
		Reason:      reason,
	})
}

func (s *Service) delegateProfiles(ctx context.Context, dependentPhn string) ([]accountModels.UserProfile, error) {
	dependent, err := s.getPatient(ctx, patientModels.IdentifierPhn, dependentPhn)
	if err != nil {
		return nil, err
	}
	if dependent == nil {
		return nil, nil
	}
	result, err := s.delegates.Search(ctx, accountModels.ResourceDelegateQuery{
		ByOwnerHdid:    dependent.Hdid,
		IncludeProfile: true,
		TakeAmount:     dependentDelegateLimit,
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to search resource delegates")
	}
	profiles := make([]accountModels.UserProfile, 0, len(result.Items))
	for _, rd := range result.Items {
		if rd.UserProfile != nil {
			profiles = append(profiles, *rd.UserProfile)
		}
	}
	return profiles, nil
}

func (s *Service) supportResultByIdentifier(ctx context.Context, kind patientModels.IdentifierType, identifier string) (*models.PatientSupportResult, error) {
	patient, err := s.getPatient(ctx, kind, identifier)
	if err != nil {
		return nil, err
	}

	hdid := identifier
	if kind != patientModels.IdentifierHdid {
		hdid = ""
		if patient != nil {
			hdid = patient.Hdid
		}
	}
	var profile *accountModels.UserProfile
	if hdid != "" {
		profile, err = s.profiles.GetUserProfile(ctx, hdid)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user profile")
		}
	}

	if patient == nil && profile == nil {
		return nil, nil
	}
	result := toSupportResult(patient, profile)
	return &result, nil
}

// supportResultsForProfiles resolves each profile's patient concurrently and
// keeps the input order.
func (s *Service) supportResultsForProfiles(ctx context.Context, profiles []accountModels.UserProfile) ([]models.PatientSupportResult, error) {
	results := make([]models.PatientSupportResult, len(profiles))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i := range profiles {
		profile := &profiles[i]
		g.Go(func() error {
			patient, err := s.getPatient(gctx, patientModels.IdentifierHdid, profile.Hdid)
			if err != nil {
				return err
			}
			results[i] = toSupportResult(patient, profile)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// getPatient resolves a patient without the cache. Not found yields nil.
func (s *Service) getPatient(ctx context.Context, kind patientModels.IdentifierType, identifier string) (*patientModels.PatientModel, error) {
	query := patientModels.PatientDetailsQuery{Hdid: identifier, Source: patientModels.SourceAll}
	if kind == patientModels.IdentifierPhn {
		query = patientModels.PatientDetailsQuery{Phn: identifier, Source: patientModels.SourceEmpi}
	}

	result, err := s.patients.Query(ctx, query)
	if dErrors.HasCode(err, dErrors.CodeNotFound) {
		s.logger.DebugContext(ctx, "patient not found", "identifier_type", kind)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if result == nil || len(result.Items) == 0 {
		return nil, nil
	}
	patient := result.Items[0]
	return &patient, nil
}

func toSupportResult(patient *patientModels.PatientModel, profile *accountModels.UserProfile) models.PatientSupportResult {
	var result models.PatientSupportResult
	if patient != nil {
		result = models.PatientSupportResult{
			WarningMessage:       patient.WarningMessage(),
			Hdid:                 patient.Hdid,
			PersonalHealthNumber: patient.Phn,
			CommonName:           patient.CommonName,
			LegalName:            patient.LegalName,
			PhysicalAddress:      patient.PhysicalAddress.SingleLine(),
			PostalAddress:        patient.PostalAddress.SingleLine(),
		}
		if !patient.Birthdate.IsZero() {
			result.Birthdate = patient.Birthdate.Format(time.DateOnly)
		}
	}

	switch {
	case patient == nil:
		result.Status = models.StatusNotFound
	case patient.IsDeceased:
		result.Status = models.StatusDeceased
	case profile == nil:
		result.Status = models.StatusNotUser
	default:
		result.Status = models.StatusDefault
	}

	if profile != nil {
		created := profile.CreatedDateTime
		result.ProfileCreatedDateTime = &created
		result.ProfileLastLoginDateTime = profile.LastLoginDateTime
		if patient == nil {
			result.Hdid = profile.Hdid
		}
	}
	return result
}
