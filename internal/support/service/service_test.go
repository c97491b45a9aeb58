package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	accountModels "healthgateway/internal/account/models"
	"healthgateway/internal/audit"
	patientModels "healthgateway/internal/patient/models"
	"healthgateway/internal/support/models"
	"healthgateway/internal/support/service/mocks"
	dErrors "healthgateway/pkg/domain-errors"
	"healthgateway/pkg/platform/cacheprovider"
)

const (
	hdid         = "P6FFO433A5WPMVTGM7T4ZVWBKCSVNAYGTWTU3J2LWMGUMERKI72A"
	phn          = "9735361219"
	dependentPhn = "9735353315"
)

type ServiceSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	patients      *mocks.MockPatientRepository
	profiles      *mocks.MockUserProfileStore
	verifications *mocks.MockMessagingVerificationStore
	delegates     *mocks.MockResourceDelegateStore
	audits        *mocks.MockAuditReader
	cache         *cacheprovider.MemoryCache
	service       *Service
	ctx           context.Context
	vancouver     *time.Location
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.patients = mocks.NewMockPatientRepository(s.ctrl)
	s.profiles = mocks.NewMockUserProfileStore(s.ctrl)
	s.verifications = mocks.NewMockMessagingVerificationStore(s.ctrl)
	s.delegates = mocks.NewMockResourceDelegateStore(s.ctrl)
	s.audits = mocks.NewMockAuditReader(s.ctrl)
	s.cache = cacheprovider.NewMemoryCache()
	s.vancouver = time.FixedZone("PST", -8*60*60)
	s.service = New(s.patients, s.profiles, s.verifications, s.delegates, s.audits, s.cache, WithLocation(s.vancouver))
	s.ctx = context.Background()
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func hdidQuery(id string) patientModels.PatientDetailsQuery {
	return patientModels.PatientDetailsQuery{Hdid: id, Source: patientModels.SourceAll}
}

func phnQuery(id string) patientModels.PatientDetailsQuery {
	return patientModels.PatientDetailsQuery{Phn: id, Source: patientModels.SourceEmpi}
}

func found(p patientModels.PatientModel) *patientModels.PatientQueryResult {
	return &patientModels.PatientQueryResult{Items: []patientModels.PatientModel{p}}
}

func testPatient() patientModels.PatientModel {
	return patientModels.PatientModel{
		Hdid:       hdid,
		Phn:        phn,
		CommonName: &patientModels.Name{GivenName: "John", Surname: "Doe"},
		LegalName:  &patientModels.Name{GivenName: "Jonathan", Surname: "Doe"},
		Birthdate:  time.Date(2000, 1, 15, 0, 0, 0, 0, time.UTC),
		PhysicalAddress: &patientModels.Address{
			StreetLines: []string{"Line 1", "Line 2", "Physical"},
			City:        "City",
			State:       "BC",
			PostalCode:  "N0N0N0",
			Country:     "CA",
		},
	}
}

func testProfile(id string) *accountModels.UserProfile {
	lastLogin := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	return &accountModels.UserProfile{
		Hdid:              id,
		CreatedDateTime:   time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		LastLoginDateTime: &lastLogin,
	}
}

func (s *ServiceSuite) TestGetPatientsByHdid() {
	s.Run("patient and profile", func() {
		s.patients.EXPECT().Query(gomock.Any(), hdidQuery(hdid)).Return(found(testPatient()), nil)
		s.profiles.EXPECT().GetUserProfile(gomock.Any(), hdid).Return(testProfile(hdid), nil)

		results, err := s.service.GetPatients(s.ctx, models.QueryHdid, hdid)
		s.Require().NoError(err)
		s.Require().Len(results, 1)
		r := results[0]
		s.Equal(models.StatusDefault, r.Status)
		s.Equal(phn, r.PersonalHealthNumber)
		s.Equal("2000-01-15", r.Birthdate)
		s.Equal("Line 1, Line 2, Physical, City, BC, N0N0N0, CA", r.PhysicalAddress)
		s.Empty(r.PostalAddress)
		s.Require().NotNil(r.ProfileCreatedDateTime)
		s.Require().NotNil(r.ProfileLastLoginDateTime)
	})

	s.Run("profile without patient keeps profile hdid", func() {
		s.patients.EXPECT().Query(gomock.Any(), hdidQuery(hdid)).Return(nil, dErrors.New(dErrors.CodeNotFound, "Patient not found"))
		s.profiles.EXPECT().GetUserProfile(gomock.Any(), hdid).Return(testProfile(hdid), nil)

		results, err := s.service.GetPatients(s.ctx, models.QueryHdid, hdid)
		s.Require().NoError(err)
		s.Require().Len(results, 1)
		s.Equal(models.StatusNotFound, results[0].Status)
		s.Equal(hdid, results[0].Hdid)
	})

	s.Run("neither patient nor profile", func() {
		s.patients.EXPECT().Query(gomock.Any(), hdidQuery(hdid)).Return(&patientModels.PatientQueryResult{}, nil)
		s.profiles.EXPECT().GetUserProfile(gomock.Any(), hdid).Return(nil, nil)

		results, err := s.service.GetPatients(s.ctx, models.QueryHdid, hdid)
		s.Require().NoError(err)
		s.Empty(results)
	})

	s.Run("upstream failure propagates", func() {
		s.patients.EXPECT().Query(gomock.Any(), hdidQuery(hdid)).Return(nil, dErrors.New(dErrors.CodeUnavailable, "registry down"))

		_, err := s.service.GetPatients(s.ctx, models.QueryHdid, hdid)
		s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	})
}

func (s *ServiceSuite) TestGetPatientsByPhn() {
	s.Run("not a user", func() {
		s.patients.EXPECT().Query(gomock.Any(), phnQuery(phn)).Return(found(testPatient()), nil)
		s.profiles.EXPECT().GetUserProfile(gomock.Any(), hdid).Return(nil, nil)

		results, err := s.service.GetPatients(s.ctx, models.QueryPhn, phn)
		s.Require().NoError(err)
		s.Require().Len(results, 1)
		s.Equal(models.StatusNotUser, results[0].Status)
		s.Nil(results[0].ProfileCreatedDateTime)
	})

	s.Run("deceased wins over not a user", func() {
		patient := testPatient()
		patient.IsDeceased = true
		patient.ResponseCode = patientModels.Warning{Code: patientModels.WarningDeceased, Message: "Client is deceased"}.ResponseCode()
		s.patients.EXPECT().Query(gomock.Any(), phnQuery(phn)).Return(found(patient), nil)
		s.profiles.EXPECT().GetUserProfile(gomock.Any(), hdid).Return(nil, nil)

		results, err := s.service.GetPatients(s.ctx, models.QueryPhn, phn)
		s.Require().NoError(err)
		s.Equal(models.StatusDeceased, results[0].Status)
		s.Equal("Client is deceased", results[0].WarningMessage)
	})

	s.Run("unknown phn skips profile lookup", func() {
		s.patients.EXPECT().Query(gomock.Any(), phnQuery(phn)).Return(nil, dErrors.New(dErrors.CodeNotFound, "Patient not found"))

		results, err := s.service.GetPatients(s.ctx, models.QueryPhn, phn)
		s.Require().NoError(err)
		s.Empty(results)
	})
}

func (s *ServiceSuite) TestGetPatientsByDependent() {
	dependent := testPatient()
	dependent.Hdid = "dependent-hdid"

	s.Run("maps delegate profiles", func() {
		delegateHdids := []string{"delegate-1", "delegate-2"}
		s.patients.EXPECT().Query(gomock.Any(), phnQuery(dependentPhn)).Return(found(dependent), nil)
		s.delegates.EXPECT().Search(gomock.Any(), accountModels.ResourceDelegateQuery{
			ByOwnerHdid:    "dependent-hdid",
			IncludeProfile: true,
			TakeAmount:     25,
		}).Return(accountModels.ResourceDelegateQueryResult{Items: []accountModels.ResourceDelegate{
			{ProfileHdid: delegateHdids[0], ResourceOwnerHdid: "dependent-hdid", UserProfile: testProfile(delegateHdids[0])},
			{ProfileHdid: delegateHdids[1], ResourceOwnerHdid: "dependent-hdid", UserProfile: testProfile(delegateHdids[1])},
		}}, nil)
		for _, id := range delegateHdids {
			p := testPatient()
			p.Hdid = id
			s.patients.EXPECT().Query(gomock.Any(), hdidQuery(id)).Return(found(p), nil)
		}

		results, err := s.service.GetPatients(s.ctx, models.QueryDependent, dependentPhn)
		s.Require().NoError(err)
		s.Require().Len(results, 2)
		for i, id := range delegateHdids {
			s.Equal(id, results[i].Hdid, "results keep profile order")
			s.Equal(models.StatusDefault, results[i].Status)
		}
	})

	s.Run("unknown dependent", func() {
		s.patients.EXPECT().Query(gomock.Any(), phnQuery(dependentPhn)).Return(nil, dErrors.New(dErrors.CodeNotFound, "Patient not found"))

		results, err := s.service.GetPatients(s.ctx, models.QueryDependent, dependentPhn)
		s.Require().NoError(err)
		s.Empty(results)
	})
}

func (s *ServiceSuite) TestGetPatientsByEmailAndSms() {
	s.Run("email", func() {
		profile := testProfile(hdid)
		s.profiles.EXPECT().GetUserProfiles(gomock.Any(), accountModels.UserQueryEmail, "user@example.com").
			Return([]accountModels.UserProfile{*profile}, nil)
		s.patients.EXPECT().Query(gomock.Any(), hdidQuery(hdid)).Return(nil, dErrors.New(dErrors.CodeNotFound, "Patient not found"))

		results, err := s.service.GetPatients(s.ctx, models.QueryEmail, "user@example.com")
		s.Require().NoError(err)
		s.Require().Len(results, 1)
		s.Equal(models.StatusNotFound, results[0].Status)
		s.Equal(hdid, results[0].Hdid)
	})

	s.Run("sms lookup failure fails the search", func() {
		profile := testProfile(hdid)
		s.profiles.EXPECT().GetUserProfiles(gomock.Any(), accountModels.UserQuerySms, "2505551234").
			Return([]accountModels.UserProfile{*profile}, nil)
		s.patients.EXPECT().Query(gomock.Any(), hdidQuery(hdid)).Return(nil, dErrors.New(dErrors.CodeTimeout, "timed out"))

		_, err := s.service.GetPatients(s.ctx, models.QuerySms, "2505551234")
		s.True(dErrors.HasCode(err, dErrors.CodeTimeout))
	})

	s.Run("no profiles", func() {
		s.profiles.EXPECT().GetUserProfiles(gomock.Any(), accountModels.UserQuerySms, "2505550000").Return(nil, nil)

		results, err := s.service.GetPatients(s.ctx, models.QuerySms, "2505550000")
		s.Require().NoError(err)
		s.Empty(results)
	})
}

func (s *ServiceSuite) TestGetPatientsUnknownQueryType() {
	_, err := s.service.GetPatients(s.ctx, "Fax", "x")
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func (s *ServiceSuite) TestGetPatientSupportDetails() {
	created := time.Date(2024, 1, 10, 20, 0, 0, 0, time.UTC)
	verifications := []accountModels.MessagingVerification{
		{ID: uuid.New(), Validated: true, SmsNumber: "2505551234", VerificationType: accountModels.VerificationSms, CreatedDateTime: created},
		{ID: uuid.New(), Validated: false, Email: "user@example.com", VerificationType: accountModels.VerificationEmail, CreatedDateTime: created},
	}
	audits := []audit.AgentAudit{{
		Hdid:          hdid,
		AgentUsername: "agent@idir",
		Reason:        "patient request",
		OperationCode: audit.OperationChangeDataSourceAccess,
		GroupCode:     audit.GroupBlockedAccess,
		CreatedAt:     created,
	}}
	blocked := []patientModels.DataSource{patientModels.DataSourceMedication}
	s.Require().NoError(s.cache.AddItem(s.ctx, cacheprovider.BlockedAccessKey(hdid), []patientModels.DataSource{}, time.Hour))

	s.verifications.EXPECT().GetUserMessageVerifications(gomock.Any(), hdid).Return(verifications, nil)
	s.audits.EXPECT().List(gomock.Any(), audit.AgentAuditQuery{Hdid: hdid}).Return(audits, nil)
	s.patients.EXPECT().GetDataSources(gomock.Any(), hdid).
		DoAndReturn(func(ctx context.Context, _ string) ([]patientModels.DataSource, error) {
			var cached []patientModels.DataSource
			ok, err := s.cache.GetItem(ctx, cacheprovider.BlockedAccessKey(hdid), &cached)
			s.Require().NoError(err)
			s.False(ok, "cache entry removed before data sources are read")
			return blocked, nil
		})

	details, err := s.service.GetPatientSupportDetails(s.ctx, hdid)
	s.Require().NoError(err)
	s.Len(details.MessagingVerifications, 2)
	s.Equal(s.vancouver, details.MessagingVerifications[0].CreatedDateTime.Location())
	s.True(details.MessagingVerifications[0].CreatedDateTime.Equal(created))
	s.Require().Len(details.AgentActions, 1)
	s.Equal("agent@idir", details.AgentActions[0].AgentUsername)
	s.Equal(created, details.AgentActions[0].TransactionDateTime)
	s.Equal(blocked, details.BlockedDataSources)
}

func (s *ServiceSuite) TestGetPatientSupportDetailsStoreError() {
	s.verifications.EXPECT().GetUserMessageVerifications(gomock.Any(), hdid).Return(nil, errors.New("db down"))

	_, err := s.service.GetPatientSupportDetails(s.ctx, hdid)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *ServiceSuite) TestBlockAccess() {
	sources := []patientModels.DataSource{patientModels.DataSourceLaboratory}
	s.patients.EXPECT().BlockAccess(gomock.Any(), patientModels.BlockAccessCommand{
		Hdid:        hdid,
		DataSources: sources,
		Reason:      "because",
	}).Return(nil)

	s.Require().NoError(s.service.BlockAccess(s.ctx, hdid, sources, "because"))
}
