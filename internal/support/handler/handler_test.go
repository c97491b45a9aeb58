package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	jwttoken "healthgateway/internal/jwt_token"
	patientModels "healthgateway/internal/patient/models"
	"healthgateway/internal/support/handler/mocks"
	"healthgateway/internal/support/models"
	dErrors "healthgateway/pkg/domain-errors"
)

type HandlerSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	service *mocks.MockService
	jwt     *jwttoken.JWTService
	router  http.Handler
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.service = mocks.NewMockService(s.ctrl)
	s.jwt = jwttoken.NewJWTService("test-key", "hg-admin", "hg-support")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := chi.NewRouter()
	r.Route("/v1/api", func(r chi.Router) {
		New(s.service, jwttoken.NewJWTServiceAdapter(s.jwt), logger).Register(r)
	})
	s.router = r
}

func (s *HandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerSuite) do(method, target, body string, roles ...string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if roles != nil {
		token, err := s.jwt.GenerateAccessToken("agent@idir", roles, time.Minute)
		s.Require().NoError(err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerSuite) TestAuthentication() {
	s.Run("missing token", func() {
		rec := s.do(http.MethodGet, "/v1/api/Support/Users?queryType=Hdid&queryString=abc", "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("role without support access", func() {
		rec := s.do(http.MethodGet, "/v1/api/Support/Users?queryType=Hdid&queryString=abc", "", "Reviewer")
		s.Equal(http.StatusForbidden, rec.Code)
	})
}

func (s *HandlerSuite) TestGetUsers() {
	s.Run("returns results", func() {
		s.service.EXPECT().GetPatients(gomock.Any(), models.QueryPhn, "9735361219").
			Return([]models.PatientSupportResult{{Status: models.StatusNotUser, Hdid: "abc"}}, nil)

		rec := s.do(http.MethodGet, "/v1/api/Support/Users?queryType=Phn&queryString=9735361219", "", RoleSupportUser)
		s.Require().Equal(http.StatusOK, rec.Code)

		var body []models.PatientSupportResult
		s.Require().NoError(json.NewDecoder(rec.Body).Decode(&body))
		s.Require().Len(body, 1)
		s.Equal(models.StatusNotUser, body[0].Status)
	})

	s.Run("unknown query type", func() {
		rec := s.do(http.MethodGet, "/v1/api/Support/Users?queryType=Fax&queryString=1", "", RoleAdminUser)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("invalid phn surfaces as bad request", func() {
		s.service.EXPECT().GetPatients(gomock.Any(), models.QueryPhn, "123").
			Return(nil, dErrors.New(dErrors.CodeValidation, "Invalid PHN"))

		rec := s.do(http.MethodGet, "/v1/api/Support/Users?queryType=Phn&queryString=123", "", RoleSupportUser)
		s.Equal(http.StatusBadRequest, rec.Code)

		var body map[string]string
		s.Require().NoError(json.NewDecoder(rec.Body).Decode(&body))
		s.Equal("validation_error", body["error"])
		s.Equal("Invalid PHN", body["error_description"])
	})

	s.Run("internal errors hide their message", func() {
		s.service.EXPECT().GetPatients(gomock.Any(), models.QueryHdid, "abc").
			Return(nil, dErrors.New(dErrors.CodeInternal, "connection string leaked"))

		rec := s.do(http.MethodGet, "/v1/api/Support/Users?queryType=Hdid&queryString=abc", "", RoleSupportUser)
		s.Equal(http.StatusInternalServerError, rec.Code)
		s.NotContains(rec.Body.String(), "leaked")
	})
}

func (s *HandlerSuite) TestGetPatientSupportDetails() {
	s.service.EXPECT().GetPatientSupportDetails(gomock.Any(), "abc").Return(&models.PatientSupportDetails{
		BlockedDataSources: []patientModels.DataSource{patientModels.DataSourceNote},
	}, nil)

	rec := s.do(http.MethodGet, "/v1/api/Support/PatientSupportDetails?hdid=abc", "", RoleSupportUser)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"blockedDataSources":["Note"]`)

	rec = s.do(http.MethodGet, "/v1/api/Support/PatientSupportDetails", "", RoleSupportUser)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestBlockAccess() {
	s.Run("delegates to the service", func() {
		s.service.EXPECT().BlockAccess(gomock.Any(), "abc",
			[]patientModels.DataSource{patientModels.DataSourceLaboratory}, "patient asked").Return(nil)

		rec := s.do(http.MethodPut, "/v1/api/Support/abc/BlockAccess",
			`{"dataSources":["Laboratory"],"reason":"patient asked"}`, RoleAdminUser)
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("reason required", func() {
		rec := s.do(http.MethodPut, "/v1/api/Support/abc/BlockAccess", `{"dataSources":[]}`, RoleAdminUser)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("reports every problem at once", func() {
		rec := s.do(http.MethodPut, "/v1/api/Support/abc/BlockAccess", `{"dataSources":["Horoscope"]}`, RoleAdminUser)
		s.Require().Equal(http.StatusBadRequest, rec.Code)

		var body map[string]string
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
		s.Equal(string(dErrors.CodeValidation), body["error"])
		s.Equal("reason is required;unknown data source: Horoscope", body["error_description"])
	})

	s.Run("malformed body", func() {
		rec := s.do(http.MethodPut, "/v1/api/Support/abc/BlockAccess", `{"dataSources":`, RoleAdminUser)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}
