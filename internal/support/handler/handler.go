// Package handler exposes the support agent endpoints.
package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	patientModels "healthgateway/internal/patient/models"
	"healthgateway/internal/platform/middleware"
	"healthgateway/internal/support/models"
	dErrors "healthgateway/pkg/domain-errors"
	"healthgateway/pkg/platform/httputil"
	"healthgateway/pkg/requestcontext"
)

// Roles allowed to call support endpoints.
const (
	RoleSupportUser = "SupportUser"
	RoleAdminUser   = "AdminUser"
)

type Service interface {
	GetPatients(ctx context.Context, queryType models.PatientQueryType, queryString string) ([]models.PatientSupportResult, error)
	GetPatientSupportDetails(ctx context.Context, hdid string) (*models.PatientSupportDetails, error)
	BlockAccess(ctx context.Context, hdid string, dataSources []patientModels.DataSource, reason string) error
}

type Handler struct {
	support      Service
	jwtValidator middleware.JWTValidator
	logger       *slog.Logger
}

func New(support Service, jwtValidator middleware.JWTValidator, logger *slog.Logger) *Handler {
	return &Handler{
		support:      support,
		jwtValidator: jwtValidator,
		logger:       logger,
	}
}

// Register adds the support routes to r behind agent authentication.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
		r.Use(middleware.RequireRole(h.logger, RoleSupportUser, RoleAdminUser))
		r.Use(middleware.ContentTypeJSON)
		r.Get("/Support/Users", h.handleGetUsers)
		r.Get("/Support/PatientSupportDetails", h.handleGetPatientSupportDetails)
		r.Put("/Support/{hdid}/BlockAccess", h.handleBlockAccess)
	})
}

func (h *Handler) handleGetUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	queryType, err := models.ParsePatientQueryType(r.URL.Query().Get("queryType"))
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "Unknown queryType"))
		return
	}
	queryString := r.URL.Query().Get("queryString")
	if queryString == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "queryString is required"))
		return
	}

	results, err := h.support.GetPatients(ctx, queryType, queryString)
	if err != nil {
		h.logFailure(ctx, "support patient search failed", err, "query_type", queryType)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, results)
}

func (h *Handler) handleGetPatientSupportDetails(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	hdid := r.URL.Query().Get("hdid")
	if hdid == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "hdid is required"))
		return
	}

	details, err := h.support.GetPatientSupportDetails(ctx, hdid)
	if err != nil {
		h.logFailure(ctx, "patient support details failed", err, "hdid", hdid)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, details)
}

func (h *Handler) handleBlockAccess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	hdid := chi.URLParam(r, "hdid")

	req, err := httputil.DecodeJSON[models.BlockAccessRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	cmd := patientModels.BlockAccessCommand{Hdid: hdid, DataSources: req.DataSources, Reason: req.Reason}
	if err := cmd.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.support.BlockAccess(ctx, hdid, req.DataSources, req.Reason); err != nil {
		h.logFailure(ctx, "block access failed", err, "hdid", hdid)
		httputil.WriteError(w, err)
		return
	}
	h.logger.InfoContext(ctx, "data source access changed",
		"hdid", hdid,
		"agent", requestcontext.AgentUsername(ctx),
		"data_sources", len(req.DataSources),
		"request_id", requestcontext.RequestID(ctx),
	)
	w.WriteHeader(http.StatusOK)
}

// logFailure logs client errors at warn and everything else at error.
func (h *Handler) logFailure(ctx context.Context, msg string, err error, attrs ...any) {
	attrs = append(attrs, "error", err, "request_id", requestcontext.RequestID(ctx))
	if de, ok := dErrors.From(err); ok && httputil.StatusFor(de.Code) < http.StatusInternalServerError {
		h.logger.WarnContext(ctx, msg, attrs...)
		return
	}
	h.logger.ErrorContext(ctx, msg, attrs...)
}
