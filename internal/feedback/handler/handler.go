// Package handler exposes user feedback review endpoints.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"healthgateway/internal/feedback/models"
	"healthgateway/internal/platform/middleware"
	dErrors "healthgateway/pkg/domain-errors"
	"healthgateway/pkg/platform/httputil"
	"healthgateway/pkg/requestcontext"
)

type Service interface {
	List(ctx context.Context) ([]models.UserFeedbackView, error)
	UpdateReviewed(ctx context.Context, req models.ReviewRequest) (models.ReviewRequest, error)
	AssociateTag(ctx context.Context, feedbackID, tagID uuid.UUID) (models.UserFeedbackTagView, error)
	DissociateTag(ctx context.Context, feedbackID, tagID uuid.UUID, version *uint32) error
}

type Handler struct {
	feedback     Service
	jwtValidator middleware.JWTValidator
	roles        []string
	logger       *slog.Logger
}

// New builds the handler. Callers must hold one of roles.
func New(feedback Service, jwtValidator middleware.JWTValidator, logger *slog.Logger, roles ...string) *Handler {
	return &Handler{
		feedback:     feedback,
		jwtValidator: jwtValidator,
		roles:        roles,
		logger:       logger,
	}
}

func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
		r.Use(middleware.RequireRole(h.logger, h.roles...))
		r.Use(middleware.ContentTypeJSON)
		r.Get("/UserFeedback", h.handleList)
		r.Patch("/UserFeedback", h.handleUpdateReviewed)
		r.Put("/UserFeedback/{id}/Tag/{tagId}", h.handleAssociateTag)
		r.Delete("/UserFeedback/{id}/Tag/{tagId}", h.handleDissociateTag)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	feedback, err := h.feedback.List(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "list feedback failed",
			"error", err,
			"request_id", requestcontext.RequestID(r.Context()),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, feedback)
}

func (h *Handler) handleUpdateReviewed(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.DecodeJSON[models.ReviewRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	updated, err := h.feedback.UpdateReviewed(r.Context(), *req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleAssociateTag(w http.ResponseWriter, r *http.Request) {
	feedbackID, tagID, err := pathIDs(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	tag, err := h.feedback.AssociateTag(r.Context(), feedbackID, tagID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, tag)
}

func (h *Handler) handleDissociateTag(w http.ResponseWriter, r *http.Request) {
	feedbackID, tagID, err := pathIDs(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var version *uint32
	if raw := r.URL.Query().Get("version"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "version must be a non-negative integer"))
			return
		}
		v32 := uint32(v)
		version = &v32
	}
	if err := h.feedback.DissociateTag(r.Context(), feedbackID, tagID, version); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathIDs(r *http.Request) (uuid.UUID, uuid.UUID, error) {
	feedbackID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, dErrors.New(dErrors.CodeBadRequest, "invalid feedback id")
	}
	tagID, err := uuid.Parse(chi.URLParam(r, "tagId"))
	if err != nil {
		return uuid.Nil, uuid.Nil, dErrors.New(dErrors.CodeBadRequest, "invalid tag id")
	}
	return feedbackID, tagID, nil
}
