// Package service applies admin review actions to user feedback.
package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"healthgateway/internal/feedback/models"
	dErrors "healthgateway/pkg/domain-errors"
	"healthgateway/pkg/requestcontext"
)

type Store interface {
	List(ctx context.Context) ([]models.UserFeedbackView, error)
	UpdateReviewed(ctx context.Context, id uuid.UUID, reviewed bool, version uint32) (models.DBResult[models.ReviewRequest], error)
	AssociateTag(ctx context.Context, feedbackID, tagID uuid.UUID) (models.DBResult[models.UserFeedbackTagView], error)
	DissociateTag(ctx context.Context, feedbackID, tagID uuid.UUID, version *uint32) (models.DBResult[models.UserFeedbackTagView], error)
}

type Service struct {
	store  Store
	logger *slog.Logger
}

func New(store Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

func (s *Service) List(ctx context.Context) ([]models.UserFeedbackView, error) {
	feedback, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list feedback")
	}
	return feedback, nil
}

// UpdateReviewed marks feedback reviewed or unreviewed and returns the new version.
func (s *Service) UpdateReviewed(ctx context.Context, req models.ReviewRequest) (models.ReviewRequest, error) {
	if req.ID == uuid.Nil {
		return models.ReviewRequest{}, dErrors.New(dErrors.CodeBadRequest, "id is required")
	}
	res, err := s.store.UpdateReviewed(ctx, req.ID, req.IsReviewed, req.Version)
	if err != nil {
		return models.ReviewRequest{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update feedback")
	}
	if err := statusError(res.Status, res.Message); err != nil {
		return models.ReviewRequest{}, err
	}
	s.logger.InfoContext(ctx, "feedback review updated",
		"feedback_id", req.ID,
		"reviewed", req.IsReviewed,
		"agent", requestcontext.AgentUsername(ctx),
	)
	return res.Payload, nil
}

func (s *Service) AssociateTag(ctx context.Context, feedbackID, tagID uuid.UUID) (models.UserFeedbackTagView, error) {
	res, err := s.store.AssociateTag(ctx, feedbackID, tagID)
	if err != nil {
		return models.UserFeedbackTagView{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to tag feedback")
	}
	if err := statusError(res.Status, res.Message); err != nil {
		return models.UserFeedbackTagView{}, err
	}
	return res.Payload, nil
}

func (s *Service) DissociateTag(ctx context.Context, feedbackID, tagID uuid.UUID, version *uint32) error {
	res, err := s.store.DissociateTag(ctx, feedbackID, tagID, version)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to untag feedback")
	}
	return statusError(res.Status, res.Message)
}

// statusError maps a failed write status onto a domain error.
func statusError(status models.DBStatus, message string) error {
	switch status {
	case models.StatusCreated, models.StatusUpdated, models.StatusDeleted:
		return nil
	case models.StatusNotFound:
		return dErrors.New(dErrors.CodeNotFound, message)
	case models.StatusConcurrency, models.StatusError:
		return dErrors.New(dErrors.CodeConflict, message)
	default:
		return dErrors.New(dErrors.CodeInternal, "unexpected feedback write status")
	}
}
