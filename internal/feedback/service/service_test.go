package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"healthgateway/internal/feedback/models"
	"healthgateway/internal/feedback/service/mocks"
	dErrors "healthgateway/pkg/domain-errors"
)

func newService(t *testing.T) (*Service, *mocks.MockStore) {
	t.Helper()
	store := mocks.NewMockStore(gomock.NewController(t))
	return New(store, nil), store
}

func TestUpdateReviewed(t *testing.T) {
	id := uuid.New()
	ctx := context.Background()

	t.Run("returns new version", func(t *testing.T) {
		svc, store := newService(t)
		store.EXPECT().UpdateReviewed(gomock.Any(), id, true, uint32(1)).
			Return(models.DBResult[models.ReviewRequest]{
				Status:  models.StatusUpdated,
				Payload: models.ReviewRequest{ID: id, IsReviewed: true, Version: 2},
			}, nil)

		got, err := svc.UpdateReviewed(ctx, models.ReviewRequest{ID: id, IsReviewed: true, Version: 1})
		require.NoError(t, err)
		assert.Equal(t, uint32(2), got.Version)
	})

	t.Run("concurrency is a conflict", func(t *testing.T) {
		svc, store := newService(t)
		store.EXPECT().UpdateReviewed(gomock.Any(), id, true, uint32(1)).
			Return(models.DBResult[models.ReviewRequest]{Status: models.StatusConcurrency, Message: "stale"}, nil)

		_, err := svc.UpdateReviewed(ctx, models.ReviewRequest{ID: id, IsReviewed: true, Version: 1})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	})

	t.Run("missing id", func(t *testing.T) {
		svc, _ := newService(t)
		_, err := svc.UpdateReviewed(ctx, models.ReviewRequest{})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}

func TestTags(t *testing.T) {
	feedbackID, tagID := uuid.New(), uuid.New()
	ctx := context.Background()

	t.Run("associate", func(t *testing.T) {
		svc, store := newService(t)
		store.EXPECT().AssociateTag(gomock.Any(), feedbackID, tagID).
			Return(models.DBResult[models.UserFeedbackTagView]{
				Status:  models.StatusCreated,
				Payload: models.UserFeedbackTagView{FeedbackID: feedbackID, TagID: tagID, Name: "Bug"},
			}, nil)

		tag, err := svc.AssociateTag(ctx, feedbackID, tagID)
		require.NoError(t, err)
		assert.Equal(t, "Bug", tag.Name)
	})

	t.Run("associate unknown tag", func(t *testing.T) {
		svc, store := newService(t)
		store.EXPECT().AssociateTag(gomock.Any(), feedbackID, tagID).
			Return(models.DBResult[models.UserFeedbackTagView]{Status: models.StatusNotFound, Message: "feedback or tag not found"}, nil)

		_, err := svc.AssociateTag(ctx, feedbackID, tagID)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	t.Run("dissociate store failure", func(t *testing.T) {
		svc, store := newService(t)
		store.EXPECT().DissociateTag(gomock.Any(), feedbackID, tagID, nil).
			Return(models.DBResult[models.UserFeedbackTagView]{}, errors.New("db down"))

		err := svc.DissociateTag(ctx, feedbackID, tagID, nil)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
	})
}
