// Package store persists user feedback and its admin tags with database/sql.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"healthgateway/internal/feedback/models"
	txcontext "healthgateway/pkg/platform/tx"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

type Store struct {
	db  *sql.DB
	now func() time.Time
}

func New(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// List returns every feedback entry, newest first, with its tags.
func (s *Store) List(ctx context.Context) ([]models.UserFeedbackView, error) {
	query := `
		SELECT f.id, f.user_profile_id, f.comment, f.is_satisfied, f.is_reviewed,
			   f.created_at, f.version, COALESCE(up.email, '')
		FROM user_feedback f
		LEFT JOIN user_profile up ON up.hdid = f.user_profile_id
		ORDER BY f.created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query user feedback: %w", err)
	}
	defer rows.Close()

	feedback := []models.UserFeedbackView{}
	index := map[uuid.UUID]int{}
	for rows.Next() {
		var (
			f         models.UserFeedbackView
			profileID sql.NullString
			comment   sql.NullString
			version   int64
		)
		if err := rows.Scan(&f.ID, &profileID, &comment, &f.IsSatisfied, &f.IsReviewed, &f.CreatedDateTime, &version, &f.Email); err != nil {
			return nil, fmt.Errorf("scan user feedback: %w", err)
		}
		f.UserProfileID = profileID.String
		f.Comment = comment.String
		f.Version = uint32(version)
		f.Tags = []models.UserFeedbackTagView{}
		index[f.ID] = len(feedback)
		feedback = append(feedback, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user feedback: %w", err)
	}
	if len(feedback) == 0 {
		return feedback, nil
	}

	ids := make([]string, len(feedback))
	for i, f := range feedback {
		ids[i] = f.ID.String()
	}
	tags, err := s.tagsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, t := range tags {
		if i, ok := index[t.FeedbackID]; ok {
			feedback[i].Tags = append(feedback[i].Tags, t)
		}
	}
	return feedback, nil
}

func (s *Store) tagsFor(ctx context.Context, feedbackIDs []string) ([]models.UserFeedbackTagView, error) {
	query := `
		SELECT t.id, t.user_feedback_id, t.admin_tag_id, a.name, t.version
		FROM user_feedback_tag t
		JOIN admin_tag a ON a.id = t.admin_tag_id
		WHERE t.user_feedback_id = ANY($1)
		ORDER BY a.name
	`
	rows, err := s.db.QueryContext(ctx, query, pq.Array(feedbackIDs))
	if err != nil {
		return nil, fmt.Errorf("query feedback tags: %w", err)
	}
	defer rows.Close()

	var tags []models.UserFeedbackTagView
	for rows.Next() {
		var (
			t       models.UserFeedbackTagView
			version int64
		)
		if err := rows.Scan(&t.ID, &t.FeedbackID, &t.TagID, &t.Name, &version); err != nil {
			return nil, fmt.Errorf("scan feedback tag: %w", err)
		}
		t.Version = uint32(version)
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate feedback tags: %w", err)
	}
	return tags, nil
}

// UpdateReviewed sets the review flag when version still matches.
func (s *Store) UpdateReviewed(ctx context.Context, id uuid.UUID, reviewed bool, version uint32) (models.DBResult[models.ReviewRequest], error) {
	result := models.DBResult[models.ReviewRequest]{Payload: models.ReviewRequest{ID: id, IsReviewed: reviewed, Version: version}}
	exec := txcontext.Use(ctx, s.db)

	query := `
		UPDATE user_feedback
		SET is_reviewed = $1, version = version + 1, updated_at = $2
		WHERE id = $3 AND version = $4
		RETURNING version
	`
	var newVersion int64
	err := exec.QueryRowContext(ctx, query, reviewed, s.now(), id, int64(version)).Scan(&newVersion)
	if err == nil {
		result.Status = models.StatusUpdated
		result.Payload.Version = uint32(newVersion)
		return result, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return result, fmt.Errorf("update user feedback: %w", err)
	}

	var exists bool
	if err := exec.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM user_feedback WHERE id = $1)`, id).Scan(&exists); err != nil {
		return result, fmt.Errorf("check user feedback: %w", err)
	}
	if !exists {
		result.Status = models.StatusNotFound
		result.Message = "feedback not found"
		return result, nil
	}
	result.Status = models.StatusConcurrency
	result.Message = "feedback was modified by another reviewer"
	return result, nil
}

// AssociateTag links tagID to feedbackID.
func (s *Store) AssociateTag(ctx context.Context, feedbackID, tagID uuid.UUID) (models.DBResult[models.UserFeedbackTagView], error) {
	tag := models.UserFeedbackTagView{ID: uuid.New(), FeedbackID: feedbackID, TagID: tagID}
	result := models.DBResult[models.UserFeedbackTagView]{Payload: tag}

	query := `
		WITH inserted AS (
			INSERT INTO user_feedback_tag (id, user_feedback_id, admin_tag_id, created_at, version)
			VALUES ($1, $2, $3, $4, 0)
			RETURNING admin_tag_id
		)
		SELECT a.name FROM inserted JOIN admin_tag a ON a.id = inserted.admin_tag_id
	`
	err := txcontext.Use(ctx, s.db).QueryRowContext(ctx, query, tag.ID, feedbackID, tagID, s.now()).Scan(&result.Payload.Name)
	if err == nil {
		result.Status = models.StatusCreated
		return result, nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			result.Status = models.StatusError
			result.Message = "tag is already associated with this feedback"
			return result, nil
		case pqForeignKeyViolation:
			result.Status = models.StatusNotFound
			result.Message = "feedback or tag not found"
			return result, nil
		}
	}
	return result, fmt.Errorf("insert feedback tag: %w", err)
}

// DissociateTag removes tagID from feedbackID. A non-nil version must match
// the stored one.
func (s *Store) DissociateTag(ctx context.Context, feedbackID, tagID uuid.UUID, version *uint32) (models.DBResult[models.UserFeedbackTagView], error) {
	result := models.DBResult[models.UserFeedbackTagView]{Payload: models.UserFeedbackTagView{FeedbackID: feedbackID, TagID: tagID}}

	query := `DELETE FROM user_feedback_tag WHERE user_feedback_id = $1 AND admin_tag_id = $2`
	args := []any{feedbackID, tagID}
	if version != nil {
		query += ` AND version = $3`
		args = append(args, int64(*version))
	}
	res, err := txcontext.Use(ctx, s.db).ExecContext(ctx, query, args...)
	if err != nil {
		return result, fmt.Errorf("delete feedback tag: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return result, fmt.Errorf("delete feedback tag: %w", err)
	}
	if n == 0 {
		result.Status = models.StatusConcurrency
		result.Message = "tag was modified or already removed"
		return result, nil
	}
	result.Status = models.StatusDeleted
	return result, nil
}
