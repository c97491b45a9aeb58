// Package models holds user feedback as reviewed by administrators.
package models

import (
	"time"

	"github.com/google/uuid"
)

// UserFeedbackView is a feedback entry with its reviewer tags.
type UserFeedbackView struct {
	ID              uuid.UUID             `json:"id"`
	UserProfileID   string                `json:"userProfileId,omitempty"`
	Comment         string                `json:"comment,omitempty"`
	IsSatisfied     bool                  `json:"isSatisfied"`
	IsReviewed      bool                  `json:"isReviewed"`
	CreatedDateTime time.Time             `json:"createdDateTime"`
	Version         uint32                `json:"version"`
	Email           string                `json:"email"`
	Tags            []UserFeedbackTagView `json:"tags"`
}

// UserFeedbackTagView links an admin tag to a feedback entry.
type UserFeedbackTagView struct {
	ID         uuid.UUID `json:"id"`
	FeedbackID uuid.UUID `json:"feedbackId"`
	TagID      uuid.UUID `json:"tagId"`
	Name       string    `json:"name"`
	Version    uint32    `json:"version"`
}

// DBStatus is the outcome of a feedback write.
type DBStatus string

const (
	StatusCreated     DBStatus = "Created"
	StatusUpdated     DBStatus = "Updated"
	StatusDeleted     DBStatus = "Deleted"
	StatusNotFound    DBStatus = "NotFound"
	StatusError       DBStatus = "Error"
	StatusConcurrency DBStatus = "Concurrency"
)

// DBResult carries a write outcome. Message is set for Error and Concurrency.
type DBResult[T any] struct {
	Payload T        `json:"payload"`
	Status  DBStatus `json:"status"`
	Message string   `json:"message,omitempty"`
}

// ReviewRequest is the body of a review update.
type ReviewRequest struct {
	ID         uuid.UUID `json:"id"`
	IsReviewed bool      `json:"isReviewed"`
	Version    uint32    `json:"version"`
}
