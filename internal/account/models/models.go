// Package models holds the user account records read by support tooling.
package models

import (
	"time"

	"github.com/google/uuid"
)

// UserProfile is a registered Health Gateway user.
type UserProfile struct {
	Hdid              string     `json:"hdid"`
	Email             string     `json:"email,omitempty"`
	SmsNumber         string     `json:"smsNumber,omitempty"`
	CreatedDateTime   time.Time  `json:"createdDateTime"`
	LastLoginDateTime *time.Time `json:"lastLoginDateTime,omitempty"`
}

// UserQueryType selects the profile column searched by GetUserProfiles.
type UserQueryType string

const (
	UserQueryEmail UserQueryType = "Email"
	UserQuerySms   UserQueryType = "Sms"
)

type VerificationType string

const (
	VerificationEmail VerificationType = "Email"
	VerificationSms   VerificationType = "SMS"
)

// MessagingVerification is one email or SMS verification attempt.
type MessagingVerification struct {
	ID                   uuid.UUID        `json:"id"`
	UserProfileID        string           `json:"userProfileId"`
	VerificationType     VerificationType `json:"verificationType"`
	Email                string           `json:"email,omitempty"`
	SmsNumber            string           `json:"smsNumber,omitempty"`
	Validated            bool             `json:"validated"`
	Deleted              bool             `json:"deleted"`
	VerificationAttempts int              `json:"verificationAttempts"`
	ExpireDate           time.Time        `json:"expireDate"`
	CreatedDateTime      time.Time        `json:"createdDateTime"`
	UpdatedDateTime      time.Time        `json:"updatedDateTime"`
}

// InLocation returns a copy with every timestamp expressed in loc.
func (m MessagingVerification) InLocation(loc *time.Location) MessagingVerification {
	if loc == nil {
		return m
	}
	m.ExpireDate = m.ExpireDate.In(loc)
	m.CreatedDateTime = m.CreatedDateTime.In(loc)
	m.UpdatedDateTime = m.UpdatedDateTime.In(loc)
	return m
}

// ResourceDelegate links a delegate profile to the dependent whose records it can view.
type ResourceDelegate struct {
	ProfileHdid       string       `json:"profileHdid"`
	ResourceOwnerHdid string       `json:"resourceOwnerHdid"`
	ReasonCode        string       `json:"reasonCode"`
	CreatedDateTime   time.Time    `json:"createdDateTime"`
	UserProfile       *UserProfile `json:"userProfile,omitempty"`
}

// ResourceDelegateQuery filters delegates. TakeAmount of 0 means no limit.
type ResourceDelegateQuery struct {
	ByOwnerHdid    string
	ByDelegateHdid string
	IncludeProfile bool
	TakeAmount     int
}

type ResourceDelegateQueryResult struct {
	Items []ResourceDelegate
}
