// Package models holds the support views assembled for agents.
package models

import (
	"fmt"
	"time"

	accountModels "healthgateway/internal/account/models"
	"healthgateway/internal/audit"
	patientModels "healthgateway/internal/patient/models"
)

// PatientQueryType is how an agent searches for patients.
type PatientQueryType string

const (
	QueryHdid      PatientQueryType = "Hdid"
	QueryPhn       PatientQueryType = "Phn"
	QueryDependent PatientQueryType = "Dependent"
	QueryEmail     PatientQueryType = "Email"
	QuerySms       PatientQueryType = "Sms"
)

// ParsePatientQueryType accepts the names above, case-sensitively.
func ParsePatientQueryType(s string) (PatientQueryType, error) {
	switch q := PatientQueryType(s); q {
	case QueryHdid, QueryPhn, QueryDependent, QueryEmail, QuerySms:
		return q, nil
	default:
		return "", fmt.Errorf("unknown query type %q", s)
	}
}

type PatientStatus string

const (
	StatusDefault  PatientStatus = "Default"
	StatusNotFound PatientStatus = "NotFound"
	StatusDeceased PatientStatus = "Deceased"
	StatusNotUser  PatientStatus = "NotUser"
)

// PatientSupportResult is one row of a support patient search.
type PatientSupportResult struct {
	Status                   PatientStatus       `json:"status"`
	WarningMessage           string              `json:"warningMessage"`
	Hdid                     string              `json:"hdid"`
	PersonalHealthNumber     string              `json:"personalHealthNumber"`
	CommonName               *patientModels.Name `json:"commonName,omitempty"`
	LegalName                *patientModels.Name `json:"legalName,omitempty"`
	Birthdate                string              `json:"birthdate,omitempty"`
	PhysicalAddress          string              `json:"physicalAddress,omitempty"`
	PostalAddress            string              `json:"postalAddress,omitempty"`
	ProfileCreatedDateTime   *time.Time          `json:"profileCreatedDateTime,omitempty"`
	ProfileLastLoginDateTime *time.Time          `json:"profileLastLoginDateTime,omitempty"`
}

// AgentAction is an audited agent operation as shown to other agents.
type AgentAction struct {
	AgentUsername       string              `json:"agentUsername"`
	Reason              string              `json:"reason"`
	OperationCode       audit.OperationCode `json:"operationCode"`
	GroupCode           audit.GroupCode     `json:"groupCode"`
	TransactionDateTime time.Time           `json:"transactionDateTime"`
}

func NewAgentAction(a audit.AgentAudit) AgentAction {
	return AgentAction{
		AgentUsername:       a.AgentUsername,
		Reason:              a.Reason,
		OperationCode:       a.OperationCode,
		GroupCode:           a.GroupCode,
		TransactionDateTime: a.CreatedAt,
	}
}

// PatientSupportDetails is the merged view of one patient's account.
type PatientSupportDetails struct {
	MessagingVerifications []accountModels.MessagingVerification `json:"messagingVerifications"`
	AgentActions           []AgentAction                         `json:"agentActions"`
	BlockedDataSources     []patientModels.DataSource            `json:"blockedDataSources"`
}

// BlockAccessRequest is the body of a block access call.
type BlockAccessRequest struct {
	DataSources []patientModels.DataSource `json:"dataSources"`
	Reason      string                     `json:"reason"`
}
