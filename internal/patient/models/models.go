// Package models holds the resolved patient identity and the query types used to look it up.
package models

import (
	"fmt"
	"strings"
	"time"

	dErrors "healthgateway/pkg/domain-errors"
)

// IdentifierType names the kind of identifier a patient is queried by.
type IdentifierType string

const (
	IdentifierHdid IdentifierType = "HDID"
	IdentifierPhn  IdentifierType = "PHN"
)

// Source scopes which upstream registries a query may consult.
type Source string

const (
	SourceAll            Source = "All"
	SourceEmpi           Source = "Empi"
	SourceClientRegistry Source = "ClientRegistry"
)

func (s Source) IsValid() bool {
	switch s {
	case SourceAll, SourceEmpi, SourceClientRegistry:
		return true
	}
	return false
}

// Gender values as reported by the registries.
const (
	GenderFemale       = "Female"
	GenderMale         = "Male"
	GenderNotSpecified = "NotSpecified"
)

// Name is a given name and surname pair.
type Name struct {
	GivenName string `json:"givenName"`
	Surname   string `json:"surname"`
}

// Address is a postal or physical address.
type Address struct {
	StreetLines []string `json:"streetLines"`
	City        string   `json:"city"`
	State       string   `json:"state"`
	PostalCode  string   `json:"postalCode"`
	Country     string   `json:"country"`
}

// SingleLine formats the address as one comma-separated line, skipping empty parts.
func (a *Address) SingleLine() string {
	if a == nil {
		return ""
	}
	parts := make([]string, 0, len(a.StreetLines)+4)
	for _, p := range append(append([]string{}, a.StreetLines...), a.City, a.State, a.PostalCode, a.Country) {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// PatientModel is a resolved patient identity snapshot.
type PatientModel struct {
	Hdid            string    `json:"hdid"`
	Phn             string    `json:"phn"`
	CommonName      *Name     `json:"commonName,omitempty"`
	LegalName       *Name     `json:"legalName,omitempty"`
	Birthdate       time.Time `json:"birthdate"`
	Gender          string    `json:"gender"`
	IsDeceased      bool      `json:"isDeceased"`
	PhysicalAddress *Address  `json:"physicalAddress,omitempty"`
	PostalAddress   *Address  `json:"postalAddress,omitempty"`
	ResponseCode    string    `json:"responseCode"`
}

// WarningMessage returns the message part of a "code|message" response code.
func (p *PatientModel) WarningMessage() string {
	if p == nil {
		return ""
	}
	return WarningMessage(p.ResponseCode)
}

// WarningMessage returns the text after the first '|' of responseCode, or "".
func WarningMessage(responseCode string) string {
	_, msg, found := strings.Cut(responseCode, "|")
	if !found {
		return ""
	}
	return msg
}

// Warning is a validation problem that does not prevent returning the patient.
type Warning struct {
	Code    string
	Message string
}

// ResponseCode encodes the warning the way it is stored on PatientModel.
func (w Warning) ResponseCode() string {
	return w.Code + "|" + w.Message
}

// Warning codes raised by registry validation.
const (
	WarningDeceased    = "DECEASED"
	WarningInvalidName = "INVALIDNAME"
	WarningNoHdid      = "NOHDID"
)

// PatientDetailsQuery asks for a patient by exactly one of Hdid or Phn.
type PatientDetailsQuery struct {
	Hdid               string
	Phn                string
	Source             Source
	UseCache           bool
	DisabledValidation bool
}

// Identifier returns the populated identifier and its type.
func (q PatientDetailsQuery) Identifier() (IdentifierType, string) {
	if q.Hdid != "" {
		return IdentifierHdid, q.Hdid
	}
	return IdentifierPhn, q.Phn
}

// PatientQueryResult is the outcome of a PatientDetailsQuery.
type PatientQueryResult struct {
	Items []PatientModel
}

// DataSource is a category of health data a patient's access can be blocked from.
type DataSource string

const (
	DataSourceImmunization           DataSource = "Immunization"
	DataSourceLaboratory             DataSource = "Laboratory"
	DataSourceMedication             DataSource = "Medication"
	DataSourceNote                   DataSource = "Note"
	DataSourceEncounter              DataSource = "Encounter"
	DataSourceHealthVisit            DataSource = "HealthVisit"
	DataSourceClinicalDocument       DataSource = "ClinicalDocument"
	DataSourceCovid19TestResult      DataSource = "Covid19TestResult"
	DataSourceOrganDonorRegistration DataSource = "OrganDonorRegistration"
	DataSourceDiagnosticImaging      DataSource = "DiagnosticImaging"
	DataSourceSpecialAuthority       DataSource = "SpecialAuthorityRequest"
	DataSourceBcCancerScreening      DataSource = "BcCancerScreening"
)

var knownDataSources = map[DataSource]struct{}{
	DataSourceImmunization:           {},
	DataSourceLaboratory:             {},
	DataSourceMedication:             {},
	DataSourceNote:                   {},
	DataSourceEncounter:              {},
	DataSourceHealthVisit:            {},
	DataSourceClinicalDocument:       {},
	DataSourceCovid19TestResult:      {},
	DataSourceOrganDonorRegistration: {},
	DataSourceDiagnosticImaging:      {},
	DataSourceSpecialAuthority:       {},
	DataSourceBcCancerScreening:      {},
}

func (d DataSource) IsValid() bool {
	_, ok := knownDataSources[d]
	return ok
}

// BlockAccessCommand replaces the set of data sources blocked for a patient.
type BlockAccessCommand struct {
	Hdid        string
	DataSources []DataSource
	Reason      string
}

// Validate reports every problem with the command in a single validation error.
func (c BlockAccessCommand) Validate() error {
	if c.Hdid == "" {
		return dErrors.New(dErrors.CodeBadRequest, "hdid is required")
	}
	var problems []string
	if strings.TrimSpace(c.Reason) == "" {
		problems = append(problems, "reason is required")
	}
	for _, ds := range c.DataSources {
		if !ds.IsValid() {
			problems = append(problems, fmt.Sprintf("unknown data source: %s", ds))
		}
	}
	if len(problems) > 0 {
		return dErrors.Join(dErrors.CodeValidation, problems...)
	}
	return nil
}
