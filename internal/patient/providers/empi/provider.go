// Package empi adapts the enterprise master patient index REST API to the
// providers.Provider interface.
package empi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"healthgateway/internal/patient/models"
	"healthgateway/internal/patient/providers"
)

const ProviderID = "empi"

var tracer = otel.Tracer("healthgateway/patient/providers/empi")

// Provider calls the EMPI patient endpoint.
type Provider struct {
	id      string
	baseURL string
	apiKey  string
	client  *http.Client
}

type Option func(*Provider)

func WithHTTPClient(client *http.Client) Option {
	return func(p *Provider) {
		p.client = client
	}
}

func New(baseURL, apiKey string, timeout time.Duration, opts ...Option) *Provider {
	p := &Provider{
		id:      ProviderID,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Provider) ID() string {
	return p.id
}

func (p *Provider) Capabilities() providers.Capabilities {
	return providers.Capabilities{
		Protocol:    providers.ProtocolHTTP,
		Source:      models.SourceEmpi,
		Identifiers: []models.IdentifierType{models.IdentifierHdid, models.IdentifierPhn},
		Version:     "v1",
	}
}

// Health pings the EMPI health endpoint.
func (p *Provider) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/health", nil)
	if err != nil {
		return providers.NewProviderError(providers.ErrorInternal, p.id, "creating health request", err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return providers.TransportError(p.id, "health check failed", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return providers.NewProviderError(providers.ErrorProviderOutage, p.id, fmt.Sprintf("health check returned %d", resp.StatusCode), nil)
	}
	return nil
}

func (p *Provider) Lookup(ctx context.Context, req providers.LookupRequest) (*models.PatientModel, error) {
	ctx, span := tracer.Start(ctx, "empi.lookup")
	defer span.End()
	span.SetAttributes(attribute.String("identifier_type", string(req.IdentifierType)))

	segment := "hdid"
	if req.IdentifierType == models.IdentifierPhn {
		segment = "phn"
	}
	endpoint := fmt.Sprintf("%s/patients/%s/%s", p.baseURL, segment, url.PathEscape(req.Identifier))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, providers.NewProviderError(providers.ErrorInternal, p.id, "creating request", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Api-Key", p.apiKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport")
		return nil, providers.TransportError(p.id, "EMPI request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, providers.TransportError(p.id, "reading EMPI response", err)
	}

	patient, err := parseEmpiResponse(resp.StatusCode, body)
	if err != nil {
		span.SetStatus(codes.Error, string(providers.GetCategory(err)))
		return nil, err
	}
	return patient, nil
}

// patientResponse is the EMPI wire format.
type patientResponse struct {
	Hdid            string           `json:"hdid"`
	Phn             string           `json:"phn"`
	PreferredName   *nameResponse    `json:"preferredName"`
	LegalName       *nameResponse    `json:"legalName"`
	BirthDate       string           `json:"birthDate"`
	Gender          string           `json:"gender"`
	Deceased        bool             `json:"deceased"`
	PhysicalAddress *addressResponse `json:"physicalAddress"`
	MailingAddress  *addressResponse `json:"mailingAddress"`
}

type nameResponse struct {
	Given  []string `json:"given"`
	Family string   `json:"family"`
}

type addressResponse struct {
	Lines      []string `json:"lines"`
	City       string   `json:"city"`
	Province   string   `json:"province"`
	PostalCode string   `json:"postalCode"`
	Country    string   `json:"country"`
}

func parseEmpiResponse(status int, body []byte) (*models.PatientModel, error) {
	switch {
	case status == http.StatusNotFound:
		return nil, providers.NewProviderError(providers.ErrorNotFound, ProviderID, "EMPI did not find the patient", nil)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return nil, providers.NewProviderError(providers.ErrorAuthentication, ProviderID, fmt.Sprintf("EMPI rejected credentials (%d)", status), nil)
	case status == http.StatusTooManyRequests:
		return nil, providers.NewProviderError(providers.ErrorRateLimited, ProviderID, "EMPI rate limit exceeded", nil)
	case status >= http.StatusInternalServerError:
		return nil, providers.NewProviderError(providers.ErrorProviderOutage, ProviderID, fmt.Sprintf("EMPI returned %d", status), nil)
	case status != http.StatusOK:
		return nil, providers.NewProviderError(providers.ErrorBadData, ProviderID, fmt.Sprintf("EMPI returned unexpected status %d", status), nil)
	}

	var wire patientResponse
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, providers.NewProviderError(providers.ErrorContractMismatch, ProviderID, "decoding EMPI patient", err)
	}
	if wire.Hdid == "" && wire.Phn == "" {
		return nil, providers.NewProviderError(providers.ErrorContractMismatch, ProviderID, "EMPI patient has no identifiers", nil)
	}

	patient := &models.PatientModel{
		Hdid:            wire.Hdid,
		Phn:             wire.Phn,
		CommonName:      wire.PreferredName.toModel(),
		LegalName:       wire.LegalName.toModel(),
		Gender:          mapGender(wire.Gender),
		IsDeceased:      wire.Deceased,
		PhysicalAddress: wire.PhysicalAddress.toModel(),
		PostalAddress:   wire.MailingAddress.toModel(),
	}
	if wire.BirthDate != "" {
		birthdate, err := time.Parse(time.DateOnly, wire.BirthDate)
		if err != nil {
			return nil, providers.NewProviderError(providers.ErrorContractMismatch, ProviderID, "parsing birthDate", err)
		}
		patient.Birthdate = birthdate
	}
	return patient, nil
}

func (n *nameResponse) toModel() *models.Name {
	if n == nil {
		return nil
	}
	return &models.Name{GivenName: strings.Join(n.Given, " "), Surname: n.Family}
}

func (a *addressResponse) toModel() *models.Address {
	if a == nil {
		return nil
	}
	return &models.Address{
		StreetLines: a.Lines,
		City:        a.City,
		State:       a.Province,
		PostalCode:  a.PostalCode,
		Country:     a.Country,
	}
}

func mapGender(g string) string {
	switch strings.ToLower(g) {
	case "female", "f":
		return models.GenderFemale
	case "male", "m":
		return models.GenderMale
	default:
		return models.GenderNotSpecified
	}
}
