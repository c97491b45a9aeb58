// Package clientregistry adapts the provincial client registry SOAP service
// (HCIM_IN_GetDemographics) to the providers.Provider interface.
package clientregistry

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"healthgateway/internal/patient/models"
	"healthgateway/internal/patient/providers"
	"healthgateway/pkg/platform/circuit"
)

const (
	ProviderID = "client-registry"

	soapAction = "urn:hl7-org:v3/HCIM_IN_GetDemographics"
)

// Response codes returned in queryAck.
const (
	codeSuccess          = "BCHCIM.GD.0.0013"
	codeOverlay          = "BCHCIM.GD.0.0019"
	codePossibleDup      = "BCHCIM.GD.0.0021"
	codePossibleLinkage  = "BCHCIM.GD.0.0022"
	codeReviewIdentifier = "BCHCIM.GD.0.0023"
	codeNoRecords        = "BCHCIM.GD.2.0018"
	codeInvalidPhn       = "BCHCIM.GD.2.0006"
)

var successCodes = []string{codeSuccess, codeOverlay, codePossibleDup, codePossibleLinkage, codeReviewIdentifier}

// Messages surfaced to callers.
const (
	MsgRecordsNotFound   = "Client Registry did not find any records"
	MsgPhnInvalid        = "PHN is invalid"
	MsgNoPerson          = "Client Registry did not return a person"
	MsgDeceased          = "Client Registry returned a person with the deceased indicator set to true"
	MsgInvalidCard       = "Services Card is invalid"
	MsgBreakerOpen       = "client registry circuit breaker is open"
	communicationFailure = "Communication Exception with client registry when trying to retrieve patient information from %s"
)

var tracer = otel.Tracer("healthgateway/patient/providers/clientregistry")

// Provider calls the client registry over SOAP.
type Provider struct {
	id       string
	endpoint string
	client   *http.Client
	breaker  *circuit.Breaker
	logger   *slog.Logger
	now      func() time.Time
}

type Option func(*Provider)

func WithHTTPClient(client *http.Client) Option {
	return func(p *Provider) {
		p.client = client
	}
}

func WithBreaker(b *circuit.Breaker) Option {
	return func(p *Provider) {
		p.breaker = b
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Provider) {
		p.logger = logger
	}
}

// New creates a client registry provider posting to endpoint.
func New(endpoint string, timeout time.Duration, opts ...Option) *Provider {
	p := &Provider{
		id:       ProviderID,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		breaker:  circuit.New(ProviderID),
		logger:   slog.Default(),
		now:      time.Now,
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
		Protocol:    providers.ProtocolSOAP,
		Source:      models.SourceClientRegistry,
		Identifiers: []models.IdentifierType{models.IdentifierHdid, models.IdentifierPhn},
		Version:     "HCIM_IN_GetDemographics",
	}
}

// Breaker exposes the circuit breaker state for metrics.
func (p *Provider) Breaker() *circuit.Breaker {
	return p.breaker
}

func (p *Provider) Health(_ context.Context) error {
	if p.breaker.IsOpen() {
		return providers.NewProviderError(providers.ErrorProviderOutage, p.id, MsgBreakerOpen, nil)
	}
	return nil
}

// Lookup fetches demographics by HDID or PHN.
func (p *Provider) Lookup(ctx context.Context, req providers.LookupRequest) (*models.PatientModel, error) {
	ctx, span := tracer.Start(ctx, "clientregistry.lookup")
	defer span.End()
	span.SetAttributes(attribute.String("identifier_type", string(req.IdentifierType)))

	root := OidHdid
	if req.IdentifierType == models.IdentifierPhn {
		root = OidPhn
	}

	if !p.breaker.Allow() {
		span.SetStatus(codes.Error, "breaker open")
		return nil, providers.NewProviderError(providers.ErrorProviderOutage, p.id, MsgBreakerOpen, nil)
	}

	resp, err := p.call(ctx, root, req.Identifier)
	if err != nil {
		p.recordFailure(ctx)
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport")
		return nil, providers.TransportError(p.id, fmt.Sprintf(communicationFailure, req.IdentifierType), err)
	}
	p.recordSuccess(ctx)

	patient, err := p.parse(resp, req.DisabledValidation)
	if err != nil {
		span.SetStatus(codes.Error, string(providers.GetCategory(err)))
		return nil, err
	}
	span.SetAttributes(attribute.String("response_code", resp.responseCode()))
	return patient, nil
}

func (p *Provider) call(ctx context.Context, root, extension string) (*demographicsResponse, error) {
	body, err := buildRequest(root, extension, p.now())
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", `text/xml; charset="utf-8"`)
	httpReq.Header.Set("SOAPAction", soapAction)

	httpResp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if httpResp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("client registry returned status %d", httpResp.StatusCode)
	}

	var env envelope
	if err := xml.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decoding envelope: %w", err)
	}
	return &env.Body.Response, nil
}

func (p *Provider) recordFailure(ctx context.Context) {
	if _, change := p.breaker.RecordFailure(); change.Opened {
		p.logger.WarnContext(ctx, "client registry circuit breaker opened", "provider", p.id)
	}
}

func (p *Provider) recordSuccess(ctx context.Context) {
	if _, change := p.breaker.RecordSuccess(); change.Closed {
		p.logger.InfoContext(ctx, "client registry circuit breaker closed", "provider", p.id)
	}
}

// parse maps a decoded response into a patient, applying response code and
// validation rules.
func (p *Provider) parse(resp *demographicsResponse, disabledValidation bool) (*models.PatientModel, error) {
	code := resp.responseCode()
	switch {
	case strings.Contains(code, codeNoRecords):
		return nil, providers.NewProviderError(providers.ErrorNotFound, p.id, MsgRecordsNotFound, nil)
	case strings.Contains(code, codeInvalidPhn):
		return nil, providers.NewProviderError(providers.ErrorBadData, p.id, MsgPhnInvalid, nil)
	case !slices.ContainsFunc(successCodes, func(c string) bool { return strings.Contains(code, c) }):
		return nil, providers.NewProviderError(providers.ErrorNotFound, p.id, MsgNoPerson, nil)
	}

	target := resp.target()
	if target == nil || target.Person == nil {
		return nil, providers.NewProviderError(providers.ErrorNotFound, p.id, MsgNoPerson, nil)
	}

	patient := mapPatient(target)
	patient.ResponseCode = code

	if !disabledValidation {
		if w, ok := validate(target, patient); ok {
			patient.ResponseCode = w.ResponseCode()
		}
	}
	return patient, nil
}

func mapPatient(target *identifiedPerson) *models.PatientModel {
	person := target.Person
	patient := &models.PatientModel{
		Hdid:   findExtension(target.ID, OidHdid),
		Phn:    findExtension(person.ID, OidPhn),
		Gender: mapGender(person.AdministrativeGenderCode.Code),
	}
	if person.DeceasedInd != nil {
		patient.IsDeceased = person.DeceasedInd.Value
	}
	if bt := person.BirthTime.Value; len(bt) >= 8 {
		if t, err := time.Parse("20060102", bt[:8]); err == nil {
			patient.Birthdate = t
		}
	}
	for _, n := range person.Name {
		switch {
		case hasUse(n.Use, "C") && patient.CommonName == nil:
			patient.CommonName = mapName(n)
		case hasUse(n.Use, "L") && patient.LegalName == nil:
			patient.LegalName = mapName(n)
		}
	}
	for _, a := range person.Addr {
		switch {
		case hasUse(a.Use, "PHYS") && patient.PhysicalAddress == nil:
			patient.PhysicalAddress = mapAddress(a)
		case hasUse(a.Use, "PST") && patient.PostalAddress == nil:
			patient.PostalAddress = mapAddress(a)
		}
	}
	return patient
}

func validate(target *identifiedPerson, patient *models.PatientModel) (models.Warning, bool) {
	if patient.IsDeceased {
		return models.Warning{Code: models.WarningDeceased, Message: MsgDeceased}, true
	}
	hasName := slices.ContainsFunc(target.Person.Name, func(n personName) bool {
		return hasUse(n.Use, "C") || hasUse(n.Use, "L")
	})
	if !hasName {
		return models.Warning{Code: models.WarningInvalidName, Message: MsgInvalidCard}, true
	}
	if patient.Phn == "" || patient.Hdid == "" {
		return models.Warning{Code: models.WarningNoHdid, Message: MsgInvalidCard}, true
	}
	return models.Warning{}, false
}

func findExtension(ids []instanceID, root string) string {
	for _, id := range ids {
		if id.Root == root {
			return id.Extension
		}
	}
	return ""
}

func hasUse(use, want string) bool {
	return slices.Contains(strings.Fields(use), want)
}

func mapName(n personName) *models.Name {
	return &models.Name{
		GivenName: joinParts(n.Given),
		Surname:   joinParts(n.Family),
	}
}

func joinParts(parts []namePart) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if hasUse(part.Qualifier, "CL") {
			continue
		}
		if text := strings.TrimSpace(part.Text); text != "" {
			kept = append(kept, text)
		}
	}
	return strings.Join(kept, " ")
}

func mapGender(code string) string {
	switch code {
	case "F":
		return models.GenderFemale
	case "M":
		return models.GenderMale
	default:
		return models.GenderNotSpecified
	}
}

func mapAddress(a address) *models.Address {
	return &models.Address{
		StreetLines: a.StreetAddressLine,
		City:        a.City,
		State:       a.State,
		PostalCode:  a.PostalCode,
		Country:     a.Country,
	}
}
