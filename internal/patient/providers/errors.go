package providers

import (
	"context"
	"errors"
	"fmt"

	dErrors "healthgateway/pkg/domain-errors"
)

// ErrorCategory normalizes upstream failures across SOAP and REST sources.
type ErrorCategory string

const (
	ErrorTimeout          ErrorCategory = "timeout"
	ErrorBadData          ErrorCategory = "bad_data" // request or returned record failed validation
	ErrorAuthentication   ErrorCategory = "authentication"
	ErrorProviderOutage   ErrorCategory = "provider_outage"
	ErrorContractMismatch ErrorCategory = "contract_mismatch" // upstream answered in an unexpected shape
	ErrorNotFound         ErrorCategory = "not_found"
	ErrorRateLimited      ErrorCategory = "rate_limited"
	ErrorInternal         ErrorCategory = "internal"
)

// Retryable reports whether another source may succeed where this one failed.
func (c ErrorCategory) Retryable() bool {
	switch c {
	case ErrorTimeout, ErrorProviderOutage, ErrorRateLimited:
		return true
	}
	return false
}

// DomainCode maps the category onto the error code returned to API callers.
func (c ErrorCategory) DomainCode() dErrors.Code {
	switch c {
	case ErrorNotFound:
		return dErrors.CodeNotFound
	case ErrorBadData:
		return dErrors.CodeValidation
	case ErrorTimeout:
		return dErrors.CodeTimeout
	case ErrorProviderOutage, ErrorRateLimited, ErrorAuthentication, ErrorContractMismatch:
		return dErrors.CodeUnavailable
	default:
		return dErrors.CodeInternal
	}
}

// ProviderError is the failure every Provider.Lookup returns.
type ProviderError struct {
	Category   ErrorCategory
	ProviderID string
	Message    string
	Underlying error
	Retryable  bool
}

func (e *ProviderError) Error() string {
	if e.Underlying == nil {
		return fmt.Sprintf("%s lookup failed (%s): %s", e.ProviderID, e.Category, e.Message)
	}
	return fmt.Sprintf("%s lookup failed (%s): %s: %v", e.ProviderID, e.Category, e.Message, e.Underlying)
}

func (e *ProviderError) Unwrap() error {
	return e.Underlying
}

func NewProviderError(category ErrorCategory, providerID, message string, underlying error) *ProviderError {
	return &ProviderError{
		Category:   category,
		ProviderID: providerID,
		Message:    message,
		Underlying: underlying,
		Retryable:  category.Retryable(),
	}
}

// TransportError classifies a failed round trip as a timeout or an outage.
func TransportError(providerID, message string, err error) *ProviderError {
	category := ErrorProviderOutage
	if errors.Is(err, context.DeadlineExceeded) {
		category = ErrorTimeout
	}
	return NewProviderError(category, providerID, message, err)
}

func IsRetryable(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Retryable
}

// GetCategory returns ErrorInternal for errors that are not a *ProviderError.
func GetCategory(err error) ErrorCategory {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Category
	}
	return ErrorInternal
}

// ErrProviderNotFound is returned when no provider backs a requested source.
var ErrProviderNotFound = errors.New("provider not found")
