// Package contract holds reusable checks that every identity source adapter must pass.
package contract

import (
	"context"
	"testing"

	"healthgateway/internal/patient/models"
	"healthgateway/internal/patient/providers"
)

// ContractTest defines a test case for provider contract validation
type ContractTest struct {
	Name         string
	Provider     providers.Provider
	Request      providers.LookupRequest
	ValidateFunc func(patient *models.PatientModel) error
}

// ContractSuite is a collection of contract tests for a provider
type ContractSuite struct {
	ProviderID string
	Tests      []ContractTest
}

// Run executes all contract tests in the suite
func (s *ContractSuite) Run(t *testing.T) {
	for _, test := range s.Tests {
		t.Run(test.Name, func(t *testing.T) {
			if test.Provider.ID() != s.ProviderID {
				t.Errorf("expected provider ID %s, got %s", s.ProviderID, test.Provider.ID())
			}

			patient, err := test.Provider.Lookup(context.Background(), test.Request)
			if err != nil {
				t.Fatalf("provider lookup failed: %v", err)
			}
			if patient == nil {
				t.Fatal("provider returned nil patient without error")
			}

			// The queried identifier must come back on the patient.
			switch test.Request.IdentifierType {
			case models.IdentifierHdid:
				if patient.Hdid != test.Request.Identifier {
					t.Errorf("expected hdid %s, got %s", test.Request.Identifier, patient.Hdid)
				}
			case models.IdentifierPhn:
				if patient.Phn != test.Request.Identifier {
					t.Errorf("expected phn %s, got %s", test.Request.Identifier, patient.Phn)
				}
			}

			if test.ValidateFunc != nil {
				if err := test.ValidateFunc(patient); err != nil {
					t.Errorf("custom validation failed: %v", err)
				}
			}
		})
	}
}

// CapabilityTest validates that provider capabilities are correctly declared
type CapabilityTest struct {
	Provider providers.Provider
}

// Run executes a capability test
func (ct *CapabilityTest) Run(t *testing.T) {
	caps := ct.Provider.Capabilities()

	if caps.Protocol == "" {
		t.Error("protocol not set")
	}
	if !caps.Source.IsValid() || caps.Source == models.SourceAll {
		t.Errorf("source %q must name a single registry", caps.Source)
	}
	if caps.Version == "" {
		t.Error("version not set")
	}
	if len(caps.Identifiers) == 0 {
		t.Error("no identifier types declared")
	}
}

// ErrorContractTest validates that provider errors follow the taxonomy
type ErrorContractTest struct {
	Name          string
	Provider      providers.Provider
	Request       providers.LookupRequest
	ExpectedError providers.ErrorCategory
	ExpectedRetry bool
}

// Run executes an error contract test
func (ect *ErrorContractTest) Run(t *testing.T) {
	t.Run(ect.Name, func(t *testing.T) {
		_, err := ect.Provider.Lookup(context.Background(), ect.Request)
		if err == nil {
			t.Fatal("expected error but got none")
		}

		category := providers.GetCategory(err)
		if category != ect.ExpectedError {
			t.Errorf("expected error category %s, got %s", ect.ExpectedError, category)
		}

		isRetryable := providers.IsRetryable(err)
		if isRetryable != ect.ExpectedRetry {
			t.Errorf("expected retryable=%v, got %v", ect.ExpectedRetry, isRetryable)
		}
	})
}
