package audit

import (
	"time"

	"github.com/google/uuid"
)

// OperationCode names the support action that was audited.
type OperationCode string

const (
	OperationChangeDataSourceAccess OperationCode = "ChangeDataSourceAccess"
	OperationUnlockAccount          OperationCode = "UnlockAccount"
	OperationProtectDependent       OperationCode = "ProtectDependent"
	OperationUnprotectDependent     OperationCode = "UnprotectDependent"
)

// GroupCode groups related operations for display.
type GroupCode string

const (
	GroupBlockedAccess      GroupCode = "BlockedAccess"
	GroupDelegationAudit    GroupCode = "DelegationAudit"
	GroupAccountStatusAudit GroupCode = "AccountStatusAudit"
)

// AgentAudit records one action a support agent took on a patient.
type AgentAudit struct {
	ID            uuid.UUID     `json:"id"`
	Hdid          string        `json:"hdid"`
	AgentUsername string        `json:"agentUsername"`
	Reason        string        `json:"reason"`
	OperationCode OperationCode `json:"operationCode"`
	GroupCode     GroupCode     `json:"groupCode"`
	// Browser and OS of the agent, derived from the request User-Agent.
	Client    string    `json:"client,omitempty"`
	ClientIP  string    `json:"clientIp,omitempty"`
	CreatedAt time.Time `json:"createdDateTime"`
}

// AgentAuditQuery filters audits by patient and, optionally, group.
type AgentAuditQuery struct {
	Hdid   string
	Groups []GroupCode
}
