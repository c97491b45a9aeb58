package audit

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mssola/useragent"

	"healthgateway/pkg/requestcontext"
)

// Store persists agent audits.
type Store interface {
	Append(ctx context.Context, audit AgentAudit) error
	Handle(ctx context.Context, query AgentAuditQuery) ([]AgentAudit, error)
}

// Publisher stamps agent audits with request metadata before appending them.
// Append joins any transaction carried in ctx.
type Publisher struct {
	store Store
}

func NewPublisher(store Store) *Publisher {
	return &Publisher{store: store}
}

func (p *Publisher) Emit(ctx context.Context, audit AgentAudit) error {
	if audit.ID == uuid.Nil {
		audit.ID = uuid.New()
	}
	if audit.CreatedAt.IsZero() {
		audit.CreatedAt = requestcontext.Now(ctx).UTC()
	}
	if audit.AgentUsername == "" {
		audit.AgentUsername = requestcontext.AgentUsername(ctx)
	}
	if audit.ClientIP == "" {
		audit.ClientIP = requestcontext.ClientIP(ctx)
	}
	if audit.Client == "" {
		audit.Client = DescribeClient(requestcontext.UserAgent(ctx))
	}
	if audit.AgentUsername == "" {
		return fmt.Errorf("agent audit for %s has no agent", audit.OperationCode)
	}
	return p.store.Append(ctx, audit)
}

func (p *Publisher) List(ctx context.Context, query AgentAuditQuery) ([]AgentAudit, error) {
	return p.store.Handle(ctx, query)
}

// DescribeClient summarises a User-Agent header as "Browser Version (OS)".
func DescribeClient(header string) string {
	if strings.TrimSpace(header) == "" {
		return ""
	}
	ua := useragent.New(header)
	name, version := ua.Browser()
	desc := strings.TrimSpace(name + " " + version)
	if os := ua.OS(); os != "" {
		desc += " (" + os + ")"
	}
	return strings.TrimSpace(desc)
}
