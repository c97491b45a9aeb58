package audit

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthgateway/pkg/requestcontext"
)

type memoryStore struct {
	audits []AgentAudit
}

func (m *memoryStore) Append(_ context.Context, a AgentAudit) error {
	m.audits = append(m.audits, a)
	return nil
}

func (m *memoryStore) Handle(_ context.Context, q AgentAuditQuery) ([]AgentAudit, error) {
	var out []AgentAudit
	for _, a := range m.audits {
		if a.Hdid == q.Hdid {
			out = append(out, a)
		}
	}
	return out, nil
}

const firefox = "Mozilla/5.0 (X11; Linux x86_64; rv:120.0) Gecko/20100101 Firefox/120.0"

func TestPublisherEmitStampsRequestMetadata(t *testing.T) {
	store := &memoryStore{}
	pub := NewPublisher(store)
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	ctx := requestcontext.WithAgent(context.Background(), "agent@idir", []string{"SupportUser"})
	ctx = requestcontext.WithClientMetadata(ctx, "10.0.0.1", firefox)
	ctx = requestcontext.WithTime(ctx, now)

	err := pub.Emit(ctx, AgentAudit{
		Hdid:          "abc",
		Reason:        "why",
		OperationCode: OperationChangeDataSourceAccess,
		GroupCode:     GroupBlockedAccess,
	})
	require.NoError(t, err)

	got, err := pub.List(ctx, AgentAuditQuery{Hdid: "abc"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.NotEqual(t, uuid.Nil, got[0].ID)
	assert.Equal(t, "agent@idir", got[0].AgentUsername)
	assert.Equal(t, "10.0.0.1", got[0].ClientIP)
	assert.Equal(t, now, got[0].CreatedAt)
	assert.Contains(t, got[0].Client, "Firefox")
	assert.Contains(t, got[0].Client, "Linux")
}

func TestPublisherEmitRequiresAgent(t *testing.T) {
	err := NewPublisher(&memoryStore{}).Emit(context.Background(), AgentAudit{Hdid: "abc"})
	assert.Error(t, err)
}

func TestDescribeClient(t *testing.T) {
	assert.Empty(t, DescribeClient(""))
	assert.Equal(t, "Firefox 120.0 (Linux x86_64)", DescribeClient(firefox))
}
