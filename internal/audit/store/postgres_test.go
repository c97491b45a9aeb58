package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthgateway/internal/audit"
)

var auditColumns = []string{"id", "hdid", "agent_username", "reason", "operation_code", "group_code", "client", "client_ip", "created_at"}

func newStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgres(db), mock
}

func TestAppend(t *testing.T) {
	s, mock := newStore(t)
	a := audit.AgentAudit{
		ID:            uuid.New(),
		Hdid:          "abc",
		AgentUsername: "agent@idir",
		Reason:        "patient request",
		OperationCode: audit.OperationChangeDataSourceAccess,
		GroupCode:     audit.GroupBlockedAccess,
		CreatedAt:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	mock.ExpectExec("INSERT INTO agent_audit").
		WithArgs(a.ID, "abc", "agent@idir", "patient request", "ChangeDataSourceAccess", "BlockedAccess", "", "", a.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Append(context.Background(), a))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHandle(t *testing.T) {
	s, mock := newStore(t)
	id := uuid.New()
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("by hdid", func(t *testing.T) {
		mock.ExpectQuery(`FROM agent_audit\s+WHERE hdid = \$1 ORDER BY created_at DESC`).
			WithArgs("abc").
			WillReturnRows(sqlmock.NewRows(auditColumns).
				AddRow(id.String(), "abc", "agent", "why", "ChangeDataSourceAccess", "BlockedAccess", "Firefox 120.0 (Linux x86_64)", "10.0.0.1", created))

		got, err := s.Handle(context.Background(), audit.AgentAuditQuery{Hdid: "abc"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, id, got[0].ID)
		assert.Equal(t, audit.GroupBlockedAccess, got[0].GroupCode)
		assert.Equal(t, created, got[0].CreatedAt)
	})

	t.Run("filtered by group", func(t *testing.T) {
		mock.ExpectQuery(`group_code = ANY\(\$2\)`).
			WithArgs("abc", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows(auditColumns))

		got, err := s.Handle(context.Background(), audit.AgentAuditQuery{Hdid: "abc", Groups: []audit.GroupCode{audit.GroupBlockedAccess}})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}
