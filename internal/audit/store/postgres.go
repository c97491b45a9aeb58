package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"healthgateway/internal/audit"
	txcontext "healthgateway/pkg/platform/tx"
)

// PostgresStore persists agent audits in the agent_audit table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Append inserts an audit, joining the transaction in ctx if any.
func (s *PostgresStore) Append(ctx context.Context, a audit.AgentAudit) error {
	query := `
		INSERT INTO agent_audit (
			id, hdid, agent_username, reason, operation_code,
			group_code, client, client_ip, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := txcontext.Use(ctx, s.db).ExecContext(ctx, query,
		a.ID,
		a.Hdid,
		a.AgentUsername,
		a.Reason,
		string(a.OperationCode),
		string(a.GroupCode),
		a.Client,
		a.ClientIP,
		a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert agent audit: %w", err)
	}
	return nil
}

// Handle returns the audits matching query, newest first.
func (s *PostgresStore) Handle(ctx context.Context, q audit.AgentAuditQuery) ([]audit.AgentAudit, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT id, hdid, agent_username, reason, operation_code,
			   group_code, client, client_ip, created_at
		FROM agent_audit
		WHERE hdid = $1`)
	args := []any{q.Hdid}
	if len(q.Groups) > 0 {
		groups := make([]string, len(q.Groups))
		for i, g := range q.Groups {
			groups[i] = string(g)
		}
		sb.WriteString(` AND group_code = ANY($2)`)
		args = append(args, pq.Array(groups))
	}
	sb.WriteString(` ORDER BY created_at DESC`)

	rows, err := txcontext.Use(ctx, s.db).QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query agent audits: %w", err)
	}
	defer rows.Close()

	var audits []audit.AgentAudit
	for rows.Next() {
		var (
			a         audit.AgentAudit
			operation string
			group     string
		)
		if err := rows.Scan(&a.ID, &a.Hdid, &a.AgentUsername, &a.Reason, &operation, &group, &a.Client, &a.ClientIP, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan agent audit: %w", err)
		}
		a.OperationCode = audit.OperationCode(operation)
		a.GroupCode = audit.GroupCode(group)
		audits = append(audits, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate agent audits: %w", err)
	}
	return audits, nil
}
