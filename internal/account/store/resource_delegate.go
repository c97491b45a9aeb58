package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"

	"healthgateway/internal/account/models"
)

type ResourceDelegateStore struct {
	db Querier
}

func NewResourceDelegateStore(db Querier) *ResourceDelegateStore {
	return &ResourceDelegateStore{db: db}
}

// Search returns delegates matching q, newest first. With IncludeProfile each
// delegate carries its user profile.
func (s *ResourceDelegateStore) Search(ctx context.Context, q models.ResourceDelegateQuery) (models.ResourceDelegateQueryResult, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT rd.profile_hdid, rd.resource_owner_hdid, rd.reason_code, rd.created_at`)
	if q.IncludeProfile {
		sb.WriteString(`, up.hdid, up.email, up.sms_number, up.created_at, up.last_login_at
		FROM resource_delegate rd
		JOIN user_profile up ON up.hdid = rd.profile_hdid`)
	} else {
		sb.WriteString(` FROM resource_delegate rd`)
	}

	var (
		where []string
		args  []any
	)
	if q.ByOwnerHdid != "" {
		args = append(args, q.ByOwnerHdid)
		where = append(where, fmt.Sprintf("rd.resource_owner_hdid = $%d", len(args)))
	}
	if q.ByDelegateHdid != "" {
		args = append(args, q.ByDelegateHdid)
		where = append(where, fmt.Sprintf("rd.profile_hdid = $%d", len(args)))
	}
	if len(where) > 0 {
		sb.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	sb.WriteString(" ORDER BY rd.created_at DESC")
	if q.TakeAmount > 0 {
		args = append(args, q.TakeAmount)
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	}

	rows, err := s.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return models.ResourceDelegateQueryResult{}, fmt.Errorf("search resource delegates: %w", err)
	}
	defer rows.Close()

	result := models.ResourceDelegateQueryResult{Items: []models.ResourceDelegate{}}
	for rows.Next() {
		var (
			rd      models.ResourceDelegate
			reason  pgtype.Text
			created pgtype.Timestamptz
		)
		dest := []any{&rd.ProfileHdid, &rd.ResourceOwnerHdid, &reason, &created}
		var profile profileRow
		if q.IncludeProfile {
			dest = append(dest, profile.dest()...)
		}
		if err := rows.Scan(dest...); err != nil {
			return models.ResourceDelegateQueryResult{}, fmt.Errorf("scan resource delegate: %w", err)
		}
		if q.IncludeProfile {
			rd.UserProfile = profile.profile()
		}
		rd.ReasonCode = textValue(reason)
		rd.CreatedDateTime = created.Time
		result.Items = append(result.Items, rd)
	}
	if err := rows.Err(); err != nil {
		return models.ResourceDelegateQueryResult{}, fmt.Errorf("iterate resource delegates: %w", err)
	}
	return result, nil
}
