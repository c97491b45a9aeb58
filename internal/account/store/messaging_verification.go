package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"

	"healthgateway/internal/account/models"
)

type MessagingVerificationStore struct {
	db Querier
}

func NewMessagingVerificationStore(db Querier) *MessagingVerificationStore {
	return &MessagingVerificationStore{db: db}
}

// GetUserMessageVerifications lists every verification for hdid, oldest first.
func (s *MessagingVerificationStore) GetUserMessageVerifications(ctx context.Context, hdid string) ([]models.MessagingVerification, error) {
	query := `
		SELECT id, user_profile_id, verification_type, email, sms_number,
			   validated, deleted, verification_attempts, expire_date,
			   created_at, updated_at
		FROM messaging_verification
		WHERE user_profile_id = $1
		ORDER BY created_at
	`
	rows, err := s.db.Query(ctx, query, hdid)
	if err != nil {
		return nil, fmt.Errorf("query messaging verifications: %w", err)
	}
	defer rows.Close()

	out := []models.MessagingVerification{}
	for rows.Next() {
		var (
			v          models.MessagingVerification
			kind       string
			email      pgtype.Text
			sms        pgtype.Text
			attempts   int32
			expireDate pgtype.Timestamptz
			created    pgtype.Timestamptz
			updated    pgtype.Timestamptz
		)
		if err := rows.Scan(&v.ID, &v.UserProfileID, &kind, &email, &sms,
			&v.Validated, &v.Deleted, &attempts, &expireDate, &created, &updated); err != nil {
			return nil, fmt.Errorf("scan messaging verification: %w", err)
		}
		v.VerificationType = models.VerificationType(kind)
		v.Email = textValue(email)
		v.SmsNumber = textValue(sms)
		v.VerificationAttempts = int(attempts)
		v.ExpireDate = expireDate.Time
		v.CreatedDateTime = created.Time
		v.UpdatedDateTime = updated.Time
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messaging verifications: %w", err)
	}
	return out, nil
}
