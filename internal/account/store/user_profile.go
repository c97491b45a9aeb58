package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"healthgateway/internal/account/models"
	dErrors "healthgateway/pkg/domain-errors"
)

const userProfileColumns = `hdid, email, sms_number, created_at, last_login_at`

type UserProfileStore struct {
	db Querier
}

func NewUserProfileStore(db Querier) *UserProfileStore {
	return &UserProfileStore{db: db}
}

// GetUserProfile returns the profile for hdid, or nil when none exists.
func (s *UserProfileStore) GetUserProfile(ctx context.Context, hdid string) (*models.UserProfile, error) {
	query := `SELECT ` + userProfileColumns + ` FROM user_profile WHERE hdid = $1`
	profile, err := scanUserProfile(s.db.QueryRow(ctx, query, hdid))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user profile: %w", err)
	}
	return profile, nil
}

// GetUserProfiles searches profiles by email or SMS number.
func (s *UserProfileStore) GetUserProfiles(ctx context.Context, queryType models.UserQueryType, value string) ([]models.UserProfile, error) {
	var column string
	switch queryType {
	case models.UserQueryEmail:
		column = "email"
	case models.UserQuerySms:
		column = "sms_number"
	default:
		return nil, dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf("unsupported user query type: %s", queryType))
	}

	query := `SELECT ` + userProfileColumns + ` FROM user_profile WHERE ` + column + ` = $1 ORDER BY created_at`
	rows, err := s.db.Query(ctx, query, value)
	if err != nil {
		return nil, fmt.Errorf("query user profiles: %w", err)
	}
	defer rows.Close()

	profiles := []models.UserProfile{}
	for rows.Next() {
		p, err := scanUserProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user profile: %w", err)
		}
		profiles = append(profiles, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user profiles: %w", err)
	}
	return profiles, nil
}

func scanUserProfile(row pgx.Row) (*models.UserProfile, error) {
	var r profileRow
	if err := row.Scan(r.dest()...); err != nil {
		return nil, err
	}
	return r.profile(), nil
}

// profileRow holds the nullable user_profile columns during a scan.
type profileRow struct {
	hdid      string
	email     pgtype.Text
	sms       pgtype.Text
	created   pgtype.Timestamptz
	lastLogin pgtype.Timestamptz
}

func (r *profileRow) dest() []any {
	return []any{&r.hdid, &r.email, &r.sms, &r.created, &r.lastLogin}
}

func (r *profileRow) profile() *models.UserProfile {
	p := &models.UserProfile{
		Hdid:            r.hdid,
		Email:           textValue(r.email),
		SmsNumber:       textValue(r.sms),
		CreatedDateTime: r.created.Time,
	}
	if r.lastLogin.Valid {
		t := r.lastLogin.Time
		p.LastLoginDateTime = &t
	}
	return p
}
