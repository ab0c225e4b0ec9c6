package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"nextalk-server/internal/domain"
)

type DeviceTokenRepository interface {
	Upsert(ctx context.Context, token *domain.DeviceToken) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.DeviceToken, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteForUser(ctx context.Context, userID uuid.UUID) error
}

type deviceTokenRepository struct {
	db *sqlx.DB
}

func NewDeviceTokenRepository(db *sqlx.DB) DeviceTokenRepository {
	return &deviceTokenRepository{db: db}
}

// Upsert reassigns the token when another user registered it earlier from
// the same browser; the provider hands out one token per installation.
func (r *deviceTokenRepository) Upsert(ctx context.Context, token *domain.DeviceToken) error {
	query := `
		INSERT INTO device_tokens (id, user_id, token, user_agent)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (token) DO UPDATE SET user_id = EXCLUDED.user_id, user_agent = EXCLUDED.user_agent
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		token.ID, token.UserID, token.Token, token.UserAgent,
	).Scan(&token.CreatedAt)
}

func (r *deviceTokenRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.DeviceToken, error) {
	var tokens []domain.DeviceToken
	query := `SELECT * FROM device_tokens WHERE user_id = $1 ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &tokens, query, userID); err != nil {
		return nil, err
	}
	return tokens, nil
}

func (r *deviceTokenRepository) DeleteByToken(ctx context.Context, token string) error {
	query := `DELETE FROM device_tokens WHERE token = $1`
	_, err := r.db.ExecContext(ctx, query, token)
	return err
}

func (r *deviceTokenRepository) DeleteForUser(ctx context.Context, userID uuid.UUID) error {
	query := `DELETE FROM device_tokens WHERE user_id = $1`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}
