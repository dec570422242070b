package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/dheyaloali/dheya-backend-go/internal/domain/auth"
	"github.com/dheyaloali/dheya-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type refreshTokenRepository struct {
	db *database.DB
}

func NewRefreshTokenRepository(db *database.DB) auth.RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

// Store implements auth.RefreshTokenRepository.
func (r *refreshTokenRepository) Store(ctx context.Context, token auth.RefreshToken) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO refresh_tokens (user_id, token_hash, ip_address, user_agent, expires_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := q.Exec(ctx, query,
		token.UserID, token.TokenHash, token.IPAddress, token.UserAgent, token.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}

	return nil
}

// GetByHash implements auth.RefreshTokenRepository.
func (r *refreshTokenRepository) GetByHash(ctx context.Context, tokenHash string) (auth.RefreshToken, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, token_hash, ip_address, user_agent, expires_at, revoked_at, created_at
		FROM refresh_tokens
		WHERE token_hash = $1
	`

	var t auth.RefreshToken
	err := q.QueryRow(ctx, query, tokenHash).Scan(
		&t.ID, &t.UserID, &t.TokenHash, &t.IPAddress, &t.UserAgent,
		&t.ExpiresAt, &t.RevokedAt, &t.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.RefreshToken{}, auth.ErrInvalidToken
		}
		return auth.RefreshToken{}, fmt.Errorf("failed to get refresh token: %w", err)
	}

	return t, nil
}

// Revoke implements auth.RefreshTokenRepository.
func (r *refreshTokenRepository) Revoke(ctx context.Context, tokenHash string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE refresh_tokens
		SET revoked_at = NOW()
		WHERE token_hash = $1 AND revoked_at IS NULL
	`

	if _, err := q.Exec(ctx, query, tokenHash); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return nil
}

// RevokeAllForUser implements auth.RefreshTokenRepository.
func (r *refreshTokenRepository) RevokeAllForUser(ctx context.Context, userID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE refresh_tokens
		SET revoked_at = NOW()
		WHERE user_id = $1 AND revoked_at IS NULL
	`

	if _, err := q.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to revoke user refresh tokens: %w", err)
	}

	return nil
}
