package auth

import (
	"context"
	"time"
)

// RefreshToken is a stored session credential. Only the SHA-256 hash of the
// token ever touches the database.
type RefreshToken struct {
	ID        string
	UserID    string
	TokenHash string
	IPAddress *string
	UserAgent *string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}

// Revoked reports whether the token has been invalidated by a logout.
func (t *RefreshToken) Revoked() bool {
	return t.RevokedAt != nil
}

// Expired reports whether the token is past its lifetime at the given instant.
func (t *RefreshToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

type RefreshTokenRepository interface {
	Store(ctx context.Context, token RefreshToken) error
	// GetByHash returns ErrInvalidToken when no row matches.
	GetByHash(ctx context.Context, tokenHash string) (RefreshToken, error)
	Revoke(ctx context.Context, tokenHash string) error
	RevokeAllForUser(ctx context.Context, userID string) error
}
