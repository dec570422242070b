package auth

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/dheyaloali/dheya-backend-go/internal/domain/auth"
	"github.com/dheyaloali/dheya-backend-go/internal/domain/user"
	"github.com/dheyaloali/dheya-backend-go/internal/pkg/clock"
	"github.com/dheyaloali/dheya-backend-go/internal/pkg/database"
	"github.com/dheyaloali/dheya-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	txRunner database.TxRunner
	users    user.Repository
	tokens   auth.RefreshTokenRepository
	jwt      jwt.Service
	clock    clock.Clock
}

func NewAuthService(
	txRunner database.TxRunner,
	users user.Repository,
	tokens auth.RefreshTokenRepository,
	jwtService jwt.Service,
	clk clock.Clock,
) auth.Service {
	return &AuthServiceImpl{
		txRunner: txRunner,
		users:    users,
		tokens:   tokens,
		jwt:      jwtService,
		clock:    clk,
	}
}

// hashToken produces the digest stored in place of the raw refresh token.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// Login implements auth.Service.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest, session auth.SessionTrackingRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	userData, err := a.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	// OAuth-only accounts have no password hash.
	if userData.PasswordHash == nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	return a.issueTokens(ctx, userData, session)
}

// LoginWithGoogle implements auth.Service. An unknown email is provisioned as
// a fresh employee-role account; a known one gets the Google identity linked.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, email, googleID string, session auth.SessionTrackingRequest) (auth.LoginResponse, error) {
	userData, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, fmt.Errorf("failed to get user by email: %w", err)
		}

		provider := "google"
		userData, err = a.users.Create(ctx, user.User{
			Email:           email,
			Role:            user.RoleEmployee,
			OAuthProvider:   &provider,
			OAuthProviderID: &googleID,
		})
		if err != nil {
			return auth.LoginResponse{}, fmt.Errorf("failed to create user: %w", err)
		}
	} else if userData.OAuthProvider == nil || userData.OAuthProviderID == nil {
		if err := a.users.LinkOAuth(ctx, userData.ID, "google", googleID); err != nil {
			return auth.LoginResponse{}, fmt.Errorf("failed to link google account: %w", err)
		}
	}

	return a.issueTokens(ctx, userData, session)
}

func (a *AuthServiceImpl) issueTokens(ctx context.Context, userData user.User, session auth.SessionTrackingRequest) (auth.LoginResponse, error) {
	var resp auth.LoginResponse

	err := a.txRunner.RunInTx(ctx, func(ctx context.Context) error {
		var err error

		resp.AccessToken, resp.AccessTokenExpiresIn, err = a.jwt.GenerateAccessToken(
			userData.ID, userData.Email, userData.EmployeeID, userData.Role,
		)
		if err != nil {
			return fmt.Errorf("failed to create access token: %w", err)
		}

		resp.RefreshToken, resp.RefreshTokenExpiresIn, err = a.jwt.GenerateRefreshToken(userData.ID)
		if err != nil {
			return fmt.Errorf("failed to create refresh token: %w", err)
		}

		token := auth.RefreshToken{
			UserID:    userData.ID,
			TokenHash: hashToken(resp.RefreshToken),
			ExpiresAt: time.Unix(resp.RefreshTokenExpiresIn, 0),
		}
		if session.IPAddress != "" {
			token.IPAddress = &session.IPAddress
		}
		if session.UserAgent != "" {
			token.UserAgent = &session.UserAgent
		}

		if err := a.tokens.Store(ctx, token); err != nil {
			return fmt.Errorf("failed to save refresh token to database: %w", err)
		}
		return nil
	})
	if err != nil {
		return auth.LoginResponse{}, err
	}

	return resp, nil
}

// RefreshToken implements auth.Service.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.RefreshResponse, error) {
	// 1. Verify the JWT signature and expiry
	token, err := jwtauth.VerifyToken(a.jwt.JWTAuth(), req.RefreshToken)
	if err != nil {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}

	// 2. Check token type is "refresh"
	claims, err := token.AsMap(ctx)
	if err != nil {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}
	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != "refresh" {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}

	// 3. Check the stored session for revocation and expiry
	stored, err := a.tokens.GetByHash(ctx, hashToken(req.RefreshToken))
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			return auth.RefreshResponse{}, auth.ErrInvalidToken
		}
		return auth.RefreshResponse{}, fmt.Errorf("failed to look up refresh token: %w", err)
	}
	if stored.Revoked() {
		return auth.RefreshResponse{}, auth.ErrRefreshTokenRevoked
	}
	if stored.Expired(a.clock.Now()) {
		return auth.RefreshResponse{}, auth.ErrTokenExpired
	}

	// 4. Re-load the user so the new access token carries fresh claims
	userData, err := a.users.GetByID(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.RefreshResponse{}, auth.ErrInvalidToken
		}
		return auth.RefreshResponse{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	var resp auth.RefreshResponse
	resp.AccessToken, resp.AccessTokenExpiresIn, err = a.jwt.GenerateAccessToken(
		userData.ID, userData.Email, userData.EmployeeID, userData.Role,
	)
	if err != nil {
		return auth.RefreshResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return resp, nil
}

// Logout implements auth.Service.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if err := a.tokens.Revoke(ctx, hashToken(refreshToken)); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}
