package auth

import "context"

type Service interface {
	Login(ctx context.Context, req LoginRequest, session SessionTrackingRequest) (LoginResponse, error)
	LoginWithGoogle(ctx context.Context, email, googleID string, session SessionTrackingRequest) (LoginResponse, error)
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (RefreshResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}
