package auth

import (
	"context"
	"testing"
	"time"

	"github.com/dheyaloali/dheya-backend-go/internal/domain/auth"
	"github.com/dheyaloali/dheya-backend-go/internal/domain/user"
	"github.com/dheyaloali/dheya-backend-go/internal/pkg/clock"
	"github.com/dheyaloali/dheya-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// ===== FAKES =====

type passthroughTxRunner struct{}

func (passthroughTxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeUserRepo struct {
	byEmail map[string]user.User
	created []user.User
	linked  map[string]string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]user.User),
		linked:  make(map[string]string),
	}
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	u.ID = "user-created"
	f.byEmail[u.Email] = u
	f.created = append(f.created, u)
	return u, nil
}

func (f *fakeUserRepo) LinkOAuth(ctx context.Context, userID, provider, providerID string) error {
	f.linked[userID] = providerID
	return nil
}

type fakeTokenRepo struct {
	byHash  map[string]auth.RefreshToken
	revoked []string
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{byHash: make(map[string]auth.RefreshToken)}
}

func (f *fakeTokenRepo) Store(ctx context.Context, token auth.RefreshToken) error {
	f.byHash[token.TokenHash] = token
	return nil
}

func (f *fakeTokenRepo) GetByHash(ctx context.Context, tokenHash string) (auth.RefreshToken, error) {
	if t, ok := f.byHash[tokenHash]; ok {
		return t, nil
	}
	return auth.RefreshToken{}, auth.ErrInvalidToken
}

func (f *fakeTokenRepo) Revoke(ctx context.Context, tokenHash string) error {
	if t, ok := f.byHash[tokenHash]; ok {
		now := time.Now()
		t.RevokedAt = &now
		f.byHash[tokenHash] = t
	}
	f.revoked = append(f.revoked, tokenHash)
	return nil
}

func (f *fakeTokenRepo) RevokeAllForUser(ctx context.Context, userID string) error {
	for h, t := range f.byHash {
		if t.UserID == userID {
			now := time.Now()
			t.RevokedAt = &now
			f.byHash[h] = t
		}
	}
	return nil
}

// ===== HELPERS =====

type testEnv struct {
	svc    auth.Service
	users  *fakeUserRepo
	tokens *fakeTokenRepo
	jwt    jwt.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	users := newFakeUserRepo()
	tokens := newFakeTokenRepo()
	jwtService := jwt.NewJWTService("test-secret-key-for-auth-tests", "1h", "168h")

	svc := NewAuthService(passthroughTxRunner{}, users, tokens, jwtService, clock.System())

	return &testEnv{svc: svc, users: users, tokens: tokens, jwt: jwtService}
}

func (e *testEnv) seedUser(t *testing.T, email, password string) user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	h := string(hash)
	empID := "emp-1"
	u := user.User{
		ID:           "user-1",
		Email:        email,
		PasswordHash: &h,
		Role:         user.RoleEmployee,
		EmployeeID:   &empID,
	}
	e.users.byEmail[email] = u
	return u
}

var testSession = auth.SessionTrackingRequest{IPAddress: "127.0.0.1", UserAgent: "go-test"}

// ===== LOGIN =====

func TestLogin_Success(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.seedUser(t, "dheya@example.com", "s3cret-pass")

	resp, err := env.svc.Login(context.Background(), auth.LoginRequest{
		Email:    "dheya@example.com",
		Password: "s3cret-pass",
	}, testSession)

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Len(t, env.tokens.byHash, 1)

	// Only the hash is stored, never the raw token.
	_, rawStored := env.tokens.byHash[resp.RefreshToken]
	assert.False(t, rawStored)
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.seedUser(t, "dheya@example.com", "s3cret-pass")

	_, err := env.svc.Login(context.Background(), auth.LoginRequest{
		Email:    "dheya@example.com",
		Password: "not-the-password",
	}, testSession)

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	_, err := env.svc.Login(context.Background(), auth.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	}, testSession)

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_OAuthOnlyAccountRejected(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	provider := "google"
	env.users.byEmail["g@example.com"] = user.User{
		ID:            "user-g",
		Email:         "g@example.com",
		Role:          user.RoleEmployee,
		OAuthProvider: &provider,
	}

	_, err := env.svc.Login(context.Background(), auth.LoginRequest{
		Email:    "g@example.com",
		Password: "anything",
	}, testSession)

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

// ===== GOOGLE LOGIN =====

func TestLoginWithGoogle_ProvisionsUnknownEmail(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	resp, err := env.svc.LoginWithGoogle(context.Background(), "new@example.com", "google-123", testSession)

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	require.Len(t, env.users.created, 1)
	assert.Equal(t, user.RoleEmployee, env.users.created[0].Role)
}

func TestLoginWithGoogle_LinksExistingAccount(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	u := env.seedUser(t, "dheya@example.com", "s3cret-pass")

	_, err := env.svc.LoginWithGoogle(context.Background(), "dheya@example.com", "google-123", testSession)

	require.NoError(t, err)
	assert.Empty(t, env.users.created)
	assert.Equal(t, "google-123", env.users.linked[u.ID])
}

// ===== REFRESH =====

func TestRefreshToken_Success(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.seedUser(t, "dheya@example.com", "s3cret-pass")
	login, err := env.svc.Login(context.Background(), auth.LoginRequest{
		Email:    "dheya@example.com",
		Password: "s3cret-pass",
	}, testSession)
	require.NoError(t, err)

	resp, err := env.svc.RefreshToken(context.Background(), auth.RefreshTokenRequest{
		RefreshToken: login.RefreshToken,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestRefreshToken_AccessTokenRejected(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.seedUser(t, "dheya@example.com", "s3cret-pass")
	login, err := env.svc.Login(context.Background(), auth.LoginRequest{
		Email:    "dheya@example.com",
		Password: "s3cret-pass",
	}, testSession)
	require.NoError(t, err)

	// An access token is a valid JWT but the wrong type for this endpoint.
	_, err = env.svc.RefreshToken(context.Background(), auth.RefreshTokenRequest{
		RefreshToken: login.AccessToken,
	})

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestRefreshToken_Garbage(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	_, err := env.svc.RefreshToken(context.Background(), auth.RefreshTokenRequest{
		RefreshToken: "not-a-jwt",
	})

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestRefreshToken_RevokedSession(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.seedUser(t, "dheya@example.com", "s3cret-pass")
	login, err := env.svc.Login(context.Background(), auth.LoginRequest{
		Email:    "dheya@example.com",
		Password: "s3cret-pass",
	}, testSession)
	require.NoError(t, err)

	require.NoError(t, env.svc.Logout(context.Background(), login.RefreshToken))

	_, err = env.svc.RefreshToken(context.Background(), auth.RefreshTokenRequest{
		RefreshToken: login.RefreshToken,
	})

	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestRefreshToken_ExpiredSession(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.seedUser(t, "dheya@example.com", "s3cret-pass")
	login, err := env.svc.Login(context.Background(), auth.LoginRequest{
		Email:    "dheya@example.com",
		Password: "s3cret-pass",
	}, testSession)
	require.NoError(t, err)

	// Age the stored session past its lifetime; the JWT itself is still valid.
	for h, tok := range env.tokens.byHash {
		tok.ExpiresAt = time.Now().Add(-time.Hour)
		env.tokens.byHash[h] = tok
	}

	_, err = env.svc.RefreshToken(context.Background(), auth.RefreshTokenRequest{
		RefreshToken: login.RefreshToken,
	})

	assert.ErrorIs(t, err, auth.ErrTokenExpired)
}

// ===== LOGOUT =====

func TestLogout_RevokesStoredSession(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.seedUser(t, "dheya@example.com", "s3cret-pass")
	login, err := env.svc.Login(context.Background(), auth.LoginRequest{
		Email:    "dheya@example.com",
		Password: "s3cret-pass",
	}, testSession)
	require.NoError(t, err)

	require.NoError(t, env.svc.Logout(context.Background(), login.RefreshToken))

	require.Len(t, env.tokens.revoked, 1)
	stored := env.tokens.byHash[env.tokens.revoked[0]]
	assert.True(t, stored.Revoked())
}
