package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"investhub/internal/adapters/persistence/models"
	"investhub/internal/config"
	"investhub/internal/core/domain"
	"investhub/internal/core/services"
	"investhub/internal/pkg/password"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeRefreshTokenRepo implements repositories.RefreshTokenRepository in memory
type fakeRefreshTokenRepo struct {
	mu     sync.Mutex
	nextID uint
	tokens map[uint]*models.RefreshToken
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: map[uint]*models.RefreshToken{}}
}

func (f *fakeRefreshTokenRepo) Create(ctx context.Context, token *models.RefreshToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	token.ID = f.nextID
	copied := *token
	f.tokens[token.ID] = &copied
	return nil
}

func (f *fakeRefreshTokenRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tokens {
		if t.TokenHash == tokenHash {
			copied := *t
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRefreshTokenRepo) Revoke(ctx context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tokens[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	now := time.Now()
	t.RevokedAt = &now
	return nil
}

func (f *fakeRefreshTokenRepo) RevokeByTokenHash(ctx context.Context, tokenHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	for _, t := range f.tokens {
		if t.TokenHash == tokenHash {
			t.RevokedAt = &now
		}
	}
	return nil
}

func (f *fakeRefreshTokenRepo) RevokeAllByUserID(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	for _, t := range f.tokens {
		if t.UserID == userID {
			t.RevokedAt = &now
		}
	}
	return nil
}

func (f *fakeRefreshTokenRepo) DeleteExpired(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var deleted int64
	for id, t := range f.tokens {
		if time.Now().After(t.ExpiresAt) {
			delete(f.tokens, id)
			deleted++
		}
	}
	return deleted, nil
}

func (f *fakeRefreshTokenRepo) activeForUser(userID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, t := range f.tokens {
		if t.UserID == userID && t.RevokedAt == nil {
			count++
		}
	}
	return count
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
}

func seedUser(t *testing.T, users *fakeUserRepo, role string) *models.User {
	t.Helper()
	hash, err := password.Hash("correct-password")
	require.NoError(t, err)
	u := &models.User{
		ID:       "user-" + role,
		Email:    role + "@investhub.in",
		Password: hash,
		Role:     role,
		IsActive: true,
	}
	users.add(u)
	return u
}

func TestLoginAdminSucceeds(t *testing.T) {
	users := newFakeUserRepo()
	admin := seedUser(t, users, "admin")
	tokens := newFakeRefreshTokenRepo()
	store := services.NewSessionStore()
	svc := services.NewAuthService(users, tokens, store, testConfig())

	events, cancel := store.Subscribe()
	defer cancel()

	resp, err := svc.Login(context.Background(), &services.LoginInput{
		Email:    admin.Email,
		Password: "correct-password",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)
	require.Equal(t, admin.ID, resp.User.ID)
	require.Equal(t, 1, tokens.activeForUser(admin.ID))

	// The sign-in is announced to the gate
	select {
	case evt := <-events:
		require.Equal(t, domain.EventSignedIn, evt.Type)
		require.Equal(t, admin.ID, evt.Session.UserID)
	case <-time.After(time.Second):
		t.Fatal("SIGNED_IN event never published")
	}
}

func TestLoginRefusesNonAdmin(t *testing.T) {
	users := newFakeUserRepo()
	investor := seedUser(t, users, "investor")
	tokens := newFakeRefreshTokenRepo()
	svc := services.NewAuthService(users, tokens, nil, testConfig())

	// The password is correct; the role alone refuses entry
	_, err := svc.Login(context.Background(), &services.LoginInput{
		Email:    investor.Email,
		Password: "correct-password",
	})
	require.ErrorIs(t, err, services.ErrAdminOnly)
	require.Zero(t, tokens.activeForUser(investor.ID))
}

func TestLoginWrongPassword(t *testing.T) {
	users := newFakeUserRepo()
	admin := seedUser(t, users, "admin")
	svc := services.NewAuthService(users, newFakeRefreshTokenRepo(), nil, testConfig())

	_, err := svc.Login(context.Background(), &services.LoginInput{
		Email:    admin.Email,
		Password: "wrong",
	})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &services.LoginInput{
		Email:    "nobody@investhub.in",
		Password: "whatever",
	})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestRefreshRotatesToken(t *testing.T) {
	users := newFakeUserRepo()
	admin := seedUser(t, users, "admin")
	tokens := newFakeRefreshTokenRepo()
	svc := services.NewAuthService(users, tokens, nil, testConfig())

	login, err := svc.Login(context.Background(), &services.LoginInput{
		Email:    admin.Email,
		Password: "correct-password",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// Exactly one live token: the old one was revoked by rotation
	require.Equal(t, 1, tokens.activeForUser(admin.ID))

	// The rotated-out token cannot be used again
	_, err = svc.RefreshToken(context.Background(), login.RefreshToken)
	require.ErrorIs(t, err, services.ErrTokenRevoked)
}

func TestRefreshCutsDemotedAdmin(t *testing.T) {
	users := newFakeUserRepo()
	admin := seedUser(t, users, "admin")
	tokens := newFakeRefreshTokenRepo()
	svc := services.NewAuthService(users, tokens, nil, testConfig())

	login, err := svc.Login(context.Background(), &services.LoginInput{
		Email:    admin.Email,
		Password: "correct-password",
	})
	require.NoError(t, err)

	// Role changes while the refresh token is still live
	users.users[admin.ID].Role = "investor"

	_, err = svc.RefreshToken(context.Background(), login.RefreshToken)
	require.ErrorIs(t, err, services.ErrAdminOnly)
	require.Zero(t, tokens.activeForUser(admin.ID))
}

func TestLogoutRevokesAndAnnounces(t *testing.T) {
	users := newFakeUserRepo()
	admin := seedUser(t, users, "admin")
	tokens := newFakeRefreshTokenRepo()
	store := services.NewSessionStore()
	svc := services.NewAuthService(users, tokens, store, testConfig())

	login, err := svc.Login(context.Background(), &services.LoginInput{
		Email:    admin.Email,
		Password: "correct-password",
	})
	require.NoError(t, err)

	events, cancel := store.Subscribe()
	defer cancel()

	require.NoError(t, svc.Logout(context.Background(), login.RefreshToken))
	require.Zero(t, tokens.activeForUser(admin.ID))

	select {
	case evt := <-events:
		require.Equal(t, domain.EventSignedOut, evt.Type)
	case <-time.After(time.Second):
		t.Fatal("SIGNED_OUT event never published")
	}
}

func TestRevokeSessionsIsQuiet(t *testing.T) {
	users := newFakeUserRepo()
	admin := seedUser(t, users, "admin")
	tokens := newFakeRefreshTokenRepo()
	store := services.NewSessionStore()
	svc := services.NewAuthService(users, tokens, store, testConfig())

	_, err := svc.Login(context.Background(), &services.LoginInput{
		Email:    admin.Email,
		Password: "correct-password",
	})
	require.NoError(t, err)

	events, cancel := store.Subscribe()
	defer cancel()

	require.NoError(t, svc.RevokeSessions(context.Background(), admin.ID))
	require.Zero(t, tokens.activeForUser(admin.ID))

	// No sign-out event: the gate holds the denial reason itself
	select {
	case evt := <-events:
		t.Fatalf("unexpected event published: %v", evt.Type)
	case <-time.After(50 * time.Millisecond):
	}
}
