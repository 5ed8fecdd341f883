package services

import (
	"context"
	"errors"
	"log"

	"investhub/internal/adapters/persistence/models"
	"investhub/internal/adapters/persistence/repositories"
	"investhub/internal/config"
	"investhub/internal/core/domain"
	"investhub/internal/pkg/jwt"
	"investhub/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Auth errors
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenRevoked = errors.New("token revoked")
	ErrUserInactive = errors.New("user account is inactive")
	ErrAdminOnly    = errors.New("access denied, this login is for administrators only")
)

// AuthService handles back-office authentication. Only administrators may
// hold a session here; a correct password on a non-admin account is still
// refused and no tokens are issued.
type AuthService struct {
	userRepo         repositories.UserRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	sessions         *SessionStore
	cfg              *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	sessions *SessionStore,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		sessions:         sessions,
		cfg:              cfg,
	}
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User         *models.UserResponse `json:"user"`
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token"`
}

// Login authenticates an administrator by email and password
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	// 1. Find user by email
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	// 2. Check if user is active
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	// 3. Verify password
	if !password.Verify(input.Password, user.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	// 4. Back office is admin only; correct credentials are not enough
	if user.Role != string(domain.RoleAdmin) {
		log.Printf("⚠️ Non-admin login refused: %s (role: %s)", user.Email, user.Role)
		return nil, ErrAdminOnly
	}

	// 5. Issue tokens
	resp, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Admin logged in: %s", user.Email)
	return resp, nil
}

// SignInUser issues a session for a user already authenticated by an
// external provider (the Google OAuth callback lands here). Role gating is
// left to the authorization gate so callback races resolve the same way a
// direct login does.
func (s *AuthService) SignInUser(ctx context.Context, user *models.User) (*AuthResponse, error) {
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	resp, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}
	log.Printf("✅ OAuth sign-in: %s", user.Email)
	return resp, nil
}

// SignInGoogle resolves a verified Google profile to a local user and
// issues a session. A Google account with no matching profile row cannot
// enter at all.
func (s *AuthService) SignInGoogle(ctx context.Context, profile *GoogleProfile) (*AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, profile.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProfileMissing
		}
		return nil, err
	}
	return s.SignInUser(ctx, user)
}

// RefreshToken rotates a refresh token and returns a new pair
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	// 1. Validate refresh token JWT
	claims, err := jwt.ValidateRefreshToken(refreshToken, s.cfg.JWT.RefreshSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	// 2. Find the stored token by hash
	tokenHash := password.HashToken(refreshToken)
	storedToken, err := s.refreshTokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	// 3. Reject revoked or expired tokens
	if storedToken.IsRevoked() {
		return nil, ErrTokenRevoked
	}
	if storedToken.IsExpired() {
		return nil, domain.ErrTokenExpired
	}

	// 4. Load the user and recheck eligibility
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	if user.Role != string(domain.RoleAdmin) {
		// Role changed since the token was issued; cut the session.
		_ = s.refreshTokenRepo.RevokeAllByUserID(ctx, user.ID)
		return nil, ErrAdminOnly
	}

	// 5. Rotate: revoke the old token, issue and store a new pair
	if err := s.refreshTokenRepo.Revoke(ctx, storedToken.ID); err != nil {
		return nil, err
	}
	resp, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Token refreshed for: %s", user.Email)
	return resp, nil
}

// Logout revokes one refresh token and announces the sign-out
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	tokenHash := password.HashToken(refreshToken)
	if err := s.refreshTokenRepo.RevokeByTokenHash(ctx, tokenHash); err != nil {
		return err
	}
	if s.sessions != nil {
		s.sessions.Publish(domain.SessionEvent{Type: domain.EventSignedOut})
	}
	log.Printf("✅ User logged out")
	return nil
}

// LogoutAll revokes every refresh token for a user
func (s *AuthService) LogoutAll(ctx context.Context, userID string) error {
	if err := s.refreshTokenRepo.RevokeAllByUserID(ctx, userID); err != nil {
		return err
	}
	if s.sessions != nil {
		s.sessions.Publish(domain.SessionEvent{Type: domain.EventSignedOut})
	}
	log.Printf("✅ All sessions revoked for user: %s", userID)
	return nil
}

// RevokeSessions implements the gate's revoker: a rejected role check must
// not leave a usable session behind. No sign-out event is published; the
// gate already holds the denial and its reason.
func (s *AuthService) RevokeSessions(ctx context.Context, userID string) error {
	return s.refreshTokenRepo.RevokeAllByUserID(ctx, userID)
}

// ValidateAccessToken validates an access token
func (s *AuthService) ValidateAccessToken(accessToken string) (*jwt.Claims, error) {
	return jwt.ValidateAccessToken(accessToken, s.cfg.JWT.Secret)
}

// GetUserByID gets a user by ID
func (s *AuthService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// issueSession generates a token pair, stores the refresh token and
// publishes the SIGNED_IN event
func (s *AuthService) issueSession(ctx context.Context, user *models.User) (*AuthResponse, error) {
	tokens, err := s.generateTokens(user)
	if err != nil {
		return nil, err
	}
	if err := s.storeRefreshToken(ctx, user.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}
	if s.sessions != nil {
		s.sessions.Publish(domain.SessionEvent{
			Type:    domain.EventSignedIn,
			Session: &domain.Session{UserID: user.ID, Email: user.Email},
		})
	}
	return &AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// generateTokens generates access and refresh tokens
func (s *AuthService) generateTokens(user *models.User) (*domain.TokenPair, error) {
	accessToken, err := jwt.GenerateAccessToken(
		user.ID,
		user.Email,
		user.Role,
		s.cfg.JWT.Secret,
		s.cfg.JWT.AccessTokenMins,
	)
	if err != nil {
		return nil, err
	}

	tokenID := uuid.New().String()
	refreshToken, err := jwt.GenerateRefreshToken(
		user.ID,
		tokenID,
		s.cfg.JWT.RefreshSecret,
		s.cfg.JWT.RefreshTokenDays,
	)
	if err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// storeRefreshToken stores a refresh token in the database
func (s *AuthService) storeRefreshToken(ctx context.Context, userID string, refreshToken string) error {
	token := &models.RefreshToken{
		UserID:    userID,
		TokenHash: password.HashToken(refreshToken),
		ExpiresAt: jwt.GetExpiryTime(s.cfg.JWT.RefreshTokenDays),
	}
	return s.refreshTokenRepo.Create(ctx, token)
}
