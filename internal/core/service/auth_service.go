package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/mugstore/backoffice/internal/core/domain"
	"github.com/mugstore/backoffice/internal/core/ports"
)

// AuthService implements login and logout with JWT sessions.
type AuthService struct {
	users     ports.UserRepository
	audit     ports.AuditService
	revoker   ports.TokenRevoker
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, audit ports.AuditService, revoker ports.TokenRevoker, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		audit:     audit,
		revoker:   revoker,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// Login verifies the credentials, stamps the account with the client IP and
// returns a signed token. A successful login is audited.
func (s *AuthService) Login(ctx context.Context, username, password, clientIP string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	if !user.IsActiveAdmin {
		return "", nil, domain.ErrAccountDisabled
	}

	user.LastLoginIP = clientIP
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("username", username).Msg("failed to record last login ip")
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	actor := ports.Actor{ID: user.ID, Username: user.Username, Role: user.Role, IP: clientIP}
	s.audit.Record(ctx, actor, domain.ActionLogin, "", "", "User logged in")

	s.logger.Info().Str("username", username).Str("ip", clientIP).Msg("user logged in")
	return token, user, nil
}

// Logout revokes the presented token until its natural expiry and audits the
// teardown.
func (s *AuthService) Logout(ctx context.Context, actor ports.Actor, tokenID string, expiresAt time.Time) error {
	if err := s.revoker.Revoke(ctx, tokenID, expiresAt); err != nil {
		return err
	}
	s.audit.Record(ctx, actor, domain.ActionLogout, "", "", "User logged out")
	return nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     string(user.Role),
		"jti":      uuid.NewString(),
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
