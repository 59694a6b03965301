package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/mugstore/backoffice/internal/core/domain"
	"github.com/mugstore/backoffice/internal/core/ports"
)

func seedUser(t *testing.T, repo *stubUserRepo, username, password string, role domain.Role, active bool) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	u := &domain.User{
		ID:            "user-" + username,
		Username:      username,
		Email:         username + "@example.com",
		PasswordHash:  string(hash),
		Role:          role,
		IsActiveAdmin: active,
		CreatedAt:     time.Now().UTC(),
	}
	repo.users[u.ID] = u
	return u
}

func newAuthFixture(t *testing.T) (*AuthService, *stubUserRepo, *stubAuditRepo, *stubRevoker) {
	t.Helper()
	users := newStubUserRepo()
	auditRepo := &stubAuditRepo{}
	audit := NewAuditService(auditRepo, zerolog.Nop())
	revoker := newStubRevoker()
	svc := NewAuthService(users, audit, revoker, "secret", time.Hour, zerolog.Nop())
	return svc, users, auditRepo, revoker
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, users, auditRepo, _ := newAuthFixture(t)
	seedUser(t, users, "carol", "s3cret", domain.RoleAdmin, true)

	token, user, err := svc.Login(context.Background(), "carol", "s3cret", "203.0.113.7")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user.LastLoginIP != "203.0.113.7" {
		t.Fatalf("expected login IP stamped, got %q", user.LastLoginIP)
	}

	stored, _ := users.FindByUsername(context.Background(), "carol")
	if stored.LastLoginIP != "203.0.113.7" {
		t.Fatalf("login IP not persisted: %q", stored.LastLoginIP)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["username"] != "carol" || claims["role"] != "admin" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if jti, _ := claims["jti"].(string); jti == "" {
		t.Fatalf("expected jti claim")
	}

	logins := auditRepo.byAction(domain.ActionLogin)
	if len(logins) != 1 {
		t.Fatalf("expected 1 login audit entry, got %d", len(logins))
	}
	if logins[0].IPAddress != "203.0.113.7" {
		t.Fatalf("audit entry missing client IP: %+v", logins[0])
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, users, auditRepo, _ := newAuthFixture(t)
	seedUser(t, users, "carol", "s3cret", domain.RoleAdmin, true)

	if _, _, err := svc.Login(context.Background(), "carol", "nope", "1.2.3.4"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(auditRepo.entries) != 0 {
		t.Fatalf("failed login must not be audited")
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	if _, _, err := svc.Login(context.Background(), "ghost", "pw", "1.2.3.4"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_Login_DisabledAccount(t *testing.T) {
	svc, users, _, _ := newAuthFixture(t)
	seedUser(t, users, "dora", "s3cret", domain.RoleManager, false)

	if _, _, err := svc.Login(context.Background(), "dora", "s3cret", "1.2.3.4"); !errors.Is(err, domain.ErrAccountDisabled) {
		t.Fatalf("expected ErrAccountDisabled, got %v", err)
	}
}

func TestAuthService_Login_EmptyCredentials(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	if _, _, err := svc.Login(context.Background(), "", "", "1.2.3.4"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Logout_RevokesAndAudits(t *testing.T) {
	svc, _, auditRepo, revoker := newAuthFixture(t)

	actor := ports.Actor{ID: "u1", Username: "carol", Role: domain.RoleAdmin, IP: "9.9.9.9"}
	exp := time.Now().Add(time.Hour)
	if err := svc.Logout(context.Background(), actor, "jti-42", exp); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	if revoked, _ := revoker.IsRevoked(context.Background(), "jti-42"); !revoked {
		t.Fatalf("token not revoked")
	}
	logouts := auditRepo.byAction(domain.ActionLogout)
	if len(logouts) != 1 {
		t.Fatalf("expected 1 logout audit entry, got %d", len(logouts))
	}
	if logouts[0].Actor != "carol" || logouts[0].IPAddress != "9.9.9.9" {
		t.Fatalf("unexpected logout entry: %+v", logouts[0])
	}
}
