package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const testSecret = "secret"

type fakeRevoker struct {
	revoked map[string]bool
}

func (r *fakeRevoker) Revoke(_ context.Context, tokenID string, _ time.Time) error {
	r.revoked[tokenID] = true
	return nil
}

func (r *fakeRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	return r.revoked[tokenID], nil
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func runAuth(t *testing.T, authHeader string, revoker *fakeRevoker) (*httptest.ResponseRecorder, echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(testSecret, revoker)
	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return rec, c, handler(c)
}

func TestAuth_ValidToken(t *testing.T) {
	revoker := &fakeRevoker{revoked: map[string]bool{}}
	token := signToken(t, jwt.MapClaims{
		"sub":      "u1",
		"username": "ana",
		"role":     "admin",
		"jti":      "jti-1",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})

	rec, c, err := runAuth(t, "Bearer "+token, revoker)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	if c.Get("actor_id") != "u1" || c.Get("username") != "ana" || c.Get("role") != "admin" {
		t.Fatalf("claims not injected: id=%v user=%v role=%v", c.Get("actor_id"), c.Get("username"), c.Get("role"))
	}
	if c.Get("token_id") != "jti-1" {
		t.Fatalf("token id not injected: %v", c.Get("token_id"))
	}
	if _, ok := c.Get("token_expires_at").(time.Time); !ok {
		t.Fatalf("expiry not injected")
	}
}

func TestAuth_RevokedToken(t *testing.T) {
	revoker := &fakeRevoker{revoked: map[string]bool{"jti-dead": true}}
	token := signToken(t, jwt.MapClaims{
		"sub": "u1", "jti": "jti-dead",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, _, err := runAuth(t, "Bearer "+token, revoker)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for revoked token, got %v", err)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	_, _, err := runAuth(t, "", &fakeRevoker{revoked: map[string]bool{}})
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuth_MalformedHeader(t *testing.T) {
	_, _, err := runAuth(t, "Token abc", &fakeRevoker{revoked: map[string]bool{}})
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"sub": "u1", "jti": "jti-1",
		"exp": time.Now().Add(-time.Minute).Unix(),
	})

	_, _, err := runAuth(t, "Bearer "+token, &fakeRevoker{revoked: map[string]bool{}})
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %v", err)
	}
}

func TestAuth_WrongSigningKey(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, _, authErr := runAuth(t, "Bearer "+signed, &fakeRevoker{revoked: map[string]bool{}})
	he, ok := authErr.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", authErr)
	}
}
