package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mugstore/backoffice/internal/core/domain"
)

func runAuthz(t *testing.T, role string, capability domain.Capability) (*httptest.ResponseRecorder, bool, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set("role", role)
	}

	called := false
	mw := RequireCapability(capability)
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	return rec, called, handler(c)
}

func TestRequireCapability_Matrix(t *testing.T) {
	cases := []struct {
		role       string
		capability domain.Capability
		allowed    bool
	}{
		{"super_admin", domain.CapAdmin, true},
		{"super_admin", domain.CapManager, true},
		{"admin", domain.CapAdmin, true},
		{"admin", domain.CapManager, true},
		{"manager", domain.CapManager, true},
		{"manager", domain.CapAdmin, false},
		// staff holds a valid role but no capabilities at all
		{"staff", domain.CapManager, false},
		{"staff", domain.CapAdmin, false},
	}

	for _, tc := range cases {
		rec, called, err := runAuthz(t, tc.role, tc.capability)
		if tc.allowed {
			if err != nil || !called || rec.Code != http.StatusOK {
				t.Errorf("%s/%s: expected pass, got err=%v code=%d", tc.role, tc.capability, err, rec.Code)
			}
			continue
		}
		if called {
			t.Errorf("%s/%s: next handler reached despite missing capability", tc.role, tc.capability)
		}
		if err != nil {
			t.Errorf("%s/%s: denial must render JSON, got error %v", tc.role, tc.capability, err)
		}
		if rec.Code != http.StatusForbidden {
			t.Errorf("%s/%s: expected 403, got %d", tc.role, tc.capability, rec.Code)
		}
	}
}

func TestRequireCapability_MissingRole(t *testing.T) {
	_, called, err := runAuthz(t, "", domain.CapManager)
	if called {
		t.Fatalf("next handler reached without a role")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without role, got %v", err)
	}
}

func TestRequireCapability_UnknownRole(t *testing.T) {
	_, called, err := runAuthz(t, "intern", domain.CapManager)
	if called {
		t.Fatalf("next handler reached with unknown role")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown role, got %v", err)
	}
}
