package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mugstore/backoffice/internal/core/domain"
)

func TestClientIP(t *testing.T) {
	cases := []struct {
		name       string
		forwarded  string
		remoteAddr string
		want       string
	}{
		{"single forwarded entry", "198.51.100.9", "10.0.0.1:4312", "198.51.100.9"},
		{"first of chain wins", "198.51.100.9, 10.0.0.2, 10.0.0.3", "10.0.0.1:4312", "198.51.100.9"},
		{"chain with extra spaces", "  198.51.100.9 ,10.0.0.2", "10.0.0.1:4312", "198.51.100.9"},
		{"no header falls back to peer", "", "192.0.2.4:55221", "192.0.2.4"},
		{"peer without port", "", "192.0.2.4", "192.0.2.4"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tc.remoteAddr
			if tc.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tc.forwarded)
			}
			if got := clientIP(req); got != tc.want {
				t.Fatalf("clientIP() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestCtxActor(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.11")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("actor_id", "u9")
	c.Set("username", "dave")
	c.Set("role", string(domain.RoleAdmin))

	actor, err := ctxActor(c)
	if err != nil {
		t.Fatalf("ctxActor: %v", err)
	}
	if actor.ID != "u9" || actor.Username != "dave" || actor.Role != domain.RoleAdmin {
		t.Fatalf("unexpected actor: %+v", actor)
	}
	if actor.IP != "203.0.113.11" {
		t.Fatalf("expected forwarded IP, got %q", actor.IP)
	}
}

func TestFormUpload(t *testing.T) {
	e := echo.New()

	t.Run("multipart file present", func(t *testing.T) {
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		fw, err := mw.CreateFormFile("avatar", "me.png")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		fw.Write([]byte("png-bytes"))
		mw.Close()

		req := httptest.NewRequest(http.MethodPost, "/", &body)
		req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
		c := e.NewContext(req, httptest.NewRecorder())

		up, err := formUpload(c, "avatar")
		if err != nil {
			t.Fatalf("formUpload: %v", err)
		}
		if up == nil || up.Filename != "me.png" || string(up.Data) != "png-bytes" {
			t.Fatalf("unexpected upload: %+v", up)
		}
	})

	t.Run("json request has no upload", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		c := e.NewContext(req, httptest.NewRecorder())

		up, err := formUpload(c, "avatar")
		if err != nil || up != nil {
			t.Fatalf("expected nil upload without error, got %+v, %v", up, err)
		}
	})

	t.Run("multipart field absent", func(t *testing.T) {
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		mw.WriteField("name", "x")
		mw.Close()

		req := httptest.NewRequest(http.MethodPost, "/", &body)
		req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
		c := e.NewContext(req, httptest.NewRecorder())

		up, err := formUpload(c, "avatar")
		if err != nil || up != nil {
			t.Fatalf("expected nil upload without error, got %+v, %v", up, err)
		}
	})

	t.Run("malformed multipart is a client error", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("garbage"))
		req.Header.Set(echo.HeaderContentType, "multipart/form-data") // no boundary
		c := e.NewContext(req, httptest.NewRecorder())

		_, err := formUpload(c, "avatar")
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 HTTPError, got %v", err)
		}
	})
}

func TestCtxActor_MissingClaims(t *testing.T) {
	e := echo.New()

	for _, tc := range []struct {
		name string
		id   string
		role string
	}{
		{"no claims at all", "", ""},
		{"missing id", "", "admin"},
		{"invalid role", "u9", "superuser"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tc.id != "" {
				c.Set("actor_id", tc.id)
			}
			if tc.role != "" {
				c.Set("role", tc.role)
			}

			_, err := ctxActor(c)
			he, ok := err.(*echo.HTTPError)
			if !ok || he.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401 HTTPError, got %v", err)
			}
		})
	}
}
