package handler

import (
	"errors"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mugstore/backoffice/internal/core/domain"
	"github.com/mugstore/backoffice/internal/core/ports"
)

// ctxActor extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: a non-empty id and a
// valid role prove the middleware ran and the token carried a usable
// identity.
func ctxActor(c echo.Context) (ports.Actor, error) {
	id, _ := c.Get("actor_id").(string)
	username, _ := c.Get("username").(string)
	rawRole, _ := c.Get("role").(string)

	role := domain.Role(rawRole)
	if id == "" || !role.Valid() {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	return ports.Actor{
		ID:       id,
		Username: username,
		Role:     role,
		IP:       clientIP(c.Request()),
	}, nil
}

// clientIP resolves the originating client address. Behind the reverse proxy
// the first X-Forwarded-For entry is the client; without the header the
// socket peer address is used.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// formUpload reads an optional multipart file field. A missing field, or a
// request that is not multipart at all, yields nil; a multipart body that
// fails to parse is a client error.
func formUpload(c echo.Context, field string) (*ports.Upload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, echo.NewHTTPError(http.StatusBadRequest, "malformed upload")
	}

	f, err := fh.Open()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable upload")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable upload")
	}
	return &ports.Upload{Filename: fh.Filename, Data: data}, nil
}
