package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mugstore/backoffice/internal/core/domain"
)

// RequireCapability rejects requests whose actor role does not carry the
// given capability. The check always goes through the role's capability set,
// never through any ordering of roles, so a role can sit "above" another in
// naming without inheriting its grants.
func RequireCapability(capability domain.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, _ := c.Get("role").(string)
			role := domain.Role(raw)
			if !role.Valid() {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing role")
			}
			if !role.Has(capability) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
