package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Jhonatan-05/backen-Maria/internal/core/domain"
)

type forbiddenResponse struct {
	Message string `json:"message"`
}

// RequirePermission lets the request through when the caller holds at least
// one of perms. Must run after Auth.
func RequirePermission(perms ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := domain.IdentityFrom(c.Request().Context())
			if !ok {
				return unauthenticated()
			}
			if !id.Grant.HasAny(perms...) {
				return c.JSON(http.StatusForbidden, forbiddenResponse{
					Message: "No tiene permiso para realizar esta acción",
				})
			}
			return next(c)
		}
	}
}

// RequireGuard restricts a route to callers authenticated under one of guards.
func RequireGuard(guards ...domain.Guard) echo.MiddlewareFunc {
	allowed := make(map[domain.Guard]struct{}, len(guards))
	for _, g := range guards {
		allowed[g] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := domain.IdentityFrom(c.Request().Context())
			if !ok {
				return unauthenticated()
			}
			if _, ok := allowed[id.Guard]; !ok {
				return c.JSON(http.StatusForbidden, forbiddenResponse{
					Message: "Acceso no permitido para este tipo de usuario",
				})
			}
			return next(c)
		}
	}
}
