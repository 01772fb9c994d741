package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Jhonatan-05/backen-Maria/internal/core/domain"
)

// IdentityKey is the echo.Context key the authenticated identity is stored
// under, next to the request context copy.
const IdentityKey = "identity"

// Authenticator checks a bearer token under one guard.
type Authenticator interface {
	Guard() domain.Guard
	Authenticate(ctx context.Context, rawToken string) (*domain.Identity, error)
}

// Auth validates the bearer token against each authenticator in turn and
// injects the first identity that matches. A token issued under a guard not
// listed here is rejected.
func Auth(authenticators ...Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return unauthenticated()
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return unauthenticated()
			}
			raw := strings.TrimSpace(parts[1])

			ctx := c.Request().Context()
			for _, a := range authenticators {
				id, err := a.Authenticate(ctx, raw)
				if errors.Is(err, domain.ErrUnauthenticated) {
					continue
				}
				if err != nil {
					return err
				}

				c.SetRequest(c.Request().WithContext(domain.WithIdentity(ctx, *id)))
				c.Set(IdentityKey, *id)
				return next(c)
			}
			return unauthenticated()
		}
	}
}

func unauthenticated() error {
	return echo.NewHTTPError(http.StatusUnauthorized, "Usuario no autenticado")
}
