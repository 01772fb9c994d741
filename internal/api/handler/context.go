package handler

import (
	"fmt"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Jhonatan-05/backen-Maria/internal/core/domain"
)

// callerIdentity returns the identity injected by the Auth middleware. A
// request that reached the handler without one is unauthenticated.
func callerIdentity(c echo.Context) (domain.Identity, error) {
	id, ok := domain.IdentityFrom(c.Request().Context())
	if !ok || id.PrincipalID == "" {
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	return id, nil
}

var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	time.DateOnly,
}

// parseDateTime accepts the date formats clients send for fechaCita and
// fechaRegistro. Values without a zone are read as UTC.
func parseDateTime(field, value string) (time.Time, error) {
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, invalidField(field, fmt.Sprintf("El campo %s no es una fecha válida.", field))
}

// startOfDay truncates t to midnight UTC.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
