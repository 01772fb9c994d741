package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// dataResponse is the success envelope. Data is never omitted so that an
// empty list still renders as [].
type dataResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// ValidationError lists the failed rules per request field. It renders as
// 422 {"message": "Error de validación", "errors": {...}}.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msgs := range e.Fields {
		parts = append(parts, field+": "+strings.Join(msgs, ", "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records msg against field.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

func invalidField(field, msg string) *ValidationError {
	ve := &ValidationError{}
	ve.Add(field, msg)
	return ve
}

// OpError replaces the default response message of err with the message
// of the operation that failed. The status still comes from err.
type OpError struct {
	Message string
	Err     error
}

func (e *OpError) Error() string { return fmt.Sprintf("%s: %v", e.Message, e.Err) }

func (e *OpError) Unwrap() error { return e.Err }

func withMessage(msg string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Message: msg, Err: err}
}

// normalizer is implemented by requests that tidy their fields before the
// validation rules run.
type normalizer interface {
	normalize()
}

// bindValid decodes the request into req and runs the registered validator.
func bindValid(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Solicitud inválida")
	}
	if n, ok := req.(normalizer); ok {
		n.normalize()
	}
	if err := c.Validate(req); err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			return ve
		}
		return err
	}
	return nil
}
