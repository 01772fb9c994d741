package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Jhonatan-05/backen-Maria/internal/api/handler"
	"github.com/Jhonatan-05/backen-Maria/internal/core/domain"
)

// errorResponse is the envelope for every non-2xx response. Errors carries
// per-field messages on validation failures; Error carries the storage
// cause of a failed write.
type errorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
	Error   string              `json:"error,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Lets a handler.OpError override the default message for its status.
//   - Logs unexpected errors with the request method and path.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		var op *handler.OpError
		if errors.As(err, &op) && op.Message != "" {
			body.Message = op.Message
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, auth middleware).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Message: fmt.Sprintf("%v", he.Message)}
	}

	var ve *handler.ValidationError
	if errors.As(err, &ve) {
		return http.StatusUnprocessableEntity, errorResponse{Message: "Error de validación", Errors: ve.Fields}
	}

	switch {
	case errors.Is(err, domain.ErrDuplicateIdentity):
		return http.StatusUnprocessableEntity, errorResponse{
			Message: "Error de validación",
			Errors:  map[string][]string{"cedula": {"La cédula ya ha sido registrada."}},
		}
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusUnprocessableEntity, errorResponse{
			Message: "Error de validación",
			Errors:  map[string][]string{"email": {"El correo electrónico ya ha sido registrado."}},
		}
	case errors.Is(err, domain.ErrUnknownReference):
		field, msg := referenceField(err)
		return http.StatusUnprocessableEntity, errorResponse{
			Message: "Error de validación",
			Errors:  map[string][]string{field: {msg}},
		}
	case errors.Is(err, domain.ErrAppointmentNotFound):
		return http.StatusNotFound, errorResponse{Message: "Cita no encontrada"}
	case errors.Is(err, domain.ErrOrderNotFound):
		return http.StatusNotFound, errorResponse{Message: "Pedido no encontrado"}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, errorResponse{Message: "Recurso no encontrado"}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Message: "Credenciales inválidas."}
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, errorResponse{Message: "Usuario no autenticado"}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorResponse{Message: "No tiene permiso para realizar esta acción"}
	case errors.Is(err, domain.ErrPersistence):
		logUnexpected(log, c, err)
		return http.StatusInternalServerError, errorResponse{
			Message: "Error interno del servidor",
			Error:   persistenceCause(err),
		}
	}

	logUnexpected(log, c, err)
	return http.StatusInternalServerError, errorResponse{Message: "Error interno del servidor"}
}

func persistenceCause(err error) string {
	var pe *domain.PersistenceError
	if errors.As(err, &pe) && pe.Err != nil {
		return pe.Err.Error()
	}
	return err.Error()
}

func logUnexpected(log zerolog.Logger, c echo.Context, err error) {
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")
}

// referenceColumns maps foreign key columns to the request field that
// supplied them.
var referenceColumns = map[string]struct{ field, msg string }{
	"id_cliente":          {"idCliente", "El cliente referenciado no existe."},
	"id_recepcionista":    {"idRecepcionista", "El recepcionista referenciado no existe."},
	"id_asistente_ventas": {"idAsistenteVentas", "El asistente de ventas referenciado no existe."},
	"codigo_servicio":     {"servicio_codigos", "El servicio referenciado no existe."},
	"codigo_producto":     {"productos_con_cantidades", "El producto referenciado no existe."},
}

func referenceField(err error) (string, string) {
	var re *domain.ReferenceError
	if errors.As(err, &re) {
		if ref, ok := referenceColumns[re.Column]; ok {
			return ref.field, ref.msg
		}
	}
	return "referencia", "El registro referenciado no existe."
}
