package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Jhonatan-05/backen-Maria/internal/api/metrics"
	"github.com/Jhonatan-05/backen-Maria/internal/core/domain"
	"github.com/Jhonatan-05/backen-Maria/internal/core/ports"
)

const (
	msgAppointmentCreateFailed = "Error al crear la cita y/o asociar servicios."
	msgAppointmentUpdateFailed = "Error al actualizar la cita y/o asociar servicios."
	msgAppointmentDeleteFailed = "Error al eliminar la cita."
	msgAppointmentNotFound     = "Cita no encontrada"
)

type AppointmentHandler struct {
	svc ports.AppointmentService
	now func() time.Time
}

func NewAppointmentHandler(svc ports.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{svc: svc, now: time.Now}
}

// Create books an appointment on behalf of a client. When the caller is a
// receptionist, the appointment is attributed to them.
//
// @Summary      Create appointment (staff)
// @Tags         citas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      staffAppointmentRequest  true  "Appointment"
// @Success      201   {object}  dataResponse
// @Failure      403   {object}  map[string]string
// @Failure      422   {object}  map[string]any
// @Failure      500   {object}  map[string]string
// @Router       /cita/create [post]
func (h *AppointmentHandler) Create(c echo.Context) error {
	id, err := callerIdentity(c)
	if err != nil {
		return err
	}
	var req staffAppointmentRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	in, err := req.toInput()
	if err != nil {
		return err
	}
	if id.Guard == domain.GuardReceptionist {
		receptionist := id.PrincipalID
		in.ReceptionistID = &receptionist
	}

	start := time.Now()
	a, err := h.svc.CreateStaff(c.Request().Context(), in)
	observeBooking(domain.AggregateAppointment, domain.ActionCreated, start, err)
	if err != nil {
		return withMessage(msgAppointmentCreateFailed, err)
	}
	return c.JSON(http.StatusCreated, dataResponse{Message: "Cita creada exitosamente", Data: a})
}

// CreateOwn books an appointment for the calling client. Cost and status
// are derived server-side.
//
// @Summary      Create own appointment (client)
// @Tags         citas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      selfAppointmentRequest  true  "Date and services"
// @Success      201   {object}  dataResponse
// @Failure      422   {object}  map[string]any
// @Failure      500   {object}  map[string]string
// @Router       /cita/registrar-propia [post]
func (h *AppointmentHandler) CreateOwn(c echo.Context) error {
	id, err := callerIdentity(c)
	if err != nil {
		return err
	}
	var req selfAppointmentRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	in, err := req.toInput(id.PrincipalID, h.now())
	if err != nil {
		return err
	}

	start := time.Now()
	a, err := h.svc.CreateSelf(c.Request().Context(), in)
	observeBooking(domain.AggregateAppointment, domain.ActionCreated, start, err)
	if err != nil {
		return withMessage(msgAppointmentCreateFailed, err)
	}
	return c.JSON(http.StatusCreated, dataResponse{Message: "Cita creada exitosamente", Data: a})
}

// Update overwrites the appointment named by codigo.
//
// @Summary      Update appointment
// @Tags         citas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      staffAppointmentRequest  true  "Appointment with codigo"
// @Success      200   {object}  dataResponse
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]any
// @Failure      500   {object}  map[string]string
// @Router       /cita/update [put]
func (h *AppointmentHandler) Update(c echo.Context) error {
	var req staffAppointmentRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	if req.Codigo == "" {
		return invalidField("codigo", "El campo codigo es obligatorio.")
	}
	in, err := req.toInput()
	if err != nil {
		return err
	}

	start := time.Now()
	a, err := h.svc.Update(c.Request().Context(), req.Codigo, in)
	observeBooking(domain.AggregateAppointment, domain.ActionUpdated, start, err)
	if err != nil {
		return appointmentErr(msgAppointmentUpdateFailed, err)
	}
	return c.JSON(http.StatusOK, dataResponse{Message: "Cita actualizada correctamente", Data: a})
}

func (h *AppointmentHandler) Delete(c echo.Context) error {
	var req codeRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	start := time.Now()
	err := h.svc.Delete(c.Request().Context(), req.Codigo)
	observeBooking(domain.AggregateAppointment, domain.ActionDeleted, start, err)
	if err != nil {
		return appointmentErr(msgAppointmentDeleteFailed, err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Cita eliminada correctamente"})
}

// List returns every appointment.
//
// @Summary      List appointments
// @Tags         citas
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dataResponse
// @Router       /cita/all [get]
func (h *AppointmentHandler) List(c echo.Context) error {
	list, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Message: "Lista de citas", Data: list})
}

// Mine returns the calling client's appointments. No appointments is a 200
// with an empty list.
//
// @Summary      Own appointments (client)
// @Tags         citas
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dataResponse
// @Router       /cita/mis-citas [get]
func (h *AppointmentHandler) Mine(c echo.Context) error {
	id, err := callerIdentity(c)
	if err != nil {
		return err
	}
	list, err := h.svc.ListByClient(c.Request().Context(), id.PrincipalID)
	if err != nil {
		return err
	}
	msg := "Lista de citas del cliente"
	if len(list) == 0 {
		msg = "No se encontraron citas para este cliente"
	}
	return c.JSON(http.StatusOK, dataResponse{Message: msg, Data: list})
}

// Get looks an appointment up by codigo. Clients only see their own; any
// other appointment is reported as not found.
//
// @Summary      Get appointment
// @Tags         citas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      codeRequest  true  "codigo"
// @Success      200   {object}  dataResponse
// @Failure      404   {object}  map[string]string
// @Router       /cita/get [post]
func (h *AppointmentHandler) Get(c echo.Context) error {
	id, err := callerIdentity(c)
	if err != nil {
		return err
	}
	var req codeRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	a, err := h.svc.Get(c.Request().Context(), req.Codigo)
	if err != nil {
		return appointmentErr(msgAppointmentNotFound, err)
	}
	if !id.Can(domain.PermFindAppointment) && a.ClientID != id.PrincipalID {
		return withMessage(msgAppointmentNotFound, domain.ErrAppointmentNotFound)
	}
	return c.JSON(http.StatusOK, dataResponse{Message: "Cita encontrada", Data: a})
}

// appointmentErr keeps the not-found message for missing appointments and
// the operation message for everything else.
func appointmentErr(opMsg string, err error) error {
	if errors.Is(err, domain.ErrAppointmentNotFound) {
		return withMessage(msgAppointmentNotFound, err)
	}
	return withMessage(opMsg, err)
}

func observeBooking(agg domain.BookingAggregate, action domain.BookingAction, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.BookingsTotal.WithLabelValues(string(agg), string(action), result).Inc()
	metrics.BookingDuration.WithLabelValues(string(agg), string(action)).Observe(time.Since(start).Seconds())
}
