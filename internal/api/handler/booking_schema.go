package handler

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Jhonatan-05/backen-Maria/internal/core/domain"
	"github.com/Jhonatan-05/backen-Maria/internal/core/ports"
)

// staffAppointmentRequest is the body of /cita/create and /cita/update.
// Codigo is only read on update.
type staffAppointmentRequest struct {
	Codigo          string           `json:"codigo" validate:"omitempty,max=64"`
	IDCliente       string           `json:"idCliente" validate:"required,max=20"`
	IDRecepcionista *string          `json:"idRecepcionista" validate:"omitempty,max=20"`
	FechaCita       string           `json:"fechaCita" validate:"required"`
	Estado          string           `json:"estado" validate:"required,max=50"`
	CostoTotal      *decimal.Decimal `json:"costoTotal" validate:"required,min=0"`
	ServicioCodigos []string         `json:"servicio_codigos" validate:"omitempty,dive,required,max=50"`
}

func (r staffAppointmentRequest) toInput() (ports.StaffAppointmentInput, error) {
	at, err := parseDateTime("fechaCita", r.FechaCita)
	if err != nil {
		return ports.StaffAppointmentInput{}, err
	}
	return ports.StaffAppointmentInput{
		ClientID:       r.IDCliente,
		ReceptionistID: emptyToNil(r.IDRecepcionista),
		ScheduledAt:    at,
		Status:         r.Estado,
		TotalCost:      *r.CostoTotal,
		ServiceCodes:   r.ServicioCodigos,
	}, nil
}

type selfAppointmentRequest struct {
	FechaCita       string   `json:"fechaCita" validate:"required"`
	ServicioCodigos []string `json:"servicio_codigos" validate:"required,min=1,dive,required,max=50"`
}

// toInput rejects dates before today (UTC).
func (r selfAppointmentRequest) toInput(clientID string, now time.Time) (ports.SelfAppointmentInput, error) {
	at, err := parseDateTime("fechaCita", r.FechaCita)
	if err != nil {
		return ports.SelfAppointmentInput{}, err
	}
	if at.Before(startOfDay(now)) {
		return ports.SelfAppointmentInput{}, invalidField("fechaCita",
			"El campo fechaCita debe ser una fecha posterior o igual a hoy.")
	}
	return ports.SelfAppointmentInput{
		ClientID:     clientID,
		ScheduledAt:  at,
		ServiceCodes: r.ServicioCodigos,
	}, nil
}

type productLineRequest struct {
	Codigo   string `json:"codigo" validate:"required,max=50"`
	Cantidad int    `json:"cantidad" validate:"required,min=1"`
}

func toLines(in []productLineRequest) []domain.LineItem {
	out := make([]domain.LineItem, len(in))
	for i, l := range in {
		out[i] = domain.LineItem{Code: l.Codigo, Quantity: l.Cantidad}
	}
	return out
}

// staffOrderRequest is the body of /pedido/create and /pedido/update.
type staffOrderRequest struct {
	Codigo            string               `json:"codigo" validate:"omitempty,max=64"`
	IDCliente         string               `json:"idCliente" validate:"required,max=20"`
	IDAsistenteVentas *string              `json:"idAsistenteVentas" validate:"omitempty,max=20"`
	Direccion         string               `json:"direccion" validate:"required,max=255"`
	FechaRegistro     string               `json:"fechaRegistro" validate:"required"`
	Estado            string               `json:"estado" validate:"required,max=50"`
	CostoTotal        *decimal.Decimal     `json:"costoTotal" validate:"required,min=0"`
	Productos         []productLineRequest `json:"productos_con_cantidades" validate:"omitempty,dive"`
}

func (r staffOrderRequest) toInput() (ports.StaffOrderInput, error) {
	at, err := parseDateTime("fechaRegistro", r.FechaRegistro)
	if err != nil {
		return ports.StaffOrderInput{}, err
	}
	return ports.StaffOrderInput{
		ClientID:         r.IDCliente,
		SalesAssistantID: emptyToNil(r.IDAsistenteVentas),
		Address:          r.Direccion,
		RegisteredAt:     at,
		Status:           r.Estado,
		TotalCost:        *r.CostoTotal,
		Lines:            toLines(r.Productos),
	}, nil
}

// selfOrderRequest is the body of /pedido/registrar-propio. fechaRegistro is
// optional and may not lie before today (UTC).
type selfOrderRequest struct {
	Direccion     string               `json:"direccion" validate:"required,max=255"`
	FechaRegistro string               `json:"fechaRegistro" validate:"omitempty"`
	Productos     []productLineRequest `json:"productos_con_cantidades" validate:"required,min=1,dive"`
}

func (r selfOrderRequest) toInput(clientID string, now time.Time) (ports.SelfOrderInput, error) {
	in := ports.SelfOrderInput{
		ClientID: clientID,
		Address:  r.Direccion,
		Lines:    toLines(r.Productos),
	}
	if r.FechaRegistro == "" {
		return in, nil
	}
	at, err := parseDateTime("fechaRegistro", r.FechaRegistro)
	if err != nil {
		return ports.SelfOrderInput{}, err
	}
	if at.Before(startOfDay(now)) {
		return ports.SelfOrderInput{}, invalidField("fechaRegistro",
			"El campo fechaRegistro debe ser una fecha posterior o igual a hoy.")
	}
	in.RegisteredAt = at
	return in, nil
}

type codeRequest struct {
	Codigo string `json:"codigo" query:"codigo" validate:"required,max=64"`
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
