package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	AppointmentCodePrefix = "CITA-"
	StatusPending         = "Pendiente"
)

// Appointment (cita) books one or more services for a client.
type Appointment struct {
	Code           string          `json:"codigo"`
	ClientID       string          `json:"idCliente"`
	ReceptionistID *string         `json:"idRecepcionista"`
	ScheduledAt    time.Time       `json:"fechaCita"`
	Status         string          `json:"estado"`
	TotalCost      decimal.Decimal `json:"costoTotal"`

	Client       *Principal `json:"cliente,omitempty"`
	Receptionist *Principal `json:"recepcionista,omitempty"`
	Services     []Service  `json:"servicios"`
}

// NewAppointmentCode returns a fresh appointment identifier.
func NewAppointmentCode() string {
	return AppointmentCodePrefix + uuid.NewString()
}

// ServicesTotal sums the price of each service once.
func ServicesTotal(services []Service) decimal.Decimal {
	total := decimal.Zero
	for _, s := range services {
		total = total.Add(s.Price)
	}
	return total
}

// ServiceCodes returns the codes of services in order.
func ServiceCodes(services []Service) []string {
	out := make([]string, len(services))
	for i, s := range services {
		out[i] = s.Code
	}
	return out
}
