package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Jhonatan-05/backen-Maria/internal/core/domain"
)

// StaffAppointmentInput is the staff-side create/update payload. TotalCost
// is stored as supplied.
type StaffAppointmentInput struct {
	ClientID       string
	ReceptionistID *string
	ScheduledAt    time.Time
	Status         string
	TotalCost      decimal.Decimal
	ServiceCodes   []string
}

// SelfAppointmentInput is what a client may send when booking for itself.
// There is no cost or status: both are derived.
type SelfAppointmentInput struct {
	ClientID     string
	ScheduledAt  time.Time
	ServiceCodes []string
}

type AppointmentService interface {
	CreateStaff(ctx context.Context, in StaffAppointmentInput) (*domain.Appointment, error)
	CreateSelf(ctx context.Context, in SelfAppointmentInput) (*domain.Appointment, error)
	Update(ctx context.Context, code string, in StaffAppointmentInput) (*domain.Appointment, error)
	Get(ctx context.Context, code string) (*domain.Appointment, error)
	List(ctx context.Context) ([]*domain.Appointment, error)
	ListByClient(ctx context.Context, clientID string) ([]*domain.Appointment, error)
	Delete(ctx context.Context, code string) error
}

// StaffOrderInput is the staff-side order payload. A zero RegisteredAt means
// now on create and leaves the stored date alone on update.
type StaffOrderInput struct {
	ClientID         string
	SalesAssistantID *string
	Address          string
	RegisteredAt     time.Time
	Status           string
	TotalCost        decimal.Decimal
	Lines            []domain.LineItem
}

// SelfOrderInput is what a client may send when ordering for itself.
// RegisteredAt defaults to the current time when zero.
type SelfOrderInput struct {
	ClientID     string
	Address      string
	RegisteredAt time.Time
	Lines        []domain.LineItem
}

type OrderService interface {
	CreateStaff(ctx context.Context, in StaffOrderInput) (*domain.Order, error)
	CreateSelf(ctx context.Context, in SelfOrderInput) (*domain.Order, error)
	Update(ctx context.Context, code string, in StaffOrderInput) (*domain.Order, error)
	Get(ctx context.Context, code string) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
	ListByClient(ctx context.Context, clientID string) ([]*domain.Order, error)
	Delete(ctx context.Context, code string) error
}
