package ports

import (
	"context"

	"github.com/Jhonatan-05/backen-Maria/internal/core/domain"
)

// AppointmentTx is the unit of work handed to AppointmentRepository.Transact.
// Every call runs inside the same database transaction.
type AppointmentTx interface {
	// LockAppointment reports whether code exists and holds a row lock on it
	// until the transaction ends.
	LockAppointment(ctx context.Context, code string) (bool, error)
	InsertAppointment(ctx context.Context, a *domain.Appointment) error
	UpdateAppointment(ctx context.Context, a *domain.Appointment) error
	// ResolveServices returns the services among codes that exist.
	ResolveServices(ctx context.Context, codes []string) ([]domain.Service, error)
	// ReplaceServices makes the appointment's service set equal to codes.
	ReplaceServices(ctx context.Context, appointmentCode string, codes []string) error
}

// AppointmentRepository persists appointments and their service association.
type AppointmentRepository interface {
	// Transact runs fn in one transaction: commit when fn returns nil,
	// rollback otherwise.
	Transact(ctx context.Context, fn func(ctx context.Context, tx AppointmentTx) error) error
	// FindByCode loads the appointment with client, receptionist and services.
	FindByCode(ctx context.Context, code string) (*domain.Appointment, error)
	List(ctx context.Context) ([]*domain.Appointment, error)
	ListByClient(ctx context.Context, clientID string) ([]*domain.Appointment, error)
	Delete(ctx context.Context, code string) error
}

// OrderTx is the unit of work handed to OrderRepository.Transact.
type OrderTx interface {
	LockOrder(ctx context.Context, code string) (bool, error)
	InsertOrder(ctx context.Context, o *domain.Order) error
	// UpdateOrder overwrites the header. A zero RegisteredAt keeps the
	// stored registration date.
	UpdateOrder(ctx context.Context, o *domain.Order) error
	ResolveProducts(ctx context.Context, codes []string) ([]domain.Product, error)
	// ReplaceProducts makes the order's product lines equal to lines.
	ReplaceProducts(ctx context.Context, orderCode string, lines []domain.LineItem) error
}

// OrderRepository persists orders and their product association.
type OrderRepository interface {
	Transact(ctx context.Context, fn func(ctx context.Context, tx OrderTx) error) error
	FindByCode(ctx context.Context, code string) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
	ListByClient(ctx context.Context, clientID string) ([]*domain.Order, error)
	Delete(ctx context.Context, code string) error
}

// CatalogReader is the read-only view over services and products.
type CatalogReader interface {
	ListServices(ctx context.Context) ([]domain.Service, error)
	FindService(ctx context.Context, code string) (*domain.Service, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	FindProduct(ctx context.Context, code string) (*domain.Product, error)
}
