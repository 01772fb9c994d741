package ports

import (
	"context"

	"github.com/Jhonatan-05/backen-Maria/internal/core/domain"
)

// AuditRepository stores booking events in the audit trail.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event domain.BookingEvent) error
}

// EventPublisher hands committed booking events to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.BookingEvent) error
}
