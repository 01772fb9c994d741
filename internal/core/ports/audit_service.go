package ports

import (
	"context"

	"github.com/Jhonatan-05/backen-Maria/internal/core/domain"
)

// AuditService records booking events coming off the queue.
type AuditService interface {
	Record(ctx context.Context, event domain.BookingEvent) error
}
