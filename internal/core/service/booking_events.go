package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Jhonatan-05/backen-Maria/internal/core/domain"
	"github.com/Jhonatan-05/backen-Maria/internal/core/ports"
)

// bookingNotifier publishes committed booking changes. Publishing happens
// after commit and its failure never changes the outcome of the operation.
type bookingNotifier struct {
	publisher ports.EventPublisher
	log       zerolog.Logger
}

func (n bookingNotifier) notify(ctx context.Context, agg domain.BookingAggregate, action domain.BookingAction, code, clientID string, total *decimal.Decimal) {
	if n.publisher == nil {
		return
	}
	evt := domain.NewBookingEvent(agg, action, code)
	evt.ClientID = clientID
	if total != nil {
		evt.TotalCost = total.StringFixed(2)
	}
	if id, ok := domain.IdentityFrom(ctx); ok {
		evt.ActorGuard = id.Guard
		evt.ActorID = id.PrincipalID
	}
	if err := n.publisher.Publish(ctx, evt); err != nil {
		n.log.Warn().Err(err).
			Str("codigo", code).
			Str("action", string(action)).
			Msg("booking event publish failed")
	}
}

// bookingErr passes domain errors through and wraps anything else as a
// persistence failure.
func bookingErr(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, known := range []error{
		domain.ErrAppointmentNotFound,
		domain.ErrOrderNotFound,
		domain.ErrUnknownReference,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	return domain.Persistence(op, err)
}
