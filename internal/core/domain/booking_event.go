package domain

import (
	"time"

	"github.com/google/uuid"
)

type BookingAggregate string

const (
	AggregateAppointment BookingAggregate = "cita"
	AggregateOrder       BookingAggregate = "pedido"
)

type BookingAction string

const (
	ActionCreated BookingAction = "created"
	ActionUpdated BookingAction = "updated"
	ActionDeleted BookingAction = "deleted"
)

// BookingEvent records a committed change to an appointment or order. It is
// published after commit and stored in the audit trail.
type BookingEvent struct {
	ID         string           `json:"event_id" bson:"event_id"`
	Aggregate  BookingAggregate `json:"aggregate" bson:"aggregate"`
	Action     BookingAction    `json:"action" bson:"action"`
	Code       string           `json:"codigo" bson:"codigo"`
	ClientID   string           `json:"idCliente,omitempty" bson:"id_cliente,omitempty"`
	TotalCost  string           `json:"costoTotal,omitempty" bson:"costo_total,omitempty"`
	ActorGuard Guard            `json:"actor_guard,omitempty" bson:"actor_guard,omitempty"`
	ActorID    string           `json:"actor_id,omitempty" bson:"actor_id,omitempty"`
	OccurredAt time.Time        `json:"occurred_at" bson:"occurred_at"`
}

// NewBookingEvent stamps an event with a fresh id and the current time.
func NewBookingEvent(agg BookingAggregate, action BookingAction, code string) BookingEvent {
	return BookingEvent{
		ID:         uuid.NewString(),
		Aggregate:  agg,
		Action:     action,
		Code:       code,
		OccurredAt: time.Now().UTC(),
	}
}
