package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Jhonatan-05/backen-Maria/internal/core/domain"
	"github.com/Jhonatan-05/backen-Maria/internal/core/ports"
)

const bookingEventsCollection = "booking_events"

// AuditRepository implements ports.AuditRepository using MongoDB.
type AuditRepository struct {
	coll *mongo.Collection
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(db *mongo.Database) ports.AuditRepository {
	return &AuditRepository{coll: db.Collection(bookingEventsCollection)}
}

// EnsureIndexes creates the unique event_id index and the lookup index on
// (aggregate, codigo). Safe to call on every start.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(bookingEventsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "event_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "aggregate", Value: 1}, {Key: "codigo", Value: 1}, {Key: "occurred_at", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("create booking_events indexes: %w", err)
	}
	return nil
}

// InsertEvent persists a booking event to the audit collection. A second
// insert of the same event id is treated as already recorded.
func (r *AuditRepository) InsertEvent(ctx context.Context, event domain.BookingEvent) error {
	doc := bson.M{
		"event_id":     event.ID,
		"aggregate":    string(event.Aggregate),
		"action":       string(event.Action),
		"codigo":       event.Code,
		"occurred_at":  event.OccurredAt.UTC(),
		"processed_at": time.Now().UTC(),
	}
	if event.ClientID != "" {
		doc["id_cliente"] = event.ClientID
	}
	if event.TotalCost != "" {
		doc["costo_total"] = event.TotalCost
	}
	if event.ActorGuard != "" {
		doc["actor_guard"] = string(event.ActorGuard)
		doc["actor_id"] = event.ActorID
	}

	_, err := r.coll.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return nil
	}
	return err
}
