// internal/app/store/events/eventstore.go
package events

import (
	"context"
	"time"

	"github.com/dalemusser/standin/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("events")}
}

// EnsureIndexes creates the date index backing the calendar listing.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "date", Value: 1}},
		Options: options.Index().SetName("idx_events_date"),
	})
	return err
}

// Create inserts a new event. CreatedAt/UpdatedAt are stamped if zero.
func (s *Store) Create(ctx context.Context, e models.Event) (models.Event, error) {
	now := time.Now().UTC()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = now
	}

	res, err := s.c.InsertOne(ctx, e)
	if err != nil {
		return e, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		e.ID = oid
	}
	return e, nil
}

// GetByID returns a single event by its _id.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Event, error) {
	var e models.Event
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&e)
	return e, err
}

// List returns events sorted by date. When date is non-nil, only events on
// that calendar day (UTC) are returned.
func (s *Store) List(ctx context.Context, date *time.Time) ([]models.Event, error) {
	filter := bson.M{}
	if date != nil {
		day := date.UTC().Truncate(24 * time.Hour)
		filter["date"] = bson.M{"$gte": day, "$lt": day.Add(24 * time.Hour)}
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start_time", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Event
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
