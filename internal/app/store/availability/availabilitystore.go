// internal/app/store/availability/availabilitystore.go
package availability

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
	return &Store{c: db.Collection("availability")}
}

// EnsureIndexes creates the unique (proxy_id, event_id) index that enforces
// at most one declaration per proxy per event.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "proxy_id", Value: 1}, {Key: "event_id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("idx_availability_proxy_event"),
	})
	return err
}

// Create inserts a new availability declaration. Duplicates for the same
// (proxy, event) pair surface as a mongo duplicate-key error (check with
// wafflemongo.IsDup).
func (s *Store) Create(ctx context.Context, a models.Availability) (models.Availability, error) {
	now := time.Now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = now
	}

	res, err := s.c.InsertOne(ctx, a)
	if err != nil {
		return a, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		a.ID = oid
	}
	return a, nil
}

// GetByID returns a single declaration by its _id.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Availability, error) {
	var a models.Availability
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	return a, err
}

// Delete removes the declaration with the given _id (withdrawal).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// ListByEvent returns all proxy declarations for an event.
func (s *Store) ListByEvent(ctx context.Context, eventID primitive.ObjectID) ([]models.Availability, error) {
	cur, err := s.c.Find(ctx, bson.M{"event_id": eventID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Availability
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByProxy returns all declarations made by a proxy.
func (s *Store) ListByProxy(ctx context.Context, proxyID primitive.ObjectID) ([]models.Availability, error) {
	cur, err := s.c.Find(ctx, bson.M{"proxy_id": proxyID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Availability
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByProxyAndEvent returns the declaration for a (proxy, event) pair.
// The workflow engine uses this as its existence check.
func (s *Store) GetByProxyAndEvent(ctx context.Context, proxyID, eventID primitive.ObjectID) (models.Availability, error) {
	var a models.Availability
	err := s.c.FindOne(ctx, bson.M{"proxy_id": proxyID, "event_id": eventID}).Decode(&a)
	return a, err
}
