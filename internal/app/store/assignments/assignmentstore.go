// internal/app/store/assignments/assignmentstore.go
package assignments

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
	return &Store{c: db.Collection("assignments")}
}

// EnsureIndexes creates the lookup indexes used by the volunteer and event
// listings.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "volunteer_id", Value: 1}},
			Options: options.Index().SetName("idx_assignments_volunteer"),
		},
		{
			Keys:    bson.D{{Key: "event_id", Value: 1}},
			Options: options.Index().SetName("idx_assignments_event"),
		},
	})
	return err
}

// Create inserts a new volunteer-event assignment. AssignedAt is stamped
// if zero; Fulfilled always starts false.
func (s *Store) Create(ctx context.Context, a models.Assignment) (models.Assignment, error) {
	if a.AssignedAt.IsZero() {
		a.AssignedAt = time.Now().UTC()
	}
	a.Fulfilled = false
	a.FulfilledAt = nil

	res, err := s.c.InsertOne(ctx, a)
	if err != nil {
		return a, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		a.ID = oid
	}
	return a, nil
}

// GetByID returns a single assignment by its _id.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Assignment, error) {
	var a models.Assignment
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	return a, err
}

// ListByVolunteer returns all assignments held by a volunteer.
func (s *Store) ListByVolunteer(ctx context.Context, volunteerID primitive.ObjectID) ([]models.Assignment, error) {
	cur, err := s.c.Find(ctx, bson.M{"volunteer_id": volunteerID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Assignment
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByEvent returns all assignments for an event.
func (s *Store) ListByEvent(ctx context.Context, eventID primitive.ObjectID) ([]models.Assignment, error) {
	cur, err := s.c.Find(ctx, bson.M{"event_id": eventID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Assignment
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkFulfilled atomically flips the fulfilled flag, conditional on it still
// being false. This conditional update is the unique-winner arbiter for
// concurrent accepts: exactly one caller can ever win it for a given
// assignment. Returns (updated, true, nil) on the winning flip and
// (zero, false, nil) when the document was missing or already fulfilled.
func (s *Store) MarkFulfilled(ctx context.Context, id primitive.ObjectID, fulfilledAt time.Time) (models.Assignment, bool, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var a models.Assignment
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "fulfilled": false},
		bson.M{"$set": bson.M{
			"fulfilled":    true,
			"fulfilled_at": fulfilledAt.UTC(),
		}},
		opts,
	).Decode(&a)

	if err == mongo.ErrNoDocuments {
		return models.Assignment{}, false, nil
	}
	if err != nil {
		return models.Assignment{}, false, err
	}
	return a, true, nil
}
