// internal/app/store/requests/requeststore.go
package requests

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
	return &Store{c: db.Collection("requests")}
}

// EnsureIndexes creates the (assignment_id, status) index backing the
// pending-by-assignment queries in the workflow engine.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "assignment_id", Value: 1}, {Key: "status", Value: 1}},
		Options: options.Index().SetName("idx_requests_assignment_status"),
	})
	return err
}

// Create inserts a new request. Status always starts pending.
func (s *Store) Create(ctx context.Context, r models.Request) (models.Request, error) {
	now := time.Now().UTC()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	if r.UpdatedAt.IsZero() {
		r.UpdatedAt = now
	}
	r.Status = models.RequestPending
	r.RespondedAt = nil

	res, err := s.c.InsertOne(ctx, r)
	if err != nil {
		return r, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		r.ID = oid
	}
	return r, nil
}

// GetByID returns a single request by its _id.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Request, error) {
	var r models.Request
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&r)
	return r, err
}

// UpdateStatus transitions a request out of pending, conditional on it
// still being pending. Returns (updated, true, nil) when the transition
// won, and (zero, false, nil) when the request was missing or already
// responded to — the caller translates that into a Conflict. The condition
// makes a double transition impossible regardless of interleaving.
func (s *Store) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string, respondedAt time.Time) (models.Request, bool, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var r models.Request
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": models.RequestPending},
		bson.M{"$set": bson.M{
			"status":       status,
			"responded_at": respondedAt.UTC(),
			"updated_at":   respondedAt.UTC(),
		}},
		opts,
	).Decode(&r)

	if err == mongo.ErrNoDocuments {
		return models.Request{}, false, nil
	}
	if err != nil {
		return models.Request{}, false, err
	}
	return r, true, nil
}

// ListByVolunteer returns all requests created by a volunteer.
func (s *Store) ListByVolunteer(ctx context.Context, volunteerID primitive.ObjectID) ([]models.Request, error) {
	return s.list(ctx, bson.M{"volunteer_id": volunteerID})
}

// ListByProxy returns all requests targeting a proxy.
func (s *Store) ListByProxy(ctx context.Context, proxyID primitive.ObjectID) ([]models.Request, error) {
	return s.list(ctx, bson.M{"proxy_id": proxyID})
}

// ListPendingByAssignment returns the requests still pending for an
// assignment. The workflow engine uses this both as the duplicate-pending
// guard on create and to drive the decline cascade on accept.
func (s *Store) ListPendingByAssignment(ctx context.Context, assignmentID primitive.ObjectID) ([]models.Request, error) {
	return s.list(ctx, bson.M{
		"assignment_id": assignmentID,
		"status":        models.RequestPending,
	})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.Request, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Request
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
