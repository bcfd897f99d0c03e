// internal/app/store/notifications/notificationstore.go
package notifications

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
	return &Store{c: db.Collection("notifications")}
}

// EnsureIndexes creates the (user_id, read, created_at) index backing the
// unread-notification polling queries.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "read", Value: 1}, {Key: "created_at", Value: -1}},
		Options: options.Index().SetName("idx_notifications_user_read"),
	})
	return err
}

// Create inserts a notification. Read always starts false.
func (s *Store) Create(ctx context.Context, n models.Notification) (models.Notification, error) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	n.Read = false

	res, err := s.c.InsertOne(ctx, n)
	if err != nil {
		return n, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		n.ID = oid
	}
	return n, nil
}

// ListByUser returns a user's notifications, newest first. With unreadOnly
// set, read notifications are filtered out.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID, unreadOnly bool) ([]models.Notification, error) {
	filter := bson.M{"user_id": userID}
	if unreadOnly {
		filter["read"] = false
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Notification
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkAsRead flips the read flag and returns the updated notification. The
// filter includes the owner, so a foreign caller's id reads as
// mongo.ErrNoDocuments and never mutates another user's notification.
func (s *Store) MarkAsRead(ctx context.Context, id, userID primitive.ObjectID) (models.Notification, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var n models.Notification
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "user_id": userID},
		bson.M{"$set": bson.M{"read": true}},
		opts,
	).Decode(&n)
	return n, err
}
