package notifications_test

import (
	"testing"

	notificationstore "github.com/dalemusser/standin/internal/app/store/notifications"
	"github.com/dalemusser/standin/internal/domain/models"
	"github.com/dalemusser/standin/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := notificationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	n := models.Notification{
		UserID:  primitive.NewObjectID(),
		Type:    models.NoticeRequestReceived,
		Message: "You have a new proxy request",
		// Read deliberately preset; Create must reset it.
		Read: true,
	}

	created, err := store.Create(ctx, n)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.Read {
		t.Error("new notifications must start unread")
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestStore_ListByUser_UnreadFilter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := notificationstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	unread := fixtures.CreateNotification(ctx, userID, models.NoticeRequestAccepted, "accepted", false)
	fixtures.CreateNotification(ctx, userID, models.NoticeRequestDeclined, "declined", true)
	fixtures.CreateNotification(ctx, primitive.NewObjectID(), models.NoticeRequestReceived, "other user", false)

	all, err := store.ListByUser(ctx, userID, false)
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 notifications for user, got %d", len(all))
	}

	onlyUnread, err := store.ListByUser(ctx, userID, true)
	if err != nil {
		t.Fatalf("ListByUser unreadOnly failed: %v", err)
	}
	if len(onlyUnread) != 1 || onlyUnread[0].ID != unread.ID {
		t.Error("unreadOnly listing should return only the unread notification")
	}
}

func TestStore_MarkAsRead(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := notificationstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	n := fixtures.CreateNotification(ctx, userID, models.NoticeRequestReceived, "hello", false)

	updated, err := store.MarkAsRead(ctx, n.ID, userID)
	if err != nil {
		t.Fatalf("MarkAsRead failed: %v", err)
	}
	if !updated.Read {
		t.Error("expected read flag to be set")
	}

	_, err = store.MarkAsRead(ctx, primitive.NewObjectID(), userID)
	if err != mongo.ErrNoDocuments {
		t.Errorf("expected ErrNoDocuments for missing notification, got %v", err)
	}
}

func TestStore_MarkAsRead_ForeignUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := notificationstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := primitive.NewObjectID()
	n := fixtures.CreateNotification(ctx, owner, models.NoticeRequestReceived, "hello", false)

	// Another user's id must not reveal or mutate the notification.
	_, err := store.MarkAsRead(ctx, n.ID, primitive.NewObjectID())
	if err != mongo.ErrNoDocuments {
		t.Fatalf("expected ErrNoDocuments for foreign caller, got %v", err)
	}

	unread, err := store.ListByUser(ctx, owner, true)
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if len(unread) != 1 {
		t.Error("notification should still be unread after foreign mark attempt")
	}
}
