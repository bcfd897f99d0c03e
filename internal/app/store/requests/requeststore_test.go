package requests_test

import (
	"testing"
	"time"

	requeststore "github.com/dalemusser/standin/internal/app/store/requests"
	"github.com/dalemusser/standin/internal/domain/models"
	"github.com/dalemusser/standin/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := requeststore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	req := models.Request{
		VolunteerID:  primitive.NewObjectID(),
		ProxyID:      primitive.NewObjectID(),
		EventID:      primitive.NewObjectID(),
		AssignmentID: primitive.NewObjectID(),
		// Status deliberately set to something else; Create must override.
		Status: models.RequestAccepted,
	}

	created, err := store.Create(ctx, req)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.Status != models.RequestPending {
		t.Errorf("expected status pending, got %q", created.Status)
	}
	if created.RespondedAt != nil {
		t.Error("expected RespondedAt to be unset on create")
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestStore_UpdateStatus_WinsWhilePending(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := requeststore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	req := fixtures.CreateRequest(ctx,
		primitive.NewObjectID(), primitive.NewObjectID(),
		primitive.NewObjectID(), primitive.NewObjectID(),
		models.RequestPending)

	respondedAt := time.Now().UTC()
	updated, won, err := store.UpdateStatus(ctx, req.ID, models.RequestAccepted, respondedAt)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if !won {
		t.Fatal("expected transition to win while pending")
	}
	if updated.Status != models.RequestAccepted {
		t.Errorf("status: got %q, want accepted", updated.Status)
	}
	if updated.RespondedAt == nil {
		t.Error("expected RespondedAt to be stamped")
	}
}

func TestStore_UpdateStatus_LosesAfterTerminal(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := requeststore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	req := fixtures.CreateRequest(ctx,
		primitive.NewObjectID(), primitive.NewObjectID(),
		primitive.NewObjectID(), primitive.NewObjectID(),
		models.RequestDeclined)

	// The request already left pending; the conditional update must report
	// a loss, not an error, and must not touch the document.
	_, won, err := store.UpdateStatus(ctx, req.ID, models.RequestAccepted, time.Now().UTC())
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if won {
		t.Fatal("transition on a terminal request must not win")
	}

	got, err := store.GetByID(ctx, req.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != models.RequestDeclined {
		t.Errorf("terminal status was overwritten: got %q", got.Status)
	}
}

func TestStore_UpdateStatus_MissingRequest(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := requeststore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, won, err := store.UpdateStatus(ctx, primitive.NewObjectID(), models.RequestDeclined, time.Now().UTC())
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if won {
		t.Fatal("transition on a missing request must not win")
	}
}

func TestStore_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := requeststore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.GetByID(ctx, primitive.NewObjectID())
	if err != mongo.ErrNoDocuments {
		t.Errorf("expected ErrNoDocuments, got %v", err)
	}
}

func TestStore_ListPendingByAssignment(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := requeststore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	assignmentID := primitive.NewObjectID()
	fixtures.CreateRequest(ctx,
		primitive.NewObjectID(), primitive.NewObjectID(),
		primitive.NewObjectID(), assignmentID, models.RequestPending)
	fixtures.CreateRequest(ctx,
		primitive.NewObjectID(), primitive.NewObjectID(),
		primitive.NewObjectID(), assignmentID, models.RequestDeclined)
	// Different assignment, same status.
	fixtures.CreateRequest(ctx,
		primitive.NewObjectID(), primitive.NewObjectID(),
		primitive.NewObjectID(), primitive.NewObjectID(), models.RequestPending)

	pending, err := store.ListPendingByAssignment(ctx, assignmentID)
	if err != nil {
		t.Fatalf("ListPendingByAssignment failed: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending request, got %d", len(pending))
	}
	if pending[0].AssignmentID != assignmentID {
		t.Error("returned request belongs to another assignment")
	}
}

func TestStore_ListByVolunteerAndProxy(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := requeststore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	volunteerID := primitive.NewObjectID()
	proxyID := primitive.NewObjectID()

	mine := fixtures.CreateRequest(ctx,
		volunteerID, proxyID,
		primitive.NewObjectID(), primitive.NewObjectID(), models.RequestPending)
	fixtures.CreateRequest(ctx,
		primitive.NewObjectID(), primitive.NewObjectID(),
		primitive.NewObjectID(), primitive.NewObjectID(), models.RequestPending)

	byVolunteer, err := store.ListByVolunteer(ctx, volunteerID)
	if err != nil {
		t.Fatalf("ListByVolunteer failed: %v", err)
	}
	if len(byVolunteer) != 1 || byVolunteer[0].ID != mine.ID {
		t.Error("volunteer listing should return only that volunteer's requests")
	}

	byProxy, err := store.ListByProxy(ctx, proxyID)
	if err != nil {
		t.Fatalf("ListByProxy failed: %v", err)
	}
	if len(byProxy) != 1 || byProxy[0].ID != mine.ID {
		t.Error("proxy listing should return only requests targeting that proxy")
	}
}
