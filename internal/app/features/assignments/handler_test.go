package assignments_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/standin/internal/app/features/assignments"
	"github.com/dalemusser/standin/internal/domain/models"
	"github.com/dalemusser/standin/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestCreate_NonAdminForbidden(t *testing.T) {
	handler := &assignments.Handler{Log: zap.NewNop()}

	req := testutil.NewAuthenticatedRequest("POST", "/assignments", testutil.VolunteerUser())
	rec := testutil.NewRecorder()
	handler.Create(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusForbidden)
}

func TestCreate_BadIDs(t *testing.T) {
	handler := &assignments.Handler{Log: zap.NewNop()}
	admin := testutil.AdminUser()

	req := testutil.WithUser(testutil.NewJSONRequest(t, "POST", "/assignments", map[string]string{
		"volunteer_id": "nope", "event_id": primitive.NewObjectID().Hex()}), admin)
	rec := testutil.NewRecorder()
	handler.Create(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestCreate_FullFlow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := assignments.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := testutil.AdminUser()
	volunteer := fixtures.CreateVolunteer(ctx, "vera@example.com")
	proxy := fixtures.CreateProxy(ctx, "pat@example.com")
	event := fixtures.CreateEvent(ctx, "Shift", time.Now().UTC().AddDate(0, 0, 7), primitive.NewObjectID())

	// Unknown volunteer.
	req := testutil.WithUser(testutil.NewJSONRequest(t, "POST", "/assignments", map[string]string{
		"volunteer_id": primitive.NewObjectID().Hex(), "event_id": event.ID.Hex()}), admin)
	rec := testutil.NewRecorder()
	handler.Create(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusNotFound)

	// A proxy cannot hold an assignment.
	req = testutil.WithUser(testutil.NewJSONRequest(t, "POST", "/assignments", map[string]string{
		"volunteer_id": proxy.ID.Hex(), "event_id": event.ID.Hex()}), admin)
	rec = testutil.NewRecorder()
	handler.Create(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusBadRequest)

	// Unknown event.
	req = testutil.WithUser(testutil.NewJSONRequest(t, "POST", "/assignments", map[string]string{
		"volunteer_id": volunteer.ID.Hex(), "event_id": primitive.NewObjectID().Hex()}), admin)
	rec = testutil.NewRecorder()
	handler.Create(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusNotFound)

	// The happy path.
	req = testutil.WithUser(testutil.NewJSONRequest(t, "POST", "/assignments", map[string]string{
		"volunteer_id": volunteer.ID.Hex(), "event_id": event.ID.Hex()}), admin)
	rec = testutil.NewRecorder()
	handler.Create(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusCreated)

	var created struct {
		ID        string `json:"id"`
		Fulfilled bool   `json:"fulfilled"`
	}
	rec.DecodeJSON(t, &created)
	if created.Fulfilled {
		t.Error("new assignments must start unfulfilled")
	}
}

func TestList_ByRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := assignments.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	volunteer := fixtures.CreateVolunteer(ctx, "vera@example.com")
	event := fixtures.CreateEvent(ctx, "Shift", time.Now().UTC().AddDate(0, 0, 7), primitive.NewObjectID())
	mine := fixtures.CreateAssignment(ctx, volunteer.ID, event.ID)
	fixtures.CreateAssignment(ctx, primitive.NewObjectID(), primitive.NewObjectID())

	// Volunteer sees only their own.
	req := testutil.NewAuthenticatedRequest("GET", "/assignments",
		testutil.UserWithID(volunteer.ID, models.RoleVolunteer))
	rec := testutil.NewRecorder()
	handler.List(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)

	var got []struct {
		ID string `json:"id"`
	}
	rec.DecodeJSON(t, &got)
	if len(got) != 1 || got[0].ID != mine.ID.Hex() {
		t.Errorf("volunteer listing: got %+v", got)
	}

	// Admin lists by event.
	req = testutil.NewAuthenticatedRequest("GET", "/assignments?event_id="+event.ID.Hex(), testutil.AdminUser())
	rec = testutil.NewRecorder()
	handler.List(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)
	rec.DecodeJSON(t, &got)
	if len(got) != 1 {
		t.Errorf("admin event listing: got %d assignments, want 1", len(got))
	}

	// Admin without event_id is a validation error.
	req = testutil.NewAuthenticatedRequest("GET", "/assignments", testutil.AdminUser())
	rec = testutil.NewRecorder()
	handler.List(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusBadRequest)

	// Proxies hold no assignments.
	req = testutil.NewAuthenticatedRequest("GET", "/assignments", testutil.ProxyUser())
	rec = testutil.NewRecorder()
	handler.List(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusForbidden)
}
