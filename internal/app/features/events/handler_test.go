package events_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/standin/internal/app/features/events"
	"github.com/dalemusser/standin/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestCreate_NonAdminForbidden(t *testing.T) {
	// The role check runs before any store access.
	handler := &events.Handler{Log: zap.NewNop()}

	for _, user := range []testutil.TestUser{testutil.VolunteerUser(), testutil.ProxyUser()} {
		req := testutil.NewAuthenticatedRequest("POST", "/events", user)
		rec := testutil.NewRecorder()
		handler.Create(rec.ResponseRecorder, req)
		rec.AssertStatus(t, http.StatusForbidden)
	}
}

func TestCreate_Validation(t *testing.T) {
	handler := &events.Handler{Log: zap.NewNop()}
	admin := testutil.AdminUser()

	cases := []struct {
		name string
		body map[string]string
	}{
		{"missing title", map[string]string{
			"date": "2026-03-14", "start_time": "09:00", "end_time": "12:00", "location": "Hall"}},
		{"bad date", map[string]string{
			"title": "Shift", "date": "14/03/2026", "start_time": "09:00", "end_time": "12:00", "location": "Hall"}},
		{"bad time format", map[string]string{
			"title": "Shift", "date": "2026-03-14", "start_time": "9am", "end_time": "12:00", "location": "Hall"}},
		{"start after end", map[string]string{
			"title": "Shift", "date": "2026-03-14", "start_time": "13:00", "end_time": "12:00", "location": "Hall"}},
		{"missing location", map[string]string{
			"title": "Shift", "date": "2026-03-14", "start_time": "09:00", "end_time": "12:00"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.WithUser(testutil.NewJSONRequest(t, "POST", "/events", tc.body), admin)
			rec := testutil.NewRecorder()
			handler.Create(rec.ResponseRecorder, req)
			rec.AssertStatus(t, http.StatusBadRequest)
		})
	}
}

func TestCreate_And_Get(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := events.NewHandler(db, zap.NewNop())
	admin := testutil.AdminUser()

	body := map[string]string{
		"title":      "Food Bank Shift",
		"date":       "2026-03-14",
		"start_time": "09:00",
		"end_time":   "12:00",
		"location":   "Warehouse B",
	}
	req := testutil.WithUser(testutil.NewJSONRequest(t, "POST", "/events", body), admin)
	rec := testutil.NewRecorder()
	handler.Create(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusCreated)

	var created struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	rec.DecodeJSON(t, &created)
	if created.Title != "Food Bank Shift" {
		t.Errorf("title: got %q", created.Title)
	}

	req = testutil.NewAuthenticatedRequest("GET", "/events/"+created.ID, admin)
	req = testutil.WithChiURLParam(req, "eventID", created.ID)
	rec = testutil.NewRecorder()
	handler.Get(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)
}

func TestGet_NotFoundAndBadID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := events.NewHandler(db, zap.NewNop())
	admin := testutil.AdminUser()

	req := testutil.NewAuthenticatedRequest("GET", "/events/zzz", admin)
	req = testutil.WithChiURLParam(req, "eventID", "zzz")
	rec := testutil.NewRecorder()
	handler.Get(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusBadRequest)

	missing := primitive.NewObjectID().Hex()
	req = testutil.NewAuthenticatedRequest("GET", "/events/"+missing, admin)
	req = testutil.WithChiURLParam(req, "eventID", missing)
	rec = testutil.NewRecorder()
	handler.Get(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusNotFound)
}

func TestList_DateFilter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := events.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := testutil.AdminUser()
	day := time.Date(2026, 6, 5, 0, 0, 0, 0, time.UTC)
	fixtures.CreateEvent(ctx, "On The Day", day, primitive.NewObjectID())
	fixtures.CreateEvent(ctx, "Other Day", day.AddDate(0, 0, 3), primitive.NewObjectID())

	req := testutil.NewAuthenticatedRequest("GET", "/events?date=2026-06-05", admin)
	rec := testutil.NewRecorder()
	handler.List(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)

	var got []struct {
		Title string `json:"title"`
	}
	rec.DecodeJSON(t, &got)
	if len(got) != 1 || got[0].Title != "On The Day" {
		t.Errorf("date filter: got %+v", got)
	}

	// Malformed date query.
	req = testutil.NewAuthenticatedRequest("GET", "/events?date=junk", admin)
	rec = testutil.NewRecorder()
	handler.List(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusBadRequest)
}
