package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/standin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with the given role.
func (f *Fixtures) CreateUser(ctx context.Context, email, role string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:           primitive.NewObjectID(),
		Email:        email,
		EmailCI:      text.Fold(email),
		PasswordHash: "$2a$12$test-not-a-real-hash",
		Role:         role,
		FirstName:    "Test",
		LastName:     "User",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateVolunteer creates a test volunteer user.
func (f *Fixtures) CreateVolunteer(ctx context.Context, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, email, models.RoleVolunteer)
}

// CreateProxy creates a test proxy user.
func (f *Fixtures) CreateProxy(ctx context.Context, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, email, models.RoleProxy)
}

// CreateAdmin creates a test admin user.
func (f *Fixtures) CreateAdmin(ctx context.Context, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, email, models.RoleAdmin)
}

// CreateEvent creates a test event on the given day.
func (f *Fixtures) CreateEvent(ctx context.Context, title string, date time.Time, createdBy primitive.ObjectID) models.Event {
	f.t.Helper()

	now := time.Now().UTC()
	event := models.Event{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Description: "Test event description",
		Date:        date.UTC(),
		StartTime:   "09:00",
		EndTime:     "12:00",
		Location:    "Main Hall",
		CreatedByID: createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("events").InsertOne(ctx, event); err != nil {
		f.t.Fatalf("failed to create test event: %v", err)
	}
	return event
}

// CreateAssignment creates an unfulfilled assignment for a volunteer.
func (f *Fixtures) CreateAssignment(ctx context.Context, volunteerID, eventID primitive.ObjectID) models.Assignment {
	f.t.Helper()

	a := models.Assignment{
		ID:          primitive.NewObjectID(),
		VolunteerID: volunteerID,
		EventID:     eventID,
		Fulfilled:   false,
		AssignedAt:  time.Now().UTC(),
	}

	if _, err := f.db.Collection("assignments").InsertOne(ctx, a); err != nil {
		f.t.Fatalf("failed to create test assignment: %v", err)
	}
	return a
}

// CreateAvailability declares a proxy available for an event.
func (f *Fixtures) CreateAvailability(ctx context.Context, proxyID, eventID primitive.ObjectID) models.Availability {
	f.t.Helper()

	now := time.Now().UTC()
	a := models.Availability{
		ID:        primitive.NewObjectID(),
		ProxyID:   proxyID,
		EventID:   eventID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("availability").InsertOne(ctx, a); err != nil {
		f.t.Fatalf("failed to create test availability: %v", err)
	}
	return a
}

// CreateRequest creates a request in the given status. RespondedAt is left
// unset; terminal-status fixtures that need it should set it directly.
func (f *Fixtures) CreateRequest(ctx context.Context, volunteerID, proxyID, eventID, assignmentID primitive.ObjectID, status string) models.Request {
	f.t.Helper()

	now := time.Now().UTC()
	r := models.Request{
		ID:           primitive.NewObjectID(),
		VolunteerID:  volunteerID,
		ProxyID:      proxyID,
		EventID:      eventID,
		AssignmentID: assignmentID,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("requests").InsertOne(ctx, r); err != nil {
		f.t.Fatalf("failed to create test request: %v", err)
	}
	return r
}

// CreateNotification creates a notification for a user.
func (f *Fixtures) CreateNotification(ctx context.Context, userID primitive.ObjectID, typ, message string, read bool) models.Notification {
	f.t.Helper()

	n := models.Notification{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Type:      typ,
		Message:   message,
		Read:      read,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := f.db.Collection("notifications").InsertOne(ctx, n); err != nil {
		f.t.Fatalf("failed to create test notification: %v", err)
	}
	return n
}
