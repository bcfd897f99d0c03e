// internal/app/features/assignments/handler.go

// Package assignments implements admin assignment creation and the listings
// volunteers and admins use to see who is covering what.
package assignments

import (
	"context"
	"net/http"

	"github.com/dalemusser/standin/internal/app/store/assignments"
	"github.com/dalemusser/standin/internal/app/store/events"
	"github.com/dalemusser/standin/internal/app/store/users"
	"github.com/dalemusser/standin/internal/app/system/apperr"
	"github.com/dalemusser/standin/internal/app/system/authz"
	"github.com/dalemusser/standin/internal/app/system/httpjson"
	"github.com/dalemusser/standin/internal/app/system/timeouts"
	"github.com/dalemusser/standin/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the assignment endpoints.
type Handler struct {
	Assignments *assignments.Store
	Events      *events.Store
	Users       *users.Store
	Log         *zap.Logger
}

// NewHandler constructs an assignments Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Assignments: assignments.New(db),
		Events:      events.New(db),
		Users:       users.New(db),
		Log:         logger,
	}
}

type createAssignmentRequest struct {
	VolunteerID string `json:"volunteer_id"`
	EventID     string `json:"event_id"`
}

// Create handles POST /assignments. Admin only. The referenced volunteer and
// event must exist, and the user must actually hold the volunteer role.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if !authz.IsAdmin(r) {
		httpjson.WriteError(w, h.Log, apperr.Forbidden("only admins can create assignments"))
		return
	}

	var in createAssignmentRequest
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	volunteerID, err := primitive.ObjectIDFromHex(in.VolunteerID)
	if err != nil {
		httpjson.WriteError(w, h.Log, apperr.Validation("invalid volunteer id"))
		return
	}
	eventID, err := primitive.ObjectIDFromHex(in.EventID)
	if err != nil {
		httpjson.WriteError(w, h.Log, apperr.Validation("invalid event id"))
		return
	}

	volunteer, err := h.Users.GetByID(ctx, volunteerID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.WriteError(w, h.Log, apperr.NotFound("user", "volunteer not found"))
			return
		}
		httpjson.WriteError(w, h.Log, apperr.Internal("volunteer lookup failed", err))
		return
	}
	if volunteer.Role != models.RoleVolunteer {
		httpjson.WriteError(w, h.Log, apperr.Validation("user is not a volunteer"))
		return
	}

	if _, err := h.Events.GetByID(ctx, eventID); err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.WriteError(w, h.Log, apperr.NotFound("event", "event not found"))
			return
		}
		httpjson.WriteError(w, h.Log, apperr.Internal("event lookup failed", err))
		return
	}

	created, err := h.Assignments.Create(ctx, models.Assignment{
		VolunteerID: volunteerID,
		EventID:     eventID,
	})
	if err != nil {
		httpjson.WriteError(w, h.Log, apperr.Internal("assignment create failed", err))
		return
	}
	httpjson.Write(w, http.StatusCreated, created)
}

// List handles GET /assignments. Volunteers get their own assignments.
// Admins pass ?event_id= to list an event's assignments.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	role, callerID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.WriteUnauthorized(w, "authentication required")
		return
	}

	var (
		out []models.Assignment
		err error
	)
	switch {
	case role == models.RoleVolunteer:
		out, err = h.Assignments.ListByVolunteer(ctx, callerID)
	case role == models.RoleAdmin:
		eventID, idErr := primitive.ObjectIDFromHex(r.URL.Query().Get("event_id"))
		if idErr != nil {
			httpjson.WriteError(w, h.Log, apperr.Validation("event_id query parameter is required"))
			return
		}
		out, err = h.Assignments.ListByEvent(ctx, eventID)
	default:
		httpjson.WriteError(w, h.Log, apperr.Forbidden("proxies do not hold assignments"))
		return
	}
	if err != nil {
		httpjson.WriteError(w, h.Log, apperr.Internal("assignment list failed", err))
		return
	}
	if out == nil {
		out = []models.Assignment{}
	}
	httpjson.Write(w, http.StatusOK, out)
}
