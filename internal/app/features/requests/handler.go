// internal/app/features/requests/handler.go

// Package requests is the HTTP surface of the request workflow engine. All
// arbitration logic lives in the engine; handlers decode, authenticate, and
// map errors to statuses.
package requests

import (
	"context"
	"net/http"

	assignmentstore "github.com/dalemusser/standin/internal/app/store/assignments"
	"github.com/dalemusser/standin/internal/app/system/apperr"
	"github.com/dalemusser/standin/internal/app/system/authz"
	"github.com/dalemusser/standin/internal/app/system/httpjson"
	"github.com/dalemusser/standin/internal/app/system/timeouts"
	"github.com/dalemusser/standin/internal/app/workflow"
	"github.com/dalemusser/standin/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the request endpoints.
type Handler struct {
	Engine      *workflow.Engine
	Assignments *assignmentstore.Store
	Log         *zap.Logger
}

// NewHandler constructs a requests Handler around the workflow engine.
func NewHandler(engine *workflow.Engine, assignments *assignmentstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Engine:      engine,
		Assignments: assignments,
		Log:         logger,
	}
}

type createRequestBody struct {
	AssignmentID string `json:"assignment_id"`
	ProxyID      string `json:"proxy_id"`
	EventID      string `json:"event_id"`
}

// Create handles POST /requests. Volunteer only; the assignment must belong
// to the caller and must not already be fulfilled.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	role, callerID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.WriteUnauthorized(w, "authentication required")
		return
	}
	if role != models.RoleVolunteer {
		httpjson.WriteError(w, h.Log, apperr.Forbidden("only volunteers can create proxy requests"))
		return
	}

	var in createRequestBody
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	assignmentID, err := primitive.ObjectIDFromHex(in.AssignmentID)
	if err != nil {
		httpjson.WriteError(w, h.Log, apperr.Validation("invalid assignment id"))
		return
	}
	proxyID, err := primitive.ObjectIDFromHex(in.ProxyID)
	if err != nil {
		httpjson.WriteError(w, h.Log, apperr.Validation("invalid proxy id"))
		return
	}
	eventID, err := primitive.ObjectIDFromHex(in.EventID)
	if err != nil {
		httpjson.WriteError(w, h.Log, apperr.Validation("invalid event id"))
		return
	}

	assignment, err := h.Assignments.GetByID(ctx, assignmentID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.WriteError(w, h.Log, apperr.NotFound("assignment", "assignment not found"))
			return
		}
		httpjson.WriteError(w, h.Log, apperr.Internal("assignment lookup failed", err))
		return
	}
	if assignment.VolunteerID != callerID {
		httpjson.WriteError(w, h.Log, apperr.Forbidden("assignment belongs to another volunteer"))
		return
	}
	if assignment.Fulfilled {
		httpjson.WriteError(w, h.Log, apperr.Conflict("assignment has already been fulfilled"))
		return
	}
	if assignment.EventID != eventID {
		httpjson.WriteError(w, h.Log, apperr.Validation("event does not match the assignment"))
		return
	}

	created, err := h.Engine.Create(ctx, assignmentID, proxyID, eventID, callerID)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusCreated, created)
}

// Accept handles POST /requests/{requestID}/accept.
func (h *Handler) Accept(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.Engine.Accept)
}

// Decline handles POST /requests/{requestID}/decline.
func (h *Handler) Decline(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.Engine.Decline)
}

// respond is the shared accept/decline plumbing. The accept cascade can touch
// several collections, so it runs under the long timeout.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, op func(context.Context, primitive.ObjectID, primitive.ObjectID) (models.Request, error)) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	_, callerID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.WriteUnauthorized(w, "authentication required")
		return
	}

	requestID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "requestID"))
	if err != nil {
		httpjson.WriteError(w, h.Log, apperr.Validation("invalid request id"))
		return
	}

	updated, err := op(ctx, requestID, callerID)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, updated)
}

// List handles GET /requests: volunteers see the requests they created,
// proxies the requests targeting them.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	role, callerID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.WriteUnauthorized(w, "authentication required")
		return
	}

	out, err := h.Engine.ListByUser(ctx, callerID, role)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	if out == nil {
		out = []models.Request{}
	}
	httpjson.Write(w, http.StatusOK, out)
}
