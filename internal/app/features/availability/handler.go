// internal/app/features/availability/handler.go

// Package availability implements proxy availability declarations: marking,
// withdrawing, and the listings volunteers use to find an available proxy.
package availability

import (
	"context"
	"net/http"

	"github.com/dalemusser/standin/internal/app/policy/requestpolicy"
	availabilitystore "github.com/dalemusser/standin/internal/app/store/availability"
	"github.com/dalemusser/standin/internal/app/store/events"
	"github.com/dalemusser/standin/internal/app/system/apperr"
	"github.com/dalemusser/standin/internal/app/system/authz"
	"github.com/dalemusser/standin/internal/app/system/httpjson"
	"github.com/dalemusser/standin/internal/app/system/timeouts"
	"github.com/dalemusser/standin/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the availability endpoints.
type Handler struct {
	Availability *availabilitystore.Store
	Events       *events.Store
	Log          *zap.Logger
}

// NewHandler constructs an availability Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Availability: availabilitystore.New(db),
		Events:       events.New(db),
		Log:          logger,
	}
}

type declareRequest struct {
	EventID string `json:"event_id"`
}

// Declare handles POST /availability. Proxy only; a repeat declaration for
// the same event is a Conflict (unique index).
func (h *Handler) Declare(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	role, callerID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.WriteUnauthorized(w, "authentication required")
		return
	}
	if role != models.RoleProxy {
		httpjson.WriteError(w, h.Log, apperr.Forbidden("only proxies can declare availability"))
		return
	}

	var in declareRequest
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	eventID, err := primitive.ObjectIDFromHex(in.EventID)
	if err != nil {
		httpjson.WriteError(w, h.Log, apperr.Validation("invalid event id"))
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

	created, err := h.Availability.Create(ctx, models.Availability{
		ProxyID: callerID,
		EventID: eventID,
	})
	if err != nil {
		if wafflemongo.IsDup(err) {
			httpjson.WriteError(w, h.Log, apperr.Conflict("availability already declared for this event"))
			return
		}
		httpjson.WriteError(w, h.Log, apperr.Internal("availability create failed", err))
		return
	}
	httpjson.Write(w, http.StatusCreated, created)
}

// Withdraw handles DELETE /availability/{availabilityID}. Only the declaring
// proxy may withdraw.
func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	_, callerID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.WriteUnauthorized(w, "authentication required")
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "availabilityID"))
	if err != nil {
		httpjson.WriteError(w, h.Log, apperr.Validation("invalid availability id"))
		return
	}

	decl, err := h.Availability.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.WriteError(w, h.Log, apperr.NotFound("availability", "availability not found"))
			return
		}
		httpjson.WriteError(w, h.Log, apperr.Internal("availability lookup failed", err))
		return
	}
	if !requestpolicy.CanWithdrawAvailability(decl, callerID) {
		httpjson.WriteError(w, h.Log, apperr.Forbidden("only the declaring proxy may withdraw availability"))
		return
	}

	if err := h.Availability.Delete(ctx, id); err != nil {
		httpjson.WriteError(w, h.Log, apperr.Internal("availability delete failed", err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /availability. With ?event_id= it returns the proxies
// available for that event (how volunteers pick a proxy to ask); without it,
// a proxy gets their own declarations.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	role, callerID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.WriteUnauthorized(w, "authentication required")
		return
	}

	var (
		out []models.Availability
		err error
	)
	if raw := r.URL.Query().Get("event_id"); raw != "" {
		eventID, idErr := primitive.ObjectIDFromHex(raw)
		if idErr != nil {
			httpjson.WriteError(w, h.Log, apperr.Validation("invalid event id"))
			return
		}
		out, err = h.Availability.ListByEvent(ctx, eventID)
	} else {
		if role != models.RoleProxy {
			httpjson.WriteError(w, h.Log, apperr.Validation("event_id query parameter is required"))
			return
		}
		out, err = h.Availability.ListByProxy(ctx, callerID)
	}
	if err != nil {
		httpjson.WriteError(w, h.Log, apperr.Internal("availability list failed", err))
		return
	}
	if out == nil {
		out = []models.Availability{}
	}
	httpjson.Write(w, http.StatusOK, out)
}
