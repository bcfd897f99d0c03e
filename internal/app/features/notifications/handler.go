// internal/app/features/notifications/handler.go

// Package notifications implements the polling read model: users list their
// notifications and acknowledge them one at a time.
package notifications

import (
	"context"
	"net/http"

	notificationstore "github.com/dalemusser/standin/internal/app/store/notifications"
	"github.com/dalemusser/standin/internal/app/system/apperr"
	"github.com/dalemusser/standin/internal/app/system/authz"
	"github.com/dalemusser/standin/internal/app/system/httpjson"
	"github.com/dalemusser/standin/internal/app/system/timeouts"
	"github.com/dalemusser/standin/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the notification endpoints.
type Handler struct {
	Notifications *notificationstore.Store
	Log           *zap.Logger
}

// NewHandler constructs a notifications Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Notifications: notificationstore.New(db),
		Log:           logger,
	}
}

// List handles GET /notifications. ?unread=true filters to unread only.
// Users only ever see their own notifications.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	_, callerID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.WriteUnauthorized(w, "authentication required")
		return
	}

	unreadOnly := r.URL.Query().Get("unread") == "true"
	out, err := h.Notifications.ListByUser(ctx, callerID, unreadOnly)
	if err != nil {
		httpjson.WriteError(w, h.Log, apperr.Internal("notification list failed", err))
		return
	}
	if out == nil {
		out = []models.Notification{}
	}
	httpjson.Write(w, http.StatusOK, out)
}

// MarkRead handles POST /notifications/{notificationID}/read. Users may only
// acknowledge their own notifications; a foreign id reads as not found so the
// endpoint does not leak other users' notification ids.
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	_, callerID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.WriteUnauthorized(w, "authentication required")
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "notificationID"))
	if err != nil {
		httpjson.WriteError(w, h.Log, apperr.Validation("invalid notification id"))
		return
	}

	notice, err := h.Notifications.MarkAsRead(ctx, id, callerID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.WriteError(w, h.Log, apperr.NotFound("notification", "notification not found"))
			return
		}
		httpjson.WriteError(w, h.Log, apperr.Internal("notification update failed", err))
		return
	}
	httpjson.Write(w, http.StatusOK, notice)
}
