// internal/app/workflow/engine.go

// Package workflow implements the request arbitration engine: creating a
// proxy request, accepting or declining it, and the single-winner cascade
// that runs when a request is accepted.
//
// The engine holds no locks and assumes nothing about scheduling; every
// state transition is linearized through the stores' conditional updates
// (update-where-still-pending, fulfill-where-not-fulfilled). Zero-match on
// a conditional update is the race signal and is translated into a
// Conflict here, never propagated as a storage error.
package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/standin/internal/app/policy/requestpolicy"
	"github.com/dalemusser/standin/internal/app/system/apperr"
	"github.com/dalemusser/standin/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// AssignmentStore is the slice of the assignments store the engine needs.
type AssignmentStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Assignment, error)
	// MarkFulfilled must be atomic and conditional on fulfilled=false,
	// reporting won=false when another caller already fulfilled the
	// assignment (or it does not exist).
	MarkFulfilled(ctx context.Context, id primitive.ObjectID, fulfilledAt time.Time) (models.Assignment, bool, error)
}

// AvailabilityStore is the slice of the availability store the engine needs.
type AvailabilityStore interface {
	GetByProxyAndEvent(ctx context.Context, proxyID, eventID primitive.ObjectID) (models.Availability, error)
}

// RequestStore is the slice of the requests store the engine needs.
type RequestStore interface {
	Create(ctx context.Context, r models.Request) (models.Request, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Request, error)
	// UpdateStatus must be atomic and conditional on status=pending,
	// reporting won=false when the request already left pending (or does
	// not exist).
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string, respondedAt time.Time) (models.Request, bool, error)
	ListByVolunteer(ctx context.Context, volunteerID primitive.ObjectID) ([]models.Request, error)
	ListByProxy(ctx context.Context, proxyID primitive.ObjectID) ([]models.Request, error)
	ListPendingByAssignment(ctx context.Context, assignmentID primitive.ObjectID) ([]models.Request, error)
}

// NotificationSink records workflow notices. Delivery is best-effort
// at-most-once: a failed insert is logged and never rolls back the
// transition that triggered it.
type NotificationSink interface {
	Create(ctx context.Context, n models.Notification) (models.Notification, error)
}

// Engine coordinates request creation, acceptance, and decline against the
// assignment, availability, request, and notification stores.
type Engine struct {
	assignments  AssignmentStore
	availability AvailabilityStore
	requests     RequestStore
	notices      NotificationSink
	log          *zap.Logger
}

// New constructs an Engine. All dependencies are required.
func New(assignments AssignmentStore, availability AvailabilityStore, requests RequestStore, notices NotificationSink, logger *zap.Logger) *Engine {
	return &Engine{
		assignments:  assignments,
		availability: availability,
		requests:     requests,
		notices:      notices,
		log:          logger,
	}
}

// Create validates that the targeted proxy declared availability for the
// event and that no other request is still pending for the assignment, then
// persists a new pending request and notifies the proxy. The notification is
// emitted only after persistence succeeds and is best-effort.
func (e *Engine) Create(ctx context.Context, assignmentID, proxyID, eventID, volunteerID primitive.ObjectID) (models.Request, error) {
	if _, err := e.availability.GetByProxyAndEvent(ctx, proxyID, eventID); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Request{}, apperr.NotFound("proxy availability", "proxy is not available for this event")
		}
		return models.Request{}, apperr.Internal("availability lookup failed", err)
	}

	pending, err := e.requests.ListPendingByAssignment(ctx, assignmentID)
	if err != nil {
		return models.Request{}, apperr.Internal("pending request lookup failed", err)
	}
	if len(pending) > 0 {
		return models.Request{}, apperr.Conflict("a pending request already exists for this assignment")
	}

	req, err := e.requests.Create(ctx, models.Request{
		VolunteerID:  volunteerID,
		ProxyID:      proxyID,
		EventID:      eventID,
		AssignmentID: assignmentID,
		Status:       models.RequestPending,
	})
	if err != nil {
		return models.Request{}, apperr.Internal("request create failed", err)
	}

	e.notify(ctx, models.Notification{
		UserID:           proxyID,
		Type:             models.NoticeRequestReceived,
		Message:          fmt.Sprintf("You have a new proxy request for event %s", eventID.Hex()),
		RelatedRequestID: &req.ID,
	})

	return req, nil
}

// Accept grants the request to the calling proxy, fulfills the assignment,
// auto-declines every competing pending request for that assignment, and
// notifies everyone affected.
//
// The assignment's conditional fulfilled flip is claimed before the
// request's own status transition: it is the unique-winner arbiter, so a
// request can only ever reach accepted after its caller won the assignment.
// That ordering also guarantees concurrent accepts on sibling requests
// observe fulfilled=true and fail with Conflict rather than racing the
// cascade.
func (e *Engine) Accept(ctx context.Context, requestID, callerID primitive.ObjectID) (models.Request, error) {
	req, err := e.loadForResponse(ctx, requestID, callerID)
	if err != nil {
		return models.Request{}, err
	}

	now := time.Now().UTC()

	_, won, err := e.assignments.MarkFulfilled(ctx, req.AssignmentID, now)
	if err != nil {
		return models.Request{}, apperr.Internal("assignment fulfill failed", err)
	}
	if !won {
		return models.Request{}, apperr.Conflict("assignment has already been fulfilled")
	}

	accepted, won, err := e.requests.UpdateStatus(ctx, req.ID, models.RequestAccepted, now)
	if err != nil {
		return models.Request{}, apperr.Internal("request accept failed", err)
	}
	if !won {
		// Lost a same-request race between the pending check and the
		// transition (e.g. a concurrent decline of this very request).
		return models.Request{}, apperr.Conflict("request has already been responded to")
	}

	if err := e.declineSiblings(ctx, accepted, now); err != nil {
		// The accept itself is committed; cascade failures are surfaced so
		// the caller can retry. Re-querying still-pending requests makes
		// the cascade resumable; already-declined siblings are skipped by
		// the conditional update, so a resume can duplicate notifications
		// but never double-transition a request.
		return models.Request{}, err
	}

	e.notify(ctx, models.Notification{
		UserID:           accepted.VolunteerID,
		Type:             models.NoticeRequestAccepted,
		Message:          "Your proxy request has been accepted!",
		RelatedRequestID: &accepted.ID,
	})

	return accepted, nil
}

// Decline rejects the request. The assignment stays unfulfilled and remains
// eligible for new requests from other proxies; nothing cascades.
func (e *Engine) Decline(ctx context.Context, requestID, callerID primitive.ObjectID) (models.Request, error) {
	req, err := e.loadForResponse(ctx, requestID, callerID)
	if err != nil {
		return models.Request{}, err
	}

	declined, won, err := e.requests.UpdateStatus(ctx, req.ID, models.RequestDeclined, time.Now().UTC())
	if err != nil {
		return models.Request{}, apperr.Internal("request decline failed", err)
	}
	if !won {
		return models.Request{}, apperr.Conflict("request has already been responded to")
	}

	e.notify(ctx, models.Notification{
		UserID:           declined.VolunteerID,
		Type:             models.NoticeRequestDeclined,
		Message:          "Your proxy request was declined",
		RelatedRequestID: &declined.ID,
	})

	return declined, nil
}

// ListByUser returns the requests visible to a user: volunteers see the
// requests they created, proxies see the requests targeting them, and any
// other role gets an empty list — default-deny at the data level, separate
// from the route-level role gate.
func (e *Engine) ListByUser(ctx context.Context, userID primitive.ObjectID, role string) ([]models.Request, error) {
	switch role {
	case models.RoleVolunteer:
		out, err := e.requests.ListByVolunteer(ctx, userID)
		if err != nil {
			return nil, apperr.Internal("request list failed", err)
		}
		return out, nil
	case models.RoleProxy:
		out, err := e.requests.ListByProxy(ctx, userID)
		if err != nil {
			return nil, apperr.Internal("request list failed", err)
		}
		return out, nil
	default:
		return []models.Request{}, nil
	}
}

// loadForResponse fetches the request and runs the shared accept/decline
// preconditions: existence, the authoritative ownership predicate, and a
// fast-path pending check. The pending check here is advisory — the
// conditional update is what actually settles races.
func (e *Engine) loadForResponse(ctx context.Context, requestID, callerID primitive.ObjectID) (models.Request, error) {
	req, err := e.requests.GetByID(ctx, requestID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Request{}, apperr.NotFound("request", "request not found")
		}
		return models.Request{}, apperr.Internal("request lookup failed", err)
	}
	if !requestpolicy.CanRespond(req, callerID) {
		return models.Request{}, apperr.Forbidden("only the targeted proxy may respond to this request")
	}
	if req.Responded() {
		return models.Request{}, apperr.Conflict("request has already been responded to")
	}
	return req, nil
}

// declineSiblings transitions every request still pending for the accepted
// request's assignment to declined, notifying each losing volunteer. It is
// a batch over a fresh still-pending query, so a crashed or failed cascade
// is resumable by retrying the accept path's re-query.
func (e *Engine) declineSiblings(ctx context.Context, accepted models.Request, now time.Time) error {
	siblings, err := e.requests.ListPendingByAssignment(ctx, accepted.AssignmentID)
	if err != nil {
		return apperr.Internal("sibling request lookup failed", err)
	}

	for _, sib := range siblings {
		if sib.ID == accepted.ID {
			continue
		}
		declined, won, err := e.requests.UpdateStatus(ctx, sib.ID, models.RequestDeclined, now)
		if err != nil {
			return apperr.Internal("sibling decline failed", err)
		}
		if !won {
			// Someone else settled it in the meantime; nothing to do.
			continue
		}
		e.notify(ctx, models.Notification{
			UserID:           declined.VolunteerID,
			Type:             models.NoticeRequestDeclined,
			Message:          "Your request was declined (assignment fulfilled by another proxy)",
			RelatedRequestID: &declined.ID,
		})
	}
	return nil
}

// notify records a notification, logging failures instead of propagating
// them. Notification loss is tolerated (polling read model); notification
// emission never rolls back a committed transition.
func (e *Engine) notify(ctx context.Context, n models.Notification) {
	if _, err := e.notices.Create(ctx, n); err != nil {
		e.log.Error("notification emit failed",
			zap.String("type", n.Type),
			zap.String("user_id", n.UserID.Hex()),
			zap.Error(err),
		)
	}
}
