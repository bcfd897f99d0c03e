// internal/domain/models/request.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Request statuses. A request starts pending and transitions exactly once,
// to accepted or declined. Both are terminal.
const (
	RequestPending  = "pending"
	RequestAccepted = "accepted"
	RequestDeclined = "declined"
)

// Request is a volunteer's ask that a specific available proxy take over a
// specific assignment. At most one request per assignment ever reaches
// accepted; that guarantee rides on the conditional status update in the
// requests store plus the conditional fulfilled flip in the assignments store.
type Request struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	VolunteerID  primitive.ObjectID `bson:"volunteer_id" json:"volunteer_id"`
	ProxyID      primitive.ObjectID `bson:"proxy_id" json:"proxy_id"`
	EventID      primitive.ObjectID `bson:"event_id" json:"event_id"`
	AssignmentID primitive.ObjectID `bson:"assignment_id" json:"assignment_id"`
	Status       string             `bson:"status" json:"status"` // pending | accepted | declined

	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	RespondedAt *time.Time `bson:"responded_at,omitempty" json:"responded_at,omitempty"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updated_at"`
}

// Responded reports whether the request has reached a terminal status.
func (r *Request) Responded() bool {
	return r.Status != RequestPending
}
