// internal/domain/models/notification.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification types emitted by the request workflow.
const (
	NoticeRequestReceived = "request_received"
	NoticeRequestAccepted = "request_accepted"
	NoticeRequestDeclined = "request_declined"
)

// Notification is a read-model record for a user. Created as a side effect
// of request transitions; the read flag flips only via explicit
// acknowledgement and never auto-expires.
type Notification struct {
	ID               primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID           primitive.ObjectID  `bson:"user_id" json:"user_id"`
	Type             string              `bson:"type" json:"type"`
	Message          string              `bson:"message" json:"message"`
	RelatedRequestID *primitive.ObjectID `bson:"related_request_id,omitempty" json:"related_request_id,omitempty"`
	Read             bool                `bson:"read" json:"read"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
