// internal/domain/models/assignment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Assignment is a volunteer's scheduled obligation for an event. The
// fulfilled flag flips exactly once, when a proxy's request is accepted,
// and is never reverted. Fulfilled implies FulfilledAt is set.
type Assignment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	VolunteerID primitive.ObjectID `bson:"volunteer_id" json:"volunteer_id"`
	EventID     primitive.ObjectID `bson:"event_id" json:"event_id"`
	Fulfilled   bool               `bson:"fulfilled" json:"fulfilled"`
	AssignedAt  time.Time          `bson:"assigned_at" json:"assigned_at"`
	FulfilledAt *time.Time         `bson:"fulfilled_at,omitempty" json:"fulfilled_at,omitempty"`
}
