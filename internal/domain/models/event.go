// internal/domain/models/event.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event is a scheduled occasion volunteers are assigned to cover.
// StartTime and EndTime are wall-clock "HH:MM" strings local to the event;
// Date carries the calendar day.
type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Date        time.Time          `bson:"date" json:"date"`
	StartTime   string             `bson:"start_time" json:"start_time"` // "HH:MM", 24h
	EndTime     string             `bson:"end_time" json:"end_time"`     // "HH:MM", 24h
	Location    string             `bson:"location" json:"location"`
	CreatedByID primitive.ObjectID `bson:"created_by_id" json:"created_by_id"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
