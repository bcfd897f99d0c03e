// internal/domain/models/availability.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Availability is a proxy's declared willingness to cover a specific event.
// At most one exists per (proxy, event) pair, enforced by a unique index.
type Availability struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProxyID primitive.ObjectID `bson:"proxy_id" json:"proxy_id"`
	EventID primitive.ObjectID `bson:"event_id" json:"event_id"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
