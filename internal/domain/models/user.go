// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles. Admins schedule events and assignments; volunteers hold
// assignments; proxies cover them.
const (
	RoleAdmin     = "admin"
	RoleVolunteer = "volunteer"
	RoleProxy     = "proxy"
)

// ValidRole reports whether role is one of the recognized user roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleVolunteer || role == RoleProxy
}

// User represents admins, volunteers, and proxies.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	EmailCI      string             `bson:"email_ci" json:"-"` // lowercase, diacritics-stripped; unique
	PasswordHash string             `bson:"password_hash" json:"-"`
	Role         string             `bson:"role" json:"role"` // admin | volunteer | proxy
	FirstName    string             `bson:"first_name" json:"first_name"`
	LastName     string             `bson:"last_name" json:"last_name"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
