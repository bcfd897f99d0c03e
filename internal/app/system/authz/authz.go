// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/dalemusser/standin/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the user's role (lowercased), Mongo ObjectID, and a found
// flag. If no user is present in context or the user ID is malformed, it
// returns "visitor", NilObjectID, false — callers can trust that ok=true
// means a valid, authenticated user with a valid ObjectID.
func UserCtx(r *http.Request) (role string, userID primitive.ObjectID, ok bool) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		// Malformed user ID in the token - fail closed.
		return "visitor", primitive.NilObjectID, false
	}
	return strings.ToLower(u.Role), userID, true
}

// IsAdmin reports whether the current request's user is an admin.
func IsAdmin(r *http.Request) bool {
	role, _, ok := UserCtx(r)
	return ok && role == "admin"
}

// IsVolunteer reports whether the current request's user is a volunteer.
func IsVolunteer(r *http.Request) bool {
	role, _, ok := UserCtx(r)
	return ok && role == "volunteer"
}

// IsProxy reports whether the current request's user is a proxy.
func IsProxy(r *http.Request) bool {
	role, _, ok := UserCtx(r)
	return ok && role == "proxy"
}

// HasAnyRole reports whether the current request's user has any of the given
// roles. Returns false if no user is present.
func HasAnyRole(r *http.Request, roles ...string) bool {
	role, _, ok := UserCtx(r)
	if !ok {
		return false
	}
	for _, want := range roles {
		if role == strings.ToLower(strings.TrimSpace(want)) {
			return true
		}
	}
	return false
}
