// internal/app/policy/requestpolicy/requestpolicy.go
package requestpolicy

import (
	"github.com/dalemusser/standin/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CanRespond reports whether the caller may accept or decline the given
// request. Only the targeted proxy may respond. This predicate is the
// authoritative ownership check, evaluated inside the workflow engine;
// the route-level role middleware is defense-in-depth only.
func CanRespond(req models.Request, callerID primitive.ObjectID) bool {
	return req.ProxyID == callerID
}

// CanWithdrawAvailability reports whether the caller may delete the given
// availability record. Only the proxy who declared it may withdraw it.
func CanWithdrawAvailability(av models.Availability, callerID primitive.ObjectID) bool {
	return av.ProxyID == callerID
}
