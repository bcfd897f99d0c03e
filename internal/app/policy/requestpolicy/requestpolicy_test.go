package requestpolicy_test

import (
	"testing"

	"github.com/dalemusser/standin/internal/app/policy/requestpolicy"
	"github.com/dalemusser/standin/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCanRespond(t *testing.T) {
	proxy := primitive.NewObjectID()
	volunteer := primitive.NewObjectID()
	req := models.Request{ProxyID: proxy, VolunteerID: volunteer}

	if !requestpolicy.CanRespond(req, proxy) {
		t.Error("targeted proxy should be allowed to respond")
	}
	if requestpolicy.CanRespond(req, volunteer) {
		t.Error("the requesting volunteer must not respond to their own request")
	}
	if requestpolicy.CanRespond(req, primitive.NewObjectID()) {
		t.Error("unrelated users must not respond")
	}
}

func TestCanWithdrawAvailability(t *testing.T) {
	proxy := primitive.NewObjectID()
	av := models.Availability{ProxyID: proxy}

	if !requestpolicy.CanWithdrawAvailability(av, proxy) {
		t.Error("owner should be allowed to withdraw")
	}
	if requestpolicy.CanWithdrawAvailability(av, primitive.NewObjectID()) {
		t.Error("non-owner must not withdraw")
	}
}
