package authz_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/standin/internal/app/system/auth"
	"github.com/dalemusser/standin/internal/app/system/authz"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// requestWithUser builds a request whose context carries a token user,
// by running it through the real middleware.
func requestWithUser(t *testing.T, id, role string) *http.Request {
	t.Helper()
	tm := auth.NewTokenManager("test-secret", time.Hour, zap.NewNop())
	token, err := tm.Issue(id, role)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	var out *http.Request
	h := tm.LoadTokenUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		out = r
	}))
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	h.ServeHTTP(httptest.NewRecorder(), req)
	if out == nil {
		t.Fatal("middleware rejected the token")
	}
	return out
}

func TestUserCtx(t *testing.T) {
	id := primitive.NewObjectID()
	r := requestWithUser(t, id.Hex(), "Proxy")

	role, uid, ok := authz.UserCtx(r)
	if !ok {
		t.Fatal("expected ok")
	}
	if role != "proxy" {
		t.Errorf("role: got %q (want lowercased)", role)
	}
	if uid != id {
		t.Errorf("userID: got %v, want %v", uid, id)
	}
}

func TestUserCtx_Anonymous(t *testing.T) {
	role, uid, ok := authz.UserCtx(httptest.NewRequest("GET", "/", nil))
	if ok {
		t.Error("expected ok=false")
	}
	if role != "visitor" {
		t.Errorf("role: got %q, want visitor", role)
	}
	if uid != primitive.NilObjectID {
		t.Errorf("userID: got %v, want nil", uid)
	}
}

func TestUserCtx_MalformedID(t *testing.T) {
	r := requestWithUser(t, "not-an-objectid", "admin")
	if _, _, ok := authz.UserCtx(r); ok {
		t.Error("expected fail-closed on malformed user ID")
	}
}

func TestRoleHelpers(t *testing.T) {
	id := primitive.NewObjectID().Hex()

	admin := requestWithUser(t, id, "admin")
	if !authz.IsAdmin(admin) || authz.IsProxy(admin) || authz.IsVolunteer(admin) {
		t.Error("admin helper mismatch")
	}

	proxy := requestWithUser(t, id, "proxy")
	if !authz.IsProxy(proxy) || authz.IsAdmin(proxy) {
		t.Error("proxy helper mismatch")
	}

	if !authz.HasAnyRole(proxy, "admin", "proxy") {
		t.Error("HasAnyRole should match proxy")
	}
	if authz.HasAnyRole(proxy, "admin", "volunteer") {
		t.Error("HasAnyRole should not match")
	}
}
