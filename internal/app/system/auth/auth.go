// internal/app/system/auth/auth.go
package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/standin/internal/app/system/httpjson"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenUser is what we decode from a bearer token and inject into
// r.Context(). The ID is the user's Mongo ObjectID in hex.
type TokenUser struct {
	ID   string
	Role string
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the token user and a "found?" flag.
func CurrentUser(r *http.Request) (*TokenUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*TokenUser)
	return u, ok
}

func withUser(r *http.Request, u *TokenUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// WithTestUser injects a user directly into the request context, bypassing
// token verification. For handler tests only.
func WithTestUser(r *http.Request, u *TokenUser) *http.Request {
	return withUser(r, u)
}

// claims is the JWT payload. Role rides alongside the registered claims;
// Subject carries the user ID.
type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies bearer tokens and provides the request
// middleware that loads the token user into context.
type TokenManager struct {
	secret []byte
	expiry time.Duration
	log    *zap.Logger
}

// NewTokenManager constructs a TokenManager. The secret must be non-empty;
// expiry is how long issued tokens stay valid.
func NewTokenManager(secret string, expiry time.Duration, logger *zap.Logger) *TokenManager {
	return &TokenManager{secret: []byte(secret), expiry: expiry, log: logger}
}

// Issue signs a token for the given user ID and role.
func (tm *TokenManager) Issue(userID, role string) (string, error) {
	now := time.Now().UTC()
	c := claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.expiry)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(tm.secret)
}

// Verify parses and validates a token string, returning the embedded user.
func (tm *TokenManager) Verify(token string) (*TokenUser, error) {
	var c claims
	_, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, err
	}
	return &TokenUser{ID: c.Subject, Role: c.Role}, nil
}

// LoadTokenUser injects the user into context when a valid bearer token is
// present. Requests without a token pass through anonymous; RequireSignedIn
// decides whether that matters.
func (tm *TokenManager) LoadTokenUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}
		u, err := tm.Verify(raw)
		if err != nil {
			// Invalid or expired tokens are rejected outright rather than
			// silently treated as anonymous.
			httpjson.WriteUnauthorized(w, "invalid or expired token")
			return
		}
		next.ServeHTTP(w, withUser(r, u))
	})
}

// RequireSignedIn ensures there is a user in context (set by LoadTokenUser).
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			httpjson.WriteUnauthorized(w, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole ensures the context user has one of the allowed roles. This is
// the route-level gate; workflow-level ownership checks remain authoritative
// for accept/decline.
func RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				httpjson.WriteUnauthorized(w, "authentication required")
				return
			}
			if _, ok := set[strings.ToLower(u.Role)]; !ok {
				httpjson.Write(w, http.StatusForbidden, map[string]string{
					"error":   "forbidden",
					"message": "insufficient role",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
