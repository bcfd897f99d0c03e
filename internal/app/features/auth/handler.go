// internal/app/features/auth/handler.go

// Package auth implements registration and password login, returning bearer
// tokens for the rest of the API.
package auth

import (
	"context"
	"net/http"
	"strings"

	systemauth "github.com/dalemusser/standin/internal/app/system/auth"
	"github.com/dalemusser/standin/internal/app/system/httpjson"
	"github.com/dalemusser/standin/internal/app/system/ratelimit"
	"github.com/dalemusser/standin/internal/app/system/timeouts"
	"github.com/dalemusser/standin/internal/app/store/users"
	"github.com/dalemusser/standin/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"

	"github.com/dalemusser/standin/internal/app/system/apperr"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the cost used for all stored password hashes.
const bcryptCost = 12

// Handler owns the auth endpoints.
type Handler struct {
	Users  *users.Store
	Tokens *systemauth.TokenManager
	Limits *ratelimit.LoginLimiter
	Log    *zap.Logger
}

// NewHandler constructs an auth Handler with the default login limits.
func NewHandler(db *mongo.Database, tokens *systemauth.TokenManager, logger *zap.Logger) *Handler {
	return &Handler{
		Users:  users.New(db),
		Tokens: tokens,
		Limits: ratelimit.NewLoginLimiter(),
		Log:    logger,
	}
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// tokenResponse is the body returned by both register and login. The user's
// password hash is excluded by the model's json tags.
type tokenResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Register handles POST /auth/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var in registerRequest
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	if err := validateRegister(in); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		httpjson.WriteError(w, h.Log, apperr.Internal("password hash failed", err))
		return
	}

	user, err := h.Users.Create(ctx, models.User{
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: string(hash),
		Role:         in.Role,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
	})
	if err != nil {
		if wafflemongo.IsDup(err) {
			httpjson.WriteError(w, h.Log, apperr.Conflict("email already exists"))
			return
		}
		httpjson.WriteError(w, h.Log, apperr.Internal("user create failed", err))
		return
	}

	token, err := h.Tokens.Issue(user.ID.Hex(), user.Role)
	if err != nil {
		httpjson.WriteError(w, h.Log, apperr.Internal("token issue failed", err))
		return
	}

	httpjson.Write(w, http.StatusCreated, tokenResponse{Token: token, User: user})
}

// Login handles POST /auth/login. Unknown emails and wrong passwords get the
// same 401 so the endpoint does not confirm which addresses are registered.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var in loginRequest
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	if h.Limits != nil {
		if ok, msg := h.Limits.Check(r, in.Email); !ok {
			httpjson.WriteTooManyRequests(w, msg)
			return
		}
	}

	user, err := h.Users.GetByEmail(ctx, in.Email)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.WriteUnauthorized(w, "invalid credentials")
			return
		}
		httpjson.WriteError(w, h.Log, apperr.Internal("user lookup failed", err))
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		httpjson.WriteUnauthorized(w, "invalid credentials")
		return
	}

	token, err := h.Tokens.Issue(user.ID.Hex(), user.Role)
	if err != nil {
		httpjson.WriteError(w, h.Log, apperr.Internal("token issue failed", err))
		return
	}

	if h.Limits != nil {
		h.Limits.ResetEmail(in.Email)
	}

	httpjson.Write(w, http.StatusOK, tokenResponse{Token: token, User: user})
}

func validateRegister(in registerRequest) error {
	email := strings.TrimSpace(in.Email)
	if email == "" || !strings.Contains(email, "@") {
		return apperr.Validation("a valid email is required")
	}
	if len(in.Password) < 8 {
		return apperr.Validation("password must be at least 8 characters")
	}
	if !models.ValidRole(in.Role) {
		return apperr.Validation("role must be admin, volunteer, or proxy")
	}
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return apperr.Validation("first and last name are required")
	}
	return nil
}
