// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	assignmentsfeature "github.com/dalemusser/standin/internal/app/features/assignments"
	authfeature "github.com/dalemusser/standin/internal/app/features/auth"
	availabilityfeature "github.com/dalemusser/standin/internal/app/features/availability"
	eventsfeature "github.com/dalemusser/standin/internal/app/features/events"
	healthfeature "github.com/dalemusser/standin/internal/app/features/health"
	notificationsfeature "github.com/dalemusser/standin/internal/app/features/notifications"
	requestsfeature "github.com/dalemusser/standin/internal/app/features/requests"
	assignmentstore "github.com/dalemusser/standin/internal/app/store/assignments"
	availabilitystore "github.com/dalemusser/standin/internal/app/store/availability"
	notificationstore "github.com/dalemusser/standin/internal/app/store/notifications"
	requeststore "github.com/dalemusser/standin/internal/app/store/requests"
	"github.com/dalemusser/standin/internal/app/system/auth"
	"github.com/dalemusser/standin/internal/app/workflow"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// StandIn builds the token manager, applies the bearer-token middleware
// globally, and mounts one subrouter per feature: auth, events,
// assignments, availability, requests, and notifications.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	tokens := auth.NewTokenManager(appCfg.JWTSecret, appCfg.JWTExpiry, logger)

	// The request workflow engine sits over the stores shared with the
	// feature handlers. Collections are cheap handles, so each consumer
	// constructs its own stores.
	assignments := assignmentstore.New(db)
	engine := workflow.New(
		assignments,
		availabilitystore.New(db),
		requeststore.New(db),
		notificationstore.New(db),
		logger,
	)

	r := chi.NewRouter()

	// Global auth middleware: loads the bearer-token user into context when
	// a token is present. Route groups decide whether sign-in is required.
	r.Use(tokens.LoadTokenUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Registration and login
	authHandler := authfeature.NewHandler(db, tokens, logger)
	r.Mount("/auth", authfeature.Routes(authHandler))

	// Event calendar
	eventsHandler := eventsfeature.NewHandler(db, logger)
	r.Mount("/events", eventsfeature.Routes(eventsHandler))

	// Volunteer-event assignments
	assignmentsHandler := assignmentsfeature.NewHandler(db, logger)
	r.Mount("/assignments", assignmentsfeature.Routes(assignmentsHandler))

	// Proxy availability declarations
	availabilityHandler := availabilityfeature.NewHandler(db, logger)
	r.Mount("/availability", availabilityfeature.Routes(availabilityHandler))

	// Proxy requests and their accept/decline lifecycle
	requestsHandler := requestsfeature.NewHandler(engine, assignments, logger)
	r.Mount("/requests", requestsfeature.Routes(requestsHandler))

	// In-app notifications
	notificationsHandler := notificationsfeature.NewHandler(db, logger)
	r.Mount("/notifications", notificationsfeature.Routes(notificationsHandler))

	return r, nil
}
