package handler

import (
	"net/http"

	"journal-service/internal/infrastructure/metrics"
	"journal-service/internal/transport/http/middleware"

	"go.uber.org/zap"
)

// Router sets up HTTP routes
type Router struct {
	authHandler    *AuthHandler
	accountHandler *AccountHandler
	entryHandler   *EntryHandler
	authMiddleware *middleware.AuthMiddleware
	metrics        *metrics.Metrics
	metricsPath    string
	logger         *zap.Logger
	mux            *http.ServeMux
}

// NewRouter creates a new router. A nil metrics disables /metrics.
func NewRouter(
	authHandler *AuthHandler,
	accountHandler *AccountHandler,
	entryHandler *EntryHandler,
	authMiddleware *middleware.AuthMiddleware,
	m *metrics.Metrics,
	metricsPath string,
	logger *zap.Logger,
) *Router {
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	return &Router{
		authHandler:    authHandler,
		accountHandler: accountHandler,
		entryHandler:   entryHandler,
		authMiddleware: authMiddleware,
		metrics:        m,
		metricsPath:    metricsPath,
		logger:         logger,
		mux:            http.NewServeMux(),
	}
}

// Setup configures all routes
func (r *Router) Setup() http.Handler {
	auth := r.authMiddleware.Auth

	r.mux.HandleFunc("POST /api/v1/auth/register", r.authHandler.Register)
	r.mux.HandleFunc("POST /api/v1/auth/login", r.authHandler.Login)
	r.mux.HandleFunc("POST /api/v1/auth/refresh", r.authHandler.RefreshToken)
	r.mux.HandleFunc("GET /api/v1/auth/verify-email", r.authHandler.VerifyEmail)
	r.mux.HandleFunc("POST /api/v1/auth/resend-verification", r.authHandler.ResendVerificationEmail)
	r.mux.HandleFunc("POST /api/v1/auth/logout", auth(r.authHandler.Logout))

	r.mux.HandleFunc("GET /api/v1/account", auth(r.accountHandler.GetAccount))
	r.mux.HandleFunc("PUT /api/v1/account", auth(r.accountHandler.UpdateAccount))

	r.mux.HandleFunc("GET /api/v1/entries", auth(r.entryHandler.ListEntries))
	r.mux.HandleFunc("GET /api/v1/entries/weekly", auth(r.entryHandler.WeeklySummary))
	r.mux.HandleFunc("GET /api/v1/entries/today", auth(r.entryHandler.GetToday))
	r.mux.HandleFunc("PUT /api/v1/entries/today/rating", auth(r.entryHandler.RateToday))
	r.mux.HandleFunc("PUT /api/v1/entries/today/journal", auth(r.entryHandler.WriteToday))
	r.mux.HandleFunc("POST /api/v1/entries/today/feedback", auth(r.entryHandler.FeedbackToday))

	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	if r.metrics != nil {
		r.mux.Handle("GET "+r.metricsPath, r.metrics.Handler())
	}

	return middleware.Logging(r.logger, r.metrics)(r.mux)
}
