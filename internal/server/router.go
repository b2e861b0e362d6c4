package server

import (
	"context"
	"net/http"
	"time"

	"github.com/finadvisor/finadvisor/internal/advisor"
	"github.com/finadvisor/finadvisor/internal/budget"
	"github.com/finadvisor/finadvisor/internal/calculation"
	"github.com/finadvisor/finadvisor/internal/directory"
	"github.com/finadvisor/finadvisor/internal/storage"
	"github.com/rs/zerolog"
)

// RouterDependencies collects handler dependencies. Nil services fall back to
// in-memory or disabled implementations.
type RouterDependencies struct {
	Engine         *calculation.Engine
	Directory      *directory.Directory
	Budgets        *budget.Service
	Uploads        storage.BlobStore
	MaxUploadBytes int64
	Advisor        advisor.Advisor
	Auth           Authenticator
	Limiter        *RateLimiter
	Health         HealthService
	AllowedOrigins []string
}

// NewRouter wires the HTTP routes exposed by the API.
func NewRouter(logger zerolog.Logger, deps RouterDependencies) http.Handler {
	api := newAPI(logger, deps)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		payload := map[string]any{
			"status": "ok",
		}
		if deps.Health != nil {
			if err := deps.Health.Probe(ctx); err != nil {
				logger.Error().Err(err).Msg("health probe failed")
				status = http.StatusServiceUnavailable
				payload["status"] = "degraded"
				payload["error"] = err.Error()
			}
		}
		respondJSON(w, status, payload)
	})

	routes := http.NewServeMux()
	routes.HandleFunc("POST /api/tax/calculate", api.handleTax)
	routes.HandleFunc("POST /api/loan/calculate", api.handleLoan)
	routes.HandleFunc("POST /api/loan/schedule", api.handleLoanSchedule)
	routes.HandleFunc("GET /api/loan/banks", api.handleBanks)
	routes.HandleFunc("POST /api/worksheet", api.handleWorksheet)

	auth := deps.Auth
	routes.HandleFunc("GET /api/budget", requireAuth(auth, api.handleBudgetSummary))
	routes.HandleFunc("GET /api/budget/categories", requireAuth(auth, api.handleListCategories))
	routes.HandleFunc("POST /api/budget/categories", requireAuth(auth, api.handleAddCategory))
	routes.HandleFunc("PUT /api/budget/categories/{key}", requireAuth(auth, api.handleUpdateCategory))
	routes.HandleFunc("DELETE /api/budget/categories/{key}", requireAuth(auth, api.handleDeleteCategory))
	routes.HandleFunc("POST /api/budget/categories/{key}/spend", requireAuth(auth, api.handleRecordSpend))
	routes.HandleFunc("POST /api/uploads", requireAuth(auth, api.handleUpload))
	routes.HandleFunc("GET /api/uploads", requireAuth(auth, api.handleListUploads))
	routes.HandleFunc("GET /api/uploads/{key...}", requireAuth(auth, api.handleDownload))
	routes.HandleFunc("POST /api/chat", requireAuth(auth, api.handleChat))
	routes.HandleFunc("POST /api/chat/statements", requireAuth(auth, api.handleStatementChat))

	var apiHandler http.Handler = routes
	if deps.Limiter != nil {
		apiHandler = rateLimitMiddleware(deps.Limiter, apiHandler)
	}
	mux.Handle("/api/", apiHandler)

	handler := recoverMiddleware(logger, mux)
	handler = loggingMiddleware(logger, handler)
	if len(deps.AllowedOrigins) > 0 {
		handler = corsMiddleware(deps.AllowedOrigins)(handler)
	}
	return requestIDMiddleware(handler)
}

func newAPI(logger zerolog.Logger, deps RouterDependencies) *API {
	a := &API{
		logger:    logger.With().Str("component", "api").Logger(),
		engine:    deps.Engine,
		directory: deps.Directory,
		budgets:   deps.Budgets,
		uploads:   deps.Uploads,
		maxUpload: deps.MaxUploadBytes,
		advisor:   deps.Advisor,
	}
	if a.engine == nil {
		a.engine = calculation.NewEngine()
	}
	if a.directory == nil {
		a.directory = directory.Default()
	}
	if a.budgets == nil {
		a.budgets = budget.NewService(budget.NewMemoryStore())
	}
	if a.maxUpload <= 0 {
		a.maxUpload = storage.DefaultMaxBytes
	}
	if a.uploads == nil {
		a.uploads = unavailableStore{}
	}
	if a.advisor == nil {
		a.advisor = advisor.Unavailable{}
	}
	a.statements = advisor.StatementAdvisor{Base: a.advisor, Store: a.uploads}
	return a
}
