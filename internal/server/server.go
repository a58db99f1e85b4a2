package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/Inventory/internal/batch"
	"github.com/Alias1177/Inventory/internal/catalog"
	"github.com/Alias1177/Inventory/models"
)

// Server holds the HTTP handlers and their dependencies. Everything is
// injected at construction; handlers share no global state.
type Server struct {
	orchestrator *batch.Orchestrator
	store        models.PredictionQuerier
	catalog      *catalog.Service
	notifier     models.BatchNotifier
	batchSize    int
	logger       zerolog.Logger
}

// Options holds dependencies for a new Server
type Options struct {
	Orchestrator *batch.Orchestrator
	Store        models.PredictionQuerier
	Catalog      *catalog.Service
	Notifier     models.BatchNotifier
	BatchSize    int
}

// New creates the HTTP server
func New(opts Options) *Server {
	if opts.BatchSize == 0 {
		opts.BatchSize = 40
	}

	return &Server{
		orchestrator: opts.Orchestrator,
		store:        opts.Store,
		catalog:      opts.Catalog,
		notifier:     opts.Notifier,
		batchSize:    opts.BatchSize,
		logger:       log.With().Str("component", "http_server").Logger(),
	}
}

// Routes builds the router
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/predict", s.handlePredict)
		r.Get("/predict", s.handlePredictInfo)
		r.Post("/batch-predict", s.handleBatchPredict)
		r.Get("/batch-predict", s.handleBatchInfo)
		r.Get("/predictions", s.handleListPredictions)
		r.Get("/predictions/dashboard", s.handleDashboard)
		r.Get("/products", s.handleProducts)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
