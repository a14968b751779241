// Package server implements the fanout HTTP API.
//
// The API stores named graphs and runs counting queries against them:
//
//	POST   /graphs                  store a graph (JSON node-link or text)
//	GET    /graphs                  list stored graphs
//	GET    /graphs/{id}             fetch one graph
//	DELETE /graphs/{id}             remove a graph
//	POST   /graphs/{id}/count       count paths between two nodes
//	POST   /graphs/{id}/propagate   per-node counts from a source
//	POST   /graphs/{id}/paths       enumerate simple paths
//	GET    /healthz                 liveness probe
//
// Errors are returned as JSON with a machine-readable code:
//
//	{"error": {"code": "CYCLIC_GRAPH", "message": "graph is not acyclic"}}
package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/fanout/pkg/pipeline"
	"github.com/matzehuels/fanout/pkg/store"
)

// Server holds the API's dependencies.
type Server struct {
	store  store.Store
	runner *pipeline.Runner
	logger *log.Logger
}

// New creates a server. A nil store falls back to in-memory storage and a
// nil runner to an uncached one, which keeps tests and local use simple.
func New(st store.Store, runner *pipeline.Runner, logger *log.Logger) *Server {
	if st == nil {
		st = store.NewMemoryStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	return &Server{store: st, runner: runner, logger: logger}
}

// Handler builds the chi router with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", s.handleHealth)

	r.Route("/graphs", func(r chi.Router) {
		r.Post("/", s.handleCreateGraph)
		r.Get("/", s.handleListGraphs)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetGraph)
			r.Delete("/", s.handleDeleteGraph)
			r.Post("/count", s.handleCount)
			r.Post("/propagate", s.handlePropagate)
			r.Post("/paths", s.handlePaths)
		})
	})

	return r
}

// logRequests logs one line per request with the structured logger.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
