package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/fanout/pkg/dag"
	apperrors "github.com/matzehuels/fanout/pkg/errors"
	"github.com/matzehuels/fanout/pkg/graph"
	"github.com/matzehuels/fanout/pkg/pipeline"
	"github.com/matzehuels/fanout/pkg/store"
)

// createGraphRequest accepts either an embedded node-link graph or the raw
// text adjacency format. Exactly one of Graph and Text must be set.
type createGraphRequest struct {
	Name  string       `json:"name"`
	Graph *graph.Graph `json:"graph,omitempty"`
	Text  string       `json:"text,omitempty"`
}

// graphResponse summarizes a stored graph.
type graphResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Nodes     int       `json:"nodes"`
	Edges     int       `json:"edges"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toGraphResponse(rec *store.Record) graphResponse {
	return graphResponse{
		ID:        rec.ID,
		Name:      rec.Name,
		Nodes:     len(rec.Graph.Nodes),
		Edges:     len(rec.Graph.Edges),
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

func (s *Server) handleCreateGraph(w http.ResponseWriter, r *http.Request) {
	var req createGraphRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "malformed request body"))
		return
	}
	if err := apperrors.ValidateGraphName(req.Name); err != nil {
		writeError(w, err)
		return
	}
	if (req.Graph == nil) == (req.Text == "") {
		writeError(w, apperrors.New(apperrors.ErrCodeInvalidInput, "exactly one of graph and text is required"))
		return
	}

	// Build the DAG once to validate structure before storing.
	var g *dag.DAG
	var err error
	if req.Graph != nil {
		g, err = graph.ToDAG(*req.Graph)
	} else {
		g, err = graph.ParseText(strings.NewReader(req.Text))
	}
	if err != nil {
		writeError(w, apperrors.FromDomain(err))
		return
	}
	if err := g.Validate(); err != nil {
		writeError(w, apperrors.FromDomain(err))
		return
	}

	rec := &store.Record{Name: req.Name, Graph: graph.FromDAG(g)}
	if err := s.store.Put(r.Context(), rec); err != nil {
		writeError(w, storeError(err))
		return
	}

	writeJSON(w, http.StatusCreated, toGraphResponse(rec))
}

func (s *Server) handleListGraphs(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, storeError(err))
		return
	}

	out := make([]graphResponse, len(recs))
	for i, rec := range recs {
		out[i] = toGraphResponse(rec)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetGraph(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, storeError(err))
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteGraph(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, storeError(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// countRequest holds the parameters of a count query.
type countRequest struct {
	Start   string   `json:"start"`
	Target  string   `json:"target"`
	Avoid   []string `json:"avoid,omitempty"`
	Via     []string `json:"via,omitempty"`
	Refresh bool     `json:"refresh,omitempty"`
}

// countResponse holds the count as a decimal string; counts routinely
// exceed what JSON numbers can carry.
type countResponse struct {
	Count  string `json:"count"`
	Cached bool   `json:"cached"`
}

func (s *Server) handleCount(w http.ResponseWriter, r *http.Request) {
	var req countRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "malformed request body"))
		return
	}

	result, err := s.runQuery(r, pipeline.Options{
		Query:   pipeline.QueryCount,
		Start:   req.Start,
		Target:  req.Target,
		Avoid:   req.Avoid,
		Via:     req.Via,
		Refresh: req.Refresh,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, countResponse{
		Count:  result.Count.String(),
		Cached: result.CacheInfo.QueryHit,
	})
}

// propagateRequest holds the parameters of a propagate query.
type propagateRequest struct {
	Source  string `json:"source"`
	Refresh bool   `json:"refresh,omitempty"`
}

// propagateResponse maps node IDs to counts as decimal strings.
type propagateResponse struct {
	Counts map[string]string `json:"counts"`
	Cached bool              `json:"cached"`
}

func (s *Server) handlePropagate(w http.ResponseWriter, r *http.Request) {
	var req propagateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "malformed request body"))
		return
	}

	result, err := s.runQuery(r, pipeline.Options{
		Query:   pipeline.QueryPropagate,
		Source:  req.Source,
		Refresh: req.Refresh,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	counts := make(map[string]string, len(result.Counts))
	for id, n := range result.Counts {
		counts[id] = n.String()
	}
	writeJSON(w, http.StatusOK, propagateResponse{
		Counts: counts,
		Cached: result.CacheInfo.QueryHit,
	})
}

// pathsRequest holds the parameters of a paths query.
type pathsRequest struct {
	Start  string   `json:"start"`
	Target string   `json:"target"`
	Avoid  []string `json:"avoid,omitempty"`
	Limit  int      `json:"limit,omitempty"`
}

// pathsResponse lists the enumerated paths in breadth-first order.
type pathsResponse struct {
	Paths [][]string `json:"paths"`
}

func (s *Server) handlePaths(w http.ResponseWriter, r *http.Request) {
	var req pathsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "malformed request body"))
		return
	}

	result, err := s.runQuery(r, pipeline.Options{
		Query:    pipeline.QueryPaths,
		Start:    req.Start,
		Target:   req.Target,
		Avoid:    req.Avoid,
		MaxPaths: req.Limit,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	if result.Paths == nil {
		result.Paths = [][]string{}
	}
	writeJSON(w, http.StatusOK, pathsResponse{Paths: result.Paths})
}

// runQuery loads the stored graph from the URL and executes the pipeline.
func (s *Server) runQuery(r *http.Request, opts pipeline.Options) (*pipeline.Result, error) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return nil, storeError(err)
	}

	g, err := graph.ToDAG(rec.Graph)
	if err != nil {
		return nil, apperrors.FromDomain(err)
	}
	opts.Graph = g
	opts.Logger = s.logger

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		return nil, classifyQueryError(err)
	}
	return result, nil
}

// classifyQueryError maps pipeline failures to coded errors. Option
// validation failures are the caller's fault; everything else goes through
// the domain classifier.
func classifyQueryError(err error) error {
	var coded *apperrors.Error
	if errors.As(err, &coded) {
		return coded
	}
	if strings.Contains(err.Error(), "invalid options") {
		return apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "invalid query parameters")
	}
	return apperrors.FromDomain(err)
}

// storeError maps store failures to coded errors.
func storeError(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return apperrors.Wrap(apperrors.ErrCodeGraphNotFound, err, "no such graph")
	case errors.Is(err, store.ErrDuplicateName):
		return apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "graph name already in use")
	default:
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "storage failure")
	}
}
