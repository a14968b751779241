// Package pipeline provides the core query pipeline for fanout.
//
// This package implements the complete load → validate → query pipeline that
// can be used by CLI and API components. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read a graph from a file or accept a pre-built DAG
//  2. Validate: Reject cyclic graphs before any counting runs
//  3. Query: Count paths, propagate counts, or enumerate paths
//
// Query results are cached by graph content hash and query parameters, so
// repeated queries against an unchanged graph never recount.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Path:   "wiring.txt",
//	    Query:  pipeline.QueryCount,
//	    Start:  "you",
//	    Target: "out",
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Count)
package pipeline

import (
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/fanout/pkg/cache"
	"github.com/matzehuels/fanout/pkg/dag"
)

// Query kinds.
const (
	QueryCount     = "count"
	QueryPropagate = "propagate"
	QueryPaths     = "paths"
)

// ValidQueries is the set of supported query kinds.
var ValidQueries = map[string]bool{
	QueryCount:     true,
	QueryPropagate: true,
	QueryPaths:     true,
}

// DefaultMaxPaths bounds path enumeration output. Path counts grow
// exponentially; enumerating them all is rarely what anyone wants.
const DefaultMaxPaths = 1000

// Options contains all configuration for the query pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Input options. Exactly one of Path or Graph must be set.
	Path  string   `json:"path,omitempty"`
	Graph *dag.DAG `json:"-"`

	// Query options
	Query  string   `json:"query"`
	Start  string   `json:"start,omitempty"`
	Target string   `json:"target,omitempty"`
	Avoid  []string `json:"avoid,omitempty"`
	Via    []string `json:"via,omitempty"` // exactly two waypoints, or empty; incompatible with Avoid

	// Propagate options
	Source string `json:"source,omitempty"`

	// Paths options
	MaxPaths int `json:"max_paths,omitempty"`

	// Refresh bypasses the cache and recomputes.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the loaded graph.
	Graph *dag.DAG

	// GraphHash is the content hash of the graph.
	GraphHash string

	// Count is the result of a count query.
	Count *big.Int

	// Counts is the per-node result of a propagate query.
	Counts map[string]*big.Int

	// Paths is the result of a paths query.
	Paths [][]string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether the query hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount int
	EdgeCount int
	LoadTime  time.Duration
	QueryTime time.Duration
}

// CacheInfo tracks cache hits for the query stage.
type CacheInfo struct {
	QueryHit bool // Whether the query result came from cache
}

// ValidateQuery checks that a query kind is valid.
func ValidateQuery(query string) error {
	if !ValidQueries[query] {
		return fmt.Errorf("invalid query: %q (must be one of: count, propagate, paths)", query)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.Path == "" && o.Graph == nil {
		return fmt.Errorf("path or graph is required")
	}
	if err := ValidateQuery(o.Query); err != nil {
		return err
	}

	switch o.Query {
	case QueryCount, QueryPaths:
		if o.Start == "" || o.Target == "" {
			return fmt.Errorf("start and target are required for %s queries", o.Query)
		}
		if len(o.Via) != 0 && len(o.Via) != 2 {
			return fmt.Errorf("via requires exactly two waypoints, got %d", len(o.Via))
		}
		if o.Query == QueryPaths && len(o.Via) != 0 {
			return fmt.Errorf("via is not supported for paths queries")
		}
		// Waypoint segmentation builds its own per-segment avoid-sets and
		// cannot honor a caller-supplied one; reject instead of silently
		// dropping the constraint.
		if len(o.Via) != 0 && len(o.Avoid) != 0 {
			return fmt.Errorf("avoid cannot be combined with via")
		}
	case QueryPropagate:
		if o.Source == "" {
			return fmt.Errorf("source is required for propagate queries")
		}
	}

	if o.MaxPaths == 0 {
		o.MaxPaths = DefaultMaxPaths
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// CountKeyOpts returns cache key options for a count query.
func (o *Options) CountKeyOpts() cache.CountKeyOpts {
	return cache.CountKeyOpts{
		Start:  o.Start,
		Target: o.Target,
		Avoid:  o.Avoid,
		Via:    o.Via,
	}
}

// PropagateKeyOpts returns cache key options for a propagate query.
func (o *Options) PropagateKeyOpts() cache.PropagateKeyOpts {
	return cache.PropagateKeyOpts{
		Source: o.Source,
	}
}
