package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/fanout/pkg/cache"
	"github.com/matzehuels/fanout/pkg/dag"
	"github.com/matzehuels/fanout/pkg/dag/count"
	"github.com/matzehuels/fanout/pkg/graph"
	"github.com/matzehuels/fanout/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → validate → query pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	observability.Query().OnLoadStart(ctx, opts.Path)
	g, err := r.Load(ctx, opts)
	if err != nil {
		observability.Query().OnLoadComplete(ctx, opts.Path, 0, time.Since(loadStart), err)
		return nil, fmt.Errorf("load: %w", err)
	}
	observability.Query().OnLoadComplete(ctx, opts.Path, g.NodeCount(), time.Since(loadStart), nil)
	result.Graph = g
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()

	// Compute graph hash for cache keys and API responses. An empty hash
	// would stop cache keys from encoding the graph, so failure here is
	// fatal rather than a degraded mode.
	graphData, err := graph.MarshalGraph(g)
	if err != nil {
		return nil, fmt.Errorf("hash graph: %w", err)
	}
	result.GraphHash = cache.Hash(graphData)

	r.Logger.Info("loaded graph",
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"duration", result.Stats.LoadTime)

	// Stage 2: Validate. Counting is only defined on acyclic graphs, and
	// failing here gives one clear error instead of one per query.
	if err := g.Validate(); err != nil {
		return nil, err
	}

	// Stage 3: Query
	queryStart := time.Now()
	observability.Query().OnQueryStart(ctx, opts.Query, g.NodeCount())
	var queryErr error
	defer func() {
		observability.Query().OnQueryComplete(ctx, opts.Query, time.Since(queryStart), queryErr)
	}()
	switch opts.Query {
	case QueryCount:
		n, hit, err := r.CountWithCacheInfo(ctx, g, result.GraphHash, opts)
		if err != nil {
			queryErr = err
			return nil, fmt.Errorf("count: %w", err)
		}
		result.Count = n
		result.CacheInfo.QueryHit = hit

	case QueryPropagate:
		counts, hit, err := r.PropagateWithCacheInfo(ctx, g, result.GraphHash, opts)
		if err != nil {
			queryErr = err
			return nil, fmt.Errorf("propagate: %w", err)
		}
		result.Counts = counts
		result.CacheInfo.QueryHit = hit

	case QueryPaths:
		paths, err := r.EnumeratePaths(ctx, g, opts)
		if err != nil {
			queryErr = err
			return nil, fmt.Errorf("paths: %w", err)
		}
		result.Paths = paths
	}
	result.Stats.QueryTime = time.Since(queryStart)

	r.Logger.Info("ran query",
		"query", opts.Query,
		"cached", result.CacheInfo.QueryHit,
		"duration", result.Stats.QueryTime)

	return result, nil
}

// Load reads the graph from opts.Path, or returns opts.Graph directly.
func (r *Runner) Load(ctx context.Context, opts Options) (*dag.DAG, error) {
	if opts.Graph != nil {
		return opts.Graph, nil
	}
	return graph.ReadFile(opts.Path)
}

// CountWithCacheInfo runs a count query with caching and returns cache hit info.
func (r *Runner) CountWithCacheInfo(ctx context.Context, g *dag.DAG, graphHash string, opts Options) (*big.Int, bool, error) {
	cacheKey := r.Keyer.CountKey(graphHash, opts.CountKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if n, ok := r.getCachedCount(ctx, cacheKey); ok {
			return n, true, nil // Cache hit
		}
	}

	var n *big.Int
	var err error
	if len(opts.Via) == 2 {
		n, err = count.CountVia(g, opts.Start, opts.Target, opts.Via[0], opts.Via[1])
	} else {
		n, err = count.Count(g, opts.Start, opts.Target, opts.Avoid...)
	}
	if err != nil {
		return nil, false, err
	}

	r.setCached(ctx, cacheKey, countPayload{Count: n.String()})
	return n, false, nil // Cache miss
}

// Count is a convenience wrapper that discards the cache hit info.
func (r *Runner) Count(ctx context.Context, g *dag.DAG, graphHash string, opts Options) (*big.Int, error) {
	n, _, err := r.CountWithCacheInfo(ctx, g, graphHash, opts)
	return n, err
}

// PropagateWithCacheInfo runs a propagate query with caching and returns
// cache hit info.
func (r *Runner) PropagateWithCacheInfo(ctx context.Context, g *dag.DAG, graphHash string, opts Options) (map[string]*big.Int, bool, error) {
	cacheKey := r.Keyer.PropagateKey(graphHash, opts.PropagateKeyOpts())

	if !opts.Refresh {
		if counts, ok := r.getCachedCounts(ctx, cacheKey); ok {
			return counts, true, nil // Cache hit
		}
	}

	counts, err := count.Propagate(g, opts.Source, nil)
	if err != nil {
		return nil, false, err
	}

	payload := make(map[string]string, len(counts))
	for id, n := range counts {
		payload[id] = n.String()
	}
	r.setCached(ctx, cacheKey, payload)
	return counts, false, nil // Cache miss
}

// Propagate is a convenience wrapper that discards the cache hit info.
func (r *Runner) Propagate(ctx context.Context, g *dag.DAG, graphHash string, opts Options) (map[string]*big.Int, error) {
	counts, _, err := r.PropagateWithCacheInfo(ctx, g, graphHash, opts)
	return counts, err
}

// EnumeratePaths collects up to opts.MaxPaths simple paths.
// Enumeration streams and respects context cancellation between paths, so
// results are never cached.
func (r *Runner) EnumeratePaths(ctx context.Context, g *dag.DAG, opts Options) ([][]string, error) {
	seq, err := count.Enumerate(g, opts.Start, opts.Target)
	if err != nil {
		return nil, err
	}

	var paths [][]string
	for p := range seq {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(opts.Avoid) > 0 && containsAny(p, opts.Avoid) {
			continue
		}
		paths = append(paths, p)
		if len(paths) >= opts.MaxPaths {
			break
		}
	}
	return paths, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// countPayload is the cached form of a count result.
type countPayload struct {
	Count string `json:"count"`
}

func (r *Runner) getCachedCount(ctx context.Context, key string) (*big.Int, bool) {
	var data []byte
	err := cache.RetryWithBackoff(ctx, func() error {
		var hit bool
		var err error
		data, hit, err = r.Cache.Get(ctx, key)
		if err == nil && !hit {
			return cache.ErrCacheMiss
		}
		return err
	})
	if err != nil {
		observability.Cache().OnCacheMiss(ctx, "count")
		return nil, false
	}

	var payload countPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, false
	}
	n, ok := new(big.Int).SetString(payload.Count, 10)
	if !ok {
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "count")
	return n, true
}

func (r *Runner) getCachedCounts(ctx context.Context, key string) (map[string]*big.Int, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "propagate")
		return nil, false
	}

	var payload map[string]string
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, false
	}
	counts := make(map[string]*big.Int, len(payload))
	for id, s := range payload {
		n, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return nil, false
		}
		counts[id] = n
	}
	observability.Cache().OnCacheHit(ctx, "propagate")
	return counts, true
}

func (r *Runner) setCached(ctx context.Context, key string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, cache.TTLQuery); err != nil {
		r.Logger.Debug("cache set failed", "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, key, len(data))
}

func containsAny(path []string, avoid []string) bool {
	for _, id := range path {
		for _, a := range avoid {
			if id == a {
				return true
			}
		}
	}
	return false
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
