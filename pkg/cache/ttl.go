package cache

import "time"

// Cache TTLs per entry type.
//
// Graphs change when their source file changes, which the content hash
// already captures, so entries can live long. Query results are derived
// purely from the graph hash and the parameters, so they never go stale;
// the TTL only bounds storage growth.
const (
	// TTLGraph is the lifetime of parsed graph entries.
	TTLGraph = 7 * 24 * time.Hour

	// TTLQuery is the lifetime of query result entries.
	TTLQuery = 24 * time.Hour
)
