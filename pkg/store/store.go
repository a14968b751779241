// Package store provides persistence for named graphs.
//
// The API server and the CLI `graph` commands keep graphs between
// invocations. The Store interface supports:
//   - Put/Get/Delete by record ID
//   - Lookup by user-facing name
//   - Listing all stored graphs
//
// Two backends are provided:
//   - memory: in-memory storage for development/testing
//   - mongo: MongoDB-backed storage for production deployments
//
// # Usage
//
//	// Development
//	st := store.NewMemoryStore()
//
//	// Production
//	st, err := store.NewMongoStore(ctx, store.MongoConfig{
//	    URI:      "mongodb://localhost:27017",
//	    Database: "fanout",
//	})
//
//	rec := &store.Record{Name: "wiring", Graph: graph.FromDAG(g)}
//	if err := st.Put(ctx, rec); err != nil {
//	    return err
//	}
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/fanout/pkg/graph"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateName is returned when a name is already taken by
	// another record.
	ErrDuplicateName = errors.New("name already in use")
)

// Record is a stored graph with its bookkeeping fields.
type Record struct {
	ID        string      `json:"id" bson:"_id"`
	Name      string      `json:"name" bson:"name"`
	Graph     graph.Graph `json:"graph" bson:"graph"`
	CreatedAt time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" bson:"updated_at"`
}

// Store is the interface for graph storage backends.
// Implementations must be safe for concurrent use.
type Store interface {
	// Put stores a record, assigning an ID and timestamps if missing.
	// Putting a new record under a name held by a different record
	// returns ErrDuplicateName.
	Put(ctx context.Context, rec *Record) error

	// Get retrieves a record by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (*Record, error)

	// GetByName retrieves a record by name. Returns ErrNotFound if absent.
	GetByName(ctx context.Context, name string) (*Record, error)

	// List returns all records, sorted by name.
	List(ctx context.Context) ([]*Record, error)

	// Delete removes a record by ID. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// prepare fills in the ID and timestamps of a record before storage.
func prepare(rec *Record) {
	now := time.Now().UTC()
	if rec.ID == "" {
		rec.ID = uuid.NewString()
		rec.CreatedAt = now
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
}
