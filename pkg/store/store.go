// Package store persists named rooms and their computed plans.
//
// The store keeps the server's room catalog: each record pairs a
// calibrated room outline with its latest computed plan. Two backends
// are provided, an in-memory store for tests and single-process use and
// a MongoDB store for deployments.
package store

import (
	"context"
	"time"

	"github.com/deckwerk/deckplan/pkg/export"
	"github.com/deckwerk/deckplan/pkg/plan"
)

// Record is a stored room with its most recent plan.
type Record struct {
	ID        string       `json:"id" bson:"_id"`
	Name      string       `json:"name" bson:"name"`
	Room      plan.Room    `json:"room" bson:"room"`
	Plan      *export.Plan `json:"plan,omitempty" bson:"plan,omitempty"`
	CreatedAt time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time    `json:"updated_at" bson:"updated_at"`
}

// Store is the persistence interface for room records.
type Store interface {
	// Get retrieves a record by ID. Returns ErrCodeRoomNotFound if missing.
	Get(ctx context.Context, id string) (*Record, error)

	// Put inserts or replaces a record.
	Put(ctx context.Context, rec *Record) error

	// Delete removes a record. Returns ErrCodeRoomNotFound if missing.
	Delete(ctx context.Context, id string) error

	// List returns all records ordered by creation time.
	List(ctx context.Context) ([]*Record, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}
