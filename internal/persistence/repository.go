// Package persistence stores named range definitions, keyed by
// (player, category, position, name), with an opaque JSON payload.
package persistence

import (
	"context"
	"encoding/json"
	"time"
)

// RangeKey identifies one stored range.
type RangeKey struct {
	Player   string `json:"player"`
	Category string `json:"category"`
	Position string `json:"position"`
	Name     string `json:"name"`
}

// RangeRecord is a stored range definition. Payload is opaque to this layer.
type RangeRecord struct {
	Key       RangeKey        `json:"key"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// RangeStore is the storage contract for range definitions.
type RangeStore interface {
	// Save inserts or replaces the record at its key.
	Save(ctx context.Context, rec RangeRecord) error
	// Load returns the record at key, or nil with no error when absent.
	Load(ctx context.Context, key RangeKey) (*RangeRecord, error)
	// List returns a player's records, optionally narrowed to one position.
	List(ctx context.Context, player, position string) ([]RangeRecord, error)
	// Delete removes the record at key, reporting whether it existed.
	Delete(ctx context.Context, key RangeKey) (bool, error)
	Close() error
}
