// Package history persists the chronological translation history in a
// remote document collection.
package history

import (
	"context"
	"time"
)

// Record is one persisted translation. Records are immutable once created;
// the store assigns both the identifier and the timestamp.
type Record struct {
	ID         string    `json:"id"`
	Original   string    `json:"original"`
	Translated string    `json:"translated"`
	CreatedAt  time.Time `json:"created_at"`
}

// Store persists and retrieves translation records.
//
// ListAll returns every record ordered by CreatedAt descending (newest
// first). Records missing either text field are silently excluded rather
// than failing the whole read.
//
// ClearAll snapshots the identifiers visible at call time and deletes
// exactly those; records inserted concurrently after the snapshot are not
// guaranteed to be removed. Clearing an empty store is a no-op.
type Store interface {
	Append(ctx context.Context, original, translated string) error
	ListAll(ctx context.Context) ([]Record, error)
	ClearAll(ctx context.Context) error
	Close() error
}
