package oid

import "context"

// Store is the durable identifier state both allocators consult. The
// library package implements it over SQLite; tests implement it in
// memory.
//
// Allocation is read-then-decide-then-insert, so implementations handed
// to the allocators must represent a single transaction (or otherwise
// serialize concurrent callers). Insert methods return an error wrapping
// ErrDuplicate when the id, name, or code is already present.
type Store interface {
	// AlbumIDs returns every live album id in ascending order.
	AlbumIDs(ctx context.Context) ([]AlbumID, error)

	// ActionCodes returns the full name-to-code mapping.
	ActionCodes(ctx context.Context) (map[string]int, error)

	// InsertAlbumID claims id for a new album.
	InsertAlbumID(ctx context.Context, id AlbumID) error

	// InsertActionCode records a newly assigned code.
	InsertActionCode(ctx context.Context, ac ActionCode) error
}
