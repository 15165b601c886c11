package oid

import (
	"context"
	"fmt"
)

// AllocateAlbumID picks the lowest-friction free album id, claims it in
// the store, and returns it.
//
// An empty store yields AlbumIDSeed. Otherwise the id after the current
// maximum is used; once 999 is taken the allocator scans for a gap,
// first upward from max+1 to the range ceiling, then downward from
// max-1 to 1. Comparisons are strictly numeric throughout. A full range
// fails with ErrSpaceExhausted.
func AllocateAlbumID(ctx context.Context, store Store) (AlbumID, error) {
	ids, err := store.AlbumIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("list album ids: %w", err)
	}

	candidate, err := nextAlbumID(ids)
	if err != nil {
		return 0, err
	}
	if err := store.InsertAlbumID(ctx, candidate); err != nil {
		return 0, fmt.Errorf("claim album id %d: %w", candidate, err)
	}
	return candidate, nil
}

func nextAlbumID(ids []AlbumID) (AlbumID, error) {
	if len(ids) == 0 {
		return AlbumIDSeed, nil
	}

	used := make(map[AlbumID]struct{}, len(ids))
	maxID := AlbumID(0)
	for _, id := range ids {
		used[id] = struct{}{}
		if id > maxID {
			maxID = id
		}
	}

	if maxID < AlbumIDMax {
		return maxID + 1, nil
	}

	for id := maxID + 1; id <= AlbumIDMax; id++ {
		if _, taken := used[id]; !taken {
			return id, nil
		}
	}
	for id := maxID - 1; id >= AlbumIDMin; id-- {
		if _, taken := used[id]; !taken {
			return id, nil
		}
	}
	return 0, fmt.Errorf("%w: all album ids %d-%d in use", ErrSpaceExhausted, AlbumIDMin, AlbumIDMax)
}
