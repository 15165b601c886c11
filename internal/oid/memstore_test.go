package oid_test

import (
	"context"
	"fmt"
	"sort"

	"pencast/internal/oid"
)

// memStore is an in-memory Store for allocator tests.
type memStore struct {
	albums map[oid.AlbumID]struct{}
	codes  map[string]int
}

func newMemStore() *memStore {
	return &memStore{
		albums: make(map[oid.AlbumID]struct{}),
		codes:  make(map[string]int),
	}
}

func (m *memStore) AlbumIDs(context.Context) ([]oid.AlbumID, error) {
	ids := make([]oid.AlbumID, 0, len(m.albums))
	for id := range m.albums {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (m *memStore) ActionCodes(context.Context) (map[string]int, error) {
	out := make(map[string]int, len(m.codes))
	for name, code := range m.codes {
		out[name] = code
	}
	return out, nil
}

func (m *memStore) InsertAlbumID(_ context.Context, id oid.AlbumID) error {
	if _, exists := m.albums[id]; exists {
		return fmt.Errorf("%w: album id %d", oid.ErrDuplicate, id)
	}
	m.albums[id] = struct{}{}
	return nil
}

func (m *memStore) InsertActionCode(_ context.Context, ac oid.ActionCode) error {
	if _, exists := m.codes[ac.Name]; exists {
		return fmt.Errorf("%w: name %q", oid.ErrDuplicate, ac.Name)
	}
	for _, code := range m.codes {
		if code == ac.Code {
			return fmt.Errorf("%w: code %d", oid.ErrDuplicate, ac.Code)
		}
	}
	m.codes[ac.Name] = ac.Code
	return nil
}
