package library

import (
	"errors"
	"time"

	"pencast/internal/album"
	"pencast/internal/oid"
)

// ErrAlbumNotFound reports a lookup for an id with no live album.
var ErrAlbumNotFound = errors.New("album not found")

// Album is one library entry. Tracks is populated by GetAlbum; list
// queries fill TrackCount only.
type Album struct {
	ID         oid.AlbumID
	Title      string
	Artist     string
	Mode       album.PlaybackMode
	Tracks     []album.Track
	TrackCount int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewAlbum carries the fields needed to create a library entry. The
// album id is allocated by the store, never chosen by the caller.
type NewAlbum struct {
	Title  string
	Artist string
	Mode   album.PlaybackMode
	Tracks []album.Track
}

func (n NewAlbum) validate() error {
	if n.Title == "" {
		return errors.New("album title required")
	}
	if len(n.Tracks) == 0 {
		return album.ErrNoTracks
	}
	if _, err := album.ParsePlaybackMode(string(n.Mode)); err != nil {
		return err
	}
	return nil
}
