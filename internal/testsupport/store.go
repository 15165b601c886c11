package testsupport

import (
	"context"
	"fmt"
	"testing"

	"pencast/internal/album"
	"pencast/internal/config"
	"pencast/internal/library"
)

// MustOpenStore opens a library.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *library.Store {
	t.Helper()

	store, err := library.Open(cfg)
	if err != nil {
		t.Fatalf("library.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// SeedAlbum creates an album with n generic tracks for tests.
func SeedAlbum(t testing.TB, store *library.Store, title string, n int) *library.Album {
	t.Helper()

	tracks := make([]album.Track, 0, n)
	for i := 0; i < n; i++ {
		tracks = append(tracks, album.Track{
			Number:     i + 1,
			SourceFile: trackFile(i),
			Title:      trackTitle(i),
			DurationMS: 30_000,
		})
	}
	entry, err := store.CreateAlbum(context.Background(), library.NewAlbum{
		Title:  title,
		Artist: "Test Artist",
		Mode:   album.PlaybackSequentialStop,
		Tracks: tracks,
	})
	if err != nil {
		t.Fatalf("store.CreateAlbum: %v", err)
	}
	return entry
}

func trackFile(i int) string {
	return fmt.Sprintf("%02d-track.mp3", i+1)
}

func trackTitle(i int) string {
	return fmt.Sprintf("Track %d", i+1)
}
