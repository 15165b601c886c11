package tags_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2"

	"pencast/internal/tags"
)

func writeTaggedFile(t *testing.T, name string, fill func(*id3v2.Tag)) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte{}, 0o644); err != nil {
		t.Fatalf("create file: %v", err)
	}
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("open tag: %v", err)
	}
	fill(tag)
	if err := tag.Save(); err != nil {
		t.Fatalf("save tag: %v", err)
	}
	if err := tag.Close(); err != nil {
		t.Fatalf("close tag: %v", err)
	}
	return path
}

func TestReadFileExtractsFrames(t *testing.T) {
	path := writeTaggedFile(t, "03-some_song.mp3", func(tag *id3v2.Tag) {
		tag.SetTitle("Some Song")
		tag.SetAlbum("Great Album")
		tag.SetArtist("The Band")
		tag.AddTextFrame("TRCK", id3v2.EncodingUTF8, "3/12")
		tag.AddTextFrame("TPOS", id3v2.EncodingUTF8, "2")
	})

	meta, err := tags.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if meta.Track.Title != "Some Song" {
		t.Fatalf("unexpected title %q", meta.Track.Title)
	}
	if meta.AlbumTitle != "Great Album" || meta.AlbumArtist != "The Band" {
		t.Fatalf("unexpected album fields: %+v", meta)
	}
	if meta.Track.Number != 3 {
		t.Fatalf("expected track number 3, got %d", meta.Track.Number)
	}
	if meta.Track.Disc != 2 {
		t.Fatalf("expected disc 2, got %d", meta.Track.Disc)
	}
	if meta.Track.SourceFile != "03-some_song.mp3" {
		t.Fatalf("unexpected source file %q", meta.Track.SourceFile)
	}
}

func TestReadFileUntaggedFallsBackToFilename(t *testing.T) {
	path := filepath.Join(t.TempDir(), "07 - hidden_gem.mp3")
	if err := os.WriteFile(path, []byte("not really audio"), 0o644); err != nil {
		t.Fatalf("create file: %v", err)
	}

	meta, err := tags.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if meta.Track.Title != "Hidden Gem" {
		t.Fatalf("expected fallback title from filename, got %q", meta.Track.Title)
	}
	if meta.Track.Number != 0 || meta.Track.Disc != 0 {
		t.Fatalf("expected unset ordering fields, got %+v", meta.Track)
	}
}

func TestReadFileTruncatedTagFallsBackToFilename(t *testing.T) {
	path := filepath.Join(t.TempDir(), "09-stub.mp3")
	if err := os.WriteFile(path, []byte("ID3"), 0o644); err != nil {
		t.Fatalf("create file: %v", err)
	}

	meta, err := tags.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if meta.Track.Title != "Stub" {
		t.Fatalf("expected fallback title from filename, got %q", meta.Track.Title)
	}
}

func TestReadFileMissingFileFails(t *testing.T) {
	if _, err := tags.ReadFile(filepath.Join(t.TempDir(), "absent.mp3")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestTitleFromFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"01 - first_song.mp3", "First Song"},
		{"02.second-song.flac", "Second Song"},
		{"Already Nice.mp3", "Already Nice"},
		{"weird___spacing.ogg", "Weird Spacing"},
		{"MiXeD CaSe.mp3", "MiXeD CaSe"},
	}
	for _, tc := range cases {
		if got := tags.TitleFromFilename(tc.in); got != tc.want {
			t.Fatalf("TitleFromFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
