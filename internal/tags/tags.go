// Package tags resolves track metadata from audio files during import.
// ID3 frames are authoritative; filenames fill the gaps.
package tags

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/bogem/id3v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"pencast/internal/album"
)

// Metadata carries album-level fields alongside one track.
type Metadata struct {
	Track       album.Track
	AlbumTitle  string
	AlbumArtist string
}

// ReadFile extracts track metadata from an MP3 file. Files without a
// tag, or with one the parser rejects, still succeed: the track falls
// back to a title derived from the filename and unset ordering fields,
// which the orderer sorts first.
func ReadFile(path string) (Metadata, error) {
	meta := Metadata{
		Track: album.Track{
			SourceFile: filepath.Base(path),
			Title:      TitleFromFilename(path),
		},
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		if os.IsNotExist(err) {
			return Metadata{}, fmt.Errorf("read tags from %s: %w", filepath.Base(path), err)
		}
		return meta, nil
	}
	defer tag.Close()

	if !tag.HasFrames() {
		return meta, nil
	}

	if title := strings.TrimSpace(tag.Title()); title != "" {
		meta.Track.Title = title
	}
	meta.AlbumTitle = strings.TrimSpace(tag.Album())
	meta.AlbumArtist = strings.TrimSpace(tag.Artist())
	meta.Track.Number = parsePositionFrame(tag, "TRCK")
	meta.Track.Disc = parsePositionFrame(tag, "TPOS")
	return meta, nil
}

// parsePositionFrame reads a numeric position frame, tolerating the
// common "3/12" form. Missing or unparsable frames yield 0.
func parsePositionFrame(tag *id3v2.Tag, frameID string) int {
	text := strings.TrimSpace(tag.GetTextFrame(frameID).Text)
	if text == "" {
		return 0
	}
	if idx := strings.IndexByte(text, '/'); idx >= 0 {
		text = strings.TrimSpace(text[:idx])
	}
	n, err := strconv.Atoi(text)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

var leadingTrackNumber = regexp.MustCompile(`^\d+\s*[-._ ]\s*`)

// TitleFromFilename derives a readable track title from a filename:
// the extension and any leading track number are stripped, separators
// become spaces, and the result is title-cased.
func TitleFromFilename(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	stem = leadingTrackNumber.ReplaceAllString(stem, "")
	stem = strings.NewReplacer("_", " ", "-", " ").Replace(stem)
	stem = strings.Join(strings.Fields(stem), " ")
	if stem == "" {
		return base
	}
	return cases.Title(language.Und, cases.NoLower).String(stem)
}
