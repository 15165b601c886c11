package album

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNoTracks reports an attempt to order or compile an album with an
// empty track list. That is a caller bug, not a user condition.
var ErrNoTracks = errors.New("album has no tracks")

// PlaybackMode selects what happens when the welcome sequence finishes
// the last track.
type PlaybackMode string

const (
	// PlaybackSequentialStop plays all tracks once, then halts.
	PlaybackSequentialStop PlaybackMode = "sequential-stop"

	// PlaybackSequentialLoop restarts from the first track after the
	// last one completes. Only the welcome sequence loops; manual
	// navigation still stops at the boundaries.
	PlaybackSequentialLoop PlaybackMode = "sequential-loop"
)

// ParsePlaybackMode validates a mode string from config, flags, or the
// store.
func ParsePlaybackMode(s string) (PlaybackMode, error) {
	switch PlaybackMode(strings.ToLower(strings.TrimSpace(s))) {
	case PlaybackSequentialStop:
		return PlaybackSequentialStop, nil
	case PlaybackSequentialLoop:
		return PlaybackSequentialLoop, nil
	default:
		return "", fmt.Errorf("unknown playback mode %q", s)
	}
}

// Track carries the metadata of one audio file within an album. Disc
// and Number are zero when the source metadata did not provide them;
// zero sorts before any tagged value.
type Track struct {
	Disc       int
	Number     int
	SourceFile string
	Title      string
	DurationMS int64
}

// Order returns the tracks in their stable total order: disc, then
// track number, then source filename, ascending, with missing values
// first. Number is rewritten to the 1-based position afterwards, so
// output numbering is always 1..N regardless of what the source
// metadata claimed.
func Order(tracks []Track) ([]Track, error) {
	if len(tracks) == 0 {
		return nil, ErrNoTracks
	}

	ordered := make([]Track, len(tracks))
	copy(ordered, tracks)
	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.Disc != b.Disc {
			return a.Disc < b.Disc
		}
		if a.Number != b.Number {
			return a.Number < b.Number
		}
		return a.SourceFile < b.SourceFile
	})

	for i := range ordered {
		ordered[i].Number = i + 1
	}
	return ordered, nil
}
