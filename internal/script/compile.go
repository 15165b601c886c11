package script

import (
	"context"
	"fmt"
	"sort"

	"pencast/internal/album"
	"pencast/internal/oid"
)

// Action names every compiled program references. Per-track jump
// actions are named t0, t1, ... on top of these.
const (
	ActionPlay = "play"
	ActionNext = "next"
	ActionPrev = "prev"
	ActionStop = "stop"
)

// welcomeLabel names the startup section; looping programs jump back
// to it after the last track.
const welcomeLabel = "welcome"

// Resolver hands out durable action codes. library.Store implements it.
type Resolver interface {
	ResolveActionCode(ctx context.Context, name string) (int, error)
}

// Section is one named block of program statements.
type Section struct {
	Name  string
	Lines []string
}

// Program is a compiled control program: the sections to render plus
// the action codes the program references, ordered by code ascending.
// Programs are ephemeral; they are regenerated on every compilation.
type Program struct {
	AlbumID  oid.AlbumID
	Mode     album.PlaybackMode
	Sections []Section
	Codes    []oid.ActionCode
}

// Compile builds the control program for an ordered track list.
//
// maxControls pads the per-track action bank: when it exceeds the track
// count, the surplus actions jump to the last real track so a uniform
// printed control grid stays well-defined for short albums. Values
// below the track count are raised to it.
func Compile(ctx context.Context, albumID oid.AlbumID, tracks []album.Track, mode album.PlaybackMode, resolve Resolver, maxControls int) (*Program, error) {
	n := len(tracks)
	if n == 0 {
		return nil, album.ErrNoTracks
	}
	if maxControls < n {
		maxControls = n
	}

	names := []string{ActionPlay, ActionNext, ActionPrev, ActionStop}
	for i := 0; i < maxControls; i++ {
		names = append(names, TrackActionName(i))
	}

	codes := make([]oid.ActionCode, 0, len(names))
	for _, name := range names {
		code, err := resolve.ResolveActionCode(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("resolve action %q: %w", name, err)
		}
		codes = append(codes, oid.ActionCode{Name: name, Code: code})
	}
	sortCodes(codes)

	prog := &Program{
		AlbumID: albumID,
		Mode:    mode,
		Codes:   codes,
	}
	prog.Sections = append(prog.Sections, welcomeSection(n, mode))
	prog.Sections = append(prog.Sections, playSection(n))
	prog.Sections = append(prog.Sections, nextSection(n))
	prog.Sections = append(prog.Sections, prevSection(n))
	prog.Sections = append(prog.Sections, Section{Name: ActionStop, Lines: []string{"C"}})
	for i := 0; i < maxControls; i++ {
		target := i
		if target > n-1 {
			target = n - 1
		}
		prog.Sections = append(prog.Sections, Section{
			Name:  TrackActionName(i),
			Lines: []string{fmt.Sprintf("$current:=%d P(%d)", target, target)},
		})
	}
	return prog, nil
}

// TrackActionName returns the action name for the zero-based per-track
// jump control.
func TrackActionName(i int) string {
	return fmt.Sprintf("t%d", i)
}

// welcomeSection plays every track once. Stop mode halts afterwards;
// loop mode re-enters the section, the only place true looping occurs.
func welcomeSection(n int, mode album.PlaybackMode) Section {
	line := ""
	for i := 0; i < n; i++ {
		line += fmt.Sprintf("P(%d) ", i)
	}
	if mode == album.PlaybackSequentialLoop {
		line += fmt.Sprintf("J(%s)", welcomeLabel)
	} else {
		line += "C"
	}
	return Section{Name: welcomeLabel, Lines: []string{line}}
}

func playSection(n int) Section {
	if n == 1 {
		return Section{Name: ActionPlay, Lines: []string{"P(0) C"}}
	}
	lines := make([]string, 0, n)
	for i := 0; i < n; i++ {
		lines = append(lines, fmt.Sprintf("$current==%d? P(%d)", i, i))
	}
	return Section{Name: ActionPlay, Lines: lines}
}

// nextSection advances and plays. At the last track both playback modes
// halt; looping belongs to the welcome sequence alone.
func nextSection(n int) Section {
	if n == 1 {
		return Section{Name: ActionNext, Lines: []string{"P(0) C"}}
	}
	lines := make([]string, 0, n)
	for i := 0; i < n-1; i++ {
		lines = append(lines, fmt.Sprintf("$current==%d? $current:=%d P(%d)", i, i+1, i+1))
	}
	lines = append(lines, fmt.Sprintf("$current==%d? C", n-1))
	return Section{Name: ActionNext, Lines: lines}
}

// prevSection steps back and plays. Position 0 has no matching
// statement, so the action is inert there.
func prevSection(n int) Section {
	if n == 1 {
		return Section{Name: ActionPrev, Lines: []string{"P(0) C"}}
	}
	lines := make([]string, 0, n-1)
	for i := 1; i < n; i++ {
		lines = append(lines, fmt.Sprintf("$current==%d? $current:=%d P(%d)", i, i-1, i-1))
	}
	return Section{Name: ActionPrev, Lines: lines}
}

func sortCodes(codes []oid.ActionCode) {
	sort.Slice(codes, func(i, j int) bool { return codes[i].Code < codes[j].Code })
}
