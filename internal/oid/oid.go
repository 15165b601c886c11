package oid

import (
	"errors"
	"fmt"
	"strings"
)

// Identifier range boundaries. Album ids and action codes are disjoint;
// the gap at 1000 is never assigned.
const (
	AlbumIDMin = 1
	AlbumIDMax = 999

	// AlbumIDSeed is the conventional first id handed out on an empty
	// store. Ids 1-919 stay free for manual or legacy assignment.
	AlbumIDSeed = 920

	ActionCodeMin = 1001
	ActionCodeMax = 14999
)

var (
	// ErrSpaceExhausted reports that an identifier range has no free
	// values left. Fatal: the user must delete unused albums or actions
	// before new ones can be created.
	ErrSpaceExhausted = errors.New("identifier space exhausted")

	// ErrDuplicate reports that an insert raced past the caller's own
	// free-value check. Allocators treat it as a retry signal, not a
	// user-visible failure.
	ErrDuplicate = errors.New("duplicate identifier")
)

// AlbumID identifies one album on its printed control sheet.
type AlbumID int

// NewAlbumID validates v against the album id range.
func NewAlbumID(v int) (AlbumID, error) {
	if v < AlbumIDMin || v > AlbumIDMax {
		return 0, fmt.Errorf("album id %d outside range %d-%d", v, AlbumIDMin, AlbumIDMax)
	}
	return AlbumID(v), nil
}

// ActionCode is the durable pairing of a control-action name with its
// printed numeric code.
type ActionCode struct {
	Name string
	Code int
}

// NewActionCode validates name and code at construction time.
func NewActionCode(name string, code int) (ActionCode, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return ActionCode{}, errors.New("action code name required")
	}
	if code < ActionCodeMin || code > ActionCodeMax {
		return ActionCode{}, fmt.Errorf("action code %d outside range %d-%d", code, ActionCodeMin, ActionCodeMax)
	}
	return ActionCode{Name: name, Code: code}, nil
}
