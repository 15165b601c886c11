// Package oid owns the numeric identifier spaces printed as optical
// patterns on pen-readable sheets: album ids (1-999) and action codes
// (1001-14999).
//
// The two ranges never overlap. Album ids distinguish albums; action
// codes name control actions (play, next, per-track jumps) shared
// across every printed control sheet. Both allocators run against the
// narrow Store contract and hold no state between calls, so a caller
// wishing to allocate safely under concurrency wraps the call in a
// store transaction.
//
// Codes are durable: once a name has a code, every later resolution
// returns the same code, keeping previously printed sheets valid when
// an album's control program is regenerated.
package oid
