// Package script compiles an ordered track list and a playback mode
// into the textual control program consumed by the external assembler.
//
// The emitted language is line oriented: named sections hold ordered
// statements of the form "condition? assignment action control". The
// token set ($current, P(n), C, J(label)) is fixed by the assembler and
// reproduced verbatim. Alongside the program text the compiler collects
// every action code it referenced so the caller can write the sidecar
// mapping that keeps regenerated programs compatible with previously
// printed sheets.
package script
