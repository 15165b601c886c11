// Package main hosts the pencast CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into
// library operations: importing audio into albums, compiling album
// scripts, assembling pen files, and inspecting the identifier space.
// It centralizes configuration resolution and structured logging setup
// so subcommands can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the
// internal packages first, then surface it through dedicated commands
// or flags here.
package main
