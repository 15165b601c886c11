// Package testsupport provides shared fixtures for pencast tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"pencast/internal/config"
)

// NewConfig produces a config seeded with unique temp directories per
// test.
func NewConfig(t testing.TB) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LibraryDir = filepath.Join(base, "library")
	cfg.Paths.ExportDir = filepath.Join(base, "export")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	return &cfg
}
