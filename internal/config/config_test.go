package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pencast/internal/config"
)

func TestDefaultNormalizes(t *testing.T) {
	cfg := config.Default()
	if cfg.Assembler.Binary != "tttool" {
		t.Fatalf("unexpected default assembler binary %q", cfg.Assembler.Binary)
	}
	if cfg.Print.MaxTrackControls <= 0 {
		t.Fatalf("expected positive default control bank, got %d", cfg.Print.MaxTrackControls)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing file")
	}
	if resolved != path {
		t.Fatalf("expected resolved path %q, got %q", path, resolved)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("expected default log level, got %q", cfg.Logging.Level)
	}
}

func TestLoadParsesAndExpandsPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pencast.toml")
	content := strings.Join([]string{
		"[paths]",
		`library_dir = "` + filepath.Join(dir, "lib") + `"`,
		"[print]",
		"max_track_controls = 8",
		"[logging]",
		`format = "JSON"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists {
		t.Fatal("expected exists=true")
	}
	if cfg.Paths.LibraryDir != filepath.Join(dir, "lib") {
		t.Fatalf("library dir not honored: %q", cfg.Paths.LibraryDir)
	}
	if cfg.Print.MaxTrackControls != 8 {
		t.Fatalf("expected 8 track controls, got %d", cfg.Print.MaxTrackControls)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected normalized json format, got %q", cfg.Logging.Format)
	}
	// Unset sections fall back to defaults.
	if cfg.Transcode.Binary != "ffmpeg" {
		t.Fatalf("expected default transcode binary, got %q", cfg.Transcode.Binary)
	}
}

func TestLoadRejectsOversizedControlBank(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pencast.toml")
	if err := os.WriteFile(path, []byte("[print]\nmax_track_controls = 500\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error for oversized control bank")
	}
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LibraryDir = filepath.Join(dir, "lib")
	cfg.Paths.ExportDir = filepath.Join(dir, "export")
	cfg.Paths.LogDir = filepath.Join(dir, "logs")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, d := range []string{cfg.Paths.LibraryDir, cfg.Paths.ExportDir, cfg.Paths.LogDir} {
		info, err := os.Stat(d)
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory %q to exist: %v", d, err)
		}
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	if _, _, exists, err := config.Load(path); err != nil || !exists {
		t.Fatalf("sample config did not load cleanly: exists=%v err=%v", exists, err)
	}
}
