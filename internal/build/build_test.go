package build_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pencast/internal/album"
	"pencast/internal/build"
	"pencast/internal/library"
	"pencast/internal/testsupport"
)

// fakeAssembler records calls and fabricates an output file.
type fakeAssembler struct {
	calls []string
	fail  error
}

func (f *fakeAssembler) Assemble(_ context.Context, scriptPath, outputDir string) (string, error) {
	f.calls = append(f.calls, scriptPath)
	if f.fail != nil {
		return "", f.fail
	}
	out := filepath.Join(outputDir, "album.gme")
	if err := os.WriteFile(out, []byte("gme"), 0o644); err != nil {
		return "", err
	}
	return out, nil
}

func TestBuildWritesScriptAndCodeMap(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	entry := testsupport.SeedAlbum(t, store, "Build Me", 3)

	runner := build.NewRunner(cfg, store, &fakeAssembler{}, nil)
	result, err := runner.Build(context.Background(), entry.ID, build.Options{SkipAssemble: true})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if result.PenFilePath != "" {
		t.Fatalf("expected no pen file with SkipAssemble, got %q", result.PenFilePath)
	}
	if result.TrackCount != 3 {
		t.Fatalf("expected 3 tracks, got %d", result.TrackCount)
	}

	text, err := os.ReadFile(result.ScriptPath)
	if err != nil {
		t.Fatalf("read script: %v", err)
	}
	if !strings.HasPrefix(string(text), "album: 920\ninit: $current:=0\n") {
		t.Fatalf("unexpected script header:\n%s", text)
	}
	if !strings.Contains(string(text), "welcome:\n  P(0) P(1) P(2) C\n") {
		t.Fatalf("expected stop-mode welcome section:\n%s", text)
	}

	codeMap, err := os.ReadFile(result.CodeMapPath)
	if err != nil {
		t.Fatalf("read code map: %v", err)
	}
	if !strings.Contains(string(codeMap), "play: ") {
		t.Fatalf("expected play mapping in code map:\n%s", codeMap)
	}
}

func TestBuildInvokesAssembler(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	entry := testsupport.SeedAlbum(t, store, "Assembled", 1)

	asm := &fakeAssembler{}
	runner := build.NewRunner(cfg, store, asm, nil)
	result, err := runner.Build(context.Background(), entry.ID, build.Options{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(asm.calls) != 1 || asm.calls[0] != result.ScriptPath {
		t.Fatalf("assembler not invoked with script path: %v", asm.calls)
	}
	if result.PenFilePath == "" {
		t.Fatal("expected pen file path in result")
	}
}

func TestBuildModeOverrideDoesNotPersist(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	entry := testsupport.SeedAlbum(t, store, "Override", 2)
	ctx := context.Background()

	runner := build.NewRunner(cfg, store, &fakeAssembler{}, nil)
	result, err := runner.Build(ctx, entry.ID, build.Options{
		Mode:         album.PlaybackSequentialLoop,
		SkipAssemble: true,
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	text, err := os.ReadFile(result.ScriptPath)
	if err != nil {
		t.Fatalf("read script: %v", err)
	}
	if !strings.Contains(string(text), "J(welcome)") {
		t.Fatalf("expected loop welcome in overridden build:\n%s", text)
	}

	stored, err := store.GetAlbum(ctx, entry.ID)
	if err != nil {
		t.Fatalf("GetAlbum failed: %v", err)
	}
	if stored.Mode != album.PlaybackSequentialStop {
		t.Fatalf("mode override leaked into store: %q", stored.Mode)
	}
}

func TestBuildCodesStableAcrossRebuilds(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	entry := testsupport.SeedAlbum(t, store, "Stable", 2)
	ctx := context.Background()

	runner := build.NewRunner(cfg, store, &fakeAssembler{}, nil)
	first, err := runner.Build(ctx, entry.ID, build.Options{SkipAssemble: true})
	if err != nil {
		t.Fatalf("first Build failed: %v", err)
	}
	firstMap, err := os.ReadFile(first.CodeMapPath)
	if err != nil {
		t.Fatalf("read first code map: %v", err)
	}

	second, err := runner.Build(ctx, entry.ID, build.Options{SkipAssemble: true})
	if err != nil {
		t.Fatalf("second Build failed: %v", err)
	}
	secondMap, err := os.ReadFile(second.CodeMapPath)
	if err != nil {
		t.Fatalf("read second code map: %v", err)
	}

	if string(firstMap) != string(secondMap) {
		t.Fatalf("code map changed across rebuilds:\nfirst:\n%s\nsecond:\n%s", firstMap, secondMap)
	}
}

func TestBuildPadsControlBank(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Print.MaxTrackControls = 5
	store := testsupport.MustOpenStore(t, cfg)
	entry := testsupport.SeedAlbum(t, store, "Padded", 2)

	runner := build.NewRunner(cfg, store, &fakeAssembler{}, nil)
	result, err := runner.Build(context.Background(), entry.ID, build.Options{SkipAssemble: true})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	text, err := os.ReadFile(result.ScriptPath)
	if err != nil {
		t.Fatalf("read script: %v", err)
	}
	for _, section := range []string{"t2:", "t3:", "t4:"} {
		idx := strings.Index(string(text), section)
		if idx < 0 {
			t.Fatalf("missing padded section %q:\n%s", section, text)
		}
		rest := string(text)[idx:]
		if !strings.Contains(strings.SplitN(rest, "\n", 3)[1], "$current:=1 P(1)") {
			t.Fatalf("padded section %q does not target last real track:\n%s", section, rest)
		}
	}
}

func TestBuildUnknownAlbumFails(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	runner := build.NewRunner(cfg, store, &fakeAssembler{}, nil)
	_, err := runner.Build(context.Background(), 123, build.Options{SkipAssemble: true})
	if !errors.Is(err, library.ErrAlbumNotFound) {
		t.Fatalf("expected ErrAlbumNotFound, got %v", err)
	}
}

func TestBuildAssemblerFailureSurfaces(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	entry := testsupport.SeedAlbum(t, store, "Broken", 1)

	asm := &fakeAssembler{fail: errors.New("assembler exploded")}
	runner := build.NewRunner(cfg, store, asm, nil)
	if _, err := runner.Build(context.Background(), entry.ID, build.Options{}); err == nil {
		t.Fatal("expected assembler failure to surface")
	}
}
