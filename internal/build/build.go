// Package build orchestrates one album's compilation: order the
// tracks, resolve identifiers against the library, emit the program
// text with its code-map sidecar, and hand the text to the external
// assembler.
package build

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"pencast/internal/album"
	"pencast/internal/assembler"
	"pencast/internal/config"
	"pencast/internal/library"
	"pencast/internal/logging"
	"pencast/internal/oid"
	"pencast/internal/script"
)

const lockRetryDelay = 100 * time.Millisecond

// Options adjusts a single build without touching the stored album.
type Options struct {
	// Mode overrides the album's stored playback mode when non-empty.
	Mode album.PlaybackMode
	// MaxControls overrides the configured per-track control bank when
	// positive.
	MaxControls int
	// SkipAssemble stops after writing the program text and code map.
	SkipAssemble bool
}

// Result describes the artifacts one build produced.
type Result struct {
	AlbumID     oid.AlbumID
	TrackCount  int
	ScriptPath  string
	CodeMapPath string
	// PenFilePath is empty when assembly was skipped.
	PenFilePath string
}

// Runner executes builds against one library.
type Runner struct {
	cfg    *config.Config
	store  *library.Store
	asm    assembler.Client
	logger *slog.Logger
}

// NewRunner wires a build runner. A nil logger discards output.
func NewRunner(cfg *config.Config, store *library.Store, asm assembler.Client, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{cfg: cfg, store: store, asm: asm, logger: logger}
}

// Build compiles one album and, unless skipped, assembles the pen
// file. Builds against the same library are serialized through a file
// lock so concurrent invocations cannot interleave their artifact
// writes.
func (r *Runner) Build(ctx context.Context, id oid.AlbumID, opts Options) (*Result, error) {
	logger := r.logger.With("album", int(id), "build_id", uuid.NewString())

	lock := flock.New(r.cfg.LockPath())
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("acquire build lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("acquire build lock: %s held elsewhere", r.cfg.LockPath())
	}
	defer func() { _ = lock.Unlock() }()

	entry, err := r.store.GetAlbum(ctx, id)
	if err != nil {
		return nil, err
	}

	mode := entry.Mode
	if opts.Mode != "" {
		mode, err = album.ParsePlaybackMode(string(opts.Mode))
		if err != nil {
			return nil, err
		}
	}
	controls := r.cfg.Print.MaxTrackControls
	if opts.MaxControls > 0 {
		controls = opts.MaxControls
	}

	ordered, err := album.Order(entry.Tracks)
	if err != nil {
		return nil, fmt.Errorf("order tracks for album %d: %w", id, err)
	}

	prog, err := script.Compile(ctx, id, ordered, mode, r.store, controls)
	if err != nil {
		return nil, fmt.Errorf("compile album %d: %w", id, err)
	}
	logger.Info("program compiled",
		"tracks", len(ordered),
		"mode", string(mode),
		"controls", controls,
		"codes", len(prog.Codes),
	)

	outDir := filepath.Join(r.cfg.Paths.ExportDir, fmt.Sprintf("album-%03d", int(id)))
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	result := &Result{
		AlbumID:     id,
		TrackCount:  len(ordered),
		ScriptPath:  filepath.Join(outDir, fmt.Sprintf("album-%d.script", int(id))),
		CodeMapPath: filepath.Join(outDir, fmt.Sprintf("album-%d.codes", int(id))),
	}

	if err := os.WriteFile(result.ScriptPath, []byte(prog.Render()), 0o644); err != nil {
		return nil, fmt.Errorf("write program text: %w", err)
	}
	codeMap, err := os.Create(result.CodeMapPath)
	if err != nil {
		return nil, fmt.Errorf("create code map: %w", err)
	}
	if err := script.WriteCodeMap(codeMap, prog); err != nil {
		_ = codeMap.Close()
		return nil, err
	}
	if err := codeMap.Close(); err != nil {
		return nil, fmt.Errorf("close code map: %w", err)
	}
	logger.Info("artifacts written", "script", result.ScriptPath, "code_map", result.CodeMapPath)

	if opts.SkipAssemble {
		return result, nil
	}

	assembleCtx := ctx
	if timeout := r.cfg.Assembler.TimeoutSeconds; timeout > 0 {
		var cancel context.CancelFunc
		assembleCtx, cancel = context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
		defer cancel()
	}
	penPath, err := r.asm.Assemble(assembleCtx, result.ScriptPath, outDir)
	if err != nil {
		return nil, fmt.Errorf("assemble album %d: %w", id, err)
	}
	result.PenFilePath = penPath
	logger.Info("pen file assembled", "output", penPath)
	return result, nil
}
