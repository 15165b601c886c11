// Package importer turns a directory of audio files into a library
// album: metadata from tags, MP3 conversion through the external
// transcoder, and the audio copied under the library directory.
package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"pencast/internal/album"
	"pencast/internal/config"
	"pencast/internal/library"
	"pencast/internal/logging"
	"pencast/internal/tags"
	"pencast/internal/transcode"
)

var audioExtensions = map[string]bool{
	".mp3":  true,
	".flac": true,
	".ogg":  true,
	".wav":  true,
	".m4a":  true,
	".aac":  true,
	".wma":  true,
}

// Options carries caller overrides for one import.
type Options struct {
	// Title overrides the album title; default is the tagged album
	// title, falling back to the source directory name.
	Title string
	// Artist overrides the album artist.
	Artist string
	// Mode defaults to sequential-stop.
	Mode album.PlaybackMode
}

// Importer creates library albums from audio files on disk.
type Importer struct {
	cfg        *config.Config
	store      *library.Store
	transcoder transcode.Client
	logger     *slog.Logger
}

// New wires an importer. A nil logger discards output.
func New(cfg *config.Config, store *library.Store, transcoder transcode.Client, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Importer{cfg: cfg, store: store, transcoder: transcoder, logger: logger}
}

type source struct {
	path string
	meta tags.Metadata
}

// Import gathers the audio files under paths, creates the album, and
// places playable MP3 copies in the library. A failure while copying
// or transcoding removes the just-created album again so its id does
// not leak.
func (im *Importer) Import(ctx context.Context, paths []string, opts Options) (*library.Album, error) {
	files, err := collectAudioFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no audio files found under %s", strings.Join(paths, ", "))
	}

	sources := make([]source, 0, len(files))
	for _, path := range files {
		meta, err := tags.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if !strings.EqualFold(filepath.Ext(path), ".mp3") {
			// The stored filename is the post-transcode one.
			base := filepath.Base(path)
			meta.Track.SourceFile = strings.TrimSuffix(base, filepath.Ext(base)) + ".mp3"
		}
		if duration, err := im.transcoder.Probe(ctx, path); err != nil {
			im.logger.Warn("duration probe failed", "file", filepath.Base(path), "error", err)
		} else {
			meta.Track.DurationMS = duration.Milliseconds()
		}
		sources = append(sources, source{path: path, meta: meta})
	}

	entry := library.NewAlbum{
		Title:  opts.Title,
		Artist: opts.Artist,
		Mode:   opts.Mode,
	}
	if entry.Mode == "" {
		entry.Mode = album.PlaybackSequentialStop
	}
	for _, src := range sources {
		if entry.Title == "" {
			entry.Title = src.meta.AlbumTitle
		}
		if entry.Artist == "" {
			entry.Artist = src.meta.AlbumArtist
		}
		entry.Tracks = append(entry.Tracks, src.meta.Track)
	}
	if entry.Title == "" {
		entry.Title = tags.TitleFromFilename(filepath.Dir(sources[0].path))
	}

	created, err := im.store.CreateAlbum(ctx, entry)
	if err != nil {
		return nil, err
	}
	logger := im.logger.With("album", int(created.ID), "title", created.Title)

	audioDir := filepath.Join(im.cfg.Paths.LibraryDir, fmt.Sprintf("album-%03d", int(created.ID)))
	if err := im.placeAudio(ctx, audioDir, sources); err != nil {
		if delErr := im.store.DeleteAlbum(ctx, created.ID); delErr != nil {
			logger.Error("rollback after failed import", "error", delErr)
		}
		return nil, err
	}
	if !im.cfg.Transcode.KeepOriginal {
		for _, src := range sources {
			if err := os.Remove(src.path); err != nil {
				logger.Warn("remove source file", "file", filepath.Base(src.path), "error", err)
			}
		}
	}
	logger.Info("album imported", "tracks", len(sources), "audio_dir", audioDir)
	return created, nil
}

func (im *Importer) placeAudio(ctx context.Context, audioDir string, sources []source) error {
	if err := os.MkdirAll(audioDir, 0o755); err != nil {
		return fmt.Errorf("create audio directory: %w", err)
	}
	for _, src := range sources {
		if strings.EqualFold(filepath.Ext(src.path), ".mp3") {
			dest := filepath.Join(audioDir, filepath.Base(src.path))
			if err := copyFile(src.path, dest); err != nil {
				return err
			}
			continue
		}
		if _, err := im.transcoder.Transcode(ctx, src.path, audioDir); err != nil {
			return err
		}
	}
	return nil
}

func collectAudioFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		if !info.IsDir() {
			if audioExtensions[strings.ToLower(filepath.Ext(path))] {
				files = append(files, path)
			}
			continue
		}
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("read directory %s: %w", path, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if audioExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
				files = append(files, filepath.Join(path, entry.Name()))
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copy %s: %w", filepath.Base(src), err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", dest, err)
	}
	return nil
}
