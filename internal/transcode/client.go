// Package transcode wraps the external audio transcoder and prober
// used during album import.
package transcode

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

var commandContext = exec.CommandContext

// Client defines transcoder behaviour.
type Client interface {
	Transcode(ctx context.Context, inputPath, outputDir string) (string, error)
	Probe(ctx context.Context, inputPath string) (time.Duration, error)
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default transcoder binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// WithProbeBinary overrides the default prober binary name.
func WithProbeBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.probeBinary = binary
		}
	}
}

// WithBitrate overrides the default output bitrate.
func WithBitrate(bitrate string) Option {
	return func(c *CLI) {
		if bitrate != "" {
			c.bitrate = bitrate
		}
	}
}

// CLI wraps the ffmpeg command-line transcoder.
type CLI struct {
	binary      string
	probeBinary string
	bitrate     string
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "ffmpeg", probeBinary: "ffprobe", bitrate: "192k"}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Transcode converts an audio file to MP3 in outputDir and returns the
// output path.
func (c *CLI) Transcode(ctx context.Context, inputPath, outputDir string) (string, error) {
	if strings.TrimSpace(inputPath) == "" {
		return "", errors.New("input path required")
	}
	if strings.TrimSpace(outputDir) == "" {
		return "", errors.New("output directory required")
	}

	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		stem = base
	}
	outputPath := filepath.Join(outputDir, stem+".mp3")

	args := []string{
		"-y", "-nostdin",
		"-i", inputPath,
		"-vn",
		"-codec:a", "libmp3lame",
		"-b:a", c.bitrate,
		outputPath,
	}
	cmd := commandContext(ctx, c.binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return "", fmt.Errorf("transcode %s: %w: %s", base, err, detail)
		}
		return "", fmt.Errorf("transcode %s: %w", base, err)
	}
	return outputPath, nil
}

// Probe returns the duration of an audio file.
func (c *CLI) Probe(ctx context.Context, inputPath string) (time.Duration, error) {
	if strings.TrimSpace(inputPath) == "" {
		return 0, errors.New("input path required")
	}

	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		inputPath,
	}
	cmd := commandContext(ctx, c.probeBinary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return 0, fmt.Errorf("probe %s: %w: %s", filepath.Base(inputPath), err, detail)
		}
		return 0, fmt.Errorf("probe %s: %w", filepath.Base(inputPath), err)
	}

	raw := strings.TrimSpace(stdout.String())
	seconds, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("probe %s: parse duration %q: %w", filepath.Base(inputPath), raw, err)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

var _ Client = (*CLI)(nil)
