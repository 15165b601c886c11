// Package assembler wraps the external binary that turns compiled
// program text into a pen-readable file.
package assembler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

var commandContext = exec.CommandContext

// Client defines assembler behaviour.
type Client interface {
	Assemble(ctx context.Context, scriptPath, outputDir string) (string, error)
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// CLI wraps the command-line assembler.
type CLI struct {
	binary string
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "tttool"}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Assemble runs the assembler over a program text file and returns the
// path of the produced pen file.
func (c *CLI) Assemble(ctx context.Context, scriptPath, outputDir string) (string, error) {
	if strings.TrimSpace(scriptPath) == "" {
		return "", errors.New("script path required")
	}
	if strings.TrimSpace(outputDir) == "" {
		return "", errors.New("output directory required")
	}

	base := filepath.Base(scriptPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		stem = base
	}
	outputPath := filepath.Join(outputDir, stem+".gme")

	args := []string{"assemble", scriptPath, outputPath}
	cmd := commandContext(ctx, c.binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return "", fmt.Errorf("assemble %s: %w: %s", base, err, detail)
		}
		return "", fmt.Errorf("assemble %s: %w", base, err)
	}
	return outputPath, nil
}

var _ Client = (*CLI)(nil)
