package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeAssembler()
	c.normalizeTranscode()
	c.normalizePrint()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LibraryDir) == "" {
		c.Paths.LibraryDir = defaultLibraryDir
	}
	if c.Paths.LibraryDir, err = expandPath(c.Paths.LibraryDir); err != nil {
		return fmt.Errorf("paths.library_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.ExportDir) == "" {
		c.Paths.ExportDir = defaultExportDir
	}
	if c.Paths.ExportDir, err = expandPath(c.Paths.ExportDir); err != nil {
		return fmt.Errorf("paths.export_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeAssembler() {
	c.Assembler.Binary = strings.TrimSpace(c.Assembler.Binary)
	if c.Assembler.Binary == "" {
		c.Assembler.Binary = defaultAssemblerBinary
	}
	if c.Assembler.TimeoutSeconds <= 0 {
		c.Assembler.TimeoutSeconds = defaultAssemblerTimeout
	}
}

func (c *Config) normalizeTranscode() {
	c.Transcode.Binary = strings.TrimSpace(c.Transcode.Binary)
	if c.Transcode.Binary == "" {
		c.Transcode.Binary = defaultTranscodeBinary
	}
	c.Transcode.ProbeBinary = strings.TrimSpace(c.Transcode.ProbeBinary)
	if c.Transcode.ProbeBinary == "" {
		c.Transcode.ProbeBinary = defaultProbeBinary
	}
	c.Transcode.Bitrate = strings.TrimSpace(c.Transcode.Bitrate)
	if c.Transcode.Bitrate == "" {
		c.Transcode.Bitrate = defaultTranscodeBitrate
	}
}

func (c *Config) normalizePrint() {
	if c.Print.MaxTrackControls <= 0 {
		c.Print.MaxTrackControls = defaultMaxTrackControls
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
