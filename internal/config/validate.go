package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validatePrint(); err != nil {
		return err
	}
	if err := c.validateTranscode(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.LibraryDir == "" {
		return errors.New("paths.library_dir must be set")
	}
	if c.Paths.ExportDir == "" {
		return errors.New("paths.export_dir must be set")
	}
	return nil
}

func (c *Config) validatePrint() error {
	// An oversized control bank would eat the action-code range for no
	// printable benefit.
	if c.Print.MaxTrackControls > 99 {
		return fmt.Errorf("print.max_track_controls %d exceeds limit 99", c.Print.MaxTrackControls)
	}
	return nil
}

func (c *Config) validateTranscode() error {
	if c.Transcode.Bitrate == "" {
		return errors.New("transcode.bitrate must be set")
	}
	return nil
}
