// Package config loads, normalizes, and validates pencast's TOML
// configuration.
//
// Lookup order: an explicit --config path, then
// ~/.config/pencast/config.toml, then a pencast.toml in the working
// directory. A missing file falls back to defaults so read-only
// commands work out of the box. Paths are tilde-expanded and made
// absolute during load.
package config
