// Package album defines track metadata and the deterministic ordering
// applied before a control program is compiled.
package album
