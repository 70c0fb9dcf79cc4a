// Package config loads, normalizes, and validates the TOML configuration
// that drives a subgen run.
package config
