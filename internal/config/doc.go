// Package config loads, normalizes, and validates remixd configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the PORT environment override.
// Always obtain settings through this package so downstream code receives
// sanitized paths and clear validation errors.
package config
