// Package logging assembles the structured slog loggers used across remixd.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes attr helpers so request code tags log lines with job
// and preset identifiers consistently. A no-op logger is provided for tests
// and wiring code that cannot fail.
package logging
