package remix

import (
	"errors"
	"fmt"

	"remixd/internal/engine"
)

// Sentinel errors classify request failures at the HTTP boundary. None are
// retried: every failure is terminal for its request and reported once.
var (
	ErrUpload        = errors.New("upload error")
	ErrEngine        = errors.New("engine failure")
	ErrOutputMissing = errors.New("output missing")
	ErrTimeout       = errors.New("processing timeout")
)

// wrap tags err with a sentinel marker while keeping the original chain
// intact for errors.As extraction.
func wrap(marker error, operation string, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, operation, err)
	}
	return fmt.Errorf("%w: %s", marker, operation)
}

// EngineStderr extracts the engine diagnostic stream from err, or "" when the
// failure did not originate from a non-zero engine exit.
func EngineStderr(err error) string {
	var exitErr *engine.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Stderr
	}
	return ""
}
