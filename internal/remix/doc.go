// Package remix owns the per-request processing lifecycle: persist the
// upload, drive the external engine through an effect preset, validate the
// result, and guarantee cleanup of the input artifact. It also houses the
// work-dir sweeper that evicts stale outputs.
package remix
