// Package server adapts HTTP requests to the processing pipeline: a health
// descriptor, the preset listing, and the multipart process endpoint that
// streams transformed audio back to the caller.
package server
