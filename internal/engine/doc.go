// Package engine builds and executes invocations of the external audio
// engine (FFmpeg). Command construction is a pure function of the preset
// chain and job paths; execution is a bounded child process whose stderr is
// captured for diagnostics.
package engine
