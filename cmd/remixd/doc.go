// Package main hosts the remixd entrypoint and command graph.
//
// The Cobra-based command tree starts the HTTP remix service, lists the
// preset catalog, and scaffolds configuration files. It centralizes
// configuration resolution and structured logging setup so subcommands can
// focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
