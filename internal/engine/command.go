package engine

import "remixd/internal/preset"

// Invocation is a fully-formed engine command: explicit binary and argument
// list, never a shell string, so paths and filter graphs are passed verbatim.
type Invocation struct {
	Binary string
	Args   []string
}

// Build maps a filter chain and the two job paths to the engine invocation.
// Pure and deterministic: no I/O, no side effects. An empty chain produces the
// pass-through re-encode (no filter graph flag). Output is always AAC in an
// M4A-compatible container at the given bitrate.
func Build(binary, bitrate, inputPath, outputPath string, chain []preset.Stage) Invocation {
	args := []string{"-hide_banner", "-nostdin", "-y", "-i", inputPath}
	if graph := (preset.Preset{Chain: chain}).FilterGraph(); graph != "" {
		args = append(args, "-filter_complex", graph)
	}
	args = append(args, "-c:a", "aac", "-b:a", bitrate, outputPath)
	return Invocation{Binary: binary, Args: args}
}
