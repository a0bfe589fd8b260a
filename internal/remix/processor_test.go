package remix_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"remixd/internal/config"
	"remixd/internal/engine"
	"remixd/internal/logging"
	"remixd/internal/remix"
)

// fakeEngine simulates the external tool: optionally writes the output file,
// optionally fails, optionally blocks until the context expires.
type fakeEngine struct {
	mu          sync.Mutex
	invocations []engine.Invocation
	writeOutput bool
	hang        bool
	err         error
}

func (f *fakeEngine) Transform(ctx context.Context, inv engine.Invocation) error {
	f.mu.Lock()
	f.invocations = append(f.invocations, inv)
	f.mu.Unlock()

	if f.hang {
		<-ctx.Done()
		return ctx.Err()
	}
	if f.writeOutput {
		outputPath := inv.Args[len(inv.Args)-1]
		inputPath := inv.Args[4] // after -hide_banner -nostdin -y -i
		content, err := os.ReadFile(inputPath)
		if err != nil {
			return err
		}
		if err := os.WriteFile(outputPath, append([]byte("processed:"), content...), 0o644); err != nil {
			return err
		}
	}
	return f.err
}

func (f *fakeEngine) lastInvocation() engine.Invocation {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.invocations[len(f.invocations)-1]
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.WorkDir = t.TempDir()
	cfg.Engine.FFprobeBinary = ""
	cfg.Engine.TimeoutSeconds = 1
	return &cfg
}

func assertNoInputArtifacts(t *testing.T, workDir string) {
	t.Helper()
	entries, err := os.ReadDir(workDir)
	if err != nil {
		t.Fatalf("read work dir: %v", err)
	}
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), "_input.mp3") {
			t.Fatalf("input artifact %q survived the request", entry.Name())
		}
	}
}

func TestProcessSuccess(t *testing.T) {
	cfg := testConfig(t)
	fake := &fakeEngine{writeOutput: true}
	proc := remix.New(cfg, fake, logging.NewNop())

	result, err := proc.Process(context.Background(), strings.NewReader("wav-bytes"), "song.wav", "nightcore")
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if result.Filename != "nightcore_song.m4a" {
		t.Fatalf("unexpected download name: %q", result.Filename)
	}
	content, err := os.ReadFile(result.OutputPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(content) != "processed:wav-bytes" {
		t.Fatalf("unexpected output content: %q", content)
	}
	inv := fake.lastInvocation()
	graphSeen := false
	for _, arg := range inv.Args {
		if strings.HasPrefix(arg, "atempo=1.25,") {
			graphSeen = true
		}
	}
	if !graphSeen {
		t.Fatalf("expected nightcore filter graph in invocation: %v", inv.Args)
	}
	assertNoInputArtifacts(t, cfg.Paths.WorkDir)
}

func TestProcessUnknownPresetFallsThrough(t *testing.T) {
	cfg := testConfig(t)
	fake := &fakeEngine{writeOutput: true}
	proc := remix.New(cfg, fake, logging.NewNop())

	result, err := proc.Process(context.Background(), strings.NewReader("bytes"), "track.mp3", "not_a_real_preset")
	if err != nil {
		t.Fatalf("unknown preset must not fail, got: %v", err)
	}
	if result.Filename != "not_a_real_preset_track.m4a" {
		t.Fatalf("unexpected download name: %q", result.Filename)
	}
	for _, arg := range fake.lastInvocation().Args {
		if arg == "-filter_complex" {
			t.Fatal("pass-through encode must not carry a filter graph")
		}
	}
	assertNoInputArtifacts(t, cfg.Paths.WorkDir)
}

func TestProcessEngineFailure(t *testing.T) {
	cfg := testConfig(t)
	fake := &fakeEngine{err: &engine.ExitError{Stderr: "decode error on frame 12", Err: errors.New("exit status 1")}}
	proc := remix.New(cfg, fake, logging.NewNop())

	_, err := proc.Process(context.Background(), strings.NewReader("bytes"), "song.mp3", "lofi")
	if !errors.Is(err, remix.ErrEngine) {
		t.Fatalf("expected ErrEngine, got %v", err)
	}
	if remix.EngineStderr(err) != "decode error on frame 12" {
		t.Fatalf("expected verbatim stderr, got %q", remix.EngineStderr(err))
	}
	assertNoInputArtifacts(t, cfg.Paths.WorkDir)
}

func TestProcessOutputMissing(t *testing.T) {
	cfg := testConfig(t)
	fake := &fakeEngine{} // exit zero, no output written
	proc := remix.New(cfg, fake, logging.NewNop())

	_, err := proc.Process(context.Background(), strings.NewReader("bytes"), "song.mp3", "reverb")
	if !errors.Is(err, remix.ErrOutputMissing) {
		t.Fatalf("expected ErrOutputMissing, got %v", err)
	}
	assertNoInputArtifacts(t, cfg.Paths.WorkDir)
}

func TestProcessTimeout(t *testing.T) {
	cfg := testConfig(t)
	fake := &fakeEngine{hang: true}
	proc := remix.New(cfg, fake, logging.NewNop())

	start := time.Now()
	_, err := proc.Process(context.Background(), strings.NewReader("bytes"), "song.mp3", "vaporwave")
	if !errors.Is(err, remix.ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Fatal("timeout took far longer than the configured bound")
	}
	assertNoInputArtifacts(t, cfg.Paths.WorkDir)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestProcessUploadFailure(t *testing.T) {
	cfg := testConfig(t)
	proc := remix.New(cfg, &fakeEngine{}, logging.NewNop())

	_, err := proc.Process(context.Background(), failingReader{}, "song.mp3", "lofi")
	if !errors.Is(err, remix.ErrUpload) {
		t.Fatalf("expected ErrUpload, got %v", err)
	}
	assertNoInputArtifacts(t, cfg.Paths.WorkDir)
}

func TestConcurrentJobsDoNotCollide(t *testing.T) {
	cfg := testConfig(t)
	fake := &fakeEngine{writeOutput: true}
	proc := remix.New(cfg, fake, logging.NewNop())

	const n = 50
	results := make([]*remix.Result, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			payload := fmt.Sprintf("payload-%d", i)
			results[i], errs[i] = proc.Process(context.Background(), strings.NewReader(payload), "song.mp3", "lofi")
		}(i)
	}
	wg.Wait()

	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		if errs[i] != nil {
			t.Fatalf("request %d failed: %v", i, errs[i])
		}
		if _, dup := seen[results[i].OutputPath]; dup {
			t.Fatalf("output path collision: %q", results[i].OutputPath)
		}
		seen[results[i].OutputPath] = struct{}{}
		content, err := os.ReadFile(results[i].OutputPath)
		if err != nil {
			t.Fatalf("read output %d: %v", i, err)
		}
		if string(content) != fmt.Sprintf("processed:payload-%d", i) {
			t.Fatalf("request %d got foreign output: %q", i, content)
		}
	}
	assertNoInputArtifacts(t, cfg.Paths.WorkDir)
}

func TestDownloadNameHandlesExtensionlessUploads(t *testing.T) {
	cfg := testConfig(t)
	fake := &fakeEngine{writeOutput: true}
	proc := remix.New(cfg, fake, logging.NewNop())

	result, err := proc.Process(context.Background(), strings.NewReader("bytes"), "rawtrack", "lofi")
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if result.Filename != "lofi_rawtrack.m4a" {
		t.Fatalf("unexpected download name: %q", result.Filename)
	}
	if !strings.HasSuffix(result.Filename, ".m4a") {
		t.Fatalf("download name must end in .m4a: %q", result.Filename)
	}
}
