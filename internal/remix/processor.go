package remix

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"remixd/internal/config"
	"remixd/internal/engine"
	"remixd/internal/ffprobe"
	"remixd/internal/fileutil"
	"remixd/internal/logging"
	"remixd/internal/preset"
)

// Work-dir artifacts are scoped by a fresh job identifier; the suffixes are
// fixed so the sweeper can recognize them.
const (
	inputSuffix  = "_input.mp3"
	outputSuffix = "_output.m4a"
)

// Job is one request's end-to-end processing attempt. Jobs are never shared
// across requests.
type Job struct {
	ID         string
	SourceName string
	PresetID   string
	InputPath  string
	OutputPath string
}

// Result describes a successfully processed job.
type Result struct {
	JobID      string
	PresetID   string
	OutputPath string
	// Filename is the client-facing download name: {preset}_{nameNoExt}.m4a.
	Filename string
	Elapsed  time.Duration
}

// Processor orchestrates one upload: save, invoke the engine under a bounded
// timeout, validate the output. The uploaded input is removed before Process
// returns on every path.
type Processor struct {
	workDir     string
	binary      string
	probeBinary string
	bitrate     string
	timeout     time.Duration
	engine      engine.Client
	logger      *slog.Logger
}

// New constructs a Processor from configuration.
func New(cfg *config.Config, client engine.Client, logger *slog.Logger) *Processor {
	return &Processor{
		workDir:     cfg.Paths.WorkDir,
		binary:      cfg.Engine.Binary,
		probeBinary: cfg.Engine.FFprobeBinary,
		bitrate:     cfg.Engine.Bitrate,
		timeout:     time.Duration(cfg.Engine.TimeoutSeconds) * time.Second,
		engine:      client,
		logger:      logging.NewComponentLogger(logger, "processor"),
	}
}

// Process runs the full request lifecycle for one upload and returns the
// output location and download name. Failures are tagged with the package
// sentinel errors for boundary classification.
func (p *Processor) Process(ctx context.Context, upload io.Reader, filename, presetID string) (*Result, error) {
	job := Job{
		ID:         uuid.NewString(),
		SourceName: filepath.Base(filename),
		PresetID:   presetID,
	}
	job.InputPath = filepath.Join(p.workDir, job.ID+inputSuffix)
	job.OutputPath = filepath.Join(p.workDir, job.ID+outputSuffix)

	logger := p.logger.With(
		logging.String(logging.FieldJobID, job.ID),
		logging.String(logging.FieldPreset, presetID),
	)

	size, err := fileutil.WriteStream(job.InputPath, upload)
	if err != nil {
		p.removeInput(job, logger)
		return nil, wrap(ErrUpload, "save upload", err)
	}
	defer p.removeInput(job, logger)
	logger.Info("upload saved",
		logging.String("source", job.SourceName),
		logging.Int64("bytes", size),
	)

	p.inspect(ctx, logger, job.InputPath)

	pre, known := preset.Lookup(presetID)
	if !known {
		logger.Info("unknown preset, falling back to pass-through encode")
	}
	inv := engine.Build(p.binary, p.bitrate, job.InputPath, job.OutputPath, pre.Chain)
	logger.Info("launching engine",
		logging.String("binary", inv.Binary),
		logging.String("filter_graph", pre.FilterGraph()),
	)

	runCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	started := time.Now()
	if err := p.engine.Transform(runCtx, inv); err != nil {
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			logger.Error("engine timed out", logging.Duration("after", p.timeout))
			return nil, wrap(ErrTimeout, "engine run", err)
		case isExit(err):
			logger.Error("engine failed", logging.Error(err))
			return nil, wrap(ErrEngine, "engine run", err)
		default:
			logger.Error("engine run failed", logging.Error(err))
			return nil, wrap(ErrEngine, "engine run", err)
		}
	}

	if !fileutil.Exists(job.OutputPath) {
		logger.Error("engine reported success but wrote no output")
		return nil, wrap(ErrOutputMissing, "output file not created", nil)
	}

	elapsed := time.Since(started)
	logger.Info("processing complete", logging.Duration("elapsed", elapsed))

	return &Result{
		JobID:      job.ID,
		PresetID:   presetID,
		OutputPath: job.OutputPath,
		Filename:   downloadName(presetID, job.SourceName),
		Elapsed:    elapsed,
	}, nil
}

func isExit(err error) bool {
	var exitErr *engine.ExitError
	return errors.As(err, &exitErr)
}

// removeInput deletes the uploaded artifact. Runs unconditionally at the end
// of every request; missing files are not an error.
func (p *Processor) removeInput(job Job, logger *slog.Logger) {
	if err := os.Remove(job.InputPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("input cleanup failed", logging.Error(err))
	}
}

// inspect logs input metadata when ffprobe is available. Best-effort only.
func (p *Processor) inspect(ctx context.Context, logger *slog.Logger, path string) {
	if p.probeBinary == "" {
		return
	}
	probeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := ffprobe.Inspect(probeCtx, p.probeBinary, path)
	if err != nil {
		logger.Debug("input inspection failed", logging.Error(err))
		return
	}
	attrs := []logging.Attr{
		logging.Float64("duration_seconds", result.DurationSeconds()),
		logging.String("container", result.Format.FormatName),
	}
	if stream, ok := result.FirstAudioStream(); ok {
		attrs = append(attrs,
			logging.String("codec", stream.CodecName),
			logging.Int("channels", stream.Channels),
		)
	}
	logger.Info("input inspected", logging.Args(attrs...)...)
}

func downloadName(presetID, sourceName string) string {
	base := filepath.Base(strings.TrimSpace(sourceName))
	if base == "." || base == string(filepath.Separator) || base == "" {
		base = "audio"
	}
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		stem = "audio"
	}
	return presetID + "_" + stem + ".m4a"
}
