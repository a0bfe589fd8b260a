package remix

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"remixd/internal/config"
	"remixd/internal/logging"
)

// Sweeper prunes stale work-dir artifacts. Successful outputs are streamed to
// the client but never deleted inline; without the sweeper they accumulate
// forever.
type Sweeper struct {
	dir      string
	maxAge   time.Duration
	interval time.Duration
	logger   *slog.Logger
}

// NewSweeper constructs a sweeper from configuration, or nil when cleanup is
// disabled.
func NewSweeper(cfg *config.Config, logger *slog.Logger) *Sweeper {
	if cfg == nil || !cfg.Cleanup.Enabled {
		return nil
	}
	return &Sweeper{
		dir:      cfg.Paths.WorkDir,
		maxAge:   time.Duration(cfg.Cleanup.MaxAgeSeconds) * time.Second,
		interval: time.Duration(cfg.Cleanup.IntervalSeconds) * time.Second,
		logger:   logging.NewComponentLogger(logger, "sweeper"),
	}
}

// Start runs the sweep loop until ctx is cancelled. Safe to call on a nil
// sweeper.
func (s *Sweeper) Start(ctx context.Context) {
	if s == nil {
		return
	}
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := s.Sweep(time.Now()); removed > 0 {
					s.logger.Info("stale artifacts removed", logging.Int("count", removed))
				}
			}
		}
	}()
}

// Sweep removes job artifacts in the work dir older than the configured age
// and returns the number of files deleted. Only files carrying the job
// suffixes are considered; anything else in the directory is left alone.
func (s *Sweeper) Sweep(now time.Time) int {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.logger.Warn("work dir scan failed", logging.Error(err))
		return 0
	}
	cutoff := now.Add(-s.maxAge)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, inputSuffix) && !strings.HasSuffix(name, outputSuffix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}
		path := filepath.Join(s.dir, name)
		if err := os.Remove(path); err != nil {
			s.logger.Warn("stale artifact removal failed",
				logging.String("path", path),
				logging.Error(err),
			)
			continue
		}
		removed++
	}
	return removed
}
