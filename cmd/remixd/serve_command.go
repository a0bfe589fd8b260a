package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"remixd/internal/engine"
	"remixd/internal/logging"
	"remixd/internal/remix"
	"remixd/internal/server"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the remix HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), ctx)
		},
	}
}

func runServe(cmdCtx context.Context, ctx *commandContext) error {
	if ctx == nil {
		return fmt.Errorf("command context is required")
	}

	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logPath := filepath.Join(cfg.Paths.LogDir, "remixd.log")
	logger, err := logging.New(logging.Options{
		Level:            cfg.Logging.Level,
		Format:           cfg.Logging.Format,
		OutputPaths:      []string{"stdout", logPath},
		ErrorOutputPaths: []string{"stderr", logPath},
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	lockPath := filepath.Join(cfg.Paths.LogDir, "remixd.lock")
	lock := flock.New(lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !locked {
		return errors.New("another remixd instance is already running")
	}
	defer lock.Unlock() //nolint:errcheck

	deps := engine.CheckBinaries(engine.Requirements(cfg.Engine.Binary, cfg.Engine.FFprobeBinary))
	for _, dep := range deps {
		if dep.Available {
			logger.Info("dependency available", logging.String("name", dep.Name))
			continue
		}
		if dep.Optional {
			logger.Warn("optional dependency missing",
				logging.String("name", dep.Name),
				logging.String("detail", dep.Detail))
			continue
		}
		return fmt.Errorf("required dependency %s not found: %s", dep.Name, dep.Detail)
	}

	client := engine.NewCLI(engine.WithBinary(cfg.Engine.Binary))
	processor := remix.New(cfg, client, logger)

	sweeper := remix.NewSweeper(cfg, logger)
	sweeper.Start(signalCtx)

	srv := server.New(cfg, processor, deps, logger)
	if err := srv.Start(signalCtx); err != nil {
		return fmt.Errorf("start server: %w", err)
	}

	<-signalCtx.Done()
	logger.Info("remixd shutting down")
	srv.Stop()
	return nil
}
