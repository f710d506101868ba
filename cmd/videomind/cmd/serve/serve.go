package serve

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"videomind/internal/app"
	"videomind/internal/app/cleanup"
	"videomind/internal/config"
)

const configFile = "videomind.yaml"

// NewCommand returns the serve subcommand.
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the processing workers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}
}

func run() error {
	cfg := config.Load()
	if err := config.ApplyFile(cfg, configFile); err != nil {
		return err
	}
	if err := cfg.ValidateAPIKeys(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application, err := app.InitializeApplication(ctx, cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	logger := application.Logger
	application.Dispatcher.Start(ctx)

	go sweepLoop(ctx, cfg, logger)
	go monitorLoop(ctx, application, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- application.Server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	}

	cancel()
	application.Dispatcher.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	return application.Server.Shutdown(shutdownCtx)
}

// sweepLoop periodically removes expired scratch files and old frame
// directories.
func sweepLoop(ctx context.Context, cfg *config.Config, logger *slog.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n, err := cleanup.SweepTemp(cfg.TempDir(), cfg.TempMaxAge); err != nil {
				logger.Warn("temp sweep failed", slog.String("error", err.Error()))
			} else if n > 0 {
				logger.Info("temp sweep removed entries", slog.Int("count", n))
			}
			if n, err := cleanup.SweepFrames(cfg.FramesDir(), cfg.FramesMaxAge); err != nil {
				logger.Warn("frames sweep failed", slog.String("error", err.Error()))
			} else if n > 0 {
				logger.Info("frames sweep removed entries", slog.Int("count", n))
			}
		}
	}
}

// monitorLoop force-fails jobs stuck in processing past the staleness
// threshold.
func monitorLoop(ctx context.Context, application *app.Application, logger *slog.Logger) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n, err := application.Monitor.ForceFailStale(); err != nil {
				logger.Warn("stale job check failed", slog.String("error", err.Error()))
			} else if n > 0 {
				logger.Warn("force-failed stale jobs", slog.Int("count", n))
			}
		}
	}
}
