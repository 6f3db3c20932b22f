package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/spf13/cobra"

	"newsletter_digest/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	configPath string
	cfg        *config.Config
	logger     *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{logger: setupLogger("info")}

	root := &cobra.Command{
		Use:           "digest",
		Short:         "Newsletter ingestion and weekly digest",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				opts.logger.Error("failed to load config", "error", err)
				return err
			}
			opts.cfg = cfg
			opts.logger = setupLogger(cfg.LogLevel)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "config.yaml", "path to config file")

	root.AddCommand(
		newIngestCmd(opts),
		newCompileCmd(opts),
		newRepublishCmd(opts),
		newRegenerateIdeasCmd(opts),
		newClassifyIdeasCmd(opts),
		newServeCmd(opts),
		newAuthCmd(opts),
	)
	return root
}

var (
	notifySignals = signal.Notify
	stopSignals   = signal.Stop
)

// signalContext is cancelled on SIGINT or SIGTERM. Signal delivery stops
// once the context is done.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	notify, stop := notifySignals, stopSignals

	go func() {
		sigCh := make(chan os.Signal, 1)
		notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer stop(sigCh)
		select {
		case sig := <-sigCh:
			logger.Info("received shutdown signal", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

func isCancel(err error) bool {
	return errors.Is(err, context.Canceled)
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
