package util

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// SetupSignalHandler creates a context that is cancelled on receiving SIGINT or SIGTERM.
// The cancellation cause is ErrShutdown. A second signal forces immediate exit.
func SetupSignalHandler(logger *slog.Logger) context.Context {
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancelCause(context.Background())

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig.String())
		cancel(ErrShutdown)

		// Workers only stop between jobs; a second signal skips the wait
		sig = <-sigCh
		logger.Warn("received second shutdown signal, forcing exit", "signal", sig.String())
		os.Exit(1)
	}()

	return ctx
}
