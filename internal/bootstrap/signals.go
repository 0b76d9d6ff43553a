package bootstrap

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// LoginCanceller is the part of AuthSession interrupt handling needs.
type LoginCanceller interface {
	Cancel() bool
}

// WatchInterrupts routes SIGINT and SIGTERM. An interrupt during a login
// cancels only that login; any other interrupt cancels ctx. The returned stop
// function releases the signal handler.
func WatchInterrupts(ctx context.Context, session LoginCanceller, logger *slog.Logger) (context.Context, func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	ctx, stop := watchSignals(ctx, quit, session, logger)
	return ctx, func() {
		signal.Stop(quit)
		stop()
	}
}

func watchSignals(
	ctx context.Context,
	quit <-chan os.Signal,
	session LoginCanceller,
	logger *slog.Logger,
) (context.Context, context.CancelFunc) {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(ctx)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case sig := <-quit:
				if sig != syscall.SIGTERM && session != nil && session.Cancel() {
					logger.Debug("interrupt cancelled login")
					continue
				}
				logger.Info("shutting down", "signal", sig.String())
				cancel()
				return
			}
		}
	}()
	return ctx, cancel
}
