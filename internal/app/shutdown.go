package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"olx-listings-parser/internal/observability"
)

// WithShutdown возвращает контекст, который отменяется по SIGINT или SIGTERM.
// stop снимает обработчик сигналов.
func WithShutdown(parent context.Context, logger *observability.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
	}
}
