// Package bootstrap provides process lifecycle helpers for the server binary.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

type shutdownHook struct {
	name string
	fn   func(ctx context.Context) error
}

// App runs a service until it stops or the process is signalled, then releases its resources.
type App struct {
	mu              sync.Mutex
	hooks           []shutdownHook
	shutdownTimeout time.Duration
	signals         []os.Signal
}

// New creates an App whose shutdown hooks share a deadline of shutdownTimeout.
func New(shutdownTimeout time.Duration) *App {
	return &App{
		shutdownTimeout: shutdownTimeout,
		signals:         []os.Signal{os.Interrupt, syscall.SIGTERM},
	}
}

// AddShutdownHook registers fn under name. Hooks run in reverse registration order, so a resource
// registered after its dependencies is released before them. Safe to call from inside Run.
func (a *App) AddShutdownHook(name string, fn func(ctx context.Context) error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.hooks = append(a.hooks, shutdownHook{name: name, fn: fn})
}

// Run calls run with a context that is cancelled on SIGINT or SIGTERM.
// Shutdown hooks run once run has returned or a signal arrived, whichever is first.
// The returned error joins run's error with every hook failure.
func (a *App) Run(ctx context.Context, run func(ctx context.Context) error) error {
	ctx, cancel := signal.NotifyContext(ctx, a.signals...)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- run(ctx)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		slog.Default().Info("shutting down", "reason", context.Cause(ctx))
	case runErr = <-errCh:
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer shutdownCancel()
	return errors.Join(runErr, a.shutdown(shutdownCtx))
}

func (a *App) shutdown(ctx context.Context) error {
	a.mu.Lock()
	hooks := make([]shutdownHook, len(a.hooks))
	copy(hooks, a.hooks)
	a.mu.Unlock()

	var errs []error
	for i := len(hooks) - 1; i >= 0; i-- {
		h := hooks[i]
		if err := h.fn(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown %s: %w", h.name, err))
			continue
		}
		slog.Default().Debug("shutdown hook finished", "name", h.name)
	}
	return errors.Join(errs...)
}
