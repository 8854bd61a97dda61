// Package server runs an http.Handler until its context is cancelled and then
// drains in-flight requests.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/aurasynth/midi-api/internal/logger"
)

const (
	readHeaderTimeout = 15 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// Run listens on addr and serves handler until ctx is done
func Run(ctx context.Context, addr string, handler http.Handler, log *logger.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return Serve(ctx, ln, handler, log)
}

// Serve serves handler on ln until ctx is done, then shuts down gracefully
func Serve(ctx context.Context, ln net.Listener, handler http.Handler, log *logger.Logger) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Server listening", logger.Fields{"addr": ln.Addr().String()})
		err := srv.Serve(ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		log.Info("Shutting down server", nil)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return <-serverErr
	}
}
