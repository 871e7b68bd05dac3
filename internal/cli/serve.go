package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/aretw0/florentine"
	httpAdapter "github.com/aretw0/florentine/internal/adapters/http"
	"github.com/aretw0/florentine/internal/metrics"
)

// ServeOptions configures the HTTP server.
type ServeOptions struct {
	Port       string
	ConfigPath string
	LogLevel   string
	Stdout     io.Writer
}

// RunServe serves the migration API until ctx is cancelled, then shuts down
// gracefully.
func RunServe(ctx context.Context, opts ServeOptions) error {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	logger, err := createLogger(os.Stderr, opts.LogLevel)
	if err != nil {
		return err
	}

	rec := metrics.NewRecorder()
	migrator, err := newMigrator(opts.ConfigPath, logger, rec)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + opts.Port,
		Handler:           httpAdapter.NewHandler(migrator, rec.Handler(), florentine.Version, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		fmt.Fprintf(opts.Stdout, "Starting Florentine Server on %s\n", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		fmt.Fprintln(opts.Stdout, "\nStart shutdown...")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			if closeErr := srv.Close(); closeErr != nil {
				logger.Error("Error killing server", "error", closeErr)
			}
			return fmt.Errorf("graceful shutdown did not complete: %w", err)
		}
		fmt.Fprintln(opts.Stdout, "Florentine Server stopped gracefully")
		return nil
	}
}
