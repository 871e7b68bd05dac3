package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/florentine"
	"github.com/aretw0/florentine/internal/config"
	"github.com/aretw0/florentine/internal/logging"
	"github.com/aretw0/florentine/internal/metrics"
	"github.com/aretw0/florentine/pkg/domain"
)

// createLogger configures the application logger on w.
func createLogger(w io.Writer, level string) (*slog.Logger, error) {
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return logging.NewWithWriter(w, lvl), nil
}

// newMigrator wires settings, logging and metrics into a Migrator. rec may
// be nil.
func newMigrator(configPath string, logger *slog.Logger, rec *metrics.Recorder) (*florentine.Migrator, error) {
	settings, err := config.Load(configPath)
	if err != nil {
		return nil, &ConfigError{Path: configPath, Err: err}
	}
	opts := []florentine.Option{
		florentine.WithSettings(settings),
		florentine.WithLogger(logger),
	}
	if rec != nil {
		opts = append(opts, florentine.WithObserver(rec.Observe))
	}
	return florentine.New(opts...), nil
}

// ConfigError reports a settings file that could not be used.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Describe turns an error into the one-line message shown to the user.
func Describe(err error, inputPath string) string {
	var cfgErr *ConfigError
	switch {
	case errors.As(err, &cfgErr):
		return fmt.Sprintf("Invalid config file '%s': %v", cfgErr.Path, cfgErr.Err)
	case errors.Is(err, domain.ErrNotFound) && inputPath != "":
		return fmt.Sprintf("Could not find input file '%s'", inputPath)
	case errors.Is(err, domain.ErrMalformedInput):
		return fmt.Sprintf("Invalid JSON in input file: %v", errors.Unwrap(err))
	default:
		return err.Error()
	}
}
