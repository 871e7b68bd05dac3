package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aretw0/florentine/pkg/domain"
	"github.com/aretw0/florentine/pkg/migrate"
	"github.com/go-chi/chi/v5"
)

// MaxBodyBytes caps the size of an uploaded workflow.
const MaxBodyBytes = 32 << 20

// Migrator is the part of the library the HTTP surface needs.
type Migrator interface {
	MigrateBytes(data []byte, pretty bool) ([]byte, *migrate.Report, error)
}

// Server exposes a Migrator over HTTP.
type Server struct {
	Migrator Migrator
	Metrics  http.Handler
	Version  string
	Logger   *slog.Logger
}

// NewHandler creates the HTTP handler. metrics may be nil, in which case
// /metrics is not mounted.
func NewHandler(m Migrator, metrics http.Handler, version string, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	server := &Server{Migrator: m, Metrics: metrics, Version: version, Logger: logger}

	r := chi.NewRouter()
	r.Post("/migrate", server.Migrate)
	r.Get("/health", server.Health)
	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics)
	}
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Expose-Headers", "X-Florentine-Input-Nodes, X-Florentine-Output-Nodes")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Migrate handles POST /migrate. The body is a workflow document; the
// response is the migrated document. ?pretty=true indents the output.
func (s *Server) Migrate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, err)
			return
		}
		writeError(w, http.StatusBadRequest, err)
		return
	}

	pretty, _ := strconv.ParseBool(r.URL.Query().Get("pretty"))

	out, report, err := s.Migrator.MigrateBytes(body, pretty)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrMalformedInput) {
			status = http.StatusBadRequest
		}
		s.Logger.Warn("Migrate: request failed", "error", err, "kind", domain.Kind(err))
		writeError(w, status, err)
		return
	}

	s.Logger.Info("Migrate: workflow migrated",
		"input_nodes", report.InputNodes,
		"output_nodes", report.OutputNodes,
		"substitutions", len(report.Substitutions),
	)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Florentine-Input-Nodes", strconv.Itoa(report.InputNodes))
	w.Header().Set("X-Florentine-Output-Nodes", strconv.Itoa(report.OutputNodes))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"version": s.Version,
	})
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": fmt.Sprint(err),
		"kind":  domain.Kind(err),
	})
}
