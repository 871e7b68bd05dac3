// Package metrics counts migrations with Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/aretw0/florentine/pkg/migrate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder owns a private registry so several recorders (e.g. in tests)
// never clash on the global one.
type Recorder struct {
	registry  *prometheus.Registry
	migrated  *prometheus.CounterVec
	fallbacks prometheus.Counter
	created   prometheus.Counter
	workflows prometheus.Counter
}

// NewRecorder creates a Recorder with all counters registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		migrated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "florentine_nodes_migrated_total",
				Help: "Total number of nodes rewritten, by rule",
			},
			[]string{"rule"},
		),
		fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "florentine_prompt_fallbacks_total",
			Help: "Total number of detection nodes migrated with the default prompt",
		}),
		created: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "florentine_nodes_created_total",
			Help: "Total number of nodes added by segmentation expansions",
		}),
		workflows: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "florentine_workflows_migrated_total",
			Help: "Total number of workflow documents migrated",
		}),
	}
	r.registry.MustRegister(r.migrated, r.fallbacks, r.created, r.workflows)

	// Expose every rule with a zero value from the start.
	for _, rule := range migrate.Rules() {
		r.migrated.WithLabelValues(rule.String())
	}
	return r
}

// Observe records the outcome of one rewrite.
func (r *Recorder) Observe(report *migrate.Report) {
	if report == nil {
		return
	}
	r.workflows.Inc()
	for _, sub := range report.Substitutions {
		r.migrated.WithLabelValues(sub.Rule.String()).Inc()
		if sub.PromptFallback {
			r.fallbacks.Inc()
		}
		r.created.Add(float64(len(sub.Created)))
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// WriteTextfile writes the counters to path for the node_exporter
// textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
