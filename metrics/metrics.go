// Package metrics provides Prometheus metrics for the clustering engines.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "symnmf"

// Engine label values.
const (
	EngineKMeans = "kmeans"
	EngineSymNMF = "symnmf"
)

var (
	// RunsTotal counts engine runs by outcome.
	RunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Total clustering runs",
		},
		[]string{"engine", "status"}, // status: success/error
	)

	// Iterations tracks iterations per completed run.
	Iterations = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "iterations",
			Help:      "Iterations performed per run",
			Buckets:   prometheus.LinearBuckets(0, 50, 21), // 0..1000
		},
		[]string{"engine"},
	)

	// Converged counts runs that stopped on the ε threshold rather than the cap.
	Converged = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "converged_total",
			Help:      "Runs that converged before the iteration cap",
		},
		[]string{"engine"},
	)

	// RunLatency tracks wall-clock time per run.
	RunLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_latency_seconds",
			Help:      "Clustering run latency in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"engine"},
	)

	// SilhouetteScore holds the last silhouette score per engine.
	SilhouetteScore = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "silhouette_score",
			Help:      "Mean silhouette coefficient of the last run",
		},
		[]string{"engine"},
	)
)

// ObserveRun records one engine run.
func ObserveRun(engine string, iterations int, converged bool, elapsed time.Duration, err error) {
	if err != nil {
		RunsTotal.WithLabelValues(engine, "error").Inc()
		return
	}
	RunsTotal.WithLabelValues(engine, "success").Inc()
	Iterations.WithLabelValues(engine).Observe(float64(iterations))
	RunLatency.WithLabelValues(engine).Observe(elapsed.Seconds())
	if converged {
		Converged.WithLabelValues(engine).Inc()
	}
}

// WriteTextfile writes every registered metric in the text exposition format
// to path, for a node-exporter textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
