// Package metrics exposes Prometheus instrumentation for the airdrop server.
// The stdio transport carries no HTTP surface, so the metrics listener is
// optional and off unless an address is configured.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ToolCalls counts tool invocations by tool name and outcome
	// (ok, validation, precondition, execution).
	ToolCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "airdrop",
		Name:      "tool_calls_total",
		Help:      "Tool invocations by tool and outcome.",
	}, []string{"tool", "outcome"})

	// ToolDuration observes tool handler latency.
	ToolDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "airdrop",
		Name:      "tool_duration_seconds",
		Help:      "Tool handler latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"tool"})

	// BatchesSubmitted counts distribution batches by result.
	BatchesSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "airdrop",
		Name:      "batches_total",
		Help:      "Distribution batches submitted, by result.",
	}, []string{"result"})
)

// ObserveTool records one tool call.
func ObserveTool(tool, outcome string, elapsed time.Duration) {
	ToolCalls.WithLabelValues(tool, outcome).Inc()
	ToolDuration.WithLabelValues(tool).Observe(elapsed.Seconds())
}

// ObserveBatches records the batch outcomes of one distribution run.
func ObserveBatches(succeeded, failed int) {
	BatchesSubmitted.WithLabelValues("ok").Add(float64(succeeded))
	BatchesSubmitted.WithLabelValues("failed").Add(float64(failed))
}

// Serve runs the /metrics listener on addr until ctx is canceled. An empty
// addr disables the listener and returns immediately.
func Serve(ctx context.Context, addr string) error {
	if addr == "" {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
