// Package metrics defines the Prometheus collectors exported by geokit.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Geocoder metrics
	GeocoderRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geokit",
		Subsystem: "geocoder",
		Name:      "requests_total",
		Help:      "Total geocoding requests by operation and outcome",
	}, []string{"operation", "outcome"})

	GeocoderDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "geokit",
		Subsystem: "geocoder",
		Name:      "request_duration_seconds",
		Help:      "Geocoding request latency in seconds",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"operation"})

	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geokit",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Total geocoding cache hits",
	}, []string{"operation"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geokit",
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Total geocoding cache misses",
	}, []string{"operation"})

	// Antipode descriptions by where the text came from:
	// place, ocean, timeout, unavailable or none.
	AntipodeDescriptions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geokit",
		Subsystem: "antipode",
		Name:      "descriptions_total",
		Help:      "Antipode descriptions by source",
	}, []string{"source"})

	ToolCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geokit",
		Subsystem: "mcp",
		Name:      "tool_calls_total",
		Help:      "Total MCP tool calls by tool and status",
	}, []string{"tool", "status"})
)

// Serve exposes /metrics on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("metrics server shutdown", "error", err)
		}
	}()

	slog.Info("serving metrics", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
