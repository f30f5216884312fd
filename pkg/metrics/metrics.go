// Package metrics exposes the engine's Prometheus counters and
// histograms, grounded on the teacher's producer/metrics and
// consumer/metrics packages: package-level promauto collectors,
// scraped at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RunsTotal counts orchestrator runs by terminal outcome
	// ("success" or the failure's machine code).
	RunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mealplan_runs_total",
		Help: "The total number of meal plan runs by outcome",
	}, []string{"outcome"})

	// RunDuration is the end-to-end wall time of one orchestrator run.
	RunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "mealplan_run_duration_seconds",
		Help:    "The time it takes to run one meal plan request end to end",
		Buckets: prometheus.DefBuckets,
	})

	// HTTPRequestsTotal counts requests to the HTTP surface by route
	// and status code.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mealplan_http_requests_total",
		Help: "The total number of HTTP requests",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration is the duration of one HTTP request.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mealplan_http_request_duration_seconds",
		Help:    "The duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	// MarketRunItemsTotal counts ingredients resolved by the market
	// run, split by outcome kind (discovery, failed, error).
	MarketRunItemsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mealplan_marketrun_items_total",
		Help: "The total number of ingredients processed by the market run, by outcome",
	}, []string{"outcome"})

	// SolverFallbacksTotal counts which fallback path the portion
	// solver took, split by kind ("none", "heuristic", "booster",
	// "min_g_fallback").
	SolverFallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mealplan_solver_fallbacks_total",
		Help: "The total number of portion-solver runs by fallback path taken",
	}, []string{"fallback"})
)
