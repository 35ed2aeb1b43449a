// Package metrics provides Prometheus instrumentation for the profile
// directory: profile lifecycle counters, match request throughput and match
// latency.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ProfileEventsTotal counts profile lifecycle events, labeled by action:
	// "created", "updated" or "deactivated".
	ProfileEventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "profilematch_profile_events_total",
		Help: "Total number of profile lifecycle events",
	}, []string{"action"})

	// MatchRequestsTotal counts match lookups, labeled by outcome: "ok",
	// "not_found" or "error".
	MatchRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "profilematch_match_requests_total",
		Help: "Total number of match requests",
	}, []string{"outcome"})

	// MatchDuration records how long a match request takes end to end.
	MatchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "profilematch_match_duration_seconds",
		Help:    "Match request latency in seconds",
		Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
	})

	// MatchCandidates records how many eligible candidates were scored.
	MatchCandidates = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "profilematch_match_candidates",
		Help:    "Number of eligible candidates scored per match request",
		Buckets: []float64{0, 1, 5, 10, 50, 100, 500, 1000, 5000},
	})

	// RateLimitedTotal counts requests rejected by the rate limiter.
	RateLimitedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "profilematch_rate_limited_total",
		Help: "Total number of requests rejected by the rate limiter",
	})
)

func init() {
	prometheus.MustRegister(
		ProfileEventsTotal,
		MatchRequestsTotal,
		MatchDuration,
		MatchCandidates,
		RateLimitedTotal,
	)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
