package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Candidate pipeline stages.
const (
	StageSampled  = "sampled"
	StageRelevant = "relevant"
	StageReturned = "returned"
)

// Search pipeline Prometheus metrics.
var (
	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "rsvped",
			Name:      "search_duration_seconds",
			Help:      "Search pipeline duration in seconds, store round-trip included",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"entity"},
	)

	SearchCandidatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rsvped",
			Name:      "search_candidates_total",
			Help:      "Candidates seen per pipeline stage",
		},
		[]string{"entity", "stage"},
	)

	SearchErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rsvped",
			Name:      "search_errors_total",
			Help:      "Searches that failed on the candidate store",
		},
		[]string{"entity"},
	)

	AutocompleteSuggestions = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "rsvped",
			Name:      "autocomplete_suggestions",
			Help:      "Number of suggestions returned per autocomplete call",
			Buckets:   []float64{0, 1, 2, 4, 8, 12, 16, 20},
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(SearchCandidatesTotal)
	prometheus.MustRegister(SearchErrorsTotal)
	prometheus.MustRegister(AutocompleteSuggestions)
	searchMetricsRegistered = true
}

// ObserveSearch records one completed search for entity.
func ObserveSearch(entity string, started time.Time, sampled, relevant, returned int) {
	SearchDuration.WithLabelValues(entity).Observe(time.Since(started).Seconds())
	SearchCandidatesTotal.WithLabelValues(entity, StageSampled).Add(float64(sampled))
	SearchCandidatesTotal.WithLabelValues(entity, StageRelevant).Add(float64(relevant))
	SearchCandidatesTotal.WithLabelValues(entity, StageReturned).Add(float64(returned))
}
