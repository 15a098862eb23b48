package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProfilesExtracted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taste_profiles_extracted_total",
			Help: "Taste profiles extracted, by requested content type and extraction quality",
		},
		[]string{"content_type", "quality"},
	)

	CandidatesEvaluated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taste_candidates_evaluated_total",
			Help: "Catalog items evaluated against a profile, by admission outcome",
		},
		[]string{"admitted"},
	)

	CandidateTotalScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "taste_candidate_total_score",
			Help:    "Distribution of evaluation totals (6-60)",
			Buckets: prometheus.LinearBuckets(6, 6, 10),
		},
	)

	RecommendationsReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "taste_recommendations_returned",
			Help:    "Number of recommendations returned per request",
			Buckets: []float64{0, 1, 2, 3, 5, 10},
		},
	)

	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "taste_recommend_duration_seconds",
			Help:    "Time to extract, evaluate and rank one request",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
		[]string{"source"},
	)

	BatchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "taste_batch_size",
			Help:    "Requests per batch call",
			Buckets: []float64{1, 2, 5, 10, 20},
		},
	)

	MCPCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taste_mcp_calls_total",
			Help: "MCP JSON-RPC calls by method, tool and outcome",
		},
		[]string{"method", "tool", "status"},
	)
)

func RecordProfile(contentType, quality string) {
	ProfilesExtracted.WithLabelValues(contentType, quality).Inc()
}

func RecordCandidate(total float64, admitted bool) {
	CandidatesEvaluated.WithLabelValues(strconv.FormatBool(admitted)).Inc()
	CandidateTotalScore.Observe(total)
}

// RecordRecommend notes one finished recommend request. source is the entry
// point: api, mcp, batch or cli.
func RecordRecommend(source string, returned int, duration time.Duration) {
	RecommendationsReturned.Observe(float64(returned))
	RecommendDuration.WithLabelValues(source).Observe(duration.Seconds())
}

func RecordBatch(size int) {
	BatchSize.Observe(float64(size))
}

func RecordMCPCall(method, tool string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	MCPCalls.WithLabelValues(method, tool, status).Inc()
}
