package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LLMRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aineoo_llm_requests_total",
		Help: "LLM chat completions by provider and outcome",
	}, []string{"provider", "status"})

	LLMRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "aineoo_llm_request_duration_seconds",
		Help:    "Duration of LLM chat completions including retries",
		Buckets: []float64{1, 2, 5, 10, 20, 30, 60, 120},
	}, []string{"provider"})

	ArticlesGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aineoo_articles_generated_total",
		Help: "Generated articles by content source",
	}, []string{"source"})

	MediaGenerations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aineoo_media_generations_total",
		Help: "Image, video and avatar generations by outcome",
	}, []string{"kind", "status"})

	WordPressRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aineoo_wordpress_requests_total",
		Help: "WordPress REST requests by method and status code",
	}, []string{"method", "code"})

	QualityScore = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "aineoo_quality_score",
		Help:    "Quality score of rendered articles",
		Buckets: []float64{40, 50, 60, 70, 75, 80, 90, 100},
	})

	PublishRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aineoo_publish_runs_total",
		Help: "Publish pipeline runs by outcome",
	}, []string{"status"})
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Outcome maps an error to a status label.
func Outcome(err error) string {
	if err != nil {
		return StatusError
	}
	return StatusSuccess
}
