package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the pipeline's Prometheus collectors.
type Metrics struct {
	FetchRequests    *prometheus.CounterVec
	ProviderArticles *prometheus.CounterVec
	AnalysisBatches  *prometheus.CounterVec
	AnalysisRetries  prometheus.Counter
	Credibility      *prometheus.CounterVec
	CacheLookups     *prometheus.CounterVec
	PipelineDuration prometheus.Histogram
	Refreshes        *prometheus.CounterVec
}

// New registers the collectors with reg. Use a fresh prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		FetchRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "news",
			Name:      "fetch_requests_total",
			Help:      "fetch-news requests by how they were served (cached, fresh, stale, unchanged, empty).",
		}, []string{"outcome"}),
		ProviderArticles: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "news",
			Name:      "provider_articles_total",
			Help:      "Articles contributed by each provider after dedupe.",
		}, []string{"provider"}),
		AnalysisBatches: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "news",
			Name:      "analysis_batches_total",
			Help:      "Generative analysis batches by result (success, fallback).",
		}, []string{"result"}),
		AnalysisRetries: f.NewCounter(prometheus.CounterOpts{
			Namespace: "news",
			Name:      "analysis_retries_total",
			Help:      "Retried generative analysis attempts.",
		}),
		Credibility: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "news",
			Name:      "credibility_checks_total",
			Help:      "Ensemble credibility checks by verdict.",
		}, []string{"verdict"}),
		CacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "news",
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by result (hit, miss, expired).",
		}, []string{"result"}),
		PipelineDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "news",
			Name:      "pipeline_duration_seconds",
			Help:      "Duration of uncached fetch-news pipeline runs.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30, 50},
		}),
		Refreshes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "news",
			Name:      "refreshes_total",
			Help:      "Scheduled refresh runs by outcome (skipped, changed, unchanged, failed).",
		}, []string{"outcome"}),
	}
}

// NewNop returns metrics registered on a private registry.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}

func (m *Metrics) ObservePipeline(start time.Time) {
	m.PipelineDuration.Observe(time.Since(start).Seconds())
}
