package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Content groups the counters the generation pipeline reports.
type Content struct {
	CacheHits   *prometheus.CounterVec
	CacheMisses *prometheus.CounterVec
	Generations *prometheus.CounterVec
	Fallbacks   *prometheus.CounterVec
}

// NewContent registers content metrics on the given registerer.
func NewContent(reg prometheus.Registerer) *Content {
	factory := promauto.With(reg)
	return &Content{
		CacheHits: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "content_cache_hits_total",
			Help: "Generation requests served from the artifact store.",
		}, []string{"content_type"}),
		CacheMisses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "content_cache_misses_total",
			Help: "Generation requests that required a model call.",
		}, []string{"content_type"}),
		Generations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "content_generations_total",
			Help: "Model generation outcomes.",
		}, []string{"content_type", "outcome"}),
		Fallbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "content_generation_fallbacks_total",
			Help: "Generation attempts that needed the relaxed fallback prompt.",
		}, []string{"content_type"}),
	}
}
