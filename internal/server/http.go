package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/videoai/comprehension-api/internal/config"
)

// NewHTTPServer wires base routes (health, metrics) and the content API.
// The generate endpoint carries a tighter rate budget than the read
// endpoints because each miss costs a model call.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, handlers *Handlers, limiter *RateLimiter) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("/metrics", promhttp.Handler())

	generateLimit := limiter.Limit("generate", cfg.RateLimit.GenerateLimit, cfg.RateLimit.Window)
	apiLimit := limiter.Limit("api", cfg.RateLimit.APILimit, cfg.RateLimit.Window)

	mux.Handle("GET /api", apiLimit(http.HandlerFunc(handlers.Index)))
	mux.Handle("POST /api/generate", generateLimit(http.HandlerFunc(handlers.Generate)))
	mux.Handle("GET /api/history", apiLimit(http.HandlerFunc(handlers.History)))
	mux.Handle("GET /api/history/{contentId}", apiLimit(http.HandlerFunc(handlers.Detail)))
	mux.Handle("POST /api/history/{contentId}/validate", apiLimit(http.HandlerFunc(handlers.ValidateAnswers)))

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: CORS(cfg.CORS)(mux),
	}
}
