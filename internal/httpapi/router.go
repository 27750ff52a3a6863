// Package httpapi exposes the remittance aggregator over HTTP: a thin
// chi router translating query parameters into domain requests and
// domain results into the JSON contract of spec.md's external
// interfaces.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/fd1az/remit-aggregator/business/remit/app"
	"github.com/fd1az/remit-aggregator/internal/logger"
	"github.com/fd1az/remit-aggregator/internal/ratelimit"
)

// Config controls router construction.
type Config struct {
	// RequestsPerMinute bounds client-facing request volume; requests
	// beyond it receive 429. Zero disables the limit.
	RequestsPerMinute int
	// DefaultPerProviderTimeoutMS is applied to requests that don't set
	// their own per_provider_timeout_ms.
	DefaultPerProviderTimeoutMS int
}

// NewRouter builds the chi.Router serving the aggregator's HTTP surface.
func NewRouter(coordinator *app.Coordinator, registry app.Registry, log logger.LoggerInterface, cfg Config) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
	}))

	if cfg.RequestsPerMinute > 0 {
		limiter := ratelimit.New(cfg.RequestsPerMinute)
		r.Use(rateLimitMiddleware(limiter))
	}

	h := &handlers{
		coordinator:                 coordinator,
		registry:                    registry,
		logger:                      log,
		defaultPerProviderTimeoutMS: cfg.DefaultPerProviderTimeoutMS,
	}

	r.Route("/api", func(api chi.Router) {
		api.Get("/quotes/", h.getQuotes)
		api.Route("/providers", func(providers chi.Router) {
			providers.Get("/", h.listProviders)
			providers.Get("/{id}/", h.getProvider)
		})
	})

	return r
}

func requestLogger(log logger.LoggerInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Info(r.Context(), "http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

func rateLimitMiddleware(limiter *ratelimit.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				writeRateLimited(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
