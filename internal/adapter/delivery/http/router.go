// Package http provides the HTTP delivery layer of the site backend: the JSON API under
// /api/v1, short-link redirects, metrics and API docs.
package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/vadimbarashkov/ngo-site/pkg/metrics"
	"github.com/vadimbarashkov/ngo-site/pkg/middleware/ratelimit"
	"github.com/vadimbarashkov/ngo-site/pkg/middleware/recoverer"
)

const (
	defaultContentMaxAge = 5 * time.Minute
	eventsMaxAge         = 5 * time.Minute
	defaultSwaggerFile   = "./docs/swagger.yml"
)

// Options carries the router's dependencies. Metrics and Limiter are optional.
type Options struct {
	Logger         *httplog.Logger
	URLs           urlUseCase
	Content        contentUseCase
	Board          boardUseCase
	Events         eventsUseCase
	Outreach       outreachUseCase
	Metrics        *metrics.Metrics
	Limiter        *ratelimit.Limiter
	AllowedOrigins []string
	ContentMaxAge  time.Duration
	PublicBaseURL  string
	SwaggerFile    string
}

// NewRouter initializes and returns a new Chi router configured with middleware and routes for the site API.
func NewRouter(opts Options) *chi.Mux {
	if opts.ContentMaxAge <= 0 {
		opts.ContentMaxAge = defaultContentMaxAge
	}
	if opts.SwaggerFile == "" {
		opts.SwaggerFile = defaultSwaggerFile
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"https://*"}
	}

	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"POST", "GET", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           86400,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httplog.RequestLogger(opts.Logger))
	r.Use(recoverer.New(opts.Logger.Logger))
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	limit := func(next http.Handler) http.Handler { return next }
	if opts.Limiter != nil {
		limit = opts.Limiter.Middleware(http.HandlerFunc(handleTooManyRequests))
	}

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/swagger.yml"),
	))

	r.Get("/docs/swagger.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, opts.SwaggerFile)
	})

	validate := newValidator()
	links := newURLHandler(opts.URLs, validate, opts.PublicBaseURL)

	r.Get("/s/{shortCode}", links.redirect)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ping", handlePing)

		r.Route("/content", func(r chi.Router) {
			h := newContentHandler(opts.Content)

			r.Use(cacheControl(opts.ContentMaxAge))

			r.Get("/", h.listCollections)

			r.Route("/{collection}", func(r chi.Router) {
				r.Get("/", h.listPosts)
				r.Get("/categories", h.listCategories)
				r.Get("/tags", h.listTags)
				r.Get("/{slug}", h.getPost)
				r.Get("/{slug}/related", h.relatedPosts)
			})
		})

		r.Route("/links", func(r chi.Router) {
			r.With(limit).Post("/", links.shortenURL)
			r.Get("/{shortCode}/stats", links.getURLStats)
		})

		r.Get("/projects", newBoardHandler(opts.Board).getBoard)

		r.With(cacheControl(eventsMaxAge)).Get("/events", newEventsHandler(opts.Events).listEvents)

		outreach := newOutreachHandler(opts.Outreach, validate)

		r.With(limit).Post("/contact", outreach.submitContact)
		r.With(limit).Post("/newsletter", outreach.subscribe)
	})

	return r
}
