package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/fieldwork/internal/http/customer"
	"github.com/MrJamesThe3rd/fieldwork/internal/http/export"
	"github.com/MrJamesThe3rd/fieldwork/internal/http/health"
	"github.com/MrJamesThe3rd/fieldwork/internal/http/invoice"
	"github.com/MrJamesThe3rd/fieldwork/internal/http/job"
	fwmiddleware "github.com/MrJamesThe3rd/fieldwork/internal/http/middleware"
	"github.com/MrJamesThe3rd/fieldwork/internal/http/technician"
	"github.com/MrJamesThe3rd/fieldwork/internal/metrics"
)

type Handlers struct {
	Health      *health.Handler
	Customers   *customer.Handler
	Technicians *technician.Handler
	Jobs        *job.Handler
	Invoices    *invoice.Handler
	Export      *export.Handler
}

// Options configures the cross-cutting middleware. Nil Auth or RateLimiter
// leaves that layer out.
type Options struct {
	CORSOrigins []string
	Auth        *fwmiddleware.Auth
	RateLimiter *fwmiddleware.RateLimiter
	Metrics     bool
}

func New(h Handlers, opts Options) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"Content-Disposition", "X-Statement-Count"},
		MaxAge:         300,
	}))

	if opts.Metrics {
		router.Use(metrics.Instrument)
		router.Handle("/metrics", metrics.Handler())
	}

	router.Route("/api", func(r chi.Router) {
		r.Route("/health", h.Health.Routes)

		r.Route("/v1", func(r chi.Router) {
			if opts.RateLimiter != nil {
				r.Use(opts.RateLimiter.Handler)
			}

			if opts.Auth != nil {
				r.Use(opts.Auth.Handler)
			}

			r.Route("/customers", h.Customers.Routes)

			r.Route("/technicians", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Technicians.Routes(r)
			})

			r.Route("/jobs", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Jobs.Routes(r)
			})

			r.Route("/invoices", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Invoices.Routes(r)
			})

			r.Route("/export", h.Export.Routes)
		})
	})

	return router
}
