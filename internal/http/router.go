package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MrJamesThe3rd/fleetledger/internal/http/auth"
	"github.com/MrJamesThe3rd/fleetledger/internal/http/billing"
	"github.com/MrJamesThe3rd/fleetledger/internal/http/catalog"
	"github.com/MrJamesThe3rd/fleetledger/internal/http/importcsv"
	"github.com/MrJamesThe3rd/fleetledger/internal/http/matching"
	"github.com/MrJamesThe3rd/fleetledger/internal/http/rental"
	"github.com/MrJamesThe3rd/fleetledger/internal/http/settlement"
)

type Handlers struct {
	Rentals    *rental.Handler
	Billing    *billing.Handler
	Settlement *settlement.Handler
	Catalog    *catalog.Handler
	Import     *importcsv.Handler
	Matching   *matching.Handler
}

type Options struct {
	Auth           *auth.Authenticator
	AllowedOrigins []string
	Timeout        time.Duration
	// Metrics serves /metrics when set.
	Metrics http.Handler
}

func New(h Handlers, opts Options) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	if opts.Timeout > 0 {
		router.Use(middleware.Timeout(opts.Timeout))
	}

	if opts.Metrics != nil {
		router.Handle("/metrics", opts.Metrics)
	}

	router.Route("/api/v1", func(r chi.Router) {
		if opts.Auth != nil {
			r.Use(opts.Auth.Middleware)
		}

		r.Group(func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))

			r.Route("/rentals", h.Rentals.Routes)
			r.Route("/invoices", h.Billing.InvoiceRoutes)
			r.Route("/payments", h.Billing.PaymentRoutes)
			r.Route("/payables", h.Settlement.PayableRoutes)
			r.Route("/refunds", h.Settlement.RefundRoutes)
			r.Route("/expenses", h.Settlement.ExpenseRoutes)
			r.Route("/vehicles", h.Catalog.VehicleRoutes)
			r.Route("/clients", h.Catalog.ClientRoutes)
			r.Route("/agents", h.Catalog.AgentRoutes)
			r.Route("/owners", h.Catalog.OwnerRoutes)
			r.Route("/expense-categories", h.Catalog.CategoryRoutes)
			r.Route("/matching", h.Matching.Routes)
		})

		r.Route("/import", h.Import.Routes)
	})

	return router
}

// MetricsHandler exposes the default Prometheus registry.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
