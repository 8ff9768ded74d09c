package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	analytichttp "github.com/ledgerdesk/ledgerdesk/internal/analytics/http"
	"github.com/ledgerdesk/ledgerdesk/internal/invoices"
	"github.com/ledgerdesk/ledgerdesk/internal/masterdata/customers"
	"github.com/ledgerdesk/ledgerdesk/internal/masterdata/gst"
	"github.com/ledgerdesk/ledgerdesk/internal/masterdata/gstcodes"
	"github.com/ledgerdesk/ledgerdesk/internal/masterdata/products"
	"github.com/ledgerdesk/ledgerdesk/internal/masterdata/serviceitems"
	"github.com/ledgerdesk/ledgerdesk/internal/orders"
	"github.com/ledgerdesk/ledgerdesk/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger             *slog.Logger
	Config             *Config
	CustomerHandler    *customers.Handler
	ProductHandler     *products.Handler
	ServiceItemHandler *serviceitems.Handler
	GSTHandler         *gst.Handler
	GSTCodeHandler     *gstcodes.Handler
	OrderHandler       *orders.Handler
	InvoiceHandler     *invoices.Handler
	AnalyticsHandler   *analytichttp.Handler
	JobHandler         *jobs.Handler
}

// NewRouter constructs the chi.Router with Ledgerdesk defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/customers", params.CustomerHandler.MountRoutes)
	r.Route("/products", params.ProductHandler.MountRoutes)
	r.Route("/services", params.ServiceItemHandler.MountRoutes)
	r.Route("/gst", params.GSTHandler.MountRoutes)
	r.Route("/gst-codes", params.GSTCodeHandler.MountRoutes)
	r.Route("/orders", params.OrderHandler.MountRoutes)
	r.Route("/invoices", params.InvoiceHandler.MountRoutes)
	if params.AnalyticsHandler != nil {
		params.AnalyticsHandler.MountRoutes(r)
	}
	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}

	return r
}
