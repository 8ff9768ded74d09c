package analytichttp

import "github.com/go-chi/chi/v5"

// MountRoutes registers the dashboard and reporting endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/dashboard", h.Dashboard)
	r.Get("/analytics/orders", h.OrdersYearly)
	r.Get("/analytics/invoices", h.InvoicesYearly)
}
