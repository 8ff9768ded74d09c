// Package analytichttp serves the dashboard and reporting endpoints.
package analytichttp

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/ledgerdesk/ledgerdesk/internal/analytics"
	"github.com/ledgerdesk/ledgerdesk/internal/platform/httpx"
)

// AnalyticsService defines the dashboard data contract used by the handler.
type AnalyticsService interface {
	Dashboard(ctx context.Context, filter analytics.DashboardFilter) (analytics.DashboardSummary, error)
	OrdersYearly(ctx context.Context, year int) (analytics.YearlyReport, error)
	InvoicesYearly(ctx context.Context, year int) (analytics.YearlyReport, error)
}

// Handler coordinates HTTP requests for the back-office dashboard.
type Handler struct {
	logger  *slog.Logger
	service AnalyticsService
	now     func() time.Time
}

func NewHandler(logger *slog.Logger, service AnalyticsService) *Handler {
	return &Handler{logger: logger, service: service, now: time.Now}
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.windowFromQuery(w, r)
	if !ok {
		return
	}

	summary, err := h.service.Dashboard(r.Context(), filter)
	if err != nil {
		h.logger.Error("dashboard build failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}

func (h *Handler) OrdersYearly(w http.ResponseWriter, r *http.Request) {
	year := h.yearFromQuery(r)

	report, err := h.service.OrdersYearly(r.Context(), year)
	if err != nil {
		h.logger.Error("orders yearly report failed", "error", err, "year", year)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) InvoicesYearly(w http.ResponseWriter, r *http.Request) {
	year := h.yearFromQuery(r)

	report, err := h.service.InvoicesYearly(r.Context(), year)
	if err != nil {
		h.logger.Error("invoices yearly report failed", "error", err, "year", year)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

// windowFromQuery resolves startDate/endDate. Absent parameters default to
// the current month; a malformed or inverted range is rejected with 400,
// writing the response itself and returning ok=false.
func (h *Handler) windowFromQuery(w http.ResponseWriter, r *http.Request) (analytics.DashboardFilter, bool) {
	q := r.URL.Query()
	startParam, endParam := q.Get("startDate"), q.Get("endDate")
	if startParam == "" && endParam == "" {
		return analytics.DefaultWindow(h.now()), true
	}

	from, fromErr := time.ParseInLocation("2006-01-02", startParam, time.Local)
	to, toErr := time.ParseInLocation("2006-01-02", endParam, time.Local)
	if fromErr != nil || toErr != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid date range", "startDate and endDate must be YYYY-MM-DD")
		return analytics.DashboardFilter{}, false
	}
	to = to.Add(24*time.Hour - time.Second)
	if to.Before(from) {
		httpx.Problem(w, http.StatusBadRequest, "Invalid date range", "endDate must not precede startDate")
		return analytics.DashboardFilter{}, false
	}
	return analytics.DashboardFilter{From: from, To: to}, true
}

func (h *Handler) yearFromQuery(r *http.Request) int {
	if year, err := strconv.Atoi(r.URL.Query().Get("year")); err == nil && year > 0 {
		return year
	}
	return h.now().Year()
}
