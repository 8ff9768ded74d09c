package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/ledgerdesk/ledgerdesk/internal/finance"
)

// Service coordinates analytics query execution with the cache layer.
// Concurrent requests for the same uncached key collapse into one build.
type Service struct {
	repo  Repository
	cache *Cache
	group singleflight.Group
}

// NewService wires a Repository with a Cache helper.
func NewService(repo Repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// Dashboard builds the order, invoice and payment snapshots plus the
// per-month series for the given window. The aggregates are fetched
// concurrently; each is a consistent read on its own but the set is not a
// single snapshot.
func (s *Service) Dashboard(ctx context.Context, filter DashboardFilter) (DashboardSummary, error) {
	key, err := s.cache.BuildKey(ctx, keyDashboard(filter.From, filter.To))
	if err != nil {
		return DashboardSummary{}, err
	}

	var summary DashboardSummary
	err = s.fetch(ctx, key, &summary, func(ctx context.Context) (interface{}, error) {
		var orderRows, invoiceRows, paymentRows []StatusRow
		var orderMonths, invoiceMonths, paymentMonths []MonthRow

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			orderRows, err = s.repo.OrderStatusTotals(gctx, filter.From, filter.To)
			return err
		})
		g.Go(func() (err error) {
			invoiceRows, err = s.repo.InvoiceStatusTotals(gctx, filter.From, filter.To)
			return err
		})
		g.Go(func() (err error) {
			paymentRows, err = s.repo.PaymentStatusTotals(gctx, filter.From, filter.To)
			return err
		})
		g.Go(func() (err error) {
			orderMonths, err = s.repo.OrdersOverTime(gctx, filter.From, filter.To)
			return err
		})
		g.Go(func() (err error) {
			invoiceMonths, err = s.repo.InvoicesOverTime(gctx, filter.From, filter.To)
			return err
		})
		g.Go(func() (err error) {
			paymentMonths, err = s.repo.PaymentsOverTime(gctx, filter.From, filter.To)
			return err
		})
		if err := g.Wait(); err != nil {
			return DashboardSummary{}, err
		}

		return DashboardSummary{
			StartDate:        filter.From.Format("2006-01-02"),
			EndDate:          filter.To.Format("2006-01-02"),
			Orders:           snapshot(orderRows, orderStatusNames()),
			Invoices:         snapshot(invoiceRows, paymentStatusNames()),
			Payments:         snapshot(paymentRows, paymentStatusNames()),
			OrdersOverTime:   overTime(orderMonths),
			InvoicesOverTime: overTime(invoiceMonths),
			PaymentsOverTime: overTime(paymentMonths),
		}, nil
	})
	return summary, err
}

// overTime maps monthly aggregates into labelled points, "2025-6" style.
func overTime(rows []MonthRow) []MonthPoint {
	points := make([]MonthPoint, 0, len(rows))
	for _, row := range rows {
		points = append(points, MonthPoint{
			Label: fmt.Sprintf("%d-%d", row.Month.Year(), int(row.Month.Month())),
			Count: row.Count,
			Value: finance.Amount(row.Value),
		})
	}
	return points
}

// OrdersYearly returns the twelve-month order series for a calendar year.
func (s *Service) OrdersYearly(ctx context.Context, year int) (YearlyReport, error) {
	return s.yearly(ctx, "orders_yearly", year, orderStatusNames(), s.repo.OrderDocuments)
}

// InvoicesYearly returns the twelve-month invoice series for a calendar year.
func (s *Service) InvoicesYearly(ctx context.Context, year int) (YearlyReport, error) {
	return s.yearly(ctx, "invoices_yearly", year, paymentStatusNames(), s.repo.InvoiceDocuments)
}

func (s *Service) yearly(ctx context.Context, kind string, year int, statuses []string,
	load func(context.Context, int) ([]finance.Document, error)) (YearlyReport, error) {

	key, err := s.cache.BuildKey(ctx, keyYearly(kind, year))
	if err != nil {
		return YearlyReport{}, err
	}

	var report YearlyReport
	err = s.fetch(ctx, key, &report, func(ctx context.Context) (interface{}, error) {
		docs, err := load(ctx, year)
		if err != nil {
			return YearlyReport{}, err
		}
		return buildReport(year, statuses, docs), nil
	})
	return report, err
}

// fetch funnels cache misses for one key through a single loader call. The
// flight carries the marshaled payload so every collapsed caller decodes its
// own copy rather than sharing the first caller's destination.
func (s *Service) fetch(ctx context.Context, key string, dest interface{}, loader func(context.Context) (interface{}, error)) error {
	payload, err, _ := s.group.Do(key, func() (interface{}, error) {
		var raw json.RawMessage
		if err := s.cache.FetchJSON(ctx, key, &raw, loader); err != nil {
			return nil, err
		}
		return raw, nil
	})
	if err != nil {
		return err
	}
	return json.Unmarshal(payload.(json.RawMessage), dest)
}

func buildReport(year int, statuses []string, docs []finance.Document) YearlyReport {
	series := finance.BuildYearlySeries(year, statuses, docs)

	points := make([]MonthPoint, 0, len(series.Series))
	for _, bucket := range series.Series {
		points = append(points, MonthPoint{
			Label: bucket.Month,
			Count: bucket.Count,
			Value: finance.Amount(bucket.TotalValue),
		})
	}

	statusWise := make(map[string]StatusSummary, len(series.StatusTotals))
	for status, total := range series.StatusTotals {
		statusWise[status] = StatusSummary{Count: total.Count, Value: finance.Amount(total.TotalValue)}
	}

	return YearlyReport{
		Year:       year,
		Count:      series.Count,
		TotalValue: finance.Amount(series.TotalValue),
		GraphData:  points,
		StatusWise: statusWise,
	}
}

func snapshot(rows []StatusRow, statuses []string) DocumentSnapshot {
	byStatus := make(map[string]StatusSummary, len(statuses))
	for _, status := range statuses {
		byStatus[status] = StatusSummary{Value: finance.Amount(decimal.Zero)}
	}

	total := decimal.Zero
	count := 0
	for _, row := range rows {
		count += row.Count
		total = total.Add(row.Value)
		if _, ok := byStatus[row.Status]; ok {
			byStatus[row.Status] = StatusSummary{Count: row.Count, Value: finance.Amount(row.Value)}
		}
	}

	return DocumentSnapshot{
		ByStatus:   byStatus,
		TotalCount: count,
		TotalValue: finance.Amount(total),
		Display:    finance.FormatINR(total),
	}
}

func orderStatusNames() []string {
	out := make([]string, 0, len(finance.OrderStatuses))
	for _, s := range finance.OrderStatuses {
		out = append(out, string(s))
	}
	return out
}

func paymentStatusNames() []string {
	out := make([]string, 0, len(finance.PaymentStatuses))
	for _, s := range finance.PaymentStatuses {
		out = append(out, string(s))
	}
	return out
}

// DefaultWindow is the current calendar month in local time, used when the
// caller supplies no explicit range.
func DefaultWindow(now time.Time) DashboardFilter {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return DashboardFilter{From: start, To: end}
}
