package analytics

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerdesk/ledgerdesk/internal/finance"
)

type mockRepo struct {
	orderTotals   []StatusRow
	invoiceTotals []StatusRow
	paymentTotals []StatusRow
	orderMonths   []MonthRow
	invoiceMonths []MonthRow
	paymentMonths []MonthRow
	orderDocs     []finance.Document
	invoiceDocs   []finance.Document

	orderDocDelay time.Duration

	orderTotalCalls int
	orderDocCalls   int
}

func (m *mockRepo) OrderStatusTotals(_ context.Context, _, _ time.Time) ([]StatusRow, error) {
	m.orderTotalCalls++
	return m.orderTotals, nil
}

func (m *mockRepo) InvoiceStatusTotals(_ context.Context, _, _ time.Time) ([]StatusRow, error) {
	return m.invoiceTotals, nil
}

func (m *mockRepo) PaymentStatusTotals(_ context.Context, _, _ time.Time) ([]StatusRow, error) {
	return m.paymentTotals, nil
}

func (m *mockRepo) OrdersOverTime(_ context.Context, _, _ time.Time) ([]MonthRow, error) {
	return m.orderMonths, nil
}

func (m *mockRepo) InvoicesOverTime(_ context.Context, _, _ time.Time) ([]MonthRow, error) {
	return m.invoiceMonths, nil
}

func (m *mockRepo) PaymentsOverTime(_ context.Context, _, _ time.Time) ([]MonthRow, error) {
	return m.paymentMonths, nil
}

func (m *mockRepo) OrderDocuments(_ context.Context, _ int) ([]finance.Document, error) {
	m.orderDocCalls++
	if m.orderDocDelay > 0 {
		time.Sleep(m.orderDocDelay)
	}
	return m.orderDocs, nil
}

func (m *mockRepo) InvoiceDocuments(_ context.Context, _ int) ([]finance.Document, error) {
	return m.invoiceDocs, nil
}

func testCache(t *testing.T) *Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, time.Minute)
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestDashboardAggregatesByStatus(t *testing.T) {
	repo := &mockRepo{
		orderTotals: []StatusRow{
			{Status: "Active", Count: 3, Value: money("3000.00")},
			{Status: "Completed", Count: 1, Value: money("500.00")},
		},
		invoiceTotals: []StatusRow{
			{Status: "Pending", Count: 2, Value: money("1200.00")},
		},
	}
	svc := NewService(repo, testCache(t))

	window := DefaultWindow(time.Date(2025, 6, 15, 10, 0, 0, 0, time.Local))
	summary, err := svc.Dashboard(context.Background(), window)
	require.NoError(t, err)

	assert.Equal(t, "2025-06-01", summary.StartDate)
	assert.Equal(t, 4, summary.Orders.TotalCount)
	assert.Equal(t, "3500.00", summary.Orders.TotalValue)
	assert.Equal(t, 3, summary.Orders.ByStatus["Active"].Count)
	assert.Equal(t, "500.00", summary.Orders.ByStatus["Completed"].Value)
	// Statuses with no documents are still present with zero values.
	assert.Equal(t, 0, summary.Orders.ByStatus["OnHold"].Count)
	assert.Equal(t, "0.00", summary.Orders.ByStatus["OnHold"].Value)

	assert.Equal(t, 2, summary.Invoices.TotalCount)
	assert.Equal(t, "1200.00", summary.Invoices.TotalValue)
	assert.Contains(t, summary.Invoices.Display, "1,200")
}

func TestDashboardIncludesPaymentsAndMonthlySeries(t *testing.T) {
	june := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
	repo := &mockRepo{
		orderTotals:   []StatusRow{{Status: "Active", Count: 2, Value: money("800.00")}},
		paymentTotals: []StatusRow{{Status: "Paid", Count: 3, Value: money("450.00")}},
		orderMonths:   []MonthRow{{Month: june, Count: 2, Value: money("800.00")}},
		paymentMonths: []MonthRow{{Month: june, Count: 3, Value: money("450.00")}},
	}
	svc := NewService(repo, testCache(t))

	window := DefaultWindow(time.Date(2025, 6, 15, 10, 0, 0, 0, time.Local))
	summary, err := svc.Dashboard(context.Background(), window)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Payments.TotalCount)
	assert.Equal(t, "450.00", summary.Payments.TotalValue)
	assert.Equal(t, 3, summary.Payments.ByStatus["Paid"].Count)

	require.Len(t, summary.OrdersOverTime, 1)
	assert.Equal(t, "2025-6", summary.OrdersOverTime[0].Label)
	assert.Equal(t, 2, summary.OrdersOverTime[0].Count)
	require.Len(t, summary.PaymentsOverTime, 1)
	assert.Equal(t, "450.00", summary.PaymentsOverTime[0].Value)
	assert.Empty(t, summary.InvoicesOverTime)
}

func TestDashboardCountsUnknownStatusInTotalsOnly(t *testing.T) {
	repo := &mockRepo{
		orderTotals: []StatusRow{
			{Status: "Active", Count: 1, Value: money("100.00")},
			{Status: "Archived", Count: 2, Value: money("900.00")},
		},
	}
	svc := NewService(repo, testCache(t))

	summary, err := svc.Dashboard(context.Background(), DefaultWindow(time.Now()))
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Orders.TotalCount)
	assert.Equal(t, "1000.00", summary.Orders.TotalValue)
	_, exists := summary.Orders.ByStatus["Archived"]
	assert.False(t, exists)
}

func TestDashboardServedFromCache(t *testing.T) {
	repo := &mockRepo{
		orderTotals: []StatusRow{{Status: "Active", Count: 1, Value: money("10.00")}},
	}
	svc := NewService(repo, testCache(t))
	window := DefaultWindow(time.Now())

	_, err := svc.Dashboard(context.Background(), window)
	require.NoError(t, err)
	_, err = svc.Dashboard(context.Background(), window)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.orderTotalCalls)
}

func TestBumpInvalidatesCachedDashboard(t *testing.T) {
	repo := &mockRepo{
		orderTotals: []StatusRow{{Status: "Active", Count: 1, Value: money("10.00")}},
	}
	cache := testCache(t)
	svc := NewService(repo, cache)
	window := DefaultWindow(time.Now())

	_, err := svc.Dashboard(context.Background(), window)
	require.NoError(t, err)

	require.NoError(t, cache.Bump(context.Background()))

	_, err = svc.Dashboard(context.Background(), window)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.orderTotalCalls)
}

func TestOrdersYearlyHasTwelveBuckets(t *testing.T) {
	repo := &mockRepo{
		orderDocs: []finance.Document{
			{Date: time.Date(2025, 2, 10, 0, 0, 0, 0, time.Local), Amount: money("150.00"), Status: "Active"},
			{Date: time.Date(2025, 11, 3, 0, 0, 0, 0, time.Local), Amount: money("50.00"), Status: "Completed"},
		},
	}
	svc := NewService(repo, testCache(t))

	report, err := svc.OrdersYearly(context.Background(), 2025)
	require.NoError(t, err)

	assert.Equal(t, 2025, report.Year)
	require.Len(t, report.GraphData, 12)
	assert.Equal(t, "Jan", report.GraphData[0].Label)
	assert.Equal(t, "Dec", report.GraphData[11].Label)
	assert.Equal(t, 1, report.GraphData[1].Count)
	assert.Equal(t, "150.00", report.GraphData[1].Value)
	assert.Equal(t, "200.00", report.TotalValue)
	assert.Equal(t, 1, report.StatusWise["Completed"].Count)
}

func TestYearlyCollapsedCallersEachGetFullReport(t *testing.T) {
	repo := &mockRepo{
		orderDocs: []finance.Document{
			{Date: time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local), Amount: money("75.00"), Status: "Active"},
		},
		orderDocDelay: 50 * time.Millisecond,
	}
	// No redis client, so every report is built through the flight.
	svc := NewService(repo, NewCache(nil, 0))

	var wg sync.WaitGroup
	reports := make([]YearlyReport, 2)
	errs := make([]error, 2)
	for i := range reports {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			reports[i], errs[i] = svc.OrdersYearly(context.Background(), 2025)
		}(i)
	}
	wg.Wait()

	for i := range reports {
		require.NoError(t, errs[i], "caller %d", i)
		require.Len(t, reports[i].GraphData, 12, "caller %d", i)
		assert.Equal(t, "75.00", reports[i].TotalValue, "caller %d", i)
	}
	assert.Equal(t, 1, repo.orderDocCalls)
}

func TestYearlyReportCached(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo, testCache(t))

	_, err := svc.OrdersYearly(context.Background(), 2025)
	require.NoError(t, err)
	_, err = svc.OrdersYearly(context.Background(), 2025)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.orderDocCalls)
}
