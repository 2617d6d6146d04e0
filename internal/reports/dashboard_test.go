package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tailorshop/internal/models"
)

var now = time.Date(2026, 8, 29, 15, 0, 0, 0, time.UTC)

func TestComputeMetrics(t *testing.T) {
	orders := []models.OrderWithCustomer{
		{Order: models.Order{ID: 1, Price: 500, PaidAmount: 200, Status: "delivered"}},
		{Order: models.Order{ID: 2, Price: 300, PaidAmount: 300, Status: "Pending"}},
		{Order: models.Order{ID: 3, Price: 100, PaidAmount: 150, Status: "DELIVERED"}},
	}

	m := ComputeMetrics(orders, now)
	assert.Equal(t, 3, m.TotalBills)
	assert.InDelta(t, 900.0, m.TotalAmount, 1e-9)
	assert.InDelta(t, 650.0, m.TotalReceived, 1e-9)
	assert.InDelta(t, 300.0, m.TotalDue, 1e-9) // overpaid order contributes zero
	assert.Equal(t, 2, m.DeliveredBills)
	assert.Equal(t, 1, m.PendingBills)
}

func TestComputeMetrics_TodayCollections(t *testing.T) {
	today := now.Format("2006-01-02")
	orders := []models.OrderWithCustomer{
		// Counted under its payment date.
		{Order: models.Order{ID: 1, PaidAmount: 100, PaymentDate: today}},
		// No payment date: falls back to the creation date.
		{Order: models.Order{ID: 2, PaidAmount: 50, CreatedAt: now}},
		// Paid on another day.
		{Order: models.Order{ID: 3, PaidAmount: 999, PaymentDate: "2026-08-01"}},
		// Payment date wins over creation date.
		{Order: models.Order{ID: 4, PaidAmount: 999, PaymentDate: "2026-08-01", CreatedAt: now}},
	}

	m := ComputeMetrics(orders, now)
	assert.InDelta(t, 150.0, m.TodayCollections, 1e-9)
}

func TestRecentOrders(t *testing.T) {
	var orders []models.OrderWithCustomer
	for id := uint(1); id <= 12; id++ {
		orders = append(orders, models.OrderWithCustomer{Order: models.Order{ID: id}})
	}

	recent := RecentOrders(orders)
	require.Len(t, recent, RecentLimit)
	assert.Equal(t, uint(12), recent[0].ID)
	assert.Equal(t, uint(5), recent[RecentLimit-1].ID)

	// Input order is untouched.
	assert.Equal(t, uint(1), orders[0].ID)
}

func TestRecentOrders_FewerThanLimit(t *testing.T) {
	orders := []models.OrderWithCustomer{
		{Order: models.Order{ID: 2}},
		{Order: models.Order{ID: 5}},
	}

	recent := RecentOrders(orders)
	require.Len(t, recent, 2)
	assert.Equal(t, uint(5), recent[0].ID)
}

func TestCollectionSeries(t *testing.T) {
	today := now.Format("2006-01-02")
	threeDaysAgo := now.AddDate(0, 0, -3).Format("2006-01-02")
	eightDaysAgo := now.AddDate(0, 0, -8).Format("2006-01-02")

	orders := []models.OrderWithCustomer{
		{Order: models.Order{ID: 1, PaidAmount: 100, PaymentDate: today}},
		{Order: models.Order{ID: 2, PaidAmount: 40, PaymentDate: threeDaysAgo}},
		{Order: models.Order{ID: 3, PaidAmount: 60, PaymentDate: threeDaysAgo}},
		{Order: models.Order{ID: 4, PaidAmount: 500, PaymentDate: eightDaysAgo}}, // outside window
	}

	series := CollectionSeries(orders, now)
	require.Len(t, series, SeriesDays)

	// Oldest to newest, ending today, contiguous days.
	assert.Equal(t, now.AddDate(0, 0, -6).Format("2006-01-02"), series[0].Date)
	assert.Equal(t, today, series[SeriesDays-1].Date)
	for i := 1; i < len(series); i++ {
		assert.Less(t, series[i-1].Date, series[i].Date)
	}

	assert.InDelta(t, 100.0, series[SeriesDays-1].Amount, 1e-9)
	assert.InDelta(t, 100.0, series[SeriesDays-4].Amount, 1e-9)

	// Days with no payments report zero, not absence.
	assert.Zero(t, series[0].Amount)
}

func TestCollectionSeries_AllZero(t *testing.T) {
	series := CollectionSeries(nil, now)
	require.Len(t, series, SeriesDays)
	for _, p := range series {
		assert.Zero(t, p.Amount)
	}
}
