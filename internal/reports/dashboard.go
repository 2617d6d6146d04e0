// Package reports derives the dashboard rollups from the order list.
// Everything here is pure computation over already-fetched rows.
package reports

import (
	"sort"
	"time"

	"tailorshop/internal/billing"
	"tailorshop/internal/models"
)

// RecentLimit is how many orders the dashboard's recent list shows.
const RecentLimit = 8

// SeriesDays is the length of the trailing collections series.
const SeriesDays = 7

// Metrics is the dashboard headline block.
type Metrics struct {
	TotalBills       int     `json:"total_bills"`
	TotalAmount      float64 `json:"total_amount"`
	TotalReceived    float64 `json:"total_received"`
	TotalDue         float64 `json:"total_due"`
	DeliveredBills   int     `json:"delivered_bills"`
	PendingBills     int     `json:"pending_bills"`
	TodayCollections float64 `json:"today_collections"`
}

// SeriesPoint is one day of the collections chart.
type SeriesPoint struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// paymentDate is the date a payment is counted under: the payment date,
// falling back to the order's creation date.
func paymentDate(o models.Order) string {
	if d := billing.DateOnly(o.PaymentDate); d != "" {
		return d
	}
	if !o.CreatedAt.IsZero() {
		return o.CreatedAt.Format(billing.DateLayout)
	}
	return ""
}

// ComputeMetrics aggregates the headline numbers over the full order list.
func ComputeMetrics(orders []models.OrderWithCustomer, now time.Time) Metrics {
	var m Metrics
	m.TotalBills = len(orders)
	today := now.Format(billing.DateLayout)

	for _, o := range orders {
		m.TotalAmount += o.Price
		m.TotalReceived += o.PaidAmount
		m.TotalDue += o.Order.DueAmount()
		if billing.IsDelivered(o.Status) {
			m.DeliveredBills++
		}
		if paymentDate(o.Order) == today {
			m.TodayCollections += o.PaidAmount
		}
	}
	m.PendingBills = m.TotalBills - m.DeliveredBills
	return m
}

// RecentOrders returns up to RecentLimit orders, newest id first.
// The input slice is not reordered.
func RecentOrders(orders []models.OrderWithCustomer) []models.OrderWithCustomer {
	recent := make([]models.OrderWithCustomer, len(orders))
	copy(recent, orders)
	sort.Slice(recent, func(i, j int) bool { return recent[i].ID > recent[j].ID })
	if len(recent) > RecentLimit {
		recent = recent[:RecentLimit]
	}
	return recent
}

// CollectionSeries builds the trailing 7-day collections chart, oldest
// to newest, ending today. Days with no payments report zero rather
// than being omitted.
func CollectionSeries(orders []models.OrderWithCustomer, now time.Time) []SeriesPoint {
	points := make([]SeriesPoint, 0, SeriesDays)
	index := make(map[string]int, SeriesDays)
	for i := SeriesDays - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i).Format(billing.DateLayout)
		index[day] = len(points)
		points = append(points, SeriesPoint{Date: day})
	}

	for _, o := range orders {
		if i, ok := index[paymentDate(o.Order)]; ok {
			points[i].Amount += o.PaidAmount
		}
	}
	return points
}
