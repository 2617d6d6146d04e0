package billing

import (
	"fmt"
	"strings"
	"time"

	"tailorshop/internal/models"
)

// DateLayout is the wire format for every date in the system.
const DateLayout = "2006-01-02"

// DefaultInvoicePrefix is used when the shop never configured one.
const DefaultInvoicePrefix = "KT"

// Filter names the supported billing date ranges.
type Filter string

const (
	FilterAll       Filter = "All"
	FilterToday     Filter = "Today"
	FilterThisWeek  Filter = "This Week"
	FilterThisMonth Filter = "This Month"
	FilterCustom    Filter = "Custom"
)

// Filters lists every valid filter name, for validation and for the UI.
var Filters = []Filter{FilterAll, FilterToday, FilterThisWeek, FilterThisMonth, FilterCustom}

// ParseFilter validates a filter name coming off the query string.
// An empty name means All.
func ParseFilter(name string) (Filter, error) {
	if name == "" {
		return FilterAll, nil
	}
	for _, f := range Filters {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown filter %q", name)
}

// DateOnly truncates a date or timestamp string to its YYYY-MM-DD part.
func DateOnly(v string) string {
	v = strings.TrimSpace(v)
	if len(v) > 10 {
		return v[:10]
	}
	return v
}

// OrderDate is the date an order is billed under: the creation date,
// falling back to the delivery date. Empty when the order has neither.
func OrderDate(o models.Order) string {
	if !o.CreatedAt.IsZero() {
		return o.CreatedAt.Format(DateLayout)
	}
	return DateOnly(o.DeliveryDate)
}

// IsDelivered is the canonical status test. Comparison is
// case-insensitive everywhere; "delivered", "Delivered" and "DELIVERED"
// all count.
func IsDelivered(status string) bool {
	return strings.EqualFold(strings.TrimSpace(status), "Delivered")
}

// weekBounds returns the Monday and Sunday of the week containing now,
// as date strings.
func weekBounds(now time.Time) (string, string) {
	mondayOffset := (int(now.Weekday()) + 6) % 7
	start := now.AddDate(0, 0, -mondayOffset)
	end := start.AddDate(0, 0, 6)
	return start.Format(DateLayout), end.Format(DateLayout)
}

// FilterOrders returns the orders matching the named date range.
// Orders with neither a creation nor a delivery date never match, not
// even under All. For Custom, a missing bound makes the filter a no-op.
// Date strings are compared lexically, which is exact for YYYY-MM-DD.
func FilterOrders(orders []models.OrderWithCustomer, filter Filter, from, to string, now time.Time) []models.OrderWithCustomer {
	today := now.Format(DateLayout)
	weekStart, weekEnd := weekBounds(now)
	month := now.Format("2006-01")

	matched := make([]models.OrderWithCustomer, 0, len(orders))
	for _, o := range orders {
		date := OrderDate(o.Order)
		if date == "" {
			continue
		}

		keep := false
		switch filter {
		case FilterToday:
			keep = date == today
		case FilterThisWeek:
			keep = date >= weekStart && date <= weekEnd
		case FilterThisMonth:
			keep = strings.HasPrefix(date, month)
		case FilterCustom:
			if from == "" || to == "" {
				keep = true
			} else {
				keep = date >= from && date <= to
			}
		default:
			keep = true
		}

		if keep {
			matched = append(matched, o)
		}
	}
	return matched
}

// Summary is the aggregate view of a filtered order set. The modeled
// tax is always split into two equal named halves (CGST/SGST)
// regardless of rate.
type Summary struct {
	TotalBills       int     `json:"total_bills"`
	Subtotal         float64 `json:"subtotal"`
	TotalReceived    float64 `json:"total_received"`
	TotalOutstanding float64 `json:"total_outstanding"`
	TaxAmount        float64 `json:"tax_amount"`
	CGSTAmount       float64 `json:"cgst_amount"`
	SGSTAmount       float64 `json:"sgst_amount"`
	TotalAmount      float64 `json:"total_amount"`
	Delivered        int     `json:"delivered"`
	Pending          int     `json:"pending"`
}

// Summarize computes the billing summary for an already-filtered order set.
func Summarize(orders []models.OrderWithCustomer, settings models.BillingSettings) Summary {
	var s Summary
	s.TotalBills = len(orders)

	for _, o := range orders {
		s.Subtotal += o.Price
		s.TotalReceived += o.PaidAmount
		s.TotalOutstanding += o.Order.DueAmount()
		if IsDelivered(o.Status) {
			s.Delivered++
		} else {
			s.Pending++
		}
	}

	if settings.ApplyTax {
		s.TaxAmount = s.Subtotal * settings.TaxPercent / 100
	}
	s.CGSTAmount = s.TaxAmount / 2
	s.SGSTAmount = s.TaxAmount / 2
	s.TotalAmount = s.Subtotal + s.TaxAmount
	return s
}

// InvoiceNumber derives an order's invoice number:
// {prefix}-{year}-{zero padded 4 digit id}. The year comes from the
// order's billing date, or the current year when the order has no date.
func InvoiceNumber(o models.Order, prefix string, now time.Time) string {
	if strings.TrimSpace(prefix) == "" {
		prefix = DefaultInvoicePrefix
	}
	year := now.Format("2006")
	if date := OrderDate(o); len(date) >= 4 {
		year = date[:4]
	}
	return fmt.Sprintf("%s-%s-%04d", prefix, year, o.ID)
}
