package database

import (
	"tailorshop/internal/models"
)

// orderDateExpr is the billing date of an order in SQL form: creation
// date, falling back to the delivery date.
const orderDateExpr = "COALESCE(DATE(created_at), delivery_date)"

// BillingReportResult holds the totals the assistant reads out.
type BillingReportResult struct {
	OrderCount       int64
	TotalBilled      float64
	TotalReceived    float64
	TotalOutstanding float64
}

// GetBillingReport totals orders whose billing date lands inside
// [start, end], both YYYY-MM-DD inclusive.
func GetBillingReport(start, end string) (*BillingReportResult, error) {
	var result BillingReportResult

	err := DB.Model(&models.Order{}).
		Where(orderDateExpr+" BETWEEN ? AND ?", start, end).
		Count(&result.OrderCount).Error
	if err != nil {
		return nil, err
	}

	row := struct {
		Billed      float64
		Received    float64
		Outstanding float64
	}{}
	err = DB.Model(&models.Order{}).
		Where(orderDateExpr+" BETWEEN ? AND ?", start, end).
		Select("COALESCE(SUM(price), 0) AS billed, COALESCE(SUM(paid_amount), 0) AS received, COALESCE(SUM(GREATEST(price - paid_amount, 0)), 0) AS outstanding").
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	result.TotalBilled = row.Billed
	result.TotalReceived = row.Received
	result.TotalOutstanding = row.Outstanding
	return &result, nil
}
