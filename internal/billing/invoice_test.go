package billing

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tailorshop/internal/models"
)

func TestFormatINR(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "₹0.00"},
		{123, "₹123.00"},
		{1000, "₹1,000.00"},
		{12345, "₹12,345.00"},
		{1234567.5, "₹12,34,567.50"},
		{-250.75, "-₹250.75"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatINR(tc.in), "FormatINR(%v)", tc.in)
	}
}

var renderNow = time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

func testSettings() models.BillingSettings {
	return models.BillingSettings{
		ShopName:      "Karanjkar Tailors",
		ShopAddress:   "Main Road",
		ShopPhone:     "+91 00000 00000",
		InvoicePrefix: "KT",
		ApplyTax:      true,
		TaxPercent:    5,
	}
}

func TestRenderInvoices_Basic(t *testing.T) {
	order := models.OrderWithCustomer{
		Order: models.Order{
			ID:           7,
			CustomerID:   3,
			DressType:    "Sherwani",
			Price:        2000,
			PaidAmount:   500,
			DeliveryDate: "2024-03-15",
			Status:       "Stitching",
		},
		CustomerName:  "Ramesh",
		CustomerPhone: "98765",
	}

	doc, err := RenderInvoices([]models.OrderWithCustomer{order}, nil, testSettings(), ModePrint, renderNow)
	require.NoError(t, err)

	assert.Contains(t, doc, "Invoice KT-2024-0007")
	assert.Contains(t, doc, "Date: 2024-03-15")
	assert.Contains(t, doc, "Ramesh")
	assert.Contains(t, doc, "98765")
	assert.Contains(t, doc, "Sherwani")
	// Subtotal, paid, due.
	assert.Contains(t, doc, "₹2,000.00")
	assert.Contains(t, doc, "₹500.00")
	assert.Contains(t, doc, "₹1,500.00")
	assert.Contains(t, doc, "CGST (2.5%)")
	assert.Contains(t, doc, "SGST (2.5%)")
	// Each tax half, then the grand total.
	assert.Contains(t, doc, "₹50.00")
	assert.Contains(t, doc, "₹2,100.00")
	assert.NotContains(t, doc, "Save as PDF")
}

func TestRenderInvoices_TaxDisabled(t *testing.T) {
	settings := testSettings()
	settings.ApplyTax = false

	order := models.OrderWithCustomer{
		Order: models.Order{ID: 1, Price: 1000, DeliveryDate: "2024-01-01"},
	}

	doc, err := RenderInvoices([]models.OrderWithCustomer{order}, nil, settings, ModePrint, renderNow)
	require.NoError(t, err)

	assert.NotContains(t, doc, "CGST")
	assert.NotContains(t, doc, "SGST")
	assert.Contains(t, doc, "₹1,000.00")
}

func TestRenderInvoices_PDFAnnotation(t *testing.T) {
	order := models.OrderWithCustomer{
		Order: models.Order{ID: 1, DeliveryDate: "2024-01-01"},
	}

	doc, err := RenderInvoices([]models.OrderWithCustomer{order}, nil, testSettings(), ModePDF, renderNow)
	require.NoError(t, err)
	assert.Contains(t, doc, "Use destination: Save as PDF")
}

func TestRenderInvoices_EscapesMarkup(t *testing.T) {
	settings := testSettings()
	settings.ShopName = `Tailors & "Sons"`

	order := models.OrderWithCustomer{
		Order: models.Order{
			ID:           1,
			DressType:    "<i>Kurta</i>",
			DeliveryDate: "2024-01-01",
		},
		CustomerName: `<script>alert("x")</script>`,
	}

	doc, err := RenderInvoices([]models.OrderWithCustomer{order}, nil, settings, ModePrint, renderNow)
	require.NoError(t, err)

	assert.NotContains(t, doc, "<script>")
	assert.NotContains(t, doc, "<i>Kurta</i>")
	assert.Contains(t, doc, "&lt;script&gt;")
	assert.Contains(t, doc, "Tailors &amp;")
}

func TestRenderInvoices_CustomerFallbacks(t *testing.T) {
	customers := []models.Customer{
		{ID: 3, Name: "Suresh", Phone: "11111"},
	}

	// No denormalized name: fall back to the customer table.
	known := models.OrderWithCustomer{
		Order: models.Order{ID: 1, CustomerID: 3, DeliveryDate: "2024-01-01"},
	}
	// Unknown customer id: placeholder.
	unknown := models.OrderWithCustomer{
		Order: models.Order{ID: 2, CustomerID: 9, DeliveryDate: "2024-01-01"},
	}

	doc, err := RenderInvoices([]models.OrderWithCustomer{known, unknown}, customers, testSettings(), ModePrint, renderNow)
	require.NoError(t, err)

	assert.Contains(t, doc, "Suresh")
	assert.Contains(t, doc, "11111")
	assert.Contains(t, doc, "ID 9")
}

func TestRenderInvoices_BatchSections(t *testing.T) {
	orders := []models.OrderWithCustomer{
		{Order: models.Order{ID: 1, DeliveryDate: "2024-01-01"}},
		{Order: models.Order{ID: 2, DeliveryDate: "2024-01-02"}},
		{Order: models.Order{ID: 3, DeliveryDate: "2024-01-03"}},
	}

	doc, err := RenderInvoices(orders, nil, testSettings(), ModePrint, renderNow)
	require.NoError(t, err)

	assert.Equal(t, 3, strings.Count(doc, `<section class="invoice">`))
	// Sections after the first break onto a new printed page.
	assert.Contains(t, doc, "page-break-before: always")
}

func TestRenderInvoices_StatusDefaultsToPending(t *testing.T) {
	order := models.OrderWithCustomer{
		Order: models.Order{ID: 1, DeliveryDate: "2024-01-01"},
	}

	doc, err := RenderInvoices([]models.OrderWithCustomer{order}, nil, testSettings(), ModePrint, renderNow)
	require.NoError(t, err)
	assert.Contains(t, doc, "Pending")
}
