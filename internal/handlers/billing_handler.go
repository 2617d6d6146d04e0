package handlers

import (
	"net/http"
	"strconv"
	"time"

	"tailorshop/internal/billing"
	"tailorshop/internal/database"
	"tailorshop/internal/models"

	"github.com/gin-gonic/gin"
)

// billedOrder is one row of the billing table: the order plus its
// derived invoice number.
type billedOrder struct {
	models.OrderWithCustomer
	InvoiceNo string `json:"invoice_no"`
}

// GetBillingSummary returns the filtered order set and its aggregate
// summary. Query params: filter (All|Today|This Week|This Month|Custom),
// from, to (Custom bounds, inclusive).
func GetBillingSummary(c *gin.Context) {
	filter, err := billing.ParseFilter(c.Query("filter"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	from := billing.DateOnly(c.Query("from"))
	to := billing.DateOnly(c.Query("to"))

	orders, err := fetchOrders(0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch orders", "error": err.Error()})
		return
	}
	settings, err := loadSettings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch settings", "error": err.Error()})
		return
	}

	now := time.Now()
	filtered := billing.FilterOrders(orders, filter, from, to, now)

	rows := make([]billedOrder, 0, len(filtered))
	for _, o := range filtered {
		rows = append(rows, billedOrder{
			OrderWithCustomer: o,
			InvoiceNo:         billing.InvoiceNumber(o.Order, settings.InvoicePrefix, now),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"filter":  filter,
		"orders":  rows,
		"summary": billing.Summarize(filtered, settings),
	})
}

// invoiceMode validates the ?mode= query param; the default is print.
func invoiceMode(c *gin.Context, raw string) (string, bool) {
	switch raw {
	case "", billing.ModePrint:
		return billing.ModePrint, true
	case billing.ModePDF:
		return billing.ModePDF, true
	}
	c.JSON(http.StatusBadRequest, gin.H{"message": "mode must be print or pdf"})
	return "", false
}

func renderInvoiceDocument(c *gin.Context, orders []models.OrderWithCustomer, mode string) {
	var customers []models.Customer
	if err := database.DB.Find(&customers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch customers", "error": err.Error()})
		return
	}
	settings, err := loadSettings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch settings", "error": err.Error()})
		return
	}

	doc, err := billing.RenderInvoices(orders, customers, settings, mode, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to render invoice", "error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(doc))
}

// GetInvoice renders the printable invoice for one order.
func GetInvoice(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Valid id is required"})
		return
	}
	mode, ok := invoiceMode(c, c.Query("mode"))
	if !ok {
		return
	}

	orders, err := fetchOrders(0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch orders", "error": err.Error()})
		return
	}
	for _, o := range orders {
		if o.ID == uint(id) {
			renderInvoiceDocument(c, []models.OrderWithCustomer{o}, mode)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
}

type BatchInvoiceRequest struct {
	OrderIDs []uint `json:"order_ids"`
	Mode     string `json:"mode"`
}

// BatchInvoices renders one document holding an invoice section per
// requested order; each section starts on a new printed page.
func BatchInvoices(c *gin.Context) {
	var req BatchInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON payload"})
		return
	}
	if len(req.OrderIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "order_ids is required"})
		return
	}
	mode, ok := invoiceMode(c, req.Mode)
	if !ok {
		return
	}

	all, err := fetchOrders(0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch orders", "error": err.Error()})
		return
	}
	byID := make(map[uint]models.OrderWithCustomer, len(all))
	for _, o := range all {
		byID[o.ID] = o
	}

	// Preserve the requested order; each id must resolve.
	selected := make([]models.OrderWithCustomer, 0, len(req.OrderIDs))
	for _, id := range req.OrderIDs {
		o, found := byID[id]
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found", "order_id": id})
			return
		}
		selected = append(selected, o)
	}

	renderInvoiceDocument(c, selected, mode)
}
