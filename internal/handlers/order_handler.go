package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"tailorshop/internal/billing"
	"tailorshop/internal/database"
	"tailorshop/internal/models"

	"github.com/gin-gonic/gin"
)

// OrderRequest is the write shape for orders. Price and PaidAmount are
// pointers so a missing price is distinguishable from zero; a missing
// paid amount defaults to zero.
type OrderRequest struct {
	CustomerID   uint     `json:"customer_id"`
	DressType    string   `json:"dress_type"`
	Price        *float64 `json:"price"`
	PaidAmount   *float64 `json:"paid_amount"`
	TrialDate    string   `json:"trial_date"`
	DeliveryDate string   `json:"delivery_date"`
	Status       string   `json:"status"`
	PaymentMode  string   `json:"payment_mode"`
	PaymentDate  string   `json:"payment_date"`
}

// validate runs every check before anything touches the store and
// reports the first violation.
func (r *OrderRequest) validate() (models.Order, string) {
	o := models.Order{
		CustomerID:   r.CustomerID,
		DressType:    strings.TrimSpace(r.DressType),
		TrialDate:    billing.DateOnly(r.TrialDate),
		DeliveryDate: billing.DateOnly(r.DeliveryDate),
		Status:       strings.TrimSpace(r.Status),
		PaymentMode:  strings.TrimSpace(r.PaymentMode),
		PaymentDate:  billing.DateOnly(r.PaymentDate),
	}
	if o.Status == "" {
		o.Status = "Pending"
	}

	if r.CustomerID == 0 || o.DressType == "" || r.Price == nil || o.DeliveryDate == "" {
		return o, "customer_id, dress_type, price and delivery_date are required"
	}
	o.Price = *r.Price
	if o.Price < 0 {
		return o, "price cannot be negative"
	}
	if r.PaidAmount != nil {
		o.PaidAmount = *r.PaidAmount
	}
	if o.PaidAmount < 0 {
		return o, "paid_amount cannot be negative"
	}
	if o.PaidAmount > o.Price {
		return o, "paid_amount cannot be greater than price"
	}
	return o, ""
}

// customerExists is the reference check shared by orders and measurements.
func customerExists(id uint) (bool, error) {
	var count int64
	err := database.DB.Model(&models.Customer{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func orderExists(id int) (bool, error) {
	var count int64
	err := database.DB.Model(&models.Order{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// fetchOrders loads orders with the joined customer identity, newest
// first, and fills in the derived due amount. customerID of 0 means all.
func fetchOrders(customerID uint) ([]models.OrderWithCustomer, error) {
	query := database.DB.Table("orders").
		Select("orders.*, customers.name AS customer_name, customers.phone AS customer_phone").
		Joins("LEFT JOIN customers ON customers.id = orders.customer_id")
	if customerID > 0 {
		query = query.Where("orders.customer_id = ?", customerID)
	}

	var rows []models.OrderWithCustomer
	if err := query.Order("orders.id DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Due = rows[i].Order.DueAmount()
	}
	return rows, nil
}

// GetOrders lists orders, optionally scoped to one customer.
func GetOrders(c *gin.Context) {
	var customerID uint
	if raw := c.Query("customer_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "customer_id must be a positive integer"})
			return
		}
		customerID = uint(id)
	}

	rows, err := fetchOrders(customerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch orders", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}

func AddOrder(c *gin.Context) {
	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON payload"})
		return
	}

	order, problem := req.validate()
	if problem != "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": problem})
		return
	}

	exists, err := customerExists(order.CustomerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to add order", "error": err.Error()})
		return
	}
	if !exists {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid customer_id. Add customer first."})
		return
	}

	if err := database.DB.Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to add order", "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Order Added", "id": order.ID})
}

func UpdateOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Valid id is required"})
		return
	}

	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON payload"})
		return
	}

	order, problem := req.validate()
	if problem != "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": problem})
		return
	}

	exists, err := customerExists(order.CustomerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update order", "error": err.Error()})
		return
	}
	if !exists {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid customer_id. Add customer first."})
		return
	}

	// Existence is checked up front. The driver reports changed rows,
	// not matched rows, so RowsAffected cannot tell a no-change update
	// apart from a missing id.
	found, err := orderExists(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update order", "error": err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
		return
	}

	// Full replace of every editable field.
	err = database.DB.Model(&models.Order{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"customer_id":   order.CustomerID,
			"dress_type":    order.DressType,
			"price":         order.Price,
			"paid_amount":   order.PaidAmount,
			"trial_date":    order.TrialDate,
			"delivery_date": order.DeliveryDate,
			"status":        order.Status,
			"payment_mode":  order.PaymentMode,
			"payment_date":  order.PaymentDate,
		}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update order", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order Updated"})
}

func DeleteOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Valid id is required"})
		return
	}

	result := database.DB.Delete(&models.Order{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete order", "error": result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order Deleted"})
}
