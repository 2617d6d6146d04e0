package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"tailorshop/internal/database"
	"tailorshop/internal/models"

	"github.com/gin-gonic/gin"
)

type CustomerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (r *CustomerRequest) clean() (models.Customer, bool) {
	c := models.Customer{
		Name:    strings.TrimSpace(r.Name),
		Phone:   strings.TrimSpace(r.Phone),
		Address: strings.TrimSpace(r.Address),
	}
	ok := c.Name != "" && c.Phone != "" && c.Address != ""
	return c, ok
}

// GetCustomers lists every customer, newest first.
func GetCustomers(c *gin.Context) {
	var customers []models.Customer
	if err := database.DB.Order("id DESC").Find(&customers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch customers", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, customers)
}

func AddCustomer(c *gin.Context) {
	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON payload"})
		return
	}

	customer, ok := req.clean()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "name, phone and address are required"})
		return
	}

	if err := database.DB.Create(&customer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to add customer", "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Customer Added", "id": customer.ID})
}

func UpdateCustomer(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Valid id is required"})
		return
	}

	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON payload"})
		return
	}

	customer, ok := req.clean()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "name, phone and address are required"})
		return
	}

	// RowsAffected counts changed rows, so a no-change resubmit would
	// look like a missing id. Check existence instead.
	exists, err := customerExists(uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update customer", "error": err.Error()})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"message": "Customer not found"})
		return
	}

	err = database.DB.Model(&models.Customer{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":    customer.Name,
			"phone":   customer.Phone,
			"address": customer.Address,
		}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update customer", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer Updated"})
}

// DeleteCustomer removes a customer. Deletion is restricted while
// orders or measurements still reference the row, so nothing ever
// points at a missing customer.
func DeleteCustomer(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Valid id is required"})
		return
	}

	var orderCount int64
	if err := database.DB.Model(&models.Order{}).Where("customer_id = ?", id).Count(&orderCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete customer", "error": err.Error()})
		return
	}
	var measurementCount int64
	if err := database.DB.Model(&models.Measurement{}).Where("customer_id = ?", id).Count(&measurementCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete customer", "error": err.Error()})
		return
	}
	if orderCount > 0 || measurementCount > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Customer has orders or measurements. Delete those first."})
		return
	}

	result := database.DB.Delete(&models.Customer{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete customer", "error": result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Customer not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer Deleted"})
}
