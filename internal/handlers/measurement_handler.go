package handlers

import (
	"net/http"
	"strconv"

	"tailorshop/internal/database"
	"tailorshop/internal/models"

	"github.com/gin-gonic/gin"
)

// MeasurementRequest uses pointers for the numeric fields so a missing
// value fails validation instead of silently becoming zero.
type MeasurementRequest struct {
	CustomerID uint     `json:"customer_id"`
	Chest      *float64 `json:"chest"`
	Waist      *float64 `json:"waist"`
	Shoulder   *float64 `json:"shoulder"`
	Length     *float64 `json:"length"`
}

func (r *MeasurementRequest) validate() (models.Measurement, bool) {
	if r.CustomerID == 0 || r.Chest == nil || r.Waist == nil || r.Shoulder == nil || r.Length == nil {
		return models.Measurement{}, false
	}
	return models.Measurement{
		CustomerID: r.CustomerID,
		Chest:      *r.Chest,
		Waist:      *r.Waist,
		Shoulder:   *r.Shoulder,
		Length:     *r.Length,
	}, true
}

// GetMeasurements lists measurements, optionally for one customer, newest first.
func GetMeasurements(c *gin.Context) {
	query := database.DB.Model(&models.Measurement{})
	if raw := c.Query("customer_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "customer_id must be a positive integer"})
			return
		}
		query = query.Where("customer_id = ?", id)
	}

	var measurements []models.Measurement
	if err := query.Order("id DESC").Find(&measurements).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch measurements", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, measurements)
}

func AddMeasurement(c *gin.Context) {
	var req MeasurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON payload"})
		return
	}

	measurement, ok := req.validate()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "customer_id, chest, waist, shoulder and length are required"})
		return
	}

	exists, err := customerExists(measurement.CustomerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to add measurement", "error": err.Error()})
		return
	}
	if !exists {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid customer_id. Add customer first."})
		return
	}

	if err := database.DB.Create(&measurement).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to add measurement", "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Measurement Added", "id": measurement.ID})
}

func UpdateMeasurement(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Valid id is required"})
		return
	}

	var req MeasurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON payload"})
		return
	}

	measurement, ok := req.validate()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "customer_id, chest, waist, shoulder and length are required"})
		return
	}

	exists, err := customerExists(measurement.CustomerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update measurement", "error": err.Error()})
		return
	}
	if !exists {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid customer_id. Add customer first."})
		return
	}

	// Same reasoning as orders: the driver reports changed rows, so
	// existence has to be checked before the update.
	var count int64
	if err := database.DB.Model(&models.Measurement{}).Where("id = ?", id).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update measurement", "error": err.Error()})
		return
	}
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Measurement not found"})
		return
	}

	err = database.DB.Model(&models.Measurement{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"customer_id": measurement.CustomerID,
			"chest":       measurement.Chest,
			"waist":       measurement.Waist,
			"shoulder":    measurement.Shoulder,
			"length":      measurement.Length,
		}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update measurement", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Measurement Updated"})
}

func DeleteMeasurement(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Valid id is required"})
		return
	}

	result := database.DB.Delete(&models.Measurement{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete measurement", "error": result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Measurement not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Measurement Deleted"})
}
