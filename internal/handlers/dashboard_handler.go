package handlers

import (
	"net/http"
	"time"

	"tailorshop/internal/database"
	"tailorshop/internal/reports"

	"github.com/gin-gonic/gin"
)

// GetDashboard returns the rollups behind the dashboard view: headline
// metrics, the recent order list and the trailing collections series.
func GetDashboard(c *gin.Context) {
	orders, err := fetchOrders(0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch orders", "error": err.Error()})
		return
	}

	var customerCount int64
	if err := database.DB.Table("customers").Count(&customerCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to count customers", "error": err.Error()})
		return
	}

	now := time.Now()
	c.JSON(http.StatusOK, gin.H{
		"metrics":           reports.ComputeMetrics(orders, now),
		"total_customers":   customerCount,
		"recent_orders":     reports.RecentOrders(orders),
		"collection_series": reports.CollectionSeries(orders, now),
	})
}

// HealthCheck probes the store so the liveness endpoint reflects
// database reachability, not just process aliveness.
func HealthCheck(c *gin.Context) {
	if err := database.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
