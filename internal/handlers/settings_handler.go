package handlers

import (
	"net/http"
	"strings"

	"tailorshop/internal/database"
	"tailorshop/internal/models"

	"github.com/gin-gonic/gin"
)

// loadSettings fetches the shop's billing settings row. The row is
// seeded at startup, so a missing row is a storage error, not a 404.
func loadSettings() (models.BillingSettings, error) {
	var settings models.BillingSettings
	err := database.DB.Order("id ASC").First(&settings).Error
	return settings, err
}

// GetSettings returns the persisted billing settings.
func GetSettings(c *gin.Context) {
	settings, err := loadSettings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch settings", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, settings)
}

type SettingsRequest struct {
	ShopName      string  `json:"shop_name"`
	ShopAddress   string  `json:"shop_address"`
	ShopPhone     string  `json:"shop_phone"`
	ShopGSTIN     string  `json:"shop_gstin"`
	InvoicePrefix string  `json:"invoice_prefix"`
	LogoURL       string  `json:"logo_url"`
	LogoData      string  `json:"logo_data"`
	ApplyTax      bool    `json:"apply_tax"`
	TaxPercent    float64 `json:"tax_percent"`
}

// UpdateSettings replaces the billing settings. An uploaded logo and a
// logo URL are mutually exclusive; the embedded image wins when both
// arrive, mirroring how uploading clears the URL in the settings form.
func UpdateSettings(c *gin.Context) {
	var req SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON payload"})
		return
	}

	if req.TaxPercent < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "tax_percent cannot be negative"})
		return
	}

	logoURL := strings.TrimSpace(req.LogoURL)
	logoData := strings.TrimSpace(req.LogoData)
	if logoData != "" {
		logoURL = ""
	}

	settings, err := loadSettings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update settings", "error": err.Error()})
		return
	}

	updates := map[string]interface{}{
		"shop_name":      strings.TrimSpace(req.ShopName),
		"shop_address":   strings.TrimSpace(req.ShopAddress),
		"shop_phone":     strings.TrimSpace(req.ShopPhone),
		"shop_gstin":     strings.TrimSpace(req.ShopGSTIN),
		"invoice_prefix": strings.ToUpper(strings.TrimSpace(req.InvoicePrefix)),
		"logo_url":       logoURL,
		"logo_data":      logoData,
		"apply_tax":      req.ApplyTax,
		"tax_percent":    req.TaxPercent,
	}
	if err := database.DB.Model(&settings).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update settings", "error": err.Error()})
		return
	}

	settings, err = loadSettings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch settings", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, settings)
}
