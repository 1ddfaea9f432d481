package handlers

import (
	"net/http"
	"strconv"

	"mobile-shop-server/internal/database"
	"mobile-shop-server/internal/models"

	"github.com/gin-gonic/gin"
)

// --- GET: /api/partners ---
func GetPartners(c *gin.Context) {
	var partners []models.Partner
	if err := database.DB.Order("id desc").Find(&partners).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch partners"})
		return
	}

	c.JSON(http.StatusOK, partners)
}

// --- GET: /api/partners/:id ---
func GetPartner(c *gin.Context) {
	var partner models.Partner
	if err := database.DB.First(&partner, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Partner not found"})
		return
	}

	balance, err := database.PartnerBalance(partner.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balance"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"partner": partner, "balance": balance})
}

// --- POST: /api/partners ---
func AddPartner(c *gin.Context) {
	var partner models.Partner
	if err := c.ShouldBindJSON(&partner); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if partner.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Partner name is required"})
		return
	}

	if err := database.DB.Create(&partner).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create partner"})
		return
	}

	c.JSON(http.StatusCreated, partner)
}

// --- PUT: /api/partners/:id ---
func UpdatePartner(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid partner ID"})
		return
	}

	var partner models.Partner
	if err := database.DB.First(&partner, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Partner not found"})
		return
	}

	var updateData map[string]interface{}
	if err := c.ShouldBindJSON(&updateData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if err := database.DB.Model(&partner).Updates(updateData).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update partner"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Partner updated successfully", "partner": partner})
}

// --- DELETE: /api/partners/:id ---
func DeletePartner(c *gin.Context) {
	var partner models.Partner
	if err := database.DB.First(&partner, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Partner not found"})
		return
	}

	balance, err := database.PartnerBalance(partner.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balance"})
		return
	}
	if balance != 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete a partner with an outstanding balance"})
		return
	}

	if err := database.DB.Delete(&partner).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete partner"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Partner deleted successfully"})
}

// --- GET: /api/partners/:id/ledger ---
func GetPartnerLedger(c *gin.Context) {
	var partner models.Partner
	if err := database.DB.First(&partner, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Partner not found"})
		return
	}

	var entries []models.PartnerLedgerEntry
	if err := database.DB.Where("partner_id = ?", partner.ID).Order("id desc").Find(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch ledger"})
		return
	}

	balance, err := database.PartnerBalance(partner.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balance"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries, "balance": balance})
}

// --- POST: /api/partners/:id/ledger ---
func AddPartnerLedgerEntry(c *gin.Context) {
	var partner models.Partner
	if err := database.DB.First(&partner, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Partner not found"})
		return
	}

	var req LedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if req.EntryType != models.EntryDebit && req.EntryType != models.EntryCredit {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Entry type must be 'debit' or 'credit'"})
		return
	}
	if req.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be positive"})
		return
	}

	entry := models.PartnerLedgerEntry{
		PartnerID:   partner.ID,
		EntryType:   req.EntryType,
		Amount:      req.Amount,
		Description: req.Description,
	}
	if err := database.DB.Create(&entry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post ledger entry"})
		return
	}

	c.JSON(http.StatusCreated, entry)
}
