package handlers

import (
	"net/http"
	"strconv"
	"time"

	"mobile-shop-server/internal/database"
	"mobile-shop-server/internal/models"

	"github.com/gin-gonic/gin"
)

// --- GET: /api/repairs ---
// Optional ?status= filter
func GetRepairs(c *gin.Context) {
	query := database.DB.Order("id desc")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var repairs []models.Repair
	if err := query.Find(&repairs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch repairs"})
		return
	}

	c.JSON(http.StatusOK, repairs)
}

// --- GET: /api/repairs/:id ---
func GetRepair(c *gin.Context) {
	var repair models.Repair
	if err := database.DB.First(&repair, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Repair not found"})
		return
	}

	c.JSON(http.StatusOK, repair)
}

// --- POST: /api/repairs ---
func AddRepair(c *gin.Context) {
	var repair models.Repair
	if err := c.ShouldBindJSON(&repair); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	repair.Status = models.RepairReceived
	repair.ReceivedAt = time.Now()
	repair.DeliveredAt = nil

	if err := database.DB.Create(&repair).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create repair ticket"})
		return
	}

	c.JSON(http.StatusCreated, repair)
}

// --- PUT: /api/repairs/:id ---
// Moving a ticket to 'delivered' stamps the delivery time.
func UpdateRepair(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid repair ID"})
		return
	}

	var repair models.Repair
	if err := database.DB.First(&repair, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Repair not found"})
		return
	}

	var updateData map[string]interface{}
	if err := c.ShouldBindJSON(&updateData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if status, ok := updateData["status"].(string); ok {
		switch models.RepairStatus(status) {
		case models.RepairReceived, models.RepairInProgress, models.RepairReady:
		case models.RepairDelivered:
			updateData["delivered_at"] = time.Now()
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid repair status"})
			return
		}
	}

	if err := database.DB.Model(&repair).Updates(updateData).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update repair"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Repair updated successfully", "repair": repair})
}

// --- DELETE: /api/repairs/:id ---
func DeleteRepair(c *gin.Context) {
	if err := database.DB.Delete(&models.Repair{}, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete repair"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Repair deleted successfully"})
}
