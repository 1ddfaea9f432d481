package handlers

import (
	"net/http"
	"strconv"

	"mobile-shop-server/internal/database"
	"mobile-shop-server/internal/models"

	"github.com/gin-gonic/gin"
)

// --- GET: /api/phones ---
// Optional ?status= filter ('available', 'sold', 'returned')
func GetPhones(c *gin.Context) {
	query := database.DB.Order("id desc")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var phones []models.Phone
	if err := query.Find(&phones).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch phones"})
		return
	}

	c.JSON(http.StatusOK, phones)
}

// --- GET: /api/phones/:id ---
func GetPhone(c *gin.Context) {
	var phone models.Phone
	if err := database.DB.First(&phone, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Phone not found"})
		return
	}

	c.JSON(http.StatusOK, phone)
}

// --- POST: /api/phones ---
func AddPhone(c *gin.Context) {
	var phone models.Phone
	if err := c.ShouldBindJSON(&phone); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	// New stock always enters as available
	phone.Status = models.PhoneAvailable
	phone.SaleDate = nil

	if err := database.DB.Create(&phone).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not create phone. IMEI may already exist."})
		return
	}

	c.JSON(http.StatusCreated, phone)
}

// --- PUT: /api/phones/:id ---
func UpdatePhone(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid phone ID"})
		return
	}

	var phone models.Phone
	if err := database.DB.First(&phone, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Phone not found"})
		return
	}

	// Map input so we only update what was sent (partial update)
	var updateData map[string]interface{}
	if err := c.ShouldBindJSON(&updateData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if err := database.DB.Model(&phone).Updates(updateData).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not update phone. IMEI may already exist."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Phone updated successfully", "phone": phone})
}

// --- DELETE: /api/phones/:id ---
func DeletePhone(c *gin.Context) {
	var phone models.Phone
	if err := database.DB.First(&phone, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Phone not found"})
		return
	}

	// Sold units stay on the books for invoice history
	if phone.Status == models.PhoneSold {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete a sold phone"})
		return
	}

	if err := database.DB.Delete(&phone).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete phone"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Phone deleted successfully"})
}
