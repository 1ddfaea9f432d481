package handlers

import (
	"net/http"

	"mobile-shop-server/internal/database"
	"mobile-shop-server/internal/models"

	"github.com/gin-gonic/gin"
)

// --- GET: /api/settings ---
// Returns the whole key/value table as a flat map.
func GetSettings(c *gin.Context) {
	var rows []models.Setting
	if err := database.DB.Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch settings"})
		return
	}

	values := make(map[string]string, len(rows))
	for _, r := range rows {
		values[r.Key] = r.Value
	}

	c.JSON(http.StatusOK, values)
}

// --- PUT: /api/settings ---
// Upserts a batch of keys at once.
func UpdateSettings(c *gin.Context) {
	var input map[string]string
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	for key, value := range input {
		var row models.Setting
		err := database.DB.Where("key = ?", key).First(&row).Error
		if err != nil {
			row = models.Setting{Key: key, Value: value}
			if err := database.DB.Create(&row).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings"})
				return
			}
			continue
		}

		row.Value = value
		if err := database.DB.Save(&row).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Settings saved successfully"})
}
