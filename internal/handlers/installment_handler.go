package handlers

import (
	"fmt"
	"net/http"
	"time"

	"mobile-shop-server/internal/database"
	"mobile-shop-server/internal/models"
	"mobile-shop-server/internal/services"

	"github.com/gin-gonic/gin"
)

// InstallmentSaleRequest opens a new installment plan
type InstallmentSaleRequest struct {
	CustomerID  uint       `json:"customer_id" binding:"required"`
	PhoneID     *uint      `json:"phone_id"`
	Description string     `json:"description"`
	TotalPrice  float64    `json:"total_price" binding:"required"`
	DownPayment float64    `json:"down_payment"`
	Months      int        `json:"months" binding:"required"`
	StartDate   *time.Time `json:"start_date"`
}

// --- POST: /api/installments ---
// CreateInstallmentSale writes the sale, its payment schedule, the
// phone status change and the receivable ledger entry in one transaction.
func CreateInstallmentSale(c *gin.Context) {
	var req InstallmentSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.TotalPrice <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Total price must be positive"})
		return
	}
	if req.DownPayment < 0 || req.DownPayment >= req.TotalPrice {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Down payment must be between 0 and the total price"})
		return
	}
	if req.Months < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Months must be at least 1"})
		return
	}

	var customer models.Customer
	if err := database.DB.First(&customer, req.CustomerID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	startDate := time.Now()
	if req.StartDate != nil {
		startDate = *req.StartDate
	}

	tx := database.DB.Begin()

	description := req.Description
	if req.PhoneID != nil {
		var phone models.Phone
		if err := tx.First(&phone, *req.PhoneID).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Phone %d not found", *req.PhoneID)})
			return
		}
		if phone.Status != models.PhoneAvailable {
			tx.Rollback()
			c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("Phone %s %s (IMEI %s) is not available", phone.Brand, phone.Model, phone.IMEI)})
			return
		}

		now := time.Now()
		phone.Status = models.PhoneSold
		phone.SaleDate = &now
		if err := tx.Save(&phone).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update phone"})
			return
		}
		if description == "" {
			description = phone.Brand + " " + phone.Model
		}
	}

	sale := models.InstallmentSale{
		CustomerID:  req.CustomerID,
		PhoneID:     req.PhoneID,
		Description: description,
		TotalPrice:  req.TotalPrice,
		DownPayment: req.DownPayment,
		Months:      req.Months,
		StartDate:   startDate,
		Status:      models.InstallmentActive,
	}
	if err := tx.Create(&sale).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create installment sale"})
		return
	}

	for _, line := range services.BuildSchedule(req.TotalPrice, req.DownPayment, req.Months, startDate) {
		payment := models.InstallmentPayment{
			InstallmentSaleID: sale.ID,
			DueDate:           line.DueDate,
			Amount:            line.Amount,
			Status:            models.PaymentPending,
		}
		if err := tx.Create(&payment).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment schedule"})
			return
		}
	}

	// The financed amount becomes a receivable against the customer
	entry := models.CustomerLedgerEntry{
		CustomerID:  req.CustomerID,
		EntryType:   models.EntryDebit,
		Amount:      req.TotalPrice - req.DownPayment,
		Description: fmt.Sprintf("Installment sale #%d", sale.ID),
	}
	if err := tx.Create(&entry).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post ledger entry"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit installment sale"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"sale_id": sale.ID})
}

// --- GET: /api/installments ---
func GetInstallmentSales(c *gin.Context) {
	var sales []models.InstallmentSale
	if err := database.DB.Preload("Payments").Order("id desc").Find(&sales).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch installment sales"})
		return
	}

	c.JSON(http.StatusOK, sales)
}

// --- GET: /api/installments/:id ---
func GetInstallmentSale(c *gin.Context) {
	var sale models.InstallmentSale
	if err := database.DB.Preload("Payments").First(&sale, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Installment sale not found"})
		return
	}

	c.JSON(http.StatusOK, sale)
}

// PaymentRequest applies money to one scheduled payment
type PaymentRequest struct {
	PaymentID uint    `json:"payment_id" binding:"required"`
	Amount    float64 `json:"amount" binding:"required"`
}

// --- POST: /api/installments/:id/payments ---
// RecordPayment updates the schedule row and posts the ledger credit
// in one transaction. Settling the last row settles the sale.
func RecordPayment(c *gin.Context) {
	var sale models.InstallmentSale
	if err := database.DB.First(&sale, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Installment sale not found"})
		return
	}

	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be positive"})
		return
	}

	tx := database.DB.Begin()

	var payment models.InstallmentPayment
	if err := tx.Where("id = ? AND installment_sale_id = ?", req.PaymentID, sale.ID).First(&payment).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusNotFound, gin.H{"error": "Scheduled payment not found"})
		return
	}
	if payment.Status == models.PaymentPaid {
		tx.Rollback()
		c.JSON(http.StatusConflict, gin.H{"error": "Payment is already settled"})
		return
	}

	remaining := payment.Amount - payment.PaidAmount
	if req.Amount > remaining+0.01 {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Amount exceeds the %.2f remaining on this payment", remaining)})
		return
	}

	payment.PaidAmount += req.Amount
	if payment.Amount-payment.PaidAmount < 0.01 {
		now := time.Now()
		payment.Status = models.PaymentPaid
		payment.PaidAt = &now
	}
	if err := tx.Save(&payment).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update payment"})
		return
	}

	entry := models.CustomerLedgerEntry{
		CustomerID:  sale.CustomerID,
		EntryType:   models.EntryCredit,
		Amount:      req.Amount,
		Description: fmt.Sprintf("Installment payment, sale #%d", sale.ID),
	}
	if err := tx.Create(&entry).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post ledger entry"})
		return
	}

	// When no pending rows remain, the whole plan is settled
	var pending int64
	if err := tx.Model(&models.InstallmentPayment{}).
		Where("installment_sale_id = ? AND status = ?", sale.ID, models.PaymentPending).
		Count(&pending).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check schedule"})
		return
	}
	if pending == 0 {
		sale.Status = models.InstallmentSettled
		if err := tx.Save(&sale).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update installment sale"})
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit payment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payment":     payment,
		"sale_status": sale.Status,
	})
}
