package handlers

import (
	"net/http"
	"strconv"

	"mobile-shop-server/internal/database"
	"mobile-shop-server/internal/models"

	"github.com/gin-gonic/gin"
)

// --- GET: /api/customers ---
func GetCustomers(c *gin.Context) {
	var customers []models.Customer
	if err := database.DB.Order("id desc").Find(&customers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers"})
		return
	}

	c.JSON(http.StatusOK, customers)
}

// --- GET: /api/customers/:id ---
// Includes the current ledger balance (debits - credits).
func GetCustomer(c *gin.Context) {
	var customer models.Customer
	if err := database.DB.First(&customer, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	balance, err := database.CustomerBalance(customer.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balance"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"customer": customer, "balance": balance})
}

// --- POST: /api/customers ---
func AddCustomer(c *gin.Context) {
	var customer models.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if customer.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Customer name is required"})
		return
	}

	if err := database.DB.Create(&customer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create customer"})
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// --- PUT: /api/customers/:id ---
func UpdateCustomer(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer ID"})
		return
	}

	var customer models.Customer
	if err := database.DB.First(&customer, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	var updateData map[string]interface{}
	if err := c.ShouldBindJSON(&updateData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if err := database.DB.Model(&customer).Updates(updateData).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update customer"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer updated successfully", "customer": customer})
}

// --- DELETE: /api/customers/:id ---
// A customer with an outstanding balance cannot be removed.
func DeleteCustomer(c *gin.Context) {
	var customer models.Customer
	if err := database.DB.First(&customer, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	balance, err := database.CustomerBalance(customer.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balance"})
		return
	}
	if balance != 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete a customer with an outstanding balance"})
		return
	}

	if err := database.DB.Delete(&customer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete customer"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}

// LedgerEntryRequest is a manual ledger adjustment (payment received, opening balance)
type LedgerEntryRequest struct {
	EntryType   models.LedgerEntryType `json:"entry_type" binding:"required"`
	Amount      float64                `json:"amount" binding:"required"`
	Description string                 `json:"description"`
}

// --- GET: /api/customers/:id/ledger ---
func GetCustomerLedger(c *gin.Context) {
	var customer models.Customer
	if err := database.DB.First(&customer, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	var entries []models.CustomerLedgerEntry
	if err := database.DB.Where("customer_id = ?", customer.ID).Order("id desc").Find(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch ledger"})
		return
	}

	balance, err := database.CustomerBalance(customer.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balance"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries, "balance": balance})
}

// --- POST: /api/customers/:id/ledger ---
func AddCustomerLedgerEntry(c *gin.Context) {
	var customer models.Customer
	if err := database.DB.First(&customer, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
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

	entry := models.CustomerLedgerEntry{
		CustomerID:  customer.ID,
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
