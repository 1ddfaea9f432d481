package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"mobile-shop-server/internal/database"
	"mobile-shop-server/internal/models"
	"mobile-shop-server/internal/services"
	"mobile-shop-server/internal/utils"

	"github.com/gin-gonic/gin"
)

// OrderRequest defines what the frontend sends at checkout
type OrderRequest struct {
	CustomerID    *uint                `json:"customer_id"`
	PaymentMethod models.PaymentMethod `json:"payment_method" binding:"required"`
	Discount      float64              `json:"discount"`
	Tax           float64              `json:"tax"`
	Notes         string               `json:"notes"`
	Items         []OrderItemRequest   `json:"items"`
}

type OrderItemRequest struct {
	ItemType        models.ItemType `json:"item_type" binding:"required"`
	ItemID          uint            `json:"item_id" binding:"required"`
	Description     string          `json:"description"`
	Quantity        int             `json:"quantity"`
	UnitPrice       float64         `json:"unit_price"`
	DiscountPerItem float64         `json:"discount_per_item"`
}

// --- POST: /api/orders ---
// CreateOrder commits the whole cart atomically: every stock mutation,
// the order header, its line items and (for credit sales) the ledger
// entry land together or not at all.
func CreateOrder(c *gin.Context) {
	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	// 1. Validate the cart before touching the database
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		return
	}
	if req.PaymentMethod != models.PaymentCash && req.PaymentMethod != models.PaymentCredit {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payment method must be 'cash' or 'credit'"})
		return
	}
	if req.PaymentMethod == models.PaymentCredit && req.CustomerID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Credit sales require a customer"})
		return
	}
	for i := range req.Items {
		item := &req.Items[i]
		switch item.ItemType {
		case models.ItemPhone:
			// A phone is one physical unit, always
			item.Quantity = 1
		case models.ItemInventory:
			if item.Quantity < 1 {
				c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid quantity for item %d", item.ItemID)})
				return
			}
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Item type must be 'phone' or 'inventory'"})
			return
		}
	}

	// 2. Compute all amounts once, from the submitted cart
	lines := make([]services.CartLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, services.CartLine{
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			DiscountPerItem: item.DiscountPerItem,
		})
	}
	totals := services.ComputeOrderTotals(lines, req.Discount, req.Tax)

	// 3. Start a database transaction (ACID safety).
	// SQLite serializes writers, so the re-checks below cannot race
	// a concurrent checkout once the transaction holds the write lock.
	tx := database.DB.Begin()

	order := models.SalesOrder{
		ReceiptNo:       utils.NewReceiptNumber(),
		CustomerID:      req.CustomerID,
		PaymentMethod:   req.PaymentMethod,
		Discount:        req.Discount,
		Tax:             req.Tax,
		Subtotal:        totals.Subtotal,
		GrandTotal:      totals.GrandTotal,
		Notes:           req.Notes,
		TransactionDate: time.Now(),
	}
	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order record"})
		return
	}

	// 4. Per item: re-check availability inside the transaction,
	// mutate the inventory row, then write the line item.
	for _, item := range req.Items {
		description := item.Description

		switch item.ItemType {
		case models.ItemPhone:
			var phone models.Phone
			if err := tx.First(&phone, item.ItemID).Error; err != nil {
				tx.Rollback()
				c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Phone %d not found", item.ItemID)})
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

		case models.ItemInventory:
			var product models.Product
			if err := tx.First(&product, item.ItemID).Error; err != nil {
				tx.Rollback()
				c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Product %d not found", item.ItemID)})
				return
			}
			if product.StockQuantity < item.Quantity {
				tx.Rollback()
				c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("Insufficient stock for %s", product.Name)})
				return
			}

			product.StockQuantity -= item.Quantity
			if err := tx.Save(&product).Error; err != nil {
				tx.Rollback()
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update stock"})
				return
			}
			if description == "" {
				description = product.Name
			}
		}

		orderItem := models.SalesOrderItem{
			OrderID:         order.ID,
			ItemType:        item.ItemType,
			ItemID:          item.ItemID,
			Description:     description,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			DiscountPerItem: item.DiscountPerItem,
			TotalPrice:      services.LineTotal(item.Quantity, item.UnitPrice, item.DiscountPerItem),
		}
		if err := tx.Create(&orderItem).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order item"})
			return
		}
	}

	// 5. Credit sales post one receivable against the customer
	if req.PaymentMethod == models.PaymentCredit && totals.GrandTotal > 0 {
		entry := models.CustomerLedgerEntry{
			CustomerID:  *req.CustomerID,
			EntryType:   models.EntryDebit,
			Amount:      totals.GrandTotal,
			Description: "Credit sale " + order.ReceiptNo,
			OrderID:     &order.ID,
		}
		if err := tx.Create(&entry).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post ledger entry"})
			return
		}
	}

	// 6. Commit
	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit sale"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"order_id":    order.ID,
		"receipt_no":  order.ReceiptNo,
		"grand_total": totals.GrandTotal,
	})
}

// OrderSummary is one row of the orders table
type OrderSummary struct {
	ID              uint                 `json:"id"`
	ReceiptNo       string               `json:"receipt_no"`
	CustomerName    string               `json:"customer_name"`
	PaymentMethod   models.PaymentMethod `json:"payment_method"`
	GrandTotal      float64              `json:"grand_total"`
	TransactionDate time.Time            `json:"transaction_date"`
}

// --- GET: /api/orders ---
// ListOrders returns every order, newest first.
func ListOrders(c *gin.Context) {
	var orders []models.SalesOrder
	if err := database.DB.Preload("Customer").Order("id desc").Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	summaries := make([]OrderSummary, 0, len(orders))
	for _, o := range orders {
		name := "Guest"
		if o.Customer != nil {
			name = o.Customer.Name
		}
		summaries = append(summaries, OrderSummary{
			ID:              o.ID,
			ReceiptNo:       o.ReceiptNo,
			CustomerName:    name,
			PaymentMethod:   o.PaymentMethod,
			GrandTotal:      o.GrandTotal,
			TransactionDate: o.TransactionDate,
		})
	}

	c.JSON(http.StatusOK, summaries)
}

// Letterhead holds the shop identity printed at the top of an invoice.
// It is loaded from the settings table once per request and handed to
// the assembly code as a plain struct.
type Letterhead struct {
	ShopName      string `json:"shop_name"`
	ShopAddress   string `json:"shop_address"`
	ShopPhone     string `json:"shop_phone"`
	InvoiceFooter string `json:"invoice_footer"`
}

// InvoiceResponse is the presentation-ready invoice
type InvoiceResponse struct {
	OrderID         uint                    `json:"order_id"`
	ReceiptNo       string                  `json:"receipt_no"`
	CustomerName    string                  `json:"customer_name"`
	PaymentMethod   models.PaymentMethod    `json:"payment_method"`
	TransactionDate time.Time               `json:"transaction_date"`
	Notes           string                  `json:"notes"`
	Items           []models.SalesOrderItem `json:"items"`
	Subtotal        float64                 `json:"subtotal"`
	ItemsDiscount   float64                 `json:"items_discount"`
	Discount        float64                 `json:"discount"`
	TaxableAmount   float64                 `json:"taxable_amount"`
	TaxPercent      float64                 `json:"tax_percent"`
	TaxAmount       float64                 `json:"tax_amount"`
	GrandTotal      float64                 `json:"grand_total"`
	Letterhead      Letterhead              `json:"letterhead"`
}

func loadLetterhead() Letterhead {
	var rows []models.Setting
	database.DB.Find(&rows)

	values := make(map[string]string, len(rows))
	for _, r := range rows {
		values[r.Key] = r.Value
	}

	// Missing keys fall back to empty strings
	return Letterhead{
		ShopName:      values["shop_name"],
		ShopAddress:   values["shop_address"],
		ShopPhone:     values["shop_phone"],
		InvoiceFooter: values["invoice_footer"],
	}
}

// --- GET: /api/orders/:id/invoice ---
// GetInvoice rebuilds the invoice view from stored rows. Only display
// fields are re-derived; the stored grand total is trusted as-is.
func GetInvoice(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var order models.SalesOrder
	if err := database.DB.Preload("Customer").Preload("Items").First(&order, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	var itemsDiscount float64
	for _, item := range order.Items {
		itemsDiscount += item.DiscountPerItem
	}
	taxable := order.Subtotal - itemsDiscount - order.Discount
	taxAmount := taxable * order.Tax / 100

	customerName := "Guest"
	if order.Customer != nil {
		customerName = order.Customer.Name
	}

	c.JSON(http.StatusOK, InvoiceResponse{
		OrderID:         order.ID,
		ReceiptNo:       order.ReceiptNo,
		CustomerName:    customerName,
		PaymentMethod:   order.PaymentMethod,
		TransactionDate: order.TransactionDate,
		Notes:           order.Notes,
		Items:           order.Items,
		Subtotal:        order.Subtotal,
		ItemsDiscount:   itemsDiscount,
		Discount:        order.Discount,
		TaxableAmount:   taxable,
		TaxPercent:      order.Tax,
		TaxAmount:       taxAmount,
		GrandTotal:      order.GrandTotal,
		Letterhead:      loadLetterhead(),
	})
}
