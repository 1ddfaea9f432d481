package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"mobile-shop-server/internal/database"
	"mobile-shop-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderComputesTotals(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter()
	product := seedProduct(t, "Charger", 100000, 10)

	w := doJSON(t, r, http.MethodPost, "/api/orders", map[string]interface{}{
		"payment_method": "cash",
		"discount":       0,
		"tax":            9,
		"items": []map[string]interface{}{
			{"item_type": "inventory", "item_id": product.ID, "quantity": 2, "unit_price": 100000, "discount_per_item": 0},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.InDelta(t, 218000, body["grand_total"].(float64), 0.01)

	var order models.SalesOrder
	require.NoError(t, database.DB.Preload("Items").First(&order).Error)
	assert.InDelta(t, 200000, order.Subtotal, 0.01)
	assert.InDelta(t, 218000, order.GrandTotal, 0.01)
	require.Len(t, order.Items, 1)
	assert.InDelta(t, 200000, order.Items[0].TotalPrice, 0.01)

	// Stock decremented by exactly the sold quantity
	var after models.Product
	require.NoError(t, database.DB.First(&after, product.ID).Error)
	assert.Equal(t, 8, after.StockQuantity)
}

func TestCreateOrderEmptyCart(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter()

	w := doJSON(t, r, http.MethodPost, "/api/orders", map[string]interface{}{
		"payment_method": "cash",
		"items":          []map[string]interface{}{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, int64(0), countRows(t, &models.SalesOrder{}))
}

func TestCreateOrderRollsBackOnUnavailablePhone(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter()
	product := seedProduct(t, "Case", 50000, 5)
	soldPhone := seedPhone(t, "356000000000001", models.PhoneSold)

	// Mixed cart: the valid inventory line must not survive the bad phone line
	w := doJSON(t, r, http.MethodPost, "/api/orders", map[string]interface{}{
		"payment_method": "cash",
		"items": []map[string]interface{}{
			{"item_type": "inventory", "item_id": product.ID, "quantity": 2, "unit_price": 50000},
			{"item_type": "phone", "item_id": soldPhone.ID, "unit_price": 350000},
		},
	})
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	assert.Contains(t, decodeBody(t, w)["error"], soldPhone.IMEI)

	assert.Equal(t, int64(0), countRows(t, &models.SalesOrder{}))
	assert.Equal(t, int64(0), countRows(t, &models.SalesOrderItem{}))
	assert.Equal(t, int64(0), countRows(t, &models.CustomerLedgerEntry{}))

	var after models.Product
	require.NoError(t, database.DB.First(&after, product.ID).Error)
	assert.Equal(t, 5, after.StockQuantity)
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter()
	product := seedProduct(t, "Screen Protector", 20000, 3)

	w := doJSON(t, r, http.MethodPost, "/api/orders", map[string]interface{}{
		"payment_method": "cash",
		"items": []map[string]interface{}{
			{"item_type": "inventory", "item_id": product.ID, "quantity": 4, "unit_price": 20000},
		},
	})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, decodeBody(t, w)["error"], product.Name)

	var after models.Product
	require.NoError(t, database.DB.First(&after, product.ID).Error)
	assert.Equal(t, 3, after.StockQuantity)
	assert.Equal(t, int64(0), countRows(t, &models.SalesOrder{}))
}

func TestCreateOrderMarksPhoneSold(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter()
	phone := seedPhone(t, "356000000000002", models.PhoneAvailable)

	w := doJSON(t, r, http.MethodPost, "/api/orders", map[string]interface{}{
		"payment_method": "cash",
		"items": []map[string]interface{}{
			{"item_type": "phone", "item_id": phone.ID, "unit_price": 350000},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var after models.Phone
	require.NoError(t, database.DB.First(&after, phone.ID).Error)
	assert.Equal(t, models.PhoneSold, after.Status)
	require.NotNil(t, after.SaleDate)

	// The same unit cannot be sold twice
	w = doJSON(t, r, http.MethodPost, "/api/orders", map[string]interface{}{
		"payment_method": "cash",
		"items": []map[string]interface{}{
			{"item_type": "phone", "item_id": phone.ID, "unit_price": 350000},
		},
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, int64(1), countRows(t, &models.SalesOrder{}))
}

func TestCreditOrderPostsOneLedgerEntry(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter()
	product := seedProduct(t, "Headphones", 80000, 10)
	customer := seedCustomer(t, "Reza")

	w := doJSON(t, r, http.MethodPost, "/api/orders", map[string]interface{}{
		"customer_id":    customer.ID,
		"payment_method": "credit",
		"tax":            0,
		"items": []map[string]interface{}{
			{"item_type": "inventory", "item_id": product.ID, "quantity": 1, "unit_price": 80000},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var entries []models.CustomerLedgerEntry
	require.NoError(t, database.DB.Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, models.EntryDebit, entries[0].EntryType)
	assert.InDelta(t, 80000, entries[0].Amount, 0.01)
	assert.Equal(t, customer.ID, entries[0].CustomerID)
	require.NotNil(t, entries[0].OrderID)
}

func TestCashOrderPostsNoLedgerEntry(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter()
	product := seedProduct(t, "Cable", 15000, 10)
	customer := seedCustomer(t, "Sara")

	w := doJSON(t, r, http.MethodPost, "/api/orders", map[string]interface{}{
		"customer_id":    customer.ID,
		"payment_method": "cash",
		"items": []map[string]interface{}{
			{"item_type": "inventory", "item_id": product.ID, "quantity": 1, "unit_price": 15000},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, int64(0), countRows(t, &models.CustomerLedgerEntry{}))
}

func TestCreditOrderRequiresCustomer(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter()
	product := seedProduct(t, "Power Bank", 60000, 5)

	w := doJSON(t, r, http.MethodPost, "/api/orders", map[string]interface{}{
		"payment_method": "credit",
		"items": []map[string]interface{}{
			{"item_type": "inventory", "item_id": product.ID, "quantity": 1, "unit_price": 60000},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetInvoiceNotFound(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter()

	w := doJSON(t, r, http.MethodGet, "/api/orders/999/invoice", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetInvoiceAssembly(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter()
	product := seedProduct(t, "Charger", 100000, 10)
	customer := seedCustomer(t, "Amir")
	require.NoError(t, database.DB.Create(&models.Setting{Key: "shop_name", Value: "Star Mobile"}).Error)

	w := doJSON(t, r, http.MethodPost, "/api/orders", map[string]interface{}{
		"customer_id":    customer.ID,
		"payment_method": "cash",
		"discount":       5000,
		"tax":            9,
		"items": []map[string]interface{}{
			{"item_type": "inventory", "item_id": product.ID, "quantity": 2, "unit_price": 100000, "discount_per_item": 10000},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	orderID := decodeBody(t, w)["order_id"].(float64)

	w = doJSON(t, r, http.MethodGet, "/api/orders/"+strconv.Itoa(int(orderID))+"/invoice", nil)
	require.Equal(t, http.StatusOK, w.Code)
	inv := decodeBody(t, w)

	assert.Equal(t, "Amir", inv["customer_name"])
	assert.InDelta(t, 200000, inv["subtotal"].(float64), 0.01)
	assert.InDelta(t, 10000, inv["items_discount"].(float64), 0.01)
	assert.InDelta(t, 185000, inv["taxable_amount"].(float64), 0.01)
	assert.InDelta(t, 16650, inv["tax_amount"].(float64), 0.01)
	assert.InDelta(t, 201650, inv["grand_total"].(float64), 0.01)

	letterhead := inv["letterhead"].(map[string]interface{})
	assert.Equal(t, "Star Mobile", letterhead["shop_name"])
	// Unset keys fall back to empty strings, not errors
	assert.Equal(t, "", letterhead["shop_address"])
}

func TestListOrdersNewestFirstWithGuest(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter()
	product := seedProduct(t, "Charger", 100000, 10)
	customer := seedCustomer(t, "Amir")

	w := doJSON(t, r, http.MethodPost, "/api/orders", map[string]interface{}{
		"customer_id":    customer.ID,
		"payment_method": "cash",
		"items": []map[string]interface{}{
			{"item_type": "inventory", "item_id": product.ID, "quantity": 1, "unit_price": 100000},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/orders", map[string]interface{}{
		"payment_method": "cash",
		"items": []map[string]interface{}{
			{"item_type": "inventory", "item_id": product.ID, "quantity": 1, "unit_price": 100000},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list []OrderSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "Guest", list[0].CustomerName)
	assert.Equal(t, "Amir", list[1].CustomerName)
	assert.Greater(t, list[0].ID, list[1].ID)
}
