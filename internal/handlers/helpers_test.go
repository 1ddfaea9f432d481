package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"mobile-shop-server/internal/database"
	"mobile-shop-server/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB points the package-global connection at a fresh in-memory
// sqlite database named after the test.
func setupTestDB(t *testing.T) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Phone{},
		&models.Product{},
		&models.Customer{},
		&models.Partner{},
		&models.CustomerLedgerEntry{},
		&models.PartnerLedgerEntry{},
		&models.SalesOrder{},
		&models.SalesOrderItem{},
		&models.InstallmentSale{},
		&models.InstallmentPayment{},
		&models.Repair{},
		&models.Setting{},
	)
	require.NoError(t, err)

	database.DB = db
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	api := r.Group("/api")
	{
		api.GET("/phones", GetPhones)
		api.POST("/phones", AddPhone)
		api.DELETE("/phones/:id", DeletePhone)

		api.GET("/customers/:id/ledger", GetCustomerLedger)
		api.POST("/customers/:id/ledger", AddCustomerLedgerEntry)

		api.POST("/orders", CreateOrder)
		api.GET("/orders", ListOrders)
		api.GET("/orders/:id/invoice", GetInvoice)

		api.POST("/installments", CreateInstallmentSale)
		api.GET("/installments/:id", GetInstallmentSale)
		api.POST("/installments/:id/payments", RecordPayment)
	}
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func seedProduct(t *testing.T, name string, price float64, stock int) models.Product {
	t.Helper()
	p := models.Product{Name: name, Category: "accessories", Price: price, StockQuantity: stock}
	require.NoError(t, database.DB.Create(&p).Error)
	return p
}

func seedPhone(t *testing.T, imei string, status models.PhoneStatus) models.Phone {
	t.Helper()
	p := models.Phone{Brand: "Samsung", Model: "A54", IMEI: imei, SalePrice: 350000, Status: status}
	require.NoError(t, database.DB.Create(&p).Error)
	return p
}

func seedCustomer(t *testing.T, name string) models.Customer {
	t.Helper()
	cu := models.Customer{Name: name, PhoneNumber: "0912000000"}
	require.NoError(t, database.DB.Create(&cu).Error)
	return cu
}

func countRows(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, database.DB.Model(model).Count(&n).Error)
	return n
}
