package handlers

import (
	"net/http"
	"strconv"
	"testing"

	"mobile-shop-server/internal/database"
	"mobile-shop-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateInstallmentSaleGeneratesSchedule(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter()
	customer := seedCustomer(t, "Hadi")
	phone := seedPhone(t, "356000000000010", models.PhoneAvailable)

	w := doJSON(t, r, http.MethodPost, "/api/installments", map[string]interface{}{
		"customer_id":  customer.ID,
		"phone_id":     phone.ID,
		"total_price":  1000,
		"down_payment": 100,
		"months":       7,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var sale models.InstallmentSale
	require.NoError(t, database.DB.Preload("Payments").First(&sale).Error)
	require.Len(t, sale.Payments, 7)

	// The schedule sums exactly to the financed amount; the final
	// payment absorbs the rounding remainder.
	var sum float64
	for _, p := range sale.Payments {
		sum += p.Amount
	}
	assert.InDelta(t, 900, sum, 0.001)
	assert.InDelta(t, 128.57, sale.Payments[0].Amount, 0.001)
	assert.InDelta(t, 128.58, sale.Payments[6].Amount, 0.001)

	// The phone left stock and the financed amount hit the ledger
	var soldPhone models.Phone
	require.NoError(t, database.DB.First(&soldPhone, phone.ID).Error)
	assert.Equal(t, models.PhoneSold, soldPhone.Status)

	var entries []models.CustomerLedgerEntry
	require.NoError(t, database.DB.Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, models.EntryDebit, entries[0].EntryType)
	assert.InDelta(t, 900, entries[0].Amount, 0.001)
}

func TestCreateInstallmentSaleValidatesDownPayment(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter()
	customer := seedCustomer(t, "Hadi")

	w := doJSON(t, r, http.MethodPost, "/api/installments", map[string]interface{}{
		"customer_id":  customer.ID,
		"description":  "Laptop",
		"total_price":  500,
		"down_payment": 500,
		"months":       4,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, int64(0), countRows(t, &models.InstallmentSale{}))
}

func TestCreateInstallmentSaleRollsBackOnSoldPhone(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter()
	customer := seedCustomer(t, "Hadi")
	phone := seedPhone(t, "356000000000011", models.PhoneSold)

	w := doJSON(t, r, http.MethodPost, "/api/installments", map[string]interface{}{
		"customer_id":  customer.ID,
		"phone_id":     phone.ID,
		"total_price":  1000,
		"down_payment": 100,
		"months":       5,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, int64(0), countRows(t, &models.InstallmentSale{}))
	assert.Equal(t, int64(0), countRows(t, &models.InstallmentPayment{}))
	assert.Equal(t, int64(0), countRows(t, &models.CustomerLedgerEntry{}))
}

func TestRecordPaymentSettlesSale(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter()
	customer := seedCustomer(t, "Nima")

	w := doJSON(t, r, http.MethodPost, "/api/installments", map[string]interface{}{
		"customer_id":  customer.ID,
		"description":  "iPhone 13",
		"total_price":  600,
		"down_payment": 0,
		"months":       2,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	saleID := int(decodeBody(t, w)["sale_id"].(float64))

	var payments []models.InstallmentPayment
	require.NoError(t, database.DB.Order("id").Find(&payments).Error)
	require.Len(t, payments, 2)

	path := "/api/installments/" + strconv.Itoa(saleID) + "/payments"

	w = doJSON(t, r, http.MethodPost, path, map[string]interface{}{
		"payment_id": payments[0].ID,
		"amount":     300,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, string(models.InstallmentActive), decodeBody(t, w)["sale_status"])

	w = doJSON(t, r, http.MethodPost, path, map[string]interface{}{
		"payment_id": payments[1].ID,
		"amount":     300,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, string(models.InstallmentSettled), decodeBody(t, w)["sale_status"])

	// Each payment posted a credit, netting the receivable to zero
	balance, err := database.CustomerBalance(customer.ID)
	require.NoError(t, err)
	assert.InDelta(t, 0, balance, 0.001)
}

func TestRecordPaymentRejectsOverpayment(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter()
	customer := seedCustomer(t, "Nima")

	w := doJSON(t, r, http.MethodPost, "/api/installments", map[string]interface{}{
		"customer_id": customer.ID,
		"description": "Tablet",
		"total_price": 400,
		"months":      2,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	saleID := int(decodeBody(t, w)["sale_id"].(float64))

	var payment models.InstallmentPayment
	require.NoError(t, database.DB.First(&payment).Error)

	w = doJSON(t, r, http.MethodPost, "/api/installments/"+strconv.Itoa(saleID)+"/payments", map[string]interface{}{
		"payment_id": payment.ID,
		"amount":     payment.Amount + 50,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var after models.InstallmentPayment
	require.NoError(t, database.DB.First(&after, payment.ID).Error)
	assert.Equal(t, models.PaymentPending, after.Status)
	assert.InDelta(t, 0, after.PaidAmount, 0.001)
}
