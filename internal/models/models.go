package models

import (
	"time"
)

// PhoneStatus - lifecycle of a single handset unit
type PhoneStatus string

const (
	PhoneAvailable PhoneStatus = "available"
	PhoneSold      PhoneStatus = "sold"
	PhoneReturned  PhoneStatus = "returned"
)

// PaymentMethod - how a sales order is settled
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCredit PaymentMethod = "credit"
)

// ItemType - what kind of inventory a sales order line points at
type ItemType string

const (
	ItemPhone     ItemType = "phone"
	ItemInventory ItemType = "inventory"
)

// LedgerEntryType - accounting side of a ledger row
type LedgerEntryType string

const (
	EntryDebit  LedgerEntryType = "debit"
	EntryCredit LedgerEntryType = "credit"
)

type InstallmentSaleStatus string

const (
	InstallmentActive  InstallmentSaleStatus = "active"
	InstallmentSettled InstallmentSaleStatus = "settled"
)

type InstallmentPaymentStatus string

const (
	PaymentPending InstallmentPaymentStatus = "pending"
	PaymentPaid    InstallmentPaymentStatus = "paid"
)

// RepairStatus - workshop ticket lifecycle
type RepairStatus string

const (
	RepairReceived   RepairStatus = "received"
	RepairInProgress RepairStatus = "in_progress"
	RepairReady      RepairStatus = "ready"
	RepairDelivered  RepairStatus = "delivered"
)

// Phone - a single handset tracked per unit (by IMEI)
type Phone struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	Brand         string      `json:"brand"`
	Model         string      `json:"model"`
	IMEI          string      `gorm:"uniqueIndex;size:32" json:"imei"`
	Color         string      `json:"color"`
	Storage       string      `json:"storage"`
	Condition     string      `json:"condition"` // 'new', 'used'
	PurchasePrice float64     `json:"purchase_price"`
	SalePrice     float64     `json:"sale_price"`
	Status        PhoneStatus `gorm:"size:20" json:"status"`
	PartnerID     *uint       `json:"partner_id"` // supplier, when bought on the books
	SaleDate      *time.Time  `json:"sale_date"`
	CreatedAt     time.Time   `json:"created_at"`
}

// Product - bulk inventory (accessories, parts)
type Product struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	PurchasePrice float64   `json:"purchase_price"`
	Price         float64   `json:"price"`
	StockQuantity int       `json:"stock_quantity"`
	CreatedAt     time.Time `json:"created_at"`
}

type Customer struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `json:"name"`
	PhoneNumber string    `json:"phone_number"`
	Address     string    `json:"address"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}

// Partner - a supplier we keep a running ledger with
type Partner struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `json:"name"`
	PhoneNumber string    `json:"phone_number"`
	Address     string    `json:"address"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}

// CustomerLedgerEntry - append-only receivables row. Balance = debits - credits.
type CustomerLedgerEntry struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	CustomerID  uint            `gorm:"index" json:"customer_id"`
	EntryType   LedgerEntryType `gorm:"size:10" json:"entry_type"`
	Amount      float64         `json:"amount"`
	Description string          `json:"description"`
	OrderID     *uint           `json:"order_id"`
	CreatedAt   time.Time       `json:"created_at"`
}

// PartnerLedgerEntry - same shape, payables side
type PartnerLedgerEntry struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	PartnerID   uint            `gorm:"index" json:"partner_id"`
	EntryType   LedgerEntryType `gorm:"size:10" json:"entry_type"`
	Amount      float64         `json:"amount"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

// SalesOrder - the transaction header. Immutable after checkout.
type SalesOrder struct {
	ID              uint             `gorm:"primaryKey" json:"id"`
	ReceiptNo       string           `gorm:"uniqueIndex;size:32" json:"receipt_no"`
	CustomerID      *uint            `json:"customer_id"` // nil = guest sale
	Customer        *Customer        `json:"customer,omitempty"`
	PaymentMethod   PaymentMethod    `gorm:"size:10" json:"payment_method"`
	Discount        float64          `json:"discount"` // order-level, absolute amount
	Tax             float64          `json:"tax"`      // percent
	Subtotal        float64          `json:"subtotal"`
	GrandTotal      float64          `json:"grand_total"`
	Notes           string           `json:"notes"`
	TransactionDate time.Time        `json:"transaction_date"`
	Items           []SalesOrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

// SalesOrderItem - one cart line. TotalPrice is a snapshot, never recomputed.
type SalesOrderItem struct {
	ID              uint     `gorm:"primaryKey" json:"id"`
	OrderID         uint     `gorm:"index" json:"order_id"`
	ItemType        ItemType `gorm:"size:10" json:"item_type"`
	ItemID          uint     `json:"item_id"`
	Description     string   `json:"description"`
	Quantity        int      `json:"quantity"`
	UnitPrice       float64  `json:"unit_price"`
	DiscountPerItem float64  `json:"discount_per_item"`
	TotalPrice      float64  `json:"total_price"` // quantity*unit_price - discount_per_item
}

// InstallmentSale - a handset sold against a monthly payment schedule
type InstallmentSale struct {
	ID          uint                  `gorm:"primaryKey" json:"id"`
	CustomerID  uint                  `gorm:"index" json:"customer_id"`
	PhoneID     *uint                 `json:"phone_id"`
	Description string                `json:"description"`
	TotalPrice  float64               `json:"total_price"`
	DownPayment float64               `json:"down_payment"`
	Months      int                   `json:"months"`
	StartDate   time.Time             `json:"start_date"`
	Status      InstallmentSaleStatus `gorm:"size:10" json:"status"`
	Payments    []InstallmentPayment  `gorm:"foreignKey:InstallmentSaleID" json:"payments"`
	CreatedAt   time.Time             `json:"created_at"`
}

// InstallmentPayment - one scheduled monthly payment
type InstallmentPayment struct {
	ID                uint                     `gorm:"primaryKey" json:"id"`
	InstallmentSaleID uint                     `gorm:"index" json:"installment_sale_id"`
	DueDate           time.Time                `json:"due_date"`
	Amount            float64                  `json:"amount"`
	PaidAmount        float64                  `json:"paid_amount"`
	PaidAt            *time.Time               `json:"paid_at"`
	Status            InstallmentPaymentStatus `gorm:"size:10" json:"status"`
}

// Repair - a workshop ticket
type Repair struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	CustomerName  string       `json:"customer_name"`
	PhoneNumber   string       `json:"phone_number"`
	DeviceModel   string       `json:"device_model"`
	Problem       string       `json:"problem"`
	EstimatedCost float64      `json:"estimated_cost"`
	Status        RepairStatus `gorm:"size:20" json:"status"`
	ReceivedAt    time.Time    `json:"received_at"`
	DeliveredAt   *time.Time   `json:"delivered_at"`
}

// Setting - key/value row for shop letterhead fields
type Setting struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Key   string `gorm:"uniqueIndex;size:64" json:"key"`
	Value string `json:"value"`
}
