package database

import (
	"mobile-shop-server/internal/models"
)

// CustomerBalance returns debits minus credits for one customer.
// COALESCE ensures we get 0 instead of NULL when the ledger is empty.
func CustomerBalance(customerID uint) (float64, error) {
	var debits, credits float64

	err := DB.Model(&models.CustomerLedgerEntry{}).
		Where("customer_id = ? AND entry_type = ?", customerID, models.EntryDebit).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&debits).Error
	if err != nil {
		return 0, err
	}

	err = DB.Model(&models.CustomerLedgerEntry{}).
		Where("customer_id = ? AND entry_type = ?", customerID, models.EntryCredit).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&credits).Error
	if err != nil {
		return 0, err
	}

	return debits - credits, nil
}

// PartnerBalance is the payables-side counterpart.
func PartnerBalance(partnerID uint) (float64, error) {
	var debits, credits float64

	err := DB.Model(&models.PartnerLedgerEntry{}).
		Where("partner_id = ? AND entry_type = ?", partnerID, models.EntryDebit).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&debits).Error
	if err != nil {
		return 0, err
	}

	err = DB.Model(&models.PartnerLedgerEntry{}).
		Where("partner_id = ? AND entry_type = ?", partnerID, models.EntryCredit).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&credits).Error
	if err != nil {
		return 0, err
	}

	return debits - credits, nil
}
