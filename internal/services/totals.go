package services

// CartLine is the slice of an order line the money math cares about.
type CartLine struct {
	Quantity        int
	UnitPrice       float64
	DiscountPerItem float64
}

// OrderTotals holds every derived amount for an order.
// GrandTotal is computed exactly once, at checkout; invoice retrieval
// later trusts the stored value and only re-derives the display fields.
type OrderTotals struct {
	Subtotal      float64
	ItemsDiscount float64
	TaxableAmount float64
	TaxAmount     float64
	GrandTotal    float64
}

// ComputeOrderTotals derives all amounts from the submitted cart:
//
//	subtotal      = sum(unitPrice * quantity)
//	taxableAmount = subtotal - sum(discountPerItem) - orderDiscount
//	grandTotal    = taxableAmount * (1 + taxPercent/100)
func ComputeOrderTotals(lines []CartLine, orderDiscount, taxPercent float64) OrderTotals {
	var t OrderTotals

	for _, l := range lines {
		t.Subtotal += l.UnitPrice * float64(l.Quantity)
		t.ItemsDiscount += l.DiscountPerItem
	}

	t.TaxableAmount = t.Subtotal - t.ItemsDiscount - orderDiscount
	t.TaxAmount = t.TaxableAmount * taxPercent / 100
	t.GrandTotal = t.TaxableAmount + t.TaxAmount
	return t
}

// LineTotal is the per-line snapshot stored on the order item row.
func LineTotal(quantity int, unitPrice, discountPerItem float64) float64 {
	return unitPrice*float64(quantity) - discountPerItem
}
