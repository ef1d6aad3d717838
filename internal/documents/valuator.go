package documents

import "math"

// RecomputeLine refreshes the derived line total. Negative or non-finite
// inputs count as zero, so a half-filled line values at 0 instead of failing.
func RecomputeLine(item *LineItem) {
	qty := float64(item.Quantity)
	if qty < 0 {
		qty = 0
	}
	price := item.UnitPrice
	if price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		price = 0
	}
	item.Total = qty * price
}

// RecomputeTotals refreshes every line total and the document's subtotal, tax
// and grand total for the given tax rate. It must run after any structural
// change to Items and always runs before a save is committed.
func RecomputeTotals(doc *Document, taxRate float64) {
	var subtotal float64
	for i := range doc.Items {
		RecomputeLine(&doc.Items[i])
		subtotal += doc.Items[i].Total
	}
	doc.Subtotal = subtotal
	doc.Tax = subtotal * taxRate
	doc.Total = subtotal + doc.Tax
}
