package catalog

import "errors"

// Product is a catalog entry. Quantity is the only field the stock
// reconciliation path mutates; everything else belongs to product management.
type Product struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	SKU               string  `json:"sku"`
	Barcode           string  `json:"barcode"`
	Category          string  `json:"category"`
	PurchasePrice     float64 `json:"purchasePrice"`
	SalePrice         float64 `json:"salePrice"`
	Quantity          int     `json:"quantity"`
	LowStockThreshold int     `json:"lowStockThreshold"`
}

// LowStock reports whether the product sits at or below its reorder threshold.
func (p Product) LowStock() bool {
	return p.Quantity <= p.LowStockThreshold
}

// ErrNotFound indicates the product does not exist in the catalog.
var ErrNotFound = errors.New("catalog: product not found")

// ErrDuplicateID indicates an insert with an ID already in use.
var ErrDuplicateID = errors.New("catalog: product id already exists")
