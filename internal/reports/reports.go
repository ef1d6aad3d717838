// Package reports derives read-only business views from the live state. It
// never mutates the catalog or the document repositories.
package reports

import (
	"context"
	"sort"

	"github.com/stockbook/stockbook/internal/catalog"
	"github.com/stockbook/stockbook/internal/documents"
)

// Summary is the dashboard headline view.
type Summary struct {
	TotalSales     float64 `json:"totalSales"`
	TotalPurchases float64 `json:"totalPurchases"`
	InvoiceCount   int     `json:"invoiceCount"`
	PurchaseCount  int     `json:"purchaseCount"`
	ProductCount   int     `json:"productCount"`
	LowStockCount  int     `json:"lowStockCount"`
	StockValue     float64 `json:"stockValue"`
}

// ProductSales aggregates quantity sold and revenue per product.
type ProductSales struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Revenue     float64 `json:"revenue"`
}

// Service computes reports over the catalog and the two document collections.
type Service struct {
	catalog   *catalog.Catalog
	invoices  *documents.Repository
	purchases *documents.Repository
}

// NewService wires the report sources.
func NewService(cat *catalog.Catalog, invoices, purchases *documents.Repository) *Service {
	return &Service{catalog: cat, invoices: invoices, purchases: purchases}
}

// Summary computes the dashboard totals. Stock is valued at purchase price.
func (s *Service) Summary(ctx context.Context) Summary {
	out := Summary{
		InvoiceCount:  s.invoices.Len(),
		PurchaseCount: s.purchases.Len(),
	}
	for _, doc := range s.invoices.List() {
		out.TotalSales += doc.Total
	}
	for _, doc := range s.purchases.List() {
		out.TotalPurchases += doc.Total
	}
	for _, p := range s.catalog.All() {
		out.ProductCount++
		if p.LowStock() {
			out.LowStockCount++
		}
		out.StockValue += float64(p.Quantity) * p.PurchasePrice
	}
	return out
}

// LowStock lists products at or below their threshold, lowest headroom first.
func (s *Service) LowStock(ctx context.Context) []catalog.Product {
	out := make([]catalog.Product, 0)
	for _, p := range s.catalog.All() {
		if p.LowStock() {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Quantity-out[i].LowStockThreshold < out[j].Quantity-out[j].LowStockThreshold
	})
	return out
}

// TopProducts ranks products by quantity sold across all sale documents.
func (s *Service) TopProducts(ctx context.Context, limit int) []ProductSales {
	byProduct := make(map[string]*ProductSales)
	for _, doc := range s.invoices.List() {
		for _, it := range doc.Items {
			agg, ok := byProduct[it.ProductID]
			if !ok {
				agg = &ProductSales{ProductID: it.ProductID, ProductName: it.ProductName}
				byProduct[it.ProductID] = agg
			}
			agg.Quantity += it.Quantity
			agg.Revenue += it.Total
		}
	}
	out := make([]ProductSales, 0, len(byProduct))
	for _, agg := range byProduct {
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		return out[i].ProductID < out[j].ProductID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
