// Package ledger keeps product on-hand quantities consistent with the set of
// sale and purchase documents that reference them.
package ledger

import (
	"fmt"
	"sync"

	"github.com/stockbook/stockbook/internal/catalog"
)

// Kind identifies the stock direction of a document.
type Kind string

const (
	// KindSale decreases stock.
	KindSale Kind = "sale"
	// KindPurchase increases stock.
	KindPurchase Kind = "purchase"
)

// Sign returns the per-unit stock effect of committing a document of this kind.
func (k Kind) Sign() int {
	if k == KindSale {
		return -1
	}
	return 1
}

// Line is the slice of a document line the reconciler cares about.
type Line struct {
	ProductID string
	Quantity  int
}

// InsufficientStockError reports a sale that would drive a product negative.
// It is raised before any catalog mutation.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("ledger: not enough stock for %s: %d available, %d requested", e.ProductName, e.Available, e.Requested)
}

// CatalogPort is the slice of the catalog the reconciler needs: point reads
// for validation and a batched all-or-nothing quantity commit.
type CatalogPort interface {
	Get(id string) (catalog.Product, bool)
	Apply(deltas map[string]int)
}

// Reconciler computes and applies net stock deltas. A single instance must own
// all writes against one catalog: the internal mutex serializes reconcile
// calls so two overlapping edits cannot both validate against a stale
// snapshot and jointly oversell.
type Reconciler struct {
	mu      sync.Mutex
	catalog CatalogPort
}

// New builds a reconciler over the given catalog.
func New(catalog CatalogPort) *Reconciler {
	return &Reconciler{catalog: catalog}
}

// Reconcile moves the catalog from reflecting the old version of a document to
// reflecting the new one. oldItems is empty for a brand-new document; newItems
// is empty for a deletion. For sale documents every affected product is
// validated against the post-undo quantity before anything is applied; failure
// leaves the catalog untouched. Purchase documents are never validated, so
// deleting a purchase may drive a quantity negative.
//
// Lines referencing products no longer in the catalog contribute zero stock
// effect.
func (r *Reconciler) Reconcile(kind Kind, oldItems, newItems []Line) error {
	sign := kind.Sign()

	// Net delta per product: undo the old document's effect, apply the new one.
	deltas := make(map[string]int)
	requested := make(map[string]int)
	order := make([]string, 0, len(oldItems)+len(newItems))
	add := func(id string, qty int) {
		if _, seen := deltas[id]; !seen {
			order = append(order, id)
		}
		deltas[id] += qty
	}
	for _, it := range oldItems {
		add(it.ProductID, -sign*it.Quantity)
	}
	for _, it := range newItems {
		add(it.ProductID, sign*it.Quantity)
		requested[it.ProductID] += it.Quantity
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if kind == KindSale {
		for _, id := range order {
			p, ok := r.catalog.Get(id)
			if !ok {
				continue
			}
			if p.Quantity+deltas[id] < 0 {
				restored := 0
				for _, it := range oldItems {
					if it.ProductID == id {
						restored += it.Quantity
					}
				}
				return &InsufficientStockError{
					ProductID:   id,
					ProductName: p.Name,
					Available:   p.Quantity + restored,
					Requested:   requested[id],
				}
			}
		}
	}

	r.catalog.Apply(deltas)
	return nil
}
