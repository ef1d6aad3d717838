package catalog

import (
	"sort"
	"sync"
)

// Catalog is the in-memory product store. Reads take the shared lock; every
// mutation takes the exclusive lock, so a bulk Apply is observed either in
// full or not at all.
type Catalog struct {
	mu       sync.RWMutex
	products map[string]Product
}

// New builds an empty catalog.
func New() *Catalog {
	return &Catalog{products: make(map[string]Product)}
}

// Get returns the product for id.
func (c *Catalog) Get(id string) (Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.products[id]
	return p, ok
}

// All returns a snapshot of every product ordered by ID.
func (c *Catalog) All() []Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Product, 0, len(c.products))
	for _, p := range c.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len reports the number of products.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.products)
}

// Put inserts or overwrites a product record.
func (c *Catalog) Put(p Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products[p.ID] = p
}

// Delete removes a product. Missing IDs are ignored.
func (c *Catalog) Delete(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.products, id)
}

// AdjustQuantity shifts a product's on-hand quantity by delta. Unknown IDs are
// a no-op so that documents referencing deleted products degrade gracefully.
func (c *Catalog) AdjustQuantity(id string, delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.adjustLocked(id, delta)
}

// Apply shifts quantities for every entry of deltas under a single exclusive
// lock. Concurrent readers never observe a partially applied batch.
func (c *Catalog) Apply(deltas map[string]int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, delta := range deltas {
		c.adjustLocked(id, delta)
	}
}

func (c *Catalog) adjustLocked(id string, delta int) {
	p, ok := c.products[id]
	if !ok {
		return
	}
	p.Quantity += delta
	c.products[id] = p
}

// ReplaceAll swaps the full product set, e.g. when loading a snapshot.
func (c *Catalog) ReplaceAll(products []Product) {
	next := make(map[string]Product, len(products))
	for _, p := range products {
		next[p.ID] = p
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = next
}
