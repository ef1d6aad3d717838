package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Persister writes the product collection to the backing key-value store.
type Persister interface {
	SaveProducts(ctx context.Context, products []Product) error
}

// Service wraps the catalog with product management operations and keeps the
// persisted collection in sync after each mutation.
type Service struct {
	catalog *Catalog
	persist Persister
}

// NewService constructs a catalog service.
func NewService(catalog *Catalog, persist Persister) *Service {
	return &Service{catalog: catalog, persist: persist}
}

// List returns all products ordered by ID.
func (s *Service) List(ctx context.Context) []Product {
	return s.catalog.All()
}

// Get retrieves one product.
func (s *Service) Get(ctx context.Context, id string) (Product, error) {
	p, ok := s.catalog.Get(id)
	if !ok {
		return Product{}, ErrNotFound
	}
	return p, nil
}

// Create registers a new product. A blank ID gets a generated one.
func (s *Service) Create(ctx context.Context, p Product) (Product, error) {
	if err := validate(p); err != nil {
		return Product{}, err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if _, exists := s.catalog.Get(p.ID); exists {
		return Product{}, ErrDuplicateID
	}
	s.catalog.Put(p)
	return p, s.save(ctx)
}

// Update overwrites an existing product record.
func (s *Service) Update(ctx context.Context, id string, p Product) (Product, error) {
	if _, ok := s.catalog.Get(id); !ok {
		return Product{}, ErrNotFound
	}
	if err := validate(p); err != nil {
		return Product{}, err
	}
	p.ID = id
	s.catalog.Put(p)
	return p, s.save(ctx)
}

// Delete removes a product from the catalog. Documents that still reference it
// simply stop affecting stock.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, ok := s.catalog.Get(id); !ok {
		return ErrNotFound
	}
	s.catalog.Delete(id)
	return s.save(ctx)
}

func (s *Service) save(ctx context.Context) error {
	if s.persist == nil {
		return nil
	}
	if err := s.persist.SaveProducts(ctx, s.catalog.All()); err != nil {
		return fmt.Errorf("persist products: %w", err)
	}
	return nil
}

func validate(p Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("product name is required")
	}
	if p.PurchasePrice < 0 || p.SalePrice < 0 {
		return fmt.Errorf("product prices must be non-negative")
	}
	if p.Quantity < 0 {
		return fmt.Errorf("product quantity must be non-negative")
	}
	if p.LowStockThreshold < 0 {
		return fmt.Errorf("low stock threshold must be non-negative")
	}
	return nil
}
