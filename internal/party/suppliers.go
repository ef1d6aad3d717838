package party

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Supplier is the selling party on a purchase document.
type Supplier struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// SupplierPersister writes the supplier collection to the key-value store.
type SupplierPersister interface {
	SaveSuppliers(ctx context.Context, suppliers []Supplier) error
}

// SupplierService is an in-memory supplier directory with write-through
// persistence.
type SupplierService struct {
	mu      sync.RWMutex
	byID    map[string]Supplier
	persist SupplierPersister
}

// NewSupplierService builds the directory from an initial snapshot.
func NewSupplierService(initial []Supplier, persist SupplierPersister) *SupplierService {
	byID := make(map[string]Supplier, len(initial))
	for _, s := range initial {
		byID[s.ID] = s
	}
	return &SupplierService{byID: byID, persist: persist}
}

// List returns all suppliers ordered by name.
func (s *SupplierService) List(ctx context.Context) []Supplier {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Supplier, 0, len(s.byID))
	for _, sp := range s.byID {
		out = append(out, sp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Get returns one supplier.
func (s *SupplierService) Get(ctx context.Context, id string) (Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sp, ok := s.byID[id]
	if !ok {
		return Supplier{}, ErrNotFound
	}
	return sp, nil
}

// Create registers a supplier.
func (s *SupplierService) Create(ctx context.Context, sp Supplier) (Supplier, error) {
	if strings.TrimSpace(sp.Name) == "" {
		return Supplier{}, fmt.Errorf("supplier name is required")
	}
	if sp.ID == "" {
		sp.ID = uuid.NewString()
	}
	s.mu.Lock()
	s.byID[sp.ID] = sp
	s.mu.Unlock()
	return sp, s.save(ctx)
}

// Update overwrites an existing supplier.
func (s *SupplierService) Update(ctx context.Context, id string, sp Supplier) (Supplier, error) {
	if strings.TrimSpace(sp.Name) == "" {
		return Supplier{}, fmt.Errorf("supplier name is required")
	}
	s.mu.Lock()
	if _, ok := s.byID[id]; !ok {
		s.mu.Unlock()
		return Supplier{}, ErrNotFound
	}
	sp.ID = id
	s.byID[id] = sp
	s.mu.Unlock()
	return sp, s.save(ctx)
}

// Delete removes a supplier.
func (s *SupplierService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	if _, ok := s.byID[id]; !ok {
		s.mu.Unlock()
		return ErrNotFound
	}
	delete(s.byID, id)
	s.mu.Unlock()
	return s.save(ctx)
}

func (s *SupplierService) save(ctx context.Context) error {
	if s.persist == nil {
		return nil
	}
	if err := s.persist.SaveSuppliers(ctx, s.List(ctx)); err != nil {
		return fmt.Errorf("persist suppliers: %w", err)
	}
	return nil
}
