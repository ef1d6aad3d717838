// Package party manages the customer and supplier directories referenced by
// sale and purchase documents.
package party

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Customer is the buying party on a sale document.
type Customer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// ErrNotFound indicates the party does not exist.
var ErrNotFound = errors.New("party: not found")

// CustomerPersister writes the customer collection to the key-value store.
type CustomerPersister interface {
	SaveCustomers(ctx context.Context, customers []Customer) error
}

// CustomerService is an in-memory customer directory with write-through
// persistence.
type CustomerService struct {
	mu      sync.RWMutex
	byID    map[string]Customer
	persist CustomerPersister
}

// NewCustomerService builds the directory from an initial snapshot.
func NewCustomerService(initial []Customer, persist CustomerPersister) *CustomerService {
	byID := make(map[string]Customer, len(initial))
	for _, c := range initial {
		byID[c.ID] = c
	}
	return &CustomerService{byID: byID, persist: persist}
}

// List returns all customers ordered by name.
func (s *CustomerService) List(ctx context.Context) []Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Customer, 0, len(s.byID))
	for _, c := range s.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Get returns one customer.
func (s *CustomerService) Get(ctx context.Context, id string) (Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.byID[id]
	if !ok {
		return Customer{}, ErrNotFound
	}
	return c, nil
}

// Create registers a customer.
func (s *CustomerService) Create(ctx context.Context, c Customer) (Customer, error) {
	if strings.TrimSpace(c.Name) == "" {
		return Customer{}, fmt.Errorf("customer name is required")
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	s.mu.Lock()
	s.byID[c.ID] = c
	s.mu.Unlock()
	return c, s.save(ctx)
}

// Update overwrites an existing customer.
func (s *CustomerService) Update(ctx context.Context, id string, c Customer) (Customer, error) {
	if strings.TrimSpace(c.Name) == "" {
		return Customer{}, fmt.Errorf("customer name is required")
	}
	s.mu.Lock()
	if _, ok := s.byID[id]; !ok {
		s.mu.Unlock()
		return Customer{}, ErrNotFound
	}
	c.ID = id
	s.byID[id] = c
	s.mu.Unlock()
	return c, s.save(ctx)
}

// Delete removes a customer. Documents keep their denormalized party name.
func (s *CustomerService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	if _, ok := s.byID[id]; !ok {
		s.mu.Unlock()
		return ErrNotFound
	}
	delete(s.byID, id)
	s.mu.Unlock()
	return s.save(ctx)
}

func (s *CustomerService) save(ctx context.Context) error {
	if s.persist == nil {
		return nil
	}
	if err := s.persist.SaveCustomers(ctx, s.List(ctx)); err != nil {
		return fmt.Errorf("persist customers: %w", err)
	}
	return nil
}
