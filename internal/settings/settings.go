// Package settings holds the process-wide application settings, including the
// VAT rate consulted when documents are valued.
package settings

import (
	"context"
	"fmt"
	"sync"
)

// AppSettings are the company profile and tax configuration. Changing VATRate
// does not retroactively alter the cached totals of stored documents.
type AppSettings struct {
	CompanyName string  `json:"companyName"`
	Address     string  `json:"address"`
	Phone       string  `json:"phone"`
	VATRate     float64 `json:"vatRate"`
}

// Persister writes the settings object to the key-value store.
type Persister interface {
	SaveSettings(ctx context.Context, s AppSettings) error
}

// Service guards the current settings.
type Service struct {
	mu      sync.RWMutex
	current AppSettings
	persist Persister
}

// NewService seeds the service with the loaded settings.
func NewService(initial AppSettings, persist Persister) *Service {
	return &Service{current: initial, persist: persist}
}

// Get returns the current settings.
func (s *Service) Get(ctx context.Context) AppSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// VATRate returns the tax rate applied to documents at save time.
func (s *Service) VATRate() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.VATRate
}

// Update replaces the settings after validating the tax rate.
func (s *Service) Update(ctx context.Context, next AppSettings) (AppSettings, error) {
	if next.VATRate < 0 || next.VATRate >= 1 {
		return AppSettings{}, fmt.Errorf("vat rate must be a fraction in [0, 1)")
	}
	s.mu.Lock()
	s.current = next
	s.mu.Unlock()
	if s.persist != nil {
		if err := s.persist.SaveSettings(ctx, next); err != nil {
			return AppSettings{}, fmt.Errorf("persist settings: %w", err)
		}
	}
	return next, nil
}
