// Package store persists each entity collection as a JSON document under a
// fixed key in the key-value store. The application state lives in memory; the
// store is only consulted at startup and rewritten after mutations.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/stockbook/stockbook/internal/catalog"
	"github.com/stockbook/stockbook/internal/documents"
	"github.com/stockbook/stockbook/internal/ledger"
	"github.com/stockbook/stockbook/internal/party"
	"github.com/stockbook/stockbook/internal/settings"
	"github.com/stockbook/stockbook/internal/users"
)

// Collection keys. These names are the storage contract with the key-value
// store and must stay stable.
const (
	KeyProducts  = "products"
	KeyInvoices  = "invoices"
	KeyPurchases = "purchases"
	KeyCustomers = "customers"
	KeySuppliers = "suppliers"
	KeyUsers     = "users"
	KeySettings  = "settings"
)

// ErrMissing indicates the key has never been written.
var ErrMissing = errors.New("store: key missing")

// Store reads and writes the persisted collections.
type Store struct {
	rdb redis.Cmdable
}

// New builds a store over a Redis-compatible client.
func New(rdb redis.Cmdable) *Store {
	return &Store{rdb: rdb}
}

func (s *Store) set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("store: marshal %s: %w", key, err)
	}
	if err := s.rdb.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (s *Store) get(ctx context.Context, key string, target any) error {
	data, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMissing
	}
	if err != nil {
		return fmt.Errorf("store: read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("store: decode %s: %w", key, err)
	}
	return nil
}

// SaveProducts writes the product collection.
func (s *Store) SaveProducts(ctx context.Context, products []catalog.Product) error {
	return s.set(ctx, KeyProducts, products)
}

// LoadProducts reads the product collection.
func (s *Store) LoadProducts(ctx context.Context) ([]catalog.Product, error) {
	var out []catalog.Product
	if err := s.get(ctx, KeyProducts, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func documentsKey(kind ledger.Kind) string {
	if kind == ledger.KindPurchase {
		return KeyPurchases
	}
	return KeyInvoices
}

// SaveDocuments writes the collection for one document kind.
func (s *Store) SaveDocuments(ctx context.Context, kind ledger.Kind, docs []documents.Document) error {
	return s.set(ctx, documentsKey(kind), docs)
}

// LoadDocuments reads the collection for one document kind.
func (s *Store) LoadDocuments(ctx context.Context, kind ledger.Kind) ([]documents.Document, error) {
	var out []documents.Document
	if err := s.get(ctx, documentsKey(kind), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SaveCustomers writes the customer collection.
func (s *Store) SaveCustomers(ctx context.Context, customers []party.Customer) error {
	return s.set(ctx, KeyCustomers, customers)
}

// LoadCustomers reads the customer collection.
func (s *Store) LoadCustomers(ctx context.Context) ([]party.Customer, error) {
	var out []party.Customer
	if err := s.get(ctx, KeyCustomers, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SaveSuppliers writes the supplier collection.
func (s *Store) SaveSuppliers(ctx context.Context, suppliers []party.Supplier) error {
	return s.set(ctx, KeySuppliers, suppliers)
}

// LoadSuppliers reads the supplier collection.
func (s *Store) LoadSuppliers(ctx context.Context) ([]party.Supplier, error) {
	var out []party.Supplier
	if err := s.get(ctx, KeySuppliers, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SaveUsers writes the user collection, hashes included.
func (s *Store) SaveUsers(ctx context.Context, accounts []users.User) error {
	return s.set(ctx, KeyUsers, accounts)
}

// LoadUsers reads the user collection.
func (s *Store) LoadUsers(ctx context.Context) ([]users.User, error) {
	var out []users.User
	if err := s.get(ctx, KeyUsers, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SaveSettings writes the settings object.
func (s *Store) SaveSettings(ctx context.Context, app settings.AppSettings) error {
	return s.set(ctx, KeySettings, app)
}

// LoadSettings reads the settings object.
func (s *Store) LoadSettings(ctx context.Context) (settings.AppSettings, error) {
	var out settings.AppSettings
	if err := s.get(ctx, KeySettings, &out); err != nil {
		return settings.AppSettings{}, err
	}
	return out, nil
}

// State is the full persisted application state.
type State struct {
	Products  []catalog.Product
	Invoices  []documents.Document
	Purchases []documents.Document
	Customers []party.Customer
	Suppliers []party.Supplier
	Users     []users.User
	Settings  settings.AppSettings
}

// SaveAll writes every collection, fanning the writes out concurrently.
func (s *Store) SaveAll(ctx context.Context, state State) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.SaveProducts(ctx, state.Products) })
	g.Go(func() error { return s.SaveDocuments(ctx, ledger.KindSale, state.Invoices) })
	g.Go(func() error { return s.SaveDocuments(ctx, ledger.KindPurchase, state.Purchases) })
	g.Go(func() error { return s.SaveCustomers(ctx, state.Customers) })
	g.Go(func() error { return s.SaveSuppliers(ctx, state.Suppliers) })
	g.Go(func() error { return s.SaveUsers(ctx, state.Users) })
	g.Go(func() error { return s.SaveSettings(ctx, state.Settings) })
	return g.Wait()
}

// LoadAll reads every collection. With seedOnEmpty set, keys never written
// get the sample dataset and the full state is written back so a fresh store
// becomes populated after the first boot; otherwise missing collections load
// empty. Settings always fall back to the defaults so the VAT rate is never
// unset.
func (s *Store) LoadAll(ctx context.Context, seedOnEmpty bool) (State, error) {
	var state State
	seeded := false

	if products, err := s.LoadProducts(ctx); err == nil {
		state.Products = products
	} else if errors.Is(err, ErrMissing) {
		if seedOnEmpty {
			state.Products = SeedProducts()
			seeded = true
		}
	} else {
		return State{}, err
	}

	if docs, err := s.LoadDocuments(ctx, ledger.KindSale); err == nil {
		state.Invoices = docs
	} else if errors.Is(err, ErrMissing) {
		if seedOnEmpty {
			state.Invoices = SeedInvoices()
			seeded = true
		}
	} else {
		return State{}, err
	}

	if docs, err := s.LoadDocuments(ctx, ledger.KindPurchase); err == nil {
		state.Purchases = docs
	} else if errors.Is(err, ErrMissing) {
		if seedOnEmpty {
			state.Purchases = SeedPurchases()
			seeded = true
		}
	} else {
		return State{}, err
	}

	if customers, err := s.LoadCustomers(ctx); err == nil {
		state.Customers = customers
	} else if errors.Is(err, ErrMissing) {
		if seedOnEmpty {
			state.Customers = SeedCustomers()
			seeded = true
		}
	} else {
		return State{}, err
	}

	if suppliers, err := s.LoadSuppliers(ctx); err == nil {
		state.Suppliers = suppliers
	} else if errors.Is(err, ErrMissing) {
		if seedOnEmpty {
			state.Suppliers = SeedSuppliers()
			seeded = true
		}
	} else {
		return State{}, err
	}

	if accounts, err := s.LoadUsers(ctx); err == nil {
		state.Users = accounts
	} else if errors.Is(err, ErrMissing) {
		if seedOnEmpty {
			var err error
			state.Users, err = SeedUsers()
			if err != nil {
				return State{}, err
			}
			seeded = true
		}
	} else {
		return State{}, err
	}

	if app, err := s.LoadSettings(ctx); err == nil {
		state.Settings = app
	} else if errors.Is(err, ErrMissing) {
		state.Settings = SeedSettings()
		seeded = seeded || seedOnEmpty
	} else {
		return State{}, err
	}

	if seeded {
		if err := s.SaveAll(ctx, state); err != nil {
			return State{}, err
		}
	}
	return state, nil
}
