package store

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/stockbook/stockbook/internal/catalog"
	"github.com/stockbook/stockbook/internal/documents"
	"github.com/stockbook/stockbook/internal/ledger"
	"github.com/stockbook/stockbook/internal/party"
	"github.com/stockbook/stockbook/internal/settings"
	"github.com/stockbook/stockbook/internal/users"
)

// Seed data for a fresh installation: a small building-materials catalog with
// one committed sale and one committed purchase whose stock effects are
// already reflected in the product quantities.

// SeedProducts returns the initial catalog.
func SeedProducts() []catalog.Product {
	return []catalog.Product{
		{ID: "prod1", Name: "Portland Cement", SKU: "CEM-001", Barcode: "622000000001", Category: "Cement", PurchasePrice: 1500, SalePrice: 1650, Quantity: 500, LowStockThreshold: 50},
		{ID: "prod2", Name: "Rebar Steel 16mm", SKU: "STL-016", Barcode: "622000000002", Category: "Steel", PurchasePrice: 25000, SalePrice: 27000, Quantity: 80, LowStockThreshold: 10},
		{ID: "prod3", Name: "Building Sand (m3)", SKU: "SND-001", Barcode: "622000000003", Category: "Aggregates", PurchasePrice: 80, SalePrice: 100, Quantity: 200, LowStockThreshold: 20},
		{ID: "prod4", Name: "Red Brick (1000 pcs)", SKU: "BRK-001", Barcode: "622000000004", Category: "Bricks", PurchasePrice: 1200, SalePrice: 1350, Quantity: 20, LowStockThreshold: 5},
	}
}

// SeedCustomers returns the initial customer directory.
func SeedCustomers() []party.Customer {
	return []party.Customer{
		{ID: "cust1", Name: "Al Nasr Contracting Co.", Phone: "01001234567", Address: "123 Ramses St, Cairo"},
		{ID: "cust2", Name: "Eng. Ahmed Mahmoud", Phone: "01227654321", Address: "45 Tahrir St, Giza"},
	}
}

// SeedSuppliers returns the initial supplier directory.
func SeedSuppliers() []party.Supplier {
	return []party.Supplier{
		{ID: "supp1", Name: "Ezz Steel Mill", Phone: "0225748811", Address: "Industrial Zone, Sadat City"},
		{ID: "supp2", Name: "United Building Materials", Phone: "034256789", Address: "Cairo-Alexandria Desert Rd"},
	}
}

// SeedUsers returns the initial accounts with freshly hashed passwords.
func SeedUsers() ([]users.User, error) {
	seed := []struct {
		id, name, password string
		role               users.Role
	}{
		{"user1", "Mohamed Ali", "adminpassword", users.RoleAdmin},
		{"user2", "Fatma El-Sayed", "cashierpassword", users.RoleCashier},
		{"user3", "Hassan Ibrahim", "storepassword", users.RoleStorekeeper},
	}
	out := make([]users.User, 0, len(seed))
	for _, u := range seed {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("store: seed user %s: %w", u.id, err)
		}
		out = append(out, users.User{ID: u.id, Name: u.name, Role: u.role, PasswordHash: string(hash)})
	}
	return out, nil
}

// SeedSettings returns the initial company profile with a 14% VAT rate.
func SeedSettings() settings.AppSettings {
	return settings.AppSettings{
		CompanyName: "El Meel Contracting",
		Address:     "123 Main Street, Cairo, Egypt",
		Phone:       "02-12345678",
		VATRate:     0.14,
	}
}

// SeedInvoices returns the initial sale documents.
func SeedInvoices() []documents.Document {
	return []documents.Document{
		{
			ID: "inv1", Number: "SALE-001", PartyID: "cust1", PartyName: "Al Nasr Contracting Co.", Date: "2023-10-15",
			Items:    []documents.LineItem{{ProductID: "prod2", ProductName: "Rebar Steel 16mm", Quantity: 10, UnitPrice: 27000, Total: 270000}},
			Subtotal: 270000, Tax: 37800, Total: 307800, Kind: ledger.KindSale,
		},
	}
}

// SeedPurchases returns the initial purchase documents.
func SeedPurchases() []documents.Document {
	return []documents.Document{
		{
			ID: "pur1", Number: "PO-001", PartyID: "supp1", PartyName: "Ezz Steel Mill", Date: "2023-10-10",
			Items:    []documents.LineItem{{ProductID: "prod2", ProductName: "Rebar Steel 16mm", Quantity: 50, UnitPrice: 25000, Total: 1250000}},
			Subtotal: 1250000, Tax: 175000, Total: 1425000, Kind: ledger.KindPurchase,
		},
	}
}
