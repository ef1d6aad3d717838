package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/stockbook/stockbook/internal/catalog"
	"github.com/stockbook/stockbook/internal/documents"
	"github.com/stockbook/stockbook/internal/ledger"
	"github.com/stockbook/stockbook/internal/settings"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client), mr
}

func TestSaveAndLoadProducts(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	products := []catalog.Product{
		{ID: "prod1", Name: "Portland Cement", Quantity: 500},
		{ID: "prod2", Name: "Rebar Steel 16mm", Quantity: 80},
	}
	require.NoError(t, st.SaveProducts(ctx, products))

	loaded, err := st.LoadProducts(ctx)
	require.NoError(t, err)
	require.Equal(t, products, loaded)
}

func TestLoadMissingKey(t *testing.T) {
	st, _ := newTestStore(t)

	_, err := st.LoadProducts(context.Background())
	require.ErrorIs(t, err, ErrMissing)
}

func TestDocumentsKeyedByKind(t *testing.T) {
	st, mr := newTestStore(t)
	ctx := context.Background()

	invoices := []documents.Document{{ID: "inv1", Number: "SALE-001", Kind: ledger.KindSale}}
	purchases := []documents.Document{{ID: "pur1", Number: "PO-001", Kind: ledger.KindPurchase}}
	require.NoError(t, st.SaveDocuments(ctx, ledger.KindSale, invoices))
	require.NoError(t, st.SaveDocuments(ctx, ledger.KindPurchase, purchases))

	require.True(t, mr.Exists(KeyInvoices))
	require.True(t, mr.Exists(KeyPurchases))

	gotSales, err := st.LoadDocuments(ctx, ledger.KindSale)
	require.NoError(t, err)
	require.Equal(t, "SALE-001", gotSales[0].Number)

	gotPurchases, err := st.LoadDocuments(ctx, ledger.KindPurchase)
	require.NoError(t, err)
	require.Equal(t, "PO-001", gotPurchases[0].Number)
}

func TestLoadAllSeedsFreshStore(t *testing.T) {
	st, mr := newTestStore(t)
	ctx := context.Background()

	state, err := st.LoadAll(ctx, true)
	require.NoError(t, err)

	require.NotEmpty(t, state.Products)
	require.NotEmpty(t, state.Invoices)
	require.NotEmpty(t, state.Purchases)
	require.NotEmpty(t, state.Customers)
	require.NotEmpty(t, state.Suppliers)
	require.NotEmpty(t, state.Users)
	require.InDelta(t, 0.14, state.Settings.VATRate, 1e-9)

	// Seeding writes the dataset back so the next boot loads it.
	for _, key := range []string{KeyProducts, KeyInvoices, KeyPurchases, KeyCustomers, KeySuppliers, KeyUsers, KeySettings} {
		require.True(t, mr.Exists(key), key)
	}
}

func TestLoadAllWithoutSeeding(t *testing.T) {
	st, mr := newTestStore(t)

	state, err := st.LoadAll(context.Background(), false)
	require.NoError(t, err)

	require.Empty(t, state.Products)
	require.Empty(t, state.Invoices)
	require.Empty(t, state.Users)
	// Settings still default so the tax rate is defined.
	require.InDelta(t, 0.14, state.Settings.VATRate, 1e-9)
	require.False(t, mr.Exists(KeyProducts))
}

func TestLoadAllPrefersExistingData(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	mine := []catalog.Product{{ID: "custom", Name: "Custom Product", Quantity: 7}}
	require.NoError(t, st.SaveProducts(ctx, mine))
	require.NoError(t, st.SaveSettings(ctx, settings.AppSettings{CompanyName: "Mine", VATRate: 0.2}))

	state, err := st.LoadAll(ctx, true)
	require.NoError(t, err)
	require.Equal(t, mine, state.Products)
	require.Equal(t, "Mine", state.Settings.CompanyName)
	require.InDelta(t, 0.2, state.Settings.VATRate, 1e-9)
	// Untouched collections still seed.
	require.NotEmpty(t, state.Customers)
}

func TestSaveAllRoundTrip(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	users, err := SeedUsers()
	require.NoError(t, err)
	state := State{
		Products:  SeedProducts(),
		Invoices:  SeedInvoices(),
		Purchases: SeedPurchases(),
		Customers: SeedCustomers(),
		Suppliers: SeedSuppliers(),
		Users:     users,
		Settings:  SeedSettings(),
	}
	require.NoError(t, st.SaveAll(ctx, state))

	loaded, err := st.LoadAll(ctx, false)
	require.NoError(t, err)
	require.Equal(t, state, loaded)
}

func TestSeedScenarioQuantities(t *testing.T) {
	products := SeedProducts()
	byID := make(map[string]catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	// The seed invoice already sold 10 of prod2 and the seed purchase
	// received 50, so 80 is the post-document balance.
	require.Equal(t, 80, byID["prod2"].Quantity)

	invoices := SeedInvoices()
	require.Equal(t, "SALE-001", invoices[0].Number)
	require.Equal(t, 270000.0, invoices[0].Subtotal)
	require.InDelta(t, 37800.0, invoices[0].Tax, 1e-9)
	require.InDelta(t, 307800.0, invoices[0].Total, 1e-9)
}
