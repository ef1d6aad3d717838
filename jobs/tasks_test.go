package jobs

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/stockbook/stockbook/internal/catalog"
	"github.com/stockbook/stockbook/internal/documents"
	"github.com/stockbook/stockbook/internal/ledger"
	"github.com/stockbook/stockbook/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return store.New(client)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunLowStockScan(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.SaveProducts(ctx, []catalog.Product{
		{ID: "p1", Name: "Cement", Quantity: 50, LowStockThreshold: 10},
		{ID: "p2", Name: "Rebar", Quantity: 4, LowStockThreshold: 10},
		{ID: "p3", Name: "Sand", Quantity: 10, LowStockThreshold: 10},
	}))

	report, err := RunLowStockScan(ctx, st, discardLogger())
	require.NoError(t, err)
	require.Equal(t, []string{"p2", "p3"}, report.Products)
}

func TestRunLowStockScanMissingKey(t *testing.T) {
	st := newTestStore(t)
	_, err := RunLowStockScan(context.Background(), st, discardLogger())
	require.ErrorIs(t, err, store.ErrMissing)
}

func TestRunDocumentIntegrity(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	good := documents.Document{
		ID: "inv1", Number: "SALE-001",
		Items:    []documents.LineItem{{ProductID: "p1", Quantity: 10, UnitPrice: 27000}},
		Subtotal: 270000, Tax: 37800, Total: 307800,
	}
	drifted := documents.Document{
		ID: "inv2", Number: "SALE-002",
		Items:    []documents.LineItem{{ProductID: "p1", Quantity: 1, UnitPrice: 100}},
		Subtotal: 999, Tax: 0, Total: 999,
	}
	require.NoError(t, st.SaveDocuments(ctx, ledger.KindSale, []documents.Document{good, drifted}))
	require.NoError(t, st.SaveDocuments(ctx, ledger.KindPurchase, nil))

	require.NoError(t, RunDocumentIntegrity(ctx, st, discardLogger()))
}
