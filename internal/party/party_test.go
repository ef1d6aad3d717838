package party

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type customerRecorder struct{ saves int }

func (r *customerRecorder) SaveCustomers(ctx context.Context, customers []Customer) error {
	r.saves++
	return nil
}

type supplierRecorder struct{ saves int }

func (r *supplierRecorder) SaveSuppliers(ctx context.Context, suppliers []Supplier) error {
	r.saves++
	return nil
}

func TestCustomerLifecycle(t *testing.T) {
	persist := &customerRecorder{}
	svc := NewCustomerService(nil, persist)
	ctx := context.Background()

	created, err := svc.Create(ctx, Customer{Name: "Nile Traders", Phone: "0100000000"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, 1, persist.saves)

	updated, err := svc.Update(ctx, created.ID, Customer{Name: "Nile Traders Co", Address: "Cairo"})
	require.NoError(t, err)
	require.Equal(t, created.ID, updated.ID)
	require.Equal(t, "Cairo", updated.Address)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Nile Traders Co", got.Name)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCustomerCreateRequiresName(t *testing.T) {
	svc := NewCustomerService(nil, nil)
	_, err := svc.Create(context.Background(), Customer{Name: "  "})
	require.Error(t, err)
}

func TestCustomerListSortedByName(t *testing.T) {
	svc := NewCustomerService([]Customer{
		{ID: "c2", Name: "Zamalek Supplies"},
		{ID: "c1", Name: "Alex Hardware"},
	}, nil)

	list := svc.List(context.Background())
	require.Len(t, list, 2)
	require.Equal(t, "Alex Hardware", list[0].Name)
}

func TestSupplierLifecycle(t *testing.T) {
	persist := &supplierRecorder{}
	svc := NewSupplierService(nil, persist)
	ctx := context.Background()

	created, err := svc.Create(ctx, Supplier{Name: "Helwan Steel"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, "missing", Supplier{Name: "x"})
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.Delete(ctx, created.ID))
	require.ErrorIs(t, svc.Delete(ctx, created.ID), ErrNotFound)
	require.Equal(t, 2, persist.saves)
}
