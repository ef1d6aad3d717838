package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUpdateAndGet(t *testing.T) {
	svc := NewService(AppSettings{CompanyName: "El Meel Contracting", VATRate: 0.14}, nil)
	ctx := context.Background()

	require.InDelta(t, 0.14, svc.VATRate(), 1e-9)

	updated, err := svc.Update(ctx, AppSettings{CompanyName: "New Name", VATRate: 0.1})
	require.NoError(t, err)
	require.Equal(t, "New Name", updated.CompanyName)
	require.InDelta(t, 0.1, svc.VATRate(), 1e-9)
	require.Equal(t, updated, svc.Get(ctx))
}

func TestUpdateRejectsBadRate(t *testing.T) {
	svc := NewService(AppSettings{VATRate: 0.14}, nil)
	ctx := context.Background()

	_, err := svc.Update(ctx, AppSettings{VATRate: -0.1})
	require.Error(t, err)

	_, err = svc.Update(ctx, AppSettings{VATRate: 1})
	require.Error(t, err)

	// The stored rate survives a rejected update.
	require.InDelta(t, 0.14, svc.VATRate(), 1e-9)
}
