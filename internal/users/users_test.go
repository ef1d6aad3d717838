package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateAndAuthenticate(t *testing.T) {
	svc := NewService(nil, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, "admin", RoleAdmin, "adminpassword")
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Empty(t, created.PasswordHash, "create returns the public view")

	user, err := svc.Authenticate(ctx, "admin", "adminpassword")
	require.NoError(t, err)
	require.Equal(t, created.ID, user.ID)
	require.Equal(t, RoleAdmin, user.Role)

	_, err = svc.Authenticate(ctx, "admin", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "ghost", "adminpassword")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	svc := NewService(nil, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, "", RoleAdmin, "secret")
	require.Error(t, err)

	_, err = svc.Create(ctx, "x", Role("Janitor"), "secret")
	require.Error(t, err)

	_, err = svc.Create(ctx, "x", RoleCashier, "")
	require.Error(t, err)
}

func TestUpdateKeepsPasswordWhenBlank(t *testing.T) {
	svc := NewService(nil, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, "cashier", RoleCashier, "cashierpassword")
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, "head cashier", RoleCashier, "")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "head cashier", "cashierpassword")
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, "head cashier", RoleCashier, "newpassword")
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, "head cashier", "cashierpassword")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Authenticate(ctx, "head cashier", "newpassword")
	require.NoError(t, err)
}

func TestListHidesPasswordHashes(t *testing.T) {
	svc := NewService(nil, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, "store", RoleStorekeeper, "storepassword")
	require.NoError(t, err)

	for _, u := range svc.List(ctx) {
		require.Empty(t, u.PasswordHash)
	}
}

func TestDelete(t *testing.T) {
	svc := NewService(nil, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, "temp", RoleCashier, "secret")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, created.ID))
	require.ErrorIs(t, svc.Delete(ctx, created.ID), ErrNotFound)
}

func TestRoleValid(t *testing.T) {
	require.True(t, RoleAdmin.Valid())
	require.True(t, RoleCashier.Valid())
	require.True(t, RoleStorekeeper.Valid())
	require.False(t, Role("Janitor").Valid())
}
