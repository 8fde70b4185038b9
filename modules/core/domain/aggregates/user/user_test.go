package user_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/ledgerflow/practice-sdk/modules/core/domain/aggregates/user"
)

func TestNew_AppliesOptions(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	tenantID := uuid.New()
	u := user.New("ana@firm.test", "Ana", user.RoleAdmin,
		user.WithID(id),
		user.WithTenantID(tenantID),
		user.WithActive(false),
	)
	require.Equal(t, id, u.ID())
	require.Equal(t, tenantID, u.TenantID())
	require.Equal(t, user.RoleAdmin, u.Role())
	require.False(t, u.Active())
}

func TestSetters_DoNotMutateReceiver(t *testing.T) {
	t.Parallel()

	u := user.New("ana@firm.test", "Ana", user.RoleStaff)
	renamed := u.SetName("Ana B")
	require.Equal(t, "Ana", u.Name())
	require.Equal(t, "Ana B", renamed.Name())

	promoted := u.SetRole(user.RoleManager)
	require.Equal(t, user.RoleStaff, u.Role())
	require.Equal(t, user.RoleManager, promoted.Role())
}

func TestEvents_CarryOriginatingData(t *testing.T) {
	t.Parallel()

	u := user.New("ana@firm.test", "Ana", user.RoleStaff)
	ctx := context.Background()

	require.Equal(t, u, user.NewCreatedEvent(ctx, u).Data)
	require.Equal(t, u, user.NewUpdatedEvent(ctx, u).Data)
	require.Equal(t, u, user.NewDeletedEvent(ctx, u).Data)
}

func TestRole_IsValid(t *testing.T) {
	t.Parallel()

	require.True(t, user.RoleAdmin.IsValid())
	require.True(t, user.RoleStaff.IsValid())
	require.False(t, user.Role("owner").IsValid())
}
