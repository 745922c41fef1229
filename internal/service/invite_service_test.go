package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/shop-auth-service/internal/domain"
	apperrors "github.com/spec-kit/shop-auth-service/pkg/util"
)

func TestInviteCreate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("creates a pending invite", func(t *testing.T) {
		svc := NewInviteService(newFakeInviteRepo())

		invite, err := svc.Create(ctx, "a@x.com", domain.RoleMember)
		require.NoError(t, err)
		require.Equal(t, domain.InviteStatusPending, invite.Status)
		require.NotEmpty(t, invite.ID)
	})

	t.Run("second invite for the same email is rejected", func(t *testing.T) {
		svc := NewInviteService(newFakeInviteRepo())

		_, err := svc.Create(ctx, "a@x.com", domain.RoleMember)
		require.NoError(t, err)

		_, err = svc.Create(ctx, "a@x.com", domain.RoleAdmin)
		require.ErrorIs(t, err, apperrors.ErrInviteExists)
	})

	t.Run("rejected even after the first invite completed", func(t *testing.T) {
		repo := newFakeInviteRepo()
		svc := NewInviteService(repo)

		invite, err := svc.Create(ctx, "a@x.com", domain.RoleMember)
		require.NoError(t, err)
		require.NoError(t, repo.UpdateStatus(ctx, invite.ID, domain.InviteStatusCompleted))

		_, err = svc.Create(ctx, "a@x.com", domain.RoleMember)
		require.ErrorIs(t, err, apperrors.ErrInviteExists)
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		svc := NewInviteService(newFakeInviteRepo())

		_, err := svc.Create(ctx, "a@x.com", "owner")
		require.Error(t, err)
	})
}

func TestInviteAccept(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("no invite", func(t *testing.T) {
		svc := NewInviteService(newFakeInviteRepo())

		_, err := svc.Accept(ctx, "a@x.com")
		require.ErrorIs(t, err, apperrors.ErrNoSuchInvite)
	})

	t.Run("pending invite completes", func(t *testing.T) {
		svc := NewInviteService(newFakeInviteRepo())

		_, err := svc.Create(ctx, "a@x.com", domain.RoleMember)
		require.NoError(t, err)

		invite, err := svc.Accept(ctx, "a@x.com")
		require.NoError(t, err)
		require.Equal(t, domain.InviteStatusCompleted, invite.Status)
	})

	t.Run("completion is terminal", func(t *testing.T) {
		svc := NewInviteService(newFakeInviteRepo())

		_, err := svc.Create(ctx, "a@x.com", domain.RoleMember)
		require.NoError(t, err)

		_, err = svc.Accept(ctx, "a@x.com")
		require.NoError(t, err)

		invite, err := svc.Accept(ctx, "a@x.com")
		require.NoError(t, err)
		require.Equal(t, domain.InviteStatusCompleted, invite.Status)
	})
}

func TestInviteList(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := NewInviteService(newFakeInviteRepo())

	_, err := svc.Create(ctx, "a@x.com", domain.RoleMember)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "b@x.com", domain.RoleAdmin)
	require.NoError(t, err)

	invites, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, invites, 2)
}
