package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/shop-auth-service/internal/domain"
	"github.com/spec-kit/shop-auth-service/internal/repository"
	apperrors "github.com/spec-kit/shop-auth-service/pkg/util"
)

// InviteService is the ledger gating registration. At most one invite exists
// per email; a pending invite completes exactly once and is terminal
// afterwards.
type InviteService struct {
	invites repository.InviteRepository
}

// NewInviteService builds the service.
func NewInviteService(invites repository.InviteRepository) *InviteService {
	return &InviteService{invites: invites}
}

// Create records a new pending invite. Any existing invite for the email,
// pending or completed, rejects the request. The unique index on
// invites.email closes the race between the lookup and the insert.
func (s *InviteService) Create(ctx context.Context, email string, role domain.Role) (*domain.Invite, error) {
	if !role.Valid() {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": string(role)})
	}

	if _, err := s.invites.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.ErrInviteExists
	} else if err != pgx.ErrNoRows {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}

	invite := &domain.Invite{
		Email:  email,
		Role:   role,
		Status: domain.InviteStatusPending,
	}
	if err := s.invites.Create(ctx, invite); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.ErrInviteExists
		}
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	return invite, nil
}

// Accept is the explicit manual completion path, independent of user
// creation. A completed invite is terminal and returned unchanged.
func (s *InviteService) Accept(ctx context.Context, email string) (*domain.Invite, error) {
	invite, err := s.invites.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNoSuchInvite
		}
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}

	if invite.Status == domain.InviteStatusCompleted {
		return invite, nil
	}

	if err := s.invites.UpdateStatus(ctx, invite.ID, domain.InviteStatusCompleted); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNoSuchInvite
		}
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	invite.Status = domain.InviteStatusCompleted
	return invite, nil
}

// List returns all invites.
func (s *InviteService) List(ctx context.Context) ([]domain.Invite, error) {
	invites, err := s.invites.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	return invites, nil
}
