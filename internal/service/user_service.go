package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/shop-auth-service/internal/domain"
	"github.com/spec-kit/shop-auth-service/internal/repository"
	apperrors "github.com/spec-kit/shop-auth-service/pkg/util"
)

// UserService handles account listing and role/active updates.
type UserService struct {
	users repository.UserRepository
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// ListActive returns all active accounts. Deactivated accounts are the soft
// deletes and stay out of the listing.
func (s *UserService) ListActive(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.ListActive(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	return users, nil
}

// Update changes a user's role, active flag, or both. Setting active=false
// is the soft delete; accounts are never hard-deleted here.
func (s *UserService) Update(ctx context.Context, id string, role *domain.Role, active *bool) (*domain.User, error) {
	if role == nil && active == nil {
		return nil, apperrors.NewValidationError("nothing to update", nil)
	}
	if role != nil && !role.Valid() {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": string(*role)})
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}

	if role != nil {
		user.Role = *role
	}
	if active != nil {
		user.Active = *active
	}

	if err := s.users.Update(ctx, user); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	return user, nil
}
