package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/shop-auth-service/internal/auth"
	"github.com/spec-kit/shop-auth-service/internal/config"
	"github.com/spec-kit/shop-auth-service/internal/domain"
	"github.com/spec-kit/shop-auth-service/internal/repository"
	apperrors "github.com/spec-kit/shop-auth-service/pkg/util"
)

// AuthService coordinates local login and invite-gated registration.
type AuthService struct {
	users      repository.UserRepository
	invites    repository.InviteRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	loginTTL   time.Duration
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	InviteRepo repository.InviteRepository
	TokenMgr   *auth.TokenManager
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		invites:    deps.InviteRepo,
		tokenMgr:   deps.TokenMgr,
		bcryptCost: cfg.BcryptCost,
		loginTTL:   cfg.LoginTokenTTL,
	}
}

// Login authenticates a user by email and password and issues a short-lived
// session token. Unknown email, wrong password, and accounts without a
// password hash all collapse to the same error so callers cannot enumerate
// accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, apperrors.ErrInvalidCredentials
		}
		return nil, "", time.Time{}, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}

	if user.PasswordHash == nil {
		return nil, "", time.Time{}, apperrors.ErrInvalidCredentials
	}
	if err := auth.ComparePassword(*user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.ErrInvalidCredentials
	}

	token, exp, err := s.tokenMgr.Issue(user.ID, user.Email, user.Role, s.loginTTL)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// Register creates a new account for an email holding a pending invite.
// The user row is created first so the store's email uniqueness decides
// conflicts; the invite transitions to completed only after the user is
// durably created. If that second step fails the user exists but the invite
// is still pending, which is surfaced as a distinct condition for
// operational follow-up instead of being lost.
func (s *AuthService) Register(ctx context.Context, shopID, email string, role domain.Role, password string) (*domain.User, error) {
	if !role.Valid() {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": string(role)})
	}

	// A taken email is a conflict regardless of invite state: once the first
	// registration completed its invite, a repeat attempt must report the
	// duplicate, not the missing invite. The unique index still backs this
	// up for concurrent attempts.
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.ErrConflictingEmail
	} else if err != pgx.ErrNoRows {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}

	invite, err := s.invites.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNoValidInvite
		}
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	if invite.Status != domain.InviteStatusPending {
		return nil, apperrors.ErrNoValidInvite
	}
	// The invite's role is authoritative. A member invite cannot be turned
	// into an admin account by the request body.
	if role != invite.Role {
		return nil, apperrors.NewValidationError("role does not match invite", map[string]any{"invited_role": string(invite.Role)})
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: &hash,
		Role:         invite.Role,
		Active:       true,
	}
	if shopID != "" {
		user.ShopID = &shopID
	}

	if err := s.users.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.ErrConflictingEmail
		}
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}

	if err := s.invites.UpdateStatus(ctx, invite.ID, domain.InviteStatusCompleted); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPartialRegistration, err)
	}

	return user, nil
}
