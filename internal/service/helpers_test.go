package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/shop-auth-service/internal/domain"
)

// uniqueViolation mimics the Postgres duplicate-key error the real
// repositories surface.
func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}
}

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[string]*domain.User
	nextID int

	createErr error
	updateErr error
	getErr    error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return uniqueViolation()
		}
	}
	r.nextID++
	user.ID = fmt.Sprintf("user-%d", r.nextID)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *user
	clone.UpdatedAt = time.Now()
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) ListActive(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		if user.Active {
			out = append(out, *user)
		}
	}
	return out, nil
}

type fakeInviteRepo struct {
	mu      sync.Mutex
	invites map[string]*domain.Invite
	nextID  int

	createErr error
	updateErr error
	getErr    error
}

func newFakeInviteRepo() *fakeInviteRepo {
	return &fakeInviteRepo{invites: make(map[string]*domain.Invite)}
}

func (r *fakeInviteRepo) Create(_ context.Context, invite *domain.Invite) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.invites {
		if existing.Email == invite.Email {
			return uniqueViolation()
		}
	}
	r.nextID++
	invite.ID = fmt.Sprintf("invite-%d", r.nextID)
	invite.CreatedAt = time.Now()
	clone := *invite
	r.invites[invite.ID] = &clone
	return nil
}

func (r *fakeInviteRepo) GetByEmail(_ context.Context, email string) (*domain.Invite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	for _, invite := range r.invites {
		if invite.Email == email {
			clone := *invite
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeInviteRepo) UpdateStatus(_ context.Context, id string, status domain.InviteStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	invite, ok := r.invites[id]
	if !ok {
		return pgx.ErrNoRows
	}
	invite.Status = status
	return nil
}

func (r *fakeInviteRepo) List(_ context.Context) ([]domain.Invite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Invite, 0, len(r.invites))
	for _, invite := range r.invites {
		out = append(out, *invite)
	}
	return out, nil
}
