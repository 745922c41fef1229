package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/shop-auth-service/internal/domain"
)

// InviteRepository defines persistence access for invites.
type InviteRepository interface {
	Create(ctx context.Context, invite *domain.Invite) error
	GetByEmail(ctx context.Context, email string) (*domain.Invite, error)
	UpdateStatus(ctx context.Context, id string, status domain.InviteStatus) error
	List(ctx context.Context) ([]domain.Invite, error)
}

type inviteRepository struct {
	pool *pgxpool.Pool
}

// NewInviteRepository returns a Postgres-backed implementation.
func NewInviteRepository(pool *pgxpool.Pool) InviteRepository {
	return &inviteRepository{pool: pool}
}

func (r *inviteRepository) Create(ctx context.Context, invite *domain.Invite) error {
	const query = `
        INSERT INTO invites (email, role, status)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		invite.Email,
		invite.Role,
		invite.Status,
	).Scan(&invite.ID, &invite.CreatedAt)
}

func (r *inviteRepository) GetByEmail(ctx context.Context, email string) (*domain.Invite, error) {
	const query = `
        SELECT id, email, role, status, created_at
        FROM invites WHERE email=$1`

	var invite domain.Invite
	if err := r.pool.QueryRow(ctx, query, email).Scan(
		&invite.ID,
		&invite.Email,
		&invite.Role,
		&invite.Status,
		&invite.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &invite, nil
}

func (r *inviteRepository) UpdateStatus(ctx context.Context, id string, status domain.InviteStatus) error {
	const query = `UPDATE invites SET status=$1 WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *inviteRepository) List(ctx context.Context) ([]domain.Invite, error) {
	const query = `
        SELECT id, email, role, status, created_at
        FROM invites ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invites := make([]domain.Invite, 0)
	for rows.Next() {
		var invite domain.Invite
		if err := rows.Scan(
			&invite.ID,
			&invite.Email,
			&invite.Role,
			&invite.Status,
			&invite.CreatedAt,
		); err != nil {
			return nil, err
		}
		invites = append(invites, invite)
	}
	return invites, rows.Err()
}
