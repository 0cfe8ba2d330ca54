package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/afroforma/roommaster/internal/domain"
)

// UserRepository is tenant-scoped: every operation takes the tenant id the
// service resolved from the ambient context, and queries filter on it.
type UserRepository interface {
	Create(ctx context.Context, tenantID string, req *domain.CreateUserRequest, passwordHash string) (*domain.User, error)
	FindByEmail(ctx context.Context, tenantID, email string) (*domain.User, error)
	FindByID(ctx context.Context, tenantID, id string) (*domain.User, error)
	List(ctx context.Context, tenantID string, limit, offset int) ([]domain.User, error)
	Deactivate(ctx context.Context, tenantID, id string) (bool, error)
	Upsert(ctx context.Context, tenantID, email, name, passwordHash, role string) (*domain.User, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userCols = `id, tenant_id, email, password_hash, name, role, is_active, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.TenantID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Create(ctx context.Context, tenantID string, req *domain.CreateUserRequest, passwordHash string) (*domain.User, error) {
	const q = `
		INSERT INTO users (tenant_id, email, password_hash, name, role, is_active)
		VALUES ($1, $2, $3, $4, $5, true)
		RETURNING ` + userCols
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanUser(r.pool.QueryRow(ctx, q, tenantID, req.Email, passwordHash, req.Name, req.Role))
}

func (r *userRepository) FindByEmail(ctx context.Context, tenantID, email string) (*domain.User, error) {
	const q = `SELECT ` + userCols + ` FROM users WHERE tenant_id = $1 AND email = lower($2)`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanUser(r.pool.QueryRow(ctx, q, tenantID, email))
}

func (r *userRepository) FindByID(ctx context.Context, tenantID, id string) (*domain.User, error) {
	const q = `SELECT ` + userCols + ` FROM users WHERE tenant_id = $1 AND id = $2`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanUser(r.pool.QueryRow(ctx, q, tenantID, id))
}

func (r *userRepository) List(ctx context.Context, tenantID string, limit, offset int) ([]domain.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	const q = `SELECT ` + userCols + ` FROM users WHERE tenant_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.TenantID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepository) Deactivate(ctx context.Context, tenantID, id string) (bool, error) {
	const q = `UPDATE users SET is_active = false, updated_at = now() WHERE tenant_id = $1 AND id = $2 AND is_active`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	result, err := r.pool.Exec(ctx, q, tenantID, id)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

// Upsert is only used by provisioning/seed.
func (r *userRepository) Upsert(ctx context.Context, tenantID, email, name, passwordHash, role string) (*domain.User, error) {
	const q = `
		INSERT INTO users (tenant_id, email, password_hash, name, role, is_active)
		VALUES ($1, lower($2), $3, $4, $5, true)
		ON CONFLICT (tenant_id, email) DO UPDATE SET
			password_hash = EXCLUDED.password_hash,
			role          = EXCLUDED.role,
			is_active     = true,
			updated_at    = now()
		RETURNING ` + userCols
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanUser(r.pool.QueryRow(ctx, q, tenantID, email, passwordHash, name, role))
}
