package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/afroforma/roommaster/internal/domain"
)

type TenantRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Tenant, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Tenant, error)
	Upsert(ctx context.Context, slug, name string) (*domain.Tenant, error)
}

type tenantRepository struct {
	pool *pgxpool.Pool
}

func NewTenantRepository(pool *pgxpool.Pool) TenantRepository {
	return &tenantRepository{pool: pool}
}

const tenantCols = `id, slug, name, created_at`

func (r *tenantRepository) FindByID(ctx context.Context, id string) (*domain.Tenant, error) {
	const q = `SELECT ` + tenantCols + ` FROM tenants WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var t domain.Tenant
	err := r.pool.QueryRow(ctx, q, id).Scan(&t.ID, &t.Slug, &t.Name, &t.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return &t, err
}

func (r *tenantRepository) FindBySlug(ctx context.Context, slug string) (*domain.Tenant, error) {
	const q = `SELECT ` + tenantCols + ` FROM tenants WHERE slug = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var t domain.Tenant
	err := r.pool.QueryRow(ctx, q, slug).Scan(&t.ID, &t.Slug, &t.Name, &t.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return &t, err
}

// Upsert is only used by provisioning/seed; tenants are immutable in the API.
func (r *tenantRepository) Upsert(ctx context.Context, slug, name string) (*domain.Tenant, error) {
	const q = `
		INSERT INTO tenants (slug, name) VALUES ($1, $2)
		ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name
		RETURNING ` + tenantCols
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var t domain.Tenant
	err := r.pool.QueryRow(ctx, q, slug, name).Scan(&t.ID, &t.Slug, &t.Name, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
