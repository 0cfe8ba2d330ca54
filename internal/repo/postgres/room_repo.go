package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/afroforma/roommaster/internal/domain"
)

type RoomRepository interface {
	List(ctx context.Context, tenantID string) ([]domain.Room, error)
	FindByID(ctx context.Context, tenantID, id string) (*domain.Room, error)
	Create(ctx context.Context, tenantID string, req *domain.CreateRoomRequest) (*domain.Room, error)
	UpdateStatus(ctx context.Context, tenantID, id string, status domain.RoomStatus) (*domain.Room, error)
	Upsert(ctx context.Context, tenantID string, req *domain.CreateRoomRequest) (*domain.Room, error)
}

type roomRepository struct {
	pool *pgxpool.Pool
}

func NewRoomRepository(pool *pgxpool.Pool) RoomRepository {
	return &roomRepository{pool: pool}
}

const roomCols = `id, tenant_id, number, type, floor, status, created_at, updated_at`

func scanRoom(row pgx.Row) (*domain.Room, error) {
	var room domain.Room
	err := row.Scan(&room.ID, &room.TenantID, &room.Number, &room.Type, &room.Floor, &room.Status, &room.CreatedAt, &room.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) List(ctx context.Context, tenantID string) ([]domain.Room, error) {
	const q = `SELECT ` + roomCols + ` FROM rooms WHERE tenant_id = $1 ORDER BY number ASC`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []domain.Room
	for rows.Next() {
		var room domain.Room
		if err := rows.Scan(&room.ID, &room.TenantID, &room.Number, &room.Type, &room.Floor, &room.Status, &room.CreatedAt, &room.UpdatedAt); err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

func (r *roomRepository) FindByID(ctx context.Context, tenantID, id string) (*domain.Room, error) {
	const q = `SELECT ` + roomCols + ` FROM rooms WHERE tenant_id = $1 AND id = $2`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanRoom(r.pool.QueryRow(ctx, q, tenantID, id))
}

func (r *roomRepository) Create(ctx context.Context, tenantID string, req *domain.CreateRoomRequest) (*domain.Room, error) {
	const q = `
		INSERT INTO rooms (tenant_id, number, type, floor, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + roomCols
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanRoom(r.pool.QueryRow(ctx, q, tenantID, req.Number, req.Type, req.Floor, req.Status))
}

func (r *roomRepository) UpdateStatus(ctx context.Context, tenantID, id string, status domain.RoomStatus) (*domain.Room, error) {
	const q = `
		UPDATE rooms SET status = $3, updated_at = now()
		WHERE tenant_id = $1 AND id = $2
		RETURNING ` + roomCols
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanRoom(r.pool.QueryRow(ctx, q, tenantID, id, status))
}

// Upsert is only used by provisioning/seed.
func (r *roomRepository) Upsert(ctx context.Context, tenantID string, req *domain.CreateRoomRequest) (*domain.Room, error) {
	const q = `
		INSERT INTO rooms (tenant_id, number, type, floor, status)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (tenant_id, number) DO UPDATE SET
			type       = EXCLUDED.type,
			floor      = EXCLUDED.floor,
			status     = EXCLUDED.status,
			updated_at = now()
		RETURNING ` + roomCols
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanRoom(r.pool.QueryRow(ctx, q, tenantID, req.Number, req.Type, req.Floor, req.Status))
}
