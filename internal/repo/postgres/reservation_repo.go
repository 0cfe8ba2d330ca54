package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/afroforma/roommaster/internal/domain"
)

type ReservationRepository interface {
	List(ctx context.Context, tenantID string, limit, offset int) ([]domain.Reservation, error)
	FindByID(ctx context.Context, tenantID, id string) (*domain.Reservation, error)
	Create(ctx context.Context, tenantID string, req *domain.CreateReservationRequest) (*domain.Reservation, error)
	UpdateStatus(ctx context.Context, tenantID, id string, status domain.ReservationStatus) (*domain.Reservation, error)
	CountByTenant(ctx context.Context, tenantID string) (int64, error)
}

type reservationRepository struct {
	pool *pgxpool.Pool
}

func NewReservationRepository(pool *pgxpool.Pool) ReservationRepository {
	return &reservationRepository{pool: pool}
}

const reservationCols = `r.id, r.tenant_id, r.room_id, r.guest_name, r.check_in, r.check_out,
r.status, r.amount, r.deposit, r.source, r.created_at, r.updated_at`

// room columns are selected nullable since room_id may be absent
const reservationJoin = reservationCols + `,
rm.id, rm.number, rm.type, rm.floor, rm.status, rm.created_at, rm.updated_at`

func scanReservation(row pgx.Row) (*domain.Reservation, error) {
	var res domain.Reservation
	var roomID, roomNumber, roomType, roomFloor *string
	var roomStatus *domain.RoomStatus
	var roomCreated, roomUpdated *time.Time

	err := row.Scan(
		&res.ID, &res.TenantID, &res.RoomID, &res.GuestName, &res.CheckIn, &res.CheckOut,
		&res.Status, &res.Amount, &res.Deposit, &res.Source, &res.CreatedAt, &res.UpdatedAt,
		&roomID, &roomNumber, &roomType, &roomFloor, &roomStatus, &roomCreated, &roomUpdated,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if roomID != nil {
		res.Room = &domain.Room{
			ID:        *roomID,
			TenantID:  res.TenantID,
			Number:    *roomNumber,
			Type:      *roomType,
			Floor:     *roomFloor,
			Status:    *roomStatus,
			CreatedAt: *roomCreated,
			UpdatedAt: *roomUpdated,
		}
	}
	return &res, nil
}

func (r *reservationRepository) List(ctx context.Context, tenantID string, limit, offset int) ([]domain.Reservation, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	const q = `
		SELECT ` + reservationJoin + `
		FROM reservations r
		LEFT JOIN rooms rm ON rm.id = r.room_id
		WHERE r.tenant_id = $1
		ORDER BY r.check_in DESC
		LIMIT $2 OFFSET $3`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, *res)
	}
	return reservations, rows.Err()
}

func (r *reservationRepository) FindByID(ctx context.Context, tenantID, id string) (*domain.Reservation, error) {
	const q = `
		SELECT ` + reservationJoin + `
		FROM reservations r
		LEFT JOIN rooms rm ON rm.id = r.room_id
		WHERE r.tenant_id = $1 AND r.id = $2`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanReservation(r.pool.QueryRow(ctx, q, tenantID, id))
}

func (r *reservationRepository) Create(ctx context.Context, tenantID string, req *domain.CreateReservationRequest) (*domain.Reservation, error) {
	const q = `
		WITH inserted AS (
			INSERT INTO reservations (tenant_id, room_id, guest_name, check_in, check_out, status, amount, deposit, source)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING *
		)
		SELECT ` + reservationJoin + `
		FROM inserted r
		LEFT JOIN rooms rm ON rm.id = r.room_id`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanReservation(r.pool.QueryRow(ctx, q,
		tenantID, req.RoomID, req.GuestName, req.CheckIn, req.CheckOut,
		req.Status, req.Amount, req.Deposit, req.Source,
	))
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, tenantID, id string, status domain.ReservationStatus) (*domain.Reservation, error) {
	const q = `
		WITH updated AS (
			UPDATE reservations SET status = $3, updated_at = now()
			WHERE tenant_id = $1 AND id = $2
			RETURNING *
		)
		SELECT ` + reservationJoin + `
		FROM updated r
		LEFT JOIN rooms rm ON rm.id = r.room_id`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanReservation(r.pool.QueryRow(ctx, q, tenantID, id, status))
}

func (r *reservationRepository) CountByTenant(ctx context.Context, tenantID string) (int64, error) {
	const q = `SELECT count(*) FROM reservations WHERE tenant_id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var count int64
	err := r.pool.QueryRow(ctx, q, tenantID).Scan(&count)
	return count, err
}
