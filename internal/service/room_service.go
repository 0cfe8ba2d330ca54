package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/afroforma/roommaster/internal/domain"
	"github.com/afroforma/roommaster/internal/repo/postgres"
	"github.com/afroforma/roommaster/internal/tenancy"
	"github.com/afroforma/roommaster/pkg/events"
	"github.com/afroforma/roommaster/pkg/logger"
)

const pgUniqueViolation = "23505"

// tenantID reads the ambient tenant established by the tenant guard. Data
// services refuse to run without it; there is no unscoped code path.
func tenantID(ctx context.Context) (string, error) {
	id, ok := tenancy.TenantID(ctx)
	if !ok {
		return "", domain.Unauthorized("missing tenant context")
	}
	return id, nil
}

type RoomService interface {
	List(ctx context.Context) ([]domain.Room, error)
	Create(ctx context.Context, req *domain.CreateRoomRequest) (*domain.Room, error)
	UpdateStatus(ctx context.Context, id string, status domain.RoomStatus) (*domain.Room, error)
}

type roomService struct {
	roomRepo postgres.RoomRepository
	eventBus events.Publisher
}

func NewRoomService(roomRepo postgres.RoomRepository, eventBus events.Publisher) RoomService {
	return &roomService{roomRepo: roomRepo, eventBus: eventBus}
}

func (s *roomService) List(ctx context.Context) ([]domain.Room, error) {
	tid, err := tenantID(ctx)
	if err != nil {
		return nil, err
	}

	rooms, err := s.roomRepo.List(ctx, tid)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

func (s *roomService) Create(ctx context.Context, req *domain.CreateRoomRequest) (*domain.Room, error) {
	tid, err := tenantID(ctx)
	if err != nil {
		return nil, err
	}

	if req.Status == "" {
		req.Status = domain.RoomAvailable
	}

	room, err := s.roomRepo.Create(ctx, tid, req)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, domain.Conflict("room number already exists")
		}
		return nil, fmt.Errorf("failed to create room: %w", err)
	}
	return room, nil
}

func (s *roomService) UpdateStatus(ctx context.Context, id string, status domain.RoomStatus) (*domain.Room, error) {
	tid, err := tenantID(ctx)
	if err != nil {
		return nil, err
	}

	room, err := s.roomRepo.UpdateStatus(ctx, tid, id, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update room status: %w", err)
	}
	if room == nil {
		// Missing and foreign-tenant rooms are indistinguishable on purpose.
		return nil, domain.NotFound("room not found")
	}

	if s.eventBus != nil {
		err := s.eventBus.Publish(ctx, events.RoomStatusChanged, events.RoomStatusChangedEvent{
			TenantID:  tid,
			RoomID:    room.ID,
			Number:    room.Number,
			Status:    string(room.Status),
			ChangedAt: time.Now(),
		})
		if err != nil {
			logger.WarnContext(ctx, "failed to publish room status event", "error", err)
		}
	}

	return room, nil
}
