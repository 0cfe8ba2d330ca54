package service

import (
	"context"
	"fmt"
	"time"

	"github.com/afroforma/roommaster/internal/domain"
	"github.com/afroforma/roommaster/internal/repo/postgres"
	"github.com/afroforma/roommaster/pkg/events"
	"github.com/afroforma/roommaster/pkg/logger"
)

type ReservationService interface {
	List(ctx context.Context, limit, offset int) ([]domain.Reservation, error)
	Create(ctx context.Context, req *domain.CreateReservationRequest) (*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus) (*domain.Reservation, error)
}

type reservationService struct {
	reservationRepo postgres.ReservationRepository
	roomRepo        postgres.RoomRepository
	eventBus        events.Publisher
}

func NewReservationService(reservationRepo postgres.ReservationRepository, roomRepo postgres.RoomRepository, eventBus events.Publisher) ReservationService {
	return &reservationService{
		reservationRepo: reservationRepo,
		roomRepo:        roomRepo,
		eventBus:        eventBus,
	}
}

func (s *reservationService) List(ctx context.Context, limit, offset int) ([]domain.Reservation, error) {
	tid, err := tenantID(ctx)
	if err != nil {
		return nil, err
	}

	reservations, err := s.reservationRepo.List(ctx, tid, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	return reservations, nil
}

// Create validates the referenced room against the ambient tenant before
// anything is written. A room id belonging to another tenant is reported as
// not found, never as a permission problem.
func (s *reservationService) Create(ctx context.Context, req *domain.CreateReservationRequest) (*domain.Reservation, error) {
	tid, err := tenantID(ctx)
	if err != nil {
		return nil, err
	}

	if req.Status == "" {
		req.Status = domain.ReservationConfirmed
	}

	if req.RoomID != nil && *req.RoomID != "" {
		room, err := s.roomRepo.FindByID(ctx, tid, *req.RoomID)
		if err != nil {
			return nil, fmt.Errorf("failed to check room: %w", err)
		}
		if room == nil {
			return nil, domain.NotFound("room not found")
		}
	} else {
		req.RoomID = nil
	}

	reservation, err := s.reservationRepo.Create(ctx, tid, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	if s.eventBus != nil {
		roomID := ""
		if reservation.RoomID != nil {
			roomID = *reservation.RoomID
		}
		err := s.eventBus.Publish(ctx, events.ReservationCreated, events.ReservationCreatedEvent{
			TenantID:      tid,
			ReservationID: reservation.ID,
			RoomID:        roomID,
			GuestName:     reservation.GuestName,
			CheckIn:       reservation.CheckIn,
			CheckOut:      reservation.CheckOut,
			CreatedAt:     reservation.CreatedAt,
		})
		if err != nil {
			logger.WarnContext(ctx, "failed to publish reservation event", "error", err)
		}
	}

	return reservation, nil
}

func (s *reservationService) UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus) (*domain.Reservation, error) {
	tid, err := tenantID(ctx)
	if err != nil {
		return nil, err
	}

	reservation, err := s.reservationRepo.UpdateStatus(ctx, tid, id, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update reservation status: %w", err)
	}
	if reservation == nil {
		return nil, domain.NotFound("reservation not found")
	}

	if s.eventBus != nil {
		err := s.eventBus.Publish(ctx, events.ReservationStatusChanged, events.ReservationStatusChangedEvent{
			TenantID:      tid,
			ReservationID: reservation.ID,
			Status:        string(reservation.Status),
			ChangedAt:     time.Now(),
		})
		if err != nil {
			logger.WarnContext(ctx, "failed to publish reservation status event", "error", err)
		}
	}

	return reservation, nil
}
