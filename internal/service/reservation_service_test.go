package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/afroforma/roommaster/internal/domain"
	"github.com/afroforma/roommaster/internal/service"
	"github.com/afroforma/roommaster/internal/tenancy"
)

func reservationReq(roomID *string) *domain.CreateReservationRequest {
	return &domain.CreateReservationRequest{
		GuestName: "A. Mensah",
		CheckIn:   time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC),
		CheckOut:  time.Date(2026, 9, 3, 11, 0, 0, 0, time.UTC),
		RoomID:    roomID,
	}
}

func TestCreateReservation(t *testing.T) {
	rooms := newFakeRoomRepo()
	reservations := newFakeReservationRepo()
	room := rooms.add("tenant-a", "101", domain.RoomAvailable)

	svc := service.NewReservationService(reservations, rooms, nil)
	ctx := tenancy.WithTenant(context.Background(), "tenant-a")

	res, err := svc.Create(ctx, reservationReq(&room.ID))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if res.TenantID != "tenant-a" {
		t.Errorf("tenant = %q, want tenant-a", res.TenantID)
	}
	if res.Status != domain.ReservationConfirmed {
		t.Errorf("status = %q, want default CONFIRMED", res.Status)
	}
}

func TestCreateReservationForeignRoom(t *testing.T) {
	rooms := newFakeRoomRepo()
	reservations := newFakeReservationRepo()
	// room "101" exists, but under a different tenant
	foreign := rooms.add("tenant-b", "101", domain.RoomAvailable)

	svc := service.NewReservationService(reservations, rooms, nil)
	ctx := tenancy.WithTenant(context.Background(), "tenant-a")

	_, err := svc.Create(ctx, reservationReq(&foreign.ID))
	if domain.KindOf(err) != domain.KindNotFound {
		t.Fatalf("kind = %v, want KindNotFound (err=%v)", domain.KindOf(err), err)
	}
	if reservations.createCalls != 0 {
		t.Errorf("createCalls = %d, want 0: nothing may be written after a failed room check", reservations.createCalls)
	}
}

func TestCreateReservationNoTenantContext(t *testing.T) {
	rooms := newFakeRoomRepo()
	reservations := newFakeReservationRepo()

	svc := service.NewReservationService(reservations, rooms, nil)

	_, err := svc.Create(context.Background(), reservationReq(nil))
	if domain.KindOf(err) != domain.KindUnauthorized {
		t.Fatalf("kind = %v, want KindUnauthorized (err=%v)", domain.KindOf(err), err)
	}
	if reservations.createCalls != 0 {
		t.Errorf("createCalls = %d, want 0", reservations.createCalls)
	}
}

func TestUpdateReservationStatusForeignTenant(t *testing.T) {
	rooms := newFakeRoomRepo()
	reservations := newFakeReservationRepo()
	svc := service.NewReservationService(reservations, rooms, nil)

	// create under tenant-b, then try to flip it as tenant-a
	ctxB := tenancy.WithTenant(context.Background(), "tenant-b")
	res, err := svc.Create(ctxB, reservationReq(nil))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	ctxA := tenancy.WithTenant(context.Background(), "tenant-a")
	_, err = svc.UpdateStatus(ctxA, res.ID, domain.ReservationCancelled)
	if domain.KindOf(err) != domain.KindNotFound {
		t.Fatalf("kind = %v, want KindNotFound (err=%v)", domain.KindOf(err), err)
	}

	got, err := svc.UpdateStatus(ctxB, res.ID, domain.ReservationCancelled)
	if err != nil {
		t.Fatalf("UpdateStatus own tenant: %v", err)
	}
	if got.Status != domain.ReservationCancelled {
		t.Errorf("status = %q, want CANCELLED", got.Status)
	}
}
