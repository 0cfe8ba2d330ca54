package service_test

import (
	"context"
	"testing"

	"github.com/afroforma/roommaster/internal/domain"
	"github.com/afroforma/roommaster/internal/service"
	"github.com/afroforma/roommaster/internal/tenancy"
)

func TestRoomListScopedToAmbientTenant(t *testing.T) {
	rooms := newFakeRoomRepo()
	rooms.add("tenant-a", "101", domain.RoomAvailable)
	rooms.add("tenant-a", "102", domain.RoomOccupied)
	rooms.add("tenant-b", "101", domain.RoomAvailable)

	svc := service.NewRoomService(rooms, nil)

	got, err := svc.List(tenancy.WithTenant(context.Background(), "tenant-a"))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d rooms, want 2", len(got))
	}
	for _, room := range got {
		if room.TenantID != "tenant-a" {
			t.Errorf("room %s belongs to %s", room.Number, room.TenantID)
		}
	}

	_, err = svc.List(context.Background())
	if domain.KindOf(err) != domain.KindUnauthorized {
		t.Errorf("no ambient tenant: kind = %v, want KindUnauthorized", domain.KindOf(err))
	}
}

func TestRoomUpdateStatusForeignTenant(t *testing.T) {
	rooms := newFakeRoomRepo()
	room := rooms.add("tenant-b", "101", domain.RoomAvailable)

	svc := service.NewRoomService(rooms, nil)
	ctx := tenancy.WithTenant(context.Background(), "tenant-a")

	_, err := svc.UpdateStatus(ctx, room.ID, domain.RoomMaintenance)
	if domain.KindOf(err) != domain.KindNotFound {
		t.Fatalf("kind = %v, want KindNotFound (err=%v)", domain.KindOf(err), err)
	}
	if room.Status != domain.RoomAvailable {
		t.Errorf("status mutated to %q", room.Status)
	}
}
