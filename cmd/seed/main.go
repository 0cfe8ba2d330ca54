// Seed creates or updates a demo tenant with an admin user, a few rooms and
// sample reservations. Safe to run repeatedly.
package main

import (
	"context"
	"os"
	"time"

	"github.com/alexedwards/argon2id"

	"github.com/afroforma/roommaster/internal/domain"
	"github.com/afroforma/roommaster/internal/repo/postgres"
	"github.com/afroforma/roommaster/pkg/config"
	"github.com/afroforma/roommaster/pkg/database"
	"github.com/afroforma/roommaster/pkg/logger"
)

func main() {
	cfg := config.Load()

	ctx := context.Background()
	if err := database.Migrate(ctx, cfg.Database.URL); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	pool, err := database.Connect(ctx, cfg.Database.URL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	tenantRepo := postgres.NewTenantRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	roomRepo := postgres.NewRoomRepository(pool)
	reservationRepo := postgres.NewReservationRepository(pool)

	tenant, err := tenantRepo.Upsert(ctx, cfg.Seed.TenantSlug, cfg.Seed.TenantName)
	if err != nil {
		logger.Error("Failed to seed tenant", "error", err)
		os.Exit(1)
	}

	passwordHash, err := argon2id.CreateHash(cfg.Seed.AdminPassword, argon2id.DefaultParams)
	if err != nil {
		logger.Error("Failed to hash admin password", "error", err)
		os.Exit(1)
	}

	admin, err := userRepo.Upsert(ctx, tenant.ID, cfg.Seed.AdminEmail, "Admin", passwordHash, domain.RoleAdmin)
	if err != nil {
		logger.Error("Failed to seed admin user", "error", err)
		os.Exit(1)
	}

	roomsToSeed := []domain.CreateRoomRequest{
		{Number: "101", Type: "Standard", Floor: "1", Status: domain.RoomAvailable},
		{Number: "102", Type: "Standard", Floor: "1", Status: domain.RoomOccupied},
		{Number: "201", Type: "Deluxe", Floor: "2", Status: domain.RoomAvailable},
		{Number: "301", Type: "Suite", Floor: "3", Status: domain.RoomMaintenance},
	}

	rooms := make(map[string]string, len(roomsToSeed))
	for i := range roomsToSeed {
		room, err := roomRepo.Upsert(ctx, tenant.ID, &roomsToSeed[i])
		if err != nil {
			logger.Error("Failed to seed room", "error", err, "number", roomsToSeed[i].Number)
			os.Exit(1)
		}
		rooms[room.Number] = room.ID
	}

	count, err := reservationRepo.CountByTenant(ctx, tenant.ID)
	if err != nil {
		logger.Error("Failed to count reservations", "error", err)
		os.Exit(1)
	}

	if count == 0 {
		now := time.Now()
		room101 := rooms["101"]
		room201 := rooms["201"]

		seedReservations := []domain.CreateReservationRequest{
			{
				GuestName: "A. Mensah",
				CheckIn:   now,
				CheckOut:  now.Add(2 * 24 * time.Hour),
				Status:    domain.ReservationConfirmed,
				Amount:    120000,
				Deposit:   40000,
				Source:    "Direct",
				RoomID:    &room101,
			},
			{
				GuestName: "S. Akouvi",
				CheckIn:   now.Add(1 * 24 * time.Hour),
				CheckOut:  now.Add(3 * 24 * time.Hour),
				Status:    domain.ReservationProvisional,
				Amount:    180000,
				Deposit:   60000,
				Source:    "Booking.com",
				RoomID:    &room201,
			},
		}
		for i := range seedReservations {
			if _, err := reservationRepo.Create(ctx, tenant.ID, &seedReservations[i]); err != nil {
				logger.Error("Failed to seed reservation", "error", err)
				os.Exit(1)
			}
		}
	}

	logger.Info("Seed completed",
		"tenant_id", tenant.ID,
		"tenant_slug", tenant.Slug,
		"admin_email", admin.Email,
		"admin_role", admin.Role,
	)
}
