package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/afroforma/roommaster/internal/domain"
	"github.com/afroforma/roommaster/internal/http/handlers"
	guard "github.com/afroforma/roommaster/internal/http/middleware"
	"github.com/afroforma/roommaster/internal/mailer"
	"github.com/afroforma/roommaster/internal/repo/postgres"
	"github.com/afroforma/roommaster/internal/service"
	"github.com/afroforma/roommaster/pkg/config"
	"github.com/afroforma/roommaster/pkg/database"
	"github.com/afroforma/roommaster/pkg/events"
	"github.com/afroforma/roommaster/pkg/logger"
	mw "github.com/afroforma/roommaster/pkg/middleware"
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

	eventBus, err := events.NewNATSEventBus(cfg.NATS.URL)
	if err != nil {
		logger.Error("Failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer eventBus.Close()

	// Repositories
	tenantRepo := postgres.NewTenantRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	roomRepo := postgres.NewRoomRepository(pool)
	reservationRepo := postgres.NewReservationRepository(pool)
	rateLimitRepo := postgres.NewRateLimitRepository(pool)

	// Services
	mail := mailer.FromConfig(
		cfg.Email.DevMode, cfg.Email.MailerSendKey,
		cfg.Email.SMTPFromName, cfg.Email.SMTPFrom,
		cfg.Email.SMTPHost, cfg.Email.SMTPPort,
		cfg.Email.SMTPUser, cfg.Email.SMTPPass, cfg.Email.SMTPUseTLS,
	)
	authService := service.NewAuthService(tenantRepo, userRepo, cfg)
	roomService := service.NewRoomService(roomRepo, eventBus)
	reservationService := service.NewReservationService(reservationRepo, roomRepo, eventBus)
	userService := service.NewUserService(userRepo, tenantRepo, mail, eventBus)

	h := handlers.New(authService, roomService, reservationService, userService)
	health := handlers.NewHealthHandler(pool)

	r := chi.NewRouter()

	// Middleware
	r.Use(mw.RequestID)
	r.Use(mw.ServiceName("api"))
	r.Use(mw.Recover)
	r.Use(mw.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Tenant-ID", "X-Tenant"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(mw.Metrics)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	secret := cfg.Auth.JWTSecret
	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(guard.RateLimit(rateLimitRepo, cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateWindow)).
				Post("/login", h.Login)
			r.With(guard.RequireAuth(secret)).Get("/me", h.Me)
		})

		// Protected, tenant-scoped routes. Guard order is fixed:
		// credential, then tenant, then role.
		r.Route("/rooms", func(r chi.Router) {
			r.Use(guard.RequireAuth(secret))
			r.Use(guard.RequireTenant)
			r.Get("/", h.ListRooms)
			r.With(guard.RequireRoles(domain.RoleAdmin, domain.RoleManager)).
				Post("/", h.CreateRoom)
			r.With(guard.RequireRoles(domain.RoleAdmin, domain.RoleManager)).
				Patch("/{id}/status", h.UpdateRoomStatus)
		})

		r.Route("/reservations", func(r chi.Router) {
			r.Use(guard.RequireAuth(secret))
			r.Use(guard.RequireTenant)
			r.Get("/", h.ListReservations)
			r.With(guard.RequireRoles(domain.RoleAdmin, domain.RoleManager, domain.RoleStaff)).
				Post("/", h.CreateReservation)
			r.With(guard.RequireRoles(domain.RoleAdmin, domain.RoleManager, domain.RoleStaff)).
				Patch("/{id}/status", h.UpdateReservationStatus)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(guard.RequireAuth(secret))
			r.Use(guard.RequireTenant)
			r.Use(guard.RequireRoles(domain.RoleAdmin))
			r.Get("/", h.ListUsers)
			r.Post("/", h.CreateUser)
			r.Patch("/{id}/deactivate", h.DeactivateUser)
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down api service...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("API shutdown error", "error", err)
		}
	}()

	logger.Info("Starting api service", "port", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("API service error", "error", err)
		os.Exit(1)
	}
}
