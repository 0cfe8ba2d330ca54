package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/afroforma/roommaster/internal/admindir"
	"github.com/afroforma/roommaster/pkg/config"
	"github.com/afroforma/roommaster/pkg/logger"
	mw "github.com/afroforma/roommaster/pkg/middleware"
)

func main() {
	cfg := config.Load()

	store, err := admindir.NewRedisStore(cfg.Redis.URL)
	if err != nil {
		logger.Error("Failed to connect to redis", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	seeded, err := admindir.Bootstrap(ctx, store,
		os.Getenv("ADMINDIR_BOOTSTRAP_UID"),
		os.Getenv("ADMINDIR_BOOTSTRAP_NAME"),
		os.Getenv("ADMINDIR_BOOTSTRAP_EMAIL"),
	)
	if err != nil {
		logger.Error("Failed to bootstrap admin directory", "error", err)
		os.Exit(1)
	}
	if seeded {
		logger.Info("Bootstrapped initial admin", "uid", os.Getenv("ADMINDIR_BOOTSTRAP_UID"))
	}

	h := admindir.NewHandlers(store)

	r := chi.NewRouter()
	r.Use(mw.RequestID)
	r.Use(mw.ServiceName("admindir"))
	r.Use(mw.Recover)
	r.Use(mw.Logging)
	r.Route("/", h.Routes)

	port := os.Getenv("ADMINDIR_PORT")
	if port == "" {
		port = "4100"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down admindir service...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Admindir shutdown error", "error", err)
		}
	}()

	logger.Info("Starting admindir service", "port", port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Admindir service error", "error", err)
		os.Exit(1)
	}
}
