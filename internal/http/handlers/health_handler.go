package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/afroforma/roommaster/internal/http/response"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    Pinger
	start time.Time
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db, start: time.Now()}
}

func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	response.WriteJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"uptime_s":  int64(time.Since(h.start).Seconds()),
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "ok"
	status := http.StatusOK
	if h.db == nil {
		dbStatus = "not-configured"
	} else if err := h.db.Ping(ctx); err != nil {
		dbStatus = "unreachable"
		status = http.StatusServiceUnavailable
	}

	response.WriteJSON(w, status, map[string]any{
		"status": "ready",
		"dependencies": map[string]string{
			"database": dbStatus,
		},
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
