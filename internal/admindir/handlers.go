package admindir

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/afroforma/roommaster/internal/http/response"
	"github.com/afroforma/roommaster/pkg/logger"
)

// CallerHeader carries the identity of the caller as asserted by the
// fronting identity provider. Every operation requires the caller to
// already be in the directory.
const CallerHeader = "X-Caller-UID"

type Handlers struct {
	store Store
}

func NewHandlers(store Store) *Handlers {
	return &Handlers{store: store}
}

func (h *Handlers) Routes(r chi.Router) {
	r.Get("/admins", h.List)
	r.Post("/admins/lookup", h.Lookup)
	r.Put("/admins/{uid}", h.Promote)
	r.Delete("/admins/{uid}", h.Demote)
}

// callerUID authorizes the request and returns the caller identity, or ""
// after writing the error response.
func (h *Handlers) callerUID(w http.ResponseWriter, r *http.Request) string {
	uid := strings.TrimSpace(r.Header.Get(CallerHeader))
	if uid == "" {
		response.Unauthorized(w, "authentication required")
		return ""
	}

	rec, err := h.store.Get(r.Context(), uid)
	if err != nil {
		logger.ErrorContext(r.Context(), "admin directory lookup failed", "error", err)
		response.InternalError(w, "internal error")
		return ""
	}
	if rec == nil {
		response.Forbidden(w, "forbidden")
		return ""
	}
	return uid
}

func (h *Handlers) List(w http.ResponseWriter, r *http.Request) {
	if h.callerUID(w, r) == "" {
		return
	}

	records, err := h.store.List(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to list admins", "error", err)
		response.InternalError(w, "internal error")
		return
	}
	response.WriteJSON(w, http.StatusOK, records)
}

func (h *Handlers) Lookup(w http.ResponseWriter, r *http.Request) {
	if h.callerUID(w, r) == "" {
		return
	}

	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Email) == "" {
		response.BadRequest(w, "email is required")
		return
	}

	uid, err := h.store.FindUIDByEmail(r.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		logger.ErrorContext(r.Context(), "admin lookup failed", "error", err)
		response.InternalError(w, "internal error")
		return
	}
	if uid == "" {
		response.NotFound(w, "no user found for this email")
		return
	}

	rec, err := h.store.Get(r.Context(), uid)
	if err != nil || rec == nil {
		response.NotFound(w, "no user found for this email")
		return
	}
	response.WriteJSON(w, http.StatusOK, rec)
}

func (h *Handlers) Promote(w http.ResponseWriter, r *http.Request) {
	caller := h.callerUID(w, r)
	if caller == "" {
		return
	}

	target := chi.URLParam(r, "uid")
	if target == "" {
		response.BadRequest(w, "missing target uid")
		return
	}

	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	rec := &Record{
		UID:       target,
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		CreatedBy: caller,
		CreatedAt: time.Now(),
	}
	if err := h.store.Set(r.Context(), rec); err != nil {
		logger.ErrorContext(r.Context(), "failed to promote admin", "error", err, "target", target)
		response.InternalError(w, "internal error")
		return
	}

	logger.InfoContext(r.Context(), "admin promoted", "target", target, "by", caller)
	response.WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "uid": target})
}

func (h *Handlers) Demote(w http.ResponseWriter, r *http.Request) {
	caller := h.callerUID(w, r)
	if caller == "" {
		return
	}

	target := chi.URLParam(r, "uid")
	if target == "" {
		response.BadRequest(w, "missing target uid")
		return
	}

	// An admin cannot demote themselves.
	if target == caller {
		response.Forbidden(w, "forbidden")
		return
	}

	if err := h.store.Delete(r.Context(), target); err != nil {
		logger.ErrorContext(r.Context(), "failed to demote admin", "error", err, "target", target)
		response.InternalError(w, "internal error")
		return
	}

	logger.InfoContext(r.Context(), "admin demoted", "target", target, "by", caller)
	response.WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "uid": target})
}
