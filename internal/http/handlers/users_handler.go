package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/afroforma/roommaster/internal/domain"
	"github.com/afroforma/roommaster/internal/http/response"
	"github.com/afroforma/roommaster/pkg/logger"
)

func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateUserRequest
	if !h.bind(w, r, &req) {
		return
	}

	user, err := h.userService.Create(r.Context(), &req)
	if err != nil {
		logger.WarnContext(r.Context(), "failed to create user", "error", err)
		response.FromError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, user)
}

func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	users, err := h.userService.List(r.Context(), limit, offset)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to list users", "error", err)
		response.FromError(w, err)
		return
	}

	if users == nil {
		users = []domain.User{}
	}
	response.WriteJSON(w, http.StatusOK, users)
}

func (h *Handlers) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.userService.Deactivate(r.Context(), id); err != nil {
		logger.WarnContext(r.Context(), "failed to deactivate user", "error", err, "target_user_id", id)
		response.FromError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
