package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/afroforma/roommaster/internal/domain"
	"github.com/afroforma/roommaster/internal/http/response"
	"github.com/afroforma/roommaster/pkg/logger"
)

func (h *Handlers) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.roomService.List(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to list rooms", "error", err)
		response.FromError(w, err)
		return
	}

	if rooms == nil {
		rooms = []domain.Room{}
	}
	response.WriteJSON(w, http.StatusOK, rooms)
}

func (h *Handlers) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateRoomRequest
	if !h.bind(w, r, &req) {
		return
	}

	room, err := h.roomService.Create(r.Context(), &req)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to create room", "error", err)
		response.FromError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, room)
}

func (h *Handlers) UpdateRoomStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req domain.UpdateRoomStatusRequest
	if !h.bind(w, r, &req) {
		return
	}

	room, err := h.roomService.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to update room status", "error", err, "room_id", id)
		response.FromError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, room)
}
