package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/afroforma/roommaster/internal/domain"
	"github.com/afroforma/roommaster/internal/http/response"
	"github.com/afroforma/roommaster/pkg/logger"
)

func (h *Handlers) ListReservations(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	reservations, err := h.reservationService.List(r.Context(), limit, offset)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to list reservations", "error", err)
		response.FromError(w, err)
		return
	}

	if reservations == nil {
		reservations = []domain.Reservation{}
	}
	response.WriteJSON(w, http.StatusOK, reservations)
}

func (h *Handlers) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateReservationRequest
	if !h.bind(w, r, &req) {
		return
	}

	reservation, err := h.reservationService.Create(r.Context(), &req)
	if err != nil {
		logger.WarnContext(r.Context(), "failed to create reservation", "error", err)
		response.FromError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, reservation)
}

func (h *Handlers) UpdateReservationStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req domain.UpdateReservationStatusRequest
	if !h.bind(w, r, &req) {
		return
	}

	reservation, err := h.reservationService.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		logger.WarnContext(r.Context(), "failed to update reservation status", "error", err, "reservation_id", id)
		response.FromError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, reservation)
}
