package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/afroforma/roommaster/internal/http/response"
	"github.com/afroforma/roommaster/internal/service"
)

type Handlers struct {
	authService        service.AuthService
	roomService        service.RoomService
	reservationService service.ReservationService
	userService        service.UserService
	validate           *validator.Validate
}

func New(
	authService service.AuthService,
	roomService service.RoomService,
	reservationService service.ReservationService,
	userService service.UserService,
) *Handlers {
	return &Handlers{
		authService:        authService,
		roomService:        roomService,
		reservationService: reservationService,
		userService:        userService,
		validate:           validator.New(validator.WithRequiredStructEnabled()),
	}
}

type fieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// bind decodes the JSON body into out and validates struct tags. Malformed
// input is rejected here, before any guard or data work runs. Returns false
// after writing the error response.
func (h *Handlers) bind(w http.ResponseWriter, r *http.Request, out any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		response.BadRequest(w, "invalid request body")
		return false
	}

	if err := h.validate.Struct(out); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]fieldError, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fieldError{
					Field: strings.ToLower(fe.Field()),
					Rule:  fe.Tag(),
					Param: fe.Param(),
				})
			}
			response.WriteErrorWithDetails(w, http.StatusBadRequest, "validation failed", response.CodeInvalidInput, fields)
			return false
		}
		response.BadRequest(w, "validation failed")
		return false
	}

	return true
}

// parsePagination reads limit/offset query parameters with sane bounds.
func parsePagination(r *http.Request) (limit, offset int) {
	limit = 20
	offset = 0

	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	return limit, offset
}
