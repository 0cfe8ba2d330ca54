package handlers

import (
	"net/http"

	"github.com/afroforma/roommaster/internal/domain"
	"github.com/afroforma/roommaster/internal/http/middleware"
	"github.com/afroforma/roommaster/internal/http/response"
	"github.com/afroforma/roommaster/pkg/logger"
)

// Login issues an access token for {tenant, email, password}. The tenant may
// be an id or a slug. All rejection causes surface with the same status; the
// split between unknown-tenant and bad-credentials lives only in logs.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if !h.bind(w, r, &req) {
		return
	}

	resp, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		if domain.KindOf(err) == domain.KindUnauthenticated {
			response.Unauthorized(w, err.Error())
			return
		}
		logger.ErrorContext(r.Context(), "login failed", "error", err)
		response.FromError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, resp)
}

// Me echoes the verified claims of the current token.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		response.Unauthorized(w, "authentication required")
		return
	}

	response.WriteJSON(w, http.StatusOK, &domain.UserInfo{
		Sub:      claims.Sub,
		Email:    claims.Email,
		TenantID: claims.TenantID,
		Role:     claims.Role,
	})
}
