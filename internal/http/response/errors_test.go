package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/afroforma/roommaster/internal/domain"
	"github.com/afroforma/roommaster/internal/http/response"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"unauthenticated", domain.Unauthenticated("invalid credentials"), http.StatusUnauthorized, "authentication required"},
		{"unauthorized", domain.Unauthorized("missing tenant context"), http.StatusForbidden, "forbidden"},
		{"not found", domain.NotFound("room not found"), http.StatusNotFound, "room not found"},
		{"validation", domain.Validation("invalid role"), http.StatusBadRequest, "invalid role"},
		{"conflict", domain.Conflict("room number already exists"), http.StatusConflict, "room number already exists"},
		{"unclassified", errors.New("pool exhausted"), http.StatusInternalServerError, "internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			response.FromError(rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var body response.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Error != tt.wantMsg {
				t.Errorf("message = %q, want %q", body.Error, tt.wantMsg)
			}
		})
	}
}
