package http

import (
	"net/http"

	"github.com/aussiebroadwan/gatekeep/internal/gatekeep/domain"
	"github.com/aussiebroadwan/gatekeep/pkg/gatesdk"
	"github.com/aussiebroadwan/gatekeep/pkg/httpx"
)

func writeSuccess(w http.ResponseWriter, status int, message string, data any) {
	httpx.WriteJSON(w, status, gatesdk.Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	httpx.WriteJSON(w, status, gatesdk.Envelope{
		Success: false,
		Message: message,
	})
}

func toWireRequest(e domain.WhitelistEntry) gatesdk.WhitelistRequest {
	return gatesdk.WhitelistRequest{
		ID:          e.ID,
		Email:       e.Email,
		Status:      string(e.Status),
		Reason:      e.Reason,
		RequestedAt: e.RequestedAt,
		ReviewedAt:  e.ReviewedAt,
		ReviewedBy:  e.ReviewedBy,
		Notes:       e.Notes,
	}
}
