package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/gatekeep/internal/gatekeep/service"
	"github.com/aussiebroadwan/gatekeep/pkg/gatesdk"
	"github.com/aussiebroadwan/gatekeep/pkg/slogx"
)

type WhitelistSubmitHandler struct {
	WhitelistService *service.WhitelistService
}

// ServeHTTP godoc
//
//	@Summary		Submit Whitelist Request
//	@Description	Request access for an email address. A new email creates a pending request; a previously rejected email is resubmitted for another review. Pending and approved emails cannot submit again.
//	@Tags			Whitelist
//	@Accept			json
//	@Produce		json
//	@Param			request	body		gatesdk.SubmitRequest	true	"Submit request"
//	@Success		201		{object}	gatesdk.Envelope		"success, message, data (the request)"
//	@Failure		400		{object}	gatesdk.Envelope		"success, message"
//	@Failure		409		{object}	gatesdk.Envelope		"success, message"
//	@Failure		500		{object}	gatesdk.Envelope		"success, message"
//	@Router			/v1/whitelist-requests [post].
func (h *WhitelistSubmitHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req gatesdk.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	entry, err := h.WhitelistService.Submit(ctx, req.Email, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			writeError(w, http.StatusBadRequest, "A valid email address is required")
		case errors.Is(err, service.ErrReasonTooLong):
			writeError(w, http.StatusBadRequest, "Reason is too long")
		case errors.Is(err, service.ErrAlreadyPending):
			writeError(w, http.StatusConflict, "A request for this email is already pending review")
		case errors.Is(err, service.ErrAlreadyApproved):
			writeError(w, http.StatusConflict, "This email is already approved")
		default:
			log.Error("failed to submit whitelist request", "err", err)
			writeError(w, http.StatusInternalServerError, "Failed to submit request")
		}
		return
	}

	writeSuccess(w, http.StatusCreated, "Request submitted for review", toWireRequest(entry))
}
