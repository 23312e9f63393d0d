package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/gatekeep/internal/gatekeep/service"
	"github.com/aussiebroadwan/gatekeep/pkg/gatesdk"
	"github.com/aussiebroadwan/gatekeep/pkg/slogx"
)

type RegisterHandler struct {
	GateService *service.GateService
}

// ServeHTTP godoc
//
//	@Summary		Register Account
//	@Description	Create an account through the registration gate. A valid invite token always admits and is consumed on success. Without one, private beta requires an approved whitelist entry; otherwise open registration must be enabled.
//	@Tags			Registration
//	@Accept			json
//	@Produce		json
//	@Param			request	body		gatesdk.RegisterRequest	true	"Registration request"
//	@Success		201		{object}	gatesdk.Envelope		"success, message, data.user_id, data.email"
//	@Failure		400		{object}	gatesdk.Envelope		"success, message"
//	@Failure		403		{object}	gatesdk.Envelope		"success, message"
//	@Failure		409		{object}	gatesdk.Envelope		"success, message"
//	@Failure		500		{object}	gatesdk.Envelope		"success, message"
//	@Router			/v1/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req gatesdk.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	user, err := h.GateService.Register(ctx, req.Email, req.Password, req.InviteToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			writeError(w, http.StatusBadRequest, "A valid email address is required")
		case errors.Is(err, service.ErrWeakPassword):
			writeError(w, http.StatusBadRequest, "Password is too short")
		case errors.Is(err, service.ErrInviteEmailMismatch):
			writeError(w, http.StatusForbidden, "Invitation was issued for a different email")
		case errors.Is(err, service.ErrInvitationOnly):
			writeError(w, http.StatusForbidden, "Registration is by invitation only")
		case errors.Is(err, service.ErrRegistrationDisabled):
			writeError(w, http.StatusForbidden, "Registration is disabled")
		case errors.Is(err, service.ErrInviteNotFound):
			writeError(w, http.StatusForbidden, "Invitation is invalid or has expired")
		case errors.Is(err, service.ErrAccountExists):
			writeError(w, http.StatusConflict, "An account with this email already exists")
		default:
			log.Error("failed to register account", "err", err)
			writeError(w, http.StatusInternalServerError, "Failed to register")
		}
		return
	}

	writeSuccess(w, http.StatusCreated, "Account created", gatesdk.RegisterResponse{
		UserID: user.ID,
		Email:  user.Email,
	})
}
