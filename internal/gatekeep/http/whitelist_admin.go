package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/gatekeep/internal/gatekeep/domain"
	"github.com/aussiebroadwan/gatekeep/internal/gatekeep/service"
	"github.com/aussiebroadwan/gatekeep/pkg/gatesdk"
	"github.com/aussiebroadwan/gatekeep/pkg/httpx"
	"github.com/aussiebroadwan/gatekeep/pkg/slogx"
)

// WhitelistAdminHandler serves the admin-facing whitelist operations.
type WhitelistAdminHandler struct {
	WhitelistService *service.WhitelistService
}

// HandleList godoc
//
//	@Summary		List Whitelist Requests
//	@Description	List whitelist requests newest first, optionally filtered by status (pending, approved, rejected). Paginated via page and limit query parameters; limit is capped server-side.
//	@Tags			Whitelist
//	@Produce		json
//	@Param			status	query		string				false	"Status filter"
//	@Param			page	query		int					false	"Page number (1-based)"
//	@Param			limit	query		int					false	"Page size"
//	@Success		200		{object}	gatesdk.Envelope	"success, data.requests, data.total, data.page, data.limit"
//	@Failure		400		{object}	gatesdk.Envelope	"success, message"
//	@Failure		401		{object}	gatesdk.Envelope	"success, message"
//	@Failure		500		{object}	gatesdk.Envelope	"success, message"
//	@Security		BearerAuth
//	@Router			/v1/whitelist-requests [get].
func (h *WhitelistAdminHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	result, err := h.WhitelistService.List(ctx, domain.Status(q.Get("status")), page, limit)
	if err != nil {
		if errors.Is(err, service.ErrInvalidStatus) {
			writeError(w, http.StatusBadRequest, "Status must be pending, approved or rejected")
			return
		}
		log.Error("failed to list whitelist requests", "err", err)
		writeError(w, http.StatusInternalServerError, "Failed to list requests")
		return
	}

	requests := make([]gatesdk.WhitelistRequest, 0, len(result.Entries))
	for _, e := range result.Entries {
		requests = append(requests, toWireRequest(e))
	}

	writeSuccess(w, http.StatusOK, "", gatesdk.ListResponse{
		Requests: requests,
		Total:    result.Total,
		Page:     result.Page,
		Limit:    result.PageSize,
	})
}

// HandleReview godoc
//
//	@Summary		Review Whitelist Request
//	@Description	Approve or reject a pending whitelist request. Approval may issue a single-use invitation token and email it to the requester; a failed email dispatch does not undo the approval and is reported via invitation_sent.
//	@Tags			Whitelist
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Request ID"
//	@Param			request	body		gatesdk.ReviewRequest	true	"Review action"
//	@Success		200		{object}	gatesdk.Envelope		"success, message, data.request, data.invitation_sent"
//	@Failure		400		{object}	gatesdk.Envelope		"success, message"
//	@Failure		401		{object}	gatesdk.Envelope		"success, message"
//	@Failure		404		{object}	gatesdk.Envelope		"success, message"
//	@Failure		409		{object}	gatesdk.Envelope		"success, message"
//	@Failure		500		{object}	gatesdk.Envelope		"success, message"
//	@Security		BearerAuth
//	@Router			/v1/whitelist-requests/{id} [put].
func (h *WhitelistAdminHandler) HandleReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req gatesdk.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	var action domain.Status
	switch req.Action {
	case gatesdk.ActionApprove:
		action = domain.StatusApproved
	case gatesdk.ActionReject:
		action = domain.StatusRejected
	default:
		writeError(w, http.StatusBadRequest, "Action must be approve or reject")
		return
	}

	reviewerID, ok := ctx.Value(httpx.CtxKeyUserID).(string)
	if !ok || reviewerID == "" {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	// Omitting send_invitation means send it; approvals opt out explicitly.
	sendInvitation := true
	if req.SendInvitation != nil {
		sendInvitation = *req.SendInvitation
	}

	result, err := h.WhitelistService.Review(
		ctx,
		r.PathValue("id"),
		action,
		reviewerID,
		req.Notes,
		sendInvitation,
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotesTooLong):
			writeError(w, http.StatusBadRequest, "Notes are too long")
		case errors.Is(err, service.ErrEntryNotFound):
			writeError(w, http.StatusNotFound, "Request not found")
		case errors.Is(err, service.ErrAlreadyReviewed):
			writeError(w, http.StatusConflict, "Request has already been reviewed")
		default:
			log.Error("failed to review whitelist request", "err", err)
			writeError(w, http.StatusInternalServerError, "Failed to review request")
		}
		return
	}

	message := "Request " + string(result.Entry.Status)
	if action == domain.StatusApproved && sendInvitation && !result.InvitationSent {
		message += ", but the invitation email could not be sent"
	}

	writeSuccess(w, http.StatusOK, message, gatesdk.ReviewResponse{
		Request:        toWireRequest(result.Entry),
		InvitationSent: result.InvitationSent,
	})
}

// HandleDelete godoc
//
//	@Summary		Delete Whitelist Request
//	@Description	Remove a whitelist request outright, whatever its status. The email becomes free to submit a fresh request.
//	@Tags			Whitelist
//	@Produce		json
//	@Param			id	path		string				true	"Request ID"
//	@Success		200	{object}	gatesdk.Envelope	"success, message"
//	@Failure		401	{object}	gatesdk.Envelope	"success, message"
//	@Failure		404	{object}	gatesdk.Envelope	"success, message"
//	@Failure		500	{object}	gatesdk.Envelope	"success, message"
//	@Security		BearerAuth
//	@Router			/v1/whitelist-requests/{id} [delete].
func (h *WhitelistAdminHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	err := h.WhitelistService.Delete(ctx, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrEntryNotFound) {
			writeError(w, http.StatusNotFound, "Request not found")
			return
		}
		log.Error("failed to delete whitelist request", "err", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete request")
		return
	}

	writeSuccess(w, http.StatusOK, "Request deleted", nil)
}
