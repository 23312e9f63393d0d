package gatesdk

import "time"

// Envelope is the standard response wrapper written by every endpoint.
// Data carries the operation-specific payload and is omitted when empty.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// Review actions accepted by the admin review endpoint.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// SubmitRequest asks for an email to be whitelisted.
type SubmitRequest struct {
	Email  string `json:"email"`
	Reason string `json:"reason,omitempty"`
}

// WhitelistRequest is the wire form of one whitelist entry.
type WhitelistRequest struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Status      string     `json:"status"`
	Reason      string     `json:"reason,omitempty"`
	RequestedAt time.Time  `json:"requested_at"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	ReviewedBy  string     `json:"reviewed_by,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

// ListResponse is one page of whitelist requests.
type ListResponse struct {
	Requests []WhitelistRequest `json:"requests"`
	Total    int                `json:"total"`
	Page     int                `json:"page"`
	Limit    int                `json:"limit"`
}

// ReviewRequest approves or rejects a pending whitelist request.
// SendInvitation defaults to true when omitted: approving a request sends
// the invitation unless the admin opts out.
type ReviewRequest struct {
	Action         string `json:"action"`
	Notes          string `json:"notes,omitempty"`
	SendInvitation *bool  `json:"send_invitation,omitempty"`
}

// ReviewResponse reports the reviewed entry. InvitationSent is false when
// the approval stood but the invitation email could not be dispatched.
type ReviewResponse struct {
	Request        WhitelistRequest `json:"request"`
	InvitationSent bool             `json:"invitation_sent"`
}

// RegisterRequest creates an account through the registration gate.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	InviteToken string `json:"invite_token,omitempty"`
}

// RegisterResponse is the created account.
type RegisterResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// HealthChecks reports the status of critical dependencies.
type HealthChecks struct {
	Database string `json:"database"`
}

// HealthResponse is returned by the livez and readyz probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
