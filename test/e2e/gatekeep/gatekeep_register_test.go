package gatekeep_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/gatekeep/pkg/gatesdk"
)

func TestRegisterOpenRegistration(t *testing.T) {
	baseURL, cleanup := setupGatekeepContainer(t, map[string]string{
		"GATE_OPEN_REGISTRATION": "true",
		"GATE_PRIVATE_BETA":      "false",
	})
	defer cleanup()

	ctx := context.Background()
	public := gatesdk.NewClient(baseURL)

	account, err := public.Register(ctx, gatesdk.RegisterRequest{
		Email:    "walkin@example.com",
		Password: "long enough password",
	})
	require.NoError(t, err)
	require.Equal(t, "walkin@example.com", account.Email)
	require.NotEmpty(t, account.UserID)

	// Same email cannot register twice.
	_, err = public.Register(ctx, gatesdk.RegisterRequest{
		Email:    "walkin@example.com",
		Password: "long enough password",
	})
	requireAPIError(t, err, http.StatusConflict, "duplicate registration")
}

func TestRegisterPrivateBeta(t *testing.T) {
	baseURL, cleanup := setupGatekeepContainer(t, map[string]string{
		"GATE_PRIVATE_BETA":      "true",
		"GATE_OPEN_REGISTRATION": "false",
	})
	defer cleanup()

	ctx := context.Background()
	public := gatesdk.NewClient(baseURL)
	admin := adminClient(t, baseURL)

	// Not whitelisted: denied.
	_, err := public.Register(ctx, gatesdk.RegisterRequest{
		Email:    "outsider@example.com",
		Password: "long enough password",
	})
	requireAPIError(t, err, http.StatusForbidden, "unapproved email under private beta")

	// Submit and approve, then registration goes through.
	created, err := public.SubmitWhitelistRequest(ctx, gatesdk.SubmitRequest{
		Email: "insider@example.com",
	})
	require.NoError(t, err)

	_, err = admin.ReviewWhitelistRequest(ctx, created.ID, gatesdk.ReviewRequest{
		Action: gatesdk.ActionApprove,
	})
	require.NoError(t, err)

	account, err := public.Register(ctx, gatesdk.RegisterRequest{
		Email:    "insider@example.com",
		Password: "long enough password",
	})
	require.NoError(t, err)
	require.Equal(t, "insider@example.com", account.Email)

	// A pending (unreviewed) email is still denied.
	_, err = public.SubmitWhitelistRequest(ctx, gatesdk.SubmitRequest{
		Email: "waiting@example.com",
	})
	require.NoError(t, err)

	_, err = public.Register(ctx, gatesdk.RegisterRequest{
		Email:    "waiting@example.com",
		Password: "long enough password",
	})
	requireAPIError(t, err, http.StatusForbidden, "pending email under private beta")
}

func TestRegisterClosed(t *testing.T) {
	baseURL, cleanup := setupGatekeepContainer(t, map[string]string{
		"GATE_PRIVATE_BETA":      "false",
		"GATE_OPEN_REGISTRATION": "false",
	})
	defer cleanup()

	ctx := context.Background()
	public := gatesdk.NewClient(baseURL)

	_, err := public.Register(ctx, gatesdk.RegisterRequest{
		Email:    "anyone@example.com",
		Password: "long enough password",
	})
	requireAPIError(t, err, http.StatusForbidden, "registration disabled")
}

func TestRegisterValidation(t *testing.T) {
	baseURL, cleanup := setupGatekeepContainer(t, nil)
	defer cleanup()

	ctx := context.Background()
	public := gatesdk.NewClient(baseURL)

	_, err := public.Register(ctx, gatesdk.RegisterRequest{
		Email:    "not-an-email",
		Password: "long enough password",
	})
	requireAPIError(t, err, http.StatusBadRequest, "invalid email")

	_, err = public.Register(ctx, gatesdk.RegisterRequest{
		Email:    "short@example.com",
		Password: "short",
	})
	requireAPIError(t, err, http.StatusBadRequest, "short password")
}
