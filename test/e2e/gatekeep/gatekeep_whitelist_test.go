package gatekeep_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/gatekeep/pkg/gatesdk"
)

func TestWhitelistRequestLifecycle(t *testing.T) {
	baseURL, cleanup := setupGatekeepContainer(t, nil)
	defer cleanup()

	ctx := context.Background()
	public := gatesdk.NewClient(baseURL)
	admin := adminClient(t, baseURL)

	// Submit a request.
	created, err := public.SubmitWhitelistRequest(ctx, gatesdk.SubmitRequest{
		Email:  "alice@example.com",
		Reason: "would love to try the beta",
	})
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", created.Email)
	require.Equal(t, "pending", created.Status)
	require.NotEmpty(t, created.ID)

	// A second submit for the same email conflicts.
	_, err = public.SubmitWhitelistRequest(ctx, gatesdk.SubmitRequest{Email: "alice@example.com"})
	requireAPIError(t, err, http.StatusConflict, "duplicate submit should conflict")

	// The admin sees it in the pending list.
	list, err := admin.ListWhitelistRequests(ctx, "pending", 1, 10)
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)
	require.Len(t, list.Requests, 1)
	require.Equal(t, created.ID, list.Requests[0].ID)

	// Approve it.
	reviewed, err := admin.ReviewWhitelistRequest(ctx, created.ID, gatesdk.ReviewRequest{
		Action: gatesdk.ActionApprove,
		Notes:  "welcome aboard",
	})
	require.NoError(t, err)
	require.Equal(t, "approved", reviewed.Request.Status)
	require.Equal(t, "admin-e2e", reviewed.Request.ReviewedBy)
	require.NotNil(t, reviewed.Request.ReviewedAt)

	// Approved requests cannot be reviewed again.
	_, err = admin.ReviewWhitelistRequest(ctx, created.ID, gatesdk.ReviewRequest{
		Action: gatesdk.ActionReject,
	})
	requireAPIError(t, err, http.StatusConflict, "double review should conflict")

	// An approved email cannot resubmit.
	_, err = public.SubmitWhitelistRequest(ctx, gatesdk.SubmitRequest{Email: "alice@example.com"})
	requireAPIError(t, err, http.StatusConflict, "approved email should not resubmit")

	// Delete frees the email to submit again.
	require.NoError(t, admin.DeleteWhitelistRequest(ctx, created.ID))

	_, err = public.SubmitWhitelistRequest(ctx, gatesdk.SubmitRequest{Email: "alice@example.com"})
	require.NoError(t, err)
}

func TestWhitelistRejectAndResubmit(t *testing.T) {
	baseURL, cleanup := setupGatekeepContainer(t, nil)
	defer cleanup()

	ctx := context.Background()
	public := gatesdk.NewClient(baseURL)
	admin := adminClient(t, baseURL)

	created, err := public.SubmitWhitelistRequest(ctx, gatesdk.SubmitRequest{
		Email:  "bob@example.com",
		Reason: "first attempt",
	})
	require.NoError(t, err)

	reviewed, err := admin.ReviewWhitelistRequest(ctx, created.ID, gatesdk.ReviewRequest{
		Action: gatesdk.ActionReject,
		Notes:  "not this round",
	})
	require.NoError(t, err)
	require.Equal(t, "rejected", reviewed.Request.Status)

	// A rejected email can resubmit, reusing the same request.
	resubmitted, err := public.SubmitWhitelistRequest(ctx, gatesdk.SubmitRequest{
		Email:  "bob@example.com",
		Reason: "second attempt",
	})
	require.NoError(t, err)
	require.Equal(t, created.ID, resubmitted.ID)
	require.Equal(t, "pending", resubmitted.Status)
	require.Equal(t, "second attempt", resubmitted.Reason)
	require.Nil(t, resubmitted.ReviewedAt)
}

func TestWhitelistAdminEndpointsRequireAuth(t *testing.T) {
	baseURL, cleanup := setupGatekeepContainer(t, nil)
	defer cleanup()

	ctx := context.Background()

	// No token at all.
	anonymous := gatesdk.NewClient(baseURL)
	_, err := anonymous.ListWhitelistRequests(ctx, "", 0, 0)
	requireAPIError(t, err, http.StatusUnauthorized, "list without token")

	// A token without admin:write cannot review or delete.
	readOnly := gatesdk.NewClient(baseURL)
	readOnly.AdminToken = mintAdminToken(t, "admin:read")

	_, err = readOnly.ListWhitelistRequests(ctx, "", 0, 0)
	require.NoError(t, err, "admin:read should list")

	_, err = readOnly.ReviewWhitelistRequest(ctx, "some-id", gatesdk.ReviewRequest{
		Action: gatesdk.ActionApprove,
	})
	requireAPIError(t, err, http.StatusForbidden, "review without admin:write")

	err = readOnly.DeleteWhitelistRequest(ctx, "some-id")
	requireAPIError(t, err, http.StatusForbidden, "delete without admin:write")
}
