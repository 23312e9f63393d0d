package gatekeep_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/gatekeep/pkg/gatesdk"
)

func TestHealthEndpoints(t *testing.T) {
	baseURL, cleanup := setupGatekeepContainer(t, nil)
	defer cleanup()

	ctx := context.Background()
	client := gatesdk.NewClient(baseURL)

	livez, err := client.Livez(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", livez.Status)
	require.NotEmpty(t, livez.Version)
	require.NotEmpty(t, livez.Uptime)

	readyz, err := client.Readyz(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", readyz.Status)
	require.NotNil(t, readyz.Checks)
	require.Equal(t, "ok", readyz.Checks.Database)
}
