package gatekeep_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/aussiebroadwan/gatekeep/pkg/gatesdk"
	"github.com/aussiebroadwan/gatekeep/pkg/jwtx"
)

/*
 * Common constants and helper functions for gatekeep service end-to-end
 * tests. This includes container setup, admin token minting, and clients.
 */

const (
	testImageName = "gatekeep-test:latest"

	testJWTSecret = "e2e-shared-secret-0123456789abcdef"
	testIssuer    = "gatekeep"
)

// TestMain manages the test lifecycle, builds the Docker image once before
// all tests and cleans it up after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Gatekeep Service Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Gatekeep Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/gatekeep/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// setupGatekeepContainer starts the service in a container and returns the
// base URL. extraEnv overrides or extends the defaults, which run with open
// registration and relaxed rate limits so tests can make rapid requests.
func setupGatekeepContainer(t *testing.T, extraEnv map[string]string) (string, func()) {
	t.Helper()
	ctx := context.Background()

	env := map[string]string{
		"GATE_JWT_SECRET":    testJWTSecret,
		"GATE_ISSUER":        testIssuer,
		"GATE_DATABASE_FILE": "/gatekeep.db",
		"GATE_PEPPER_FILE":   "/pepper",
		"GATE_APP_NAME":      "Gatekeep E2E",
		"ENV":                "test",
		"LOG_LEVEL":          "info",
		"LOG_FORMAT":         "json",
		// Increase rate limits for E2E tests to prevent test failures
		"RATELIMIT_STRICT_REQUESTS":   "1000",
		"RATELIMIT_STRICT_WINDOW_SEC": "60",
		"RATELIMIT_STRICT_BURST":      "1000",
		"RATELIMIT_MODERATE_REQUESTS": "1000",
		"RATELIMIT_MODERATE_BURST":    "1000",
	}
	for k, v := range extraEnv {
		env[k] = v
	}

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env:          env,
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// mintAdminToken signs a bearer token with the shared secret the container
// was started with, the same way an operator would mint one out of band.
func mintAdminToken(t *testing.T, scopes ...string) string {
	t.Helper()

	signer := &jwtx.HS256Signer{
		Secret: []byte(testJWTSecret),
		Issuer: testIssuer,
	}

	token, err := signer.Sign("admin-e2e", scopes, time.Hour)
	require.NoError(t, err)
	return token
}

// adminClient returns a client holding a token with full admin scopes.
func adminClient(t *testing.T, baseURL string) *gatesdk.Client {
	t.Helper()

	c := gatesdk.NewClient(baseURL)
	c.AdminToken = mintAdminToken(t, "admin:read", "admin:write")
	return c
}

// requireAPIError asserts err is an API error with the given status.
func requireAPIError(t *testing.T, err error, statusCode int, context string) {
	t.Helper()

	require.Error(t, err, context)
	var apiErr *gatesdk.APIError
	require.ErrorAs(t, err, &apiErr, context)
	require.Equal(t, statusCode, apiErr.StatusCode, context)
}
