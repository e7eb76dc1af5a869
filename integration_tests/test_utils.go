//go:build integration
// +build integration

package integration_tests

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/conneroisu/panelkit/internal/config"
	"github.com/conneroisu/panelkit/internal/server"
	"github.com/stretchr/testify/require"
)

// HealthResponse represents the structure of health check response
type HealthResponse struct {
	Status  string                 `json:"status"`
	Version string                 `json:"version"`
	Checks  map[string]interface{} `json:"checks"`
}

// freePort asks the kernel for a port nothing is listening on.
func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

// startServer runs a panelkit server over contentDir on a free port and
// returns its base URL once /health answers.
func startServer(t *testing.T, contentDir string) string {
	t.Helper()

	cfg := config.Default()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = freePort(t)
	cfg.Docs.ContentDir = contentDir
	cfg.Development.HotReload = true

	srv := server.New(cfg)
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start(ctx) }()

	t.Cleanup(func() {
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		_ = srv.Shutdown(shutdownCtx)
		cancel()
		<-errCh
	})

	baseURL := "http://" + net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	require.NoError(t, waitForHealthy(baseURL, 10*time.Second))
	return baseURL
}

// waitForHealthy polls /health until it reports healthy or timeout passes.
func waitForHealthy(baseURL string, timeout time.Duration) error {
	client := &http.Client{Timeout: time.Second}
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		resp, err := client.Get(baseURL + "/health")
		if err == nil {
			var health HealthResponse
			decodeErr := json.NewDecoder(resp.Body).Decode(&health)
			resp.Body.Close()
			if decodeErr == nil && health.Status == "healthy" {
				return nil
			}
		}
		time.Sleep(50 * time.Millisecond)
	}
	return fmt.Errorf("server at %s not healthy after %s", baseURL, timeout)
}
