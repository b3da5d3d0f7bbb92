package api_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/issue-battleships/internal/api"
	"github.com/mcoot/issue-battleships/internal/testutil"
)

func TestServerConfigFromEnv(t *testing.T) {
	cfg, err := api.ServerConfigFromEnv(func(k string) string {
		return map[string]string{api.EnvHost: "127.0.0.1", api.EnvPort: "9090"}[k]
	})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, api.DefaultServerConfig().ShutdownTimeout, cfg.ShutdownTimeout)

	defaults, err := api.ServerConfigFromEnv(func(string) string { return "" })
	require.NoError(t, err)
	assert.Equal(t, 8080, defaults.Port)

	for _, bad := range []string{"http", "-1", "70000"} {
		_, err := api.ServerConfigFromEnv(func(k string) string {
			if k == api.EnvPort {
				return bad
			}
			return ""
		})
		assert.Error(t, err, bad)
	}
}

func TestServerServesAndShutsDown(t *testing.T) {
	ts := newTestServer(t)
	cfg := api.DefaultServerConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 0
	server := api.NewServer(ts.handler, cfg, testutil.NopLogger())
	require.NoError(t, server.Listen())

	done := make(chan error, 1)
	go func() { done <- server.Start() }()

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get("http://" + server.Addr() + "/api/v1/health")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, server.Shutdown(context.Background()))
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
