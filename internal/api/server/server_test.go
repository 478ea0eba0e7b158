package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgserver "github.com/DjordjeVuckovic/title-hunter/pkg/server"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("USE_HTTP2", "true")
	t.Setenv("CORS_ORIGINS", " http://a.test , ,http://b.test")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.UseHttp2)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CorsOrigins)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, []string{"*"}, cfg.CorsOrigins)
	assert.Equal(t, GracefulShutdownTimeout, cfg.ShutdownTimeout)
}

func TestLoadConfig_InvalidPort(t *testing.T) {
	for _, port := range []string{"http", "0", "70000"} {
		t.Setenv("PORT", port)
		_, err := LoadConfig()
		assert.Error(t, err, port)
	}
}

func TestLoadConfig_IgnoresDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("USE_HTTP2=true\n"), 0o600))
	t.Setenv("ENV_PATH", path)
	t.Setenv("USE_HTTP2", "")
	require.NoError(t, os.Unsetenv("USE_HTTP2"))

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.False(t, cfg.UseHttp2)
	_, set := os.LookupEnv("USE_HTTP2")
	assert.False(t, set)
}

func TestSetupHealthChecks(t *testing.T) {
	healthy := true
	check := pkgserver.HealthFunc(func(context.Context) error {
		if healthy {
			return nil
		}
		return errors.New("catalog down")
	})

	s := New(&Config{Port: "0"}, check).SetupErrorHandler().SetupHealthChecks("/health")
	defer s.cancel()

	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	healthy = false
	rec = httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
