package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))

	_, err := Load()
	assert.Error(t, err, "an explicit CONFIG_FILE must exist")

	t.Setenv("CONFIG_FILE", "")
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "firebase", cfg.AuthProvider)
	assert.Equal(t, "firebase", cfg.StoreDriver)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, time.Hour, cfg.ReconcileInterval)
	assert.Equal(t, "/metrics", cfg.MetricsPath)
	assert.False(t, cfg.AppCheckEnabled)
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
SERVER_PORT = 9090
OPERATOR_UID = "file-uid"
STORE_DRIVER = "memory"
APP_CHECK_ENABLED = true
CACHE_TTL = "2m"
RECONCILE_INTERVAL = 30
CORS_ALLOWED_ORIGINS = ["https://a.fr", "https://b.fr"]
`), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("OPERATOR_UID", "env-uid")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "env-uid", cfg.OperatorUID)
	assert.Equal(t, "memory", cfg.StoreDriver)
	assert.True(t, cfg.AppCheckEnabled)
	assert.Equal(t, 2*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 30*time.Second, cfg.ReconcileInterval)
	assert.Equal(t, []string{"https://a.fr", "https://b.fr"}, cfg.CORSAllowedOrigins)
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		AuthProvider:  "jwt",
		StoreDriver:   "memory",
		StorageDriver: "none",
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPERATOR_UID")
	assert.Contains(t, err.Error(), "ENCRYPTION_KEY")
	assert.Contains(t, err.Error(), "JWT_SECRET")

	cfg.OperatorUID = "op"
	cfg.EncryptionKey = "k"
	cfg.JWTSecret = "s"
	assert.NoError(t, cfg.Validate())
	assert.False(t, cfg.UsesFirebase())

	cfg.StoreDriver = "mongo"
	assert.ErrorContains(t, cfg.Validate(), "STORE_DRIVER")

	cfg.StoreDriver = "postgres"
	assert.ErrorContains(t, cfg.Validate(), "DATABASE_URL")
}
