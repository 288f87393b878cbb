package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET_KEY", "a-very-secret-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "HS256", cfg.Auth.Jwt.Algorithm)
	assert.Equal(t, 30*time.Minute, cfg.Auth.Jwt.Expiry())
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, "memory", cfg.EventBus.Driver)
	assert.Equal(t, 10*time.Second, cfg.Server.RequestTimeout)
	assert.False(t, cfg.TestMode)
}

func TestLoad_FromEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env.unit")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"AUTH_JWT_SECRET_KEY=file-secret\nAUTH_JWT_EXPIRY_MINUTES=5\nAUTH_JWT_ALGORITHM=HS512\nTEST_MODE=true\n",
	), 0o600))
	t.Cleanup(func() {
		for _, k := range []string{"AUTH_JWT_SECRET_KEY", "AUTH_JWT_EXPIRY_MINUTES", "AUTH_JWT_ALGORITHM", "TEST_MODE"} {
			os.Unsetenv(k) //nolint:errcheck
		}
	})

	cfg, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, "file-secret", cfg.Auth.Jwt.Secret)
	assert.Equal(t, 5*time.Minute, cfg.Auth.Jwt.Expiry())
	assert.Equal(t, "HS512", cfg.Auth.Jwt.Algorithm)
	assert.True(t, cfg.TestMode)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET_KEY", "")
	os.Unsetenv("AUTH_JWT_SECRET_KEY") //nolint:errcheck

	_, err := Load()
	assert.Error(t, err)
}

func TestMaskValue(t *testing.T) {
	assert.Equal(t, "", maskValue(""))
	assert.Equal(t, "****", maskValue("abc"))
	assert.Equal(t, "po****able", maskValue("postgres://x@y/db?sslmode=disable"))
}

func TestFindEnvFile(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env.find"), []byte("X=1\n"), 0o600))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(nested))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	path, err := FindEnvFile(".env.find")
	require.NoError(t, err)
	assert.Equal(t, ".env.find", filepath.Base(path))
	assert.FileExists(t, path)

	_, err = FindEnvFile(".env.absent")
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = FindEnvFile(filepath.Join(root, "missing.env"))
	assert.Error(t, err)
}
