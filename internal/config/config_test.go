package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfigFile(t, `
jwt:
  secret: test-secret
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Mode)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "schoolroster", cfg.Database.DBName)
	assert.Equal(t, "1h", cfg.JWT.AccessTokenExpiration)
	assert.Equal(t, 100, cfg.Transition.ExecuteBatchSize)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfigFileOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "9090"
  mode: production
jwt:
  secret: test-secret
transition:
  execute_batch_size: 25
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Mode)
	assert.Equal(t, 25, cfg.Transition.ExecuteBatchSize)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "9090"
jwt:
  secret: file-secret
`)

	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("TRANSITION_EXECUTE_BATCH_SIZE", "50")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, 50, cfg.Transition.ExecuteBatchSize)
}

func TestLoadConfigMissingFileUsesEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-only-secret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "env-only-secret", cfg.JWT.Secret)
}

func TestLoadConfigValidation(t *testing.T) {
	t.Run("missing jwt secret", func(t *testing.T) {
		path := writeConfigFile(t, `
server:
  port: "8080"
`)
		_, err := LoadConfig(path)
		assert.Error(t, err)
	})

	t.Run("bad token expiration", func(t *testing.T) {
		path := writeConfigFile(t, `
jwt:
  secret: test-secret
  access_token_expiration: soon
`)
		_, err := LoadConfig(path)
		assert.Error(t, err)
	})

	t.Run("non-positive batch size", func(t *testing.T) {
		path := writeConfigFile(t, `
jwt:
  secret: test-secret
transition:
  execute_batch_size: -1
`)
		_, err := LoadConfig(path)
		assert.Error(t, err)
	})
}
