package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  api_key: "secret"
database:
  host: "db"
  name: "piv"
  user: "piv"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 20, cfg.Database.MaxConns)
	assert.Equal(t, "piv-balanced", cfg.Pipeline.Preset)
	assert.Equal(t, 0.8, cfg.Pipeline.MinFaceConfidence)
	assert.Equal(t, 3, cfg.Pipeline.RoiStartLevel)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_ExplicitValuesAreNotOverwritten(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
pipeline:
  roi_start_level: 1
  min_face_confidence: 0.95
logging:
  level: "debug"
  format: "text"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 1, cfg.Pipeline.RoiStartLevel)
	assert.Equal(t, 0.95, cfg.Pipeline.MinFaceConfidence)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoad_EnvOverridesWinOverFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  api_key: "from-file"
`)

	t.Setenv("PIV_SERVER_PORT", "7777")
	t.Setenv("PIV_API_KEY", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7777, cfg.Server.Port)
	assert.Equal(t, "from-env", cfg.Server.APIKey)
}

func TestLoad_MissingFileIsAnError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, Name: "piv", User: "u", Password: "p"}
	assert.Equal(t, "postgres://u:p@db:5432/piv?sslmode=disable", d.DSN())
}
