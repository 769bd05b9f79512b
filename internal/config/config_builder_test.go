package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// setRequiredEnv sets the values validate() cannot default.
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_TOKEN_SIGN_KEY", "sign")
	t.Setenv("APP_HASH_KEY", "hash")
	t.Setenv("STORAGE_DB_DATABASE_URI", "postgres://localhost/images")
}

// ── newConfigBuilder / build ─────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_LaterConfigOverrides verifies that non-zero fields of later
// configs win while zero fields keep earlier values.
func TestBuild_LaterConfigOverrides(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{App: App{Version: "1.0.0", TokenIssuer: "first"}},
		&StructuredConfig{App: App{TokenIssuer: "second"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", cfg.App.Version)
	assert.Equal(t, "second", cfg.App.TokenIssuer)
}

func TestBuild_SliceOverride(t *testing.T) {
	b := newConfigBuilder().withDefaults()
	b.configs = append(b.configs, &StructuredConfig{
		Storage: Storage{Files: Files{AllowedExtensions: []string{"png"}}},
	})

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, []string{"png"}, cfg.Storage.Files.AllowedExtensions)
}

// ── withDefaults ─────────────────────────────────────────────────────────────

func TestWithDefaults(t *testing.T) {
	cfg, err := newConfigBuilder().withDefaults().build()
	require.NoError(t, err)

	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, int64(16<<20), cfg.Server.MaxUploadSize)
	assert.Equal(t, DriverPostgres, cfg.Storage.DB.Driver)
	assert.Equal(t, BackendLocal, cfg.Storage.Files.Backend)
	assert.Equal(t, "uploads", cfg.Storage.Files.UploadDir)
	assert.Equal(t, []string{"jpg", "jpeg", "png"}, cfg.Storage.Files.AllowedExtensions)
	assert.Equal(t, 12*time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, "Mary Jane", cfg.App.AboutName)
	assert.Equal(t, 5*time.Minute, cfg.Workers.SessionCleanupInterval)
}

// ── withEnv ──────────────────────────────────────────────────────────────────

func TestWithEnv_ReadsEnvVars(t *testing.T) {
	t.Setenv("APP_VERSION", "env-version")
	t.Setenv("STORAGE_FILES_UPLOAD_DIR", "/srv/images")

	b := newConfigBuilder().withEnv()

	require.Len(t, b.configs, 1)
	assert.Equal(t, "env-version", b.configs[0].App.Version)
	assert.Equal(t, "/srv/images", b.configs[0].Storage.Files.UploadDir)
}

func TestWithEnv_InvalidValueSetsError(t *testing.T) {
	t.Setenv("APP_TOKEN_DURATION", "not-a-duration")

	b := newConfigBuilder().withEnv()

	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withFlags ────────────────────────────────────────────────────────────────

func TestWithFlags_AppendsConfig(t *testing.T) {
	b := newConfigBuilder().withFlags([]string{"-f", "/tmp/img"})

	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "/tmp/img", b.configs[0].Storage.Files.UploadDir)
}

func TestWithFlags_UnknownFlagSetsError(t *testing.T) {
	b := newConfigBuilder().withFlags([]string{"-unknown"})

	assert.Error(t, b.err)
}

// ── withJSON ─────────────────────────────────────────────────────────────────

func TestWithJSON_NoPathIsNoop(t *testing.T) {
	b := newConfigBuilder().withDefaults().withJSON()

	assert.NoError(t, b.err)
	assert.Len(t, b.configs, 1)
}

func TestWithJSON_LoadsFileFromEarlierConfig(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"app": map[string]any{"version": "json-version"},
	})

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "json-version", b.configs[1].App.Version)
}

func TestWithJSON_MissingFileSetsError(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/does/not/exist.json"})
	b.withJSON()

	assert.Error(t, b.err)
}

// ── GetStructuredConfig ──────────────────────────────────────────────────────

func TestGetStructuredConfig_Priority(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SERVER_ADDRESS", "127.0.0.1:9000")
	path := writeTempJSONConfig(t, map[string]any{
		"app": map[string]any{"about_name": "From JSON"},
	})

	cfg, err := GetStructuredConfig([]string{"-a", "127.0.0.1:9100", "-c", path})
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9100", cfg.Server.HTTPAddress, "flags override env")
	assert.Equal(t, "From JSON", cfg.App.AboutName, "json overrides defaults")
	assert.Equal(t, "sign", cfg.App.TokenSignKey)
	assert.Equal(t, "uploads", cfg.Storage.Files.UploadDir, "default kept")
}

func TestGetStructuredConfig_InvalidWithoutKeys(t *testing.T) {
	t.Setenv("STORAGE_DB_DATABASE_URI", "postgres://localhost/images")

	cfg, err := GetStructuredConfig(nil)
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrInvalidAppConfigs)
}

func TestGetStorageConfig(t *testing.T) {
	t.Setenv("STORAGE_DB_DRIVER", "sqlite3")
	t.Setenv("STORAGE_DB_DATABASE_URI", "file:test.db")

	storage, err := GetStorageConfig()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, storage.DB.Driver)
	assert.Equal(t, "file:test.db", storage.DB.DSN)
}
