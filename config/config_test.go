/* config_test.go
 * Contains unit tests for config.go
 */

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envTestConfig struct {
	Port int `env:"PENTATHLON_TEST_PORT" envDefault:"123"`
}

// writeEnvFile writes a .env file into a temporary directory and returns its path
func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// region ParseEnv tests

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig
	require.NoError(t, ParseEnv(&cfg))
	assert.Equal(t, 123, cfg.Port)
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("PENTATHLON_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	assert.ErrorContains(t, err, "parse env:")
}

// endregion

// region Load tests

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MONGO_DATABASE", "")
	os.Unsetenv("MONGO_DATABASE")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "pentathlon", cfg.Database)
}

func TestLoad_FileThenEnvironment(t *testing.T) {
	t.Setenv("DISCORD_BETA_TOKEN", "")
	os.Unsetenv("DISCORD_BETA_TOKEN")
	path := writeEnvFile(t, "DISCORD_BETA_TOKEN=beta-from-file\nMONGO_PROD_URI=mongodb://file\n")
	t.Setenv("MONGO_PROD_URI", "mongodb://env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "beta-from-file", cfg.DiscordBetaToken)
	assert.Equal(t, "mongodb://env", cfg.MongoURI)
	_, set := os.LookupEnv("DISCORD_BETA_TOKEN")
	assert.False(t, set, "Load must not modify the process environment")
}

func TestLoad_EarlierFileWins(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	os.Unsetenv("LOG_LEVEL")
	first := writeEnvFile(t, "LOG_LEVEL=debug\n")
	second := writeEnvFile(t, "LOG_LEVEL=error\n")

	cfg, err := Load(first, second)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

// endregion

// region helper tests

func TestDiscordToken(t *testing.T) {
	cfg := Config{DiscordProdToken: "prod", DiscordBetaToken: "beta"}

	token, err := cfg.DiscordToken(false)
	require.NoError(t, err)
	assert.Equal(t, "prod", token)

	token, err = cfg.DiscordToken(true)
	require.NoError(t, err)
	assert.Equal(t, "beta", token)

	_, err = Config{}.DiscordToken(true)
	assert.ErrorContains(t, err, "DISCORD_BETA_TOKEN is not set")
}

func TestLevel(t *testing.T) {
	level, err := Config{LogLevel: "DEBUG"}.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	level, err = Config{LogLevel: "warn"}.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	_, err = Config{LogLevel: "loud"}.Level()
	assert.ErrorContains(t, err, "invalid LOG_LEVEL")
}

// endregion
