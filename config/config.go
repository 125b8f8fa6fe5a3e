/* config.go
 * Contains the environment configuration shared by the bot and the demo. Values come from the process environment,
 * optionally seeded from .env files
 */

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every setting read from the environment
type Config struct {
	DiscordProdToken string `env:"DISCORD_PROD_TOKEN"`
	DiscordBetaToken string `env:"DISCORD_BETA_TOKEN"`
	MongoURI         string `env:"MONGO_PROD_URI"`
	Database         string `env:"MONGO_DATABASE" envDefault:"pentathlon"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"info"`
}

// ParseEnv loads configuration from environment variables into target
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads the configuration. Files are read in order with earlier files winning, and the process environment
// wins over all of them. Missing files are skipped.
// Preconditions: Receives zero or more .env file paths
// Postconditions: Returns the parsed Config, or an error if a file is malformed or a value has the wrong type
func Load(files ...string) (Config, error) {
	merged := make(map[string]string)
	for _, f := range files {
		values, err := godotenv.Read(f)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Config{}, fmt.Errorf("read %s: %w", f, err)
		}
		for k, v := range values {
			if _, ok := merged[k]; !ok {
				merged[k] = v
			}
		}
	}
	for k, v := range env.ToMap(os.Environ()) {
		merged[k] = v
	}

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: merged}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// DiscordToken picks the beta token in test mode and the production token otherwise
func (c Config) DiscordToken(test bool) (string, error) {
	name, token := "DISCORD_PROD_TOKEN", c.DiscordProdToken
	if test {
		name, token = "DISCORD_BETA_TOKEN", c.DiscordBetaToken
	}
	if token == "" {
		return "", fmt.Errorf("%s is not set", name)
	}
	return token, nil
}

// Level converts LogLevel into a slog level. Accepts debug, info, warn and error in any case
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return level, nil
}
