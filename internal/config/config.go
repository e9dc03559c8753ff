// Package config loads client configuration from a config file and
// FTEAM_-prefixed environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the client needs to reach the five backend
// services and keep its local session.
type Config struct {
	AuthURL   string `mapstructure:"auth_url"`
	UsersURL  string `mapstructure:"users_url"`
	GamesURL  string `mapstructure:"games_url"`
	FramesURL string `mapstructure:"frames_url"`
	MarketURL string `mapstructure:"market_url"`

	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
	SessionPath string        `mapstructure:"session_path"`
	LogLevel    string        `mapstructure:"log_level"`
	Environment string        `mapstructure:"environment"`
}

// Load reads configuration. Precedence: environment variables
// (FTEAM_AUTH_URL etc.), then the optional config file, then defaults.
// The config file is looked up at --config / $FTEAM_CONFIG or
// ~/.config/fteam/config.yaml; a missing file is fine.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	// Register keys so AutomaticEnv feeds them through Unmarshal.
	for _, key := range []string{"auth_url", "users_url", "games_url", "frames_url", "market_url"} {
		v.SetDefault(key, "")
	}
	v.SetDefault("http_timeout", 30*time.Second)
	v.SetDefault("log_level", "info")
	v.SetDefault("environment", "development")
	v.SetDefault("session_path", defaultSessionPath())

	v.SetEnvPrefix("FTEAM")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile == "" {
		configFile = os.Getenv("FTEAM_CONFIG")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigDir())
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that every service endpoint is configured.
func (c *Config) Validate() error {
	missing := []string{}
	for name, value := range map[string]string{
		"auth_url":   c.AuthURL,
		"users_url":  c.UsersURL,
		"games_url":  c.GamesURL,
		"frames_url": c.FramesURL,
		"market_url": c.MarketURL,
	} {
		if value == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing service endpoints: %s", strings.Join(missing, ", "))
	}
	return nil
}

func defaultConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "fteam")
}

func defaultSessionPath() string {
	return filepath.Join(defaultConfigDir(), "session.json")
}
