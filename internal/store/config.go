// Package store owns the client-side state that never touches the backend:
// the config file (base URL) and the local SQLite store for settings and
// daily reflections.
package store

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the read-only client configuration.
type Config struct {
	BaseURL string
}

// ConfigDir resolves the momentum config directory.
func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.momentum).
	if v := strings.TrimSpace(os.Getenv("MOMENTUM_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".momentum"), nil
}

// LoadConfig reads config.yaml from the config dir, layered under MOMENTUM_
// environment variables. A missing config file is fine; defaults apply.
func LoadConfig() (Config, error) {
	dir, err := ConfigDir()
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetDefault("base_url", "http://localhost:5000")
	v.SetConfigName("config") // config.yaml
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix("MOMENTUM")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return Config{}, err
			}
		}
	}

	return Config{BaseURL: v.GetString("base_url")}, nil
}
