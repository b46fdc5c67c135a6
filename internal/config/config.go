// Package config loads settings from an optional JSON config file with
// sensible defaults for every key.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Load reads seabattle.cfg.json from configDir, if present, on top of the
// defaults. A missing file is not an error; a malformed one is.
func Load(configDir string) error {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("dataDir", "./data")
	viper.SetDefault("botDelayMs", 700)

	viper.SetDefault("db.path", "./data/seabattle.db")

	viper.SetDefault("zk.enabled", false)
	viper.SetDefault("zk.keysDir", "./keys")

	viper.SetConfigName("seabattle.cfg.json")
	viper.SetConfigType("json")
	viper.AddConfigPath(configDir)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}
