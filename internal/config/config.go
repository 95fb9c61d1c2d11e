// Package config loads sozin configuration and builds the logger from it.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from file and environment variables.
// When configPath is empty, a sozin.yaml is searched in the working
// directory, ./configs, and /etc/sozin; a missing file is not an error.
func Load(configPath string) (*viper.Viper, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("scan.timeout", "10s")
	v.SetDefault("scan.backend", "iw")
	v.SetDefault("watch.interval", "15s")
	v.SetDefault("history.path", "./sozin-history.db")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("sozin")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/sozin")
	}

	// Environment variable support: SOZIN_SCAN_TIMEOUT=30s
	v.SetEnvPrefix("SOZIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && configPath == "" {
			// No config file is fine; defaults and env vars apply.
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}
