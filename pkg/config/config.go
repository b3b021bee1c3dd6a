// Copyright (C) 2025, ADXYZ Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Defaults applied when no config file or environment override is set.
const (
	DefaultListenAddr      = ":8080"
	DefaultEnvironment     = "development"
	DefaultLogLevel        = "info"
	DefaultArchiveCapacity = 256
)

// DefaultAllowedOrigins is the CORS allowlist used when none is configured.
var DefaultAllowedOrigins = []string{"http://localhost:3000"}

// Config is the top-level yieldplan service configuration.
type Config struct {
	ListenAddr      string   `mapstructure:"listen_addr"`
	Environment     string   `mapstructure:"environment"`
	LogLevel        string   `mapstructure:"log_level"`
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	ArchiveCapacity int      `mapstructure:"archive_capacity"`
}

// Production reports whether the service runs in production mode.
func (c *Config) Production() bool {
	return c.Environment == "production"
}

// Load reads configuration from the given yaml file (optional) with
// YIELDPLAN_* environment variables taking precedence, and returns a
// Config with all defaults applied. A missing file is not an error.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("listen_addr", DefaultListenAddr)
	v.SetDefault("environment", DefaultEnvironment)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("allowed_origins", DefaultAllowedOrigins)
	v.SetDefault("archive_capacity", DefaultArchiveCapacity)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("yieldplan")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("YIELDPLAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
