// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/sseindex/sseindex-server/internal/store"
)

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// HTTPConfig holds configuration for the server's HTTP endpoint.
type HTTPConfig struct {
	IP   string `mapstructure:"ip"`
	Port string `mapstructure:"port"`
}

// ListenAddress returns the concatenated IP:Port address for listening.
func (h *HTTPConfig) ListenAddress() string {
	return h.IP + ":" + h.Port
}

func (h *HTTPConfig) validate() error {
	if h.IP == "" {
		return errors.New("the server's HTTP IP address is required")
	}
	if h.Port == "" {
		return errors.New("the server's HTTP port is required")
	}
	return nil
}

// DatabaseConfig holds the store's driver and connection string.
type DatabaseConfig struct {
	Type string `mapstructure:"type"`
	DSN  string `mapstructure:"dsn"`
}

func (dc *DatabaseConfig) open() (*store.DB, error) {
	if dc.DSN == "" {
		return nil, errors.New("database configuration error: dsn is required")
	}

	dc.Type = strings.ToLower(dc.Type)
	if dc.Type != "sqlite" && dc.Type != "postgres" {
		return nil, fmt.Errorf("unsupported database type: %s (must be 'sqlite' or 'postgres')", dc.Type)
	}

	return store.Open(dc.Type, dc.DSN)
}

// IndexConfig holds the parameters of the encrypted index: its table
// size M. The 0.9 load-factor ceiling above which the builder refuses to
// run is a cryptographic invariant of the scheme, not a deployment
// choice, so it is not configurable here (see internal/index.Builder).
type IndexConfig struct {
	M uint64 `mapstructure:"m"`
}

func (ic *IndexConfig) validate() error {
	if ic.M == 0 {
		return errors.New("index configuration error: m (table size) is required")
	}
	return nil
}

// SSEServerConfig is the top-level shape of the server configuration file.
type SSEServerConfig struct {
	Log   LogConfig      `mapstructure:"log"`
	DB    DatabaseConfig `mapstructure:"db"`
	HTTP  HTTPConfig     `mapstructure:"http"`
	Index IndexConfig    `mapstructure:"index"`
}

// loadConfigFile decodes whatever config file viper has already read (see
// rootCmdLoadConfig) into an SSEServerConfig. Unlike a subcommand's own
// flags, the file's keys are nested ("http.port", not "port"), so it is
// decoded directly from viper's settings tree with mapstructure rather than
// through viper's own (flag-oriented) Get* accessors. Per-flag values,
// applied by the caller afterward, take precedence over whatever the file
// sets.
func loadConfigFile() (SSEServerConfig, error) {
	var cfg SSEServerConfig
	if viper.ConfigFileUsed() == "" {
		return cfg, nil
	}
	if err := mapstructure.Decode(viper.AllSettings(), &cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration file: %w", err)
	}
	return cfg, nil
}
