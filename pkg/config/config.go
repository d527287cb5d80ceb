// Copyright (C) 2025 SAGE-X Project
//
// This file is part of sage-msgsig-go.
//
// sage-msgsig-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// sage-msgsig-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with sage-msgsig-go.  If not, see <https://www.gnu.org/licenses/>.

// Package config provides YAML and environment based configuration for
// request signing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. MSGSIG_LOG_LEVEL=debug.
const EnvPrefix = "MSGSIG"

// Config is the root configuration.
type Config struct {
	// AppName optional logical name used in log output
	AppName string `mapstructure:"app_name"`

	// Log holds logging configuration
	Log LogConfig `mapstructure:"log"`

	// Signing controls which request parts are signed and how
	Signing SigningConfig `mapstructure:"signing"`

	// Keys locates the install and account keys
	Keys KeysConfig `mapstructure:"keys"`
}

// LogConfig defines logger settings.
type LogConfig struct {
	// Level: debug, info, warn, error
	Level string `mapstructure:"level"`
	// Format: console or json
	Format string `mapstructure:"format"`
	// Outputs: list of outputs: stdout, stderr, or file paths
	Outputs []string `mapstructure:"outputs"`

	// Rotation controls file rotation when writing to files
	Rotation RotationConfig `mapstructure:"rotation"`
	// Development toggles development-friendly logging options
	Development bool `mapstructure:"development"`
}

// RotationConfig controls log file rotation for file outputs.
type RotationConfig struct {
	Enable     bool   `mapstructure:"enable"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// SigningConfig is the signing policy. See SigningConfig.Factory.
type SigningConfig struct {
	// Components always signed, in order
	Components []string `mapstructure:"components"`
	// TokenHeader names the attestation token header
	TokenHeader string `mapstructure:"token_header"`
	// UseInstallKey selects install-key (ECDSA) over account-key (HMAC) signing
	UseInstallKey bool `mapstructure:"use_install_key"`
	// AddCreated emits the "created" parameter
	AddCreated bool `mapstructure:"add_created"`
	// ExpiresLifetimeSeconds emits "expires" when positive
	ExpiresLifetimeSeconds int64 `mapstructure:"expires_lifetime_seconds"`
	// AddTokenHeader signs the token header when present
	AddTokenHeader bool `mapstructure:"add_token_header"`
	// OptionalHeaders are signed when present
	OptionalHeaders []string `mapstructure:"optional_headers"`
	// Digest configures Content-Digest
	Digest DigestConfig `mapstructure:"digest"`
	// AddNonce emits a random "nonce"
	AddNonce bool `mapstructure:"add_nonce"`
	// KeyID and Tag are emitted when non-empty
	KeyID string `mapstructure:"keyid"`
	Tag   string `mapstructure:"tag"`
}

// DigestConfig controls the body digest. An empty algorithm disables it.
type DigestConfig struct {
	Algorithm string `mapstructure:"algorithm"`
	Required  bool   `mapstructure:"required"`
}

// KeysConfig locates signing keys. The account secret is usually supplied
// through MSGSIG_KEYS_ACCOUNT_SECRET rather than a file.
type KeysConfig struct {
	// InstallKeyFile is a PEM encoded P-256 private key
	InstallKeyFile string `mapstructure:"install_key_file"`
	// AccountSecret is the shared HMAC secret
	AccountSecret string `mapstructure:"account_secret"`
}

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		AppName: "msgsig",
		Log: LogConfig{
			Level:       "info",
			Format:      "console",
			Outputs:     []string{"stderr"},
			Development: false,
			Rotation: RotationConfig{
				Enable:     false,
				Filename:   "logs/msgsig.log",
				MaxSizeMB:  50,
				MaxBackups: 3,
				MaxAgeDays: 28,
				Compress:   true,
			},
		},
		Signing: SigningConfig{
			Components:             []string{"@method", "@target-uri"},
			TokenHeader:            "approov-token",
			UseInstallKey:          true,
			AddCreated:             true,
			ExpiresLifetimeSeconds: 15,
			AddTokenHeader:         true,
			OptionalHeaders:        []string{"authorization", "content-length", "content-type"},
			Digest:                 DigestConfig{Algorithm: "sha-256", Required: false},
		},
	}
}

// Load reads configuration from the provided path (if non-empty),
// otherwise it searches common locations and supports environment overrides.
// Environment variables use the prefix MSGSIG and `.`/`-` are replaced with `_`.
// Example: MSGSIG_SIGNING_USE_INSTALL_KEY=false
func Load(path string) (*Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// seed defaults for viper so env-only configs work
	v.SetDefault("app_name", cfg.AppName)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("log.outputs", cfg.Log.Outputs)
	v.SetDefault("log.development", cfg.Log.Development)
	v.SetDefault("log.rotation.enable", cfg.Log.Rotation.Enable)
	v.SetDefault("log.rotation.filename", cfg.Log.Rotation.Filename)
	v.SetDefault("log.rotation.max_size_mb", cfg.Log.Rotation.MaxSizeMB)
	v.SetDefault("log.rotation.max_backups", cfg.Log.Rotation.MaxBackups)
	v.SetDefault("log.rotation.max_age_days", cfg.Log.Rotation.MaxAgeDays)
	v.SetDefault("log.rotation.compress", cfg.Log.Rotation.Compress)
	// Signing defaults
	v.SetDefault("signing.components", cfg.Signing.Components)
	v.SetDefault("signing.token_header", cfg.Signing.TokenHeader)
	v.SetDefault("signing.use_install_key", cfg.Signing.UseInstallKey)
	v.SetDefault("signing.add_created", cfg.Signing.AddCreated)
	v.SetDefault("signing.expires_lifetime_seconds", cfg.Signing.ExpiresLifetimeSeconds)
	v.SetDefault("signing.add_token_header", cfg.Signing.AddTokenHeader)
	v.SetDefault("signing.optional_headers", cfg.Signing.OptionalHeaders)
	v.SetDefault("signing.digest.algorithm", cfg.Signing.Digest.Algorithm)
	v.SetDefault("signing.digest.required", cfg.Signing.Digest.Required)
	v.SetDefault("signing.add_nonce", cfg.Signing.AddNonce)
	v.SetDefault("signing.keyid", cfg.Signing.KeyID)
	v.SetDefault("signing.tag", cfg.Signing.Tag)
	// Keys defaults
	v.SetDefault("keys.install_key_file", cfg.Keys.InstallKeyFile)
	v.SetDefault("keys.account_secret", cfg.Keys.AccountSecret)

	// Choose config file
	if path == "" {
		// Allow override via env var
		if envPath := os.Getenv(EnvPrefix + "_CONFIG"); envPath != "" {
			path = envPath
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		// Search common locations with base name `msgsig`
		v.SetConfigName("msgsig")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".msgsig"))
		}
	}

	// Read config file if present; if not found, continue with defaults/env
	if err := v.ReadInConfig(); err != nil {
		var viperConfigFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &viperConfigFileNotFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	lvl := strings.ToLower(strings.TrimSpace(c.Log.Level))
	switch lvl {
	case "debug", "info", "warn", "warning", "error":
		// ok
	default:
		return fmt.Errorf("invalid log.level: %q", c.Log.Level)
	}

	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if len(c.Log.Outputs) == 0 {
		c.Log.Outputs = []string{"stderr"}
	}
	if c.Signing.ExpiresLifetimeSeconds < 0 {
		return fmt.Errorf("invalid signing.expires_lifetime_seconds: %d", c.Signing.ExpiresLifetimeSeconds)
	}
	c.Signing.TokenHeader = strings.ToLower(strings.TrimSpace(c.Signing.TokenHeader))
	for i, h := range c.Signing.OptionalHeaders {
		c.Signing.OptionalHeaders[i] = strings.ToLower(strings.TrimSpace(h))
	}
	return nil
}

// MustLoad is a convenience that panics on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}
