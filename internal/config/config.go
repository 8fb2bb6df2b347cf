package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/ochronus/gocatbox/catbox"
	"github.com/sirupsen/logrus"
)

const (
	MinTimeout = 0
	MaxTimeout = 3600
)

// Environment variables that override the config file.
const (
	EnvUserHash = "CATBOX_USERHASH"
	EnvEndpoint = "CATBOX_ENDPOINT"
	EnvLoglevel = "CATBOX_LOGLEVEL"
)

// Config represents the main application configuration
type Config struct {
	Loglevel string       `toml:"loglevel"`
	Catbox   CatboxConfig `toml:"catbox"`
	Relay    RelayConfig  `toml:"relay"`
}

// CatboxConfig holds Catbox API configuration
type CatboxConfig struct {
	UserHash string `toml:"userhash"`
	Endpoint string `toml:"endpoint"`
	// Timeout in seconds. Zero leaves the transport default in place.
	Timeout int `toml:"timeout"`
}

// RelayConfig holds the local relay server configuration
type RelayConfig struct {
	BindAddress string `toml:"bind_address"`
	Port        int    `toml:"port"`
	Username    string `toml:"username"`
	Password    string `toml:"password"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		Loglevel: "info",
		Catbox: CatboxConfig{
			Endpoint: catbox.DefaultEndpoint,
		},
		Relay: RelayConfig{
			BindAddress: "127.0.0.1",
			Port:        8787,
		},
	}
}

// DefaultConfigPath returns the default configuration file path
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".config", "gocatbox")

	return filepath.Join(configDir, "config.toml"), nil
}

// Load loads configuration from a TOML file
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault behaves like Load but returns defaults when the file does
// not exist. Anonymous usage needs no config file at all.
func LoadOrDefault(configPath string) (*Config, error) {
	cfg, err := Load(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// ApplyEnv overrides settings from a dotenv file (if it exists) and then
// from the process environment, which takes precedence.
func (c *Config) ApplyEnv(dotenvPath string) error {
	env := map[string]string{}
	if dotenvPath != "" {
		values, err := godotenv.Read(dotenvPath)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to read %s: %w", dotenvPath, err)
		}
		for k, v := range values {
			env[k] = v
		}
	}
	for _, key := range []string{EnvUserHash, EnvEndpoint, EnvLoglevel} {
		if v, ok := os.LookupEnv(key); ok {
			env[key] = v
		}
	}

	if v, ok := env[EnvUserHash]; ok {
		c.Catbox.UserHash = v
	}
	if v, ok := env[EnvEndpoint]; ok && v != "" {
		c.Catbox.Endpoint = v
	}
	if v, ok := env[EnvLoglevel]; ok && v != "" {
		c.Loglevel = v
	}

	return nil
}

// HTTPTimeout returns the configured request timeout.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.Catbox.Timeout) * time.Second
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if _, err := logrus.ParseLevel(c.Loglevel); err != nil {
		return fmt.Errorf("loglevel must be one of: panic, fatal, error, warn, info, debug, trace")
	}

	if c.Catbox.Endpoint == "" {
		return fmt.Errorf("catbox.endpoint is required")
	}
	u, err := url.ParseRequestURI(c.Catbox.Endpoint)
	if err != nil {
		return fmt.Errorf("catbox.endpoint is invalid: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("catbox.endpoint must be an http or https URL")
	}
	if c.Catbox.Timeout < MinTimeout || c.Catbox.Timeout > MaxTimeout {
		return fmt.Errorf("catbox.timeout must be between %d and %d seconds", MinTimeout, MaxTimeout)
	}

	if c.Relay.Port < 1 || c.Relay.Port > 65535 {
		return fmt.Errorf("relay.port must be between 1 and 65535")
	}
	if (c.Relay.Username == "") != (c.Relay.Password == "") {
		return fmt.Errorf("relay.username and relay.password must be set together")
	}

	return nil
}

// RelayAuthEnabled reports whether the relay requires basic auth.
func (c *Config) RelayAuthEnabled() bool {
	return c.Relay.Username != "" && c.Relay.Password != ""
}
