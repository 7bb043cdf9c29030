// Package config loads forge settings from a TOML file, an optional .env
// file and the environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Store drivers.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverLibSQL   = "libsql"
	DriverPostgres = "postgres"
)

// Defaults.
const (
	DefaultDriver     = DriverFile
	DefaultCoachModel = "claude-sonnet-4-20250514"
	DefaultTimeout    = 30 * time.Second
	DefaultAddr       = ":8080"
	devDatabase       = "forge-dev.db"
)

type Config struct {
	Store  StoreConfig  `toml:"store"`
	Coach  CoachConfig  `toml:"coach"`
	Server ServerConfig `toml:"server"`
	SSO    SSOConfig    `toml:"sso"`
}

type StoreConfig struct {
	Driver  string `toml:"driver"`
	DataDir string `toml:"data_dir"`
	DSN     string `toml:"dsn"` // sqlite path, libsql URL or postgres connection string.
}

type CoachConfig struct {
	Enabled bool     `toml:"enabled"`
	BaseURL string   `toml:"base_url"`
	APIKey  string   `toml:"api_key"`
	Model   string   `toml:"model"`
	Timeout Duration `toml:"timeout"`
}

type ServerConfig struct {
	Addr   string `toml:"addr"`
	WebDir string `toml:"web_dir"`
}

// SSOConfig is the OpenID Connect provider for browser sign-in.
type SSOConfig struct {
	Issuer       string `toml:"issuer"`
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURL  string `toml:"redirect_url"`
}

// Enabled reports whether an issuer and client are configured.
func (c SSOConfig) Enabled() bool {
	return c.Issuer != "" && c.ClientID != ""
}

// Duration reads TOML strings such as "30s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Returns the default config file path, ~/.config/forge/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "forge", "config.toml"), nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "forge-data"
	}
	return filepath.Join(home, ".local", "share", "forge")
}

// Default returns the configuration used when no file or environment
// overrides exist.
func Default() Config {
	return Config{
		Store:  StoreConfig{Driver: DefaultDriver, DataDir: defaultDataDir()},
		Coach:  CoachConfig{Enabled: true, Model: DefaultCoachModel, Timeout: Duration{DefaultTimeout}},
		Server: ServerConfig{Addr: DefaultAddr},
	}
}

// Load reads the config file at path (the default path when empty), then
// .env, then environment overrides. A missing file or .env is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("FORGE_STORE_DRIVER"); v != "" {
		c.Store.Driver = strings.ToLower(v)
	}
	if v := os.Getenv("FORGE_DATA_DIR"); v != "" {
		c.Store.DataDir = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Store.Driver = DriverPostgres
		c.Store.DSN = v
	}
	if v := os.Getenv("TURSO_DATABASE_URL"); v != "" {
		c.Store.Driver = DriverLibSQL
		c.Store.DSN = v
		if token := os.Getenv("TURSO_AUTH_TOKEN"); token != "" && !strings.Contains(v, "authToken=") {
			c.Store.DSN = v + "?authToken=" + token
		}
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		c.Coach.APIKey = v
	}
	if v := os.Getenv("FORGE_COACH_MODEL"); v != "" {
		c.Coach.Model = v
	}
	if v := os.Getenv("ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("WEB_DIR"); v != "" {
		c.Server.WebDir = v
	}
	if v := os.Getenv("OIDC_ISSUER"); v != "" {
		c.SSO.Issuer = v
	}
	if v := os.Getenv("OIDC_CLIENT_ID"); v != "" {
		c.SSO.ClientID = v
	}
	if v := os.Getenv("OIDC_CLIENT_SECRET"); v != "" {
		c.SSO.ClientSecret = v
	}
	if v := os.Getenv("OIDC_REDIRECT_URL"); v != "" {
		c.SSO.RedirectURL = v
	}

	// Check for a DEV_MODE environment variable.
	if os.Getenv("DEV_MODE") == "true" {
		c.Store.Driver = DriverSQLite
		c.Store.DSN = filepath.Join(c.Store.DataDir, devDatabase)
	}
}

// Validate checks that the selected driver has what it needs.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverMemory:
	case DriverFile:
		if c.Store.DataDir == "" {
			return errors.New("config: store.data_dir is required for the file driver")
		}
	case DriverSQLite:
		if c.Store.DSN == "" {
			if c.Store.DataDir == "" {
				return errors.New("config: store.dsn or store.data_dir is required for sqlite")
			}
			c.Store.DSN = filepath.Join(c.Store.DataDir, "forge.db")
		}
	case DriverLibSQL, DriverPostgres:
		if c.Store.DSN == "" {
			return fmt.Errorf("config: store.dsn is required for the %s driver", c.Store.Driver)
		}
	default:
		return fmt.Errorf("config: unknown store driver %q", c.Store.Driver)
	}
	if c.Coach.Timeout.Duration <= 0 {
		c.Coach.Timeout = Duration{DefaultTimeout}
	}
	if c.Coach.Model == "" {
		c.Coach.Model = DefaultCoachModel
	}
	if c.SSO.Enabled() && c.SSO.RedirectURL == "" {
		return errors.New("config: sso.redirect_url is required when sso is configured")
	}
	return nil
}
