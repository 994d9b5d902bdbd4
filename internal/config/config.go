// Package config loads the pipeline's settings from a YAML file with
// environment-variable fallbacks for everything secret.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/sadhuseva/gitaverse/internal/announce"
)

type XConfig struct {
	ConsumerKey    string `yaml:"consumer_key,omitempty"`
	ConsumerSecret string `yaml:"consumer_secret,omitempty"`
	AccessToken    string `yaml:"access_token,omitempty"`
	AccessSecret   string `yaml:"access_secret,omitempty"`
}

type Config struct {
	DBPath  string   `yaml:"db_path,omitempty"`
	SiteURL string   `yaml:"site_url,omitempty"`
	Model   string   `yaml:"model,omitempty"`
	APIKey  string   `yaml:"api_key,omitempty"`
	X       *XConfig `yaml:"x,omitempty"`
}

// Load reads path, or returns defaults when the file does not exist.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Defaults only; everything can come from env.
	case err != nil:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.DBPath == "" {
		c.DBPath = envOr("GITAVERSE_DB", DefaultDBPath())
	}
	if c.SiteURL == "" {
		c.SiteURL = envOr("GITAVERSE_SITE_URL", "https://gitaverse.org")
	}
	if c.Model == "" {
		c.Model = envOr("GITAVERSE_MODEL", "gemini-2.5-flash")
	}
}

// GeminiKey returns the resolved API key (config file or env var).
func (c *Config) GeminiKey() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	return os.Getenv("GEMINI_API_KEY")
}

// XCredentials resolves the announcement credentials, preferring the config
// file and falling back to the X_* env vars the poster has always used.
func (c *Config) XCredentials() announce.Credentials {
	x := c.X
	if x == nil {
		x = &XConfig{}
	}
	return announce.Credentials{
		ConsumerKey:    orEnv(x.ConsumerKey, "X_CONSUMER_KEY"),
		ConsumerSecret: orEnv(x.ConsumerSecret, "X_CONSUMER_SECRET"),
		AccessToken:    orEnv(x.AccessToken, "X_ACCESS_TOKEN"),
		AccessSecret:   orEnv(x.AccessSecret, "X_ACCESS_SECRET"),
	}
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "gitaverse", "config.yaml")
}

func DefaultDBPath() string {
	return filepath.Join(xdg.DataHome, "gitaverse", "gitaverse.db")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func orEnv(v, key string) string {
	if v != "" {
		return v
	}
	return os.Getenv(key)
}
