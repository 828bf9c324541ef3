// Package config loads repolens configuration from a TOML file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Defaults applied when the file leaves a field unset.
const (
	DefaultTokenEnv     = "GITHUB_TOKEN"
	DefaultLimit        = 10
	DefaultCommitWindow = 100
)

var (
	// ErrMissingRepository indicates the bound repository is not configured.
	ErrMissingRepository = errors.New("config: repository owner and name are required")

	// ErrInvalidLimit indicates a non-positive per-category result limit.
	ErrInvalidLimit = errors.New("config: search limit must be positive")
)

// Config is the full repolens configuration.
type Config struct {
	Repository RepositoryConfig `toml:"repository"`
	Auth       AuthConfig       `toml:"auth"`
	Search     SearchConfig     `toml:"search"`
	Server     ServerConfig     `toml:"server"`
}

// RepositoryConfig names the single repository a server is bound to.
type RepositoryConfig struct {
	Owner string `toml:"owner"`
	Name  string `toml:"name"`
}

// AuthConfig configures token acquisition. An explicit token wins over
// the environment variable indirection.
type AuthConfig struct {
	Token    string `toml:"token"`
	TokenEnv string `toml:"token_env"`
}

// SearchConfig tunes search behaviour.
type SearchConfig struct {
	// Limit is the per-category result cap.
	Limit int `toml:"limit"`

	// CommitWindow caps the branch commit scan in explicit-branch mode.
	CommitWindow int `toml:"commit_window"`
}

// ServerConfig selects the serving transport. An empty HTTPAddr means
// stdio.
type ServerConfig struct {
	HTTPAddr string `toml:"http_addr"`
}

// Default returns a configuration with all defaults applied and no
// repository bound.
func Default() *Config {
	return &Config{
		Auth:   AuthConfig{TokenEnv: DefaultTokenEnv},
		Search: SearchConfig{Limit: DefaultLimit, CommitWindow: DefaultCommitWindow},
	}
}

// Load reads and validates a TOML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Auth.TokenEnv == "" {
		c.Auth.TokenEnv = DefaultTokenEnv
	}
	if c.Search.Limit == 0 {
		c.Search.Limit = DefaultLimit
	}
	if c.Search.CommitWindow == 0 {
		c.Search.CommitWindow = DefaultCommitWindow
	}
}

// Validate checks the configuration for usability.
func (c *Config) Validate() error {
	if c.Repository.Owner == "" || c.Repository.Name == "" {
		return ErrMissingRepository
	}
	if c.Search.Limit < 0 {
		return ErrInvalidLimit
	}
	return nil
}
