// Package config loads prx configuration. Sources merge in precedence
// order: built-in defaults, /etc/prx/config.toml, ~/.prx/config.toml,
// the project vault's config.toml, then PRX_* environment variables.
package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/teranos/PRX/engine"
)

// Config represents the core prx configuration
type Config struct {
	Store    StoreConfig    `mapstructure:"store"`
	Resolver ResolverConfig `mapstructure:"resolver"`
	History  HistoryConfig  `mapstructure:"history"`
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// StoreConfig configures where the prompt vault lives
type StoreConfig struct {
	Dir string `mapstructure:"dir"` // vault directory name found by upward search, or an absolute path used as-is
}

// ResolverConfig configures prompt resolution
type ResolverConfig struct {
	MaxDepth              int  `mapstructure:"max_depth"`               // nesting ceiling for [[name]] expansion (default: 10)
	ExecuteCommands       bool `mapstructure:"execute_commands"`        // run {{command}} tokens during resolution (default: true)
	SafeMode              bool `mapstructure:"safe_mode"`               // confirm before running commands interactively (default: true)
	CommandTimeoutSeconds int  `mapstructure:"command_timeout_seconds"` // per-command timeout in seconds, 0 = wait forever
}

// HistoryConfig configures resolution history recording
type HistoryConfig struct {
	Enabled bool `mapstructure:"enabled"` // record resolutions to the history database (default: true)
}

// DatabaseConfig configures the history database
type DatabaseConfig struct {
	Path string `mapstructure:"path"` // SQLite file path, empty = prx.db inside the vault
}

// LoggingConfig configures diagnostic output
type LoggingConfig struct {
	Level string `mapstructure:"level"` // debug, info, warn, error (default: info)
	JSON  bool   `mapstructure:"json"`  // emit JSON log lines instead of console output
}

// File system constants
const (
	DefaultDirPermissions  = 0755 // Standard directory permissions (rwxr-xr-x)
	DefaultFilePermissions = 0644 // Standard file permissions (rw-r--r--)
)

// historyDBName is the default database file created inside the vault.
const historyDBName = "prx.db"

// CommandTimeout returns the configured per-command timeout, zero
// meaning no timeout.
func (c *Config) CommandTimeout() time.Duration {
	if c.Resolver.CommandTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.Resolver.CommandTimeoutSeconds) * time.Second
}

// ResolveOptions builds engine options from the resolver configuration.
func (c *Config) ResolveOptions() engine.ResolveOptions {
	opts := engine.DefaultResolveOptions()
	if c.Resolver.MaxDepth > 0 {
		opts.MaxDepth = c.Resolver.MaxDepth
	}
	opts.ExecuteCommands = c.Resolver.ExecuteCommands
	opts.CommandTimeout = c.CommandTimeout()
	return opts
}

// DatabasePath returns the history database path, defaulting to a
// prx.db file inside the vault.
func (c *Config) DatabasePath(vaultRoot string) string {
	if c.Database.Path != "" {
		return c.Database.Path
	}
	return filepath.Join(vaultRoot, historyDBName)
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Store: %s, Resolver: {MaxDepth: %d, ExecuteCommands: %t, SafeMode: %t}, History: %t}",
		c.Store.Dir, c.Resolver.MaxDepth, c.Resolver.ExecuteCommands, c.Resolver.SafeMode, c.History.Enabled)
}
