package config

import (
	"strings"

	"go.uber.org/zap/zapcore"

	"github.com/teranos/PRX/errors"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Store.Dir == "" {
		return errors.New("store.dir cannot be empty")
	}

	// Max depth: 0 = use the engine default, negative = invalid
	if c.Resolver.MaxDepth < 0 {
		return errors.Newf("resolver.max_depth must be >= 0, got %d", c.Resolver.MaxDepth)
	}

	// Command timeout: 0 = wait forever, negative = invalid
	if c.Resolver.CommandTimeoutSeconds < 0 {
		return errors.Newf("resolver.command_timeout_seconds must be >= 0, got %d", c.Resolver.CommandTimeoutSeconds)
	}

	if c.Logging.Level != "" {
		if _, err := zapcore.ParseLevel(strings.ToLower(c.Logging.Level)); err != nil {
			return errors.Newf("logging.level %q is not a valid log level", c.Logging.Level)
		}
	}

	return nil
}
