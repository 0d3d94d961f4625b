package config

import (
	"github.com/spf13/viper"

	"github.com/teranos/PRX/engine"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Store defaults
	v.SetDefault("store.dir", ".prx")

	// Resolver defaults
	v.SetDefault("resolver.max_depth", engine.DefaultMaxDepth)
	v.SetDefault("resolver.execute_commands", true)
	v.SetDefault("resolver.safe_mode", true)
	v.SetDefault("resolver.command_timeout_seconds", 0) // 0 = wait forever

	// History defaults
	v.SetDefault("history.enabled", true)
	v.SetDefault("database.path", "") // empty = prx.db inside the vault

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.json", false)
}
