package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/teranos/PRX/engine"
)

func TestLoadDefaults(t *testing.T) {
	// Isolated viper instance without user/system config files
	v := viper.New()
	SetDefaults(v)

	cfg, err := LoadWithViper(v)
	if err != nil {
		t.Fatalf("LoadWithViper() failed: %v", err)
	}

	if cfg.Store.Dir != ".prx" {
		t.Errorf("expected default store dir '.prx', got %q", cfg.Store.Dir)
	}
	if cfg.Resolver.MaxDepth != engine.DefaultMaxDepth {
		t.Errorf("expected default max depth %d, got %d", engine.DefaultMaxDepth, cfg.Resolver.MaxDepth)
	}
	if !cfg.Resolver.ExecuteCommands {
		t.Error("expected command execution enabled by default")
	}
	if !cfg.Resolver.SafeMode {
		t.Error("expected safe mode enabled by default")
	}
	if cfg.Resolver.CommandTimeoutSeconds != 0 {
		t.Errorf("expected no command timeout by default, got %d", cfg.Resolver.CommandTimeoutSeconds)
	}
	if !cfg.History.Enabled {
		t.Error("expected history enabled by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default log level 'info', got %q", cfg.Logging.Level)
	}
}

func TestSetDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	tests := []struct {
		key      string
		expected interface{}
	}{
		{"store.dir", ".prx"},
		{"resolver.max_depth", engine.DefaultMaxDepth},
		{"resolver.execute_commands", true},
		{"resolver.safe_mode", true},
		{"resolver.command_timeout_seconds", 0},
		{"history.enabled", true},
		{"database.path", ""},
		{"logging.level", "info"},
		{"logging.json", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got := v.Get(tt.key)
			if got != tt.expected {
				t.Errorf("default %s = %v, want %v", tt.key, got, tt.expected)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "empty store dir is invalid",
			config:  Config{Store: StoreConfig{Dir: ""}},
			wantErr: true,
		},
		{
			name:    "zero max depth is valid (engine default)",
			config:  Config{Store: StoreConfig{Dir: ".prx"}, Resolver: ResolverConfig{MaxDepth: 0}},
			wantErr: false,
		},
		{
			name:    "negative max depth is invalid",
			config:  Config{Store: StoreConfig{Dir: ".prx"}, Resolver: ResolverConfig{MaxDepth: -1}},
			wantErr: true,
		},
		{
			name:    "zero command timeout is valid (wait forever)",
			config:  Config{Store: StoreConfig{Dir: ".prx"}, Resolver: ResolverConfig{CommandTimeoutSeconds: 0}},
			wantErr: false,
		},
		{
			name:    "negative command timeout is invalid",
			config:  Config{Store: StoreConfig{Dir: ".prx"}, Resolver: ResolverConfig{CommandTimeoutSeconds: -5}},
			wantErr: true,
		},
		{
			name:    "unknown log level is invalid",
			config:  Config{Store: StoreConfig{Dir: ".prx"}, Logging: LoggingConfig{Level: "loud"}},
			wantErr: true,
		},
		{
			name:    "empty log level is valid",
			config:  Config{Store: StoreConfig{Dir: ".prx"}, Logging: LoggingConfig{Level: ""}},
			wantErr: false,
		},
		{
			name:    "uppercase log level is valid",
			config:  Config{Store: StoreConfig{Dir: ".prx"}, Logging: LoggingConfig{Level: "DEBUG"}},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFindVaultConfig(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("found from nested directory", func(t *testing.T) {
		vaultDir := filepath.Join(tmpDir, "proj", ".prx")
		subDir := filepath.Join(tmpDir, "proj", "a", "b")
		os.MkdirAll(vaultDir, DefaultDirPermissions)
		os.MkdirAll(subDir, DefaultDirPermissions)
		os.WriteFile(filepath.Join(vaultDir, "config.toml"), []byte(""), DefaultFilePermissions)

		oldWd, _ := os.Getwd()
		defer os.Chdir(oldWd)
		os.Chdir(subDir)

		result := findVaultConfig()
		if result == "" {
			t.Fatal("expected to find vault config")
		}
		if filepath.Base(result) != "config.toml" {
			t.Errorf("expected config.toml, got %s", filepath.Base(result))
		}
		if !strings.Contains(result, ".prx") {
			t.Errorf("expected path inside .prx, got %s", result)
		}
	})

	t.Run("no config found", func(t *testing.T) {
		subDir := filepath.Join(tmpDir, "bare", "sub")
		os.MkdirAll(subDir, DefaultDirPermissions)

		oldWd, _ := os.Getwd()
		defer os.Chdir(oldWd)
		os.Chdir(subDir)

		result := findVaultConfig()
		if result != "" {
			t.Errorf("expected empty string, got %s", result)
		}
	})
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `[resolver]
max_depth = 4
execute_commands = false

[logging]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), DefaultFilePermissions); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() failed: %v", err)
	}
	if cfg.Resolver.MaxDepth != 4 {
		t.Errorf("max depth = %d, want 4", cfg.Resolver.MaxDepth)
	}
	if cfg.Resolver.ExecuteCommands {
		t.Error("execute_commands should be false")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level = %q, want debug", cfg.Logging.Level)
	}
	// untouched keys keep their defaults
	if !cfg.Resolver.SafeMode {
		t.Error("safe_mode default lost")
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("PRX_RESOLVER_MAX_DEPTH", "5")

	v := viper.New()
	v.SetEnvPrefix("PRX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	cfg, err := LoadWithViper(v)
	if err != nil {
		t.Fatalf("LoadWithViper() failed: %v", err)
	}
	if cfg.Resolver.MaxDepth != 5 {
		t.Errorf("max depth = %d, want 5 from environment", cfg.Resolver.MaxDepth)
	}
}

func TestResolveOptions(t *testing.T) {
	cfg := Config{Resolver: ResolverConfig{
		MaxDepth:              3,
		ExecuteCommands:       false,
		CommandTimeoutSeconds: 30,
	}}

	opts := cfg.ResolveOptions()
	if opts.MaxDepth != 3 {
		t.Errorf("MaxDepth = %d, want 3", opts.MaxDepth)
	}
	if opts.ExecuteCommands {
		t.Error("ExecuteCommands should be false")
	}
	if opts.CommandTimeout != 30*time.Second {
		t.Errorf("CommandTimeout = %v, want 30s", opts.CommandTimeout)
	}

	// zero max depth falls back to the engine default
	zero := Config{}
	if got := zero.ResolveOptions().MaxDepth; got != engine.DefaultMaxDepth {
		t.Errorf("zero-config MaxDepth = %d, want %d", got, engine.DefaultMaxDepth)
	}
}

func TestDatabasePath(t *testing.T) {
	explicit := Config{Database: DatabaseConfig{Path: "/tmp/custom.db"}}
	if got := explicit.DatabasePath("/vault/.prx"); got != "/tmp/custom.db" {
		t.Errorf("explicit path = %q", got)
	}

	fallback := Config{}
	want := filepath.Join("/vault/.prx", "prx.db")
	if got := fallback.DatabasePath("/vault/.prx"); got != want {
		t.Errorf("fallback path = %q, want %q", got, want)
	}
}
