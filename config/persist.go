package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/teranos/PRX/errors"
	"github.com/teranos/PRX/logger"
)

// createBackup creates rotating backups (.back1, .back2, .back3) before modifying config
func createBackup(configPath string) error {
	// Check if file exists before backing up
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil // No file to backup
	}

	// Rotate backups: .back3 -> delete, .back2 -> .back3, .back1 -> .back2, current -> .back1
	back3 := configPath + ".back3"
	back2 := configPath + ".back2"
	back1 := configPath + ".back1"

	// Delete oldest backup if exists
	if err := os.Remove(back3); err != nil && !os.IsNotExist(err) {
		logger.Warnf("failed to delete old backup %s: %v", back3, err)
	}

	// Rotate .back2 to .back3
	if _, err := os.Stat(back2); err == nil {
		if err := os.Rename(back2, back3); err != nil {
			return errors.Wrap(err, "failed to rotate .back2 to .back3")
		}
	}

	// Rotate .back1 to .back2
	if _, err := os.Stat(back1); err == nil {
		if err := os.Rename(back1, back2); err != nil {
			return errors.Wrap(err, "failed to rotate .back1 to .back2")
		}
	}

	// Copy current to .back1
	content, err := os.ReadFile(configPath)
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}

	if err := os.WriteFile(back1, content, DefaultFilePermissions); err != nil {
		return errors.Wrap(err, "failed to create .back1")
	}

	return nil
}

// UserConfigPath returns the path to the user config file in ~/.prx/config.toml
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".prx", "config.toml")
}

// loadOrInitializeUserConfig loads the user config file, or starts an
// empty one if it doesn't exist
func loadOrInitializeUserConfig() (map[string]interface{}, string, error) {
	configPath := UserConfigPath()
	if configPath == "" {
		return nil, "", errors.New("could not determine home directory")
	}

	// Ensure ~/.prx directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), DefaultDirPermissions); err != nil {
		return nil, "", errors.Wrap(err, "failed to create .prx directory")
	}

	var config map[string]interface{}
	if data, err := os.ReadFile(configPath); err == nil {
		if err := toml.Unmarshal(data, &config); err != nil {
			return nil, "", errors.Wrap(err, "failed to parse user config")
		}
	} else {
		config = make(map[string]interface{})
	}

	return config, configPath, nil
}

// saveUserConfig writes the config to the user config file with backup
func saveUserConfig(config map[string]interface{}, configPath string) error {
	if err := createBackup(configPath); err != nil {
		return errors.Wrap(err, "failed to create backup")
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(configPath, data, DefaultFilePermissions); err != nil {
		return errors.Wrap(err, "failed to write user config")
	}

	return nil
}

// SetValue updates one dotted key in the user config file, creating the
// file if needed. The raw value is coerced to bool, int, or float when
// it parses as one.
func SetValue(key, raw string) error {
	path := strings.Split(key, ".")
	for _, part := range path {
		if part == "" {
			return errors.Newf("invalid config key %q", key)
		}
	}

	config, configPath, err := loadOrInitializeUserConfig()
	if err != nil {
		return err
	}

	setDottedKey(config, path, parseValue(raw))

	if err := saveUserConfig(config, configPath); err != nil {
		return err
	}
	Reset() // drop the cached config so the next Load sees the change
	return nil
}

// parseValue tries numbers before booleans so "1" stays an int rather
// than becoming true via ParseBool.
func parseValue(raw string) interface{} {
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return raw
}

func setDottedKey(m map[string]interface{}, path []string, value interface{}) {
	if len(path) == 1 {
		m[path[0]] = value
		return
	}
	child, ok := m[path[0]].(map[string]interface{})
	if !ok {
		child = make(map[string]interface{})
		m[path[0]] = child
	}
	setDottedKey(child, path[1:], value)
}
