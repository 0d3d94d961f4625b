package commands

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/teranos/PRX/config"
	"github.com/teranos/PRX/db"
	"github.com/teranos/PRX/engine"
	"github.com/teranos/PRX/errors"
	"github.com/teranos/PRX/history"
	"github.com/teranos/PRX/logger"
	"github.com/teranos/PRX/store"
)

// resolveVaultRoot determines which vault directory a command operates
// on: an absolute store.dir from config wins, otherwise the nearest
// .prx directory walking up from the working directory, otherwise the
// user vault in the home directory.
func resolveVaultRoot(cfg *config.Config) (string, error) {
	if filepath.IsAbs(cfg.Store.Dir) {
		return cfg.Store.Dir, nil
	}

	if root, err := store.Discover("."); err == nil {
		return root, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to find home directory")
	}
	return filepath.Join(home, store.DefaultDirName), nil
}

// openVault opens the vault a command operates on.
func openVault(cfg *config.Config) (*store.Vault, error) {
	root, err := resolveVaultRoot(cfg)
	if err != nil {
		return nil, err
	}
	return store.Open(root)
}

// openDatabase opens and migrates the history database for a vault.
// Uses logger.Logger for db operations.
func openDatabase(cfg *config.Config, v *store.Vault) (*sql.DB, error) {
	dbPath := cfg.DatabasePath(v.Root())

	database, err := db.OpenWithMigrations(dbPath, logger.Logger)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database at %s", dbPath)
	}
	return database, nil
}

// recordHistory stores a resolution record. Failures are logged, never
// surfaced: history must not break a resolve.
func recordHistory(cfg *config.Config, v *store.Vault, name string, result *engine.ResolveResult, duration time.Duration, executed bool) {
	if !cfg.History.Enabled {
		return
	}

	database, err := openDatabase(cfg, v)
	if err != nil {
		logger.Warnw("History database unavailable", logger.FieldError, err)
		return
	}
	defer database.Close()

	r := history.FromResult(name, result, duration, executed)
	if err := history.NewStore(database).Record(r); err != nil {
		logger.Warnw("Failed to record resolution",
			logger.FieldPrompt, name,
			logger.FieldError, err)
	}
}
