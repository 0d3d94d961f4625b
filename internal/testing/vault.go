package testing

import (
	"path/filepath"
	"testing"

	"github.com/teranos/PRX/store"
)

// CreateTestVault initializes an empty vault under t.TempDir().
// The temp directory is removed automatically when the test ends.
func CreateTestVault(t *testing.T) *store.Vault {
	t.Helper()

	v, err := store.Init(filepath.Join(t.TempDir(), store.DefaultDirName))
	if err != nil {
		t.Fatalf("Failed to create test vault: %v", err)
	}
	return v
}
