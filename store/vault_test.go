package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/teranos/PRX/errors"
)

func newTestVault(t *testing.T) *Vault {
	t.Helper()
	v, err := Init(filepath.Join(t.TempDir(), DefaultDirName))
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	return v
}

func TestInitCreatesLayout(t *testing.T) {
	v := newTestVault(t)
	for _, dir := range []string{v.PromptsDir(), v.ArchiveDir(), v.FoldersDir()} {
		fi, err := os.Stat(dir)
		if err != nil || !fi.IsDir() {
			t.Errorf("missing vault directory %s: %v", dir, err)
		}
	}
	if _, err := os.Stat(v.IndexPath()); err != nil {
		t.Errorf("missing index file: %v", err)
	}
}

func TestOpenMissingVault(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope"))
	if !errors.IsNotFound(err) {
		t.Fatalf("Open(missing) = %v, want not-found", err)
	}
	if hints := errors.GetAllHints(err); len(hints) == 0 {
		t.Error("not-found error carries no hint")
	}
}

func TestCreateAndLoad(t *testing.T) {
	v := newTestVault(t)
	created, err := v.Create("My prompt content\nbody", []string{"work"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Name != "my_prompt_content" {
		t.Errorf("Name = %q", created.Name)
	}
	if created.Path == "" {
		t.Error("Path not set after save")
	}

	loaded, err := v.Load("my_prompt_content")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Content != "My prompt content\nbody" {
		t.Errorf("Content = %q", loaded.Content)
	}
	if loaded.ID != created.ID {
		t.Errorf("ID changed across save/load: %q vs %q", loaded.ID, created.ID)
	}
	if !loaded.HasTag("work") {
		t.Errorf("Tags = %v", loaded.Tags)
	}
}

func TestCreateResolvesNameCollisions(t *testing.T) {
	v := newTestVault(t)
	first, _ := v.Create("Same title", nil)
	second, err := v.Create("Same title", nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if first.Name != "same_title" || second.Name != "same_title_1" {
		t.Errorf("names = %q, %q", first.Name, second.Name)
	}
}

func TestCreateEmptyContent(t *testing.T) {
	v := newTestVault(t)
	first, err := v.Create("", nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, _ := v.Create("", nil)
	if first.Name != "empty_prompt_1" || second.Name != "empty_prompt_2" {
		t.Errorf("names = %q, %q", first.Name, second.Name)
	}
}

func TestLoadMissing(t *testing.T) {
	v := newTestVault(t)
	_, err := v.Load("nothing_here")
	if !errors.IsNotFound(err) {
		t.Fatalf("Load(missing) = %v, want not-found", err)
	}
}

func TestLoadRejectsInvalidName(t *testing.T) {
	v := newTestVault(t)
	_, err := v.Load("Bad Name")
	if !errors.Is(err, errors.ErrInvalidName) {
		t.Fatalf("Load(Bad Name) = %v, want ErrInvalidName", err)
	}
}

func TestDeletePermanent(t *testing.T) {
	v := newTestVault(t)
	p, _ := v.Create("Goodbye prompt", nil)
	if err := v.Delete(p.Name, false); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(p.Path); !os.IsNotExist(err) {
		t.Error("file still present after delete")
	}
	if _, ok := LoadIndexOrNew(v.IndexPath()).Get(p.Name); ok {
		t.Error("index entry survived delete")
	}
	exists, _ := v.Exists(p.Name)
	if exists {
		t.Error("Exists = true after delete")
	}
}

func TestDeleteArchive(t *testing.T) {
	v := newTestVault(t)
	p, _ := v.Create("Keep me around", nil)
	if err := v.Delete(p.Name, true); err != nil {
		t.Fatalf("Delete(archive): %v", err)
	}
	if _, err := os.Stat(v.archivePath(p.Name)); err != nil {
		t.Errorf("prompt not in archive: %v", err)
	}
	if _, err := v.Load(p.Name); !errors.IsNotFound(err) {
		t.Errorf("archived prompt still loadable: %v", err)
	}
	exists, _ := v.Exists(p.Name)
	if !exists {
		t.Error("archived name no longer reserved")
	}
	entry, ok := LoadIndexOrNew(v.IndexPath()).Get(p.Name)
	if !ok || entry.Location != LocationArchive {
		t.Errorf("index entry = %+v, ok=%v", entry, ok)
	}
}

func TestRename(t *testing.T) {
	v := newTestVault(t)
	p, _ := v.Create("Original name here", nil)
	if err := v.Rename(p.Name, "fresh_name"); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if _, err := v.Load("fresh_name"); err != nil {
		t.Errorf("Load(fresh_name): %v", err)
	}
	if _, err := v.Load(p.Name); !errors.IsNotFound(err) {
		t.Errorf("old name still loads: %v", err)
	}
	x := LoadIndexOrNew(v.IndexPath())
	if _, ok := x.Get(p.Name); ok {
		t.Error("index kept old name")
	}
	if _, ok := x.Get("fresh_name"); !ok {
		t.Error("index missing new name")
	}
}

func TestRenameRejectsDuplicates(t *testing.T) {
	v := newTestVault(t)
	v.Create("First prompt", nil)
	p, _ := v.Create("Second prompt", nil)
	err := v.Rename(p.Name, "first_prompt")
	if !errors.IsDuplicateName(err) {
		t.Fatalf("Rename onto taken name = %v, want ErrDuplicateName", err)
	}
}

func TestRenameRejectsArchivedNames(t *testing.T) {
	v := newTestVault(t)
	old, _ := v.Create("Retired prompt", nil)
	v.Delete(old.Name, true)
	p, _ := v.Create("Active prompt", nil)
	err := v.Rename(p.Name, "retired_prompt")
	if !errors.IsDuplicateName(err) {
		t.Fatalf("Rename onto archived name = %v, want ErrDuplicateName", err)
	}
}

func TestFoldersAndMove(t *testing.T) {
	v := newTestVault(t)
	p, _ := v.Create("Folder bound", nil)
	if err := v.MoveToFolder(p.Name, "work"); err != nil {
		t.Fatalf("MoveToFolder: %v", err)
	}

	folders, err := v.Folders()
	if err != nil || len(folders) != 1 || folders[0] != "work" {
		t.Fatalf("Folders = %v, %v", folders, err)
	}

	loaded, err := v.Load(p.Name)
	if err != nil {
		t.Fatalf("Load after move: %v", err)
	}
	if loaded.Path != v.folderPath("work", p.Name) {
		t.Errorf("Path = %q", loaded.Path)
	}

	entry, ok := LoadIndexOrNew(v.IndexPath()).Get(p.Name)
	if !ok || entry.Location != FolderLocation("work") {
		t.Errorf("index entry = %+v, ok=%v", entry, ok)
	}

	// moving back lands in prompts/
	if err := v.MoveToFolder(p.Name, ""); err != nil {
		t.Fatalf("MoveToFolder back: %v", err)
	}
	loaded, _ = v.Load(p.Name)
	if loaded.Path != v.promptPath(p.Name) {
		t.Errorf("Path after moving back = %q", loaded.Path)
	}
}

func TestLoadAllSortsAndSpansFolders(t *testing.T) {
	v := newTestVault(t)
	v.Create("zulu prompt", nil)
	v.Create("alpha prompt", nil)
	p, _ := v.Create("mike prompt", nil)
	v.MoveToFolder(p.Name, "crew")

	all, err := v.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("LoadAll returned %d prompts", len(all))
	}
	want := []string{"alpha_prompt", "mike_prompt", "zulu_prompt"}
	for i, p := range all {
		if p.Name != want[i] {
			t.Errorf("all[%d].Name = %q, want %q", i, p.Name, want[i])
		}
	}
}

func TestLoadAllSkipsMalformedFiles(t *testing.T) {
	v := newTestVault(t)
	v.Create("Healthy prompt", nil)
	bad := filepath.Join(v.PromptsDir(), "broken.md")
	if err := os.WriteFile(bad, []byte("---\n{invalid: [\n---\nbody"), 0o644); err != nil {
		t.Fatalf("writing bad file: %v", err)
	}

	all, err := v.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(all) != 1 || all[0].Name != "healthy_prompt" {
		t.Errorf("LoadAll = %v", all)
	}
}

func TestLoadAllExcludesArchive(t *testing.T) {
	v := newTestVault(t)
	v.Create("Stays active", nil)
	p, _ := v.Create("Gets archived", nil)
	v.Delete(p.Name, true)

	all, err := v.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(all) != 1 || all[0].Name != "stays_active" {
		t.Errorf("LoadAll = %v", all)
	}
}

func TestAllNamesIncludesArchive(t *testing.T) {
	v := newTestVault(t)
	v.Create("Active one", nil)
	p, _ := v.Create("Archived one", nil)
	v.Delete(p.Name, true)

	names, err := v.AllNames()
	if err != nil {
		t.Fatalf("AllNames: %v", err)
	}
	if len(names) != 2 || names[0] != "active_one" || names[1] != "archived_one" {
		t.Errorf("AllNames = %v", names)
	}
}

func TestLookup(t *testing.T) {
	v := newTestVault(t)
	v.Create("greeting text\nHello!", nil)
	archived, _ := v.Create("hidden text", nil)
	v.Delete(archived.Name, true)

	lookup, err := v.Lookup()
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	content, ok := lookup("greeting_text")
	if !ok || content != "greeting text\nHello!" {
		t.Errorf("lookup(greeting_text) = %q, %v", content, ok)
	}
	if _, ok := lookup("hidden_text"); ok {
		t.Error("archived prompt resolvable through lookup")
	}
	if _, ok := lookup("never_existed"); ok {
		t.Error("unknown name resolvable through lookup")
	}
}

func TestRebuildIndex(t *testing.T) {
	v := newTestVault(t)
	v.Create("Index me", []string{"a"})
	p, _ := v.Create("Archive me", nil)
	v.Delete(p.Name, true)

	// clobber the index to prove rebuild starts from the filesystem
	if err := os.WriteFile(v.IndexPath(), []byte("{}"), 0o644); err != nil {
		t.Fatalf("clobbering index: %v", err)
	}

	x, err := v.RebuildIndex()
	if err != nil {
		t.Fatalf("RebuildIndex: %v", err)
	}
	if x.Len() != 2 {
		t.Fatalf("Len = %d, want 2", x.Len())
	}
	active, _ := x.Get("index_me")
	if active.Location != LocationPrompts {
		t.Errorf("active location = %q", active.Location)
	}
	archived, _ := x.Get("archive_me")
	if archived.Location != LocationArchive {
		t.Errorf("archived location = %q", archived.Location)
	}
}

func TestDiscover(t *testing.T) {
	base := t.TempDir()
	want := filepath.Join(base, DefaultDirName)
	if _, err := Init(want); err != nil {
		t.Fatalf("Init: %v", err)
	}
	nested := filepath.Join(base, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	got, err := Discover(nested)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if got != want {
		t.Errorf("Discover = %q, want %q", got, want)
	}
}

func TestDiscoverMissing(t *testing.T) {
	_, err := Discover(t.TempDir())
	if !errors.IsNotFound(err) {
		t.Fatalf("Discover without vault = %v, want not-found", err)
	}
}
