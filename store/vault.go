package store

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/teranos/PRX/engine"
	"github.com/teranos/PRX/errors"
	"github.com/teranos/PRX/logger"
)

// DefaultDirName is the vault directory searched for by Discover.
const DefaultDirName = ".prx"

const (
	promptsDirName = "prompts"
	archiveDirName = "archive"
	foldersDirName = "folders"
	promptExt      = ".md"
)

// Vault is a prompt store rooted at a .prx directory. Active prompts
// live under prompts/ and folders/<name>/, archived ones under archive/.
type Vault struct {
	root string
	log  *zap.SugaredLogger
}

// Open attaches to an existing vault directory.
func Open(root string) (*Vault, error) {
	fi, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.WithHint(
				errors.Wrapf(errors.ErrNotFound, "vault at %s", root),
				"run 'prx init' to create a vault")
		}
		return nil, errors.Wrapf(err, "opening vault at %s", root)
	}
	if !fi.IsDir() {
		return nil, errors.Newf("vault path %s is not a directory", root)
	}
	return &Vault{root: root, log: logger.ComponentLogger("vault")}, nil
}

// Init creates the vault layout at root, leaving existing content alone.
func Init(root string) (*Vault, error) {
	dirs := []string{
		root,
		filepath.Join(root, promptsDirName),
		filepath.Join(root, archiveDirName),
		filepath.Join(root, foldersDirName),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrapf(err, "creating %s", dir)
		}
	}
	v := &Vault{root: root, log: logger.ComponentLogger("vault")}
	if _, err := os.Stat(v.IndexPath()); errors.Is(err, fs.ErrNotExist) {
		if err := NewIndex().Save(v.IndexPath()); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// Discover walks from start toward the filesystem root looking for a
// .prx directory, the same way project configuration is found.
func Discover(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", errors.Wrap(err, "resolving start directory")
	}
	for {
		candidate := filepath.Join(dir, DefaultDirName)
		if fi, err := os.Stat(candidate); err == nil && fi.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.WithHint(
				errors.Wrap(errors.ErrNotFound, "no vault"),
				"run 'prx init' to create one in the current directory")
		}
		dir = parent
	}
}

// Root returns the vault directory.
func (v *Vault) Root() string { return v.root }

// IndexPath returns the location of the vault's search index file.
func (v *Vault) IndexPath() string { return filepath.Join(v.root, indexFileName) }

// PromptsDir returns the directory holding top-level prompts.
func (v *Vault) PromptsDir() string { return filepath.Join(v.root, promptsDirName) }

// ArchiveDir returns the directory holding archived prompts.
func (v *Vault) ArchiveDir() string { return filepath.Join(v.root, archiveDirName) }

// FoldersDir returns the directory holding prompt folders.
func (v *Vault) FoldersDir() string { return filepath.Join(v.root, foldersDirName) }

func (v *Vault) promptPath(name string) string {
	return filepath.Join(v.PromptsDir(), name+promptExt)
}

func (v *Vault) archivePath(name string) string {
	return filepath.Join(v.ArchiveDir(), name+promptExt)
}

func (v *Vault) folderPath(folder, name string) string {
	return filepath.Join(v.FoldersDir(), folder, name+promptExt)
}

// Save writes a prompt to disk and refreshes its index entry. Prompts
// loaded from a folder are written back in place; unsaved prompts land
// under prompts/.
func (v *Vault) Save(p *Prompt) error {
	if err := ValidateName(p.Name); err != nil {
		return err
	}
	data, err := encodePrompt(p)
	if err != nil {
		return err
	}
	path := p.Path
	if path == "" {
		path = v.promptPath(p.Name)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing prompt %s", p.Name)
	}
	p.Path = path
	v.updateIndex(p)
	return nil
}

// Create stores new content under a generated, collision-free name.
func (v *Vault) Create(content string, tags []string) (*Prompt, error) {
	names, err := v.AllNames()
	if err != nil {
		return nil, err
	}
	p := NewPrompt(content)
	p.Name = MakeUniqueName(p.Name, names)
	p.Tags = tags
	if err := v.Save(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Load reads an active prompt by name, checking prompts/ first and then
// each user folder. Archived prompts are not loadable.
func (v *Vault) Load(name string) (*Prompt, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	path := v.promptPath(name)
	raw, err := os.ReadFile(path)
	if err == nil {
		return decodePrompt(raw, name, path)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrapf(err, "reading prompt %s", name)
	}

	folders, err := v.Folders()
	if err != nil {
		return nil, err
	}
	for _, folder := range folders {
		path := v.folderPath(folder, name)
		raw, err := os.ReadFile(path)
		if err == nil {
			return decodePrompt(raw, name, path)
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(err, "reading prompt %s", name)
		}
	}

	return nil, errors.WithHint(
		errors.Wrapf(errors.ErrNotFound, "prompt %q", name),
		"run 'prx list' to see available prompts")
}

// LoadAll reads every active prompt, sorted by name. Unreadable or
// malformed files are skipped with a warning so one bad file cannot
// take down a listing.
func (v *Vault) LoadAll() ([]*Prompt, error) {
	prompts, err := v.loadDir(v.PromptsDir())
	if err != nil {
		return nil, err
	}
	folders, err := v.Folders()
	if err != nil {
		return nil, err
	}
	for _, folder := range folders {
		more, err := v.loadDir(filepath.Join(v.FoldersDir(), folder))
		if err != nil {
			return nil, err
		}
		prompts = append(prompts, more...)
	}
	sort.Slice(prompts, func(i, j int) bool { return prompts[i].Name < prompts[j].Name })
	return prompts, nil
}

func (v *Vault) loadDir(dir string) ([]*Prompt, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "listing %s", dir)
	}
	var prompts []*Prompt
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), promptExt) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			v.log.Warnw("skipping unreadable prompt", logger.FieldPath, path, logger.FieldError, err)
			continue
		}
		p, err := decodePrompt(raw, strings.TrimSuffix(entry.Name(), promptExt), path)
		if err != nil {
			v.log.Warnw("skipping malformed prompt", logger.FieldPath, path, logger.FieldError, err)
			continue
		}
		prompts = append(prompts, p)
	}
	return prompts, nil
}

// Delete removes a prompt, either into archive/ or permanently.
func (v *Vault) Delete(name string, archive bool) error {
	p, err := v.Load(name)
	if err != nil {
		return err
	}
	x := LoadIndexOrNew(v.IndexPath())
	if archive {
		if err := os.MkdirAll(v.ArchiveDir(), 0o755); err != nil {
			return errors.Wrap(err, "creating archive directory")
		}
		dest := v.archivePath(name)
		if err := os.Rename(p.Path, dest); err != nil {
			return errors.Wrapf(err, "archiving prompt %s", name)
		}
		p.Path = dest
		x.Upsert(EntryFromPrompt(p, LocationArchive))
	} else {
		if err := os.Remove(p.Path); err != nil {
			return errors.Wrapf(err, "deleting prompt %s", name)
		}
		x.Remove(name)
	}
	if err := x.Save(v.IndexPath()); err != nil {
		v.log.Warnw("failed to update index", logger.FieldError, err)
	}
	return nil
}

// Rename changes a prompt's name in place. The new name must be free
// across the whole vault, archive included, so an archived prompt can
// always be restored without a collision.
func (v *Vault) Rename(oldName, newName string) error {
	if err := ValidateName(newName); err != nil {
		return err
	}
	if oldName == newName {
		return nil
	}
	taken, err := v.Exists(newName)
	if err != nil {
		return err
	}
	if taken {
		return errors.Wrapf(errors.ErrDuplicateName, "%q", newName)
	}
	p, err := v.Load(oldName)
	if err != nil {
		return err
	}
	dest := filepath.Join(filepath.Dir(p.Path), newName+promptExt)
	if err := os.Rename(p.Path, dest); err != nil {
		return errors.Wrapf(err, "renaming prompt %s", oldName)
	}
	p.Name = newName
	p.Path = dest
	x := LoadIndexOrNew(v.IndexPath())
	x.Remove(oldName)
	x.Upsert(EntryFromPrompt(p, v.locationOf(dest)))
	if err := x.Save(v.IndexPath()); err != nil {
		v.log.Warnw("failed to update index", logger.FieldError, err)
	}
	return nil
}

// Exists reports whether name is taken anywhere in the vault, archive
// included.
func (v *Vault) Exists(name string) (bool, error) {
	if fileExists(v.promptPath(name)) || fileExists(v.archivePath(name)) {
		return true, nil
	}
	folders, err := v.Folders()
	if err != nil {
		return false, err
	}
	for _, folder := range folders {
		if fileExists(v.folderPath(folder, name)) {
			return true, nil
		}
	}
	return false, nil
}

// AllNames returns every prompt name in the vault, archive included,
// sorted. This is the universe Create checks new names against.
func (v *Vault) AllNames() ([]string, error) {
	seen := make(map[string]bool)
	var names []string
	collect := func(dir string) error {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return errors.Wrapf(err, "listing %s", dir)
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), promptExt) {
				continue
			}
			name := strings.TrimSuffix(entry.Name(), promptExt)
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
		return nil
	}
	if err := collect(v.PromptsDir()); err != nil {
		return nil, err
	}
	if err := collect(v.ArchiveDir()); err != nil {
		return nil, err
	}
	folders, err := v.Folders()
	if err != nil {
		return nil, err
	}
	for _, folder := range folders {
		if err := collect(filepath.Join(v.FoldersDir(), folder)); err != nil {
			return nil, err
		}
	}
	sort.Strings(names)
	return names, nil
}

// Folders lists the user folders, sorted.
func (v *Vault) Folders() ([]string, error) {
	entries, err := os.ReadDir(v.FoldersDir())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "listing folders")
	}
	var folders []string
	for _, entry := range entries {
		if entry.IsDir() {
			folders = append(folders, entry.Name())
		}
	}
	sort.Strings(folders)
	return folders, nil
}

// CreateFolder makes a user folder under folders/.
func (v *Vault) CreateFolder(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	return errors.Wrapf(os.MkdirAll(filepath.Join(v.FoldersDir(), name), 0o755),
		"creating folder %s", name)
}

// MoveToFolder relocates a prompt into a user folder, or back to the
// main prompts directory when folder is empty.
func (v *Vault) MoveToFolder(name, folder string) error {
	p, err := v.Load(name)
	if err != nil {
		return err
	}
	var dest string
	if folder == "" {
		dest = v.promptPath(name)
	} else {
		if err := v.CreateFolder(folder); err != nil {
			return err
		}
		dest = v.folderPath(folder, name)
	}
	if dest == p.Path {
		return nil
	}
	if err := os.Rename(p.Path, dest); err != nil {
		return errors.Wrapf(err, "moving prompt %s", name)
	}
	p.Path = dest
	v.updateIndex(p)
	return nil
}

// Lookup returns a resolver lookup over a snapshot of the active
// prompts. Archived prompts do not resolve.
func (v *Vault) Lookup() (engine.LookupFunc, error) {
	prompts, err := v.LoadAll()
	if err != nil {
		return nil, err
	}
	byName := make(map[string]string, len(prompts))
	for _, p := range prompts {
		byName[p.Name] = p.Content
	}
	return func(name string) (string, bool) {
		content, ok := byName[name]
		return content, ok
	}, nil
}

// RebuildIndex re-scans the whole vault, archive included, and writes a
// fresh index.
func (v *Vault) RebuildIndex() (*Index, error) {
	x := NewIndex()
	prompts, err := v.LoadAll()
	if err != nil {
		return nil, err
	}
	for _, p := range prompts {
		x.Upsert(EntryFromPrompt(p, v.locationOf(p.Path)))
	}
	archived, err := v.loadDir(v.ArchiveDir())
	if err != nil {
		return nil, err
	}
	for _, p := range archived {
		x.Upsert(EntryFromPrompt(p, LocationArchive))
	}
	if err := x.Save(v.IndexPath()); err != nil {
		return nil, err
	}
	v.log.Debugw("index rebuilt", logger.FieldCount, x.Len())
	return x, nil
}

func (v *Vault) updateIndex(p *Prompt) {
	x := LoadIndexOrNew(v.IndexPath())
	x.Upsert(EntryFromPrompt(p, v.locationOf(p.Path)))
	if err := x.Save(v.IndexPath()); err != nil {
		v.log.Warnw("failed to update index", logger.FieldError, err)
	}
}

func (v *Vault) locationOf(path string) string {
	rel, err := filepath.Rel(v.root, path)
	if err != nil {
		return LocationPrompts
	}
	rel = filepath.ToSlash(rel)
	switch {
	case strings.HasPrefix(rel, archiveDirName+"/"):
		return LocationArchive
	case strings.HasPrefix(rel, foldersDirName+"/"):
		parts := strings.SplitN(rel, "/", 3)
		if len(parts) == 3 {
			return FolderLocation(parts[1])
		}
	}
	return LocationPrompts
}

func fileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}
