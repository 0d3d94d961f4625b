package store

import (
	"encoding/json"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/teranos/PRX/errors"
)

const (
	indexVersion  = 1
	indexFileName = ".index.json"

	// previewLen caps how much of the first line the index keeps as a preview.
	previewLen = 80
)

// Storage locations recorded in index entries.
const (
	LocationPrompts = "prompts"
	LocationArchive = "archive"
)

// FolderLocation names the location of a prompt stored under a user folder.
func FolderLocation(folder string) string {
	return "folders/" + folder
}

// IndexEntry is the searchable record kept for one prompt.
type IndexEntry struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Preview  string    `json:"preview"`
	Content  string    `json:"content"`
	Tags     []string  `json:"tags,omitempty"`
	Location string    `json:"location"`
	Modified time.Time `json:"modified"`
}

// Index is the vault's search index, persisted as .index.json in the
// vault root. Entries are keyed by prompt name.
type Index struct {
	Version int                   `json:"version"`
	Updated time.Time             `json:"updated"`
	Entries map[string]IndexEntry `json:"entries"`
}

// NewIndex returns an empty index at the current version.
func NewIndex() *Index {
	return &Index{
		Version: indexVersion,
		Updated: time.Now().UTC(),
		Entries: make(map[string]IndexEntry),
	}
}

// LoadIndex reads an index file.
func LoadIndex(path string) (*Index, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading index")
	}
	var x Index
	if err := json.Unmarshal(raw, &x); err != nil {
		return nil, errors.Wrap(err, "parsing index")
	}
	if x.Entries == nil {
		x.Entries = make(map[string]IndexEntry)
	}
	return &x, nil
}

// LoadIndexOrNew reads an index file, falling back to a fresh index when
// the file is missing or unreadable. A stale index is rebuilt by the
// next full reindex, so a corrupt one is not fatal.
func LoadIndexOrNew(path string) *Index {
	x, err := LoadIndex(path)
	if err != nil {
		return NewIndex()
	}
	return x
}

// Save writes the index to path, stamping the update time.
func (x *Index) Save(path string) error {
	x.Version = indexVersion
	x.Updated = time.Now().UTC()
	data, err := json.MarshalIndent(x, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling index")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, "writing index")
	}
	return nil
}

// Upsert inserts or replaces the entry for e.Name.
func (x *Index) Upsert(e IndexEntry) {
	x.Entries[e.Name] = e
}

// Remove deletes the entry for name, reporting whether it existed.
func (x *Index) Remove(name string) bool {
	if _, ok := x.Entries[name]; !ok {
		return false
	}
	delete(x.Entries, name)
	return true
}

// Get looks up the entry for name.
func (x *Index) Get(name string) (IndexEntry, bool) {
	e, ok := x.Entries[name]
	return e, ok
}

// Len returns the number of indexed prompts.
func (x *Index) Len() int {
	return len(x.Entries)
}

// AllNames returns every indexed prompt name, sorted.
func (x *Index) AllNames() []string {
	names := make([]string, 0, len(x.Entries))
	for name := range x.Entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AllTags returns every tag in use, sorted and deduplicated.
func (x *Index) AllTags() []string {
	seen := make(map[string]bool)
	var tags []string
	for _, e := range x.Entries {
		for _, t := range e.Tags {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	sort.Strings(tags)
	return tags
}

// Search returns entries whose name fuzzy-matches query or whose content
// contains it case-insensitively, sorted by name.
func (x *Index) Search(query string) []IndexEntry {
	q := strings.ToLower(query)
	var out []IndexEntry
	for _, e := range x.Entries {
		if fuzzy.MatchFold(query, e.Name) || strings.Contains(strings.ToLower(e.Content), q) {
			out = append(out, e)
		}
	}
	sortEntries(out)
	return out
}

// FilterByTag returns entries carrying tag, sorted by name.
func (x *Index) FilterByTag(tag string) []IndexEntry {
	var out []IndexEntry
	for _, e := range x.Entries {
		for _, t := range e.Tags {
			if t == tag {
				out = append(out, e)
				break
			}
		}
	}
	sortEntries(out)
	return out
}

// FilterByLocation returns entries stored at location, sorted by name.
func (x *Index) FilterByLocation(location string) []IndexEntry {
	var out []IndexEntry
	for _, e := range x.Entries {
		if e.Location == location {
			out = append(out, e)
		}
	}
	sortEntries(out)
	return out
}

// EntryFromPrompt builds the index record for a prompt at location.
func EntryFromPrompt(p *Prompt, location string) IndexEntry {
	return IndexEntry{
		ID:       p.ID,
		Name:     p.Name,
		Preview:  makePreview(p.Content),
		Content:  p.Content,
		Tags:     p.Tags,
		Location: location,
		Modified: p.Modified,
	}
}

func makePreview(content string) string {
	line, _, _ := strings.Cut(content, "\n")
	line = strings.TrimSuffix(line, "\r")
	runes := []rune(line)
	if len(runes) > previewLen {
		return string(runes[:previewLen])
	}
	return line
}

func sortEntries(entries []IndexEntry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
}
