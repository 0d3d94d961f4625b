// Package store manages the on-disk prompt vault: a .prx directory
// holding prompts as markdown files with YAML frontmatter, an archive,
// optional user folders, and a JSON search index.
package store

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/teranos/PRX/errors"
)

// nameSourceLen is how many leading characters of the first line feed
// into a generated prompt name.
const nameSourceLen = 20

var namePattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// Prompt is one stored prompt with its metadata.
type Prompt struct {
	// ID is a UUID assigned at creation and kept for the prompt's lifetime
	ID string `json:"id"`
	// Name is the file-stem identity; lowercase letters, digits, underscore
	Name string `json:"name"`
	// Content is the raw markdown body, reference tokens included
	Content string `json:"content"`
	// Tags are free-form labels
	Tags []string `json:"tags,omitempty"`
	// Created is when the prompt was first saved
	Created time.Time `json:"created"`
	// Modified is when the content last changed
	Modified time.Time `json:"modified"`

	// Path is where the prompt was loaded from; empty for unsaved prompts
	Path string `json:"-"`
}

// NewPrompt creates an unsaved prompt with a generated name.
func NewPrompt(content string) *Prompt {
	now := time.Now().UTC()
	return &Prompt{
		ID:       uuid.NewString(),
		Name:     GenerateName(content),
		Content:  content,
		Created:  now,
		Modified: now,
	}
}

// SetContent replaces the content and refreshes the modified timestamp.
func (p *Prompt) SetContent(content string) {
	p.Content = content
	p.Modified = time.Now().UTC()
}

// AddTag appends a tag unless it is already present.
func (p *Prompt) AddTag(tag string) {
	if p.HasTag(tag) {
		return
	}
	p.Tags = append(p.Tags, tag)
	p.Modified = time.Now().UTC()
}

// RemoveTag removes a tag, reporting whether it was present.
func (p *Prompt) RemoveTag(tag string) bool {
	for i, t := range p.Tags {
		if t == tag {
			p.Tags = append(p.Tags[:i], p.Tags[i+1:]...)
			p.Modified = time.Now().UTC()
			return true
		}
	}
	return false
}

// HasTag reports whether the prompt carries tag.
func (p *Prompt) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// FirstLine returns the first line of content, used for previews.
func (p *Prompt) FirstLine() string {
	line, _, _ := strings.Cut(p.Content, "\n")
	return strings.TrimSuffix(line, "\r")
}

// ValidName reports whether name is a legal prompt name.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

// ValidateName returns ErrInvalidName for names that are not lowercase
// letters, digits, and underscores.
func ValidateName(name string) error {
	if !ValidName(name) {
		return errors.Wrapf(errors.ErrInvalidName, "%q", name)
	}
	return nil
}

// GenerateName derives a prompt name from its content: the first line's
// leading characters, lowercased, whitespace and hyphens turned into
// underscores, everything outside [a-z0-9_] dropped, runs of underscores
// collapsed, no leading or trailing underscore. Empty content yields "".
func GenerateName(content string) string {
	firstLine, _, _ := strings.Cut(content, "\n")
	if strings.TrimSpace(firstLine) == "" {
		return ""
	}

	runes := []rune(firstLine)
	if len(runes) > nameSourceLen {
		runes = runes[:nameSourceLen]
	}

	var b strings.Builder
	prevUnderscore := true // swallows leading underscores
	for _, r := range strings.ToLower(string(runes)) {
		if unicode.IsSpace(r) || r == '-' {
			r = '_'
		}
		switch {
		case r == '_':
			if prevUnderscore {
				continue
			}
			b.WriteByte('_')
			prevUnderscore = true
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			prevUnderscore = false
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// MakeUniqueName returns base, or base with the lowest free numeric
// suffix when base is taken. An empty base (blank content) becomes
// empty_prompt_N.
func MakeUniqueName(base string, existing []string) string {
	taken := make(map[string]bool, len(existing))
	for _, n := range existing {
		taken[n] = true
	}

	if base == "" {
		for n := 1; ; n++ {
			name := fmt.Sprintf("empty_prompt_%d", n)
			if !taken[name] {
				return name
			}
		}
	}

	if !taken[base] {
		return base
	}
	for suffix := 1; ; suffix++ {
		name := fmt.Sprintf("%s_%d", base, suffix)
		if !taken[name] {
			return name
		}
	}
}
